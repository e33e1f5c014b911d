//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mdl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/e-gun/TopicTweetsServer/internal/db"
	"github.com/e-gun/TopicTweetsServer/internal/lda"
	"github.com/e-gun/TopicTweetsServer/internal/lnch"
	"github.com/e-gun/TopicTweetsServer/internal/str"
	"github.com/e-gun/TopicTweetsServer/internal/topics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var janTexts = []string{
	"get your flu vaccine shot at the clinic",
	"the clinic has flu vaccine today",
	"vaccine shot clinic line",
	"wear a mask and wash your hands",
	"mask wash soap every day",
	"hand soap and wash",
	"flu shot clinic open",
	"mask hand soap",
	"flu flu vaccine",
	"soap soap hand",
	"clinic shot mask",
	"wash vaccine hand",
}

// writesource - a csv with twelve usable January tweets, a duplicate, and two March tweets made only of stop words
func writesource(t *testing.T) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("read_tweet_id,created_at,read_text_clean2,Perceived_susceptibility,Perceived_severity,Perceived_benefits,Perceived_barriers\n")
	for i, tx := range janTexts {
		b.WriteString(fmt.Sprintf("%d,Wed Jan %02d 12:00:00 +0000 2020,%s,%d,%d,1,%d\n", 100+i, 1+i, tx, i%2, i%3, i%4))
	}
	b.WriteString(fmt.Sprintf("200,Wed Jan 02 12:00:00 +0000 2020,%s,1,1,1,1\n", janTexts[0]))
	b.WriteString("300,Sun Mar 01 10:00:00 +0000 2020,the and of,0,0,0,0\n")
	b.WriteString("301,Mon Mar 02 10:00:00 +0000 2020,to be or not to be,0,0,0,0\n")

	fn := filepath.Join(t.TempDir(), "constructs.csv")
	require.NoError(t, os.WriteFile(fn, []byte(b.String()), 0644))
	return fn
}

func testrunner(t *testing.T) (*Runner, db.Store) {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	cfg := *lnch.BuildDefaultConfig()
	cfg.DataPath = writesource(t)
	cfg.ResultsDir = filepath.Join(dir, "results")
	cfg.ModelDir = filepath.Join(dir, "models")
	cfg.StaticDir = filepath.Join(dir, "static")
	cfg.MetricsFile = filepath.Join(dir, "results", "run.prom")

	st, err := db.NewSQLStore(ctx, db.MODERNC, filepath.Join(dir, "topics.db"))
	require.NoError(t, err)
	t.Cleanup(st.Close)
	require.NoError(t, st.InitSchema(ctx))

	meta := lnch.DefaultModelMeta()
	meta.ProcessData.SampleData.TestSize = 0
	meta.ProcessData.TimeFrame.Windows = []string{"2020-01-01", "2020-03-01", "2020-06-01"}
	meta.TuneModel.KTopics = 6
	meta.TuneModel.TopN = 2
	meta.TuneModel.Iterations = 20
	meta.TuneModel.TransformPasses = 20

	return NewRunner(cfg, meta, st), st
}

func TestNewRunner(t *testing.T) {
	meta := lnch.DefaultModelMeta()
	meta.TuneModel.CoherenceScoreMethod = lda.UMASS
	meta.TuneModel.Iterations = 33
	r := NewRunner(*lnch.BuildDefaultConfig(), meta, nil)

	tr, ok := r.Trainer.(*lda.NLPTrainer)
	require.True(t, ok)
	assert.Equal(t, lda.UMASS, tr.Method)
	assert.Equal(t, 33, tr.Iterations)

	pc := r.PipelineConfig("2020-01-01")
	assert.Equal(t, 4, pc.Low)
	assert.Equal(t, meta.TuneModel.KTopics, pc.High)
	assert.Equal(t, meta.TuneModel.RandomState, pc.Seed)
	assert.Equal(t, "2020-01-01", pc.Label)
}

func TestDocumentsDropsEmptyTweets(t *testing.T) {
	r := NewRunner(*lnch.BuildDefaultConfig(), lnch.DefaultModelMeta(), nil)
	docs := r.Documents([]str.Tweet{
		{ID: 1, Text: "flu vaccine clinic", Annotations: str.Annotations{Benefits: 1}},
		{ID: 2, Text: "the and of"},
		{ID: 3, Text: ""},
	})
	require.Len(t, docs, 1)
	assert.Equal(t, int64(1), docs[0].ID)
	assert.Equal(t, 1, docs[0].Benefits)
	assert.NotEmpty(t, docs[0].Tokens)
}

func TestPrepareTweets(t *testing.T) {
	r, _ := testrunner(t)
	tw, err := r.PrepareTweets()
	require.NoError(t, err)
	assert.Len(t, tw, 14, "the duplicate text is dropped")
	for _, x := range tw {
		assert.False(t, x.Date.IsZero())
	}
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	r, st := testrunner(t)

	outcomes, err := r.Run(ctx)
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	jan := outcomes[0]
	require.NoError(t, jan.Err)
	assert.Equal(t, 12, jan.Documents)
	assert.Contains(t, []int{4, 5}, jan.BestK)
	for _, fn := range jan.Files {
		_, e := os.Stat(fn)
		assert.NoError(t, e, fn)
	}
	_, err = os.Stat(filepath.Join(r.Cfg.StaticDir, "2020-01-01_k_topics.html"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(r.Cfg.StaticDir, "word_cloud_2020-01-01.html"))
	assert.NoError(t, err)

	assert.True(t, errors.Is(outcomes[1].Err, topics.ErrEmptyCollection), "March has only stop words")
	assert.Equal(t, 0, outcomes[1].Documents)
	assert.True(t, errors.Is(outcomes[2].Err, topics.ErrEmptyCollection), "June has no tweets at all")

	ww, err := st.Windows(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2020-01-01"}, ww)

	rows, err := st.FetchTopics(ctx, "2020-01-01")
	require.NoError(t, err)
	assert.NotEmpty(t, rows)
	assert.LessOrEqual(t, len(rows), 2*jan.BestK)

	matrix, err := st.FetchMatrix(ctx, "2020-01-01")
	require.NoError(t, err)
	total := 0
	for _, m := range matrix {
		total += m.Count
	}
	assert.Equal(t, 12, total)

	rec, err := st.FetchModel(ctx, "2020-01-01")
	require.NoError(t, err)
	assert.Equal(t, jan.BestK, rec.K)
	assert.NotEmpty(t, rec.RunID)

	_, err = os.Stat(r.Cfg.MetricsFile)
	assert.NoError(t, err)

	// a second run replaces rather than duplicates
	_, err = r.Run(ctx)
	require.NoError(t, err)
	again, err := st.FetchTopics(ctx, "2020-01-01")
	require.NoError(t, err)
	assert.Equal(t, len(rows), len(again))
}

func TestRunMissingSource(t *testing.T) {
	r, _ := testrunner(t)
	r.Cfg.DataPath = filepath.Join(t.TempDir(), "nope.csv")
	_, err := r.Run(context.Background())
	assert.Error(t, err)
}

func TestInitStore(t *testing.T) {
	ctx := context.Background()
	r, st := testrunner(t)

	require.NoError(t, InitStore(ctx, r.Cfg, st))
	n, err := st.AppendTweets(ctx, []str.Tweet{{ID: 100, Text: "already there"}})
	require.NoError(t, err)
	assert.Equal(t, 0, n, "InitStore() loaded the source rows")

	cfg := r.Cfg
	cfg.DataPath = filepath.Join(t.TempDir(), "nope.csv")
	assert.NoError(t, InitStore(ctx, cfg, st), "a missing csv only leaves the tweets table empty")
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	Report(&buf, []Outcome{
		{Label: "2020-01-01", Documents: 1200, BestK: 5, Coherence: 0.51234, Files: []string{"a", "b"}},
		{Label: "2020-03-01", Err: topics.ErrEmptyCollection},
	})
	out := buf.String()
	assert.Contains(t, out, "2020-01-01")
	assert.Contains(t, out, "1,200")
	assert.Contains(t, out, "0.5123")
	assert.Contains(t, out, topics.ErrEmptyCollection.Error())
}
