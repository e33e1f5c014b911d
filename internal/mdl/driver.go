//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mdl

import (
	"bytes"
	"context"
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/db"
	"github.com/e-gun/TopicTweetsServer/internal/gen"
	"github.com/e-gun/TopicTweetsServer/internal/lda"
	"github.com/e-gun/TopicTweetsServer/internal/lnch"
	"github.com/e-gun/TopicTweetsServer/internal/mx"
	"github.com/e-gun/TopicTweetsServer/internal/str"
	"github.com/e-gun/TopicTweetsServer/internal/topics"
	"github.com/e-gun/TopicTweetsServer/internal/twt"
	"github.com/e-gun/TopicTweetsServer/internal/vec"
	"github.com/e-gun/TopicTweetsServer/internal/viz"
	"github.com/e-gun/TopicTweetsServer/internal/vv"
	"github.com/e-gun/TopicTweetsServer/internal/xprt"
	"os"
	"time"
)

var (
	Msg = lnch.Msg
)

// Runner - everything a model run needs; Store may be nil, in which case nothing is persisted
type Runner struct {
	Cfg     str.CurrentConfiguration
	Meta    str.ModelMeta
	Trainer lda.Trainer
	Store   db.Store
	Cleaner *vec.Cleaner
}

// Outcome - how one window fared
type Outcome struct {
	Label     string
	Documents int
	BestK     int
	Coherence float64
	Files     []string
	Err       error
}

// NewRunner - a Runner configured from the yaml model parameters
func NewRunner(cfg str.CurrentConfiguration, meta str.ModelMeta, st db.Store) *Runner {
	tr := lda.NewNLPTrainer(meta.TuneModel.CoherenceScoreMethod)
	if meta.TuneModel.Iterations > 0 {
		tr.Iterations = meta.TuneModel.Iterations
	}
	if meta.TuneModel.TransformPasses > 0 {
		tr.TransformPasses = meta.TuneModel.TransformPasses
	}

	return &Runner{
		Cfg:     cfg,
		Meta:    meta,
		Trainer: tr,
		Store:   st,
		Cleaner: vec.NewCleaner(stops()),
	}
}

// stops - the built-in list plus the optional JSON list next to the configuration file
func stops() []string {
	fn := fmt.Sprintf("%s/%s", vv.CONFIGLOCATION, vv.CONFIGSTOPS)
	if _, err := os.Stat(fn); err != nil {
		return vec.DefaultStops()
	}
	extra, err := vec.ReadStopFile(fn)
	if err != nil {
		Msg.WARN(err.Error())
		return vec.DefaultStops()
	}
	Msg.FYI(fmt.Sprintf("%d extra stop words loaded from '%s'", len(extra), fn))
	return gen.Unique(append(vec.DefaultStops(), extra...))
}

// PrepareTweets - load, sample, dedupe, and date the source rows
func (r *Runner) PrepareTweets() ([]str.Tweet, error) {
	tw, err := twt.LoadCSV(r.Cfg.DataPath)
	if err != nil {
		return nil, err
	}
	sd := r.Meta.ProcessData.SampleData
	tw = twt.Sample(tw, sd.TestSize, sd.RandomState)
	tw = twt.RemoveDuplicates(tw)
	return twt.FormatDates(tw), nil
}

// Documents - clean the tweets of a window; tweets with nothing left after cleaning are dropped
func (r *Runner) Documents(tweets []str.Tweet) []topics.Document {
	docs := make([]topics.Document, 0, len(tweets))
	for _, t := range tweets {
		tokens := r.Cleaner.Clean(t.Text)
		if len(tokens) == 0 {
			continue
		}
		docs = append(docs, topics.Document{ID: t.ID, Text: t.Text, Tokens: tokens, Annotations: t.Annotations})
	}
	if dropped := len(tweets) - len(docs); dropped > 0 {
		Msg.PEEK(fmt.Sprintf("Documents(): %d tweets had no usable words", dropped))
	}
	return docs
}

// PipelineConfig - the yaml parameters as seen by topics.RunWindow()
func (r *Runner) PipelineConfig(label string) topics.PipelineConfig {
	tm := r.Meta.TuneModel
	pc := topics.NewPipelineConfig(label)
	pc.High = tm.KTopics
	pc.Seed = tm.RandomState
	pc.TopN = tm.TopN
	pc.QualityThreshold = tm.QualityThreshold
	pc.ModelDir = r.Cfg.ModelDir
	return pc
}

// Run - model every configured window in turn; a failed window is reported and the next one is tried
func (r *Runner) Run(ctx context.Context) ([]Outcome, error) {
	const (
		MSG1 = "Running analysis %d of %d: %s"
		FAIL = "%s could not be modeled: %s"
	)

	start := time.Now()

	tweets, err := r.PrepareTweets()
	if err != nil {
		return nil, err
	}
	Msg.Timer("M1", "tweets prepared", start, start)

	tf := r.Meta.ProcessData.TimeFrame
	outcomes := make([]Outcome, 0, len(tf.Windows))

	for i, label := range tf.Windows {
		if ctx.Err() != nil {
			return outcomes, ctx.Err()
		}
		previous := time.Now()
		Msg.NOTE(fmt.Sprintf(MSG1, i+1, len(tf.Windows), label))

		oc := r.RunOne(ctx, tweets, label, tf.Days)
		if oc.Err != nil {
			Msg.CRIT(fmt.Sprintf(FAIL, label, oc.Err.Error()))
		}
		outcomes = append(outcomes, oc)
		Msg.Timer("M2", label+" done", start, previous)
	}

	if r.Cfg.MetricsFile != "" {
		if err = mx.WriteTextfile(r.Cfg.MetricsFile); err != nil {
			Msg.WARN(fmt.Sprintf("could not write metrics to '%s': %s", r.Cfg.MetricsFile, err.Error()))
		}
	}

	return outcomes, nil
}

// RunOne - slice, clean, model, persist, export, and draw a single window
func (r *Runner) RunOne(ctx context.Context, tweets []str.Tweet, label string, days int) Outcome {
	oc := Outcome{Label: label}

	subset, err := twt.Timeframe(tweets, label, days)
	if err != nil {
		mx.WindowsFailed.Inc()
		oc.Err = err
		return oc
	}

	docs := r.Documents(subset)
	oc.Documents = len(docs)

	res, err := topics.RunWindow(ctx, r.PipelineConfig(label), r.Trainer, docs)
	if err != nil {
		oc.Err = err
		return oc
	}
	oc.BestK = res.BestK
	oc.Coherence = res.Coherence
	if res.ModelPath != "" {
		oc.Files = append(oc.Files, res.ModelPath)
	}

	if err = r.persist(ctx, res); err != nil {
		oc.Err = err
		return oc
	}

	we := xprt.WindowExport{
		Label:     label,
		Matrix:    res.Matrix,
		TopTweets: res.Summary,
		Documents: AssignmentRows(res.Assignments, label),
	}
	written, err := xprt.ExportWindow(r.Cfg.ResultsDir, we)
	oc.Files = append(oc.Files, written...)
	if err != nil {
		oc.Err = err
		return oc
	}

	charts, err := r.draw(res)
	oc.Files = append(oc.Files, charts...)
	if err != nil {
		oc.Err = err
	}
	return oc
}

// AssignmentRows - every document of the window in the shape of the topics table
func AssignmentRows(aa []topics.Assignment, label string) []str.TopicRow {
	rows := make([]str.TopicRow, len(aa))
	for i, a := range aa {
		rows[i] = str.TopicRow{Date: label, Topic: a.Topic, Prob: a.Prob, DocID: a.DocID, Tweet: a.Text, Annotations: a.Annotations}
	}
	return rows
}

// persist - replace whatever an earlier run stored for this window; all or nothing
func (r *Runner) persist(ctx context.Context, res *topics.WindowResult) error {
	if r.Store == nil {
		return nil
	}

	var buf bytes.Buffer
	if err := res.Model.Save(&buf); err != nil {
		return err
	}

	rec := db.ModelRecord{
		Label:       res.Label,
		K:           res.Model.K(),
		Coherence:   res.Coherence,
		Fingerprint: res.Model.Fingerprint(),
		Created:     time.Now(),
		Data:        buf.Bytes(),
	}
	if a, err := lda.ReadArtifact(bytes.NewReader(rec.Data)); err == nil {
		rec.RunID = a.RunID
		rec.Created = a.Created
	}

	Msg.FYI(fmt.Sprintf("Save %d top tweets for %s to the %s table", len(res.Summary), res.Label, vv.TOPICSTABLE))
	return r.Store.ReplaceWindow(ctx, db.WindowRecord{
		Label:  res.Label,
		Topics: res.Summary,
		Matrix: res.Matrix,
		Model:  rec,
	})
}

// draw - the coherence curve and the word clouds go into the static dir for the web pages
func (r *Runner) draw(res *topics.WindowResult) ([]string, error) {
	if r.Cfg.StaticDir == "" {
		return nil, nil
	}

	ks := make([]int, len(res.Candidates))
	scores := make([]float64, len(res.Candidates))
	for i, c := range res.Candidates {
		ks[i] = c.K
		scores[i] = c.Score
	}

	var files []string
	fn, err := viz.WriteCoherenceChart(r.Cfg.StaticDir, res.Label, ks, scores)
	if err != nil {
		return files, err
	}
	files = append(files, fn)

	clouds := make([][]lda.WeightedTerm, res.Model.K())
	for t := range clouds {
		clouds[t] = res.Model.TopWords(t, vv.LDAWORDCLOUDTOPN)
	}
	fn, err = viz.WriteWordClouds(r.Cfg.StaticDir, res.Label, clouds)
	if err != nil {
		return files, err
	}
	return append(files, fn), nil
}
