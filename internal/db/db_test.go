//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/e-gun/TopicTweetsServer/internal/str"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newteststore(t *testing.T) *SQLStore {
	t.Helper()
	s, err := NewSQLStore(context.Background(), MODERNC, filepath.Join(t.TempDir(), "sub", "topics.db"))
	require.NoError(t, err)
	t.Cleanup(s.Close)
	require.NoError(t, s.InitSchema(context.Background()))
	return s
}

func TestSQLStoreInitSchemaTwice(t *testing.T) {
	s := newteststore(t)
	assert.NoError(t, s.InitSchema(context.Background()))
}

func TestSQLStoreTopics(t *testing.T) {
	ctx := context.Background()
	s := newteststore(t)

	rows := []str.TopicRow{
		{Date: "2020-01-01", Topic: 1, Prob: 0.6, DocID: 11, Tweet: "b", Annotations: str.Annotations{Severity: 1}},
		{Date: "2020-01-01", Topic: 0, Prob: 0.9, DocID: 10, Tweet: "a", Annotations: str.Annotations{Susceptibility: 1}},
		{Date: "2020-01-01", Topic: 0, Prob: 0.7, DocID: 12, Tweet: "c"},
		{Date: "2020-03-01", Topic: 0, Prob: 0.5, DocID: 20, Tweet: "d", Annotations: str.Annotations{Barriers: 1}},
	}
	require.NoError(t, s.AppendTopics(ctx, rows))

	got, err := s.FetchTopics(ctx, "2020-01-01")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, rows[1], got[0], "ordered by topic then descending prob")
	assert.Equal(t, rows[2], got[1])
	assert.Equal(t, rows[0], got[2])

	none, err := s.FetchTopics(ctx, "2021-01-01")
	require.NoError(t, err)
	assert.Empty(t, none)

	ww, err := s.Windows(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2020-01-01", "2020-03-01"}, ww)
}

func TestSQLStoreMatrixAndClear(t *testing.T) {
	ctx := context.Background()
	s := newteststore(t)

	mx := []str.MatrixRow{
		{Date: "2020-01-01", Topic: 0, Count: 7, Annotations: str.Annotations{Susceptibility: 3, Benefits: 1}},
		{Date: "2020-01-01", Topic: 1, Count: 5},
	}
	require.NoError(t, s.AppendMatrix(ctx, mx))
	require.NoError(t, s.AppendTopics(ctx, []str.TopicRow{{Date: "2020-01-01", Topic: 0, Prob: 0.5, DocID: 1, Tweet: "x"}}))

	got, err := s.FetchMatrix(ctx, "2020-01-01")
	require.NoError(t, err)
	assert.Equal(t, mx, got)

	require.NoError(t, s.ClearWindow(ctx, "2020-01-01"))
	got, err = s.FetchMatrix(ctx, "2020-01-01")
	require.NoError(t, err)
	assert.Empty(t, got)
	ww, err := s.Windows(ctx)
	require.NoError(t, err)
	assert.Empty(t, ww)

	require.NoError(t, s.AppendMatrix(ctx, mx), "a cleared window can be written again")
}

func TestSQLStoreTweets(t *testing.T) {
	ctx := context.Background()
	s := newteststore(t)

	tw := []str.Tweet{
		{ID: 1, CreatedAt: "Wed Jan 01 12:00:00 +0000 2020", Text: "one"},
		{ID: 2, CreatedAt: "Wed Jan 01 12:00:00 +0000 2020", Text: "two", Annotations: str.Annotations{Barriers: 1}},
	}
	n, err := s.AppendTweets(ctx, tw)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.AppendTweets(ctx, append(tw, str.Tweet{ID: 3, Text: "three"}))
	require.NoError(t, err)
	assert.Equal(t, 1, n, "known ids are skipped")
}

func TestSQLStoreModels(t *testing.T) {
	ctx := context.Background()
	s := newteststore(t)

	_, err := s.FetchModel(ctx, "2020-01-01")
	assert.ErrorIs(t, err, ErrNotFound)

	rec := ModelRecord{
		Label:       "2020-01-01",
		RunID:       "5d1d9b0e-7c2f-4d0b-9d3e-0d6f6d7f7a11",
		K:           5,
		Coherence:   0.42,
		Fingerprint: "0123456789abcdef0123456789abcdef",
		Created:     time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC),
		Data:        []byte{0x1f, 0x8b, 0x08, 0x00},
	}
	require.NoError(t, s.StoreModel(ctx, rec))

	got, err := s.FetchModel(ctx, rec.Label)
	require.NoError(t, err)
	assert.Equal(t, rec.K, got.K)
	assert.Equal(t, rec.Data, got.Data)
	assert.True(t, rec.Created.Equal(got.Created))

	rec.K = 6
	require.NoError(t, s.StoreModel(ctx, rec), "storing a label twice replaces the model")
	got, err = s.FetchModel(ctx, rec.Label)
	require.NoError(t, err)
	assert.Equal(t, 6, got.K)
}

func TestOpen(t *testing.T) {
	cfg := str.CurrentConfiguration{SQLProvider: MODERNC, SQLitePath: filepath.Join(t.TempDir(), "t.db")}
	s, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	s.Close()

	_, err = Open(context.Background(), str.CurrentConfiguration{SQLProvider: "mysql"})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func windowrecord(label string, runid string, topics int) WindowRecord {
	w := WindowRecord{
		Label: label,
		Model: ModelRecord{Label: label, RunID: runid, K: topics, Coherence: 0.6, Fingerprint: "fp",
			Created: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), Data: []byte{1, 2, 3}},
	}
	for i := 0; i < topics; i++ {
		w.Topics = append(w.Topics, str.TopicRow{Date: label, Topic: i, Prob: 0.9, DocID: int64(100 + i), Tweet: "flu shot"})
		w.Matrix = append(w.Matrix, str.MatrixRow{Date: label, Topic: i, Count: 1})
	}
	return w
}

func TestSQLStoreReplaceWindow(t *testing.T) {
	ctx := context.Background()
	s := newteststore(t)

	require.NoError(t, s.ReplaceWindow(ctx, windowrecord("2020-01-01", "first", 4)))
	require.NoError(t, s.ReplaceWindow(ctx, windowrecord("2020-01-01", "second", 5)))

	tt, err := s.FetchTopics(ctx, "2020-01-01")
	require.NoError(t, err)
	assert.Len(t, tt, 5)
	mm, err := s.FetchMatrix(ctx, "2020-01-01")
	require.NoError(t, err)
	assert.Len(t, mm, 5)
	rec, err := s.FetchModel(ctx, "2020-01-01")
	require.NoError(t, err)
	assert.Equal(t, "second", rec.RunID)
}

func TestSQLStoreReplaceWindowFailureKeepsEarlierRun(t *testing.T) {
	ctx := context.Background()
	s := newteststore(t)
	require.NoError(t, s.ReplaceWindow(ctx, windowrecord("2020-01-01", "first", 4)))

	// the matrix key is (date, topic_num): a repeated topic fails after the clear and the topics insert
	bad := windowrecord("2020-01-01", "broken", 5)
	bad.Matrix = append(bad.Matrix, bad.Matrix[0])
	assert.Error(t, s.ReplaceWindow(ctx, bad))

	tt, err := s.FetchTopics(ctx, "2020-01-01")
	require.NoError(t, err)
	assert.Len(t, tt, 4)
	mm, err := s.FetchMatrix(ctx, "2020-01-01")
	require.NoError(t, err)
	assert.Len(t, mm, 4)
	rec, err := s.FetchModel(ctx, "2020-01-01")
	require.NoError(t, err)
	assert.Equal(t, "first", rec.RunID)
}
