//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"bytes"
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/e-gun/TopicTweetsServer/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func smallcorpus(t *testing.T) *vec.Corpus {
	t.Helper()
	docs := [][]string{
		{"flu", "vaccine", "shot"},
		{"flu", "vaccine", "clinic"},
		{"vaccine", "shot", "clinic"},
		{"mask", "hand", "wash"},
		{"mask", "wash", "soap"},
		{"hand", "soap", "wash"},
		{"flu", "shot", "clinic"},
		{"mask", "hand", "soap"},
	}
	ids := make([]int64, len(docs))
	for i := range ids {
		ids[i] = int64(100 + i)
	}
	c, err := vec.BuildCorpus(ids, docs)
	require.NoError(t, err)
	return c
}

func TestCoherenceCVSeparatesTopics(t *testing.T) {
	// terms 0,1 always co-occur; terms 2,3 always co-occur; the two pairs never meet
	docs := [][]int{{0, 1}, {0, 1}, {2, 3}, {2, 3}}

	good, err := TopicCoherence(CV, [][]int{{0, 1}, {2, 3}}, docs)
	require.NoError(t, err)
	bad, err := TopicCoherence(CV, [][]int{{0, 2}, {1, 3}}, docs)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, good, 1e-9)
	assert.Greater(t, good, bad)
}

func TestCoherenceUMass(t *testing.T) {
	docs := [][]int{{0, 1}, {0, 1}, {2, 3}, {2, 3}}

	good, err := TopicCoherence(UMASS, [][]int{{0, 1}}, docs)
	require.NoError(t, err)
	// P(1|0) = 1
	assert.InDelta(t, 0.0, good, 1e-9)

	bad, err := TopicCoherence(UMASS, [][]int{{0, 2}}, docs)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(1e-12/0.5), bad, 1e-6)

	single, err := TopicCoherence(UMASS, [][]int{{0}}, docs)
	require.NoError(t, err)
	assert.Equal(t, 0.0, single)
}

func TestCoherenceUnknownMethod(t *testing.T) {
	_, err := TopicCoherence("c_uci", [][]int{{0, 1}}, [][]int{{0, 1}})
	assert.Error(t, err)

	s, err := TopicCoherence(CV, nil, [][]int{{0}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, s)
}

func TestNPMIBounds(t *testing.T) {
	docs := [][]int{{0, 1}, {0}, {1, 2}, {2}}
	cc := countcooccurrence(docs, map[int]struct{}{0: {}, 1: {}, 2: {}})
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			v := cc.npmi(a, b)
			assert.GreaterOrEqual(t, v, -1.0-1e-9)
			assert.LessOrEqual(t, v, 1.0+1e-9)
		}
	}
	assert.InDelta(t, 1.0, cc.npmi(0, 0), 1e-9)
	assert.Equal(t, 2, cc.count(0, 0))
	assert.Equal(t, 1, cc.count(1, 0))
	assert.Equal(t, 0, cc.count(0, 2))
}

func TestTopIndicesKeepsLowerIDOnTies(t *testing.T) {
	assert.Equal(t, []int{1, 3, 0}, topindices([]float64{0.1, 0.4, 0.05, 0.4}, 3))
	assert.Equal(t, []int{1, 3, 0, 2}, topindices([]float64{0.1, 0.4, 0.05, 0.4}, 10))
}

func TestNormalizeRows(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{1, 1, 2, 0, 0, 0})
	n := normalizerows(m)
	assert.Equal(t, []float64{0.25, 0.25, 0.5}, n[0])
	assert.Equal(t, []float64{0, 0, 0}, n[1])
}

func TestArtifactRoundTrip(t *testing.T) {
	a := Artifact{
		RunID:       "run",
		K:           2,
		Seed:        66826,
		Method:      CV,
		Coherence:   0.61,
		Terms:       []string{"flu", "mask", "vaccine"},
		Fingerprint: vec.TermsFingerprint([]string{"flu", "mask", "vaccine"}),
		Topics:      [][]float64{{0.7, 0.1, 0.2}, {0.1, 0.8, 0.1}},
	}

	var buf bytes.Buffer
	require.NoError(t, a.Write(&buf))
	b, err := ReadArtifact(&buf)
	require.NoError(t, err)
	assert.Equal(t, a.Terms, b.Terms)
	assert.Equal(t, a.Topics, b.Topics)
	assert.Equal(t, a.Fingerprint, b.Fingerprint)
	assert.Equal(t, 0.61, b.Coherence)

	tw := b.TopWords(1, 2)
	require.Len(t, tw, 2)
	assert.Equal(t, "mask", tw[0].Term)
	assert.Nil(t, b.TopWords(5, 2))

	_, err = ReadArtifact(bytes.NewBufferString("not gzip"))
	assert.Error(t, err)
}

func TestNLPTrainer(t *testing.T) {
	c := smallcorpus(t)
	tr := NewNLPTrainer(CV)
	tr.Iterations = 20
	tr.TransformPasses = 20

	m, err := tr.Train(context.Background(), c, 2, 66826)
	require.NoError(t, err)
	assert.Equal(t, 2, m.K())
	assert.Equal(t, c.Fingerprint(), m.Fingerprint())

	pp, err := m.Posteriors(c)
	require.NoError(t, err)
	require.Len(t, pp, c.Len())
	for _, p := range pp {
		require.Len(t, p, 2)
		assert.InDelta(t, 1.0, p[0]+p[1], 1e-9)
	}

	one, err := m.Posterior(c.Bows[0])
	require.NoError(t, err)
	require.Len(t, one, 2)
	assert.InDelta(t, 1.0, one[0]+one[1], 1e-9)

	sc, err := m.Coherence(c)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(sc))

	tw := m.TopWords(0, 3)
	assert.Len(t, tw, 3)
	assert.GreaterOrEqual(t, tw[0].Weight, tw[1].Weight)

	// same seed, same model
	again, err := tr.Train(context.Background(), c, 2, 66826)
	require.NoError(t, err)
	pp2, err := again.Posteriors(c)
	require.NoError(t, err)
	for i := range pp {
		assert.InDeltaSlice(t, pp[i], pp2[i], 1e-9)
	}

	fn, err := SaveModelFile(m, t.TempDir(), "2020-01-01")
	require.NoError(t, err)
	assert.Equal(t, "lda_model_2020-01-01.json.gz", filepath.Base(fn))
	a, err := LoadArtifactFile(fn)
	require.NoError(t, err)
	assert.Equal(t, 2, a.K)
	assert.Equal(t, c.Dict.Terms(), a.Terms)
	assert.InDelta(t, sc, a.Coherence, 1e-12)
}

func TestNLPTrainerRefusesBadInput(t *testing.T) {
	c := smallcorpus(t)
	tr := NewNLPTrainer(CV)

	_, err := tr.Train(context.Background(), c, 0, 1)
	assert.True(t, errors.Is(err, ErrBadK))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = tr.Train(ctx, c, 2, 1)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestPosteriorsRejectsForeignCorpus(t *testing.T) {
	c := smallcorpus(t)
	tr := NewNLPTrainer(UMASS)
	tr.Iterations = 5
	tr.TransformPasses = 5
	m, err := tr.Train(context.Background(), c, 2, 7)
	require.NoError(t, err)

	other, err := vec.BuildCorpus([]int64{1}, [][]string{{"flu"}})
	require.NoError(t, err)
	_, err = m.Posteriors(other)
	assert.True(t, errors.Is(err, ErrVocabMismatch))
	_, err = m.Coherence(other)
	assert.True(t, errors.Is(err, ErrVocabMismatch))
}
