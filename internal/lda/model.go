//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lda

import (
	"context"
	"errors"
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/vec"
	"github.com/e-gun/TopicTweetsServer/internal/vv"
	"github.com/e-gun/nlp"
	"github.com/google/uuid"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"io"
	"slices"
	"sync"
	"time"
)

var (
	ErrBadK          = errors.New("the number of topics must be positive")
	ErrVocabMismatch = errors.New("the corpus vocabulary does not match the model")
)

// Trainer - anything that can fit a k-topic model to a corpus; the same seed must give the same model
type Trainer interface {
	Train(ctx context.Context, c *vec.Corpus, k int, seed uint64) (Model, error)
}

// Model - a fitted topic model
type Model interface {
	K() int
	Fingerprint() string
	Coherence(c *vec.Corpus) (float64, error)
	Posterior(doc vec.Bow) ([]float64, error)
	Posteriors(c *vec.Corpus) ([][]float64, error)
	TopWords(topic int, n int) []WeightedTerm
	Save(w io.Writer) error
}

// WeightedTerm - a word and its weight inside a topic
type WeightedTerm struct {
	Term   string
	Weight float64
}

//
// github.com/e-gun/nlp
//

//see https://github.com/james-bowman/nlp/blob/26d441fa0ded/lda.go
//DefaultLDA = nlp.LatentDirichletAllocation{
//	Iterations:                    1000,
//	PerplexityTolerance:           1e-2,
//	PerplexityEvaluationFrequency: 30,
//	BatchSize:                     100,
//	K:                             k,
//	BurnInPasses:                  1,
//	TransformationPasses:          500,
//	MeanChangeTolerance:           1e-5,
//	ChangeEvaluationFrequency:     30,
//	Alpha:                         0.1,
//	Eta:                           0.01,
//	...
//	Rnd:       rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
//	Processes: runtime.GOMAXPROCS(0),
//}

// NLPTrainer - online variational bayes LDA
type NLPTrainer struct {
	Iterations      int
	TransformPasses int
	BurnInPasses    int
	ChangeEvalFrq   int
	PerplexEvalFrq  int
	PerplexTol      float64
	Method          string // coherence: CV or UMASS
	CoherenceTopN   int
}

// NewNLPTrainer - a trainer with the built-in settings
func NewNLPTrainer(method string) *NLPTrainer {
	return &NLPTrainer{
		Iterations:      vv.LDAITER,
		TransformPasses: vv.LDAXFORMPASSES,
		BurnInPasses:    vv.LDABURNINPASSES,
		ChangeEvalFrq:   vv.LDACHGEVALFRQ,
		PerplexEvalFrq:  vv.LDAPERPEVALFRQ,
		PerplexTol:      vv.LDAPERPTOL,
		Method:          method,
		CoherenceTopN:   vv.LDACOHERENCETOPN,
	}
}

// Train - fit one model; Processes is pinned to 1 because concurrent updates would make the seed meaningless
func (t *NLPTrainer) Train(ctx context.Context, c *vec.Corpus, k int, seed uint64) (Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadK, k)
	}

	l := t.newlda(k, seed)
	if _, err := l.FitTransform(c.Matrix()); err != nil {
		return nil, fmt.Errorf("lda fit failed for k=%d: %w", k, err)
	}

	m := &NLPModel{
		RunID:   uuid.New(),
		Created: time.Now(),
		lda:     l,
		k:       k,
		seed:    seed,
		terms:   c.Dict.Terms(),
		fp:      c.Fingerprint(),
		method:  t.Method,
		topn:    t.CoherenceTopN,
	}
	m.topics = normalizerows(l.Components())
	return m, nil
}

func (t *NLPTrainer) newlda(k int, seed uint64) *nlp.LatentDirichletAllocation {
	l := nlp.NewLatentDirichletAllocation(k)
	l.Iterations = t.Iterations
	l.TransformationPasses = t.TransformPasses
	l.BurnInPasses = t.BurnInPasses
	l.ChangeEvaluationFrequency = t.ChangeEvalFrq
	l.PerplexityEvaluationFrequency = t.PerplexEvalFrq
	l.PerplexityTolerance = t.PerplexTol
	l.Processes = 1
	l.Rnd = rand.New(rand.NewSource(seed))
	return l
}

// NLPModel - the Model that NLPTrainer produces
type NLPModel struct {
	RunID   uuid.UUID
	Created time.Time
	lda     *nlp.LatentDirichletAllocation
	k       int
	seed    uint64
	terms   []string
	fp      string
	method  string
	topn    int
	topics  [][]float64 // k x len(terms); each row sums to 1
	score   float64
	mtx     sync.Mutex // Transform() draws from lda.Rnd
}

func (m *NLPModel) K() int              { return m.k }
func (m *NLPModel) Fingerprint() string { return m.fp }

// Coherence - score the top words of every topic against the corpus
func (m *NLPModel) Coherence(c *vec.Corpus) (float64, error) {
	if c.Fingerprint() != m.fp {
		return 0, ErrVocabMismatch
	}
	sc, err := TopicCoherence(m.method, topwordids(m.topics, m.topn), bowids(c.Bows))
	if err != nil {
		return 0, err
	}
	m.mtx.Lock()
	m.score = sc
	m.mtx.Unlock()
	return sc, nil
}

// Posterior - the topic distribution of a single document
func (m *NLPModel) Posterior(doc vec.Bow) ([]float64, error) {
	pp, err := m.transform([]vec.Bow{doc})
	if err != nil {
		return nil, err
	}
	return pp[0], nil
}

// Posteriors - one topic distribution per document of the corpus, index-aligned with c.IDs
func (m *NLPModel) Posteriors(c *vec.Corpus) ([][]float64, error) {
	if c.Dict.Len() != len(m.terms) {
		return nil, fmt.Errorf("%w: %d terms vs %d", ErrVocabMismatch, c.Dict.Len(), len(m.terms))
	}
	return m.transform(c.Bows)
}

func (m *NLPModel) transform(bows []vec.Bow) ([][]float64, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	// reseed so that the same documents always get the same answer
	m.lda.Rnd = rand.New(rand.NewSource(m.seed))
	docsOverTopics, err := m.lda.Transform(vec.BowsToMatrix(len(m.terms), bows))
	if err != nil {
		return nil, fmt.Errorf("lda transform failed: %w", err)
	}

	// rows = k; columns = len(bows)
	return normalizerows(mat.DenseCopyOf(docsOverTopics).T()), nil
}

// TopWords - the n heaviest words of a topic
func (m *NLPModel) TopWords(topic int, n int) []WeightedTerm {
	if topic < 0 || topic >= len(m.topics) {
		return nil
	}
	return topweighted(m.topics[topic], m.terms, n)
}

// Artifact - the persistable form of the model
func (m *NLPModel) Artifact() Artifact {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return Artifact{
		RunID:       m.RunID.String(),
		Created:     m.Created,
		K:           m.k,
		Seed:        m.seed,
		Method:      m.method,
		Coherence:   m.score,
		Terms:       m.terms,
		Fingerprint: m.fp,
		Topics:      m.topics,
	}
}

// Save - gzipped json
func (m *NLPModel) Save(w io.Writer) error {
	a := m.Artifact()
	return a.Write(w)
}

//
// HELPERS
//

// normalizerows - copy a matrix into [][]float64 with each row scaled to sum to 1
func normalizerows(mx mat.Matrix) [][]float64 {
	r, c := mx.Dims()
	out := make([][]float64, r)
	for i := 0; i < r; i++ {
		row := make([]float64, c)
		sum := 0.0
		for j := 0; j < c; j++ {
			row[j] = mx.At(i, j)
			sum += row[j]
		}
		if sum > 0 {
			for j := range row {
				row[j] /= sum
			}
		}
		out[i] = row
	}
	return out
}

type idweight struct {
	id int
	w  float64
}

// topindices - the ids of the n largest values; ties keep the lower id first
func topindices(row []float64, n int) []int {
	iw := make([]idweight, len(row))
	for i, w := range row {
		iw[i] = idweight{i, w}
	}
	slices.SortStableFunc(iw, func(a, b idweight) int {
		switch {
		case a.w > b.w:
			return -1
		case a.w < b.w:
			return 1
		default:
			return 0
		}
	})
	if n > len(iw) || n < 0 {
		n = len(iw)
	}
	ids := make([]int, n)
	for i := 0; i < n; i++ {
		ids[i] = iw[i].id
	}
	return ids
}

func topweighted(row []float64, terms []string, n int) []WeightedTerm {
	ids := topindices(row, n)
	out := make([]WeightedTerm, len(ids))
	for i, id := range ids {
		out[i] = WeightedTerm{Term: terms[id], Weight: row[id]}
	}
	return out
}

func topwordids(topics [][]float64, n int) [][]int {
	out := make([][]int, len(topics))
	for i, t := range topics {
		out[i] = topindices(t, n)
	}
	return out
}

func bowids(bows []vec.Bow) [][]int {
	out := make([][]int, len(bows))
	for i, b := range bows {
		ids := make([]int, len(b))
		for j, tc := range b {
			ids[j] = tc.ID
		}
		out[i] = ids
	}
	return out
}
