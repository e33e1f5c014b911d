//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package topics

import (
	"context"
	"errors"
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/lda"
	"github.com/e-gun/TopicTweetsServer/internal/mx"
	"github.com/e-gun/TopicTweetsServer/internal/str"
	"github.com/e-gun/TopicTweetsServer/internal/vec"
	"github.com/e-gun/TopicTweetsServer/internal/vv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"time"
)

// PipelineConfig - everything RunWindow() needs to know besides the documents
type PipelineConfig struct {
	Low              int // inclusive; must be vv.LDALOWK
	High             int // exclusive
	Seed             uint64
	TopN             int
	QualityThreshold float64
	ModelDir         string // "" skips writing the model
	Label            string // the window: "2020-01-01"
}

// NewPipelineConfig - the built-in settings for a window
func NewPipelineConfig(label string) PipelineConfig {
	return PipelineConfig{
		Low:              vv.LDALOWK,
		High:             vv.LDAHIGHK,
		Seed:             vv.LDASEED,
		TopN:             vv.LDATOPN,
		QualityThreshold: vv.LDAQUALITYFLOOR,
		ModelDir:         vv.DEFAULTMODELDIR,
		Label:            label,
	}
}

// Validate - configuration errors that must surface before any training
func (p PipelineConfig) Validate() error {
	if err := checkrange(p.Low, p.High); err != nil {
		return err
	}
	if p.TopN <= 0 {
		return ErrNonPositiveTopN
	}
	return nil
}

// WindowResult - the output of one pass of the pipeline
type WindowResult struct {
	Label       string
	Candidates  []Candidate
	BestK       int
	Coherence   float64
	Assignments []Assignment
	Matrix      []str.MatrixRow
	Summary     []str.TopicRow
	Model       lda.Model
	ModelPath   string
}

// RunWindow - sweep k, retrain the winner, assign every document to a topic, aggregate, and rank
func RunWindow(ctx context.Context, cfg PipelineConfig, tr lda.Trainer, docs []Document) (*WindowResult, error) {
	const (
		MSG1 = "%s: modeling %s documents with a vocabulary of %s terms"
		MSG2 = "%s: swept k = [%d, %d)"
		MSG3 = "%s: optimal number of topics is %d (coherence %.4f)"
		MSG4 = "%s: %s documents assigned to %d topics"
	)

	start := time.Now()
	previous := time.Now()
	pr := message.NewPrinter(language.English)

	fail := func(err error) (*WindowResult, error) {
		mx.WindowsFailed.Inc()
		return nil, err
	}

	// [a] configuration and data errors come before any training

	if err := cfg.Validate(); err != nil {
		return fail(err)
	}

	if len(docs) == 0 {
		return fail(ErrEmptyCollection)
	}

	if _, err := indexdocs(docs); err != nil {
		return fail(err)
	}

	ids := make([]int64, len(docs))
	texts := make([][]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
		texts[i] = d.Tokens
	}

	corpus, err := vec.BuildCorpus(ids, texts)
	if errors.Is(err, vec.ErrEmptyVocabulary) {
		return fail(fmt.Errorf("%w: %w", ErrEmptyCollection, err))
	}
	if err != nil {
		return fail(err)
	}
	Msg.FYI(fmt.Sprintf(MSG1, cfg.Label, pr.Sprintf("%d", corpus.Len()), pr.Sprintf("%d", corpus.Dict.Len())))

	// [b] the sweep

	cands, err := Sweep(ctx, tr, corpus, cfg.Low, cfg.High, cfg.Seed)
	if err != nil {
		return fail(err)
	}
	Msg.Timer("W1", fmt.Sprintf(MSG2, cfg.Label, cfg.Low, cfg.High), start, previous)
	previous = time.Now()

	best, err := ChooseBestK(cands)
	if err != nil {
		return fail(err)
	}

	// [c] the final model

	fm, err := TrainFinal(ctx, tr, corpus, best.K, cfg.Seed, cfg.Label, cfg.ModelDir, cfg.QualityThreshold)
	if err != nil {
		return fail(err)
	}
	Msg.NOTE(fmt.Sprintf(MSG3, cfg.Label, best.K, fm.Coherence))
	Msg.Timer("W2", "final model trained", start, previous)
	previous = time.Now()

	// [d] assignments, matrix, summary

	assigned, err := AssignTopics(fm.Model, corpus, docs)
	if err != nil {
		return fail(err)
	}

	summary, err := TopDocuments(assigned, cfg.TopN, cfg.Label)
	if err != nil {
		return fail(err)
	}

	res := &WindowResult{
		Label:       cfg.Label,
		Candidates:  cands,
		BestK:       best.K,
		Coherence:   fm.Coherence,
		Assignments: assigned,
		Matrix:      AggregateByTopic(assigned, cfg.Label),
		Summary:     summary,
		Model:       fm.Model,
		ModelPath:   fm.Path,
	}

	Msg.Timer("W3", fmt.Sprintf(MSG4, cfg.Label, pr.Sprintf("%d", len(assigned)), len(res.Matrix)), start, previous)

	mx.WindowsRun.Inc()
	mx.BestK.WithLabelValues(cfg.Label).Set(float64(best.K))
	mx.FinalCoherence.WithLabelValues(cfg.Label).Set(fm.Coherence)
	mx.DocumentsModeled.WithLabelValues(cfg.Label).Set(float64(len(assigned)))

	return res, nil
}
