//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package topics

import (
	"context"
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/lda"
	"github.com/e-gun/TopicTweetsServer/internal/mx"
	"github.com/e-gun/TopicTweetsServer/internal/vec"
	"time"
)

// Sweep - train and score one model for every k in [low, high); low is always vv.LDALOWK; the models themselves are thrown away
func Sweep(ctx context.Context, tr lda.Trainer, c *vec.Corpus, low int, high int, seed uint64) ([]Candidate, error) {
	const (
		MSG1 = "k = %d: coherence %.4f"
		FAIL = "sweep failed at k = %d: %w"
	)

	if err := checkrange(low, high); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() { mx.SweepSeconds.Observe(time.Since(start).Seconds()) }()

	cands := make([]Candidate, 0, high-low)
	for k := low; k < high; k++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		m, err := tr.Train(ctx, c, k, seed)
		if err != nil {
			return nil, fmt.Errorf(FAIL, k, err)
		}
		mx.CandidatesTrained.Inc()

		sc, err := m.Coherence(c)
		if err != nil {
			return nil, fmt.Errorf(FAIL, k, err)
		}

		Msg.PEEK(fmt.Sprintf(MSG1, k, sc))
		cands = append(cands, Candidate{K: k, Score: sc})
	}
	return cands, nil
}

// ChooseBestK - the highest score wins; on a tie the first (i.e., lowest k) candidate is kept
func ChooseBestK(cands []Candidate) (Candidate, error) {
	if len(cands) == 0 {
		return Candidate{}, &EmptyResultError{}
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return best, nil
}

// FinalModel - the retrained winner
type FinalModel struct {
	Model     lda.Model
	Coherence float64
	Path      string // "" if the model was not written to disk
}

// TrainFinal - retrain at k with the sweep's seed, score it, and write it to <modeldir>/lda_model_<label>.json.gz
func TrainFinal(ctx context.Context, tr lda.Trainer, c *vec.Corpus, k int, seed uint64, label string, modeldir string, threshold float64) (FinalModel, error) {
	const (
		MSG1 = "%s: final model with k = %d has coherence %.4f"
		MSG2 = "%s: model saved to '%s'"
		WARN = "%s: coherence %.4f is below %.2f; the topics may be of poor quality"
	)

	var fm FinalModel

	m, err := tr.Train(ctx, c, k, seed)
	if err != nil {
		return fm, fmt.Errorf("final training at k = %d: %w", k, err)
	}

	sc, err := m.Coherence(c)
	if err != nil {
		return fm, fmt.Errorf("final coherence at k = %d: %w", k, err)
	}

	fm.Model = m
	fm.Coherence = sc
	Msg.NOTE(fmt.Sprintf(MSG1, label, k, sc))

	if sc < threshold {
		Msg.WARN(fmt.Sprintf(WARN, label, sc, threshold))
	}

	if modeldir != "" {
		fm.Path, err = lda.SaveModelFile(m, modeldir, label)
		if err != nil {
			return fm, err
		}
		Msg.FYI(fmt.Sprintf(MSG2, label, fm.Path))
	}

	return fm, nil
}
