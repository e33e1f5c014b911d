//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"fmt"
	"github.com/e-gun/TopicTweetsServer/internal/str"
	"github.com/e-gun/TopicTweetsServer/internal/vv"
	"gopkg.in/yaml.v3"
	"os"
	"time"
)

// DefaultModelMeta - the parameters used when model-meta.yaml is absent or silent
func DefaultModelMeta() str.ModelMeta {
	return str.ModelMeta{
		ProcessData: str.ProcessData{
			SampleData: str.SampleData{
				TestSize:    vv.SAMPLETESTSIZE,
				RandomState: vv.SAMPLESEED,
			},
			TimeFrame: str.TimeFrame{
				Windows: []string{"2020-01-01", "2020-03-01"},
				Days:    vv.WINDOWDAYS,
			},
		},
		TuneModel: str.TuneModel{
			KTopics:              vv.LDAHIGHK,
			RandomState:          vv.LDASEED,
			CoherenceScoreMethod: vv.LDACOHERENCE,
			TopN:                 vv.LDATOPN,
			QualityThreshold:     vv.LDAQUALITYFLOOR,
			Iterations:           vv.LDAITER,
			TransformPasses:      vv.LDAXFORMPASSES,
		},
	}
}

// LoadModelMeta - read the yaml model parameters; a missing file yields the defaults
func LoadModelMeta(fn string) (str.ModelMeta, error) {
	const (
		FAIL1 = "could not read '%s': %w"
		FAIL2 = "could not parse '%s': %w"
	)

	meta := DefaultModelMeta()

	b, err := os.ReadFile(fn)
	if os.IsNotExist(err) {
		Msg.NOTE(fmt.Sprintf("'%s' not found: using built-in model parameters", fn))
		return meta, nil
	}
	if err != nil {
		return meta, fmt.Errorf(FAIL1, fn, err)
	}

	// unmarshalling onto the defaults leaves unspecified fields alone
	if err = yaml.Unmarshal(b, &meta); err != nil {
		return meta, fmt.Errorf(FAIL2, fn, err)
	}

	return meta, ValidateModelMeta(meta)
}

// ValidateModelMeta - catch values that would only fail much later
func ValidateModelMeta(meta str.ModelMeta) error {
	const (
		FAIL1 = "time_frame.windows: '%s' is not a YYYY-MM-DD date"
		FAIL2 = "time_frame.days must be positive: %d"
		FAIL3 = "coherence_score_method must be c_v or u_mass: '%s'"
	)

	for _, w := range meta.ProcessData.TimeFrame.Windows {
		if _, err := time.Parse(vv.DATEFORMAT, w); err != nil {
			return fmt.Errorf(FAIL1, w)
		}
	}

	if meta.ProcessData.TimeFrame.Days <= 0 {
		return fmt.Errorf(FAIL2, meta.ProcessData.TimeFrame.Days)
	}

	switch meta.TuneModel.CoherenceScoreMethod {
	case "c_v", "u_mass":
	default:
		return fmt.Errorf(FAIL3, meta.TuneModel.CoherenceScoreMethod)
	}

	// k_topics and top_n are checked by the pipeline itself so that the errors carry their types
	return nil
}
