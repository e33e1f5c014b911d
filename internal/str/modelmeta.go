//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

// ModelMeta mirrors model-meta.yaml
type ModelMeta struct {
	ProcessData ProcessData `yaml:"process_data"`
	TuneModel   TuneModel   `yaml:"tune_model"`
}

type ProcessData struct {
	SampleData SampleData `yaml:"sample_data"`
	TimeFrame  TimeFrame  `yaml:"time_frame"`
}

type SampleData struct {
	TestSize    float64 `yaml:"test_size"` // fraction of rows kept; 0 or 1 keeps everything
	RandomState uint64  `yaml:"random_state"`
}

type TimeFrame struct {
	Windows []string `yaml:"windows"` // "2020-01-01", ...
	Days    int      `yaml:"days"`
}

type TuneModel struct {
	KTopics              int     `yaml:"k_topics"` // exclusive upper bound of the sweep
	RandomState          uint64  `yaml:"random_state"`
	CoherenceScoreMethod string  `yaml:"coherence_score_method"`
	TopN                 int     `yaml:"top_n"`
	QualityThreshold     float64 `yaml:"quality_threshold"`
	Iterations           int     `yaml:"iterations"`
	TransformPasses      int     `yaml:"transform_passes"`
}
