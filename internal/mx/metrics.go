//    TopicTweetsServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mx

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"os"
	"path/filepath"
)

var (
	// Registry - everything below registers here rather than on the global default
	Registry = prometheus.NewRegistry()

	WindowsRun = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Name: "tts_windows_run_total",
		Help: "Time windows that completed the topic pipeline",
	})

	WindowsFailed = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Name: "tts_windows_failed_total",
		Help: "Time windows abandoned because of an error",
	})

	CandidatesTrained = promauto.With(Registry).NewCounter(prometheus.CounterOpts{
		Name: "tts_candidate_models_trained_total",
		Help: "LDA models trained while sweeping the number of topics",
	})

	SweepSeconds = promauto.With(Registry).NewHistogram(prometheus.HistogramOpts{
		Name:    "tts_sweep_duration_seconds",
		Help:    "Time spent sweeping k for one window",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
	})

	FinalCoherence = promauto.With(Registry).NewGaugeVec(prometheus.GaugeOpts{
		Name: "tts_final_coherence",
		Help: "Coherence of the selected model per window",
	}, []string{"window"})

	BestK = promauto.With(Registry).NewGaugeVec(prometheus.GaugeOpts{
		Name: "tts_best_k",
		Help: "Number of topics selected per window",
	}, []string{"window"})

	DocumentsModeled = promauto.With(Registry).NewGaugeVec(prometheus.GaugeOpts{
		Name: "tts_documents_modeled",
		Help: "Documents assigned to topics per window",
	}, []string{"window"})

	HTTPRequests = promauto.With(Registry).NewCounterVec(prometheus.CounterOpts{
		Name: "tts_http_requests_total",
		Help: "Requests served, by route and status code",
	}, []string{"route", "code"})
)

func init() {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// WriteTextfile - dump the registry in the node_exporter textfile format
func WriteTextfile(fn string) error {
	if err := os.MkdirAll(filepath.Dir(fn), 0755); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(fn, Registry)
}
