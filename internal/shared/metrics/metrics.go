package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for a pipeline run.
const (
	OutcomeResponded = "responded"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

var (
	registry = prometheus.NewRegistry()

	pipelineRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "processing_runs_total",
		Help: "Document processing runs by operation and terminal outcome.",
	}, []string{"operation", "outcome"})

	pipelineDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "processing_duration_ms",
		Help:    "Document processing duration in milliseconds.",
		Buckets: []float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000},
	}, []string{"operation"})

	videoFallbacks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "video_search_fallbacks_total",
		Help: "Video searches answered with constructed search-page URLs.",
	})
)

func init() {
	registry.MustRegister(
		pipelineRuns,
		pipelineDuration,
		videoFallbacks,
		collectors.NewGoCollector(),
	)
}

// ObservePipeline records the terminal outcome and duration of a run.
func ObservePipeline(operation, outcome string, elapsed time.Duration) {
	pipelineRuns.WithLabelValues(operation, outcome).Inc()
	pipelineDuration.WithLabelValues(operation).Observe(float64(elapsed.Microseconds()) / 1000.0)
}

// IncVideoFallback counts a fallback video search answer.
func IncVideoFallback() {
	videoFallbacks.Inc()
}

// Registry exposes the collector registry, mainly for tests.
func Registry() *prometheus.Registry {
	return registry
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
