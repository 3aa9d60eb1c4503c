package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.service.Metrics using Prometheus.
type Recorder struct {
	pipelineRuns *prometheus.CounterVec
	fetchErrors  *prometheus.CounterVec
	lastClose    *prometheus.GaugeVec
	latency      *prometheus.HistogramVec
	cacheHits    *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		pipelineRuns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finsight_pipeline_runs_total",
				Help: "Total number of insight pipeline runs",
			},
			[]string{"operation", "status"},
		),
		fetchErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finsight_fetch_errors_total",
				Help: "Total number of upstream fetch errors",
			},
			[]string{"source"},
		),
		lastClose: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "finsight_last_close",
				Help: "Last fetched closing price for a ticker",
			},
			[]string{"ticker"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finsight_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		cacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finsight_cache_hits_total",
				Help: "Cache hits and misses per data kind",
			},
			[]string{"kind", "result"},
		),
	}
}

// RecordPipelineRun records a completed pipeline run with its outcome.
func (r *Recorder) RecordPipelineRun(operation, status string) {
	r.pipelineRuns.WithLabelValues(operation, status).Inc()
}

// RecordFetchError records an upstream fetch failure.
func (r *Recorder) RecordFetchError(source string) {
	r.fetchErrors.WithLabelValues(source).Inc()
}

// RecordLastClose records the last closing price for a ticker.
func (r *Recorder) RecordLastClose(ticker string, price float64) {
	r.lastClose.WithLabelValues(ticker).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(operation string, seconds float64) {
	r.latency.WithLabelValues(operation).Observe(seconds)
}

// RecordCacheLookup records a cache hit or miss for a data kind.
func (r *Recorder) RecordCacheLookup(kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheHits.WithLabelValues(kind, result).Inc()
}
