// Package metrics records engine and cache metrics with Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Recorder implements the service metrics interface using Prometheus.
type Recorder struct {
	computations   *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	cacheRequests  *prometheus.CounterVec
	houseFallbacks prometheus.Counter
	batchSize      prometheus.Histogram
}

// New creates a Recorder registered with reg. A nil reg uses the default
// Prometheus registerer.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Recorder{
		computations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "astral_computations_total",
				Help: "Total number of engine computations by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "astral_computation_duration_seconds",
				Help:    "Duration of engine computations in seconds",
				Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
			},
			[]string{"operation"},
		),
		cacheRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "astral_chart_cache_requests_total",
				Help: "Chart cache lookups by backend and result",
			},
			[]string{"backend", "result"},
		),
		houseFallbacks: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "astral_house_fallbacks_total",
				Help: "Charts whose quadrant houses fell back to equal houses",
			},
		),
		batchSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "astral_batch_size",
				Help:    "Number of charts requested per batch",
				Buckets: []float64{1, 2, 5, 10, 20},
			},
		),
	}
}

// RecordComputation records one engine call. A nil err counts as success.
func (r *Recorder) RecordComputation(operation string, elapsed time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	r.computations.WithLabelValues(operation, outcome).Inc()
	r.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// RecordCacheLookup records a cache lookup result: CacheHit, CacheMiss or CacheError.
func (r *Recorder) RecordCacheLookup(backend, result string) {
	r.cacheRequests.WithLabelValues(backend, result).Inc()
}

// RecordHouseFallback counts a degenerate house computation.
func (r *Recorder) RecordHouseFallback() {
	r.houseFallbacks.Inc()
}

// RecordBatch records the size of a batch request.
func (r *Recorder) RecordBatch(size int) {
	r.batchSize.Observe(float64(size))
}
