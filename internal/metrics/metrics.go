// metrics.go - Prometheus instrumentation for schema processing
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the collectors the process pipeline reports into.
type Metrics struct {
	RequestsTotal      *prometheus.CounterVec
	ProcessingDuration prometheus.Histogram
	CacheHits          prometheus.Counter
	CacheMisses        prometheus.Counter
}

// New registers collectors on the given registerer. Pass
// prometheus.DefaultRegisterer in production; tests use a fresh
// registry to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "schema_scout",
			Name:      "process_requests_total",
			Help:      "Schema processing requests by outcome.",
		}, []string{"outcome"}),
		ProcessingDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "schema_scout",
			Name:      "process_duration_seconds",
			Help:      "End-to-end schema processing duration.",
			Buckets:   prometheus.DefBuckets,
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "schema_scout",
			Name:      "cache_hits_total",
			Help:      "Result cache hits.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "schema_scout",
			Name:      "cache_misses_total",
			Help:      "Result cache misses.",
		}),
	}
}

// RecordOutcome increments the request counter for an outcome label
// ("success", "error", "cached").
func (m *Metrics) RecordOutcome(outcome string) {
	m.RequestsTotal.WithLabelValues(outcome).Inc()
}
