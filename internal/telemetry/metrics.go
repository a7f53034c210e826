package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	LookupsTotal   *prometheus.CounterVec
	LookupDuration *prometheus.HistogramVec
	CarrierErrors  *prometheus.CounterVec
	CacheHits      *prometheus.CounterVec
}

// NewMetrics creates and registers Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		LookupsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shiptrack_lookups_total",
				Help: "Total number of tracking lookups by operation, carrier, and outcome",
			},
			[]string{"operation", "carrier", "outcome"},
		),
		LookupDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shiptrack_lookup_duration_seconds",
				Help:    "Lookup duration in seconds by operation and carrier",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "carrier"},
		),
		CarrierErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shiptrack_carrier_errors_total",
				Help: "Total carrier lookup failures by carrier",
			},
			[]string{"carrier"},
		),
		CacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shiptrack_cache_requests_total",
				Help: "Result cache requests by outcome (hit/miss)",
			},
			[]string{"outcome"},
		),
	}
}

// RecordLookup records one lookup with its outcome and duration.
func (m *Metrics) RecordLookup(operation, carrier, outcome string, seconds float64) {
	m.LookupsTotal.WithLabelValues(operation, carrier, outcome).Inc()
	m.LookupDuration.WithLabelValues(operation, carrier).Observe(seconds)
}

// RecordCarrierError records a failed carrier lookup.
func (m *Metrics) RecordCarrierError(carrier string) {
	m.CarrierErrors.WithLabelValues(carrier).Inc()
}

// RecordCache records a cache hit or miss.
func (m *Metrics) RecordCache(outcome string) {
	m.CacheHits.WithLabelValues(outcome).Inc()
}
