package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// scoring service.
type Metrics struct {
	ScoreRequests *prometheus.CounterVec // labels: outcome={success,validation,location,provider_unavailable,data_validation,internal}
	ScoreDuration prometheus.Histogram

	// Climate provider metrics.
	ProviderRequests *prometheus.CounterVec // labels: outcome={success,error,invalid_data}
	ProviderDuration prometheus.Histogram
	ProviderEnabled  prometheus.Gauge

	// Audit stream metrics.
	AuditPublished prometheus.Counter
	AuditErrors    prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ScoreRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_credit",
			Name:      "score_requests_total",
			Help:      "Scoring requests by outcome.",
		}, []string{"outcome"}),
		ScoreDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "climate_credit",
			Name:      "score_duration_seconds",
			Help:      "Duration of a complete scoring request.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_credit",
			Name:      "provider_requests_total",
			Help:      "Climate provider API requests by outcome.",
		}, []string{"outcome"}),
		ProviderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "climate_credit",
			Name:      "provider_duration_seconds",
			Help:      "Climate provider API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		ProviderEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "climate_credit",
			Name:      "provider_enabled",
			Help:      "1 when the external climate provider is enabled, 0 when derived fallback is in use.",
		}),
		AuditPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_credit",
			Name:      "audit_events_published_total",
			Help:      "Audit events successfully written to the audit topic.",
		}),
		AuditErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_credit",
			Name:      "audit_publish_errors_total",
			Help:      "Audit events that failed to publish.",
		}),
	}

	prometheus.MustRegister(
		m.ScoreRequests,
		m.ScoreDuration,
		m.ProviderRequests,
		m.ProviderDuration,
		m.ProviderEnabled,
		m.AuditPublished,
		m.AuditErrors,
	)

	return m
}

// NewUnregisteredMetrics creates Metrics without registering them anywhere,
// for callers that never expose a /metrics endpoint (offline tooling).
func NewUnregisteredMetrics() *Metrics {
	return &Metrics{
		ScoreRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "climate_credit", Name: "score_requests_total"}, []string{"outcome"}),
		ScoreDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "climate_credit", Name: "score_duration_seconds"}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "climate_credit", Name: "provider_requests_total"}, []string{"outcome"}),
		ProviderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "climate_credit", Name: "provider_duration_seconds"}),
		ProviderEnabled:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "climate_credit", Name: "provider_enabled"}),
		AuditPublished:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "climate_credit", Name: "audit_events_published_total"}),
		AuditErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "climate_credit", Name: "audit_publish_errors_total"}),
	}
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewUnregisteredMetrics()
}
