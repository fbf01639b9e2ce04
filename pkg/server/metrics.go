package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the navigation runtime.
// A nil *Metrics is valid and records nothing, so wiring metrics stays
// optional.
type Metrics struct {
	navigationsTotal   *prometheus.CounterVec
	navigationDuration prometheus.Histogram
	redirectCycles     prometheus.Counter
	activeSessions     prometheus.Gauge
	sessionsTotal      prometheus.Counter
}

// MetricsConfig configures metric registration.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default "verso").
	Namespace string

	// Registry is the Prometheus registerer to use
	// (default prometheus.DefaultRegisterer).
	Registry prometheus.Registerer
}

// NewMetrics registers the navigation metrics and returns the handle.
func NewMetrics(cfg MetricsConfig) *Metrics {
	if cfg.Namespace == "" {
		cfg.Namespace = "verso"
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(cfg.Registry)

	return &Metrics{
		navigationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "navigations_total",
			Help:      "Total navigations by terminal outcome",
		}, []string{"outcome"}),

		navigationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "navigation_duration_seconds",
			Help:      "Navigation resolution duration, guards included",
			Buckets:   prometheus.DefBuckets,
		}),

		redirectCycles: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "redirect_cycles_total",
			Help:      "Navigations aborted by redirect cycle detection",
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "active_sessions",
			Help:      "Number of live sessions",
		}),

		sessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "sessions_total",
			Help:      "Total sessions ever created",
		}),
	}
}

// RecordNavigation records one resolved navigation.
func (m *Metrics) RecordNavigation(outcome NavOutcome, d time.Duration) {
	if m == nil {
		return
	}
	m.navigationsTotal.WithLabelValues(outcome.String()).Inc()
	m.navigationDuration.Observe(d.Seconds())
	if outcome == NavCycle {
		m.redirectCycles.Inc()
	}
}

// RecordSessionCreate records a session creation.
func (m *Metrics) RecordSessionCreate() {
	if m == nil {
		return
	}
	m.activeSessions.Inc()
	m.sessionsTotal.Inc()
}

// RecordSessionClose records a session shutdown.
func (m *Metrics) RecordSessionClose() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}
