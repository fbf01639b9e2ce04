package middleware

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/verso-ui/verso/pkg/server"
)

// MetricsConfig configures the Prometheus navigation middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default "verso").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for navigation duration
	// (default prometheus.DefBuckets).
	Buckets []float64

	// Registry is the Prometheus registerer to use
	// (default prometheus.DefaultRegisterer).
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus navigation middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) { c.Namespace = namespace }
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) { c.ConstLabels = labels }
}

// WithBuckets sets the duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) { c.Buckets = buckets }
}

// WithRegistry sets the Prometheus registerer.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) { c.Registry = registry }
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "verso",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// navMetrics holds the instruments shared by all Prometheus middleware
// instances.
type navMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestErrors   prometheus.Counter
}

var (
	globalNavMetrics *navMetrics
	globalMetricsMu  sync.Mutex
)

func initNavMetrics(cfg MetricsConfig) *navMetrics {
	factory := promauto.With(cfg.Registry)

	return &navMetrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "nav_requests_total",
			Help:        "Total navigation requests by terminal outcome",
			ConstLabels: cfg.ConstLabels,
		}, []string{"outcome"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Name:        "nav_request_duration_seconds",
			Help:        "Navigation resolution duration in seconds",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}, []string{"outcome"}),

		requestErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "nav_request_errors_total",
			Help:        "Navigation requests that ended in an error",
			ConstLabels: cfg.ConstLabels,
		}),
	}
}

// Prometheus creates middleware that records Prometheus metrics for every
// navigation. Outcome labels are the small fixed set of terminal states,
// never raw URLs, to keep cardinality bounded.
func Prometheus(opts ...MetricsOption) server.Middleware {
	cfg := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	globalMetricsMu.Lock()
	if globalNavMetrics == nil {
		globalNavMetrics = initNavMetrics(cfg)
	}
	m := globalNavMetrics
	globalMetricsMu.Unlock()

	return server.MiddlewareFunc(func(ctx *server.NavContext, next func() error) error {
		start := time.Now()
		err := next()
		elapsed := time.Since(start).Seconds()

		outcome := "error"
		if ctx.Result != nil {
			outcome = ctx.Result.Outcome.String()
		}
		m.requestsTotal.WithLabelValues(outcome).Inc()
		m.requestDuration.WithLabelValues(outcome).Observe(elapsed)
		if err != nil {
			m.requestErrors.Inc()
		}
		return err
	})
}
