package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "wayfind").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for navigation duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "wayfind",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for navigation.
type metrics struct {
	navigationsTotal   *prometheus.CounterVec
	navigationDuration *prometheus.HistogramVec
	handlerErrors      *prometheus.CounterVec
	notFoundTotal      prometheus.Counter
}

// One metrics instance per process; Prometheus rejects duplicate
// registrations, so repeated Prometheus() calls share the first.
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		navigationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of navigations dispatched, by route pattern and status",
			ConstLabels: config.ConstLabels,
		}, []string{"pattern", "status"}),

		navigationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_duration_seconds",
			Help:        "Page handler duration in seconds, by route pattern",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"pattern"}),

		handlerErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "handler_errors_total",
			Help:        "Total number of page handler failures, by route pattern",
			ConstLabels: config.ConstLabels,
		}, []string{"pattern"}),

		notFoundTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "not_found_total",
			Help:        "Total number of navigations that matched no route",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Prometheus creates middleware that collects navigation metrics.
//
// Metrics collected:
//   - wayfind_navigations_total: Counter by route pattern and status
//   - wayfind_navigation_duration_seconds: Histogram of handler duration
//   - wayfind_handler_errors_total: Counter of handler failures
//   - wayfind_not_found_total: Counter of unmatched navigations
//     (recorded via RecordNotFound from the dispatching layer)
//
// The pattern label is the registered route pattern, never the concrete
// path, which keeps label cardinality bounded.
func Prometheus(opts ...MetricsOption) router.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return router.MiddlewareFunc(func(ctx context.Context, res *router.Resolution, next func() error) error {
		pattern := patternLabel(res)

		start := time.Now()
		err := next()
		m.navigationDuration.WithLabelValues(pattern).Observe(time.Since(start).Seconds())

		status := "success"
		if err != nil {
			status = "error"
			m.handlerErrors.WithLabelValues(pattern).Inc()
		}
		m.navigationsTotal.WithLabelValues(pattern, status).Inc()

		return err
	})
}

// RecordNotFound records a navigation that matched no route. Middleware
// only runs for matched routes, so the dispatching layer calls this.
func RecordNotFound() {
	if globalMetrics != nil {
		globalMetrics.notFoundTotal.Inc()
	}
}

// GetMetrics returns the initialized metrics instance, or nil if
// Prometheus() has not been called yet.
func GetMetrics() *metrics {
	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	return globalMetrics
}

// patternLabel returns the bounded-cardinality label for a resolution.
func patternLabel(res *router.Resolution) string {
	if res == nil || res.Route() == nil {
		return "unmatched"
	}
	return res.Route().Pattern().Raw()
}
