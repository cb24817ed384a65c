package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/remix-go/remix/pkg/loader"
)

// GlobalLoaderLabel is the route label used for the global loader.
const GlobalLoaderLabel = "global"

type loaderMetrics struct {
	duration *prometheus.HistogramVec
	errors   *prometheus.CounterVec
}

func initLoaderMetrics(config MetricsConfig) *loaderMetrics {
	factory := promauto.With(config.Registry)

	return &loaderMetrics{
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "loader_duration_seconds",
			Help:        "Data loader invocation duration in seconds, by route",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),

		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "loader_errors_total",
			Help:        "Data loader failures, by route",
			ConstLabels: config.ConstLabels,
		}, []string{"route"}),
	}
}

// LoaderMetrics creates a loader source wrapper that times every
// invocation and counts failures. Redirect and status-override signals
// are expected control outcomes, not faults, and do not count as
// errors.
//
// Metrics collected:
//   - remix_loader_duration_seconds: histogram by route
//   - remix_loader_errors_total: counter by route
//
// Example:
//
//	app := remix.New(remix.Config{
//	    WrapSource: middleware.LoaderMetrics(),
//	    ...
//	})
func LoaderMetrics(opts ...MetricsOption) func(loader.Source) loader.Source {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	m := initLoaderMetrics(config)

	return func(src loader.Source) loader.Source {
		return &instrumentedSource{src: src, metrics: m}
	}
}

type instrumentedSource struct {
	src     loader.Source
	metrics *loaderMetrics
}

func (s *instrumentedSource) GlobalLoader() loader.Func {
	return s.instrument(GlobalLoaderLabel, s.src.GlobalLoader())
}

func (s *instrumentedSource) RouteLoader(routeID string) loader.Func {
	return s.instrument(routeID, s.src.RouteLoader(routeID))
}

func (s *instrumentedSource) instrument(route string, fn loader.Func) loader.Func {
	if fn == nil {
		return nil
	}
	return func(ctx context.Context, args loader.Args) (any, error) {
		start := time.Now()
		data, err := fn(ctx, args)
		s.metrics.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		if err != nil && !isControlSignal(err) {
			s.metrics.errors.WithLabelValues(route).Inc()
		}
		return data, err
	}
}

// isControlSignal reports whether err is a redirect or status-override
// signal rather than a failure.
func isControlSignal(err error) bool {
	var redirect *loader.RedirectError
	if errors.As(err, &redirect) {
		return true
	}
	var status *loader.StatusCodeError
	return errors.As(err, &status)
}
