package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var histogramBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}

// Fetch outcomes recorded by ObserveFetch.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Collectors groups the Prometheus collectors exported by the service.
type Collectors struct {
	requestTotal   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	fetchTotal     *prometheus.CounterVec
	fetchLatency   *prometheus.HistogramVec
	rateLimitHits  *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. Collectors that are
// already registered are reused, so New may be called more than once against
// the default registry.
func New(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "user_directory",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Count of processed HTTP requests",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "user_directory",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency distribution of HTTP handlers",
			Buckets:   histogramBuckets,
		}, []string{"method", "route", "status"}),
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "user_directory",
			Subsystem: "source",
			Name:      "fetches_total",
			Help:      "Count of user record fetches by operation and outcome",
		}, []string{"operation", "outcome"}),
		fetchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "user_directory",
			Subsystem: "source",
			Name:      "fetch_duration_seconds",
			Help:      "Latency distribution of user record fetches",
			Buckets:   histogramBuckets,
		}, []string{"operation"}),
		rateLimitHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "user_directory",
			Subsystem: "http",
			Name:      "rate_limit_hits_total",
			Help:      "Number of rate-limited responses",
		}, []string{"route"}),
	}

	if reg == nil {
		return c
	}

	c.requestTotal = registerCounter(reg, c.requestTotal)
	c.requestLatency = registerHistogram(reg, c.requestLatency)
	c.fetchTotal = registerCounter(reg, c.fetchTotal)
	c.fetchLatency = registerHistogram(reg, c.fetchLatency)
	c.rateLimitHits = registerCounter(reg, c.rateLimitHits)

	return c
}

func registerCounter(reg prometheus.Registerer, cv *prometheus.CounterVec) *prometheus.CounterVec {
	if err := reg.Register(cv); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
	}
	return cv
}

func registerHistogram(reg prometheus.Registerer, hv *prometheus.HistogramVec) *prometheus.HistogramVec {
	if err := reg.Register(hv); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing
			}
		}
	}
	return hv
}

// ObserveRequest records one handled HTTP request.
func (c *Collectors) ObserveRequest(method, route string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	labels := prometheus.Labels{
		"method": method,
		"route":  route,
		"status": strconv.Itoa(status),
	}
	c.requestTotal.With(labels).Inc()
	c.requestLatency.With(labels).Observe(duration.Seconds())
}

// ObserveFetch records one fetch against the user record source.
func (c *Collectors) ObserveFetch(operation, outcome string, duration time.Duration) {
	if c == nil {
		return
	}
	c.fetchTotal.WithLabelValues(operation, outcome).Inc()
	c.fetchLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// ObserveRateLimited records one request rejected by the rate limiter.
func (c *Collectors) ObserveRateLimited(route string) {
	if c == nil {
		return
	}
	c.rateLimitHits.WithLabelValues(route).Inc()
}
