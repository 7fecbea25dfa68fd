package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// httpDurationBuckets are request latency boundaries in seconds
var httpDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// PrometheusMetrics owns the registry scraped on /metrics.
type PrometheusMetrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
	breakerState    *prometheus.GaugeVec
}

// NewPrometheusMetrics creates a registry with HTTP, breaker and runtime collectors.
func NewPrometheusMetrics(namespace string) *PrometheusMetrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests per route.",
		Buckets:   httpDurationBuckets,
	}, []string{"method", "route"})
	inFlight := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_requests_in_flight",
		Help:      "HTTP requests currently being served.",
	})
	breaker := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "store_breaker_state",
		Help:      "Circuit breaker state of the store (0 closed, 1 half-open, 2 open).",
	}, []string{"breaker"})

	registry.MustRegister(
		requests, duration, inFlight, breaker,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &PrometheusMetrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		requestsTotal:   requests,
		requestDuration: duration,
		inFlight:        inFlight,
		breakerState:    breaker,
	}
}

// Handler returns the /metrics handler.
func (m *PrometheusMetrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registerer exposes the registry for extra collectors.
func (m *PrometheusMetrics) Registerer() prometheus.Registerer {
	return m.registry
}

// Gatherer exposes the registry for tests.
func (m *PrometheusMetrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// RequestStarted marks a request in flight and returns the function that ends it.
func (m *PrometheusMetrics) RequestStarted() func(method, route string, status int, elapsed time.Duration) {
	m.inFlight.Inc()
	return func(method, route string, status int, elapsed time.Duration) {
		m.inFlight.Dec()
		if route == "" {
			route = "unmatched"
		}
		m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
	}
}

// BreakerStateChanged records a circuit breaker transition. state is
// 0 for closed, 1 for half-open and 2 for open.
func (m *PrometheusMetrics) BreakerStateChanged(name string, state int) {
	m.breakerState.WithLabelValues(name).Set(float64(state))
}
