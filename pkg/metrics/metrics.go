// Package metrics exposes Prometheus instrumentation for mounted modules.
// Every Manager owns a private registry so instances never collide.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/JaimeStill/pledge/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager holds the HTTP collectors and their registry.
type Manager struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight prometheus.Gauge
}

// New creates a manager whose metric names are prefixed with namespace.
func New(namespace string) *Manager {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Manager{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by mount prefix, method and status code.",
		}, []string{"mount", "method", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by mount prefix.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"mount"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "HTTP requests currently being served.",
		}),
	}

	registry.MustRegister(m.requests, m.duration, m.inflight)
	return m
}

// Registry returns the private registry.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records requests served under the given mount label.
func (m *Manager) Middleware(mount string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := middleware.NewRecorder(w)

			m.inflight.Inc()
			defer m.inflight.Dec()

			next.ServeHTTP(rec, r)

			m.requests.WithLabelValues(mount, r.Method, strconv.Itoa(rec.Status)).Inc()
			m.duration.WithLabelValues(mount).Observe(time.Since(start).Seconds())
		})
	}
}
