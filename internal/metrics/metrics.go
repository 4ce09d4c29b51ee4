// Package metrics exposes Prometheus instruments for HTTP traffic, content
// generation and rendering.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pedagogy_studio"

// Metrics owns a private registry so tests and multiple servers in one
// process do not collide. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
	generations  *prometheus.CounterVec
	genLatency   *prometheus.HistogramVec
	renders      *prometheus.CounterVec
	wsActive     prometheus.Gauge
	catalogSrc   *prometheus.CounterVec
}

// New creates and registers all instruments.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Generation requests by pedagogy and outcome.",
		}, []string{"pedagogy", "outcome"}),
		genLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Backend generation latency.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 160},
		}, []string{"pedagogy"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Rendered views by layout and state.",
		}, []string{"layout", "state"}),
		wsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_connections",
			Help:      "Open generation WebSocket connections.",
		}),
		catalogSrc: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_requests_total",
			Help:      "Catalog lookups by outcome.",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpLatency,
		m.generations, m.genLatency,
		m.renders, m.wsActive, m.catalogSrc,
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveGeneration records one backend call. outcome is "ok" or "error".
func (m *Metrics) ObserveGeneration(pedagogy, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(pedagogy, outcome).Inc()
	m.genLatency.WithLabelValues(pedagogy).Observe(d.Seconds())
}

// ObserveRender records one rendered view. state is "content", "pending",
// "empty" or "none".
func (m *Metrics) ObserveRender(layout, state string) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(layout, state).Inc()
}

// ObserveCatalog records a catalog lookup outcome.
func (m *Metrics) ObserveCatalog(outcome string) {
	if m == nil {
		return
	}
	m.catalogSrc.WithLabelValues(outcome).Inc()
}

func (m *Metrics) WebSocketOpened() {
	if m != nil {
		m.wsActive.Inc()
	}
}

func (m *Metrics) WebSocketClosed() {
	if m != nil {
		m.wsActive.Dec()
	}
}
