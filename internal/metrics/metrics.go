// Package metrics holds the Prometheus collectors for the HTTP server and the advisor.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "goalmaster"

// Completion sources.
const (
	SourceModel    = "model"
	SourceTemplate = "template"
)

type Metrics struct {
	gatherer prometheus.Gatherer

	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
	completions     *prometheus.CounterVec
	rateLimited     *prometheus.CounterVec
}

// New builds Metrics on a private registry, so several instances can coexist in one process.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	return MustNewMetrics(reg, reg)
}

// MustNewMetrics registers all collectors on reg and panics on a registration error.
func MustNewMetrics(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests by route and status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	inFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served.",
		},
	)
	completions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "advisor",
			Name:      "completions_total",
			Help:      "Advisor results by operation and by whether the model or a template produced them.",
		},
		[]string{"operation", "source"},
	)
	rateLimited := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-IP rate limiter.",
		},
		[]string{"route"},
	)

	reg.MustRegister(requestDuration, inFlight, completions, rateLimited)

	return &Metrics{
		gatherer:        gatherer,
		requestDuration: requestDuration,
		inFlight:        inFlight,
		completions:     completions,
		rateLimited:     rateLimited,
	}
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

func (m *Metrics) RequestStarted() {
	if m == nil {
		return
	}
	m.inFlight.Inc()
}

func (m *Metrics) RequestFinished() {
	if m == nil {
		return
	}
	m.inFlight.Dec()
}

func (m *Metrics) IncCompletion(operation, source string) {
	if m == nil {
		return
	}
	m.completions.WithLabelValues(operation, source).Inc()
}

func (m *Metrics) IncRateLimited(route string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(route).Inc()
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
