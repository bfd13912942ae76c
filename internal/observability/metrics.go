package observability

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the prometheus collectors of one process.
type Metrics struct {
	registry *prometheus.Registry

	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	errors      *prometheus.CounterVec
	transitions *prometheus.CounterVec
	uploads     *prometheus.CounterVec
	submissions *prometheus.CounterVec
	wizards     prometheus.Gauge
}

// NewMetrics registers collectors on a fresh registry under namespace.
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"route", "method", "status"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "Total number of error responses by error code",
		}, []string{"route", "method", "code"}),
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wizard_transitions_total",
			Help:      "Wizard step transitions by kind and outcome",
		}, []string{"transition", "outcome"}),
		uploads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "media_uploads_total",
			Help:      "Image uploads by field and outcome",
		}, []string{"field", "outcome"}),
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Business submissions by outcome",
		}, []string{"outcome"}),
		wizards: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "wizards_active",
			Help:      "Number of live wizards held in memory",
		}),
	}
}

// RecordRequest counts a served request.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordError counts an error response by its code.
func (m *Metrics) RecordError(route, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(route, method, code).Inc()
}

// RecordTransition counts a wizard transition such as next, back or submit.
func (m *Metrics) RecordTransition(transition string, err error) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(transition, outcome(err)).Inc()
}

// RecordUpload counts a finished image upload.
func (m *Metrics) RecordUpload(field string, err error) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(field, outcome(err)).Inc()
}

// RecordSubmission counts an accepted or rejected submission.
func (m *Metrics) RecordSubmission(err error) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome(err)).Inc()
}

// SetActiveWizards reports the registry size.
func (m *Metrics) SetActiveWizards(n int) {
	if m == nil {
		return
	}
	m.wizards.Set(float64(n))
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
