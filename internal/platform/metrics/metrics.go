package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "accountkit"

// Account lifecycle events.
const (
	EventRegistered       = "registered"
	EventConfirmed        = "confirmed"
	EventResetRequested   = "reset_requested"
	EventPasswordReset    = "password_reset"
	EventLoggedIn         = "logged_in"
	EventNotificationSent = "notification_sent"
	EventNotificationFail = "notification_failed"

	// Reported by the queue worker once a queued notification is mailed.
	EventMailDelivered = "mail_delivered"
	EventMailFailed    = "mail_failed"
)

// Recorder counts account lifecycle events.
type Recorder interface {
	RecordEvent(event string)
}

type PrometheusRecorder struct {
	events   *prometheus.CounterVec
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ Recorder = (*PrometheusRecorder)(nil)

// NewPrometheusRecorder registers the application collectors with reg.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	factory := promauto.With(reg)

	return &PrometheusRecorder{
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "account_events_total",
			Help:      "Account lifecycle events by kind.",
		}, []string{"event"}),
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "code"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "code"}),
	}
}

func (p *PrometheusRecorder) RecordEvent(event string) {
	p.events.WithLabelValues(event).Inc()
}

// Instrument is a middleware that counts and times every request.
func (p *PrometheusRecorder) Instrument(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerCounter(p.requests,
		promhttp.InstrumentHandlerDuration(p.duration, next))
}

// NewRegistry returns a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

type NoopRecorder struct{}

func (NoopRecorder) RecordEvent(string) {}
