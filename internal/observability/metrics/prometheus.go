// Package metrics provides Prometheus metrics for the document engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all application metrics.
type Metrics struct {
	DocumentsBuilt      prometheus.Counter
	BuildFailures       prometheus.Counter
	ValidationFailures  prometheus.Counter
	SubmissionsOK       prometheus.Counter
	SubmissionsFailed   prometheus.Counter
	RelayRetries        prometheus.Counter
	AuditEventsEmitted  prometheus.Counter
	BuildDuration       prometheus.Histogram
	CircuitBreakerState *prometheus.GaugeVec
}

// New creates and registers all metrics.
func New() *Metrics {
	m := &Metrics{
		DocumentsBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "documents_built_total",
			Help: "Total document bundles built",
		}),
		BuildFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "document_build_failures_total",
			Help: "Total builds aborted by attachment or internal errors",
		}),
		ValidationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "document_validation_failures_total",
			Help: "Total builds rejected by the validation gate",
		}),
		SubmissionsOK: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "document_submissions_total",
			Help: "Total successful submissions",
		}),
		SubmissionsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "document_submission_failures_total",
			Help: "Total failed submissions (container retained)",
		}),
		RelayRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "submission_relay_retries_total",
			Help: "Total re-submission attempts by the relay",
		}),
		AuditEventsEmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "audit_events_emitted_total",
			Help: "Total audit events published",
		}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "document_build_duration_seconds",
			Help:    "Document build duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
		CircuitBreakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		}, []string{"name"}),
	}

	prometheus.MustRegister(
		m.DocumentsBuilt,
		m.BuildFailures,
		m.ValidationFailures,
		m.SubmissionsOK,
		m.SubmissionsFailed,
		m.RelayRetries,
		m.AuditEventsEmitted,
		m.BuildDuration,
		m.CircuitBreakerState,
	)

	return m
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
