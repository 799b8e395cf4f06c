package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Entry metrics
	EntriesCreated prometheus.Counter
	EntriesUpdated prometheus.Counter
	EntriesDeleted prometheus.Counter

	// Confirmation workflow metrics
	ConfirmationsRequested prometheus.Counter
	ConfirmationsApproved  prometheus.Counter
	ConfirmationsRejected  prometheus.Counter
	ConfirmationDuration   prometheus.Histogram
	FallbackWrites         prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBErrors *prometheus.CounterVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec
	AuthFailures *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates metrics against a specific registerer.
// Tests pass a fresh registry to avoid duplicate registration panics.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		EntriesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "daftar_entries_created_total",
			Help: "Total number of sale entries created",
		}),
		EntriesUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "daftar_entries_updated_total",
			Help: "Total number of sale entries updated",
		}),
		EntriesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "daftar_entries_deleted_total",
			Help: "Total number of sale entries deleted",
		}),
		ConfirmationsRequested: factory.NewCounter(prometheus.CounterOpts{
			Name: "daftar_confirmations_requested_total",
			Help: "Total number of payment confirmations requested",
		}),
		ConfirmationsApproved: factory.NewCounter(prometheus.CounterOpts{
			Name: "daftar_confirmations_approved_total",
			Help: "Total number of payment confirmations approved",
		}),
		ConfirmationsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "daftar_confirmations_rejected_total",
			Help: "Total number of payment confirmations rejected",
		}),
		ConfirmationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "daftar_confirmation_duration_seconds",
			Help:    "Duration of confirmation workflow transactions",
			Buckets: prometheus.DefBuckets,
		}),
		FallbackWrites: factory.NewCounter(prometheus.CounterOpts{
			Name: "daftar_confirmation_fallback_writes_total",
			Help: "Direct paid writes taken because the confirmations table is missing",
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "daftar_http_requests_total",
			Help: "Total HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "daftar_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		DBErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "daftar_db_errors_total",
			Help: "Database errors by operation",
		}, []string{"operation"}),
		AuthAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "daftar_auth_attempts_total",
			Help: "Authentication attempts",
		}, []string{"method"}),
		AuthFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "daftar_auth_failures_total",
			Help: "Authentication failures",
		}, []string{"reason"}),
	}
}
