package prometheus

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthSuccessCounter  prometheus.Counter
	AuthErrorsCounter   *prometheus.CounterVec
	LoginCounter        *prometheus.CounterVec

	// Database operation metrics
	DbOperationDuration *prometheus.HistogramVec

	// Resource metrics
	ResourceOperationsCounter *prometheus.CounterVec
	RegistrationOutcomes      *prometheus.CounterVec

	once sync.Once
)

// InitMetrics registers the application metrics under prefix. Only the first call has effect.
func InitMetrics(prefix string) {
	once.Do(func() {
		HttpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		)

		HttpRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		)

		AuthAttemptsCounter = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_auth_attempts_total",
				Help: "Total number of bearer token checks",
			},
		)

		AuthSuccessCounter = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_auth_success_total",
				Help: "Total number of accepted bearer tokens",
			},
		)

		AuthErrorsCounter = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_auth_errors_total",
				Help: "Total number of rejected authentications by reason",
			},
			[]string{"reason"},
		)

		LoginCounter = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_logins_total",
				Help: "Total number of login attempts by result",
			},
			[]string{"result"},
		)

		DbOperationDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_db_operation_duration_seconds",
				Help:    "Duration of database operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation_type"},
		)

		ResourceOperationsCounter = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_resource_operations_total",
				Help: "Total number of completed resource operations",
			},
			[]string{"resource", "operation"},
		)

		RegistrationOutcomes = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_event_registrations_total",
				Help: "Event registration attempts by outcome",
			},
			[]string{"outcome"},
		)
	})
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		DbOperationDuration.WithLabelValues(operationType).Observe(time.Since(startTime).Seconds())
	}
}

// RecordResourceOperation counts a completed operation on resource
func RecordResourceOperation(resource, operation string) {
	ResourceOperationsCounter.WithLabelValues(resource, operation).Inc()
}

// RecordAuthError counts a rejected authentication
func RecordAuthError(reason string) {
	AuthErrorsCounter.WithLabelValues(reason).Inc()
}

// RecordLogin counts a login attempt
func RecordLogin(result string) {
	LoginCounter.WithLabelValues(result).Inc()
}

// RecordRegistration counts an event registration outcome
func RecordRegistration(outcome string) {
	RegistrationOutcomes.WithLabelValues(outcome).Inc()
}
