package prometheus

import (
	"sync"
	"time"

	"github.com/Meenakshi-1306/Tutedude/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthSuccessCounter  prometheus.Counter
	AuthErrorsCounter   *prometheus.CounterVec

	// Store operation metrics
	StoreOperationDuration *prometheus.HistogramVec

	// Order metrics
	OrderOperationsCounter  *prometheus.CounterVec
	OrderTransitionsCounter *prometheus.CounterVec

	// FSSAI report metrics
	FSSAIReportsCounter  *prometheus.CounterVec
	MailFailuresCounter  prometheus.Counter
	EventPublishFailures *prometheus.CounterVec

	// Supplier search metrics
	SupplierSearchResults prometheus.Histogram

	initOnce sync.Once
)

func init() {
	build(config.ServiceName)
}

// build creates every collector under the given name prefix. Collectors are
// usable without registration, which keeps handlers testable.
func build(prefix string) {
	AuthAttemptsCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: prefix + "_auth_attempts_total",
		Help: "Total number of login attempts",
	})

	AuthSuccessCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: prefix + "_auth_success_total",
		Help: "Total number of successful logins and registrations",
	})

	AuthErrorsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prefix + "_auth_errors_total",
		Help: "Total number of authentication errors by reason",
	}, []string{"reason"})

	StoreOperationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prefix + "_store_operation_duration_seconds",
		Help:    "Duration of record store operations in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation_type"})

	OrderOperationsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prefix + "_order_operations_total",
		Help: "Total number of order operations",
	}, []string{"operation"})

	OrderTransitionsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prefix + "_order_transitions_total",
		Help: "Order status transitions by target status and outcome",
	}, []string{"to", "outcome"})

	FSSAIReportsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prefix + "_fssai_reports_total",
		Help: "Total number of FSSAI reports submitted by severity",
	}, []string{"severity"})

	MailFailuresCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: prefix + "_fssai_mail_failures_total",
		Help: "Total number of FSSAI notification mails that failed to send",
	})

	EventPublishFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: prefix + "_event_publish_failures_total",
		Help: "Total number of domain events that could not be published",
	}, []string{"topic"})

	SupplierSearchResults = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    prefix + "_supplier_search_results",
		Help:    "Number of suppliers returned by proximity searches",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
	})
}

// InitMetrics rebuilds the collectors with the configured prefix and
// registers them with the default registry. Only the first call has effect.
func InitMetrics(cfg *config.Config) {
	initOnce.Do(func() {
		build(cfg.Metrics.Prefix)
		prometheus.MustRegister(
			AuthAttemptsCounter,
			AuthSuccessCounter,
			AuthErrorsCounter,
			StoreOperationDuration,
			OrderOperationsCounter,
			OrderTransitionsCounter,
			FSSAIReportsCounter,
			MailFailuresCounter,
			EventPublishFailures,
			SupplierSearchResults,
		)
	})
}

// TrackStoreOperation returns a function that records the duration of a store operation
func TrackStoreOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		StoreOperationDuration.WithLabelValues(operationType).Observe(time.Since(startTime).Seconds())
	}
}

// RecordAuthError increments the authentication error counter for a reason
func RecordAuthError(reason string) {
	AuthErrorsCounter.WithLabelValues(reason).Inc()
}

// RecordOrderOperation increments the counter for order operations
func RecordOrderOperation(operation string) {
	OrderOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordOrderTransition counts an attempted status change
func RecordOrderTransition(to string, allowed bool) {
	outcome := "applied"
	if !allowed {
		outcome = "rejected"
	}
	OrderTransitionsCounter.WithLabelValues(to, outcome).Inc()
}
