package prometheus

import (
	"time"

	"affiliate-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Product metrics
	ProductOperationsCounter prometheus.CounterVec

	// Search metrics
	SearchQueriesCounter prometheus.CounterVec

	// Affiliate link tracking metrics
	LinkTrackingCounter prometheus.CounterVec

	// Saved product metrics
	SavedOperationsCounter prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	prefix := config.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	ProductOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_product_operations_total",
			Help: "Total number of product operations",
		},
		[]string{"operation"},
	)

	SearchQueriesCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_search_queries_total",
			Help: "Total number of product searches",
		},
		[]string{"source"},
	)

	LinkTrackingCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_link_tracking_total",
			Help: "Total number of affiliate link tracking events",
		},
		[]string{"metric"},
	)

	SavedOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_saved_operations_total",
			Help: "Total number of save/unsave operations",
		},
		[]string{"operation"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordProductOperation increments the counter for product operations
func RecordProductOperation(operation string) {
	ProductOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordSearch increments the counter for search queries by source
func RecordSearch(source string) {
	SearchQueriesCounter.WithLabelValues(source).Inc()
}

// RecordLinkTracking increments the counter for link tracking events
func RecordLinkTracking(metric string) {
	LinkTrackingCounter.WithLabelValues(metric).Inc()
}

// RecordSavedOperation increments the counter for save/unsave operations
func RecordSavedOperation(operation string) {
	SavedOperationsCounter.WithLabelValues(operation).Inc()
}
