package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ExtractionRuns counts extraction runs by outcome (success, error).
	ExtractionRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extraction_runs_total",
			Help: "Total number of extraction runs by outcome",
		},
		[]string{"status"},
	)

	// PublishFailures counts failed publishes to the receiving API.
	PublishFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "publish_failures_total",
			Help: "Total number of failed payload publishes",
		},
	)

	// UpcomingEntries is the size of the upcoming window from the last run.
	UpcomingEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "schedule_upcoming_entries",
			Help: "Number of entries in the upcoming window from the last extraction",
		},
	)
)

var initOnce sync.Once

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, ExtractionRuns, PublishFailures, UpcomingEntries)
	})
}

// RecordRequest records duration and count for an HTTP request. Call from middleware.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncExtractionRuns increments the run counter for the given outcome.
func IncExtractionRuns(status string) {
	ExtractionRuns.WithLabelValues(status).Inc()
}

// IncPublishFailures increments the publish failure counter.
func IncPublishFailures() {
	PublishFailures.Inc()
}

// SetUpcomingEntries records the upcoming window size of the last run.
func SetUpcomingEntries(n int) {
	UpcomingEntries.Set(float64(n))
}
