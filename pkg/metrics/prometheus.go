// Package metrics provides Prometheus metrics for the pool scorer.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every metric the scorer exports.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Batch metrics
	batchesScored      prometheus.Counter
	guessesScored      prometheus.Counter
	batchFailures      *prometheus.CounterVec
	scoringLatency     prometheus.Histogram
	lastBatchSize      prometheus.Gauge
	lastBatchTimestamp prometheus.Gauge

	// Field metrics from the latest batch
	fieldDifficulty  *prometheus.GaugeVec
	fieldMaxDistance *prometheus.GaugeVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "babypool",
		subsystem:        "scorer",
		histogramBuckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 50, 100, 500},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.batchesScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batches_scored_total",
		Help:      "Total number of guess batches scored",
	})

	m.guessesScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "guesses_scored_total",
		Help:      "Total number of individual guesses scored",
	})

	m.batchFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_failures_total",
		Help:      "Batches rejected, by error kind",
	}, []string{"kind"})

	m.scoringLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_latency_milliseconds",
		Help:      "Time spent scoring one batch in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.lastBatchSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_batch_guesses",
		Help:      "Number of guesses in the most recent batch",
	})

	m.lastBatchTimestamp = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_batch_timestamp_seconds",
		Help:      "Unix time of the most recent successful batch",
	})

	m.fieldDifficulty = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "field_difficulty",
		Help:      "Mean scaled distance per field in the most recent batch",
	}, []string{"field"})

	m.fieldMaxDistance = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "field_max_distance",
		Help:      "Largest scaled distance per field in the most recent batch",
	}, []string{"field"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.httpErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "errors_total",
		Help:      "HTTP error responses by endpoint and error type",
	}, []string{"endpoint", "method", "error_type"})
}

// RecordBatch records a successfully scored batch of n guesses.
func RecordBatch(n int, latencyMs float64, unixSeconds float64) {
	globalManager.batchesScored.Inc()
	globalManager.guessesScored.Add(float64(n))
	globalManager.scoringLatency.Observe(latencyMs)
	globalManager.lastBatchSize.Set(float64(n))
	globalManager.lastBatchTimestamp.Set(unixSeconds)
}

// RecordBatchFailure counts a rejected batch under kind.
func RecordBatchFailure(kind string) {
	globalManager.batchFailures.WithLabelValues(kind).Inc()
}

// UpdateFieldStats publishes the latest difficulty and max distance of field.
func UpdateFieldStats(field string, difficulty, maxDistance float64) {
	globalManager.fieldDifficulty.WithLabelValues(field).Set(difficulty)
	globalManager.fieldMaxDistance.WithLabelValues(field).Set(maxDistance)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordHTTPError records an error response.
func RecordHTTPError(endpoint, method, errorType string) {
	globalManager.httpErrors.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the registry in the text exposition format for the
// node exporter textfile collector. The write is atomic.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, customRegistry); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteTextfile, err)
	}
	return nil
}
