// Package metrics provides Prometheus metrics for the ripper ratings
// service.
package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Ingest metrics.
	matchesFetched   prometheus.Counter
	duplicateMatches prometheus.Counter
	fetchRequests    prometheus.Counter
	fetchErrors      prometheus.Counter
	fetchLatency     prometheus.Histogram

	// Computation metrics.
	computationDuration *prometheus.HistogramVec
	computationErrors   *prometheus.CounterVec
	tablesStored        *prometheus.CounterVec
	teamCount           *prometheus.GaugeVec

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Publish metrics.
	publishes     prometheus.Counter
	publishErrors prometheus.Counter

	// System metrics.
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "ripper",
		subsystem:        "ratings",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
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

	m.matchesFetched = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_fetched_total",
		Help:      "Total number of completed matches ingested",
	})
	m.duplicateMatches = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_duplicate_total",
		Help:      "Total number of duplicate matches suppressed at ingest",
	})
	m.fetchRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_requests_total",
		Help:      "Total number of scoreboard requests issued",
	})
	m.fetchErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_errors_total",
		Help:      "Total number of scoreboard requests that failed after retries",
	})
	m.fetchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_latency_milliseconds",
		Help:      "Histogram of scoreboard request latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.computationDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "computation_duration_milliseconds",
			Help:      "Histogram of rating computation duration by algorithm",
			Buckets:   m.histogramBuckets,
		},
		[]string{"algorithm"},
	)
	m.computationErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "computation_errors_total",
			Help:      "Total number of failed rating computations by algorithm",
		},
		[]string{"algorithm"},
	)
	m.tablesStored = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "tables_stored_total",
			Help:      "Total number of rating tables stored by algorithm",
		},
		[]string{"algorithm"},
	)
	m.teamCount = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "team_count",
			Help:      "Number of teams in the latest table by algorithm",
		},
		[]string{"algorithm"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.publishes = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "publishes_total",
		Help:      "Total number of successful gist publishes",
	})
	m.publishErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "publish_errors_total",
		Help:      "Total number of failed gist publishes",
	})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current heap allocation in bytes",
	})
	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers delegating to the global manager.

// RecordMatchesFetched counts successfully ingested matches.
func RecordMatchesFetched(count int) {
	if globalManager.enabled && count > 0 {
		globalManager.matchesFetched.Add(float64(count))
	}
}

// RecordDuplicateMatch counts a match suppressed by dedupe.
func RecordDuplicateMatch() {
	if globalManager.enabled {
		globalManager.duplicateMatches.Inc()
	}
}

// RecordFetchRequest counts an issued scoreboard request.
func RecordFetchRequest() {
	if globalManager.enabled {
		globalManager.fetchRequests.Inc()
	}
}

// RecordFetchError counts a scoreboard request that failed after
// retries.
func RecordFetchError() {
	if globalManager.enabled {
		globalManager.fetchErrors.Inc()
	}
}

// ObserveFetchLatency records one scoreboard request's latency.
func ObserveFetchLatency(ms float64) {
	if globalManager.enabled {
		globalManager.fetchLatency.Observe(ms)
	}
}

// ObserveComputation records one rating computation's duration.
func ObserveComputation(algorithm string, ms float64) {
	if globalManager.enabled {
		globalManager.computationDuration.WithLabelValues(algorithm).Observe(ms)
	}
}

// RecordComputationError counts a failed rating computation.
func RecordComputationError(algorithm string) {
	if globalManager.enabled {
		globalManager.computationErrors.WithLabelValues(algorithm).Inc()
	}
}

// RecordTableStored counts a stored rating table.
func RecordTableStored(algorithm string) {
	if globalManager.enabled {
		globalManager.tablesStored.WithLabelValues(algorithm).Inc()
	}
}

// UpdateTeamCount sets the team gauge for an algorithm's latest table.
func UpdateTeamCount(algorithm string, n int) {
	if globalManager.enabled {
		globalManager.teamCount.WithLabelValues(algorithm).Set(float64(n))
	}
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records one HTTP request's duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
	}
}

// RecordPublish counts a successful gist publish.
func RecordPublish() {
	if globalManager.enabled {
		globalManager.publishes.Inc()
	}
}

// RecordPublishError counts a failed gist publish.
func RecordPublishError() {
	if globalManager.enabled {
		globalManager.publishErrors.Inc()
	}
}

// UpdateSystemMetrics refreshes the memory and goroutine gauges.
func UpdateSystemMetrics() {
	if !globalManager.enabled {
		return
	}
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	globalManager.systemMemoryUsage.Set(float64(stats.HeapAlloc))
	globalManager.systemGoroutineCount.Set(float64(runtime.NumGoroutine()))
}
