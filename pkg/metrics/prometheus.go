// Package metrics provides Prometheus metrics for the stagebook service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Top Charts / Discover
	chartRequests    prometheus.Counter
	discoverRequests prometheus.Counter
	discoverResults  prometheus.Histogram

	// Requirement board
	requirementsCreated  prometheus.Counter
	requirementsRejected *prometheus.CounterVec
	requirementsTotal    prometheus.Gauge
	idempotentReplays    prometheus.Counter

	// Persistence
	storeLoadCorrupt *prometheus.CounterVec
	storeLatency     *prometheus.HistogramVec
	storeErrors      *prometheus.CounterVec

	// Share chain
	shareOutcomes *prometheus.CounterVec

	// Notifications
	notifications *prometheus.CounterVec

	// Queue
	queueSize        prometheus.Gauge
	queueCapacity    prometheus.Gauge
	queueUtilization prometheus.Gauge

	// Workers
	workerCount             prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // registry without default Go collectors

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "stagebook",
		subsystem:        "core",
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

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: buckets,
	})
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: m.histogramBuckets,
	}, labels)
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	m.chartRequests = m.counter("chart_requests_total", "Total number of Top Charts rankings computed")
	m.discoverRequests = m.counter("discover_requests_total", "Total number of Discover queries served")
	m.discoverResults = m.histogram("discover_results", "Number of listings returned per Discover query",
		[]float64{0, 1, 2, 5, 10, 25, 50, 100})

	m.requirementsCreated = m.counter("requirements_created_total", "Total number of requirements posted")
	m.requirementsRejected = m.counterVec("requirements_rejected_total", "Requirement posts rejected by validation", "reason")
	m.requirementsTotal = m.gauge("requirements", "Requirements currently on the board")
	m.idempotentReplays = m.counter("idempotent_replays_total", "POST requests answered from an idempotency key")

	m.storeLoadCorrupt = m.counterVec("store_load_corrupt_total", "Stored collections that failed to decode and were replaced by empty", "key")
	m.storeLatency = m.histogramVec("store_operation_latency_milliseconds", "Key-value store operation latency in milliseconds", "driver", "op")
	m.storeErrors = m.counterVec("store_errors_total", "Key-value store operation errors", "driver", "op")

	m.shareOutcomes = m.counterVec("share_outcomes_total", "Share chain outcomes", "outcome")

	m.notifications = m.counterVec("notifications_total", "Notifications by delivery status", "status")

	m.queueSize = m.gauge("queue_size", "Current size of the notification queue")
	m.queueCapacity = m.gauge("queue_capacity", "Capacity of the notification queue")
	m.queueUtilization = m.gauge("queue_utilization_ratio", "Notification queue utilization (size / capacity)")

	m.workerCount = m.gauge("worker_count", "Number of notification workers")
	m.workerProcessingLatency = m.histogram("worker_processing_latency_milliseconds", "Notification delivery latency in milliseconds", m.histogramBuckets)
	m.workerErrors = m.counter("worker_errors_total", "Notification delivery errors")

	m.httpRequests = m.counterVec("http_requests_total", "Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration in milliseconds", "endpoint", "method", "status_code")

	m.errorRateByType = m.counterVec("errors_by_type_total", "Errors by type and severity", "error_type", "severity")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total", "Errors by endpoint", "endpoint", "method", "error_type")
	m.errorLatency = m.histogramVec("error_latency_milliseconds", "Latency of failed operations in milliseconds", "component", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000})
}

func on() bool { return globalManager.enabled }

// RecordChartRequest counts one Top Charts ranking.
func RecordChartRequest() {
	if on() {
		globalManager.chartRequests.Inc()
	}
}

// RecordDiscoverQuery counts one Discover query and its result size.
func RecordDiscoverQuery(results int) {
	if on() {
		globalManager.discoverRequests.Inc()
		globalManager.discoverResults.Observe(float64(results))
	}
}

// RecordRequirementCreated counts a posted requirement.
func RecordRequirementCreated() {
	if on() {
		globalManager.requirementsCreated.Inc()
	}
}

// RecordRequirementRejected counts a rejected post by reason.
func RecordRequirementRejected(reason string) {
	if on() {
		globalManager.requirementsRejected.WithLabelValues(reason).Inc()
	}
}

// UpdateRequirementsTotal sets the number of requirements on the board.
func UpdateRequirementsTotal(n int) {
	if on() {
		globalManager.requirementsTotal.Set(float64(n))
	}
}

// RecordIdempotentReplay counts a POST answered from an idempotency key.
func RecordIdempotentReplay() {
	if on() {
		globalManager.idempotentReplays.Inc()
	}
}

// RecordStoreLoadCorrupt counts a stored value that failed to decode.
func RecordStoreLoadCorrupt(key string) {
	if on() {
		globalManager.storeLoadCorrupt.WithLabelValues(key).Inc()
	}
}

// RecordStoreOperation records the latency of a key-value store operation.
func RecordStoreOperation(driver, op string, latencyMs float64) {
	if on() {
		globalManager.storeLatency.WithLabelValues(driver, op).Observe(latencyMs)
	}
}

// RecordStoreError counts a failed key-value store operation.
func RecordStoreError(driver, op string) {
	if on() {
		globalManager.storeErrors.WithLabelValues(driver, op).Inc()
	}
}

// RecordShareOutcome counts a share chain result.
func RecordShareOutcome(outcome string) {
	if on() {
		globalManager.shareOutcomes.WithLabelValues(outcome).Inc()
	}
}

// RecordNotification counts a notification by status: enqueued, dropped, delivered.
func RecordNotification(status string) {
	if on() {
		globalManager.notifications.WithLabelValues(status).Inc()
	}
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	if on() {
		globalManager.queueSize.Set(float64(size))
	}
}

// UpdateQueueCapacity sets the queue capacity.
func UpdateQueueCapacity(capacity int) {
	if on() {
		globalManager.queueCapacity.Set(float64(capacity))
	}
}

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	if on() {
		globalManager.queueUtilization.Set(utilization)
	}
}

// UpdateWorkerCount sets the number of notification workers.
func UpdateWorkerCount(count int) {
	if on() {
		globalManager.workerCount.Set(float64(count))
	}
}

// RecordWorkerProcessingLatency records how long one delivery took.
func RecordWorkerProcessingLatency(latencyMs float64) {
	if on() {
		globalManager.workerProcessingLatency.Observe(latencyMs)
	}
}

// RecordWorkerError counts a failed delivery.
func RecordWorkerError() {
	if on() {
		globalManager.workerErrors.Inc()
	}
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if on() {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records an HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if on() {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
	}
}

// RecordErrorByType counts an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	if on() {
		globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
	}
}

// RecordErrorByEndpoint counts an error by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if on() {
		globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// RecordErrorLatency records the latency of a failed operation.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	if on() {
		globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
	}
}

// UpdateSystemMemoryUsage sets allocated heap bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	if on() {
		globalManager.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	if on() {
		globalManager.systemGoroutineCount.Set(float64(count))
	}
}

// RecordSystemGCPauseTime records an average GC pause.
func RecordSystemGCPauseTime(pauseMs float64) {
	if on() {
		globalManager.systemGCPauseTime.Observe(pauseMs)
	}
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
