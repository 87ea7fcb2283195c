package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds every metric the engine records, grouped by layer.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Descriptor compute layer
	ComputeTotal    CounterVec
	ComputeDuration HistogramVec
	BatchSize       HistogramVec
	MoleculeAtoms   HistogramVec

	// Messaging layer
	MessagesPublishedTotal CounterVec
	MessagesConsumedTotal  CounterVec
	MessageProcessDuration HistogramVec
	DLQTotal               CounterVec

	// System health
	ServiceUptime     GaugeVec
	HealthCheckStatus GaugeVec
	ErrorsTotal       CounterVec
}

// Default buckets.  Descriptor computation is microsecond-to-millisecond
// work, so the compute buckets start far below the HTTP ones.
var (
	DefaultHTTPDurationBuckets    = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultComputeDurationBuckets = []float64{.00001, .0001, .001, .01, .1, .5, 1, 5}
	DefaultBatchSizeBuckets       = []float64{1, 4, 16, 64, 256, 1024}
	DefaultAtomCountBuckets       = []float64{1, 8, 32, 128, 512, 2048, 8192}
)

// NewAppMetrics registers all engine metrics on the collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	// HTTP
	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total",
		"Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds",
		"HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests",
		"In-flight HTTP requests", "method")

	// Compute
	m.ComputeTotal = collector.RegisterCounter("compute_total",
		"Descriptor computations", "descriptor", "status")
	m.ComputeDuration = collector.RegisterHistogram("compute_duration_seconds",
		"Descriptor computation duration", DefaultComputeDurationBuckets, "descriptor")
	m.BatchSize = collector.RegisterHistogram("compute_batch_size",
		"Molecules per batch request", DefaultBatchSizeBuckets, "surface")
	m.MoleculeAtoms = collector.RegisterHistogram("molecule_atom_count",
		"Atoms per computed molecule", DefaultAtomCountBuckets, "descriptor")

	// Messaging
	m.MessagesPublishedTotal = collector.RegisterCounter("messages_published_total",
		"Messages published to Kafka", "topic", "status")
	m.MessagesConsumedTotal = collector.RegisterCounter("messages_consumed_total",
		"Messages consumed from Kafka", "topic", "status")
	m.MessageProcessDuration = collector.RegisterHistogram("message_process_duration_seconds",
		"End-to-end handling time of one consumed message", DefaultHTTPDurationBuckets, "topic")
	m.DLQTotal = collector.RegisterCounter("messages_dead_lettered_total",
		"Messages routed to the dead-letter topic", "topic", "reason")

	// System health
	m.ServiceUptime = collector.RegisterGauge("service_uptime_seconds",
		"Seconds since process start", "service")
	m.HealthCheckStatus = collector.RegisterGauge("health_check_status",
		"Health check status (1=up, 0=down)", "component")
	m.ErrorsTotal = collector.RegisterCounter("errors_total",
		"Errors by component and code", "component", "code")

	return m
}

// RecordHTTPRequest records one completed HTTP request.
func (m *AppMetrics) RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordCompute records one descriptor computation.
func (m *AppMetrics) RecordCompute(descriptor string, atoms int, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.ComputeTotal.WithLabelValues(descriptor, status).Inc()
	m.ComputeDuration.WithLabelValues(descriptor).Observe(duration.Seconds())
	m.MoleculeAtoms.WithLabelValues(descriptor).Observe(float64(atoms))
}

// ObserveBatchSize records the molecule count of one batch request.
func (m *AppMetrics) ObserveBatchSize(surface string, size int) {
	m.BatchSize.WithLabelValues(surface).Observe(float64(size))
}

// RecordPublish records one Kafka publish attempt.
func (m *AppMetrics) RecordPublish(topic string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.MessagesPublishedTotal.WithLabelValues(topic, status).Inc()
}

// RecordConsume records one consumed message and its handling time.
func (m *AppMetrics) RecordConsume(topic string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.MessagesConsumedTotal.WithLabelValues(topic, status).Inc()
	m.MessageProcessDuration.WithLabelValues(topic).Observe(duration.Seconds())
}

// RecordDeadLetter records one message routed to the DLQ.
func (m *AppMetrics) RecordDeadLetter(topic, reason string) {
	m.DLQTotal.WithLabelValues(topic, reason).Inc()
}

// RecordError records one error by component and code.
func (m *AppMetrics) RecordError(component, code string) {
	m.ErrorsTotal.WithLabelValues(component, code).Inc()
}
