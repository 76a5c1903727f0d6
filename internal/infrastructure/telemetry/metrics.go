package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the Prometheus registry of the service. It observes HTTP
// traffic, event dispatch, ledger jobs, exports and notification streams.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	events        *prometheus.CounterVec
	jobs          *prometheus.CounterVec
	jobDuration   *prometheus.HistogramVec
	exports       *prometheus.CounterVec
	streamClients prometheus.Gauge
}

// NewMetrics creates the collectors under namespace on a private registry
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "dispatched_total",
			Help:      "Domain event deliveries by type and result.",
		}, []string{"event_type", "result"}),
		jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "jobs_total",
			Help:      "Ledger job attempts by type and status.",
		}, []string{"job_type", "status"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scheduler",
			Name:      "job_duration_seconds",
			Help:      "Ledger job run time by type.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 5, 15, 60, 300},
		}, []string{"job_type"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reports",
			Name:      "exports_total",
			Help:      "Report exports by format and outcome (ok, partial, failed).",
		}, []string{"format", "outcome"}),
		streamClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "notifications",
			Name:      "stream_clients",
			Help:      "Open notification stream connections.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.events,
		m.jobs,
		m.jobDuration,
		m.exports,
		m.streamClients,
	)
	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTP records one finished request. route is the matched pattern,
// never the raw path.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveEvent records one handler delivery of a domain event
func (m *Metrics) ObserveEvent(eventType string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.events.WithLabelValues(eventType, result).Inc()
}

// ObserveJob records one ledger job attempt
func (m *Metrics) ObserveJob(jobType, status string, elapsed time.Duration) {
	m.jobs.WithLabelValues(jobType, status).Inc()
	m.jobDuration.WithLabelValues(jobType).Observe(elapsed.Seconds())
}

// ObserveExport records one export request
func (m *Metrics) ObserveExport(format string, failedSections int, err error) {
	outcome := "ok"
	switch {
	case err != nil:
		outcome = "failed"
	case failedSections > 0:
		outcome = "partial"
	}
	m.exports.WithLabelValues(format, outcome).Inc()
}

// StreamOpened counts a notification stream connection
func (m *Metrics) StreamOpened() { m.streamClients.Inc() }

// StreamClosed releases a notification stream connection
func (m *Metrics) StreamClosed() { m.streamClients.Dec() }
