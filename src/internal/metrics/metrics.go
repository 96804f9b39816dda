// FILE: idevlog/src/internal/metrics/metrics.go
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Line outcomes
const (
	OutcomeDelivered    = "delivered"
	OutcomeFiltered     = "filtered"
	OutcomeUnparsed     = "unparsed"
	OutcomeShortCircuit = "short_circuit"
)

// Metrics holds the prometheus collectors of one syslog engine. Each instance
// owns its registry so several engines can coexist in one process.
// All methods are safe on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	chunks          prometheus.Counter
	bytes           prometheus.Counter
	lines           *prometheus.CounterVec
	transportErrors prometheus.Counter
	workerStarts    prometheus.Counter
	workersRunning  prometheus.Gauge
}

func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "idevlog"
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		chunks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunks_received_total",
			Help:      "Raw frames received from the device syslog relay",
		}),
		bytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bytes_received_total",
			Help:      "Bytes received from the device syslog relay",
		}),
		lines: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_total",
			Help:      "Syslog lines by processing outcome",
		}, []string{"outcome"}),
		transportErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transport_errors_total",
			Help:      "Failed receive calls on the device service",
		}),
		workerStarts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "worker_starts_total",
			Help:      "Log workers spawned",
		}),
		workersRunning: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "workers_running",
			Help:      "Log workers currently running",
		}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ChunkReceived(size int) {
	if m == nil {
		return
	}
	m.chunks.Inc()
	m.bytes.Add(float64(size))
}

func (m *Metrics) Line(outcome string) {
	if m == nil {
		return
	}
	m.lines.WithLabelValues(outcome).Inc()
}

func (m *Metrics) TransportError() {
	if m == nil {
		return
	}
	m.transportErrors.Inc()
}

func (m *Metrics) WorkerStarted() {
	if m == nil {
		return
	}
	m.workerStarts.Inc()
	m.workersRunning.Inc()
}

func (m *Metrics) WorkerStopped() {
	if m == nil {
		return
	}
	m.workersRunning.Dec()
}
