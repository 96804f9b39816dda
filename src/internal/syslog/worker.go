// FILE: idevlog/src/internal/syslog/worker.go
package syslog

import (
	"time"

	"idevlog/src/internal/device"
	"idevlog/src/internal/filter"
	"idevlog/src/internal/metrics"
	"idevlog/src/internal/parser"
	"idevlog/src/internal/sink"

	"github.com/lixenwraith/log"
)

// worker owns one device service handle for its whole life. It is not
// restartable: once it has observed StopLogging a fresh worker is needed.
type worker struct {
	runID      string
	startTime  time.Time
	service    device.Service
	commands   *commandChannel
	chain      *filter.Chain
	sink       sink.Sink
	chunkSize  int
	retryDelay time.Duration
	stats      *counters
	metrics    *metrics.Metrics
	logger     *log.Logger

	// retire is called with StopLogging observed; false means a start
	// arrived meanwhile and the worker keeps running
	retire func(*worker) bool

	// retired is guarded by the owning DeviceSysLog mutex
	retired bool
	done    chan struct{}
}

func (w *worker) run() {
	defer close(w.done)
	defer w.closeService()

	w.logger.Info("msg", "Log worker started",
		"component", "syslog_worker",
		"run_id", w.runID,
		"sink", w.sink.Name(),
		"filters", w.chain.Len())

	state := StopLogging
	for {
		state = w.commands.Poll(state)
		if state == StopLogging {
			if w.retire(w) {
				return
			}
			state = StartLogging
			continue
		}

		data, err := w.service.Receive(w.chunkSize)
		if err != nil {
			w.stats.transportErrors.Add(1)
			w.metrics.TransportError()
			w.logger.Error("msg", "Failed to receive from device log service",
				"component", "syslog_worker",
				"run_id", w.runID,
				"retry_in", w.retryDelay,
				"error", err)
			time.Sleep(w.retryDelay)
			continue
		}

		w.stats.chunksReceived.Add(1)
		w.stats.bytesReceived.Add(uint64(len(data)))
		w.metrics.ChunkReceived(len(data))
		w.processChunk(data)
	}
}

func (w *worker) processChunk(data []byte) {
	for _, line := range parser.SplitChunk(data) {
		w.stats.linesTotal.Add(1)

		rec := parser.Parse(line)
		if rec.IsZero() {
			w.stats.linesUnparsed.Add(1)
			w.metrics.Line(metrics.OutcomeUnparsed)
			continue
		}

		if !w.chain.Apply(&rec) {
			w.stats.shortCircuits.Add(1)
			w.metrics.Line(metrics.OutcomeShortCircuit)
			return
		}

		if rec.IsZero() {
			w.stats.linesFiltered.Add(1)
			w.metrics.Line(metrics.OutcomeFiltered)
			continue
		}

		w.sink.Write(rec)
		w.stats.linesDelivered.Add(1)
		w.metrics.Line(metrics.OutcomeDelivered)
	}
}

func (w *worker) closeService() {
	if err := w.service.Close(); err != nil {
		w.logger.Warn("msg", "Error closing device log service",
			"component", "syslog_worker",
			"run_id", w.runID,
			"error", err)
	}
	w.metrics.WorkerStopped()

	w.logger.Info("msg", "Log worker stopped",
		"component", "syslog_worker",
		"run_id", w.runID,
		"uptime", time.Since(w.startTime))
}
