// FILE: idevlog/src/internal/syslog/stats.go
package syslog

import (
	"sync/atomic"
)

// counters accumulate over every worker of one DeviceSysLog
type counters struct {
	workerStarts    atomic.Uint64
	chunksReceived  atomic.Uint64
	bytesReceived   atomic.Uint64
	transportErrors atomic.Uint64
	linesTotal      atomic.Uint64
	linesUnparsed   atomic.Uint64
	linesFiltered   atomic.Uint64
	linesDelivered  atomic.Uint64
	shortCircuits   atomic.Uint64
}

func (c *counters) snapshot() map[string]any {
	return map[string]any{
		"worker_starts":    c.workerStarts.Load(),
		"chunks_received":  c.chunksReceived.Load(),
		"bytes_received":   c.bytesReceived.Load(),
		"transport_errors": c.transportErrors.Load(),
		"lines_total":      c.linesTotal.Load(),
		"lines_unparsed":   c.linesUnparsed.Load(),
		"lines_filtered":   c.linesFiltered.Load(),
		"lines_delivered":  c.linesDelivered.Load(),
		"short_circuits":   c.shortCircuits.Load(),
	}
}
