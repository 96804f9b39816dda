// FILE: idevlog/src/internal/sink/multi.go
package sink

import (
	"time"

	"idevlog/src/internal/core"
)

// Multi fans each record out to several sinks in order
type Multi struct {
	sinks     []Sink
	startTime time.Time
}

func NewMulti(sinks ...Sink) *Multi {
	return &Multi{
		sinks:     sinks,
		startTime: time.Now(),
	}
}

func (m *Multi) Write(rec core.LogRecord) {
	for _, s := range m.sinks {
		s.Write(rec)
	}
}

func (m *Multi) Name() string {
	return "multi"
}

func (m *Multi) GetStats() SinkStats {
	children := make([]SinkStats, 0, len(m.sinks))
	var processed, errs uint64
	var last time.Time
	for _, s := range m.sinks {
		st := s.GetStats()
		children = append(children, st)
		processed += st.TotalProcessed
		errs += st.TotalErrors
		if st.LastProcessed.After(last) {
			last = st.LastProcessed
		}
	}

	return SinkStats{
		Type:           "multi",
		TotalProcessed: processed,
		TotalErrors:    errs,
		StartTime:      m.startTime,
		LastProcessed:  last,
		Details: map[string]any{
			"sinks": children,
		},
	}
}
