// FILE: idevlog/src/internal/sink/sink.go
package sink

import (
	"fmt"
	"time"

	"idevlog/src/internal/core"
	"idevlog/src/internal/format"

	"github.com/lixenwraith/log"
)

// Sink is an output destination for records that survived the filter chain.
// Write is called synchronously on the worker goroutine, once per record, and
// must not fail the worker: I/O problems are reported through the logger.
type Sink interface {
	// Write delivers one record
	Write(rec core.LogRecord)

	// Name returns the sink type name
	Name() string

	// GetStats returns sink statistics
	GetStats() SinkStats
}

// SinkStats contains statistics about a sink
type SinkStats struct {
	Type           string
	TotalProcessed uint64
	TotalErrors    uint64
	StartTime      time.Time
	LastProcessed  time.Time
	Details        map[string]any
}

// Func adapts a plain callback to the Sink interface
type Func func(rec core.LogRecord)

func (f Func) Write(rec core.LogRecord) {
	f(rec)
}

func (f Func) Name() string {
	return "func"
}

func (f Func) GetStats() SinkStats {
	return SinkStats{Type: "func", Details: map[string]any{}}
}

// lineFormatter resolves the record layout of a sink. Colors only apply to
// the default txt layout.
func lineFormatter(name, tmpl string, colored bool, logger *log.Logger) (format.Formatter, error) {
	switch name {
	case "", "txt":
		if colored && tmpl == "" {
			return format.NewColorFormatter(logger), nil
		}
		return format.NewTextFormatter(&format.Options{Template: tmpl}, logger)
	case "json", "raw":
		if tmpl != "" {
			return nil, fmt.Errorf("template is only valid with the txt format, not %s", name)
		}
		return format.NewFormatter(name, nil, logger)
	default:
		return nil, fmt.Errorf("unknown record format: %s", name)
	}
}
