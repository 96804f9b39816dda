// FILE: idevlog/src/internal/sink/console.go
package sink

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"idevlog/src/internal/core"
	"idevlog/src/internal/format"

	"github.com/lixenwraith/log"
	"golang.org/x/term"
)

// Color modes for console output
const (
	ColorAlways = "always"
	ColorNever  = "never"
	ColorAuto   = "auto"
)

// ConsoleConfig holds configuration for the console sink
type ConsoleConfig struct {
	Target   string `toml:"target"`   // "stdout" or "stderr"
	Color    string `toml:"color"`    // "always", "never" or "auto"
	Format   string `toml:"format"`   // "txt", "json" or "raw"
	Template string `toml:"template"` // txt layout, disables colors
}

// ConsoleSink writes one line per record to stdout or stderr
type ConsoleSink struct {
	config    ConsoleConfig
	output    io.Writer
	startTime time.Time
	logger    *log.Logger
	formatter format.Formatter

	// Statistics
	totalProcessed atomic.Uint64
	totalErrors    atomic.Uint64
	lastProcessed  atomic.Value // time.Time
}

// NewConsoleSink creates a new console sink
func NewConsoleSink(cfg ConsoleConfig, logger *log.Logger) (*ConsoleSink, error) {
	if cfg.Target == "" {
		cfg.Target = "stdout"
	}
	if cfg.Color == "" {
		cfg.Color = ColorAlways
	}

	var out *os.File
	switch cfg.Target {
	case "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	default:
		return nil, fmt.Errorf("invalid console target: %s", cfg.Target)
	}

	colored := false
	switch cfg.Color {
	case ColorAlways:
		colored = true
	case ColorNever:
	case ColorAuto:
		colored = term.IsTerminal(int(out.Fd()))
	default:
		return nil, fmt.Errorf("invalid console color mode: %s", cfg.Color)
	}

	formatter, err := lineFormatter(cfg.Format, cfg.Template, colored, logger)
	if err != nil {
		return nil, err
	}

	s := &ConsoleSink{
		config:    cfg,
		output:    out,
		startTime: time.Now(),
		logger:    logger,
		formatter: formatter,
	}
	s.lastProcessed.Store(time.Time{})

	logger.Debug("msg", "Console sink created",
		"component", "console_sink",
		"target", cfg.Target,
		"formatter", formatter.Name())

	return s, nil
}

func (s *ConsoleSink) Write(rec core.LogRecord) {
	s.totalProcessed.Add(1)
	s.lastProcessed.Store(time.Now())

	formatted, err := s.formatter.Format(rec)
	if err != nil {
		s.totalErrors.Add(1)
		s.logger.Error("msg", "Failed to format record for console",
			"component", "console_sink",
			"error", err)
		return
	}

	if _, err := s.output.Write(formatted); err != nil {
		s.totalErrors.Add(1)
		s.logger.Error("msg", "Failed to write record to console",
			"component", "console_sink",
			"error", err)
	}
}

func (s *ConsoleSink) Name() string {
	return "console"
}

func (s *ConsoleSink) GetStats() SinkStats {
	lastProc, _ := s.lastProcessed.Load().(time.Time)

	return SinkStats{
		Type:           "console",
		TotalProcessed: s.totalProcessed.Load(),
		TotalErrors:    s.totalErrors.Load(),
		StartTime:      s.startTime,
		LastProcessed:  lastProc,
		Details: map[string]any{
			"target":    s.config.Target,
			"formatter": s.formatter.Name(),
		},
	}
}
