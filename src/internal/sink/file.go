// FILE: idevlog/src/internal/sink/file.go
package sink

import (
	"bufio"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"idevlog/src/internal/core"
	"idevlog/src/internal/format"

	"github.com/lixenwraith/log"
)

// FileConfig holds configuration for the file sink
type FileConfig struct {
	Path     string
	Fallback string // empty selects core.DefaultFallbackFile
	Format   string // "txt", "json" or "raw"
	Template string
}

// FileSink appends uncolored lines to a file. The file is opened for every
// record and closed right after, so no handle outlives a single write.
type FileSink struct {
	path      string
	fallback  string
	startTime time.Time
	logger    *log.Logger
	formatter format.Formatter

	// Statistics
	totalProcessed atomic.Uint64
	totalErrors    atomic.Uint64
	totalFallbacks atomic.Uint64
	lastProcessed  atomic.Value // time.Time
}

// NewFileSink creates a new file sink
func NewFileSink(cfg FileConfig, logger *log.Logger) (*FileSink, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("file sink requires a path")
	}
	if cfg.Fallback == "" {
		cfg.Fallback = core.DefaultFallbackFile
	}

	formatter, err := lineFormatter(cfg.Format, cfg.Template, false, logger)
	if err != nil {
		return nil, err
	}

	fs := &FileSink{
		path:      cfg.Path,
		fallback:  cfg.Fallback,
		startTime: time.Now(),
		logger:    logger,
		formatter: formatter,
	}
	fs.lastProcessed.Store(time.Time{})

	logger.Debug("msg", "File sink created",
		"component", "file_sink",
		"path", fs.path,
		"fallback", fs.fallback,
		"formatter", formatter.Name())

	return fs, nil
}

func (fs *FileSink) Write(rec core.LogRecord) {
	fs.totalProcessed.Add(1)
	fs.lastProcessed.Store(time.Now())

	formatted, err := fs.formatter.Format(rec)
	if err != nil {
		fs.totalErrors.Add(1)
		fs.logger.Error("msg", "Failed to format record",
			"component", "file_sink",
			"error", err)
		return
	}

	file, err := openAppend(fs.path)
	if err != nil {
		fs.totalFallbacks.Add(1)
		fs.logger.Warn("msg", "Failed to open log file, using fallback",
			"component", "file_sink",
			"path", fs.path,
			"fallback", fs.fallback,
			"error", err)

		file, err = openAppend(fs.fallback)
		if err != nil {
			fs.totalErrors.Add(1)
			fs.logger.Error("msg", "Failed to open fallback log file",
				"component", "file_sink",
				"fallback", fs.fallback,
				"error", err)
			return
		}
	}
	defer func() {
		if err := file.Close(); err != nil {
			fs.logger.Error("msg", "Error closing log file",
				"component", "file_sink",
				"error", err)
		}
	}()

	w := bufio.NewWriter(file)
	if _, err := w.Write(formatted); err != nil {
		fs.totalErrors.Add(1)
		fs.logger.Error("msg", "Error writing to file",
			"component", "file_sink",
			"error", err)
	}
	if err := w.Flush(); err != nil {
		fs.totalErrors.Add(1)
		fs.logger.Error("msg", "Error flushing to file",
			"component", "file_sink",
			"error", err)
	}
}

func (fs *FileSink) Name() string {
	return "file"
}

func (fs *FileSink) GetStats() SinkStats {
	lastProc, _ := fs.lastProcessed.Load().(time.Time)

	return SinkStats{
		Type:           "file",
		TotalProcessed: fs.totalProcessed.Load(),
		TotalErrors:    fs.totalErrors.Load(),
		StartTime:      fs.startTime,
		LastProcessed:  lastProc,
		Details: map[string]any{
			"path":            fs.path,
			"fallback":        fs.fallback,
			"total_fallbacks": fs.totalFallbacks.Load(),
			"formatter":       fs.formatter.Name(),
		},
	}
}

func openAppend(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}
