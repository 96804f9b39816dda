// FILE: idevlog/src/internal/sink/journal.go
package sink

import (
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"idevlog/src/internal/core"

	"github.com/coreos/go-systemd/v22/journal"
	"github.com/lixenwraith/log"
)

var ErrJournalUnavailable = errors.New("systemd journal is not available")

// JournalSink forwards records to the local systemd journal, tagged with the
// device process as SYSLOG_IDENTIFIER.
type JournalSink struct {
	startTime time.Time
	logger    *log.Logger
	send      func(message string, priority journal.Priority, vars map[string]string) error

	// Statistics
	totalProcessed atomic.Uint64
	totalErrors    atomic.Uint64
	lastProcessed  atomic.Value // time.Time
}

func NewJournalSink(logger *log.Logger) (*JournalSink, error) {
	if !journal.Enabled() {
		return nil, ErrJournalUnavailable
	}

	js := &JournalSink{
		startTime: time.Now(),
		logger:    logger,
		send:      journal.Send,
	}
	js.lastProcessed.Store(time.Time{})
	return js, nil
}

func (js *JournalSink) Write(rec core.LogRecord) {
	js.totalProcessed.Add(1)
	js.lastProcessed.Store(time.Now())

	vars := map[string]string{
		"SYSLOG_IDENTIFIER": rec.Process,
		"IDEVLOG_DEVICE":    rec.Device,
		"IDEVLOG_DATE":      rec.Date,
	}
	if rec.PID != "" {
		vars["IDEVLOG_PID"] = rec.PID
	}
	if rec.Severity != "" {
		vars["IDEVLOG_SEVERITY"] = rec.Severity
	}

	if err := js.send(rec.Message, JournalPriority(rec.Severity), vars); err != nil {
		js.totalErrors.Add(1)
		js.logger.Error("msg", "Failed to send record to journal",
			"component", "journal_sink",
			"error", err)
	}
}

func (js *JournalSink) Name() string {
	return "journal"
}

func (js *JournalSink) GetStats() SinkStats {
	lastProc, _ := js.lastProcessed.Load().(time.Time)

	return SinkStats{
		Type:           "journal",
		TotalProcessed: js.totalProcessed.Load(),
		TotalErrors:    js.totalErrors.Load(),
		StartTime:      js.startTime,
		LastProcessed:  lastProc,
		Details:        map[string]any{},
	}
}

// JournalPriority maps a device severity onto a journal priority.
// Unknown or absent severities are logged at notice.
func JournalPriority(severity string) journal.Priority {
	switch strings.ToLower(severity) {
	case "emergency", "emerg":
		return journal.PriEmerg
	case "alert":
		return journal.PriAlert
	case "critical", "crit", "fault":
		return journal.PriCrit
	case "error", "err":
		return journal.PriErr
	case "warning", "warn":
		return journal.PriWarning
	case "info":
		return journal.PriInfo
	case "debug":
		return journal.PriDebug
	default:
		return journal.PriNotice
	}
}
