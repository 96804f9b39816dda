// FILE: idevlog/src/internal/syslog/syslog.go
package syslog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"idevlog/src/internal/core"
	"idevlog/src/internal/device"
	"idevlog/src/internal/filter"
	"idevlog/src/internal/metrics"
	"idevlog/src/internal/sink"

	"github.com/google/uuid"
	"github.com/lixenwraith/log"
)

var (
	ErrServiceStart = errors.New("failed to start device log service")
	ErrNotRunning   = errors.New("log worker is not running")
)

// Options tunes a DeviceSysLog. Zero values select the defaults.
type Options struct {
	ChunkSize    int
	RetryDelay   time.Duration
	Console      sink.ConsoleConfig
	FallbackFile string
	Metrics      *metrics.Metrics

	// Record layout of LogToFile; console layout is set on Console
	Format   string
	Template string
}

// DeviceSysLog streams the system log of one device through a filter chain
// into a sink, under start/stop control. At most one worker runs at a time.
type DeviceSysLog struct {
	conn     device.Connection
	commands *commandChannel
	options  Options
	logger   *log.Logger
	stats    counters

	mu     sync.Mutex
	chain  *filter.Chain
	worker *worker
}

// NewDeviceSysLog creates the engine for a single device target
func NewDeviceSysLog(target device.Target, opts Options, logger *log.Logger) (*DeviceSysLog, error) {
	conn, err := target.Connection()
	if err != nil {
		return nil, err
	}

	if opts.ChunkSize <= 0 {
		opts.ChunkSize = core.ChunkSize
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = core.RetryDelay
	}
	if opts.FallbackFile == "" {
		opts.FallbackFile = core.DefaultFallbackFile
	}

	chain, err := filter.NewChain(nil, logger)
	if err != nil {
		return nil, err
	}

	return &DeviceSysLog{
		conn:     conn,
		commands: newCommandChannel(),
		options:  opts,
		logger:   logger,
		chain:    chain,
	}, nil
}

// SetFilter replaces the filter chain used by the next fresh worker.
// A running worker keeps the chain it was started with.
func (d *DeviceSysLog) SetFilter(filters ...filter.Config) error {
	chain, err := filter.NewChain(filters, d.logger)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.chain = chain
	return nil
}

// LogToStdout streams colored lines to the console. A failure to deliver the
// start command is logged and ignored; only service start errors are returned.
func (d *DeviceSysLog) LogToStdout() error {
	s, err := sink.NewConsoleSink(d.options.Console, d.logger)
	if err != nil {
		return err
	}
	return d.start(s, true)
}

// LogToFile appends uncolored lines to path, falling back to the configured
// fallback file when path cannot be opened.
func (d *DeviceSysLog) LogToFile(path string) error {
	s, err := sink.NewFileSink(sink.FileConfig{
		Path:     path,
		Fallback: d.options.FallbackFile,
		Format:   d.options.Format,
		Template: d.options.Template,
	}, d.logger)
	if err != nil {
		return err
	}
	return d.start(s, false)
}

// Start streams into an arbitrary sink
func (d *DeviceSysLog) Start(s sink.Sink) error {
	return d.start(s, false)
}

// StopLogging asks the running worker to stop. The worker exits after its
// current receive call returns.
func (d *DeviceSysLog) StopLogging() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.commands.Closed() {
		return ErrChannelClosed
	}
	if d.worker == nil || d.worker.retired {
		return ErrNotRunning
	}
	return d.commands.Send(StopLogging)
}

// Running reports whether a worker is active
func (d *DeviceSysLog) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.worker != nil && !d.worker.retired
}

// Wait blocks until the current worker has exited and released its service
func (d *DeviceSysLog) Wait(ctx context.Context) error {
	d.mu.Lock()
	w := d.worker
	d.mu.Unlock()

	if w == nil {
		return nil
	}
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close shuts the command channel. A running worker observes it as a stop;
// later start or stop calls fail with ErrChannelClosed.
func (d *DeviceSysLog) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.commands.Close()
	return nil
}

func (d *DeviceSysLog) GetStats() map[string]any {
	d.mu.Lock()
	w := d.worker
	running := w != nil && !w.retired
	chain := d.chain
	d.mu.Unlock()

	stats := d.stats.snapshot()
	stats["udid"] = d.conn.UDID()
	stats["running"] = running
	stats["filter_chain"] = chain.GetStats()
	if w != nil {
		stats["run_id"] = w.runID
		stats["worker_start_time"] = w.startTime
		stats["sink"] = w.sink.GetStats()
		if running {
			stats["worker_filter_chain"] = w.chain.GetStats()
		}
	}
	return stats
}

func (d *DeviceSysLog) start(s sink.Sink, bestEffort bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.worker != nil && !d.worker.retired {
		if err := d.commands.Send(StartLogging); err != nil {
			return d.sendFailed(err, bestEffort)
		}
		d.logger.Debug("msg", "Log worker already running, sink and filters unchanged",
			"component", "syslog",
			"run_id", d.worker.runID,
			"requested_sink", s.Name())
		return nil
	}

	d.commands.Drain()
	if err := d.commands.Send(StartLogging); err != nil {
		if err := d.sendFailed(err, bestEffort); err != nil {
			return err
		}
	}

	service, err := d.startService()
	if err != nil {
		return err
	}

	w := &worker{
		runID:      uuid.NewString(),
		startTime:  time.Now(),
		service:    service,
		commands:   d.commands,
		chain:      d.chain,
		sink:       s,
		chunkSize:  d.options.ChunkSize,
		retryDelay: d.options.RetryDelay,
		stats:      &d.stats,
		metrics:    d.options.Metrics,
		logger:     d.logger,
		retire:     d.retire,
		done:       make(chan struct{}),
	}
	d.worker = w
	d.stats.workerStarts.Add(1)
	d.options.Metrics.WorkerStarted()

	go w.run()
	return nil
}

func (d *DeviceSysLog) sendFailed(err error, bestEffort bool) error {
	if !bestEffort {
		return err
	}
	d.logger.Error("msg", "Failed to send start command",
		"component", "syslog",
		"error", err)
	return nil
}

func (d *DeviceSysLog) startService() (device.Service, error) {
	lockdown, err := d.conn.Lockdown()
	if err != nil {
		return nil, fmt.Errorf("%w: lockdown: %w", ErrServiceStart, err)
	}
	service, err := lockdown.StartService(core.SyslogRelayService)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrServiceStart, core.SyslogRelayService, err)
	}
	return service, nil
}

// retire marks w as finished unless a start command raced with the stop
func (d *DeviceSysLog) retire(w *worker) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.commands.Poll(StopLogging) == StartLogging {
		return false
	}
	w.retired = true
	return true
}
