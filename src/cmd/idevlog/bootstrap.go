// FILE: idevlog/src/cmd/idevlog/bootstrap.go
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"idevlog/src/internal/config"
	"idevlog/src/internal/device"
	"idevlog/src/internal/metrics"
	"idevlog/src/internal/sink"
	"idevlog/src/internal/syslog"
	"idevlog/src/internal/version"

	"github.com/lixenwraith/log"
)

var logger *log.Logger

// loadConfig merges flags into the layered configuration
func loadConfig(flags *FlagConfig) (*config.Config, error) {
	if flags.ConfigFile != "" {
		os.Setenv("IDEVLOG_CONFIG_FILE", flags.ConfigFile)
	}

	cfg, err := config.Load(flags.Overrides())
	if err != nil {
		return nil, err
	}
	if len(flags.Filters) > 0 {
		cfg.Syslog.Filters = flags.Filters
	}
	return cfg, nil
}

// setup loads configuration and starts the diagnostics logger
func setup(flags *FlagConfig) (*config.Config, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	output.SetQuiet(cfg.Quiet)

	if err := initializeLogger(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info(append([]any{"msg", "idevlog starting",
		"config_file", config.GetConfigPath(),
		"transport", cfg.Device.Transport}, version.Fields()...)...)

	return cfg, nil
}

// initializeLogger sets up the logger based on configuration
func initializeLogger(cfg *config.Config) error {
	logger = log.NewLogger()

	var configArgs []string

	if cfg.Quiet {
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=false",
			"level=255")

		return logger.InitWithDefaults(configArgs...)
	}

	levelValue, err := parseLogLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	configArgs = append(configArgs, fmt.Sprintf("level=%d", levelValue))

	switch cfg.Logging.Output {
	case "none":
		configArgs = append(configArgs, "disable_file=true", "enable_stdout=false")

	case "stdout":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			"stdout_target=stdout")

	case "stderr":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			"stdout_target=stderr")

	case "file":
		configArgs = append(configArgs, "enable_stdout=false")
		configureFileLogging(&configArgs, cfg)

	case "both":
		configArgs = append(configArgs, "enable_stdout=true")
		configureFileLogging(&configArgs, cfg)
		configureConsoleTarget(&configArgs, cfg)

	default:
		return fmt.Errorf("invalid log output mode: %s", cfg.Logging.Output)
	}

	if cfg.Logging.Console != nil && cfg.Logging.Console.Format != "" {
		configArgs = append(configArgs, fmt.Sprintf("format=%s", cfg.Logging.Console.Format))
	}

	return logger.InitWithDefaults(configArgs...)
}

func configureFileLogging(configArgs *[]string, cfg *config.Config) {
	if cfg.Logging.File != nil {
		*configArgs = append(*configArgs,
			fmt.Sprintf("directory=%s", cfg.Logging.File.Directory),
			fmt.Sprintf("name=%s", cfg.Logging.File.Name),
			fmt.Sprintf("max_size_mb=%d", cfg.Logging.File.MaxSizeMB),
			fmt.Sprintf("max_total_size_mb=%d", cfg.Logging.File.MaxTotalSizeMB))

		if cfg.Logging.File.RetentionHours > 0 {
			*configArgs = append(*configArgs,
				fmt.Sprintf("retention_period_hrs=%.1f", cfg.Logging.File.RetentionHours))
		}
	}
}

func configureConsoleTarget(configArgs *[]string, cfg *config.Config) {
	target := "stderr"
	if cfg.Logging.Console != nil && cfg.Logging.Console.Target != "" {
		target = cfg.Logging.Console.Target
	}

	if target == "split" {
		*configArgs = append(*configArgs, "stdout_split_mode=true")
		*configArgs = append(*configArgs, "stdout_target=split")
	} else {
		*configArgs = append(*configArgs, fmt.Sprintf("stdout_target=%s", target))
	}
}

func parseLogLevel(level string) (int, error) {
	switch strings.ToLower(level) {
	case "debug":
		return int(log.LevelDebug), nil
	case "info":
		return int(log.LevelInfo), nil
	case "warn", "warning":
		return int(log.LevelWarn), nil
	case "error":
		return int(log.LevelError), nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}

func shutdownLogger() {
	if logger != nil {
		if err := logger.Shutdown(2 * time.Second); err != nil {
			// Best effort - can't log the shutdown error
			Error("Logger shutdown error: %v\n", err)
		}
	}
}

// buildConnection creates the device connection of the configured transport
func buildConnection(cfg *config.Config) (device.Connection, error) {
	switch cfg.Device.Transport {
	case "tail":
		conn, err := device.NewTailConnection(cfg.Device.UDID, device.TailConfig{
			Path:          cfg.Device.TailPath,
			Follow:        cfg.Device.TailFollow,
			FromBeginning: cfg.Device.TailFromStart,
			Poll:          cfg.Device.TailPoll,
		}, logger)
		if err != nil {
			return nil, err
		}
		return conn, nil
	case "relay":
		return device.NewRelayConnection(cfg.Device.UDID, cfg.Device.RelayCommand, logger), nil
	default:
		return nil, fmt.Errorf("unknown transport: %s", cfg.Device.Transport)
	}
}

func deviceTarget(conn device.Connection) device.Target {
	return device.Single(conn)
}

// bootstrapSyslog builds the streaming engine with the configured filters
func bootstrapSyslog(cfg *config.Config, m *metrics.Metrics) (*syslog.DeviceSysLog, error) {
	conn, err := buildConnection(cfg)
	if err != nil {
		return nil, err
	}

	dsl, err := syslog.NewDeviceSysLog(deviceTarget(conn), syslog.Options{
		ChunkSize:    int(cfg.Syslog.ChunkSize),
		RetryDelay:   time.Duration(cfg.Syslog.RetryDelayMs) * time.Millisecond,
		Console:      consoleConfig(cfg.Syslog),
		FallbackFile: cfg.Syslog.FallbackFile,
		Metrics:      m,
		Format:       cfg.Syslog.Format,
		Template:     cfg.Syslog.Template,
	}, logger)
	if err != nil {
		return nil, err
	}

	if err := dsl.SetFilter(cfg.Syslog.Filters...); err != nil {
		return nil, err
	}
	return dsl, nil
}

// startStream starts logging into the configured output. Sinks are built
// from sc rather than the engine options so a reload can change the layout.
func startStream(dsl *syslog.DeviceSysLog, sc config.SyslogConfig) error {
	var sinks []sink.Sink
	switch sc.Output {
	case "stdout":
		s, err := sink.NewConsoleSink(consoleConfig(sc), logger)
		if err != nil {
			return err
		}
		sinks = append(sinks, s)
	case "file":
		s, err := sink.NewFileSink(sink.FileConfig{
			Path:     sc.File,
			Fallback: sc.FallbackFile,
			Format:   sc.Format,
			Template: sc.Template,
		}, logger)
		if err != nil {
			return err
		}
		sinks = append(sinks, s)
	}

	if sc.Output == "journal" || sc.Journal {
		s, err := sink.NewJournalSink(logger)
		if err != nil {
			return err
		}
		sinks = append(sinks, s)
	}

	if len(sinks) == 1 {
		return dsl.Start(sinks[0])
	}
	return dsl.Start(sink.NewMulti(sinks...))
}

func consoleConfig(sc config.SyslogConfig) sink.ConsoleConfig {
	return sink.ConsoleConfig{
		Target:   "stdout",
		Color:    sc.Color,
		Format:   sc.Format,
		Template: sc.Template,
	}
}
