// FILE: idevlog/src/internal/config/validation.go
package config

import (
	"fmt"

	"idevlog/src/internal/deviceinfo"
	"idevlog/src/internal/filter"
	"idevlog/src/internal/format"

	lconfig "github.com/lixenwraith/config"
)

func validateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if err := validateLogConfig(cfg.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}
	if err := validateDevice(&cfg.Device); err != nil {
		return fmt.Errorf("device config: %w", err)
	}
	if err := validateSyslog(&cfg.Syslog); err != nil {
		return fmt.Errorf("syslog config: %w", err)
	}
	if err := validateInfo(&cfg.Info); err != nil {
		return fmt.Errorf("info config: %w", err)
	}
	if err := validateStatus(&cfg.Status); err != nil {
		return fmt.Errorf("status config: %w", err)
	}

	// Diagnostics on stdout would interleave with streamed records
	if cfg.Syslog.Output == "stdout" && !cfg.Quiet {
		if cfg.Logging.Output == "stdout" ||
			(cfg.Logging.Output == "both" && cfg.Logging.Console != nil && cfg.Logging.Console.Target == "stdout") {
			return fmt.Errorf("logging output must not be stdout while syslog output is stdout")
		}
	}

	return nil
}

func validateDevice(d *DeviceConfig) error {
	switch d.Transport {
	case "relay":
		if len(d.RelayCommand) == 0 {
			return fmt.Errorf("relay transport requires relay_command")
		}
		if err := lconfig.NonEmpty(d.RelayCommand[0]); err != nil {
			return fmt.Errorf("relay_command: %w", err)
		}
	case "tail":
		if err := lconfig.NonEmpty(d.TailPath); err != nil {
			return fmt.Errorf("tail transport requires tail_path")
		}
	default:
		return fmt.Errorf("invalid transport: %s", d.Transport)
	}
	return nil
}

func validateSyslog(s *SyslogConfig) error {
	switch s.Output {
	case "stdout":
	case "file":
		if err := lconfig.NonEmpty(s.File); err != nil {
			return fmt.Errorf("file output requires a file path")
		}
	case "journal":
		if s.Journal {
			return fmt.Errorf("journal tee is redundant with journal output")
		}
	default:
		return fmt.Errorf("invalid output: %s", s.Output)
	}

	switch s.Color {
	case "always", "never", "auto", "":
	default:
		return fmt.Errorf("invalid color mode: %s", s.Color)
	}

	switch s.Format {
	case "txt", "":
		if _, err := format.NewTextFormatter(&format.Options{Template: s.Template}, nil); err != nil {
			return err
		}
	case "json", "raw":
		if s.Template != "" {
			return fmt.Errorf("template requires the txt format, not %s", s.Format)
		}
	default:
		return fmt.Errorf("invalid format: %s", s.Format)
	}

	if s.RetryDelayMs < 0 {
		return fmt.Errorf("retry_delay_ms must not be negative: %d", s.RetryDelayMs)
	}
	if s.ChunkSize < 0 {
		return fmt.Errorf("chunk_size must not be negative: %d", s.ChunkSize)
	}

	// Surface filter errors at load time rather than at stream start
	for i, f := range s.Filters {
		if err := filter.Validate(f); err != nil {
			return fmt.Errorf("filter[%d]: %w", i, err)
		}
	}
	return nil
}

func validateInfo(i *InfoConfig) error {
	if len(i.Command) == 0 {
		return fmt.Errorf("info requires a command")
	}
	if _, err := deviceinfo.ParseDomain(i.Domain); err != nil {
		return err
	}
	switch i.Format {
	case "text", "yaml", "json", "":
	default:
		return fmt.Errorf("invalid format: %s", i.Format)
	}
	return nil
}

func validateStatus(s *StatusConfig) error {
	if !s.Enabled {
		return nil
	}
	if err := lconfig.Port(s.Port); err != nil {
		return fmt.Errorf("invalid port: %w", err)
	}
	if s.Host != "" {
		if err := lconfig.IPAddress(s.Host); err != nil {
			return fmt.Errorf("invalid host: %w", err)
		}
	}
	if s.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must not be negative")
	}
	return nil
}
