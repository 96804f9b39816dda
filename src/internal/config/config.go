// FILE: idevlog/src/internal/config/config.go
package config

import (
	"idevlog/src/internal/filter"
)

// Config is the complete idevlog configuration
type Config struct {
	// Disable all console output except the streamed records
	Quiet bool `toml:"quiet"`

	// Watch the config file and apply filter changes to a running stream
	HotReload bool `toml:"hot_reload"`

	Device  DeviceConfig `toml:"device"`
	Syslog  SyslogConfig `toml:"syslog"`
	Info    InfoConfig   `toml:"info"`
	Status  StatusConfig `toml:"status"`
	Logging *LogConfig   `toml:"logging"`
}

// DeviceConfig selects how the device is reached
type DeviceConfig struct {
	// "relay" runs relay_command, "tail" follows tail_path
	Transport string `toml:"transport"`

	// Target device; empty selects the first attached device
	UDID string `toml:"udid"`

	RelayCommand []string `toml:"relay_command"`

	TailPath      string `toml:"tail_path"`
	TailFollow    bool   `toml:"tail_follow"`
	TailFromStart bool   `toml:"tail_from_start"`
	TailPoll      bool   `toml:"tail_poll"`
}

// SyslogConfig drives the log streaming engine
type SyslogConfig struct {
	// "stdout", "file" or "journal"
	Output string `toml:"output"`

	// Path for "file" output
	File         string `toml:"file"`
	FallbackFile string `toml:"fallback_file"`

	// Console color mode: "always", "never", "auto"
	Color string `toml:"color"`

	// Record layout: "txt", "json" or "raw". Template replaces the txt
	// layout, e.g. "{{.Process}}: {{.Message}}", and disables colors.
	Format   string `toml:"format"`
	Template string `toml:"template"`

	// Also forward delivered records to the systemd journal
	Journal bool `toml:"journal"`

	RetryDelayMs int64 `toml:"retry_delay_ms"`
	ChunkSize    int64 `toml:"chunk_size"`

	Filters []filter.Config `toml:"filters"`
}

// InfoConfig drives the "info" command
type InfoConfig struct {
	Command []string `toml:"command"`
	Domain  string   `toml:"domain"`

	// "text", "yaml" or "json"
	Format string `toml:"format"`
}

// StatusConfig enables the HTTP status endpoint
type StatusConfig struct {
	Enabled           bool    `toml:"enabled"`
	Host              string  `toml:"host"`
	Port              int64   `toml:"port"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int64   `toml:"burst"`
}
