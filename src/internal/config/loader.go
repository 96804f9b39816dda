// FILE: idevlog/src/internal/config/loader.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"idevlog/src/internal/core"
	"idevlog/src/internal/filter"

	lconfig "github.com/lixenwraith/config"
)

const envPrefix = "IDEVLOG_"

func defaults() *Config {
	return &Config{
		Quiet:     false,
		HotReload: false,
		Device: DeviceConfig{
			Transport:    "relay",
			RelayCommand: []string{"idevicesyslog"},
			TailFollow:   true,
		},
		Syslog: SyslogConfig{
			Output:       "stdout",
			FallbackFile: core.DefaultFallbackFile,
			Color:        "auto",
			Format:       "txt",
			RetryDelayMs: core.RetryDelay.Milliseconds(),
			ChunkSize:    core.ChunkSize,
			Filters:      []filter.Config{},
		},
		Info: InfoConfig{
			Command: []string{"ideviceinfo"},
			Format:  "text",
		},
		Status: StatusConfig{
			Enabled:           false,
			Host:              "127.0.0.1",
			Port:              9465,
			RequestsPerSecond: 10,
			Burst:             20,
		},
		Logging: DefaultLogConfig(),
	}
}

// Load builds the configuration from defaults, the config file, environment
// and CLI overrides, highest precedence last. Overrides use the
// "--section.key=value" form.
func Load(overrides []string) (*Config, error) {
	configPath := GetConfigPath()

	cfg, err := lconfig.NewBuilder().
		WithDefaults(defaults()).
		WithEnvPrefix(envPrefix).
		WithFile(configPath).
		WithArgs(overrides).
		WithEnvTransform(customEnvTransform).
		WithSources(
			lconfig.SourceCLI,
			lconfig.SourceEnv,
			lconfig.SourceFile,
			lconfig.SourceDefault,
		).
		Build()

	if err != nil {
		// Missing config file is fine, defaults apply
		if !isNotFound(err) {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if cfg == nil {
		return nil, fmt.Errorf("failed to load config %s", configPath)
	}

	finalConfig := &Config{}
	if err := cfg.Scan(finalConfig, ""); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}

	if finalConfig.Logging == nil {
		finalConfig.Logging = DefaultLogConfig()
	}

	return finalConfig, validateConfig(finalConfig)
}

func isNotFound(err error) bool {
	return errors.Is(err, os.ErrNotExist) || strings.Contains(err.Error(), "not found")
}

func customEnvTransform(path string) string {
	env := strings.ReplaceAll(path, ".", "_")
	env = strings.ToUpper(env)
	env = envPrefix + env
	return env
}

// GetConfigPath resolves the config file from IDEVLOG_CONFIG_FILE,
// IDEVLOG_CONFIG_DIR or ~/.config/idevlog.toml
func GetConfigPath() string {
	if configFile := os.Getenv("IDEVLOG_CONFIG_FILE"); configFile != "" {
		if filepath.IsAbs(configFile) {
			return configFile
		}
		if configDir := os.Getenv("IDEVLOG_CONFIG_DIR"); configDir != "" {
			return filepath.Join(configDir, configFile)
		}
		return configFile
	}

	if configDir := os.Getenv("IDEVLOG_CONFIG_DIR"); configDir != "" {
		return filepath.Join(configDir, "idevlog.toml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "idevlog.toml")
	}

	return "idevlog.toml"
}
