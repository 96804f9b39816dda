// FILE: idevlog/src/internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"idevlog/src/internal/core"
	"idevlog/src/internal/filter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points config discovery at an empty directory
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("IDEVLOG_CONFIG_FILE", "")
	t.Setenv("IDEVLOG_CONFIG_DIR", dir)
	return dir
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("IDEVLOG_CONFIG_FILE", "/etc/idevlog.toml")
	t.Setenv("IDEVLOG_CONFIG_DIR", "/opt")
	assert.Equal(t, "/etc/idevlog.toml", GetConfigPath())

	t.Setenv("IDEVLOG_CONFIG_FILE", "custom.toml")
	assert.Equal(t, filepath.Join("/opt", "custom.toml"), GetConfigPath())

	t.Setenv("IDEVLOG_CONFIG_FILE", "")
	assert.Equal(t, filepath.Join("/opt", "idevlog.toml"), GetConfigPath())
}

func TestCustomEnvTransform(t *testing.T) {
	assert.Equal(t, "IDEVLOG_SYSLOG_RETRY_DELAY_MS", customEnvTransform("syslog.retry_delay_ms"))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "relay", cfg.Device.Transport)
	assert.Equal(t, "stdout", cfg.Syslog.Output)
	assert.Equal(t, core.DefaultFallbackFile, cfg.Syslog.FallbackFile)
	assert.Equal(t, int64(1000), cfg.Syslog.RetryDelayMs)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.False(t, cfg.Status.Enabled)
}

func TestLoad_FileAndOverrides(t *testing.T) {
	dir := isolate(t)
	content := `
[device]
udid = "00008030-001A"

[syslog]
output = "file"
file = "/tmp/device.log"

[[syslog.filters]]
type = "quiet"

[[syslog.filters]]
type = "match"
patterns = ["wifi"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "idevlog.toml"), []byte(content), 0o644))

	cfg, err := Load([]string{"--logging.level=debug"})
	require.NoError(t, err)
	assert.Equal(t, "00008030-001A", cfg.Device.UDID)
	assert.Equal(t, "file", cfg.Syslog.Output)
	assert.Equal(t, "debug", cfg.Logging.Level)
	require.Len(t, cfg.Syslog.Filters, 2)
	assert.Equal(t, filter.TypeQuiet, cfg.Syslog.Filters[0].Type)
	assert.Equal(t, []string{"wifi"}, cfg.Syslog.Filters[1].Patterns)
}

func TestLoad_Env(t *testing.T) {
	isolate(t)
	t.Setenv("IDEVLOG_SYSLOG_COLOR", "never")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "never", cfg.Syslog.Color)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"Defaults", func(*Config) {}, ""},
		{"UnknownTransport", func(c *Config) { c.Device.Transport = "wifi" }, "invalid transport"},
		{"TailWithoutPath", func(c *Config) { c.Device.Transport = "tail" }, "tail_path"},
		{"FileWithoutPath", func(c *Config) { c.Syslog.Output = "file" }, "file path"},
		{"UnknownOutput", func(c *Config) { c.Syslog.Output = "syslog" }, "invalid output"},
		{"BadColor", func(c *Config) { c.Syslog.Color = "rainbow" }, "color mode"},
		{"JSONFormat", func(c *Config) { c.Syslog.Format = "json" }, ""},
		{"UnknownFormat", func(c *Config) { c.Syslog.Format = "xml" }, "invalid format"},
		{"TemplateWithJSON", func(c *Config) {
			c.Syslog.Format = "json"
			c.Syslog.Template = "{{.Message}}"
		}, "requires the txt format"},
		{"BrokenTemplate", func(c *Config) { c.Syslog.Template = "{{.Message" }, "invalid template"},
		{"TriggerFilter", func(c *Config) {
			c.Syslog.Filters = []filter.Config{{Type: filter.TypeTrigger, Patterns: []string{"x"}}}
		}, "not supported"},
		{"UnknownDomain", func(c *Config) { c.Info.Domain = "com.example.x" }, "unknown device domain"},
		{"StatusPort", func(c *Config) {
			c.Status.Enabled = true
			c.Status.Port = 70000
		}, "invalid port"},
		{"LogsOnStdout", func(c *Config) { c.Logging.Output = "stdout" }, "must not be stdout"},
		{"LogsOnStdoutQuiet", func(c *Config) {
			c.Logging.Output = "stdout"
			c.Quiet = true
		}, ""},
		{"BadLogLevel", func(c *Config) { c.Logging.Level = "trace" }, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestSaveToFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "idevlog.toml")

	cfg := Default()
	cfg.Syslog.Color = "never"
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "never", loaded.Syslog.Color)

	assert.Error(t, cfg.SaveToFile(""))
}
