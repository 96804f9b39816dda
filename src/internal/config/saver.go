// FILE: idevlog/src/internal/config/saver.go
package config

import (
	"fmt"

	lconfig "github.com/lixenwraith/config"
)

// Default returns the built-in configuration
func Default() *Config {
	return defaults()
}

// SaveToFile writes c as TOML to path
func (c *Config) SaveToFile(path string) error {
	if path == "" {
		return fmt.Errorf("cannot save config: path is empty")
	}

	lcfg, err := lconfig.NewBuilder().
		WithFile(path).
		WithTarget(c).
		WithFileFormat("toml").
		Build()
	if err != nil && !isNotFound(err) || lcfg == nil {
		return fmt.Errorf("failed to create config builder: %w", err)
	}

	// Save writes atomically through a temp file
	if err := lcfg.Save(path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}
