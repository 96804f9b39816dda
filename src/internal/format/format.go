// FILE: idevlog/src/internal/format/format.go
package format

import (
	"fmt"

	"idevlog/src/internal/core"

	"github.com/lixenwraith/log"
)

// Formatter defines the interface for transforming a LogRecord into a byte slice.
type Formatter interface {
	// Format takes a LogRecord and returns the formatted line, newline terminated.
	Format(rec core.LogRecord) ([]byte, error)

	// Name returns the formatter type name
	Name() string
}

// Options carries formatter specific settings
type Options struct {
	// Template overrides the text layout (text formatter only)
	Template string `toml:"template"`
}

// NewFormatter creates a new Formatter based on the provided name.
func NewFormatter(name string, opts *Options, logger *log.Logger) (Formatter, error) {
	if opts == nil {
		opts = &Options{}
	}

	// Default to plain text if no format specified
	if name == "" {
		name = "txt"
	}

	switch name {
	case "txt":
		return NewTextFormatter(opts, logger)
	case "color":
		return NewColorFormatter(logger), nil
	case "json":
		return NewJSONFormatter(logger), nil
	case "raw":
		return NewRawFormatter(logger), nil
	default:
		return nil, fmt.Errorf("unknown formatter type: %s", name)
	}
}
