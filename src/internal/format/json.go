// FILE: idevlog/src/internal/format/json.go
package format

import (
	"encoding/json"
	"fmt"

	"idevlog/src/internal/core"

	"github.com/lixenwraith/log"
)

// JSONFormatter produces one JSON object per line.
type JSONFormatter struct {
	logger *log.Logger
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(logger *log.Logger) *JSONFormatter {
	return &JSONFormatter{
		logger: logger,
	}
}

// Format transforms a single LogRecord into a JSON byte slice.
func (f *JSONFormatter) Format(rec core.LogRecord) ([]byte, error) {
	result, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return append(result, '\n'), nil
}

// Name returns the formatter's type name.
func (f *JSONFormatter) Name() string {
	return "json"
}
