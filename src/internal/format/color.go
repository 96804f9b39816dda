// FILE: idevlog/src/internal/format/color.go
package format

import (
	"fmt"

	"idevlog/src/internal/core"

	"github.com/lixenwraith/log"
)

// ANSI SGR sequences used for console output
const (
	ansiReset   = "\x1b[0m"
	ansiRed     = "\x1b[31m"
	ansiGreen   = "\x1b[32m"
	ansiBlue    = "\x1b[34m"
	ansiCyan    = "\x1b[36m"
	ansiDefault = "\x1b[37m"
)

// ColorFormatter renders the text layout with per-field ANSI colors:
// date blue, device green, process cyan, severity red.
type ColorFormatter struct {
	logger *log.Logger
}

func NewColorFormatter(logger *log.Logger) *ColorFormatter {
	return &ColorFormatter{logger: logger}
}

func (f *ColorFormatter) Format(rec core.LogRecord) ([]byte, error) {
	return fmt.Appendf(nil, "[%s%s%s] %s%s%s %s%s%s [%s] <%s%s%s>: %s%s%s\n",
		ansiBlue, rec.Date, ansiReset,
		ansiGreen, rec.Device, ansiReset,
		ansiCyan, rec.Process, ansiReset,
		rec.PIDOrNone(),
		ansiRed, rec.SeverityOrNone(), ansiReset,
		ansiDefault, rec.Message, ansiReset), nil
}

func (f *ColorFormatter) Name() string {
	return "color"
}
