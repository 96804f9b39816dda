// FILE: idevlog/src/internal/format/text.go
package format

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"idevlog/src/internal/core"

	"github.com/lixenwraith/log"
)

// DefaultTextTemplate is the uncolored line layout used by the file sink
const DefaultTextTemplate = "[{{.Date}}] {{.Device}} {{.Process}} [{{.PID}}] <{{.Severity}}>: {{.Message}}"

// Produces human-readable text lines using templates
type TextFormatter struct {
	template *template.Template
	logger   *log.Logger
}

// Creates a new text formatter
func NewTextFormatter(opts *Options, logger *log.Logger) (*TextFormatter, error) {
	layout := DefaultTextTemplate
	if opts != nil && opts.Template != "" {
		layout = opts.Template
	}

	funcMap := template.FuncMap{
		"ToUpper":   strings.ToUpper,
		"ToLower":   strings.ToLower,
		"TrimSpace": strings.TrimSpace,
	}

	tmpl, err := template.New("line").Funcs(funcMap).Parse(layout)
	if err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}

	return &TextFormatter{
		template: tmpl,
		logger:   logger,
	}, nil
}

// Formats the record using the template
func (f *TextFormatter) Format(rec core.LogRecord) ([]byte, error) {
	data := map[string]string{
		"Date":     rec.Date,
		"Device":   rec.Device,
		"Process":  rec.Process,
		"PID":      rec.PIDOrNone(),
		"Severity": rec.SeverityOrNone(),
		"Message":  rec.Message,
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		f.logger.Debug("msg", "Template execution failed, using fallback",
			"component", "text_formatter",
			"error", err)
		return Plain(rec), nil
	}

	// Ensure newline at end
	result := buf.Bytes()
	if len(result) == 0 || result[len(result)-1] != '\n' {
		result = append(result, '\n')
	}

	return result, nil
}

// Returns the formatter name
func (f *TextFormatter) Name() string {
	return "txt"
}

// Plain renders rec in the default uncolored layout without a template
func Plain(rec core.LogRecord) []byte {
	return fmt.Appendf(nil, "[%s] %s %s [%s] <%s>: %s\n",
		rec.Date,
		rec.Device,
		rec.Process,
		rec.PIDOrNone(),
		rec.SeverityOrNone(),
		rec.Message)
}
