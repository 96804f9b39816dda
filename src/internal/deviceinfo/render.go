// FILE: idevlog/src/internal/deviceinfo/render.go
package deviceinfo

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Render writes values to w as "text", "yaml" or "json". Keys are sorted.
func Render(w io.Writer, values map[string]string, format string) error {
	switch format {
	case "", "text":
		return renderText(w, values)
	case "yaml":
		data, err := yaml.Marshal(values)
		if err != nil {
			return fmt.Errorf("yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "json":
		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return fmt.Errorf("json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func renderText(w io.Writer, values map[string]string) error {
	renderer := lipgloss.NewRenderer(w)
	keyStyle := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(keyStyle.Render(k))
		b.WriteString(": ")
		b.WriteString(values[k])
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
