// FILE: idevlog/src/internal/deviceinfo/source.go
package deviceinfo

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/lixenwraith/log"
)

// PropertySource reads the lockdown properties of one device domain
type PropertySource interface {
	Values(ctx context.Context, domain Domain) (map[string]string, error)
}

// DefaultInfoCommand queries lockdown properties of a USB attached device
var DefaultInfoCommand = []string{"ideviceinfo"}

// ExecSource runs an ideviceinfo compatible program and parses its
// "Key: Value" output.
type ExecSource struct {
	command []string
	udid    string
	logger  *log.Logger
}

func NewExecSource(udid string, command []string, logger *log.Logger) *ExecSource {
	if len(command) == 0 {
		command = DefaultInfoCommand
	}
	return &ExecSource{
		command: command,
		udid:    udid,
		logger:  logger,
	}
}

func (s *ExecSource) Values(ctx context.Context, domain Domain) (map[string]string, error) {
	args := append([]string{}, s.command[1:]...)
	if s.udid != "" {
		args = append(args, "-u", s.udid)
	}
	if domain != All {
		args = append(args, "-q", string(domain))
	}

	s.logger.Debug("msg", "Querying device properties",
		"component", "deviceinfo",
		"command", s.command[0],
		"domain", domain.String())

	cmd := exec.CommandContext(ctx, s.command[0], args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", s.command[0], err, msg)
		}
		return nil, fmt.Errorf("%s: %w", s.command[0], err)
	}

	return parseProperties(out), nil
}

// parseProperties reads "Key: Value" lines. Indented lines belong to nested
// dictionaries and are skipped.
func parseProperties(out []byte) map[string]string {
	values := make(map[string]string)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || line[0] == ' ' || line[0] == '\t' {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return values
}
