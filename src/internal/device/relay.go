// FILE: idevlog/src/internal/device/relay.go
package device

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"idevlog/src/internal/core"

	"github.com/lixenwraith/log"
)

// DefaultRelayCommand streams the syslog relay of a USB attached device
var DefaultRelayCommand = []string{"idevicesyslog"}

// RelayConnection reaches a device through an external relay program whose
// stdout carries the raw syslog_relay stream.
type RelayConnection struct {
	udid    string
	command []string
	logger  *log.Logger
}

// NewRelayConnection creates a relay connection. An empty command selects
// DefaultRelayCommand; "-u <udid>" is appended when udid is set.
func NewRelayConnection(udid string, command []string, logger *log.Logger) *RelayConnection {
	if len(command) == 0 {
		command = DefaultRelayCommand
	}
	return &RelayConnection{
		udid:    udid,
		command: command,
		logger:  logger,
	}
}

func (c *RelayConnection) UDID() string {
	return c.udid
}

func (c *RelayConnection) Lockdown() (Lockdown, error) {
	return c, nil
}

func (c *RelayConnection) StartService(name string) (Service, error) {
	if name != core.SyslogRelayService {
		return nil, fmt.Errorf("%w: %s", ErrUnknownService, name)
	}

	args := append([]string{}, c.command[1:]...)
	if c.udid != "" {
		args = append(args, "-u", c.udid)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, c.command[0], args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("relay pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("relay start: %w", err)
	}

	c.logger.Debug("msg", "Relay process started",
		"component", "relay",
		"command", c.command[0],
		"pid", cmd.Process.Pid,
		"udid", c.udid)

	return &relayService{
		cmd:    cmd,
		stdout: stdout,
		cancel: cancel,
		logger: c.logger,
	}, nil
}

type relayService struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	cancel context.CancelFunc
	logger *log.Logger

	closeOnce sync.Once
}

func (s *relayService) Receive(maxBytes int) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = core.ChunkSize
	}
	buf := make([]byte, maxBytes)
	n, err := s.stdout.Read(buf)
	if n > 0 {
		return buf[:n], nil
	}
	if err == nil {
		err = io.ErrNoProgress
	}
	return nil, fmt.Errorf("relay receive: %w", err)
}

func (s *relayService) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		// Killed by cancel; the exit status carries no information
		_ = s.cmd.Wait()
		s.logger.Debug("msg", "Relay process stopped", "component", "relay")
	})
	return nil
}
