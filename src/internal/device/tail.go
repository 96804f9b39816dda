// FILE: idevlog/src/internal/device/tail.go
package device

import (
	"fmt"
	"io"

	"idevlog/src/internal/core"

	"github.com/lixenwraith/log"
	"github.com/nxadm/tail"
)

// TailConfig selects a captured or live syslog file to replay as a device stream
type TailConfig struct {
	Path          string
	Follow        bool
	FromBeginning bool
	Poll          bool
}

// TailConnection serves the syslog relay service from a followed file,
// for devices whose log is already captured on disk by another tool.
type TailConnection struct {
	config TailConfig
	udid   string
	logger *log.Logger
}

func NewTailConnection(udid string, cfg TailConfig, logger *log.Logger) (*TailConnection, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("tail transport requires a path")
	}
	return &TailConnection{
		config: cfg,
		udid:   udid,
		logger: logger,
	}, nil
}

func (c *TailConnection) UDID() string {
	return c.udid
}

func (c *TailConnection) Lockdown() (Lockdown, error) {
	return c, nil
}

func (c *TailConnection) StartService(name string) (Service, error) {
	if name != core.SyslogRelayService {
		return nil, fmt.Errorf("%w: %s", ErrUnknownService, name)
	}

	whence := io.SeekEnd
	if c.config.FromBeginning || !c.config.Follow {
		whence = io.SeekStart
	}

	t, err := tail.TailFile(c.config.Path, tail.Config{
		Follow:    c.config.Follow,
		ReOpen:    c.config.Follow,
		MustExist: !c.config.Follow,
		Poll:      c.config.Poll,
		Location:  &tail.SeekInfo{Offset: 0, Whence: whence},
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("tail %s: %w", c.config.Path, err)
	}

	c.logger.Debug("msg", "Tail transport started",
		"component", "tail_transport",
		"path", c.config.Path,
		"follow", c.config.Follow)

	return &tailService{tail: t, logger: c.logger}, nil
}

type tailService struct {
	tail    *tail.Tail
	pending []byte
	logger  *log.Logger
}

// Receive blocks for the first line, then packs further already available
// lines into the frame while they fit. A line longer than maxBytes spans frames.
func (s *tailService) Receive(maxBytes int) ([]byte, error) {
	if maxBytes <= 0 {
		maxBytes = core.ChunkSize
	}

	if len(s.pending) == 0 {
		line, ok := <-s.tail.Lines
		if !ok {
			return nil, fmt.Errorf("tail receive: %w", io.EOF)
		}
		if line.Err != nil {
			return nil, fmt.Errorf("tail receive: %w", line.Err)
		}
		s.pending = append(s.pending, line.Text...)
		s.pending = append(s.pending, '\n')
	}

	for len(s.pending) < maxBytes {
		select {
		case line, ok := <-s.tail.Lines:
			if !ok || line.Err != nil {
				return s.take(maxBytes), nil
			}
			if len(s.pending)+len(line.Text)+1 > maxBytes {
				// Keep it for the next frame
				s.pending = append(s.pending, line.Text...)
				s.pending = append(s.pending, '\n')
				return s.takeUntil(maxBytes), nil
			}
			s.pending = append(s.pending, line.Text...)
			s.pending = append(s.pending, '\n')
		default:
			return s.take(maxBytes), nil
		}
	}

	return s.take(maxBytes), nil
}

// take returns up to maxBytes of pending data
func (s *tailService) take(maxBytes int) []byte {
	n := min(len(s.pending), maxBytes)
	frame := append([]byte(nil), s.pending[:n]...)
	s.pending = s.pending[n:]
	return frame
}

// takeUntil returns the whole lines of pending data that fit in maxBytes,
// or a maxBytes slice when the first line alone is longer.
func (s *tailService) takeUntil(maxBytes int) []byte {
	cut := 0
	for i := 0; i < len(s.pending) && i < maxBytes; i++ {
		if s.pending[i] == '\n' {
			cut = i + 1
		}
	}
	if cut == 0 {
		return s.take(maxBytes)
	}
	return s.take(cut)
}

func (s *tailService) Close() error {
	err := s.tail.Stop()
	s.tail.Cleanup()
	if err != nil {
		return fmt.Errorf("tail stop: %w", err)
	}
	return nil
}
