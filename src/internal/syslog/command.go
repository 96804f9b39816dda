// FILE: idevlog/src/internal/syslog/command.go
package syslog

import (
	"errors"
	"sync"
)

// LoggerCommand is the control message from the controller to the worker
type LoggerCommand int

const (
	StopLogging LoggerCommand = iota
	StartLogging
)

func (c LoggerCommand) String() string {
	switch c {
	case StartLogging:
		return "start"
	case StopLogging:
		return "stop"
	default:
		return "unknown"
	}
}

var ErrChannelClosed = errors.New("command channel closed")

// commandChannel is a single-slot mailbox. A send replaces a command the
// worker has not consumed yet, so the worker always observes the latest one.
type commandChannel struct {
	mu     sync.Mutex
	ch     chan LoggerCommand
	closed bool
}

func newCommandChannel() *commandChannel {
	return &commandChannel{ch: make(chan LoggerCommand, 1)}
}

func (c *commandChannel) Send(cmd LoggerCommand) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrChannelClosed
	}
	select {
	case <-c.ch:
	default:
	}
	c.ch <- cmd
	return nil
}

// Drain discards a pending command
func (c *commandChannel) Drain() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	select {
	case <-c.ch:
	default:
	}
}

// Poll returns the pending command without blocking, or current when none
// is pending. A closed channel reads as StopLogging.
func (c *commandChannel) Poll(current LoggerCommand) LoggerCommand {
	select {
	case cmd, ok := <-c.ch:
		if !ok {
			return StopLogging
		}
		return cmd
	default:
		return current
	}
}

func (c *commandChannel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.ch)
	}
}

func (c *commandChannel) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
