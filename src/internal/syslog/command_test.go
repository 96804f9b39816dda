// FILE: idevlog/src/internal/syslog/command_test.go
package syslog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandChannel(t *testing.T) {
	t.Run("LatestWins", func(t *testing.T) {
		c := newCommandChannel()
		assert.NoError(t, c.Send(StartLogging))
		assert.NoError(t, c.Send(StopLogging))
		assert.Equal(t, StopLogging, c.Poll(StartLogging))
		assert.Equal(t, StartLogging, c.Poll(StartLogging), "empty channel keeps current state")
	})

	t.Run("Drain", func(t *testing.T) {
		c := newCommandChannel()
		assert.NoError(t, c.Send(StopLogging))
		c.Drain()
		assert.Equal(t, StartLogging, c.Poll(StartLogging))
	})

	t.Run("Closed", func(t *testing.T) {
		c := newCommandChannel()
		c.Close()
		c.Close()
		assert.True(t, c.Closed())
		assert.ErrorIs(t, c.Send(StartLogging), ErrChannelClosed)
		assert.Equal(t, StopLogging, c.Poll(StartLogging))
		assert.NotPanics(t, c.Drain)
	})

	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "start", StartLogging.String())
		assert.Equal(t, "stop", StopLogging.String())
		assert.Equal(t, "unknown", LoggerCommand(9).String())
	})
}
