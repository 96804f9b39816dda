// FILE: idevlog/src/internal/device/device_test.go
package device

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"idevlog/src/internal/core"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

func TestTarget(t *testing.T) {
	conn := NewRelayConnection("00008030-TEST", nil, newTestLogger())

	t.Run("Single", func(t *testing.T) {
		target := Single(conn)
		assert.False(t, target.IsGroup())
		got, err := target.Connection()
		require.NoError(t, err)
		assert.Equal(t, "00008030-TEST", got.UDID())
	})

	t.Run("Group", func(t *testing.T) {
		target := Group(conn, conn)
		assert.True(t, target.IsGroup())
		_, err := target.Connection()
		assert.ErrorIs(t, err, ErrGroupUnsupported)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := Target{}.Connection()
		assert.ErrorIs(t, err, ErrNoDevice)
	})
}

func TestRelayService(t *testing.T) {
	logger := newTestLogger()
	dir := t.TempDir()
	capture := filepath.Join(dir, "capture.log")
	content := "Jan  1 00:00:01 iPhone locationd[42] <Notice>: fix\nJan  1 00:00:02 iPhone kernel: ping\n"
	require.NoError(t, os.WriteFile(capture, []byte(content), 0o644))

	t.Run("UnknownService", func(t *testing.T) {
		conn := NewRelayConnection("", []string{"cat", capture}, logger)
		ld, err := conn.Lockdown()
		require.NoError(t, err)
		_, err = ld.StartService("com.apple.mobile.notification_proxy")
		assert.ErrorIs(t, err, ErrUnknownService)
	})

	t.Run("MissingBinary", func(t *testing.T) {
		conn := NewRelayConnection("", []string{filepath.Join(dir, "no-such-relay")}, logger)
		_, err := conn.StartService(core.SyslogRelayService)
		assert.Error(t, err)
	})

	t.Run("StreamsStdout", func(t *testing.T) {
		conn := NewRelayConnection("", []string{"cat", capture}, logger)
		svc, err := conn.StartService(core.SyslogRelayService)
		require.NoError(t, err)
		defer svc.Close()

		var got strings.Builder
		for {
			frame, err := svc.Receive(16)
			if err != nil {
				assert.ErrorIs(t, err, io.EOF)
				break
			}
			assert.LessOrEqual(t, len(frame), 16)
			got.Write(frame)
		}
		assert.Equal(t, content, got.String())
		assert.NoError(t, svc.Close())
	})
}

func TestTailService(t *testing.T) {
	logger := newTestLogger()
	dir := t.TempDir()

	t.Run("RequiresPath", func(t *testing.T) {
		_, err := NewTailConnection("", TailConfig{}, logger)
		assert.Error(t, err)
	})

	t.Run("MissingFileWithoutFollow", func(t *testing.T) {
		conn, err := NewTailConnection("", TailConfig{Path: filepath.Join(dir, "missing.log")}, logger)
		require.NoError(t, err)
		_, err = conn.StartService(core.SyslogRelayService)
		assert.Error(t, err)
	})

	t.Run("PacksWholeLines", func(t *testing.T) {
		path := filepath.Join(dir, "syslog.log")
		lines := []string{"aaaa", "bbbb", "cccc"}
		require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))

		conn, err := NewTailConnection("", TailConfig{Path: path}, logger)
		require.NoError(t, err)
		svc, err := conn.StartService(core.SyslogRelayService)
		require.NoError(t, err)
		defer svc.Close()

		var got strings.Builder
		for {
			frame, err := svc.Receive(10)
			if errors.Is(err, io.EOF) {
				break
			}
			require.NoError(t, err)
			require.NotEmpty(t, frame)
			assert.LessOrEqual(t, len(frame), 10)
			assert.True(t, strings.HasSuffix(string(frame), "\n"), "frame %q splits a line", frame)
			got.Write(frame)
		}
		assert.Equal(t, "aaaa\nbbbb\ncccc\n", got.String())
	})

	t.Run("OversizedLineSpansFrames", func(t *testing.T) {
		path := filepath.Join(dir, "long.log")
		require.NoError(t, os.WriteFile(path, []byte("0123456789abcdef\n"), 0o644))

		conn, err := NewTailConnection("", TailConfig{Path: path}, logger)
		require.NoError(t, err)
		svc, err := conn.StartService(core.SyslogRelayService)
		require.NoError(t, err)
		defer svc.Close()

		first, err := svc.Receive(8)
		require.NoError(t, err)
		assert.Equal(t, "01234567", string(first))
		second, err := svc.Receive(8)
		require.NoError(t, err)
		assert.Equal(t, "89abcdef", string(second))
		third, err := svc.Receive(8)
		require.NoError(t, err)
		assert.Equal(t, "\n", string(third))
	})
}
