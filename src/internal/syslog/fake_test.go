// FILE: idevlog/src/internal/syslog/fake_test.go
package syslog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"idevlog/src/internal/core"
	"idevlog/src/internal/device"
	"idevlog/src/internal/sink"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

var errReleased = errors.New("service released")

type frame struct {
	data string
	err  error
}

// fakeService hands out frames pushed by the test. Pushes block until the
// worker is inside Receive.
type fakeService struct {
	frames   chan frame
	released chan struct{}
	once     sync.Once
	receives atomic.Int32
	closed   atomic.Bool
}

func newFakeService() *fakeService {
	return &fakeService{
		frames:   make(chan frame),
		released: make(chan struct{}),
	}
}

func (s *fakeService) Receive(maxBytes int) ([]byte, error) {
	s.receives.Add(1)
	select {
	case f := <-s.frames:
		if f.err != nil {
			return nil, f.err
		}
		return []byte(f.data), nil
	case <-s.released:
		return nil, errReleased
	}
}

func (s *fakeService) Close() error {
	s.closed.Store(true)
	return nil
}

func (s *fakeService) push(t *testing.T, f frame) {
	t.Helper()
	select {
	case s.frames <- f:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not receive frame")
	}
}

func (s *fakeService) release() {
	s.once.Do(func() { close(s.released) })
}

type fakeConn struct {
	mu          sync.Mutex
	services    []*fakeService
	names       []string
	lockdownErr error
	startErr    error
}

func (c *fakeConn) UDID() string {
	return "fake-udid"
}

func (c *fakeConn) Lockdown() (device.Lockdown, error) {
	if c.lockdownErr != nil {
		return nil, c.lockdownErr
	}
	return c, nil
}

func (c *fakeConn) StartService(name string) (device.Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.names = append(c.names, name)
	if c.startErr != nil {
		return nil, c.startErr
	}
	svc := newFakeService()
	c.services = append(c.services, svc)
	return svc, nil
}

func (c *fakeConn) service(t *testing.T, i int) *fakeService {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	require.Greater(t, len(c.services), i)
	return c.services[i]
}

func (c *fakeConn) serviceCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.services)
}

type captureSink struct {
	mu   sync.Mutex
	recs []core.LogRecord
}

func (s *captureSink) Write(rec core.LogRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = append(s.recs, rec)
}

func (s *captureSink) Name() string {
	return "capture"
}

func (s *captureSink) GetStats() sink.SinkStats {
	return sink.SinkStats{Type: "capture", Details: map[string]any{}}
}

func (s *captureSink) records() []core.LogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.LogRecord(nil), s.recs...)
}

func (s *captureSink) messages() []string {
	var out []string
	for _, rec := range s.records() {
		out = append(out, rec.Message)
	}
	return out
}

func newTestSysLog(t *testing.T) (*DeviceSysLog, *fakeConn) {
	t.Helper()
	conn := &fakeConn{}
	d, err := NewDeviceSysLog(device.Single(conn), Options{RetryDelay: 10 * time.Millisecond}, newTestLogger())
	require.NoError(t, err)

	t.Cleanup(func() {
		d.Close()
		conn.mu.Lock()
		for _, svc := range conn.services {
			svc.release()
		}
		conn.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		require.NoError(t, d.Wait(ctx))
	})
	return d, conn
}

func waitBlocked(t *testing.T, svc *fakeService, receives int32) {
	t.Helper()
	require.Eventually(t, func() bool {
		return svc.receives.Load() >= receives
	}, 2*time.Second, time.Millisecond)
}
