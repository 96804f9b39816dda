// FILE: idevlog/src/internal/status/server_test.go
package status

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"idevlog/src/internal/metrics"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

type staticStats map[string]any

func (s staticStats) GetStats() map[string]any {
	return s
}

func do(s *Server, path string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.SetRequestURI(path)
	var ctx fasthttp.RequestCtx
	ctx.Init(&req, nil, nil)
	s.requestHandler(&ctx)
	return &ctx
}

func TestServer_Status(t *testing.T) {
	s := NewServer(Config{}, staticStats{"running": true}, nil, log.NewLogger())

	ctx := do(s, "/status")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Equal(t, "application/json", string(ctx.Response.Header.ContentType()))

	var body map[string]any
	require.NoError(t, json.Unmarshal(ctx.Response.Body(), &body))
	assert.Equal(t, "idevlog", body["service"])
	assert.Equal(t, map[string]any{"running": true}, body["syslog"])

	assert.Equal(t, fasthttp.StatusNotFound, do(s, "/metrics").Response.StatusCode())
	assert.Equal(t, fasthttp.StatusNotFound, do(s, "/nope").Response.StatusCode())
}

func TestServer_Metrics(t *testing.T) {
	m := metrics.New("")
	m.Line(metrics.OutcomeDelivered)
	s := NewServer(Config{}, nil, m.Handler(), log.NewLogger())

	ctx := do(s, "/metrics")
	require.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.Contains(t, string(ctx.Response.Body()), `idevlog_lines_total{outcome="delivered"} 1`)
}

func TestServer_RateLimit(t *testing.T) {
	s := NewServer(Config{RequestsPerSecond: 0.001, Burst: 2}, nil, nil, log.NewLogger())

	assert.Equal(t, fasthttp.StatusOK, do(s, "/status").Response.StatusCode())
	assert.Equal(t, fasthttp.StatusOK, do(s, "/status").Response.StatusCode())
	assert.Equal(t, fasthttp.StatusTooManyRequests, do(s, "/status").Response.StatusCode())
	assert.Equal(t, uint64(1), s.totalLimited.Load())
}

func TestServer_Serve(t *testing.T) {
	ln := fasthttputil.NewInmemoryListener()
	s := NewServer(Config{}, staticStats{}, nil, log.NewLogger())
	s.Serve(ln)

	client := &fasthttp.Client{Dial: func(string) (net.Conn, error) { return ln.Dial() }}
	status, body, err := client.Get(nil, "http://idevlog/status")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"service":"idevlog"`)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}
