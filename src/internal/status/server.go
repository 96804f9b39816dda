// FILE: idevlog/src/internal/status/server.go
package status

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"idevlog/src/internal/version"

	"github.com/lixenwraith/log"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"golang.org/x/time/rate"
)

// StatsProvider is anything that can report runtime statistics
type StatsProvider interface {
	GetStats() map[string]any
}

// Config holds the status endpoint settings
type Config struct {
	Enabled           bool    `toml:"enabled"`
	Host              string  `toml:"host"`
	Port              int64   `toml:"port"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int64   `toml:"burst"`
}

// Server exposes /status as JSON and /metrics in the prometheus format
type Server struct {
	config    Config
	provider  StatsProvider
	metrics   fasthttp.RequestHandler
	limiter   *rate.Limiter
	server    *fasthttp.Server
	startTime time.Time
	logger    *log.Logger

	// Statistics
	totalRequests atomic.Uint64
	totalLimited  atomic.Uint64
}

// NewServer creates the status server. A nil metrics handler disables /metrics.
func NewServer(cfg Config, provider StatsProvider, metrics http.Handler, logger *log.Logger) *Server {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 20
	}

	s := &Server{
		config:    cfg,
		provider:  provider,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), int(cfg.Burst)),
		startTime: time.Now(),
		logger:    logger,
	}
	if metrics != nil {
		s.metrics = fasthttpadaptor.NewFastHTTPHandler(metrics)
	}
	s.server = &fasthttp.Server{
		Handler:          s.requestHandler,
		Name:             "idevlog",
		ReadTimeout:      5 * time.Second,
		WriteTimeout:     5 * time.Second,
		DisableKeepalive: false,
		Logger:           nil,
	}
	return s
}

// Start listens on the configured address
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("status listen %s: %w", addr, err)
	}
	s.Serve(ln)
	return nil
}

// Serve runs the server on ln in the background
func (s *Server) Serve(ln net.Listener) {
	go func() {
		if err := s.server.Serve(ln); err != nil {
			s.logger.Error("msg", "Status server stopped with error",
				"component", "status",
				"error", err)
		}
	}()

	s.logger.Info("msg", "Status server started",
		"component", "status",
		"address", ln.Addr().String())
}

func (s *Server) Stop(ctx context.Context) error {
	if err := s.server.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("status shutdown: %w", err)
	}
	s.logger.Info("msg", "Status server stopped", "component", "status")
	return nil
}

func (s *Server) requestHandler(ctx *fasthttp.RequestCtx) {
	s.totalRequests.Add(1)

	if !s.limiter.Allow() {
		s.totalLimited.Add(1)
		ctx.SetStatusCode(fasthttp.StatusTooManyRequests)
		ctx.SetBodyString("Rate limit exceeded")
		return
	}

	switch string(ctx.Path()) {
	case "/status":
		s.handleStatus(ctx)
	case "/metrics":
		if s.metrics == nil {
			ctx.SetStatusCode(fasthttp.StatusNotFound)
			return
		}
		s.metrics(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	}
}

func (s *Server) handleStatus(ctx *fasthttp.RequestCtx) {
	status := map[string]any{
		"service": "idevlog",
		"version": version.Short(),
		"uptime":  time.Since(s.startTime).Round(time.Second).String(),
		"server": map[string]any{
			"total_requests": s.totalRequests.Load(),
			"total_limited":  s.totalLimited.Load(),
		},
	}
	if s.provider != nil {
		status["syslog"] = s.provider.GetStats()
	}

	data, err := json.Marshal(status)
	if err != nil {
		s.logger.Error("msg", "Failed to encode status",
			"component", "status",
			"error", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}
