// FILE: idevlog/src/cmd/idevlog/run.go
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"idevlog/src/internal/config"
	"idevlog/src/internal/metrics"
	"idevlog/src/internal/status"
	"idevlog/src/internal/syslog"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// runSyslog streams until SIGINT / SIGTERM
func runSyslog(cfg *config.Config, flags *FlagConfig) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New("")
	dsl, err := bootstrapSyslog(cfg, m)
	if err != nil {
		return err
	}

	if err := startStream(dsl, cfg.Syslog); err != nil {
		dsl.Close()
		return err
	}

	var srv *status.Server
	if cfg.Status.Enabled {
		srv = status.NewServer(status.Config{
			Enabled:           true,
			Host:              cfg.Status.Host,
			Port:              cfg.Status.Port,
			RequestsPerSecond: cfg.Status.RequestsPerSecond,
			Burst:             cfg.Status.Burst,
		}, dsl, m.Handler(), logger)
		if err := srv.Start(); err != nil {
			logger.Error("msg", "Status server unavailable",
				"component", "main",
				"error", err)
			srv = nil
		}
	}

	rm := NewReloadManager(config.GetConfigPath(), flags, cfg, dsl, logger)
	if err := rm.Start(ctx); err != nil {
		logger.Warn("msg", "Hot reload disabled",
			"component", "main",
			"error", err)
	}

	sh := NewSignalHandler(rm, logger)
	defer sh.Stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if sig := sh.Handle(gctx); sig != nil {
			logger.Info("msg", "Shutdown signal received",
				"component", "main",
				"signal", sig)
		}
		cancel()
		return nil
	})

	if os.Getenv("IDEVLOG_DISABLE_STATUS_REPORTER") != "1" {
		g.Go(func() error {
			statusReporter(gctx, dsl, statusInterval)
			return nil
		})
	}

	_ = g.Wait()

	rm.Shutdown()
	return shutdown(dsl, srv)
}

func shutdown(dsl *syslog.DeviceSysLog, srv *status.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if srv != nil {
		if err := srv.Stop(ctx); err != nil {
			logger.Warn("msg", "Status server shutdown failed", "error", err)
		}
	}

	if err := dsl.StopLogging(); err != nil && !errors.Is(err, syslog.ErrNotRunning) {
		logger.Warn("msg", "Stop request failed", "error", err)
	}
	dsl.Close()

	// A relay blocked on a silent device only notices the stop on its next
	// frame; exit anyway once the timeout passes.
	if err := dsl.Wait(ctx); err != nil {
		logger.Warn("msg", "Worker did not stop before timeout",
			"component", "main",
			"timeout", shutdownTimeout)
		return nil
	}

	logger.Info("msg", "Shutdown complete",
		"component", "main",
		"stats", dsl.GetStats())
	return nil
}
