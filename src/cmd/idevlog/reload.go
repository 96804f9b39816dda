// FILE: idevlog/src/cmd/idevlog/reload.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"
	"time"

	"idevlog/src/internal/config"
	"idevlog/src/internal/syslog"

	lconfig "github.com/lixenwraith/config"
	"github.com/lixenwraith/log"
)

// ReloadManager re-applies syslog settings from the configuration file,
// either on file change (hot_reload) or on SIGHUP / SIGUSR1.
type ReloadManager struct {
	configPath  string
	flags       *FlagConfig
	dsl         *syslog.DeviceSysLog
	cfg         *config.Config
	lcfg        *lconfig.Config
	logger      *log.Logger
	mu          sync.RWMutex
	reloadingMu sync.Mutex
	isReloading bool
	shutdownCh  chan struct{}
	wg          sync.WaitGroup
}

func NewReloadManager(configPath string, flags *FlagConfig, cfg *config.Config, dsl *syslog.DeviceSysLog, logger *log.Logger) *ReloadManager {
	return &ReloadManager{
		configPath: configPath,
		flags:      flags,
		dsl:        dsl,
		cfg:        cfg,
		logger:     logger,
		shutdownCh: make(chan struct{}),
	}
}

// Start begins watching the configuration file when hot reload is enabled
func (rm *ReloadManager) Start(ctx context.Context) error {
	if !rm.Config().HotReload {
		return nil
	}
	if _, err := os.Stat(rm.configPath); err != nil {
		rm.logger.Warn("msg", "Hot reload requested without a configuration file",
			"component", "reload",
			"config_file", rm.configPath)
		return nil
	}

	lcfg, err := lconfig.NewBuilder().
		WithFile(rm.configPath).
		WithTarget(config.Default()).
		WithFileFormat("toml").
		WithSecurityOptions(lconfig.SecurityOptions{
			PreventPathTraversal: true,
			MaxFileSize:          1024 * 1024,
		}).
		Build()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	rm.lcfg = lcfg

	lcfg.AutoUpdateWithOptions(lconfig.WatchOptions{
		PollInterval:      time.Second,
		Debounce:          500 * time.Millisecond,
		ReloadTimeout:     10 * time.Second,
		VerifyPermissions: true,
	})

	rm.wg.Add(1)
	go rm.watchLoop(ctx)

	rm.logger.Info("msg", "Configuration hot reload enabled",
		"component", "reload",
		"config_file", rm.configPath)
	return nil
}

func (rm *ReloadManager) watchLoop(ctx context.Context) {
	defer rm.wg.Done()

	changeCh := rm.lcfg.Watch()

	for {
		select {
		case <-ctx.Done():
			return
		case <-rm.shutdownCh:
			return
		case changedPath, ok := <-changeCh:
			if !ok {
				return
			}
			switch changedPath {
			case "file_deleted":
				rm.logger.Error("msg", "Configuration file deleted",
					"action", "keeping current configuration")
				continue
			case "permissions_changed":
				rm.logger.Error("msg", "Configuration file permissions changed",
					"action", "reload blocked")
				continue
			case "reload_timeout":
				rm.logger.Error("msg", "Configuration reload timed out",
					"action", "keeping current configuration")
				continue
			default:
				if strings.HasPrefix(changedPath, "reload_error:") {
					rm.logger.Error("msg", "Configuration reload error",
						"error", strings.TrimPrefix(changedPath, "reload_error:"),
						"action", "keeping current configuration")
					continue
				}
			}

			if shouldReload(changedPath) {
				rm.triggerReload(ctx)
			}
		}
	}
}

// shouldReload reports whether a changed key affects the running stream
func shouldReload(path string) bool {
	return path == "syslog" || strings.HasPrefix(path, "syslog.")
}

func (rm *ReloadManager) triggerReload(ctx context.Context) {
	rm.reloadingMu.Lock()
	if rm.isReloading {
		rm.reloadingMu.Unlock()
		rm.logger.Debug("msg", "Reload already in progress, skipping")
		return
	}
	rm.isReloading = true
	rm.reloadingMu.Unlock()

	defer func() {
		rm.reloadingMu.Lock()
		rm.isReloading = false
		rm.reloadingMu.Unlock()
	}()

	rm.logger.Info("msg", "Starting configuration reload", "component", "reload")

	reloadCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := rm.performReload(reloadCtx); err != nil {
		rm.logger.Error("msg", "Reload failed",
			"component", "reload",
			"error", err,
			"action", "keeping current configuration")
		return
	}

	rm.logger.Info("msg", "Configuration reload completed", "component", "reload")
}

func (rm *ReloadManager) performReload(ctx context.Context) error {
	newCfg, err := loadConfig(rm.flags)
	if err != nil {
		return err
	}

	rm.mu.RLock()
	oldCfg := rm.cfg
	rm.mu.RUnlock()

	if !reflect.DeepEqual(oldCfg.Device, newCfg.Device) {
		rm.logger.Warn("msg", "Device settings changed, restart required to apply",
			"component", "reload")
	}
	if reflect.DeepEqual(oldCfg.Syslog, newCfg.Syslog) {
		rm.logger.Debug("msg", "Syslog settings unchanged", "component", "reload")
		return nil
	}

	// New filters only reach the next worker
	if err := rm.dsl.SetFilter(newCfg.Syslog.Filters...); err != nil {
		return err
	}

	wasRunning := rm.dsl.Running()
	if err := rm.restart(ctx, newCfg.Syslog, wasRunning); err != nil {
		rm.rollback(oldCfg.Syslog, wasRunning)
		return err
	}

	rm.mu.Lock()
	rm.cfg = newCfg
	rm.mu.Unlock()
	return nil
}

// restart replaces the running worker with one built from sc
func (rm *ReloadManager) restart(ctx context.Context, sc config.SyslogConfig, running bool) error {
	if running {
		if err := rm.dsl.StopLogging(); err != nil && !errors.Is(err, syslog.ErrNotRunning) {
			return err
		}
		if err := rm.dsl.Wait(ctx); err != nil {
			return fmt.Errorf("waiting for worker to stop: %w", err)
		}
	}
	return startStream(rm.dsl, sc)
}

// rollback restores the previous chain and output. A worker still blocked in
// receive takes the start as cancelling the pending stop and keeps its own
// sink and chain; one that already exited is replaced.
func (rm *ReloadManager) rollback(sc config.SyslogConfig, wasRunning bool) {
	if err := rm.dsl.SetFilter(sc.Filters...); err != nil {
		rm.logger.Error("msg", "Failed to restore filter chain",
			"component", "reload",
			"error", err)
	}
	if !wasRunning {
		return
	}
	if err := startStream(rm.dsl, sc); err != nil {
		rm.logger.Error("msg", "Failed to resume logging with previous configuration",
			"component", "reload",
			"error", err)
	}
}

// Config returns the configuration currently applied
func (rm *ReloadManager) Config() *config.Config {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.cfg
}

func (rm *ReloadManager) Shutdown() {
	close(rm.shutdownCh)
	rm.wg.Wait()

	if rm.lcfg != nil {
		rm.lcfg.StopAutoUpdate()
	}
}
