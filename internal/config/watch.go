package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Lebid-Dmytro/dj-movie/internal/logger"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounceDelay coalesces the burst of events editors emit on save
const DefaultDebounceDelay = 250 * time.Millisecond

// Watch reloads the configuration whenever its file changes, until ctx is
// cancelled. The parent directory is watched so that atomic renames are seen.
// A reload that fails validation is logged and the previous configuration
// stays active.
func (cm *ConfigManager) Watch(ctx context.Context, debounce time.Duration) error {
	path := cm.Path()
	if path == "" {
		return fmt.Errorf("no config path set")
	}
	if debounce <= 0 {
		debounce = DefaultDebounceDelay
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	log := logger.Named("config")
	log.Info("watching configuration file", "path", path)

	go func() {
		defer watcher.Close()

		var timer *time.Timer
		var fire <-chan time.Time
		target := filepath.Clean(path)

		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(debounce)
				} else {
					timer.Reset(debounce)
				}
				fire = timer.C

			case <-fire:
				fire = nil
				if err := cm.LoadConfig(path); err != nil {
					log.Error("configuration reload failed", "path", path, "error", err)
					continue
				}
				log.Info("configuration reloaded", "path", path)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("file watcher error", "error", err)
			}
		}
	}()

	return nil
}

// Watch starts hot reload on the global configuration manager
func Watch(ctx context.Context) error {
	return GetConfigManager().Watch(ctx, DefaultDebounceDelay)
}
