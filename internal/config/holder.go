package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-lap-timer/internal/util"
)

const defaultDebounce = 250 * time.Millisecond

// Holder keeps the active configuration and reloads it when the file
// changes. A reload that fails to load or validate leaves the current
// configuration in place.
type Holder struct {
	mu      sync.RWMutex
	current Config
	loader  *Loader

	debounce time.Duration
	watcher  *fsnotify.Watcher

	listenersMu sync.Mutex
	listeners   []chan Config
}

func NewHolder(initial Config, loader *Loader) *Holder {
	return &Holder{
		current:  initial,
		loader:   loader,
		debounce: defaultDebounce,
	}
}

// Get returns the active configuration
func (h *Holder) Get() Config {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Subscribe returns a channel that receives each successfully reloaded
// configuration. Slow subscribers miss intermediate values.
func (h *Holder) Subscribe() <-chan Config {
	ch := make(chan Config, 1)
	h.listenersMu.Lock()
	h.listeners = append(h.listeners, ch)
	h.listenersMu.Unlock()
	return ch
}

// Reload re-reads the configuration file
func (h *Holder) Reload() error {
	cfg, err := h.loader.Load()
	if err != nil {
		util.LogWarn("Config reload rejected, keeping previous configuration", util.F("error", err.Error()))
		return err
	}

	h.mu.Lock()
	h.current = cfg
	h.mu.Unlock()

	util.LogInfo("Configuration reloaded", util.F("path", h.loader.path))
	h.notify(cfg)
	return nil
}

func (h *Holder) notify(cfg Config) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	for _, ch := range h.listeners {
		// drop a stale pending value so the latest config wins
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- cfg:
		default:
		}
	}
}

// Watch reloads on changes to the config file until ctx is cancelled. The
// parent directory is watched so editors that replace the file are seen.
// Without a config file this is a no-op.
func (h *Holder) Watch(ctx context.Context) error {
	path := h.loader.Path()
	if path == "" {
		util.LogDebug("No config file present, hot reload disabled")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch config directory: %w", err)
	}
	h.watcher = watcher

	util.LogDebug("Watching config file", util.F("path", path))
	go h.watchLoop(ctx, filepath.Clean(path))
	return nil
}

func (h *Holder) watchLoop(ctx context.Context, path string) {
	defer h.watcher.Close()

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-h.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(h.debounce, func() {
				if ctx.Err() != nil {
					return
				}
				_ = h.Reload()
			})

		case err, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("Config watcher error", util.F("error", err.Error()))
		}
	}
}
