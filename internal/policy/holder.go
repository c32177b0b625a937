package policy

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/rrosajp/service.yt-dlp/internal/log"
)

// Holder provides thread-safe access to the current policy and supports hot
// reloading from the settings file, either via the file watcher or a manual
// trigger from the API. A reload either validates and swaps the full policy
// or leaves the old one untouched.
type Holder struct {
	mu      sync.RWMutex
	current Policy
	path    string
	watcher *fsnotify.Watcher
	logger  zerolog.Logger
}

// NewHolder creates a holder seeded with the given policy.
func NewHolder(initial Policy, path string) *Holder {
	h := &Holder{
		current: initial,
		path:    path,
		logger:  log.WithComponent("policy"),
	}
	h.logPolicy(initial)
	return h
}

// Snapshot returns the current policy by value. Each request takes exactly
// one snapshot at entry.
func (h *Holder) Snapshot() Policy {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Reload re-reads the settings file and atomically swaps the policy.
func (h *Holder) Reload(_ context.Context) error {
	next, err := LoadFile(h.path)
	if err != nil {
		h.logger.Error().Err(err).Str("event", "policy.reload_failed").Msg("keeping previous settings")
		return fmt.Errorf("reload settings: %w", err)
	}

	h.mu.Lock()
	h.current = next
	h.mu.Unlock()

	h.logger.Info().Str("event", "policy.reloaded").Msg("settings reloaded")
	h.logPolicy(next)
	return nil
}

// StartWatcher watches the settings file for changes. A no-op when the holder
// was created without a settings path.
func (h *Holder) StartWatcher(ctx context.Context) error {
	if h.path == "" {
		h.logger.Info().Str("event", "policy.watcher_disabled").Msg("no settings file to watch")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(h.path); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch settings file: %w", err)
	}
	h.watcher = watcher

	h.logger.Info().Str("event", "policy.watcher_started").Str("path", h.path).Msg("watching settings file")
	go h.watchLoop(ctx)
	return nil
}

func (h *Holder) watchLoop(ctx context.Context) {
	// Debounce rapid write bursts from editors into a single reload.
	var debounce *time.Timer
	const debounceDelay = 500 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			h.logger.Info().Str("event", "policy.watcher_stopped").Msg("settings watcher stopped")
			_ = h.watcher.Close()
			return

		case event, ok := <-h.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, func() {
				_ = h.Reload(ctx)
			})

		case err, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
			h.logger.Error().Err(err).Str("event", "policy.watcher_error").Msg("settings watcher error")
		}
	}
}

// Stop closes the watcher if one is running.
func (h *Holder) Stop() {
	if h.watcher != nil {
		_ = h.watcher.Close()
	}
}

func (h *Holder) logPolicy(p Policy) {
	h.logger.Info().
		Bool("captions", p.Captions).
		Int("fps_limit", p.FrameRateCap).
		Str("fps_hint", string(p.FrameRateHint)).
		Str("exclude", p.ExcludedLabels()).
		Msg("active settings")
}
