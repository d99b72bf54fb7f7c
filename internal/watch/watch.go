// Package watch reruns a callback whenever a file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/OpenTraceLab/magnetorquer/internal/logger"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 150 * time.Millisecond

// Func is called once at start and again after every change.
type Func func(ctx context.Context) error

// Watch calls fn once, then again each time path is written or recreated,
// until ctx is cancelled. Errors from fn are logged and do not stop the
// watch. The parent directory is watched so atomic-rename saves are seen.
func Watch(ctx context.Context, path string, fn Func) error {
	return watchWithDebounce(ctx, path, fn, DefaultDebounce)
}

func watchWithDebounce(ctx context.Context, path string, fn Func, debounce time.Duration) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	run := func() {
		if err := fn(ctx); err != nil {
			logger.L().Error("run failed", "file", target, "error", err)
		}
	}
	run()

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(ev, target) {
				continue
			}
			logger.L().Debug("change detected", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.L().Warn("watcher error", "error", err)
		case <-timer.C:
			run()
		}
	}
}

// relevant reports whether ev changes the contents of target.
func relevant(ev fsnotify.Event, target string) bool {
	if filepath.Clean(ev.Name) != target {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}
