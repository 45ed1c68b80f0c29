// Package watcher re-ingests documents when files in a watched directory
// change. Events are filtered to regular, non-hidden files and debounced
// per path so editors that write in bursts trigger a single ingestion.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/clause-labs/retriva-cli/internal/logger"
)

// DefaultDebounce is how long a path must stay quiet before it is reported.
const DefaultDebounce = 500 * time.Millisecond

// Handler is invoked once per settled file change.
type Handler func(ctx context.Context, path string)

// Watcher watches a directory and invokes a handler for changed files.
type Watcher struct {
	dir      string
	debounce time.Duration
	handler  Handler

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a watcher for dir. A zero debounce uses the default.
func New(dir string, debounce time.Duration, handler Handler) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		handler:  handler,
		pending:  make(map[string]*time.Timer),
	}
}

// Run watches until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return err
	}

	logger.Info("Watching %s", w.dir)

	for {
		select {
		case <-ctx.Done():
			w.drain()
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if path, relevant := w.filter(event); relevant {
				w.schedule(ctx, path)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}

// filter reports whether an event should trigger ingestion.
// Only creates and writes of regular, non-hidden files qualify.
func (w *Watcher) filter(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if isHidden(event.Name) {
		return "", false
	}

	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return "", false
	}

	return event.Name, true
}

// schedule arms (or re-arms) the debounce timer for a path.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Reset(w.debounce)
		return
	}

	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		w.handler(ctx, path)
	})
}

// drain cancels all armed timers.
func (w *Watcher) drain() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
}

// isHidden reports whether any path element starts with a dot.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if len(part) > 1 && strings.HasPrefix(part, ".") && part != ".." {
			return true
		}
	}
	return false
}
