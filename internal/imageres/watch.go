package imageres

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher evicts cached images whose files change on disk, so replaced
// glyphs and assets are picked up without a restart. Cache keys must use the
// same form as the watched directory (filepath.Join(dir, name)).
type Watcher struct {
	loader   *Loader
	fsw      *fsnotify.Watcher
	debounce time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// Watch starts watching dirs. Call Run to process events and Close when done.
func (l *Loader) Watch(debounce time.Duration, dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	return &Watcher{
		loader:   l,
		fsw:      fsw,
		debounce: debounce,
		timers:   make(map[string]*time.Timer),
	}, nil
}

// Run handles events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.schedule(event.Name)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("image watcher error", "error", err)

		case <-ctx.Done():
			return
		}
	}
}

// schedule evicts path once writes to it have settled.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.loader.Evict(path)
		slog.Debug("image evicted", "path", path)

		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
	})
}

func (w *Watcher) Close() error {
	w.mu.Lock()
	for _, t := range w.timers {
		t.Stop()
	}
	w.mu.Unlock()
	return w.fsw.Close()
}
