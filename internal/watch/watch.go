// Package watch re-runs a callback when a single file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/erraggy/ramltools/parser"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before the
// callback fires.
const DefaultDebounce = 100 * time.Millisecond

// File watches path and calls onChange after each burst of writes settles.
// It blocks until ctx is cancelled.
//
// The parent directory is watched rather than the file itself so that
// editors which save by renaming a temporary file over the original are
// still observed.
func File(ctx context.Context, path string, debounce time.Duration, logger parser.Logger, onChange func()) error {
	if logger == nil {
		logger = parser.NopLogger{}
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch: invalid path %q: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: failed to create watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch: failed to watch %q: %w", filepath.Dir(target), err)
	}
	logger.Debug("watching file", "path", target, "debounce", debounce)

	d := &debouncer{delay: debounce, fn: onChange}
	defer d.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return fmt.Errorf("watch: events channel closed")
			}
			if !relevant(event, target) {
				continue
			}
			logger.Debug("file event", "path", event.Name, "op", event.Op.String())
			d.trigger(ctx)

		case err, ok := <-w.Errors:
			if !ok {
				return fmt.Errorf("watch: errors channel closed")
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

// relevant reports whether event modified the watched file.
func relevant(event fsnotify.Event, target string) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == target
}

// debouncer delays fn until trigger has not been called for delay.
// Calls to fn never overlap: a burst that settles while fn is still running
// waits for it to return.
type debouncer struct {
	delay time.Duration
	fn    func()

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	run     sync.Mutex
}

func (d *debouncer) trigger(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.run.Lock()
		defer d.run.Unlock()
		if ctx.Err() == nil && !d.isStopped() {
			d.fn()
		}
	})
}

func (d *debouncer) isStopped() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopped
}

// stop cancels pending calls and waits for a running one to return.
func (d *debouncer) stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
	d.run.Lock()
	defer d.run.Unlock()
}
