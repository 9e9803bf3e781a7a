// Package watch observes an import root for document changes and reports
// settled batches of changed paths. Events are debounced so a burst of
// writes (an rsync of a new batch directory, an editor save) produces a
// single notification once the store goes quiet.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/agentstation/blueprint/pkg/constants"
	"github.com/agentstation/blueprint/pkg/errors"
	"github.com/agentstation/blueprint/pkg/scanner"
)

// Handler receives the deduplicated, sorted paths that changed during one
// debounce window. It runs on the watcher's goroutine; a slow handler delays
// the next notification but never drops one.
type Handler func(paths []string)

// Watcher watches an import root and its batch directories for document
// changes. Only files the scanner would pick up count as changes; editor
// temp files and hidden files are ignored.
type Watcher struct {
	root     string
	debounce time.Duration
	handler  Handler

	fsw     *fsnotify.Watcher
	changes chan string
	done    chan struct{}

	stopOnce sync.Once

	mu       sync.RWMutex
	watching bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the watcher waits for events to stop before
// invoking the handler. Non-positive values keep the default.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New creates a watcher over root. The handler is invoked with each settled
// batch of changed paths until Stop is called or the Start context ends.
func New(root string, handler Handler, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WrapIO("watch", root, err)
	}

	w := &Watcher{
		root:     root,
		debounce: constants.DefaultDebounce,
		handler:  handler,
		fsw:      fsw,
		changes:  make(chan string, constants.WatchEventBuffer),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start begins watching. It registers the root and every existing batch
// directory, then processes events until the context is canceled or Stop is
// called. Batch directories created later are registered as they appear.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.watching {
		w.mu.Unlock()
		return nil
	}
	w.watching = true
	w.mu.Unlock()

	if err := w.fsw.Add(w.root); err != nil {
		return errors.WrapIO("watch", w.root, err)
	}

	batches, err := scanner.Batches(w.root)
	if err != nil {
		return err
	}
	for _, batch := range batches {
		dir := filepath.Join(w.root, batch)
		if err := w.fsw.Add(dir); err != nil {
			return errors.WrapIO("watch", dir, err)
		}
	}

	go w.processEvents(ctx)
	go w.debounceLoop(ctx)

	return nil
}

// Stop ends watching and releases the underlying OS watches. Safe to call
// more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsw.Close()

		w.mu.Lock()
		w.watching = false
		w.mu.Unlock()
	})
}

// IsWatching reports whether the watcher is active.
func (w *Watcher) IsWatching() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.watching
}

// processEvents filters raw fsnotify events down to document changes and
// feeds them to the debouncer. New directories under the root are added to
// the watch set so documents written into fresh batches are seen.
func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					// A new batch directory. Watch it and move on; its
					// documents arrive as separate events.
					_ = w.fsw.Add(event.Name)
					continue
				}
			}

			if !scanner.Supported(filepath.Base(event.Name)) {
				continue
			}

			select {
			case w.changes <- event.Name:
			default:
				// Buffer full. The debouncer fires regardless, so a
				// dropped path only thins the reported list.
			}

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

// debounceLoop batches changed paths and calls the handler once events stop
// arriving for the debounce window.
func (w *Watcher) debounceLoop(ctx context.Context) {
	pending := make(map[string]struct{})
	var timer *time.Timer
	var timerC <-chan time.Time

	flush := func() {
		if len(pending) > 0 && w.handler != nil {
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			w.handler(paths)
			pending = make(map[string]struct{})
		}
		if timer != nil {
			timer.Stop()
			timer = nil
			timerC = nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return
		case <-w.done:
			flush()
			return
		case path := <-w.changes:
			pending[path] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case <-timerC:
			flush()
		}
	}
}
