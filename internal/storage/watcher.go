package storage

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"projector/internal/logs"
)

// Change reports that a key was rewritten or removed on disk.
type Change struct {
	Key     string
	Removed bool
}

type pendingChange struct {
	seen    time.Time
	removed bool
}

// Watcher reports key changes in a FileStore directory, including writes made
// by other processes. Bursts for the same key are collapsed.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	dir      string
	debounce time.Duration
	pending  map[string]pendingChange
	onChange func(Change)
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

func NewWatcher(dir string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	return &Watcher{
		watcher:  fw,
		dir:      dir,
		debounce: debounce,
		pending:  make(map[string]pendingChange),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. onChange is called from the watcher goroutine.
func (w *Watcher) Start(ctx context.Context, onChange func(Change)) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("storage: watcher already started")
	}
	w.running = true
	w.onChange = onChange
	w.mu.Unlock()

	if err := w.watcher.Add(w.dir); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	logs.Logger.Infow("watching data directory", "dir", w.dir)

	go w.run(ctx)
	return nil
}

// Stop ends the watch loop and waits for it to exit. Safe to call more than
// once and before Start.
func (w *Watcher) Stop() {
	w.mu.Lock()
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	if wasRunning {
		select {
		case <-w.stopCh:
		default:
			close(w.stopCh)
		}
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		logs.Logger.Warnw("error closing watcher", "error", err)
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := time.NewTicker(w.debounce / 2)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logs.Logger.Warnw("watcher error", "error", err)
		case now := <-tick.C:
			w.flush(now)
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	key, ok := keyFromFilename(filepath.Base(ev.Name))
	if !ok {
		return
	}
	var removed bool
	switch {
	case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
		removed = false
	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		removed = true
	default:
		return
	}
	w.mu.Lock()
	w.pending[key] = pendingChange{seen: time.Now(), removed: removed}
	w.mu.Unlock()
}

func (w *Watcher) flush(now time.Time) {
	w.mu.Lock()
	var ready []Change
	for key, p := range w.pending {
		if now.Sub(p.seen) >= w.debounce {
			ready = append(ready, Change{Key: key, Removed: p.removed})
			delete(w.pending, key)
		}
	}
	cb := w.onChange
	w.mu.Unlock()

	if cb == nil {
		return
	}
	for _, c := range ready {
		cb(c)
	}
}
