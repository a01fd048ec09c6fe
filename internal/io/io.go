package io

import (
	. "aled/internal/logger"
	"github.com/rjeczalik/notify"
	"os"
	"path/filepath"
	"sync"
)

// Watcher tracks files loaded into buffers and records the ones modified on
// disk by someone else. Writes done by the editor itself are recorded with
// Sync so they are not reported.
type Watcher struct {
	mu        sync.Mutex
	lastStats map[string]os.FileInfo // by absolute path, nil stat for missing files
	changed   map[string]bool
	dirs      map[string]bool
	events    chan notify.EventInfo
	done      chan struct{}
	stopOnce  sync.Once
}

func NewWatcher() *Watcher {
	w := &Watcher{
		lastStats: make(map[string]os.FileInfo),
		changed:   make(map[string]bool),
		dirs:      make(map[string]bool),
		events:    make(chan notify.EventInfo, 16),
		done:      make(chan struct{}),
	}

	go func() {
		for e := range w.events {
			w.check(e.Path())
		}
		close(w.done)
	}()

	return w
}

// Watch starts tracking path. Its directory is watched non recursively.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil { return err }

	w.Sync(abs)

	dir := filepath.Dir(abs)
	w.mu.Lock()
	seen := w.dirs[dir]
	w.dirs[dir] = true
	w.mu.Unlock()
	if seen { return nil }

	if err := notify.Watch(dir, w.events, notify.All); err != nil {
		Log.Error("watch", dir, err.Error())
		return err
	}
	return nil
}

// Sync records the current on-disk state of path as known.
func (w *Watcher) Sync(path string) {
	abs, err := filepath.Abs(path)
	if err != nil { return }
	stats, _ := os.Stat(abs)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastStats[abs] = stats
	delete(w.changed, abs)
}

func (w *Watcher) IsChanged(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil { return false }

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.changed[abs]
}

// Stop unregisters the watches and waits for pending events to be checked.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		notify.Stop(w.events)
		close(w.events)
		<-w.done
	})
}

func (w *Watcher) check(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	last, tracked := w.lastStats[path]
	if !tracked { return }

	stats, err := os.Stat(path)
	switch {
	case err != nil:
		w.changed[path] = last != nil
	case last == nil:
		w.changed[path] = true
	case stats.Size() != last.Size() || !stats.ModTime().Equal(last.ModTime()):
		w.changed[path] = true
	}
	if w.changed[path] { Log.Info("changed on disk", path) }
}
