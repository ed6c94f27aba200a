// Package watcher provides a recursive filesystem watcher built on fsnotify.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/meow/internal/core/domain"
	"github.com/custodia-labs/meow/internal/core/ports/driven"
	"github.com/custodia-labs/meow/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.FileWatcher = (*Watcher)(nil)

// changeBuffer is the capacity of the change channel.
const changeBuffer = 64

// ErrAlreadyWatching is returned when Watch is called twice.
var ErrAlreadyWatching = errors.New("watcher: already watching")

// Watcher reports file changes beneath a set of roots. Directories created
// after Watch starts are added automatically.
type Watcher struct {
	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	skip    func(path string) bool
	closed  bool
	started bool
}

// New creates a watcher. skip, when non-nil, hides matching paths and
// prevents matching directories from being watched.
func New(skip func(path string) bool) *Watcher {
	if skip == nil {
		skip = func(string) bool { return false }
	}
	return &Watcher{skip: skip}
}

// Watch adds every directory under roots and starts forwarding events.
// Roots that do not exist are skipped; it is an error if none remain.
func (w *Watcher) Watch(ctx context.Context, roots []string) (<-chan domain.FileChange, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil, fmt.Errorf("watcher: closed")
	}
	if w.started {
		return nil, ErrAlreadyWatching
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watcher: create: %w", err)
	}

	watched := 0
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			logger.Warn("Not watching %s: not a directory", root)
			continue
		}
		watched += w.addTree(fsw, root)
	}
	if watched == 0 {
		fsw.Close()
		return nil, fmt.Errorf("watcher: no watchable directories in %v", roots)
	}
	logger.Debug("Watching %d directories", watched)

	w.fsw = fsw
	w.started = true

	out := make(chan domain.FileChange, changeBuffer)
	go w.run(ctx, fsw, out)
	return out, nil
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	if w.fsw != nil {
		return w.fsw.Close()
	}
	return nil
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, out chan<- domain.FileChange) {
	defer close(out)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !w.skip(event.Name) {
					w.addTree(fsw, event.Name)
				}
			}
			change := w.handleEvent(event)
			if change == nil {
				continue
			}
			select {
			case out <- *change:
			case <-ctx.Done():
				return
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// handleEvent maps an fsnotify event to a change, or nil when it is not
// interesting. Write wins over Chmod in combined events.
func (w *Watcher) handleEvent(event fsnotify.Event) *domain.FileChange {
	if w.skip(event.Name) {
		return nil
	}

	var kind domain.ChangeType
	switch {
	case event.Has(fsnotify.Create):
		kind = domain.ChangeCreated
	case event.Has(fsnotify.Write):
		kind = domain.ChangeUpdated
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return &domain.FileChange{Path: event.Name, Type: domain.ChangeDeleted}
	default:
		return nil
	}

	info, err := os.Stat(event.Name)
	if err != nil || !info.Mode().IsRegular() {
		return nil
	}
	return &domain.FileChange{Path: event.Name, Type: kind}
}

// addTree watches root and every directory beneath it, returning how many
// were added.
// A root that links to a directory is resolved first.
func (w *Watcher) addTree(fsw *fsnotify.Watcher, root string) int {
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	added := 0
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && w.skip(path) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			logger.Debug("Cannot watch %s: %v", path, err)
			return nil
		}
		added++
		return nil
	})
	return added
}
