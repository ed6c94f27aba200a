package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/custodia-labs/meow/internal/core/domain"
	"github.com/custodia-labs/meow/internal/core/ports/driven"
	"github.com/custodia-labs/meow/internal/core/ports/driving"
	"github.com/custodia-labs/meow/internal/logger"
)

// Ensure WatchService implements the interface.
var _ driving.WatchService = (*WatchService)(nil)

// DefaultWatchDebounce is how long changes are collected before re-indexing.
const DefaultWatchDebounce = 500 * time.Millisecond

// WatchService re-indexes files as they are created or written.
// Deletions are logged and ignored; stale records stay in the store.
type WatchService struct {
	watcher  driven.FileWatcher
	indexer  driving.IndexService
	debounce time.Duration
	onReport func(*domain.IndexReport)
}

// NewWatchService creates a new watch service.
func NewWatchService(watcher driven.FileWatcher, indexer driving.IndexService) *WatchService {
	return &WatchService{
		watcher:  watcher,
		indexer:  indexer,
		debounce: DefaultWatchDebounce,
	}
}

// SetDebounce sets the batching window for changes.
func (s *WatchService) SetDebounce(d time.Duration) {
	s.debounce = d
}

// OnReport sets a callback invoked after each batch is re-indexed.
func (s *WatchService) OnReport(fn func(*domain.IndexReport)) {
	s.onReport = fn
}

// Watch blocks until ctx is done or the watcher stops.
func (s *WatchService) Watch(ctx context.Context, roots []string) error {
	if len(roots) == 0 {
		return errors.New("no roots to watch")
	}
	changes, err := s.watcher.Watch(ctx, roots)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.watcher.Close(); err != nil {
			logger.Warn("Closing watcher: %v", err)
		}
	}()
	logger.Info("Watching %d roots", len(roots))

	pending := make(map[string]bool)
	var flush <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-changes:
			if !ok {
				s.reindex(ctx, pending)
				return nil
			}
			switch change.Type {
			case domain.ChangeCreated, domain.ChangeUpdated:
				pending[change.Path] = true
				if flush == nil {
					flush = time.After(s.debounce)
				}
			case domain.ChangeDeleted:
				logger.Info("Ignoring removal of %s", change.Path)
			}
		case <-flush:
			s.reindex(ctx, pending)
			pending = make(map[string]bool)
			flush = nil
		}
	}
}

// reindex indexes the pending paths in lexical order.
func (s *WatchService) reindex(ctx context.Context, pending map[string]bool) {
	if len(pending) == 0 {
		return
	}
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	report, err := s.indexer.IndexPaths(ctx, paths)
	if err != nil {
		logger.Warn("Re-index failed: %v", err)
	}
	if report != nil && s.onReport != nil {
		s.onReport(report)
	}
}
