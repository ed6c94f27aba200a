package driven

import (
	"context"

	"github.com/custodia-labs/meow/internal/core/domain"
)

// FileWatcher reports changes to files beneath a set of roots.
type FileWatcher interface {
	// Watch starts watching roots recursively. The channel is closed when
	// ctx is done or the watcher is closed.
	Watch(ctx context.Context, roots []string) (<-chan domain.FileChange, error)

	// Close stops watching and releases resources.
	Close() error
}
