package driving

import (
	"context"

	"github.com/custodia-labs/meow/internal/core/domain"
)

// IndexService embeds files and stores their vectors.
type IndexService interface {
	// Run walks every configured root and indexes each regular file.
	Run(ctx context.Context) (*domain.IndexReport, error)

	// IndexPaths indexes the given files or directories.
	IndexPaths(ctx context.Context, paths []string) (*domain.IndexReport, error)
}

// WatchService keeps the index current while files change.
type WatchService interface {
	// Watch re-indexes created or written files under roots until ctx is done.
	Watch(ctx context.Context, roots []string) error
}

// StatusService reports on the state of the index.
type StatusService interface {
	// Status returns store statistics and the last indexing run.
	Status(ctx context.Context) (*domain.Status, error)
}
