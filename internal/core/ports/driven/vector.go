package driven

import (
	"context"

	"github.com/custodia-labs/meow/internal/core/domain"
)

// VectorStore persists one embedding per file path.
// All failures wrap domain.ErrStorage.
type VectorStore interface {
	// Upsert inserts or replaces the record keyed by its path.
	Upsert(ctx context.Context, rec domain.EmbeddingRecord) error

	// Get returns the record for a path, or domain.ErrNotFound.
	Get(ctx context.Context, path string) (*domain.EmbeddingRecord, error)

	// LoadAll returns every stored record in unspecified order.
	LoadAll(ctx context.Context) ([]domain.EmbeddingRecord, error)

	// Stats summarises the stored records.
	Stats(ctx context.Context) (*domain.StoreStats, error)

	// Close releases resources.
	Close() error
}

// IndexRunStore records the history of indexing runs.
type IndexRunStore interface {
	// SaveRun persists a finished run.
	SaveRun(ctx context.Context, run *domain.IndexRun) error

	// LastRun returns the most recently finished run, or domain.ErrNotFound.
	LastRun(ctx context.Context) (*domain.IndexRun, error)
}
