package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/meow/internal/core/domain"
	"github.com/custodia-labs/meow/internal/core/ports/driven"
)

// Ensure VectorStore implements the interfaces.
var (
	_ driven.VectorStore   = (*VectorStore)(nil)
	_ driven.IndexRunStore = (*VectorStore)(nil)
)

// VectorStore is an in-memory implementation of driven.VectorStore and
// driven.IndexRunStore. LoadAll returns records in first-insertion order;
// an upsert replaces a record in place.
type VectorStore struct {
	mu      sync.RWMutex
	order   []string
	records map[string]domain.EmbeddingRecord
	runs    []domain.IndexRun
}

// NewVectorStore creates a new in-memory vector store.
func NewVectorStore() *VectorStore {
	return &VectorStore{records: make(map[string]domain.EmbeddingRecord)}
}

// Upsert inserts or replaces the record for rec.Path.
func (s *VectorStore) Upsert(_ context.Context, rec domain.EmbeddingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[rec.Path]; !ok {
		s.order = append(s.order, rec.Path)
	}
	rec.Vector = append([]float32(nil), rec.Vector...)
	s.records[rec.Path] = rec
	return nil
}

// Get returns the record for path.
func (s *VectorStore) Get(_ context.Context, path string) (*domain.EmbeddingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[path]
	if !ok {
		return nil, domain.ErrNotFound
	}
	rec.Vector = append([]float32(nil), rec.Vector...)
	return &rec, nil
}

// LoadAll returns copies of every record.
func (s *VectorStore) LoadAll(_ context.Context) ([]domain.EmbeddingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.EmbeddingRecord, 0, len(s.order))
	for _, p := range s.order {
		rec := s.records[p]
		rec.Vector = append([]float32(nil), rec.Vector...)
		out = append(out, rec)
	}
	return out, nil
}

// Stats counts records per model.
func (s *VectorStore) Stats(_ context.Context) (*domain.StoreStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := &domain.StoreStats{Records: len(s.records), Models: make(map[string]int), Path: ":memory:"}
	for _, r := range s.records {
		stats.Models[r.Model]++
	}
	return stats, nil
}

// SaveRun records a finished run.
func (s *VectorStore) SaveRun(_ context.Context, run *domain.IndexRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, *run)
	return nil
}

// LastRun returns the run that finished last.
func (s *VectorStore) LastRun(_ context.Context) (*domain.IndexRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.runs) == 0 {
		return nil, domain.ErrNotFound
	}
	runs := append([]domain.IndexRun(nil), s.runs...)
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].FinishedAt.Before(runs[j].FinishedAt) })
	last := runs[len(runs)-1]
	return &last, nil
}

// Close is a no-op.
func (s *VectorStore) Close() error {
	return nil
}
