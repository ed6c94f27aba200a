package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/meow/internal/core/domain"
	"github.com/custodia-labs/meow/internal/core/ports/driven"
	"github.com/custodia-labs/meow/internal/core/ports/driving"
)

// Ensure StatusService implements the interface.
var _ driving.StatusService = (*StatusService)(nil)

// StatusService reports store contents and indexing history.
type StatusService struct {
	store    driven.VectorStore
	runs     driven.IndexRunStore
	embedder driven.EmbeddingService
	llm      driven.LLMService
}

// NewStatusService creates a new status service. runs, embedder and llm may be nil.
func NewStatusService(
	store driven.VectorStore,
	runs driven.IndexRunStore,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
) *StatusService {
	return &StatusService{store: store, runs: runs, embedder: embedder, llm: llm}
}

// Status returns store statistics and the last indexing run.
func (s *StatusService) Status(ctx context.Context) (*domain.Status, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("store stats: %w", err)
	}

	status := &domain.Status{Store: *stats}
	if s.embedder != nil {
		status.EmbeddingModel = s.embedder.ModelName()
		status.CurrentModelRecords = stats.Models[status.EmbeddingModel] + stats.Models[""]
	}
	if s.llm != nil {
		status.LLMModel = s.llm.ModelName()
	}

	if s.runs != nil {
		run, err := s.runs.LastRun(ctx)
		switch {
		case err == nil:
			status.LastRun = run
		case !errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("last run: %w", err)
		}
	}
	return status, nil
}
