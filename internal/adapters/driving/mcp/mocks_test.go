package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/meow/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	outcome *domain.SearchOutcome
	err     error
	got     []domain.Intent
}

func (m *mockSearchService) Search(_ context.Context, intent domain.Intent) (*domain.SearchOutcome, error) {
	m.got = append(m.got, intent)
	if m.err != nil {
		return nil, m.err
	}
	if m.outcome == nil {
		return &domain.SearchOutcome{}, nil
	}
	return m.outcome, nil
}

// mockInterpreter returns a fixed intent.
type mockInterpreter struct {
	intent domain.Intent
}

func (m *mockInterpreter) Interpret(context.Context, string) domain.Intent {
	return m.intent
}

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	runs    int
	partial [][]string
	err     error
}

func (m *mockIndexService) Run(context.Context) (*domain.IndexReport, error) {
	m.runs++
	if m.err != nil {
		return nil, m.err
	}
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return &domain.IndexReport{
		RunID:      "run-1",
		Indexed:    4,
		Failures:   []domain.IndexFailure{{Path: "/d/broken.bin", Err: domain.ErrEmbedding}},
		StartedAt:  start,
		FinishedAt: start.Add(1500 * time.Millisecond),
	}, nil
}

func (m *mockIndexService) IndexPaths(_ context.Context, paths []string) (*domain.IndexReport, error) {
	m.partial = append(m.partial, paths)
	return &domain.IndexReport{RunID: "run-2", Indexed: len(paths)}, m.err
}

// mockStatusService is a mock implementation of driving.StatusService.
type mockStatusService struct {
	status *domain.Status
	err    error
}

func (m *mockStatusService) Status(context.Context) (*domain.Status, error) {
	return m.status, m.err
}

func sampleOutcome() *domain.SearchOutcome {
	return &domain.SearchOutcome{
		Candidates: []domain.Candidate{
			{Rank: 1, Path: "/d/fees_2023.pdf", Score: 0.70},
			{Rank: 2, Path: "/d/fees_2024.pdf", Score: 0.66, Stale: true},
		},
		Paths:     []string{"/d/fees_2024.pdf", "/d/fees_2023.pdf"},
		Winner:    2,
		Ambiguous: true,
		Root:      "/d",
	}
}
