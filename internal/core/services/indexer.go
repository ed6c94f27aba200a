package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/meow/internal/core/domain"
	"github.com/custodia-labs/meow/internal/core/ports/driven"
	"github.com/custodia-labs/meow/internal/core/ports/driving"
	"github.com/custodia-labs/meow/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// ProgressFunc is called after each file is processed. err is nil on success.
type ProgressFunc func(path string, err error)

// IndexService embeds files one at a time and upserts their vectors.
type IndexService struct {
	embedder driven.EmbeddingService
	store    driven.VectorStore
	runs     driven.IndexRunStore
	roots    []string
	exclude  *ExcludeMatcher
	metrics  driven.SearchMetrics
	progress ProgressFunc
	now      func() time.Time
}

// NewIndexService creates a new index service.
// It fails when an exclude pattern is malformed.
func NewIndexService(
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	settings domain.IndexSettings,
) (*IndexService, error) {
	exclude, err := NewExcludeMatcher(settings.Exclude)
	if err != nil {
		return nil, err
	}
	return &IndexService{
		embedder: embedder,
		store:    store,
		roots:    settings.Roots,
		exclude:  exclude,
		now:      time.Now,
	}, nil
}

// SetRunStore sets where finished runs are recorded.
func (s *IndexService) SetRunStore(runs driven.IndexRunStore) {
	s.runs = runs
}

// SetMetrics sets the recorder for indexing activity.
func (s *IndexService) SetMetrics(m driven.SearchMetrics) {
	s.metrics = m
}

// SetProgress sets a callback invoked after each file.
func (s *IndexService) SetProgress(fn ProgressFunc) {
	s.progress = fn
}

// Roots returns the configured roots that currently exist, with symbolic
// links resolved.
func (s *IndexService) Roots() []string {
	var roots []string
	for _, r := range s.roots {
		if info, err := os.Stat(r); err == nil && info.IsDir() {
			roots = append(roots, resolveDir(r))
		}
	}
	return roots
}

// Run indexes every regular file under the configured roots that exist.
func (s *IndexService) Run(ctx context.Context) (*domain.IndexReport, error) {
	logger.Section("Index Run")
	roots := s.Roots()
	for _, r := range roots {
		logger.Info("Indexing root: %s", r)
	}

	var files []string
	for _, r := range roots {
		files = append(files, collectFiles(r, s.exclude)...)
	}
	return s.index(ctx, roots, files, nil)
}

// IndexPaths indexes the given files and every regular file under the given
// directories. Paths that cannot be read are reported as failures.
func (s *IndexService) IndexPaths(ctx context.Context, paths []string) (*domain.IndexReport, error) {
	logger.Section("Partial Index")
	var (
		roots    []string
		files    []string
		failures []domain.IndexFailure
	)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			failures = append(failures, domain.IndexFailure{Path: p, Err: err})
			continue
		}
		info, err := os.Stat(abs)
		if err != nil {
			failures = append(failures, domain.IndexFailure{Path: abs, Err: err})
			continue
		}
		if info.IsDir() {
			abs = resolveDir(abs)
			files = append(files, collectFiles(abs, s.exclude)...)
		} else {
			abs = resolveFile(abs)
			if !s.exclude.Match(abs) {
				files = append(files, abs)
			}
		}
		roots = append(roots, abs)
	}
	return s.index(ctx, roots, files, failures)
}

// index processes files sequentially, skipping any that fail.
func (s *IndexService) index(
	ctx context.Context, roots, files []string, failures []domain.IndexFailure,
) (*domain.IndexReport, error) {
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	report := &domain.IndexReport{
		RunID:     uuid.New().String(),
		Roots:     roots,
		Failures:  failures,
		StartedAt: s.now(),
	}
	logger.Info("Found %d files", len(files))
	defer logger.Timed("Indexing")()

	seen := make(map[string]bool, len(files))
	var runErr error
	for _, path := range files {
		if seen[path] {
			continue
		}
		seen[path] = true

		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		err := s.indexFile(ctx, path)
		if err != nil {
			logger.Warn("Skipped %s: %v", path, err)
			report.Failures = append(report.Failures, domain.IndexFailure{Path: path, Err: err})
			if s.metrics != nil {
				s.metrics.ObserveIndexFailure()
			}
		} else {
			report.Indexed++
			if s.metrics != nil {
				s.metrics.ObserveIndexed()
			}
		}
		if s.progress != nil {
			s.progress(path, err)
		}
	}

	report.FinishedAt = s.now()
	logger.Info("Indexed %d files, skipped %d", report.Indexed, report.Skipped())
	s.saveRun(ctx, report)
	return report, runErr
}

// indexFile embeds one file's representation and stores it.
func (s *IndexService) indexFile(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}

	vec, err := s.embedder.Embed(ctx, BuildRepresentation(path))
	if s.metrics != nil {
		s.metrics.ObserveEmbedding(err)
	}
	if err != nil {
		return err
	}

	return s.store.Upsert(ctx, domain.EmbeddingRecord{
		Path:     path,
		Vector:   vec,
		Modified: info.ModTime().Unix(),
		Model:    s.embedder.ModelName(),
	})
}

// saveRun records a finished run. Failures are logged, not returned.
func (s *IndexService) saveRun(ctx context.Context, report *domain.IndexReport) {
	if s.runs == nil {
		return
	}
	run := &domain.IndexRun{
		ID:         report.RunID,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Indexed:    report.Indexed,
		Skipped:    report.Skipped(),
		Roots:      report.Roots,
	}
	// A cancelled run is still recorded.
	if err := s.runs.SaveRun(context.WithoutCancel(ctx), run); err != nil {
		logger.Warn("Failed to record index run: %v", err)
	}
}
