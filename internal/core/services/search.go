package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/meow/internal/core/domain"
	"github.com/custodia-labs/meow/internal/core/ports/driven"
	"github.com/custodia-labs/meow/internal/core/ports/driving"
	"github.com/custodia-labs/meow/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// folderHints maps well-known folder hints to home subfolders.
var folderHints = map[string]string{
	"downloads": "Downloads",
	"pictures":  "Pictures",
	"documents": "Documents",
	"desktop":   "Desktop",
}

// SearchService ranks indexed files against a query and breaks near-ties.
type SearchService struct {
	embedder driven.EmbeddingService
	store    driven.VectorStore
	resolver *AmbiguityResolver
	settings domain.SearchSettings
	home     string
	metrics  driven.SearchMetrics
	now      func() time.Time
}

// NewSearchService creates a new search service.
// resolver may be nil, in which case near-ties are left in score order.
// home is the directory that folder hints resolve against.
func NewSearchService(
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	resolver *AmbiguityResolver,
	settings domain.SearchSettings,
	home string,
) *SearchService {
	if settings.Candidates <= 0 {
		settings.Candidates = domain.DefaultCandidates
	}
	return &SearchService{
		embedder: embedder,
		store:    store,
		resolver: resolver,
		settings: settings,
		home:     home,
		now:      time.Now,
	}
}

// SetMetrics sets the recorder for search activity.
func (s *SearchService) SetMetrics(m driven.SearchMetrics) {
	s.metrics = m
}

// Search ranks stored vectors against the intent's query.
func (s *SearchService) Search(ctx context.Context, intent domain.Intent) (*domain.SearchOutcome, error) {
	started := s.now()
	outcome, err := s.search(ctx, intent)
	if s.metrics != nil {
		n, ambiguous := 0, false
		if outcome != nil {
			n, ambiguous = len(outcome.Paths), outcome.Ambiguous
		}
		s.metrics.ObserveSearch(s.now().Sub(started), n, ambiguous, err)
	}
	return outcome, err
}

func (s *SearchService) search(ctx context.Context, intent domain.Intent) (*domain.SearchOutcome, error) {
	logger.Section("Search Execution")

	if !intent.HasQuery() {
		logger.Debug("Empty query, returning no results")
		return &domain.SearchOutcome{}, nil
	}
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	raw := strings.TrimSpace(intent.Query)
	query := NormalizeQuery(raw)
	logger.Debug("Query: %q, normalised: %q", raw, query)

	root := s.ScopeRoot(intent)
	logger.Info("Searching in: %s", root)

	scoped := s.scopedFiles(root, domain.ParseTimeFilter(intent.TimeFilter))
	logger.Debug("Scoped files: %d", len(scoped))

	queryVec, err := s.embedder.Embed(ctx, query)
	s.observeEmbedding(err)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	records, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load vectors: %w", err)
	}
	logger.Debug("Loaded %d vectors", len(records))

	records = s.comparable(records)
	if len(scoped) > 0 {
		records = restrictTo(records, scoped)
		logger.Debug("Vectors within scope: %d", len(records))
	}

	stop := logger.Timed("Ranking")
	top := TopK(Rank(queryVec, records), s.settings.Candidates)
	stop()
	candidates := s.buildCandidates(top, records)

	outcome := &domain.SearchOutcome{
		Candidates: candidates,
		Root:       root,
		Query:      query,
	}

	if s.resolver != nil && s.resolver.IsAmbiguous(candidates) {
		outcome.Ambiguous = true
		logger.Info("Top matches are ambiguous (%.4f vs %.4f)", candidates[0].Score, candidates[1].Score)
		outcome.Winner = s.resolver.Resolve(ctx, raw, candidates)
	}

	outcome.Paths = assemble(candidates, outcome.Winner)
	logger.Info("Final results: %d", len(outcome.Paths))
	return outcome, nil
}

// ScopeRoot returns the absolute directory a search is scoped to.
// A known folder hint wins; otherwise the raw query's keywords decide;
// otherwise the current directory is used.
func (s *SearchService) ScopeRoot(intent domain.Intent) string {
	root := "."
	if sub, ok := folderHints[strings.ToLower(strings.TrimSpace(intent.FolderHint))]; ok {
		root = filepath.Join(s.home, sub)
	} else {
		q := strings.ToLower(intent.Query)
		switch {
		case strings.Contains(q, "download"):
			root = filepath.Join(s.home, "Downloads")
		case strings.Contains(q, "photo"), strings.Contains(q, "picture"), strings.Contains(q, "image"):
			root = filepath.Join(s.home, "Pictures")
		}
	}
	return resolveDir(root)
}

// scopedFiles lists the files under root that pass the time filter.
func (s *SearchService) scopedFiles(root string, filter domain.TimeFilter) map[string]bool {
	files := collectFiles(root, nil)
	now := s.now()
	scoped := make(map[string]bool, len(files))
	for _, f := range files {
		if filter != "" {
			info, err := os.Stat(f)
			if err != nil || !filter.Matches(info.ModTime(), now) {
				continue
			}
		}
		scoped[f] = true
	}
	return scoped
}

// comparable drops records produced by a different embedding model.
// Untagged records are kept.
func (s *SearchService) comparable(records []domain.EmbeddingRecord) []domain.EmbeddingRecord {
	model := s.embedder.ModelName()
	kept := make([]domain.EmbeddingRecord, 0, len(records))
	dropped := 0
	for _, r := range records {
		if r.Model != "" && model != "" && r.Model != model {
			dropped++
			continue
		}
		kept = append(kept, r)
	}
	if dropped > 0 {
		logger.Warn("Ignoring %d vectors from other embedding models; re-index to include them", dropped)
	}
	return kept
}

// buildCandidates turns the top of a ranking into candidates and flags
// the ones whose file changed or vanished since indexing.
func (s *SearchService) buildCandidates(
	top []domain.ScoredPath, records []domain.EmbeddingRecord,
) []domain.Candidate {
	modified := make(map[string]int64, len(top))
	for _, r := range records {
		modified[r.Path] = r.Modified
	}

	candidates := make([]domain.Candidate, len(top))
	for i, sp := range top {
		candidates[i] = domain.Candidate{
			Rank:     i + 1,
			Path:     sp.Path,
			FileName: filepath.Base(sp.Path),
			Ext:      FileExt(sp.Path),
			Folder:   filepath.Base(filepath.Dir(sp.Path)),
			Score:    sp.Score,
			Stale:    isStale(sp.Path, modified[sp.Path]),
		}
	}
	return candidates
}

func (s *SearchService) observeEmbedding(err error) {
	if s.metrics != nil {
		s.metrics.ObserveEmbedding(err)
	}
}

// isStale reports whether path is missing or was modified after indexing.
func isStale(path string, modified int64) bool {
	info, err := os.Stat(path)
	if err != nil {
		return true
	}
	return info.ModTime().Unix() != modified
}

// restrictTo keeps the records whose path is in allowed, preserving order.
func restrictTo(records []domain.EmbeddingRecord, allowed map[string]bool) []domain.EmbeddingRecord {
	kept := make([]domain.EmbeddingRecord, 0, len(records))
	for _, r := range records {
		if allowed[r.Path] {
			kept = append(kept, r)
		}
	}
	return kept
}

// assemble orders candidate paths with the winner, if any, moved to the front.
func assemble(candidates []domain.Candidate, winner int) []string {
	paths := make([]string, 0, len(candidates))
	if winner >= 1 && winner <= len(candidates) {
		paths = append(paths, candidates[winner-1].Path)
	}
	for i, c := range candidates {
		if i+1 == winner {
			continue
		}
		paths = append(paths, c.Path)
	}
	return paths
}
