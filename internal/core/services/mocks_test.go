package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/meow/internal/core/domain"
	"github.com/custodia-labs/meow/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbeddingService implements driven.EmbeddingService for testing.
// Texts containing a key of vectors embed to that vector; anything else
// embeds to fallback.
type mockEmbeddingService struct {
	mu       sync.Mutex
	vectors  map[string][]float32
	fallback []float32
	embedErr error
	failOn   string
	model    string
	calls    []string
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, text)
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	if m.failOn != "" && containsFold(text, m.failOn) {
		return nil, fmt.Errorf("%w: refused %q", domain.ErrEmbedding, m.failOn)
	}
	for key, v := range m.vectors {
		if containsFold(text, key) {
			return v, nil
		}
	}
	if m.fallback != nil {
		return m.fallback, nil
	}
	return []float32{1, 0, 0}, nil
}

func (m *mockEmbeddingService) ModelName() string {
	if m.model == "" {
		return "mock-embed"
	}
	return m.model
}

func (m *mockEmbeddingService) Ping(_ context.Context) error {
	return nil
}

func (m *mockEmbeddingService) Close() error {
	return nil
}

func (m *mockEmbeddingService) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockLLMService implements driven.LLMService for testing.
type mockLLMService struct {
	reply       string
	err         error
	calls       int
	lastPrompt  string
	lastOptions driven.GenerateOptions
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	m.lastOptions = opts
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *mockLLMService) ModelName() string {
	return "mock-llm"
}

func (m *mockLLMService) Ping(_ context.Context) error {
	return nil
}

func (m *mockLLMService) Close() error {
	return nil
}

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompts map[string]string
}

func (m *mockPromptStore) Load(name string) (string, error) {
	p, ok := m.prompts[name]
	if !ok {
		return "", domain.ErrNotFound
	}
	return p, nil
}

func (m *mockPromptStore) Reload() {}

// failingVectorStore implements driven.VectorStore and fails every call.
type failingVectorStore struct{}

func (failingVectorStore) Upsert(_ context.Context, _ domain.EmbeddingRecord) error {
	return fmt.Errorf("%w: disk full", domain.ErrStorage)
}

func (failingVectorStore) Get(_ context.Context, _ string) (*domain.EmbeddingRecord, error) {
	return nil, fmt.Errorf("%w: unreadable", domain.ErrStorage)
}

func (failingVectorStore) LoadAll(_ context.Context) ([]domain.EmbeddingRecord, error) {
	return nil, fmt.Errorf("%w: unreadable", domain.ErrStorage)
}

func (failingVectorStore) Stats(_ context.Context) (*domain.StoreStats, error) {
	return nil, fmt.Errorf("%w: unreadable", domain.ErrStorage)
}

func (failingVectorStore) Close() error {
	return nil
}

// mockMetrics implements driven.SearchMetrics for testing.
type mockMetrics struct {
	mu             sync.Mutex
	embeddings     int
	embedFailures  int
	searches       int
	lastResults    int
	lastAmbiguous  bool
	decisions      []string
	indexed        int
	indexFailures  int
	lastSearchTime time.Duration
}

func (m *mockMetrics) ObserveEmbedding(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.embeddings++
	if err != nil {
		m.embedFailures++
	}
}

func (m *mockMetrics) ObserveSearch(d time.Duration, results int, ambiguous bool, _ error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches++
	m.lastResults = results
	m.lastAmbiguous = ambiguous
	m.lastSearchTime = d
}

func (m *mockMetrics) ObserveDecision(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decisions = append(m.decisions, outcome)
}

func (m *mockMetrics) ObserveIndexed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.indexed++
}

func (m *mockMetrics) ObserveIndexFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.indexFailures++
}

// mockLauncher implements driven.FileLauncher for testing.
type mockLauncher struct {
	launched []string
	copied   []string
	err      error
}

func (m *mockLauncher) Launch(path string) error {
	if m.err != nil {
		return m.err
	}
	m.launched = append(m.launched, path)
	return nil
}

func (m *mockLauncher) CopyText(text string) error {
	if m.err != nil {
		return m.err
	}
	m.copied = append(m.copied, text)
	return nil
}

// mockWatcher implements driven.FileWatcher with a test-fed channel.
type mockWatcher struct {
	changes chan domain.FileChange
	err     error
	roots   []string
	closed  int
}

func (m *mockWatcher) Watch(_ context.Context, roots []string) (<-chan domain.FileChange, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.roots = roots
	return m.changes, nil
}

func (m *mockWatcher) Close() error {
	m.closed++
	return nil
}

// mockIndexService implements driving.IndexService and records calls.
type mockIndexService struct {
	mu    sync.Mutex
	calls [][]string
	done  chan struct{}
}

func (m *mockIndexService) Run(_ context.Context) (*domain.IndexReport, error) {
	return &domain.IndexReport{}, nil
}

func (m *mockIndexService) IndexPaths(_ context.Context, paths []string) (*domain.IndexReport, error) {
	m.mu.Lock()
	m.calls = append(m.calls, paths)
	m.mu.Unlock()
	if m.done != nil {
		m.done <- struct{}{}
	}
	return &domain.IndexReport{Indexed: len(paths)}, nil
}

// mockAIValidator implements driven.AIConfigValidator for testing.
type mockAIValidator struct {
	embeddingErr error
	llmErr       error
	lastEmbed    *domain.EmbeddingSettings
	lastLLM      *domain.LLMSettings
}

func (m *mockAIValidator) ValidateEmbedding(cfg *domain.EmbeddingSettings) error {
	m.lastEmbed = cfg
	return m.embeddingErr
}

func (m *mockAIValidator) ValidateLLM(cfg *domain.LLMSettings) error {
	m.lastLLM = cfg
	return m.llmErr
}

func containsFold(s, sub string) bool {
	return sub != "" && strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
