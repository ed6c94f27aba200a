package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/custodia-labs/meow/internal/core/domain"
)

type mockSearch struct {
	outcome *domain.SearchOutcome
	err     error
	got     []domain.Intent
}

func (m *mockSearch) Search(_ context.Context, intent domain.Intent) (*domain.SearchOutcome, error) {
	m.got = append(m.got, intent)
	return m.outcome, m.err
}

type mockInterpreter struct {
	intent domain.Intent
}

func (m *mockInterpreter) Interpret(_ context.Context, command string) domain.Intent {
	if m.intent.Intent == "" {
		return domain.Intent{Intent: domain.IntentSearch, Query: command}
	}
	return m.intent
}

type mockIndex struct {
	runs    int
	partial [][]string
	err     error
}

func (m *mockIndex) Run(context.Context) (*domain.IndexReport, error) {
	m.runs++
	if m.err != nil {
		return nil, m.err
	}
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return &domain.IndexReport{
		Indexed:    5,
		Failures:   []domain.IndexFailure{{Path: "/d/huge.iso", Err: domain.ErrEmbedding}},
		StartedAt:  start,
		FinishedAt: start.Add(2 * time.Second),
	}, nil
}

func (m *mockIndex) IndexPaths(_ context.Context, paths []string) (*domain.IndexReport, error) {
	m.partial = append(m.partial, paths)
	return &domain.IndexReport{Indexed: len(paths)}, m.err
}

type mockWatch struct {
	roots []string
	err   error
}

func (m *mockWatch) Watch(_ context.Context, roots []string) error {
	m.roots = roots
	return m.err
}

type mockStatus struct {
	status *domain.Status
	err    error
}

func (m *mockStatus) Status(context.Context) (*domain.Status, error) {
	return m.status, m.err
}

type mockSettings struct {
	values   map[string]string
	embedErr error
	llmErr   error
}

func (m *mockSettings) Get() (*domain.AppSettings, error) {
	s := domain.DefaultAppSettings("/home/u")
	return &s, nil
}

func (m *mockSettings) GetValue(key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", domain.ErrInvalidInput
	}
	return v, nil
}

func (m *mockSettings) SetValue(key, value string) error {
	if _, ok := m.values[key]; !ok {
		return domain.ErrInvalidInput
	}
	m.values[key] = value
	return nil
}

func (m *mockSettings) Keys() []string {
	return []string{"embedding.model", "embedding.provider", "llm.api_key", "resolver.min_gap"}
}

func (m *mockSettings) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings("/home/u")
}

func (m *mockSettings) ValidateEmbeddingConfig() error { return m.embedErr }

func (m *mockSettings) ValidateLLMConfig() error { return m.llmErr }

type mockActions struct {
	opened []string
	copied []string
	err    error
}

func (m *mockActions) Open(_ context.Context, path string) error {
	m.opened = append(m.opened, path)
	return m.err
}

func (m *mockActions) CopyPath(_ context.Context, path string) error {
	m.copied = append(m.copied, path)
	return m.err
}

// testServices holds the mocks installed by setupTestServices.
type testServices struct {
	search   *mockSearch
	interp   *mockInterpreter
	index    *mockIndex
	watch    *mockWatch
	status   *mockStatus
	settings *mockSettings
	actions  *mockActions
}

func sampleOutcome() *domain.SearchOutcome {
	return &domain.SearchOutcome{
		Candidates: []domain.Candidate{
			{Rank: 1, Path: "/home/u/Downloads/fees_2023.pdf", Score: 0.70},
			{Rank: 2, Path: "/home/u/Downloads/fees_2024.pdf", Score: 0.66},
		},
		Paths:  []string{"/home/u/Downloads/fees_2024.pdf", "/home/u/Downloads/fees_2023.pdf"},
		Winner: 2,
		Root:   "/home/u/Downloads",
		Query:  "hostel fees",
	}
}

// setupTestServices installs mocks and restores the globals when the test ends.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()
	ts := &testServices{
		search: &mockSearch{outcome: sampleOutcome()},
		interp: &mockInterpreter{},
		index:  &mockIndex{},
		watch:  &mockWatch{},
		status: &mockStatus{},
		settings: &mockSettings{values: map[string]string{
			"embedding.model":    "nomic-embed-text",
			"embedding.provider": "ollama",
			"llm.api_key":        "",
			"resolver.min_gap":   "0.08",
		}},
		actions: &mockActions{},
	}
	SetServices(&Services{
		Search:      ts.search,
		Interpreter: ts.interp,
		Index:       ts.index,
		Watch:       ts.watch,
		Status:      ts.status,
		Settings:    ts.settings,
		Actions:     ts.actions,
		Roots:       []string{"/home/u/Downloads"},
	})

	prevTerminal := isTerminal
	isTerminal = func() bool { return false }

	t.Cleanup(func() {
		SetServices(&Services{})
		isTerminal = prevTerminal
		bootstrap = nil
		searchFolder, searchTime, searchType = "", "", ""
		searchJSON, searchInterpret = false, false
		openCopy, shellPlain = false, false
		mcpHTTPAddr, configDir, dbPath = "", "", ""
		verbose = false
	})
	return ts
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	if args == nil {
		// cobra falls back to os.Args when args is nil
		args = []string{}
	}
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
