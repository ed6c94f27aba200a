package shell

import (
	"context"
	"errors"

	"github.com/custodia-labs/meow/internal/core/domain"
)

type fakeInterpreter struct {
	intents map[string]domain.Intent
}

func (f *fakeInterpreter) Interpret(_ context.Context, command string) domain.Intent {
	if in, ok := f.intents[command]; ok {
		return in
	}
	return domain.Intent{Intent: domain.IntentSearch, Query: command}
}

type fakeSearch struct {
	outcome *domain.SearchOutcome
	err     error
	got     []domain.Intent
}

func (f *fakeSearch) Search(_ context.Context, intent domain.Intent) (*domain.SearchOutcome, error) {
	f.got = append(f.got, intent)
	return f.outcome, f.err
}

type fakeActions struct {
	opened []string
	copied []string
	err    error
}

func (f *fakeActions) Open(_ context.Context, path string) error {
	f.opened = append(f.opened, path)
	return f.err
}

func (f *fakeActions) CopyPath(_ context.Context, path string) error {
	f.copied = append(f.copied, path)
	return f.err
}

type fakeIndex struct {
	runs    int
	partial [][]string
	err     error
}

func (f *fakeIndex) Run(context.Context) (*domain.IndexReport, error) {
	f.runs++
	return &domain.IndexReport{Indexed: 3, Failures: []domain.IndexFailure{{Path: "/x", Err: errors.New("boom")}}}, f.err
}

func (f *fakeIndex) IndexPaths(_ context.Context, paths []string) (*domain.IndexReport, error) {
	f.partial = append(f.partial, paths)
	return &domain.IndexReport{Indexed: len(paths)}, f.err
}

func twoResults() *domain.SearchOutcome {
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

type fixture struct {
	search  *fakeSearch
	actions *fakeActions
	index   *fakeIndex
	interp  *fakeInterpreter
	session *Session
}

func newFixture() *fixture {
	f := &fixture{
		search:  &fakeSearch{outcome: twoResults()},
		actions: &fakeActions{},
		index:   &fakeIndex{},
		interp:  &fakeInterpreter{intents: map[string]domain.Intent{}},
	}
	s, err := NewSession(&Ports{
		Interpreter: f.interp,
		Search:      f.search,
		Actions:     f.actions,
		Index:       f.index,
	})
	if err != nil {
		panic(err)
	}
	f.session = s
	return f
}
