package console

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/meow/internal/adapters/driving/shell"
	"github.com/custodia-labs/meow/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/meow/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/meow/internal/core/domain"
)

type stubInterpreter struct{}

func (stubInterpreter) Interpret(_ context.Context, command string) domain.Intent {
	if command == "delete old notes" {
		return domain.Intent{Intent: domain.IntentDelete, Query: "old notes"}
	}
	return domain.Intent{Intent: domain.IntentSearch, Query: command}
}

type stubSearch struct {
	outcome *domain.SearchOutcome
	err     error
	queries []string
}

func (s *stubSearch) Search(_ context.Context, intent domain.Intent) (*domain.SearchOutcome, error) {
	s.queries = append(s.queries, intent.Query)
	return s.outcome, s.err
}

type stubActions struct {
	opened []string
	copied []string
}

func (a *stubActions) Open(_ context.Context, path string) error {
	a.opened = append(a.opened, path)
	return nil
}

func (a *stubActions) CopyPath(_ context.Context, path string) error {
	a.copied = append(a.copied, path)
	return nil
}

type stubIndex struct{}

func (stubIndex) Run(context.Context) (*domain.IndexReport, error) {
	return &domain.IndexReport{Indexed: 2, Failures: []domain.IndexFailure{{Path: "/x", Err: errors.New("bad")}}}, nil
}

func (stubIndex) IndexPaths(_ context.Context, paths []string) (*domain.IndexReport, error) {
	return &domain.IndexReport{Indexed: len(paths)}, nil
}

func outcome() *domain.SearchOutcome {
	return &domain.SearchOutcome{
		Candidates: []domain.Candidate{
			{Rank: 1, Path: "/d/fees_2023.pdf", FileName: "fees_2023.pdf", Score: 0.70},
			{Rank: 2, Path: "/d/fees_2024.pdf", FileName: "fees_2024.pdf", Score: 0.66, Stale: true},
		},
		Paths:  []string{"/d/fees_2024.pdf", "/d/fees_2023.pdf"},
		Winner: 2,
		Root:   "/d",
	}
}

type harness struct {
	view    *View
	search  *stubSearch
	actions *stubActions
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{search: &stubSearch{outcome: outcome()}, actions: &stubActions{}}
	session, err := shell.NewSession(&shell.Ports{
		Interpreter: stubInterpreter{},
		Search:      h.search,
		Actions:     h.actions,
		Index:       stubIndex{},
	})
	require.NoError(t, err)
	h.view = NewView(nil, nil, session)
	h.view.SetDimensions(100, 30)
	return h
}

// press sends a key and runs any resulting command to completion.
func (h *harness) press(t *testing.T, msg tea.KeyMsg) tea.Msg {
	t.Helper()
	var cmd tea.Cmd
	h.view, cmd = h.view.Update(msg)
	if cmd == nil {
		return nil
	}
	out := cmd()
	if done, ok := out.(messages.CommandDone); ok {
		h.view, _ = h.view.Update(done)
	}
	return out
}

func (h *harness) submit(t *testing.T, line string) tea.Msg {
	t.Helper()
	h.view.SetInput(line)
	return h.press(t, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, nil)

	require.NotNil(t, v)
	assert.False(t, v.Ready())
	assert.Equal(t, "Initialising...", v.View())
	assert.NotNil(t, v.Init())
	assert.Same(t, v, v.WithContext(context.Background()))
}

func TestView_SearchShowsResultsInDisplayOrder(t *testing.T) {
	h := newHarness(t)

	h.submit(t, "hostel fees")

	require.Len(t, h.view.Results(), 2)
	assert.Equal(t, "/d/fees_2024.pdf", h.view.Results()[0].Path)
	assert.Equal(t, []string{"hostel fees"}, h.search.queries)
	assert.Equal(t, status.StateResults, h.view.Status())
	assert.Empty(t, h.view.Input())
	assert.False(t, h.view.Working())

	view := h.view.View()
	assert.Contains(t, view, "fees_2024.pdf")
	assert.Contains(t, view, "★")
	assert.Contains(t, view, "1 result(s) changed since indexing")
}

func TestView_EmptySubmitOpensSelection(t *testing.T) {
	h := newHarness(t)
	h.submit(t, "hostel fees")

	h.press(t, tea.KeyMsg{Type: tea.KeyDown})
	h.press(t, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, []string{"/d/fees_2023.pdf"}, h.actions.opened)
	assert.Equal(t, "Opening /d/fees_2023.pdf", h.view.StatusMessage())
}

func TestView_OpenAndCopyBindings(t *testing.T) {
	h := newHarness(t)

	assert.Nil(t, h.press(t, tea.KeyMsg{Type: tea.KeyCtrlO}))

	h.submit(t, "hostel fees")
	h.press(t, tea.KeyMsg{Type: tea.KeyCtrlO})
	h.press(t, tea.KeyMsg{Type: tea.KeyCtrlY})

	assert.Equal(t, []string{"/d/fees_2024.pdf"}, h.actions.opened)
	assert.Equal(t, []string{"/d/fees_2024.pdf"}, h.actions.copied)
	assert.Equal(t, "Copied /d/fees_2024.pdf", h.view.StatusMessage())
}

func TestView_TypedOpenOutOfRange(t *testing.T) {
	h := newHarness(t)
	h.submit(t, "hostel fees")

	h.submit(t, "open 7")

	require.Error(t, h.view.Err())
	assert.ErrorIs(t, h.view.Err(), domain.ErrInvalidInput)
	assert.Equal(t, status.StateError, h.view.Status())
	assert.Contains(t, h.view.View(), "between 1 and 2")
}

func TestView_SearchError(t *testing.T) {
	h := newHarness(t)
	h.search.err = domain.ErrEmbeddingUnavailable

	h.submit(t, "anything")

	assert.ErrorIs(t, h.view.Err(), domain.ErrEmbeddingUnavailable)
	assert.Equal(t, status.StateError, h.view.Status())

	h.search.err = nil
	h.submit(t, "anything")
	assert.NoError(t, h.view.Err())
}

func TestView_UnsupportedIntentShowsNotice(t *testing.T) {
	h := newHarness(t)

	h.submit(t, "delete old notes")

	assert.Empty(t, h.search.queries)
	assert.Contains(t, h.view.View(), "not supported yet")
}

func TestView_ClearAndHelp(t *testing.T) {
	h := newHarness(t)
	h.submit(t, "hostel fees")

	h.press(t, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Empty(t, h.view.Results())
	assert.Equal(t, status.StateReady, h.view.Status())

	h.press(t, tea.KeyMsg{Type: tea.KeyF1})
	assert.True(t, h.view.HelpVisible())
	assert.Equal(t, status.StateHelp, h.view.Status())
	assert.Contains(t, h.view.View(), "open N")

	h.press(t, tea.KeyMsg{Type: tea.KeyF1})
	assert.False(t, h.view.HelpVisible())

	h.submit(t, "help")
	assert.True(t, h.view.HelpVisible())
}

func TestView_IndexReportsSkips(t *testing.T) {
	h := newHarness(t)

	h.submit(t, "index")

	assert.Equal(t, "Indexed 2 files, skipped 1.", h.view.StatusMessage())
	assert.Contains(t, h.view.View(), "1 file(s) were skipped")
}

func TestView_ExitAndQuitKeys(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, messages.Quit{}, h.submit(t, "exit"))
	assert.Equal(t, messages.Quit{}, h.press(t, tea.KeyMsg{Type: tea.KeyCtrlD}))
}

func TestView_History(t *testing.T) {
	h := newHarness(t)
	h.submit(t, "first")
	h.submit(t, "second")

	h.press(t, tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.Equal(t, "second", h.view.Input())
	h.press(t, tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.Equal(t, "first", h.view.Input())
	h.press(t, tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Equal(t, "second", h.view.Input())
}

func TestView_BusyIgnoresKeys(t *testing.T) {
	h := newHarness(t)
	h.view.SetInput("hostel fees")

	var cmd tea.Cmd
	h.view, cmd = h.view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, h.view.Working())

	h.view, _ = h.view.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	assert.Equal(t, ErrBusy.Error(), h.view.StatusMessage())

	h.view, _ = h.view.Update(cmd())
	assert.False(t, h.view.Working())
	assert.Empty(t, h.actions.opened)
}

func TestView_WithoutSession(t *testing.T) {
	v := NewView(nil, nil, nil)
	v.SetDimensions(80, 24)
	v.SetInput("x")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, messages.ErrorOccurred{Err: ErrNoSession}, msg)

	v, _ = v.Update(msg)
	assert.ErrorIs(t, v.Err(), ErrNoSession)
}

func TestView_Typing(t *testing.T) {
	h := newHarness(t)

	h.press(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("cv")})

	assert.Equal(t, "cv", h.view.Input())
}

func TestView_WindowSize(t *testing.T) {
	v := NewView(nil, nil, nil)

	v, _ = v.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.True(t, v.Ready())
	assert.Equal(t, 120, v.Width())
	assert.Equal(t, 40, v.Height())
	assert.Contains(t, v.View(), "meow")
}
