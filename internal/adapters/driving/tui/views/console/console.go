// Package console provides the interactive shell view for the TUI.
package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/meow/internal/adapters/driving/shell"
	"github.com/custodia-labs/meow/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/meow/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/meow/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/meow/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/meow/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/meow/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/meow/internal/core/domain"
)

// View is the shell screen: prompt, result list and status bar.
// Every line typed at the prompt runs through a shell.Session.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.CommandInput
	list      *list.ResultList
	statusbar *status.Bar

	session *shell.Session
	ctx     context.Context

	width    int
	height   int
	ready    bool
	err      error
	notice   string
	showHelp bool
	working  bool
	stale    int
}

// NewView creates a new console view.
func NewView(s *styles.Styles, km *keymap.KeyMap, session *shell.Session) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		input:     input.NewCommandInput(s),
		list:      list.NewResultList(s),
		statusbar: status.NewBar(s, km),
		session:   session,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context commands run under.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the console view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.CommandDone:
		return v, v.handleDone(msg)

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

//nolint:gocyclo // one branch per binding
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if key.Matches(msg, v.keymap.Quit) {
		return v, quit
	}
	if v.working {
		v.statusbar.SetMessage(ErrBusy.Error())
		return v, nil
	}

	switch {
	case key.Matches(msg, v.keymap.Help):
		v.showHelp = !v.showHelp
		if v.showHelp {
			v.statusbar.SetState(status.StateHelp)
		} else {
			v.restoreState()
		}
		return v, nil

	case key.Matches(msg, v.keymap.Submit):
		return v, v.submit()

	case key.Matches(msg, v.keymap.Up):
		v.list.MoveUp()
		return v, nil

	case key.Matches(msg, v.keymap.Down):
		v.list.MoveDown()
		return v, nil

	case key.Matches(msg, v.keymap.Open):
		return v, v.onSelection(shell.KindOpen)

	case key.Matches(msg, v.keymap.Copy):
		return v, v.onSelection(shell.KindCopy)

	case key.Matches(msg, v.keymap.Clear):
		return v, v.run(shell.Command{Kind: shell.KindClear})

	case key.Matches(msg, v.keymap.HistoryPrev):
		v.input.Prev()
		return v, nil

	case key.Matches(msg, v.keymap.HistoryNext):
		v.input.Next()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// submit runs the typed line. An empty line opens the selected result.
func (v *View) submit() tea.Cmd {
	line := strings.TrimSpace(v.input.Value())
	if line == "" {
		return v.onSelection(shell.KindOpen)
	}
	v.input.Commit(line)

	cmd := shell.Parse(line)
	if cmd.Kind == shell.KindExit {
		return quit
	}
	return v.run(cmd)
}

// onSelection runs open or copy on the highlighted result.
func (v *View) onSelection(kind shell.Kind) tea.Cmd {
	if v.list.IsEmpty() {
		return nil
	}
	return v.run(shell.Command{Kind: kind, N: v.list.Selected() + 1})
}

// run executes cmd off the update loop and reports back with CommandDone.
func (v *View) run(cmd shell.Command) tea.Cmd {
	if v.session == nil {
		return func() tea.Msg { return messages.ErrorOccurred{Err: ErrNoSession} }
	}

	v.working = true
	v.showHelp = false
	v.err = nil
	v.notice = ""
	v.statusbar.SetState(status.StateWorking)
	v.statusbar.SetMessage(workingLabel(cmd.Kind))

	session, ctx := v.session, v.ctx
	return func() tea.Msg {
		res, err := session.Run(ctx, cmd)
		return messages.CommandDone{Result: res, Err: err}
	}
}

func (v *View) handleDone(msg messages.CommandDone) tea.Cmd {
	v.working = false
	if msg.Failed() {
		v.setError(msg.Err)
		return nil
	}
	res := msg.Result
	if res == nil {
		v.restoreState()
		return nil
	}

	switch res.Command.Kind {
	case shell.KindClear:
		v.setOutcome(nil)
		v.statusbar.Clear()
		return nil
	case shell.KindHelp:
		v.showHelp = true
		v.statusbar.SetState(status.StateHelp)
		v.statusbar.SetMessage("")
		return nil
	case shell.KindSearch:
		if res.Outcome != nil {
			v.setOutcome(res.Outcome)
		} else {
			v.notice = res.Message
		}
	case shell.KindIndex:
		if res.Report != nil && len(res.Report.Failures) > 0 {
			v.notice = fmt.Sprintf("%d file(s) were skipped, run with --verbose for details", len(res.Report.Failures))
		}
	case shell.KindEmpty, shell.KindOpen, shell.KindCopy, shell.KindExit:
	}

	v.restoreState()
	v.statusbar.SetMessage(res.Message)
	return nil
}

func (v *View) setOutcome(outcome *domain.SearchOutcome) {
	v.list.SetOutcome(outcome)
	v.stale = outcome.StaleCount()
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

func (v *View) restoreState() {
	v.statusbar.SetResultCount(v.list.Count())
	if v.list.IsEmpty() {
		v.statusbar.SetState(status.StateReady)
	} else {
		v.statusbar.SetState(status.StateResults)
	}
	v.statusbar.SetMessage("")
}

func workingLabel(kind shell.Kind) string {
	switch kind {
	case shell.KindSearch:
		return "Searching"
	case shell.KindIndex:
		return "Indexing"
	case shell.KindOpen:
		return "Opening"
	case shell.KindCopy:
		return "Copying"
	default:
		return ""
	}
}

func quit() tea.Msg {
	return messages.Quit{}
}

// View renders the console.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)
	sections = append(sections,
		v.styles.Title.Render("meow")+v.styles.Muted.Render("  local file search"),
		"",
		v.input.View(),
		"",
	)

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}
	if v.notice != "" {
		sections = append(sections, v.styles.Muted.Render(v.notice), "")
	}

	if v.showHelp {
		sections = append(sections, v.styles.Border.Padding(0, 1).Render(shell.HelpText))
	} else {
		sections = append(sections, v.list.View())
		if v.stale > 0 {
			sections = append(sections, "", v.styles.Stale.Render(
				fmt.Sprintf("%d result(s) changed since indexing; run 'index' to refresh.", v.stale)))
		}
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10) // header, prompt and status bar
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Input returns the current prompt text.
func (v *View) Input() string {
	return v.input.Value()
}

// SetInput replaces the prompt text.
func (v *View) SetInput(line string) {
	v.input.SetValue(line)
}

// Results returns the displayed results in display order.
func (v *View) Results() []domain.Candidate {
	return v.list.Entries()
}

// SelectedIndex returns the index of the highlighted result.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Working reports whether a command is in flight.
func (v *View) Working() bool {
	return v.working
}

// HelpVisible reports whether the help panel is shown.
func (v *View) HelpVisible() bool {
	return v.showHelp
}

// Status returns the status bar state.
func (v *View) Status() status.State {
	return v.statusbar.State()
}

// StatusMessage returns the status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
