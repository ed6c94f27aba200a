// Package input provides the command line component for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/meow/internal/adapters/driving/tui/styles"
)

// maxHistory bounds the remembered commands.
const maxHistory = 100

// CommandInput wraps a bubbles textinput with a prompt and command history.
type CommandInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int

	history []string
	// cursor indexes history while browsing; len(history) means the live line.
	cursor int
	draft  string
}

// NewCommandInput creates a new command input component.
func NewCommandInput(s *styles.Styles) *CommandInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "describe a file, e.g. hostel fees pdf from yesterday"
	ti.Prompt = ""
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 50

	return &CommandInput{
		textinput: ti,
		styles:    s,
		width:     50,
	}
}

// Init initialises the input.
func (c *CommandInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (c *CommandInput) Update(msg tea.Msg) (*CommandInput, tea.Cmd) {
	var cmd tea.Cmd
	c.textinput, cmd = c.textinput.Update(msg)
	return c, cmd
}

// View renders the prompt and input.
func (c *CommandInput) View() string {
	prompt := c.styles.Prompt.Render("meow> ")
	field := c.styles.InputField.Render(c.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, prompt, field)
}

// Value returns the current input value.
func (c *CommandInput) Value() string {
	return c.textinput.Value()
}

// SetValue sets the input value.
func (c *CommandInput) SetValue(value string) {
	c.textinput.SetValue(value)
	c.textinput.CursorEnd()
}

// Commit records value in the history and clears the line.
// Blank values and immediate repeats are not recorded.
func (c *CommandInput) Commit(value string) {
	if value != "" && (len(c.history) == 0 || c.history[len(c.history)-1] != value) {
		c.history = append(c.history, value)
		if len(c.history) > maxHistory {
			c.history = c.history[len(c.history)-maxHistory:]
		}
	}
	c.cursor = len(c.history)
	c.draft = ""
	c.textinput.Reset()
}

// Prev replaces the line with the previous history entry.
func (c *CommandInput) Prev() {
	if c.cursor == 0 {
		return
	}
	if c.cursor == len(c.history) {
		c.draft = c.textinput.Value()
	}
	c.cursor--
	c.SetValue(c.history[c.cursor])
}

// Next moves forward through history, ending at the line being typed.
func (c *CommandInput) Next() {
	if c.cursor >= len(c.history) {
		return
	}
	c.cursor++
	if c.cursor == len(c.history) {
		c.SetValue(c.draft)
		return
	}
	c.SetValue(c.history[c.cursor])
}

// History returns the remembered commands, oldest first.
func (c *CommandInput) History() []string {
	return c.history
}

// Focus sets focus on the input.
func (c *CommandInput) Focus() tea.Cmd {
	return c.textinput.Focus()
}

// Blur removes focus from the input.
func (c *CommandInput) Blur() {
	c.textinput.Blur()
}

// Focused returns whether the input is focused.
func (c *CommandInput) Focused() bool {
	return c.textinput.Focused()
}

// SetWidth sets the width of the input.
func (c *CommandInput) SetWidth(width int) {
	c.width = width
	// Account for prompt and border
	inputWidth := width - 12
	if inputWidth < 20 {
		inputWidth = 20
	}
	c.textinput.Width = inputWidth
}

// Width returns the current width.
func (c *CommandInput) Width() int {
	return c.width
}

// Reset clears the line without touching history.
func (c *CommandInput) Reset() {
	c.textinput.Reset()
	c.cursor = len(c.history)
}
