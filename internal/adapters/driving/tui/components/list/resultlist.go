// Package list provides the result list component for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/meow/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/meow/internal/core/domain"
)

// ResultList displays search results in display order. Entry i is the
// target of "open i+1".
type ResultList struct {
	entries  []domain.Candidate
	winner   int
	root     string
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			r.MoveUp()
		case tea.KeyDown:
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.entries) == 0 {
		return r.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(r.entries)+2)
	header := fmt.Sprintf("Top matches (%d)", len(r.entries))
	if r.root != "" {
		header += " in " + r.root
	}
	lines = append(lines, r.styles.Subtitle.Render(header), "")

	// Each entry takes two lines
	visibleCount := (r.height - 2) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.entries) {
		end = len(r.entries)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderEntry(i, &r.entries[i]))
	}

	return strings.Join(lines, "\n")
}

// renderEntry formats one result as a name line and a path line.
func (r *ResultList) renderEntry(index int, c *domain.Candidate) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	name := c.FileName
	maxNameLen := r.width - 20
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	label := fmt.Sprintf("%s[%d] %-*s", indicator, index+1, maxNameLen, name)
	score := fmt.Sprintf("%.4f", c.Score)

	var line string
	if index == r.selected {
		line = r.styles.Selected.Render(label + "  " + score)
	} else {
		line = r.styles.Normal.Render(label+"  ") + r.styles.Muted.Render(score)
	}
	if r.winner != 0 && c.Rank == r.winner {
		line += " " + r.styles.Winner.Render("★")
	}
	if c.Stale {
		line += " " + r.styles.Stale.Render("needs reindex")
	}

	path := c.Path
	maxPathLen := r.width - 6
	if maxPathLen < 20 {
		maxPathLen = 20
	}
	if len(path) > maxPathLen {
		path = "..." + path[len(path)-maxPathLen+3:]
	}

	return line + "\n" + r.styles.Muted.Render("      "+path)
}

// SetOutcome replaces the list with the outcome's results in display order.
func (r *ResultList) SetOutcome(outcome *domain.SearchOutcome) {
	r.selected = 0
	if outcome == nil {
		r.entries, r.winner, r.root = nil, 0, ""
		return
	}
	r.entries = outcome.Ordered()
	r.winner = outcome.Winner
	r.root = outcome.Root
}

// Entries returns the displayed results.
func (r *ResultList) Entries() []domain.Candidate {
	return r.entries
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.entries) {
		r.selected = index
	}
}

// SelectedEntry returns the currently selected result, or nil if none.
func (r *ResultList) SelectedEntry() *domain.Candidate {
	if len(r.entries) == 0 || r.selected < 0 || r.selected >= len(r.entries) {
		return nil
	}
	return &r.entries[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.entries)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.entries)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.entries) == 0
}
