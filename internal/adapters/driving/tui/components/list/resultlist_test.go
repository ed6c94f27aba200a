package list

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/meow/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/meow/internal/core/domain"
)

func sampleOutcome() *domain.SearchOutcome {
	return &domain.SearchOutcome{
		Candidates: []domain.Candidate{
			{Rank: 1, Path: "/home/u/Downloads/fees_2023.pdf", FileName: "fees_2023.pdf", Score: 0.70},
			{Rank: 2, Path: "/home/u/Downloads/fees_2024.pdf", FileName: "fees_2024.pdf", Score: 0.66},
			{Rank: 3, Path: "/home/u/Downloads/menu.pdf", FileName: "menu.pdf", Score: 0.51, Stale: true},
		},
		Paths: []string{
			"/home/u/Downloads/fees_2024.pdf",
			"/home/u/Downloads/fees_2023.pdf",
			"/home/u/Downloads/menu.pdf",
		},
		Winner: 2,
		Root:   "/home/u/Downloads",
	}
}

func TestNewResultList(t *testing.T) {
	l := NewResultList(styles.DefaultStyles())

	require.NotNil(t, l)
	assert.True(t, l.IsEmpty())
	assert.Nil(t, l.SelectedEntry())
	assert.Nil(t, l.Init())
	assert.Contains(t, l.View(), "No results")
}

func TestResultList_SetOutcomeUsesDisplayOrder(t *testing.T) {
	l := NewResultList(nil)

	l.SetOutcome(sampleOutcome())

	require.Equal(t, 3, l.Count())
	assert.Equal(t, "fees_2024.pdf", l.Entries()[0].FileName)
	assert.Equal(t, "fees_2023.pdf", l.Entries()[1].FileName)
	assert.Equal(t, "fees_2024.pdf", l.SelectedEntry().FileName)

	l.SetOutcome(nil)
	assert.True(t, l.IsEmpty())
}

func TestResultList_Navigation(t *testing.T) {
	l := NewResultList(nil)
	l.SetOutcome(sampleOutcome())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, l.Selected())
	l.MoveDown()
	l.MoveDown()
	assert.Equal(t, 2, l.Selected())

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, l.Selected())
	l.MoveUp()
	l.MoveUp()
	assert.Equal(t, 0, l.Selected())

	l.SetSelected(2)
	assert.Equal(t, 2, l.Selected())
	l.SetSelected(9)
	assert.Equal(t, 2, l.Selected())

	l.SetOutcome(sampleOutcome())
	assert.Equal(t, 0, l.Selected())
}

func TestResultList_View(t *testing.T) {
	l := NewResultList(nil)
	l.SetDimensions(100, 20)
	l.SetOutcome(sampleOutcome())

	view := l.View()

	assert.Contains(t, view, "Top matches (3) in /home/u/Downloads")
	assert.Contains(t, view, "[1] fees_2024.pdf")
	assert.Contains(t, view, "★")
	assert.Contains(t, view, "needs reindex")
	assert.Contains(t, view, "0.6600")
	assert.Contains(t, view, "/home/u/Downloads/menu.pdf")
	assert.Equal(t, 1, strings.Count(view, "★"))
}

func TestResultList_ViewScrollsToSelection(t *testing.T) {
	l := NewResultList(nil)
	l.SetDimensions(80, 4)
	l.SetOutcome(sampleOutcome())
	l.SetSelected(2)

	view := l.View()

	assert.Contains(t, view, "menu.pdf")
	assert.NotContains(t, view, "[1] fees_2024.pdf")
}

func TestResultList_TruncatesLongPaths(t *testing.T) {
	l := NewResultList(nil)
	l.SetDimensions(30, 20)
	long := "/" + strings.Repeat("deep/", 20) + "file.txt"
	l.SetOutcome(&domain.SearchOutcome{
		Candidates: []domain.Candidate{{Rank: 1, Path: long, FileName: "file.txt", Score: 0.9}},
		Paths:      []string{long},
	})

	view := l.View()

	assert.Contains(t, view, "...")
	assert.Contains(t, view, "file.txt")
	assert.NotContains(t, view, long)
}
