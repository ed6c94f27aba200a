package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	colours := map[string]string{
		"primary":   string(theme.Primary),
		"secondary": string(theme.Secondary),
		"warning":   string(theme.Warning),
		"error":     string(theme.Error),
		"highlight": string(theme.Highlight),
		"bar":       string(theme.Bar),
	}
	for name, c := range colours {
		assert.NotEmpty(t, c, name)
	}
}

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	assert.Equal(t, DefaultTheme(), s.Theme())
}

func TestNewStyles_UsesThemeColours(t *testing.T) {
	theme := DefaultTheme()
	theme.Highlight = "#000001"
	theme.Warning = "#000002"

	s := NewStyles(theme)

	assert.Same(t, theme, s.Theme())
	assert.Equal(t, theme.Highlight, s.Winner.GetForeground())
	assert.Equal(t, theme.Warning, s.Stale.GetForeground())
	assert.True(t, s.Stale.GetItalic())
	assert.True(t, s.Title.GetBold())
}

func TestStyles_Render(t *testing.T) {
	s := DefaultStyles()

	assert.Contains(t, s.Normal.Render("fees.pdf"), "fees.pdf")
	assert.Contains(t, s.Prompt.Render("meow>"), "meow>")
}
