package input

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommandInput(t *testing.T) {
	in := NewCommandInput(nil)

	require.NotNil(t, in)
	assert.NotNil(t, in.styles)
	assert.True(t, in.Focused())
	assert.Empty(t, in.Value())
	assert.NotNil(t, in.Init())
}

func TestCommandInput_Typing(t *testing.T) {
	in := NewCommandInput(nil)

	in, _ = in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("fees")})

	assert.Equal(t, "fees", in.Value())
	assert.Contains(t, in.View(), "meow>")
}

func TestCommandInput_History(t *testing.T) {
	in := NewCommandInput(nil)
	in.Commit("hostel fees")
	in.Commit("hostel fees")
	in.Commit("")
	in.Commit("open 1")

	assert.Equal(t, []string{"hostel fees", "open 1"}, in.History())
	assert.Empty(t, in.Value())

	in.SetValue("dra")
	in.Prev()
	assert.Equal(t, "open 1", in.Value())
	in.Prev()
	assert.Equal(t, "hostel fees", in.Value())
	in.Prev()
	assert.Equal(t, "hostel fees", in.Value())

	in.Next()
	assert.Equal(t, "open 1", in.Value())
	in.Next()
	assert.Equal(t, "dra", in.Value())
	in.Next()
	assert.Equal(t, "dra", in.Value())
}

func TestCommandInput_HistoryIsBounded(t *testing.T) {
	in := NewCommandInput(nil)
	for i := 0; i < maxHistory+5; i++ {
		in.Commit(fmt.Sprintf("q%d", i))
	}

	assert.Len(t, in.History(), maxHistory)
	assert.Equal(t, "q5", in.History()[0])
}

func TestCommandInput_FocusAndWidth(t *testing.T) {
	in := NewCommandInput(nil)

	in.Blur()
	assert.False(t, in.Focused())
	in.Focus()
	assert.True(t, in.Focused())

	in.SetWidth(100)
	assert.Equal(t, 100, in.Width())
	assert.Equal(t, 88, in.textinput.Width)

	in.SetWidth(10)
	assert.Equal(t, 20, in.textinput.Width)
}

func TestCommandInput_Reset(t *testing.T) {
	in := NewCommandInput(nil)
	in.Commit("a")
	in.Prev()

	in.Reset()

	assert.Empty(t, in.Value())
	in.Prev()
	assert.Equal(t, "a", in.Value())
}
