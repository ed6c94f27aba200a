// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the shell.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Submit runs the typed command, or opens the selection when the input is empty.
	Submit key.Binding

	// Up moves the result selection up.
	Up key.Binding

	// Down moves the result selection down.
	Down key.Binding

	// Open launches the selected result.
	Open key.Binding

	// Copy copies the selected result's path.
	Copy key.Binding

	// Clear clears the results and the input.
	Clear key.Binding

	// HistoryPrev recalls the previous command.
	HistoryPrev key.Binding

	// HistoryNext recalls the next command.
	HistoryNext key.Binding

	// Help toggles the command help.
	Help key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "open"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy path"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear"),
		),
		HistoryPrev: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "previous"),
		),
		HistoryNext: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "next"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
	}
}

// ShortHelp returns the bindings shown before any results exist.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Help, k.Quit}
}

// ResultsHelp returns the bindings shown next to a result list.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Copy, k.Clear}
}

// FullHelp returns the full list of keybindings.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Up, k.Down},
		{k.Open, k.Copy, k.Clear},
		{k.HistoryPrev, k.HistoryNext, k.Help, k.Quit},
	}
}
