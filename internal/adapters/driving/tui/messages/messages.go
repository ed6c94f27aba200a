// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/meow/internal/adapters/driving/shell"
)

// CommandDone carries the outcome of one shell command back to the model.
type CommandDone struct {
	Result *shell.Result
	Err    error
}

// Failed reports whether the command returned an error.
func (m CommandDone) Failed() bool {
	return m.Err != nil
}

// ErrorOccurred signals that an error happened outside a command.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
