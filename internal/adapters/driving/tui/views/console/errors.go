package console

import "errors"

// Error definitions for the console view.
var (
	// ErrNoSession indicates that no shell session was provided.
	ErrNoSession = errors.New("shell session is required")

	// ErrBusy indicates a command was submitted while another is running.
	ErrBusy = errors.New("a command is still running")
)
