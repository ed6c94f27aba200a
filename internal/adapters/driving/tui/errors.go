package tui

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("tui: search service is required")

// ErrMissingInterpreter is returned when the command interpreter is not provided.
var ErrMissingInterpreter = errors.New("tui: command interpreter is required")
