// Package tui provides an interactive terminal user interface for meow.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/meow/internal/adapters/driving/shell"
	"github.com/custodia-labs/meow/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Interpreter turns typed commands into intents.
	Interpreter driving.CommandInterpreter

	// Search runs the search pipeline.
	Search driving.SearchService

	// ResultAction opens results and copies their paths. Optional.
	ResultAction driving.ResultActionService

	// Index re-indexes roots on demand. Optional.
	Index driving.IndexService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(
	interpreter driving.CommandInterpreter,
	search driving.SearchService,
	resultAction driving.ResultActionService,
	index driving.IndexService,
) *Ports {
	return &Ports{
		Interpreter:  interpreter,
		Search:       search,
		ResultAction: resultAction,
		Index:        index,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Interpreter == nil {
		return ErrMissingInterpreter
	}
	return nil
}

// shellPorts adapts the aggregate to the shell session's ports.
func (p *Ports) shellPorts() *shell.Ports {
	return &shell.Ports{
		Interpreter: p.Interpreter,
		Search:      p.Search,
		Actions:     p.ResultAction,
		Index:       p.Index,
	}
}
