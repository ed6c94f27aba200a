package mcp

import (
	"github.com/custodia-labs/meow/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search runs the search pipeline.
	Search driving.SearchService

	// Interpreter parses free-form commands. Optional; without it the
	// search tool uses the query and hints as given.
	Interpreter driving.CommandInterpreter

	// Index refreshes the index. Optional.
	Index driving.IndexService

	// Status reports on the index. Optional.
	Status driving.StatusService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
