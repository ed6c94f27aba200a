package driving

import (
	"context"

	"github.com/custodia-labs/meow/internal/core/domain"
)

// SearchService finds the files that best match an intent.
type SearchService interface {
	// Search ranks indexed files against intent.Query, scoped by its hints.
	// An intent without query text yields an empty outcome.
	Search(ctx context.Context, intent domain.Intent) (*domain.SearchOutcome, error)
}

// CommandInterpreter turns free-form commands into structured intents.
type CommandInterpreter interface {
	// Interpret parses a natural-language command. It never fails: when no
	// model is available or its reply is unusable, the command becomes a
	// plain search for itself.
	Interpret(ctx context.Context, command string) domain.Intent
}
