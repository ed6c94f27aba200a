package driving

import "context"

// ResultActionService provides actions on search results for external actors.
// This is used by the shell, CLI and MCP adapters.
type ResultActionService interface {
	// Open launches the file in the default application.
	Open(ctx context.Context, path string) error

	// CopyPath copies the path to the system clipboard.
	CopyPath(ctx context.Context, path string) error
}
