package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/meow/internal/adapters/driving/mcp"
)

func TestMCPCmd_HTTPFlag(t *testing.T) {
	flag := mcpCmd.Flags().Lookup("http")

	require.NotNil(t, flag)
	assert.Empty(t, flag.DefValue)
}

func TestMCPCmd_RequiresSearch(t *testing.T) {
	setupTestServices(t)
	SetServices(&Services{})

	_, err := execute(t, "", "mcp")

	assert.ErrorIs(t, err, mcp.ErrMissingSearchService)
}
