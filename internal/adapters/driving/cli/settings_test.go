package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/meow/internal/core/domain"
)

func TestSettingsCmd_ShowGroupsKeys(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "[embedding]\n  model = nomic-embed-text\n  provider = ollama\n")
	assert.Contains(t, out, "[llm]\n  api_key = (not set)\n")
	assert.Contains(t, out, "[resolver]\n  min_gap = 0.08\n")
}

func TestSettingsCmd_Get(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "settings", "get", "embedding.model")
	require.NoError(t, err)
	assert.Equal(t, "nomic-embed-text\n", out)

	_, err = execute(t, "", "settings", "get", "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsCmd_Set(t *testing.T) {
	ts := setupTestServices(t)

	out, err := execute(t, "", "settings", "set", "resolver.min_gap", "0.1")

	require.NoError(t, err)
	assert.Equal(t, "0.1", ts.settings.values["resolver.min_gap"])
	assert.Equal(t, "resolver.min_gap = 0.1\n", out)
}

func TestSettingsCmd_SetReadsAPIKeyFromInput(t *testing.T) {
	ts := setupTestServices(t)

	_, err := execute(t, "sk-secret\n", "settings", "set", "llm.api_key")

	require.NoError(t, err)
	assert.Equal(t, "sk-secret", ts.settings.values["llm.api_key"])
}

func TestSettingsCmd_SetErrors(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "", "settings", "set", "embedding.model")
	assert.EqualError(t, err, "missing value for embedding.model")

	_, err = execute(t, "\n", "settings", "set", "llm.api_key")
	assert.EqualError(t, err, "API key is required")

	_, err = execute(t, "", "settings", "set", "bogus.key", "1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsCmd_Keys(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "", "settings", "keys")

	require.NoError(t, err)
	assert.Equal(t, "embedding.model\nembedding.provider\nllm.api_key\nresolver.min_gap\n", out)
}

func TestSettingsCmd_Check(t *testing.T) {
	ts := setupTestServices(t)

	out, err := execute(t, "", "settings", "check")
	require.NoError(t, err)
	assert.Equal(t, "Embedding provider... OK\nLLM provider... OK\n", out)

	ts.settings.llmErr = errors.New("401 unauthorized")
	out, err = execute(t, "", "settings", "check")
	assert.EqualError(t, err, "configuration check failed")
	assert.Contains(t, out, "LLM provider... FAILED: 401 unauthorized")
}
