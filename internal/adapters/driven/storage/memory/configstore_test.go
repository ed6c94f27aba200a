package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("embedding.model", "all-minilm"))
	require.NoError(t, store.Set("search.candidates", 3))
	require.NoError(t, store.Set("resolver.min_gap", 0.1))
	require.NoError(t, store.Set("resolver.enabled", true))
	require.NoError(t, store.Set("index.roots", []any{"/a", 1, "/b"}))

	assert.Equal(t, "all-minilm", store.GetString("embedding.model"))
	assert.Equal(t, 3, store.GetInt("search.candidates"))
	assert.InDelta(t, 0.1, store.GetFloat("resolver.min_gap"), 1e-9)
	assert.InDelta(t, 3.0, store.GetFloat("search.candidates"), 1e-9)
	assert.True(t, store.GetBool("resolver.enabled"))
	assert.Equal(t, []string{"/a", "/b"}, store.GetStringSlice("index.roots"))
	assert.Equal(t, ":memory:", store.Path())
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
}

func TestConfigStore_Missing(t *testing.T) {
	store := NewConfigStore()

	_, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("missing"))
	assert.Zero(t, store.GetInt("missing"))
	assert.Zero(t, store.GetFloat("missing"))
	assert.False(t, store.GetBool("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_Keys(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("b.key", 1))
	require.NoError(t, store.Set("a.key", 2))

	assert.Equal(t, []string{"a.key", "b.key"}, store.Keys())
}
