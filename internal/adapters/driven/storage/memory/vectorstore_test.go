package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/meow/internal/core/domain"
)

func TestVectorStore_UpsertKeepsOrder(t *testing.T) {
	ctx := context.Background()
	store := NewVectorStore()

	require.NoError(t, store.Upsert(ctx, domain.EmbeddingRecord{Path: "/a", Vector: []float32{1}}))
	require.NoError(t, store.Upsert(ctx, domain.EmbeddingRecord{Path: "/b", Vector: []float32{2}}))
	require.NoError(t, store.Upsert(ctx, domain.EmbeddingRecord{Path: "/a", Vector: []float32{3}}))

	all, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "/a", all[0].Path)
	assert.Equal(t, []float32{3}, all[0].Vector)
	assert.Equal(t, "/b", all[1].Path)
}

func TestVectorStore_Get(t *testing.T) {
	ctx := context.Background()
	store := NewVectorStore()
	require.NoError(t, store.Upsert(ctx, domain.EmbeddingRecord{Path: "/a", Vector: []float32{1, 2}, Model: "m"}))

	rec, err := store.Get(ctx, "/a")
	require.NoError(t, err)
	assert.Equal(t, "m", rec.Model)

	_, err = store.Get(ctx, "/missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVectorStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewVectorStore()
	vec := []float32{1, 2}
	require.NoError(t, store.Upsert(ctx, domain.EmbeddingRecord{Path: "/a", Vector: vec}))
	vec[0] = 9

	all, err := store.LoadAll(ctx)
	require.NoError(t, err)
	all[0].Vector[1] = 9

	rec, err := store.Get(ctx, "/a")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, rec.Vector)
}

func TestVectorStore_Stats(t *testing.T) {
	ctx := context.Background()
	store := NewVectorStore()
	require.NoError(t, store.Upsert(ctx, domain.EmbeddingRecord{Path: "/a", Model: "x"}))
	require.NoError(t, store.Upsert(ctx, domain.EmbeddingRecord{Path: "/b", Model: "x"}))
	require.NoError(t, store.Upsert(ctx, domain.EmbeddingRecord{Path: "/c", Model: "y"}))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Records)
	assert.Equal(t, map[string]int{"x": 2, "y": 1}, stats.Models)
}

func TestVectorStore_Runs(t *testing.T) {
	ctx := context.Background()
	store := NewVectorStore()

	_, err := store.LastRun(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	now := time.Now()
	require.NoError(t, store.SaveRun(ctx, &domain.IndexRun{ID: "late", FinishedAt: now}))
	require.NoError(t, store.SaveRun(ctx, &domain.IndexRun{ID: "early", FinishedAt: now.Add(-time.Hour)}))

	last, err := store.LastRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, "late", last.ID)
	assert.NoError(t, store.Close())
}
