package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexCmd_Roots(t *testing.T) {
	ts := setupTestServices(t)

	out, err := execute(t, "", "index")

	require.NoError(t, err)
	assert.Equal(t, 1, ts.index.runs)
	assert.Contains(t, out, "Indexing configured roots...")
	assert.Contains(t, out, "Indexed 5 files, skipped 1 (2s).")
	assert.Contains(t, out, "skipped /d/huge.iso")
}

func TestIndexCmd_Paths(t *testing.T) {
	ts := setupTestServices(t)

	out, err := execute(t, "", "index", "/d/a.txt", "/d/b")

	require.NoError(t, err)
	assert.Zero(t, ts.index.runs)
	assert.Equal(t, [][]string{{"/d/a.txt", "/d/b"}}, ts.index.partial)
	assert.Contains(t, out, "Indexing 2 path(s)...")
}

func TestIndexCmd_Error(t *testing.T) {
	ts := setupTestServices(t)
	ts.index.err = errors.New("disk full")

	_, err := execute(t, "", "index")

	assert.EqualError(t, err, "indexing failed: disk full")
}
