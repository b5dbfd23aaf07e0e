package memory

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")
	store, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, store.Set("post_content", "hello world"))

	got, ok := store.GetString("post_content")
	require.True(t, ok)
	assert.Equal(t, "hello world", got)
}

func TestGetMissingKey(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "memory.json"))
	require.NoError(t, err)

	_, ok := store.GetString("nope")
	assert.False(t, ok)
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("k", 42))

	reopened, err := Open(path)
	require.NoError(t, err)

	var v int
	ok, err := reopened.Get("k", &v)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestLastWriteWins(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "memory.json"))
	require.NoError(t, err)

	require.NoError(t, store.Set("k", "first"))
	require.NoError(t, store.Set("k", "second"))

	got, ok := store.GetString("k")
	require.True(t, ok)
	assert.Equal(t, "second", got)
}
