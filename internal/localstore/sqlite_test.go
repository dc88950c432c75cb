package localstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "jobhub.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	_, err := store.Get(ctx, KeyFavorites)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, KeyFavorites, `[{"id":1}]`))

	value, err := store.Get(ctx, KeyFavorites)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, value)
}

func TestSet_ReplacesPreviousValue(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.Set(ctx, KeyUser, `{"uid":"a"}`))
	require.NoError(t, store.Set(ctx, KeyUser, `{"uid":"b"}`))

	value, err := store.Get(ctx, KeyUser)
	require.NoError(t, err)
	assert.Equal(t, `{"uid":"b"}`, value)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.Set(ctx, KeyFavorites, `[]`))
	require.NoError(t, store.Delete(ctx, KeyFavorites))

	_, err := store.Get(ctx, KeyFavorites)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is fine.
	assert.NoError(t, store.Delete(ctx, KeyFavorites))
}

func TestReopen_KeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "jobhub.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, KeyFavorites, `[1,2,3]`))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	value, err := store.Get(ctx, KeyFavorites)
	require.NoError(t, err)
	assert.Equal(t, `[1,2,3]`, value)
}
