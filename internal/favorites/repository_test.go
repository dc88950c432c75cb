package favorites

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brvagas/jobhub/internal/docstore"
	"github.com/brvagas/jobhub/internal/localstore"
)

func testLocalRepo(t *testing.T) *LocalRepository {
	t.Helper()
	store, err := localstore.Open(filepath.Join(t.TempDir(), "jobhub.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewLocalRepository(store)
}

func fav(id int64, title string) Favorite {
	return Favorite{ID: id, Number: int(id), Title: title}
}

func TestLocalRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := testLocalRepo(t)

	_, err := repo.Load(ctx, "")
	assert.ErrorIs(t, err, ErrNoDocument)

	require.NoError(t, repo.Save(ctx, "", []Favorite{fav(1, "a"), fav(2, "b")}))

	list, err := repo.Load(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].ID)
}

func TestLocalRepository_SaveEmptyRemovesEntry(t *testing.T) {
	ctx := context.Background()
	repo := testLocalRepo(t)

	require.NoError(t, repo.Save(ctx, "", []Favorite{fav(1, "a")}))
	require.NoError(t, repo.Save(ctx, "", nil))

	_, err := repo.Load(ctx, "")
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestRemoteRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	repo := NewRemoteRepository(store)

	_, err := repo.Load(ctx, "uid-1")
	assert.ErrorIs(t, err, ErrNoDocument)

	require.NoError(t, repo.Save(ctx, "uid-1", []Favorite{fav(7, "vaga")}))

	list, err := repo.Load(ctx, "uid-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "vaga", list[0].Title)

	// Another user's document is untouched.
	_, err = repo.Load(ctx, "uid-2")
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestRemoteRepository_SaveEmptyDeletesDocument(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	repo := NewRemoteRepository(store)

	require.NoError(t, repo.Save(ctx, "uid-1", []Favorite{fav(1, "a")}))
	require.NoError(t, repo.Save(ctx, "uid-1", []Favorite{}))

	// The document is gone, not an empty array.
	ok, err := docstore.Exists(ctx, store, docstore.CollectionFavorites, "uid-1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.Load(ctx, "uid-1")
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestSnapshot_DoesNotShareLabelStorage(t *testing.T) {
	job := sampleJob(1)
	snap := Snapshot(job)

	snap.Labels[0].Name = "changed"
	assert.Equal(t, "Remoto", job.Labels[0].Name)
}
