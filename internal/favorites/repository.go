package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/brvagas/jobhub/internal/docstore"
	"github.com/brvagas/jobhub/internal/localstore"
)

// Repository is the persistence strategy behind the synchronizer. Exactly one
// implementation is active at a time, selected by session state.
type Repository interface {
	// Load returns the stored list, or ErrNoDocument when nothing was ever
	// stored (or the document was deleted after emptying).
	Load(ctx context.Context, uid string) ([]Favorite, error)
	// Save persists the list. Saving an empty list removes the stored
	// document entirely rather than writing an empty one.
	Save(ctx context.Context, uid string, list []Favorite) error
	// Clear removes the stored document.
	Clear(ctx context.Context, uid string) error
}

// LocalRepository stores the anonymous-session list in local device storage
// under a fixed key. The uid argument is ignored.
type LocalRepository struct {
	store *localstore.Store
}

func NewLocalRepository(store *localstore.Store) *LocalRepository {
	return &LocalRepository{store: store}
}

func (r *LocalRepository) Load(ctx context.Context, _ string) ([]Favorite, error) {
	raw, err := r.store.Get(ctx, localstore.KeyFavorites)
	if err != nil {
		if errors.Is(err, localstore.ErrNotFound) {
			return nil, ErrNoDocument
		}
		return nil, err
	}
	var list []Favorite
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("failed to parse local favorites: %w", err)
	}
	return list, nil
}

func (r *LocalRepository) Save(ctx context.Context, _ string, list []Favorite) error {
	if len(list) == 0 {
		return r.store.Delete(ctx, localstore.KeyFavorites)
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to marshal favorites: %w", err)
	}
	return r.store.Set(ctx, localstore.KeyFavorites, string(raw))
}

func (r *LocalRepository) Clear(ctx context.Context, _ string) error {
	return r.store.Delete(ctx, localstore.KeyFavorites)
}

// remoteDocument is the per-user favorites document layout.
type remoteDocument struct {
	Favorites []Favorite `json:"favorites"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// RemoteRepository stores a signed-in user's list as a single document keyed
// by user id.
type RemoteRepository struct {
	store docstore.Store
}

func NewRemoteRepository(store docstore.Store) *RemoteRepository {
	return &RemoteRepository{store: store}
}

func (r *RemoteRepository) Load(ctx context.Context, uid string) ([]Favorite, error) {
	raw, err := r.store.Get(ctx, docstore.CollectionFavorites, uid)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrNoDocument
		}
		return nil, err
	}
	var doc remoteDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse favorites document: %w", err)
	}
	return doc.Favorites, nil
}

func (r *RemoteRepository) Save(ctx context.Context, uid string, list []Favorite) error {
	// An emptied list deletes the document. The storage layer models
	// "emptied" as absence, distinct from writing an empty array.
	if len(list) == 0 {
		return r.store.Delete(ctx, docstore.CollectionFavorites, uid)
	}
	raw, err := json.Marshal(remoteDocument{Favorites: list, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to marshal favorites document: %w", err)
	}
	return r.store.Set(ctx, docstore.CollectionFavorites, uid, raw)
}

func (r *RemoteRepository) Clear(ctx context.Context, uid string) error {
	return r.store.Delete(ctx, docstore.CollectionFavorites, uid)
}
