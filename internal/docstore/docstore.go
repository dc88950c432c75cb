// Package docstore provides per-collection document storage keyed by user id.
package docstore

import (
	"context"
	"errors"
)

// Collections used by the application.
const (
	CollectionUsers     = "users"
	CollectionAdmins    = "admins"
	CollectionFavorites = "favorites"
	CollectionProfiles  = "userProfiles"
)

// ErrNotFound indicates that a document does not exist. Callers distinguish
// "never written" from an empty document through it.
var ErrNotFound = errors.New("document not found")

// Store is the remote document store contract: JSON documents addressed by
// (collection, key), where the key is a user id.
type Store interface {
	// Get returns the raw document, or ErrNotFound.
	Get(ctx context.Context, collection, key string) ([]byte, error)
	// Set creates or fully replaces the document.
	Set(ctx context.Context, collection, key string, doc []byte) error
	// Delete removes the document. Deleting an absent document is not an
	// error.
	Delete(ctx context.Context, collection, key string) error
}

// Exists reports whether a document is present, treating ErrNotFound as a
// plain false.
func Exists(ctx context.Context, s Store, collection, key string) (bool, error) {
	_, err := s.Get(ctx, collection, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
