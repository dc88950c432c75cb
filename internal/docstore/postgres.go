package docstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is bootstrapped on connect so a fresh database works without a
// separate migration step.
const schema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	key        TEXT NOT NULL,
	doc        JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (collection, key)
)`

// PostgresStore implements Store on a PostgreSQL documents table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool, verifies it and ensures the
// documents table exists.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create documents table: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Get returns the raw document for (collection, key).
func (s *PostgresStore) Get(ctx context.Context, collection, key string) ([]byte, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM documents WHERE collection = $1 AND key = $2`,
		collection, key,
	).Scan(&doc)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document %s/%s: %w", collection, key, err)
	}
	return doc, nil
}

// Set upserts the document for (collection, key).
func (s *PostgresStore) Set(ctx context.Context, collection, key string, doc []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO documents (collection, key, doc)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (collection, key) DO UPDATE SET doc = $3, updated_at = NOW()`,
		collection, key, doc,
	)
	if err != nil {
		return fmt.Errorf("failed to set document %s/%s: %w", collection, key, err)
	}
	return nil
}

// Delete removes the document for (collection, key).
func (s *PostgresStore) Delete(ctx context.Context, collection, key string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND key = $2`,
		collection, key,
	)
	if err != nil {
		return fmt.Errorf("failed to delete document %s/%s: %w", collection, key, err)
	}
	return nil
}
