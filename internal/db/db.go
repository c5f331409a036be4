// Package db provides PostgreSQL storage for journal entries.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, databaseURL string) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the database connection pool.
func (db *DB) Close() {
	db.pool.Close()
}

const schema = `
	CREATE TABLE IF NOT EXISTS journal_entries (
		id         UUID PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		text       TEXT NOT NULL,
		mood       TEXT NOT NULL CHECK (mood IN ('Positive', 'Negative', 'Neutral'))
	);
	CREATE INDEX IF NOT EXISTS journal_entries_created_at_idx ON journal_entries (created_at DESC);
`

// Migrate creates the schema if it does not exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Entries returns an EntryRepository.
func (db *DB) Entries() *EntryRepository {
	return &EntryRepository{pool: db.pool}
}
