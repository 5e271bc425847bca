package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgresStore is a Store for server-side embedders that already run a
// relational database and want SDK state alongside their own tables.
type PostgresStore struct {
	conn *sql.DB
}

const createPostgresCacheTable = `
CREATE TABLE IF NOT EXISTS sdk_cache (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

// NewPostgresStore connects using a lib/pq connection string, verifies the
// connection, and prepares the cache schema.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres connection string is required")
	}

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	conn.SetMaxOpenConns(5)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(5 * time.Minute)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := conn.Exec(createPostgresCacheTable); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create cache table: %w", err)
	}

	return &PostgresStore{conn: conn}, nil
}

// LoadString returns the value stored under key, or ErrNotFound.
func (s *PostgresStore) LoadString(ctx context.Context, key string) (string, error) {
	var value string

	query := "SELECT value FROM sdk_cache WHERE key = $1"
	err := s.conn.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", key, err)
	}

	return value, nil
}

// StoreString persists value under key, replacing any previous value.
func (s *PostgresStore) StoreString(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO sdk_cache (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := s.conn.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}

	return nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.conn.Close()
}
