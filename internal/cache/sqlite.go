package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore is a durable local Store backed by a single SQLite database
// file. It survives restarts and is the default for installed clients.
type SQLiteStore struct {
	conn *sql.DB
}

const createCacheTable = `
CREATE TABLE IF NOT EXISTS sdk_cache (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);`

// NewSQLiteStore opens (or creates) the database at databasePath and
// prepares the cache schema.
func NewSQLiteStore(databasePath string) (*SQLiteStore, error) {
	if databasePath == "" {
		return nil, fmt.Errorf("database path is required")
	}

	if err := os.MkdirAll(filepath.Dir(databasePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// WAL keeps concurrent readers from blocking the occasional write.
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000", databasePath)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := conn.Exec(createCacheTable); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create cache table: %w", err)
	}

	return &SQLiteStore{conn: conn}, nil
}

// LoadString returns the value stored under key, or ErrNotFound.
func (s *SQLiteStore) LoadString(ctx context.Context, key string) (string, error) {
	var value string

	query := "SELECT value FROM sdk_cache WHERE key = ?"
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
func (s *SQLiteStore) StoreString(ctx context.Context, key, value string) error {
	query := `
		INSERT OR REPLACE INTO sdk_cache (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
	`

	if _, err := s.conn.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
