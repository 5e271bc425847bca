package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore persists each key as a single file under a base directory.
// Suited to single-host installs that do not want a database dependency.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir, creating the
// directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache directory is required")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &FileStore{dir: dir}, nil
}

// LoadString returns the value stored under key, or ErrNotFound.
func (s *FileStore) LoadString(_ context.Context, key string) (string, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read cache file for %s: %w", key, err)
	}

	return strings.TrimSpace(string(data)), nil
}

// StoreString persists value under key with owner-only permissions.
func (s *FileStore) StoreString(_ context.Context, key, value string) error {
	if err := os.WriteFile(s.path(key), []byte(value), 0600); err != nil {
		return fmt.Errorf("failed to write cache file for %s: %w", key, err)
	}
	return nil
}

// path maps a cache key to a file name, replacing separators that would
// escape the base directory.
func (s *FileStore) path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(s.dir, safe)
}
