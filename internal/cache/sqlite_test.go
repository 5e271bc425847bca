package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreRoundtrip(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	_, err := store.LoadString(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.StoreString(ctx, "speechly-device-id", "value-1"))

	value, err := store.LoadString(ctx, "speechly-device-id")
	require.NoError(t, err)
	assert.Equal(t, "value-1", value)
}

func TestSQLiteStoreReplace(t *testing.T) {
	store := setupSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, store.StoreString(ctx, "key", "first"))
	require.NoError(t, store.StoreString(ctx, "key", "second"))

	value, err := store.LoadString(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "second", value)
}

func TestSQLiteStorePersistsAcrossConnections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.StoreString(ctx, "key", "value"))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, err := reopened.LoadString(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "value", value)
}

func TestNewSQLiteStoreRequiresPath(t *testing.T) {
	_, err := NewSQLiteStore("")
	assert.Error(t, err)
}
