package cache

import (
	"context"
	"errors"
)

// ErrNotFound is returned by LoadString when no value exists for the key.
var ErrNotFound = errors.New("cache: key not found")

// Store is a key/value string store used to persist small pieces of SDK
// state (device identifier, login token) across process restarts.
//
// Implementations are expected to be fast and local; callers treat every
// load failure as a cache miss and every store failure as best-effort.
type Store interface {
	// LoadString returns the value stored under key, or ErrNotFound.
	LoadString(ctx context.Context, key string) (string, error)

	// StoreString persists value under key, replacing any previous value.
	StoreString(ctx context.Context, key, value string) error
}
