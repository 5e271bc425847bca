package deviceid

import (
	"context"

	"slu-client/internal/cache"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultCacheKey is the cache key the device identifier is persisted under.
const DefaultCacheKey = "speechly-device-id"

// CachingProvider wraps a base Provider with a persistent store so the same
// identifier is returned across restarts. A missing or unparseable cache
// entry falls back to the base provider; store failures are swallowed and
// the next call simply regenerates.
type CachingProvider struct {
	store  cache.Store
	base   Provider
	key    string
	logger *logrus.Entry
}

// Option configures a CachingProvider.
type Option func(*CachingProvider)

// WithBaseProvider overrides the provider consulted on a cache miss.
func WithBaseProvider(base Provider) Option {
	return func(p *CachingProvider) {
		p.base = base
	}
}

// WithCacheKey overrides the cache key the identifier is stored under.
func WithCacheKey(key string) Option {
	return func(p *CachingProvider) {
		p.key = key
	}
}

// NewCachingProvider creates a provider that persists identifiers in store.
// By default it wraps a RandomProvider under DefaultCacheKey.
func NewCachingProvider(store cache.Store, logger *logrus.Logger, opts ...Option) *CachingProvider {
	p := &CachingProvider{
		store:  store,
		base:   RandomProvider{},
		key:    DefaultCacheKey,
		logger: logger.WithField("component", "deviceid"),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// DeviceID returns the cached identifier when one exists and parses, and
// otherwise generates a fresh one and attempts to persist it.
func (p *CachingProvider) DeviceID(ctx context.Context) uuid.UUID {
	cached, err := p.store.LoadString(ctx, p.key)
	if err == nil {
		id, parseErr := uuid.Parse(cached)
		if parseErr == nil {
			return id
		}
		// Corrupt entries are a cache miss, not an error.
		p.logger.WithError(parseErr).Debug("Cached device id is not a valid UUID, regenerating")
	}

	id := p.base.DeviceID(ctx)

	if storeErr := p.store.StoreString(ctx, p.key, id.String()); storeErr != nil {
		// A future call regenerates instead of retrying the write.
		p.logger.WithError(storeErr).Debug("Failed to persist device id")
	}

	return id
}
