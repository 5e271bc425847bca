package cache

import (
	"fmt"

	"slu-client/internal/config"

	"github.com/sirupsen/logrus"
)

// New creates the Store selected by the configuration.
func New(cfg *config.Config, logger *logrus.Logger) (Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	switch cfg.CacheBackend {
	case "memory":
		return NewMemoryStore(), nil

	case "file":
		store, err := NewFileStore(cfg.CacheDir)
		if err != nil {
			return nil, fmt.Errorf("failed to create file cache: %w", err)
		}
		logger.WithField("cache_dir", cfg.CacheDir).Debug("Using file cache backend")
		return store, nil

	case "sqlite":
		store, err := NewSQLiteStore(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to create sqlite cache: %w", err)
		}
		logger.WithField("database_path", cfg.DatabasePath).Debug("Using sqlite cache backend")
		return store, nil

	case "redis":
		store, err := NewRedisStore(RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			Database: cfg.RedisDatabase,
			PoolSize: cfg.RedisPoolSize,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis cache: %w", err)
		}
		logger.WithField("redis_addr", cfg.RedisAddr).Debug("Using redis cache backend")
		return store, nil

	case "postgres":
		store, err := NewPostgresStore(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres cache: %w", err)
		}
		logger.Debug("Using postgres cache backend")
		return store, nil

	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.CacheBackend)
	}
}
