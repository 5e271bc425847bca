package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the SDK client configuration
type Config struct {
	// Identity service configuration
	ServerHost string `mapstructure:"server_host"`
	Secure     bool   `mapstructure:"secure"`

	// Shutdown timeout for the RPC channel, in seconds
	ShutdownTimeout int `mapstructure:"shutdown_timeout"`

	// Application configuration
	AppID string `mapstructure:"app_id"`

	// Cache configuration
	CacheBackend string `mapstructure:"cache_backend"` // memory, file, sqlite, redis, postgres
	CacheDir     string `mapstructure:"cache_dir"`
	DatabasePath string `mapstructure:"database_path"`

	// Redis cache backend configuration
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDatabase int    `mapstructure:"redis_database"`
	RedisPoolSize int    `mapstructure:"redis_pool_size"`

	// Postgres cache backend configuration
	PostgresDSN string `mapstructure:"postgres_dsn"`

	// Logging configuration
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		ServerHost:      "api.speechly.com:443",
		Secure:          true,
		ShutdownTimeout: 5,
		CacheBackend:    "sqlite",
		CacheDir:        "./cache",
		DatabasePath:    "./slu-client.db",
		RedisAddr:       "localhost:6379",
		RedisDatabase:   0,
		RedisPoolSize:   10,
		LogLevel:        "info",
		LogFile:         "",
	}
}

// Load loads configuration from file and environment variables
func Load(configFile string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setDefaults(v, cfg)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		// Look for config in current directory and common locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/slu-client")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".slu-client"))
		}
	}

	v.SetEnvPrefix("SLU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server_host", cfg.ServerHost)
	v.SetDefault("secure", cfg.Secure)
	v.SetDefault("shutdown_timeout", cfg.ShutdownTimeout)
	v.SetDefault("app_id", cfg.AppID)
	v.SetDefault("cache_backend", cfg.CacheBackend)
	v.SetDefault("cache_dir", cfg.CacheDir)
	v.SetDefault("database_path", cfg.DatabasePath)
	v.SetDefault("redis_addr", cfg.RedisAddr)
	v.SetDefault("redis_password", cfg.RedisPassword)
	v.SetDefault("redis_database", cfg.RedisDatabase)
	v.SetDefault("redis_pool_size", cfg.RedisPoolSize)
	v.SetDefault("postgres_dsn", cfg.PostgresDSN)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("log_file", cfg.LogFile)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.ServerHost == "" {
		return fmt.Errorf("server_host is required")
	}

	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive")
	}

	validBackends := map[string]bool{
		"memory": true, "file": true, "sqlite": true, "redis": true, "postgres": true,
	}
	if !validBackends[c.CacheBackend] {
		return fmt.Errorf("cache_backend must be one of: memory, file, sqlite, redis, postgres")
	}

	switch c.CacheBackend {
	case "file":
		if c.CacheDir == "" {
			return fmt.Errorf("cache_dir is required for the file cache backend")
		}
	case "sqlite":
		if c.DatabasePath == "" {
			return fmt.Errorf("database_path is required for the sqlite cache backend")
		}
	case "redis":
		if c.RedisAddr == "" {
			return fmt.Errorf("redis_addr is required for the redis cache backend")
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("postgres_dsn is required for the postgres cache backend")
		}
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("log_level must be one of: debug, info, warn, error")
	}

	return nil
}
