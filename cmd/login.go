package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slu-client/internal/auth"
	"slu-client/internal/cache"
	"slu-client/internal/config"
	"slu-client/internal/deviceid"
	"slu-client/internal/identity"
	"slu-client/internal/logging"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate this device against the identity service",
	Long: `Log this device in with the configured application id and print the
API token. The device identifier and token are cached, so repeated calls
reuse the token until it nears expiry.`,
	RunE: runLoginCommand,
}

var (
	loginAppID   string
	loginTimeout int
)

func init() {
	loginCmd.Flags().StringVar(&loginAppID, "app-id", "", "application id (overrides config)")
	loginCmd.Flags().IntVar(&loginTimeout, "timeout", 30, "login timeout in seconds")

	rootCmd.AddCommand(loginCmd)
}

func runLoginCommand(cmd *cobra.Command, args []string) error {
	logger := logging.Initialize(logLevel)

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logging.SetupFileLogging(logger, cfg.LogFile); err != nil {
		return fmt.Errorf("failed to set up file logging: %w", err)
	}

	if loginAppID != "" {
		cfg.AppID = loginAppID
	}
	if cfg.AppID == "" {
		return fmt.Errorf("app id is required (--app-id flag or app_id config)")
	}

	store, err := cache.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create cache store: %w", err)
	}
	defer closeStore(store)

	client, err := identity.NewClient(&identity.ClientConfig{
		Host:            cfg.ServerHost,
		Secure:          cfg.Secure,
		ShutdownTimeout: time.Duration(cfg.ShutdownTimeout) * time.Second,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create identity client: %w", err)
	}
	defer client.Close()

	provider := deviceid.NewCachingProvider(store, logger)

	manager, err := auth.NewTokenManager(client, provider, store, cfg.AppID, logger)
	if err != nil {
		return fmt.Errorf("failed to create token manager: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(loginTimeout)*time.Second)
	defer cancel()

	logger.WithField("server_host", cfg.ServerHost).Info("Logging in")

	token, err := manager.Token(ctx)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrInvalidApplication):
			return fmt.Errorf("application id %q was not found: %w", cfg.AppID, err)
		case errors.Is(err, identity.ErrAuthenticationFailure):
			return fmt.Errorf("device was refused access: %w", err)
		default:
			return fmt.Errorf("login failed: %w", err)
		}
	}

	fmt.Println(token)
	return nil
}

// closeStore closes backends that hold connections; the Store contract
// itself has no lifecycle.
func closeStore(store cache.Store) {
	if closer, ok := store.(interface{ Close() error }); ok {
		closer.Close()
	}
}
