package main

import (
	"context"
	"fmt"

	"slu-client/internal/cache"
	"slu-client/internal/config"
	"slu-client/internal/deviceid"
	"slu-client/internal/logging"

	"github.com/spf13/cobra"
)

var deviceIDCmd = &cobra.Command{
	Use:   "device-id",
	Short: "Print the stable device identifier",
	Long: `Print the device identifier this installation is known by. The id is
generated on first use and persisted in the configured cache backend.`,
	RunE: runDeviceIDCommand,
}

var resetDeviceID bool

func init() {
	deviceIDCmd.Flags().BoolVar(&resetDeviceID, "reset", false, "discard the cached id and generate a fresh one")

	rootCmd.AddCommand(deviceIDCmd)
}

func runDeviceIDCommand(cmd *cobra.Command, args []string) error {
	logger := logging.Initialize(logLevel)

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	store, err := cache.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create cache store: %w", err)
	}
	defer closeStore(store)

	ctx := context.Background()

	if resetDeviceID {
		fresh := deviceid.RandomProvider{}.DeviceID(ctx)
		if err := store.StoreString(ctx, deviceid.DefaultCacheKey, fresh.String()); err != nil {
			return fmt.Errorf("failed to store fresh device id: %w", err)
		}
		logger.WithField("device_id", fresh.String()).Info("Device id reset")
		fmt.Println(fresh.String())
		return nil
	}

	provider := deviceid.NewCachingProvider(store, logger)
	fmt.Println(provider.DeviceID(ctx).String())
	return nil
}
