// Package deviceid produces the stable identifier that pairs a device with
// its recognition-model configuration.
package deviceid

import (
	"context"

	"github.com/google/uuid"
)

// Provider returns the identifier for this device. Implementations never
// fail; at worst the caller gets a fresh random id.
type Provider interface {
	DeviceID(ctx context.Context) uuid.UUID
}

// RandomProvider generates a fresh version 4 UUID on every call.
type RandomProvider struct{}

// DeviceID returns a new random identifier.
func (RandomProvider) DeviceID(_ context.Context) uuid.UUID {
	return uuid.New()
}
