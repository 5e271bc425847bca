// Package auth manages the API token the SDK presents to the SLU services,
// reusing a cached token until it nears expiry and logging in again when it
// does.
package auth

import (
	"context"
	"fmt"
	"time"

	"slu-client/internal/cache"
	"slu-client/internal/deviceid"
	"slu-client/internal/identity"

	"github.com/sirupsen/logrus"
)

// TokenCacheKey is the cache key the API token is persisted under.
const TokenCacheKey = "speechly-auth-token"

// defaultRefreshMargin is how long before expiry a cached token is already
// considered stale, so a token never dies mid-session.
const defaultRefreshMargin = time.Minute

// LoginService performs the identity login call. *identity.Client
// satisfies it.
type LoginService interface {
	Login(ctx context.Context, req *identity.LoginRequest) (*identity.LoginResponse, error)
}

// TokenManager produces a valid API token for this device and application.
type TokenManager struct {
	login         LoginService
	provider      deviceid.Provider
	store         cache.Store
	appID         string
	refreshMargin time.Duration
	logger        *logrus.Entry
}

// NewTokenManager creates a token manager for the given application id.
func NewTokenManager(login LoginService, provider deviceid.Provider, store cache.Store, appID string, logger *logrus.Logger) (*TokenManager, error) {
	if login == nil {
		return nil, fmt.Errorf("login service is required")
	}
	if provider == nil {
		return nil, fmt.Errorf("device id provider is required")
	}
	if store == nil {
		return nil, fmt.Errorf("cache store is required")
	}
	if appID == "" {
		return nil, fmt.Errorf("app id is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &TokenManager{
		login:         login,
		provider:      provider,
		store:         store,
		appID:         appID,
		refreshMargin: defaultRefreshMargin,
		logger:        logger.WithField("component", "auth"),
	}, nil
}

// Token returns a token valid for at least the refresh margin. A cached
// token that is missing, malformed, or near expiry triggers a fresh login;
// failure to cache the new token is not surfaced.
func (m *TokenManager) Token(ctx context.Context) (string, error) {
	cached, err := m.store.LoadString(ctx, TokenCacheKey)
	if err == nil && tokenValidFor(cached, m.refreshMargin) {
		return cached, nil
	}
	if err == nil {
		m.logger.Debug("Cached token expired or malformed, logging in again")
	}

	deviceID := m.provider.DeviceID(ctx)

	resp, err := m.login.Login(ctx, &identity.LoginRequest{
		DeviceID: deviceID.String(),
		AppID:    m.appID,
	})
	if err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}

	if storeErr := m.store.StoreString(ctx, TokenCacheKey, resp.Token); storeErr != nil {
		m.logger.WithError(storeErr).Debug("Failed to cache API token")
	}

	m.logger.WithField("device_id", deviceID.String()).Debug("Obtained fresh API token")
	return resp.Token, nil
}
