package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"slu-client/internal/cache"
	"slu-client/internal/deviceid"
	"slu-client/internal/identity"
	"slu-client/internal/logging"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLoginService implements the LoginService interface for testing
type mockLoginService struct {
	loginFunc func(ctx context.Context, req *identity.LoginRequest) (*identity.LoginResponse, error)
	calls     int
	lastReq   *identity.LoginRequest
}

func (m *mockLoginService) Login(ctx context.Context, req *identity.LoginRequest) (*identity.LoginResponse, error) {
	m.calls++
	m.lastReq = req
	if m.loginFunc != nil {
		return m.loginFunc(ctx, req)
	}
	return &identity.LoginResponse{Token: "fresh-token"}, nil
}

// erroringStore fails every write but reads from a backing map
type erroringStore struct {
	*cache.MemoryStore
}

func (s *erroringStore) StoreString(_ context.Context, _, _ string) error {
	return errors.New("write refused")
}

func signedToken(t *testing.T, expiresIn time.Duration) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(expiresIn).Unix(),
		"sub": "test-device",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func newTestManager(t *testing.T, login LoginService, store cache.Store) *TokenManager {
	t.Helper()

	manager, err := NewTokenManager(login, deviceid.RandomProvider{}, store, "test-app", logging.Initialize("debug"))
	require.NoError(t, err)
	return manager
}

func TestNewTokenManagerValidation(t *testing.T) {
	logger := logging.Initialize("debug")
	store := cache.NewMemoryStore()
	login := &mockLoginService{}
	provider := deviceid.RandomProvider{}

	tests := []struct {
		name    string
		login   LoginService
		store   cache.Store
		appID   string
		wantErr bool
	}{
		{name: "valid", login: login, store: store, appID: "app", wantErr: false},
		{name: "nil login service", login: nil, store: store, appID: "app", wantErr: true},
		{name: "nil store", login: login, store: nil, appID: "app", wantErr: true},
		{name: "empty app id", login: login, store: store, appID: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTokenManager(tt.login, provider, tt.store, tt.appID, logger)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTokenReusesCachedToken(t *testing.T) {
	store := cache.NewMemoryStore()
	ctx := context.Background()
	cached := signedToken(t, time.Hour)
	require.NoError(t, store.StoreString(ctx, TokenCacheKey, cached))

	login := &mockLoginService{}
	manager := newTestManager(t, login, store)

	token, err := manager.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, cached, token)
	assert.Equal(t, 0, login.calls, "a valid cached token must not trigger a login")
}

func TestTokenRefreshesExpiredToken(t *testing.T) {
	store := cache.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.StoreString(ctx, TokenCacheKey, signedToken(t, -time.Hour)))

	login := &mockLoginService{}
	manager := newTestManager(t, login, store)

	token, err := manager.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
	assert.Equal(t, 1, login.calls)

	// The fresh token replaces the expired one.
	stored, err := store.LoadString(ctx, TokenCacheKey)
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", stored)
}

func TestTokenRefreshesNearExpiryToken(t *testing.T) {
	store := cache.NewMemoryStore()
	ctx := context.Background()
	// Inside the refresh margin, so still technically valid but stale.
	require.NoError(t, store.StoreString(ctx, TokenCacheKey, signedToken(t, 10*time.Second)))

	login := &mockLoginService{}
	manager := newTestManager(t, login, store)

	token, err := manager.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
	assert.Equal(t, 1, login.calls)
}

func TestTokenTreatsGarbageAsMiss(t *testing.T) {
	store := cache.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.StoreString(ctx, TokenCacheKey, "not-a-jwt"))

	login := &mockLoginService{}
	manager := newTestManager(t, login, store)

	token, err := manager.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
}

func TestTokenSendsDeviceAndAppID(t *testing.T) {
	login := &mockLoginService{}
	manager := newTestManager(t, login, cache.NewMemoryStore())

	_, err := manager.Token(context.Background())
	require.NoError(t, err)

	require.NotNil(t, login.lastReq)
	assert.Equal(t, "test-app", login.lastReq.AppID)
	assert.NotEmpty(t, login.lastReq.DeviceID)
}

func TestTokenSurvivesStoreFailure(t *testing.T) {
	store := &erroringStore{MemoryStore: cache.NewMemoryStore()}
	login := &mockLoginService{}
	manager := newTestManager(t, login, store)

	token, err := manager.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
}

func TestTokenPropagatesLoginErrors(t *testing.T) {
	login := &mockLoginService{
		loginFunc: func(ctx context.Context, req *identity.LoginRequest) (*identity.LoginResponse, error) {
			return nil, identity.ErrInvalidApplication
		},
	}
	manager := newTestManager(t, login, cache.NewMemoryStore())

	_, err := manager.Token(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, identity.ErrInvalidApplication)
}

func TestTokenValidFor(t *testing.T) {
	assert.False(t, tokenValidFor("", time.Minute))
	assert.False(t, tokenValidFor("garbage", time.Minute))
	assert.False(t, tokenValidFor(signedToken(t, -time.Hour), time.Minute))
	assert.False(t, tokenValidFor(signedToken(t, 30*time.Second), time.Minute))
	assert.True(t, tokenValidFor(signedToken(t, time.Hour), time.Minute))
}
