package auth

import (
	"testing"
	"time"

	"lamsa/config"
	"lamsa/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T) service.TokenService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "access-secret"
	cfg.SecretKey.Refresh = "refresh-secret"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc
}

func TestNewJWTService_RequiresSecrets(t *testing.T) {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "access-secret"

	_, err := NewJWTService(cfg)
	assert.Error(t, err)

	cfg.SecretKey.Access = ""
	cfg.SecretKey.Refresh = "refresh-secret"

	_, err = NewJWTService(cfg)
	assert.Error(t, err)
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t)
	userID := uuid.New()

	access, refresh, err := svc.GenerateTokens(userID, "salon_owner")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := svc.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "salon_owner", claims.Role)
	assert.Equal(t, "access", claims.Type)
}

func TestJWTService_TokenTypesDoNotCross(t *testing.T) {
	svc := newTestTokenService(t)

	access, refresh, err := svc.GenerateTokens(uuid.New(), "customer")
	require.NoError(t, err)

	// A refresh token must never authenticate a request.
	_, err = svc.ValidateAccessToken(refresh)
	assert.Error(t, err)

	_, err = svc.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestJWTService_RefreshTokenCarriesNoRole(t *testing.T) {
	svc := newTestTokenService(t)
	userID := uuid.New()

	_, refresh, err := svc.GenerateTokens(userID, "admin")
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Empty(t, claims.Role)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	svc := newTestTokenService(t)

	otherCfg := &config.Config{}
	otherCfg.SecretKey.Access = "other-access"
	otherCfg.SecretKey.Refresh = "other-refresh"
	other, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	access, _, err := other.GenerateTokens(uuid.New(), "customer")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(access)
	assert.Error(t, err)
}

func TestJWTService_HashToken(t *testing.T) {
	svc := newTestTokenService(t)

	first := svc.HashToken("some-token")
	assert.Equal(t, first, svc.HashToken("some-token"))
	assert.NotEqual(t, first, svc.HashToken("other-token"))
	assert.Len(t, first, 64)
	assert.NotContains(t, first, "some-token")
}

func TestJWTService_RefreshTokenDuration(t *testing.T) {
	svc := newTestTokenService(t)

	assert.Equal(t, 7*24*time.Hour, svc.RefreshTokenDuration())
}
