package service_test

import (
	"testing"
	"time"

	"reminder-app/src/config"
	"reminder-app/src/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:        "test-secret-key",
			JWTExpiresIn:     15 * time.Minute,
			RefreshExpiresIn: 7 * 24 * time.Hour,
		},
	}
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := service.NewJWTService(testConfig())

	token, err := svc.GenerateAccessToken("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestJWTService_RefreshTokenRoundTrip(t *testing.T) {
	svc := service.NewJWTService(testConfig())

	token, err := svc.GenerateRefreshToken("user-123")
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "refresh", claims.Type)
}

func TestJWTService_RejectsWrongTokenType(t *testing.T) {
	svc := service.NewJWTService(testConfig())

	accessToken, err := svc.GenerateAccessToken("user-123")
	require.NoError(t, err)
	refreshToken, err := svc.GenerateRefreshToken("user-123")
	require.NoError(t, err)

	// アクセストークンをリフレッシュとして使えない
	_, err = svc.ValidateRefreshToken(accessToken)
	assert.Error(t, err)

	// リフレッシュトークンをアクセスとして使えない
	_, err = svc.ValidateAccessToken(refreshToken)
	assert.Error(t, err)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	svc := service.NewJWTService(testConfig())

	otherCfg := testConfig()
	otherCfg.Auth.JWTSecret = "different-secret"
	otherSvc := service.NewJWTService(otherCfg)

	token, err := svc.GenerateAccessToken("user-123")
	require.NoError(t, err)

	_, err = otherSvc.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.JWTExpiresIn = -time.Minute
	svc := service.NewJWTService(cfg)

	token, err := svc.GenerateAccessToken("user-123")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := service.NewJWTService(testConfig())

	_, err := svc.ValidateAccessToken("not.a.token")
	assert.Error(t, err)

	_, err = svc.ValidateAccessToken("")
	assert.Error(t, err)
}
