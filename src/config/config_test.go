package config_test

import (
	"testing"
	"time"

	"reminder-app/src/config"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := config.LoadConfig()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "reminder_app", cfg.Database.DBName)
	assert.Equal(t, 15*time.Minute, cfg.Auth.JWTExpiresIn)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshExpiresIn)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.UploadEnabled)
	assert.True(t, cfg.Notification.Enabled)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("JWT_EXPIRES_IN", "30m")
	t.Setenv("NOTIFICATIONS_ENABLED", "false")
	t.Setenv("LOG_UPLOAD_ENABLED", "true")

	cfg := config.LoadConfig()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, 30*time.Minute, cfg.Auth.JWTExpiresIn)
	assert.False(t, cfg.Notification.Enabled)
	assert.True(t, cfg.Log.UploadEnabled)
}

func TestLoadConfigIgnoresMalformedValues(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("JWT_EXPIRES_IN", "soon")
	t.Setenv("NOTIFICATIONS_ENABLED", "maybe")

	cfg := config.LoadConfig()

	// 解析できない値はデフォルトにフォールバック
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 15*time.Minute, cfg.Auth.JWTExpiresIn)
	assert.True(t, cfg.Notification.Enabled)
}
