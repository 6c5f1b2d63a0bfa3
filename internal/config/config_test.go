package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	vars := map[string]string{
		"RACEBOARD_PRIMARY__ENV":                   "development",
		"RACEBOARD_SERVER__PORT":                   "8080",
		"RACEBOARD_SERVER__READ_TIMEOUT":           "30",
		"RACEBOARD_SERVER__WRITE_TIMEOUT":          "30",
		"RACEBOARD_SERVER__IDLE_TIMEOUT":           "60",
		"RACEBOARD_SERVER__CORS_ALLOWED_ORIGINS":   "http://localhost:3000",
		"RACEBOARD_DATABASE__HOST":                 "localhost",
		"RACEBOARD_DATABASE__PORT":                 "5432",
		"RACEBOARD_DATABASE__USER":                 "raceboard",
		"RACEBOARD_DATABASE__PASSWORD":             "secret",
		"RACEBOARD_DATABASE__NAME":                 "raceboard",
		"RACEBOARD_DATABASE__SSL_MODE":             "disable",
		"RACEBOARD_DATABASE__MAX_OPEN_CONNS":       "10",
		"RACEBOARD_DATABASE__MAX_IDLE_CONNS":       "5",
		"RACEBOARD_DATABASE__CONN_MAX_LIFETIME":    "300",
		"RACEBOARD_DATABASE__CONN_MAX_IDLE_TIME":   "60",
		"RACEBOARD_REDIS__ADDRESS":                 "localhost:6379",
		"RACEBOARD_AUTH__SECRET_KEY":               "0123456789abcdef0123456789abcdef",
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoadConfig(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RACEBOARD_AUTH__ACCESS_TOKEN_TTL", "5m")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 5*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.Auth.RefreshTokenTTL)
	assert.Equal(t, "en", cfg.I18n.DefaultLanguage)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RACEBOARD_AUTH__SECRET_KEY", "short")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestObservabilityValidate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestHealthCheckEnabled(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	assert.True(t, cfg.HealthCheckEnabled("database"))
	assert.False(t, cfg.HealthCheckEnabled("kafka"))

	cfg.HealthChecks.Enabled = false
	assert.False(t, cfg.HealthCheckEnabled("database"))
}
