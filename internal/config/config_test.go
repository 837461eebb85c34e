package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AppliesEnvironmentOverDefaults(t *testing.T) {
	t.Setenv("REALTY_AUTH.SECRET_KEY", "a-long-enough-secret-key")
	t.Setenv("REALTY_AUTH.TOKEN_TTL", "2h")
	t.Setenv("REALTY_DATABASE.PORT", "6543")
	t.Setenv("REALTY_PRIMARY.ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "a-long-enough-secret-key", cfg.Auth.SecretKey)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "/uploads", cfg.Upload.PublicPath)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, EnvDevelopment, cfg.Observability.Environment)
	assert.Equal(t, serviceName, cfg.Observability.ServiceName)
	assert.False(t, cfg.IsLocal())
	assert.False(t, cfg.RedisEnabled())
}

func TestLoad_RequiresSecretKey(t *testing.T) {
	t.Setenv("REALTY_AUTH.SECRET_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsUnknownEnvironment(t *testing.T) {
	t.Setenv("REALTY_AUTH.SECRET_KEY", "a-long-enough-secret-key")
	t.Setenv("REALTY_PRIMARY.ENV", "moon")

	_, err := Load()
	assert.Error(t, err)
}

func TestObservability_HasCheck(t *testing.T) {
	obs := DefaultObservabilityConfig()
	assert.True(t, obs.HasCheck("database"))
	assert.False(t, obs.HasCheck("queue"))

	obs.HealthChecks.Enabled = false
	assert.False(t, obs.HasCheck("database"))
}

func TestObservability_GetLogLevel(t *testing.T) {
	obs := DefaultObservabilityConfig()
	obs.Logging.Level = ""

	obs.Environment = EnvProduction
	assert.Equal(t, "info", obs.GetLogLevel())

	obs.Environment = EnvLocal
	assert.Equal(t, "debug", obs.GetLogLevel())
}
