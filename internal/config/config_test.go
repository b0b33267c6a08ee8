package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 5.0, cfg.Proximity.RadiusKm)
	assert.Equal(t, "0.0.0.0:8000", cfg.App.Addr())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.CORSOrigins())
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, time.Minute, cfg.RateLimit.LoginWindow())
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "  ")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "k")
	t.Setenv("PROXIMITY_RADIUS_KM", "2.5")
	t.Setenv("AUTH_BCRYPT_COST", "12")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2.5, cfg.Proximity.RadiusKm)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.CORSOrigins())
	assert.Zero(t, cfg.App.RequestTimeout())
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "k")

	t.Run("radius", func(t *testing.T) {
		t.Setenv("PROXIMITY_RADIUS_KM", "-1")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("redis db", func(t *testing.T) {
		t.Setenv("REDIS_DB", "zero")
		_, err := Load()
		assert.Error(t, err)
	})
}
