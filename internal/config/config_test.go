package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("WIZARD_VARIANT", "")
	t.Setenv("DIRECTORY_STATUS_CACHE_SECONDS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "rich", cfg.Wizard.Variant)
	assert.Equal(t, int64(5<<20), cfg.Media.MaxImageBytes)
	assert.Equal(t, 30*time.Second, cfg.Directory.StatusCacheTTL())
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("WIZARD_VARIANT", "simple")
	t.Setenv("WIZARD_IDLE_TTL_MINUTES", "15")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("AUTH_COOKIE_SECURE", "true")
	t.Setenv("MEDIA_UPLOADS_PER_MINUTE", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "simple", cfg.Wizard.Variant)
	assert.Equal(t, 15*time.Minute, cfg.Wizard.IdleTTL())
	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.True(t, cfg.Auth.CookieSecure)
	assert.Equal(t, 30, cfg.Media.UploadsPerMinute)
}

func TestLoad_RejectsUnknownVariant(t *testing.T) {
	t.Setenv("WIZARD_VARIANT", "deluxe")
	_, err := Load()
	assert.Error(t, err)
}

func TestOAuthEnabled(t *testing.T) {
	assert.False(t, AuthConfig{GoogleClientID: "id"}.OAuthEnabled())
	assert.True(t, AuthConfig{GoogleClientID: "id", GoogleClientSecret: "secret"}.OAuthEnabled())
}
