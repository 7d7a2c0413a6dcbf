package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/clientdetect/pkg/apikey"
	"github.com/dmitrymomot/clientdetect/pkg/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, time.Hour, cfg.CacheTTL.Std())
	assert.Equal(t, 10000, cfg.CacheMaxSize)
	assert.True(t, cfg.RateLimitEnabled)
	assert.Equal(t, 1000, cfg.MaxRequestsPerMinute)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow.Std())
	assert.Equal(t, []string{"*"}, cfg.corsOrigins())
	assert.True(t, cfg.debugRoutes())
	assert.Equal(t, slog.LevelDebug, cfg.logLevel())
}

func TestLoadConfigHostPort(t *testing.T) {
	t.Setenv("API_HOST", "127.0.0.1")
	t.Setenv("API_PORT", "9000")
	t.Setenv("CACHE_TTL", "90s")

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL.Std())
}

func TestLoadConfigValidation(t *testing.T) {
	t.Setenv("MAX_REQUESTS_PER_MINUTE", "0")
	t.Setenv("LOG_LEVEL", "chatty")

	_, err := loadConfig("")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLoadConfigEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.env")
	require.NoError(t, os.WriteFile(path, []byte("SERVICE_NAME=from-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("SERVICE_NAME") })

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.ServiceName)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, config.ErrEnvFile)
}

func TestApplyProfile(t *testing.T) {
	t.Parallel()

	unset := func(string) (string, bool) { return "", false }

	t.Run("testing disables cache and rate limit", func(t *testing.T) {
		t.Parallel()
		cfg := appConfig{Environment: "test", CacheEnabled: true, RateLimitEnabled: true}
		cfg.applyProfile(unset)
		assert.False(t, cfg.CacheEnabled)
		assert.False(t, cfg.RateLimitEnabled)
	})

	t.Run("explicit values win", func(t *testing.T) {
		t.Parallel()
		cfg := appConfig{Environment: "testing", CacheEnabled: true, RateLimitEnabled: true}
		cfg.applyProfile(func(name string) (string, bool) { return "true", name == "CACHE_ENABLED" })
		assert.True(t, cfg.CacheEnabled)
		assert.False(t, cfg.RateLimitEnabled)
	})

	t.Run("production", func(t *testing.T) {
		t.Parallel()
		cfg := appConfig{Environment: "prod", EnableCORS: false}
		cfg.applyProfile(unset)
		assert.False(t, cfg.debugRoutes())
		assert.Equal(t, slog.LevelWarn, cfg.logLevel())
		assert.Nil(t, cfg.corsOrigins())

		on := true
		cfg.DebugRoutes = &on
		assert.True(t, cfg.debugRoutes())
	})
}

func TestAPIKeys(t *testing.T) {
	t.Parallel()

	t.Run("none configured", func(t *testing.T) {
		t.Parallel()
		_, err := appConfig{}.apiKeys()
		assert.ErrorIs(t, err, apikey.ErrEmptyRegistry)
	})

	t.Run("env and file merged", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "keys.yaml")
		require.NoError(t, os.WriteFile(path, []byte("partner: partner-secret\nweb_frontend_key: file-web\n"), 0o600))

		reg, err := appConfig{APIKeysFile: path, APIKeyWeb: "env-web", APIKeyAndroid: "env-android"}.apiKeys()
		require.NoError(t, err)
		assert.Equal(t, []string{"android_app_key", "partner", "web_frontend_key"}, reg.Names())

		key, ok := reg.Lookup("env-web")
		require.True(t, ok)
		assert.Equal(t, "web_frontend_key", key.Name)

		_, ok = reg.Lookup("file-web")
		assert.False(t, ok)
	})
}
