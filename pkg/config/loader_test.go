package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/clientdetect/pkg/config"
)

type serverConfig struct {
	Addr    string        `env:"CFGTEST_ADDR" envDefault:":8080"`
	Timeout time.Duration `env:"CFGTEST_TIMEOUT" envDefault:"5s"`
	Keys    []string      `env:"CFGTEST_KEYS" envSeparator:","`
}

type requiredConfig struct {
	Secret string `env:"CFGTEST_SECRET,required"`
}

type validatedConfig struct {
	Limit int `env:"CFGTEST_LIMIT" envDefault:"10"`
}

func (c validatedConfig) Validate() error {
	if c.Limit <= 0 {
		return errors.New("limit must be positive")
	}
	return nil
}

func TestLoadDefaults(t *testing.T) {
	var cfg serverConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.Keys)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CFGTEST_ADDR", ":9090")
	t.Setenv("CFGTEST_TIMEOUT", "1m")
	t.Setenv("CFGTEST_KEYS", "a,b")

	var cfg serverConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, time.Minute, cfg.Timeout)
	assert.Equal(t, []string{"a", "b"}, cfg.Keys)
}

func TestLoadPrefix(t *testing.T) {
	t.Setenv("APP_CFGTEST_ADDR", ":7070")

	var cfg serverConfig
	require.NoError(t, config.Load(&cfg, config.WithPrefix("APP_")))
	assert.Equal(t, ":7070", cfg.Addr)
}

func TestLoadErrors(t *testing.T) {
	t.Run("nil pointer", func(t *testing.T) {
		var cfg *serverConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})

	t.Run("required missing", func(t *testing.T) {
		var cfg requiredConfig
		assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("CFGTEST_TIMEOUT", "soon")
		var cfg serverConfig
		assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
	})

	t.Run("validation", func(t *testing.T) {
		t.Setenv("CFGTEST_LIMIT", "0")
		var cfg validatedConfig
		assert.ErrorIs(t, config.Load(&cfg), config.ErrInvalidConfig)
	})

	t.Run("missing required file", func(t *testing.T) {
		var cfg serverConfig
		err := config.Load(&cfg, config.WithEnvFiles(filepath.Join(t.TempDir(), "nope.env")), config.WithRequiredFiles())
		assert.ErrorIs(t, err, config.ErrEnvFile)
	})

	t.Run("missing optional file", func(t *testing.T) {
		var cfg serverConfig
		assert.NoError(t, config.Load(&cfg, config.WithEnvFiles(filepath.Join(t.TempDir(), "nope.env"))))
	})

	t.Run("must load panics", func(t *testing.T) {
		var cfg requiredConfig
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CFGTEST_SECRET=from-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("CFGTEST_SECRET") })

	var cfg requiredConfig
	require.NoError(t, config.Load(&cfg, config.WithEnvFiles(path)))
	assert.Equal(t, "from-file", cfg.Secret)
}
