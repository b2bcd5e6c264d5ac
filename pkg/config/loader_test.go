package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/devicekit/pkg/config"
)

type viewsConfig struct {
	Root      string `env:"TEST_VIEWS_ROOT" envDefault:"views"`
	CacheSize int    `env:"TEST_VIEWS_CACHE_SIZE" envDefault:"4096"`
	Caching   bool   `env:"TEST_VIEWS_CACHING" envDefault:"true"`
}

type requiredConfig struct {
	Secret string `env:"TEST_REQUIRED_SECRET,required"`
}

type fileConfig struct {
	Header string `env:"TEST_FILE_DEVICE_HEADER"`
}

// These tests share the process environment and cache, so they run serially.

func TestLoad(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_VIEWS_ROOT", "templates")
	t.Setenv("TEST_VIEWS_CACHE_SIZE", "16")

	var cfg viewsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "templates", cfg.Root)
	assert.Equal(t, 16, cfg.CacheSize)
	assert.True(t, cfg.Caching)

	t.Setenv("TEST_VIEWS_ROOT", "other")
	var again viewsConfig
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "templates", again.Root, "cached per type")

	config.ResetCache()
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "other", again.Root)
}

func TestLoad_Errors(t *testing.T) {
	config.ResetCache()

	assert.ErrorIs(t, config.Load[viewsConfig](nil), config.ErrNilPointer)

	var cfg requiredConfig
	assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
	assert.Panics(t, func() { config.MustLoad(&cfg) })

	t.Setenv("TEST_VIEWS_CACHE_SIZE", "many")
	var views viewsConfig
	assert.ErrorIs(t, config.Load(&views), config.ErrParsingConfig)
}

func TestLoadEnv(t *testing.T) {
	config.ResetCache()

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_FILE_DEVICE_HEADER=X-Device\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("TEST_FILE_DEVICE_HEADER") })

	require.NoError(t, config.LoadEnv(path))

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "X-Device", cfg.Header)

	assert.ErrorIs(t, config.LoadEnv(filepath.Join(t.TempDir(), "missing.env")), config.ErrLoadingEnv)
}
