package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TOKEN_KEY", "k")
	t.Setenv("ADDR", "")
	t.Setenv("RATE_LIMIT", "")
	t.Setenv("RATE_BURST", "")
	t.Setenv("RATE_IDLE", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, cfg.RateIdle)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 1.0, cfg.RateLimit)
	assert.Equal(t, 3, cfg.RateBurst)
	assert.False(t, cfg.TLS())
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv("TOKEN_KEY", "")
	t.Setenv("RATE_BURST", "")
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("TOKEN_KEY=from-file\nRATE_BURST=9\n"), 0o600))
	// godotenv does not override variables that are already set, even to "".
	os.Unsetenv("TOKEN_KEY")
	os.Unsetenv("RATE_BURST")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.TokenKey)
	assert.Equal(t, 9, cfg.RateBurst)
}

func TestLoadErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")
	t.Setenv("TOKEN_KEY", "")
	_, err := Load(missing)
	assert.ErrorIs(t, err, ErrMissingTokenKey)

	t.Setenv("TOKEN_KEY", "k")
	t.Setenv("RATE_BURST", "lots")
	_, err = Load(missing)
	assert.Error(t, err)

	t.Setenv("RATE_BURST", "")
	t.Setenv("RATE_IDLE", "soon")
	_, err = Load(missing)
	assert.ErrorContains(t, err, "RATE_IDLE")
}

func TestConfigureLogger(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)
	require.NoError(t, ConfigureLogger(Config{LogLevel: "debug", LogJSON: true}))
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	assert.Error(t, ConfigureLogger(Config{LogLevel: "loud"}))
}
