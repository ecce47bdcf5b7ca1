package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "./data/marquee.json", cfg.DataFile)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5, cfg.MaxLoginAttempts)
	assert.Equal(t, 15*time.Minute, cfg.LockoutDuration)
	assert.False(t, cfg.UsesDatabase())
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_ENV=development\nDATABASE_URL=postgres://db/marquee\nDATABASE_SERVICE_KEY=key\nSESSION_TTL=2h\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("APP_ENV")
		os.Unsetenv("DATABASE_URL")
		os.Unsetenv("DATABASE_SERVICE_KEY")
		os.Unsetenv("SESSION_TTL")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.IsDevelopment())
	assert.True(t, cfg.UsesDatabase())
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
}

func TestLoadRejects(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		os.Unsetenv("JWT_SECRET")
		_, err := Load(missing)
		assert.Error(t, err)
	})

	t.Run("spaces without bucket", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("USE_SPACES", "true")
		_, err := Load(missing)
		assert.ErrorContains(t, err, "SPACES_BUCKET")
	})

	t.Run("zero login attempts", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("MAX_LOGIN_ATTEMPTS", "0")
		_, err := Load(missing)
		assert.Error(t, err)
	})
}
