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
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "dev-secret-change-me", cfg.JWT.Secret)
	assert.Equal(t, "vinylshop", cfg.JWT.Issuer)
	assert.Equal(t, 30*24*time.Hour, cfg.JWT.Duration())
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, "vinylshop/products", cfg.Cloudinary.Folder)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  addr: ":9090"
jwt:
  secret: file-secret
  ttl_days: 7
redis:
  addr: localhost:6379
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.Duration())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)

	// untouched keys keep their defaults
	assert.Equal(t, "vinylshop", cfg.JWT.Issuer)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("VINYLSHOP_JWT_SECRET", "env-secret")
	t.Setenv("VINYLSHOP_REDIS_ADDR", "redis:6379")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestDurationFallback(t *testing.T) {
	c := JWTConfig{TTLDays: 0}
	assert.Equal(t, 30*24*time.Hour, c.Duration())

	c.TTLDays = -5
	assert.Equal(t, 30*24*time.Hour, c.Duration())
}
