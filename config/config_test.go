package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.Equal(t, 30*time.Second, cfg.ReadTimeout())
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Server.Port)
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9001\n  host: 127.0.0.1\ncors:\n  allowedOrigins:\n    - https://app.example.com\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9001", cfg.Addr())
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORS.AllowedOrigins)
	// untouched keys keep their defaults
	assert.Equal(t, 30*time.Second, cfg.ReadTimeout())
}

func TestLoadEnvOverridesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 7777\n"), 0o644))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load("some/ignored/path.yaml")
	require.NoError(t, err)
	assert.Equal(t, 7777, cfg.Server.Port)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
