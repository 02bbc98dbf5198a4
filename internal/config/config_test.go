package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, ":8181", cfg.Server.Addr)
	require.Equal(t, "info", cfg.Log.Level)
	require.False(t, cfg.Nats.Enabled)
	require.Equal(t, "alnum", cfg.Nats.SubjectPrefix)
}

func TestLoad_file(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9999"
nats:
  enabled: true
  url: "nats://example:4222"
log:
  level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9999", cfg.Server.Addr)
	require.True(t, cfg.Nats.Enabled)
	require.Equal(t, "nats://example:4222", cfg.Nats.URL)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_envOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9999\"\n"), 0o644))

	t.Setenv("ALNUM_SERVER_ADDR", ":7777")
	t.Setenv("ALNUM_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":7777", cfg.Server.Addr)
	require.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_missingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
