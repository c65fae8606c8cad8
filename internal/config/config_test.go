package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "servicelog.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadServer_Defaults(t *testing.T) {
	cfg, err := LoadServer("server", nil)
	require.NoError(t, err)
	require.Equal(t, DefaultServer(), cfg)
}

func TestLoadServer_Precedence(t *testing.T) {
	path := writeYAML(t, `
addr: ":7000"
driver: sqlite
dsn: "file:yaml.db"
metrics_addr: ":7001"
shutdown_timeout: 10s
`)
	t.Setenv("SERVICELOG_METRICS_ADDR", ":8001")
	t.Setenv("SERVICELOG_DEV", "true")

	cfg, err := LoadServer("server", []string{"-config", path, "-addr", ":9000"})
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.Addr)        // flag beats yaml
	require.Equal(t, ":8001", cfg.MetricsAddr) // env beats yaml
	require.Equal(t, "sqlite", cfg.Driver)     // yaml beats default
	require.Equal(t, "file:yaml.db", cfg.DSN)
	require.Equal(t, 10*time.Second, cfg.Shutdown)
	require.True(t, cfg.Dev)
	require.Equal(t, "key.pem", cfg.TLSKey)
}

func TestLoadServer_FlagEqualToDefaultStillWins(t *testing.T) {
	t.Setenv("SERVICELOG_DRIVER", "sqlite")
	cfg, err := LoadServer("server", []string{"-driver", "postgres"})
	require.NoError(t, err)
	require.Equal(t, "postgres", cfg.Driver)
}

func TestLoadServer_Invalid(t *testing.T) {
	_, err := LoadServer("server", []string{"-driver", "mysql"})
	require.ErrorContains(t, err, "unknown driver")

	t.Setenv("SERVICELOG_DEV", "maybe")
	_, err = LoadServer("server", nil)
	require.ErrorContains(t, err, "SERVICELOG_DEV")

	_, err = LoadServer("server", []string{"-config", filepath.Join(t.TempDir(), "missing.yaml")})
	require.ErrorContains(t, err, "read config")
}

func TestLoadCLI(t *testing.T) {
	path := writeYAML(t, "addr: example:443\ntimeout: 5s\nredis_db: 2\n")
	t.Setenv("GEMINI_API_KEY", "from-env")

	cfg, rest, err := LoadCLI("servicelog", []string{"-config", path, "-v", "clients", "list", "-q", "acme"})
	require.NoError(t, err)
	require.Equal(t, []string{"clients", "list", "-q", "acme"}, rest)
	require.Equal(t, "example:443", cfg.Addr)
	require.Equal(t, 5*time.Second, cfg.Timeout)
	require.Equal(t, 2, cfg.RedisDB)
	require.Equal(t, "from-env", cfg.GeminiKey)
	require.True(t, cfg.Verbose)
}

func TestLoadCLI_BadFlag(t *testing.T) {
	_, _, err := LoadCLI("servicelog", []string{"-nope"})
	require.Error(t, err)
}
