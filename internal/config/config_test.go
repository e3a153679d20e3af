package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shared-finance-go/pkg/logger"
)

func testLogger() logger.Logger {
	return logger.New(io.Discard, slog.LevelError, "text")
}

func TestParseDotEnvLine(t *testing.T) {
	cases := []struct {
		line  string
		key   string
		value string
		ok    bool
	}{
		{line: "HTTP_PORT=9090", key: "HTTP_PORT", value: "9090", ok: true},
		{line: "export DB_DRIVER=sqlite", key: "DB_DRIVER", value: "sqlite", ok: true},
		{line: `AUTH_JWT_SECRET="a b\tc"`, key: "AUTH_JWT_SECRET", value: "a b\tc", ok: true},
		{line: "APP_TIMEZONE='America/Argentina/Buenos_Aires'", key: "APP_TIMEZONE", value: "America/Argentina/Buenos_Aires", ok: true},
		{line: "CACHE_DRIVER=redis # shared", key: "CACHE_DRIVER", value: "redis", ok: true},
		{line: "COLOR=#fff", key: "COLOR", value: "#fff", ok: true},
		{line: "# comment"},
		{line: "   "},
		{line: "=value"},
	}

	for _, tc := range cases {
		entry, ok := parseDotEnvLine(tc.line)
		assert.Equal(t, tc.ok, ok, tc.line)
		if tc.ok {
			assert.Equal(t, tc.key, entry.key, tc.line)
			assert.Equal(t, tc.value, entry.value, tc.line)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(dotenvPathEnv, filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("AUTH_JWT_SECRET", "secret")

	cfg, err := Load(testLogger(), "")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 30*time.Second, cfg.HTTP.RequestTimeout)
	assert.Equal(t, DBDriverPostgres, cfg.DB.Driver)
	assert.Equal(t, CacheDriverMemory, cfg.Cache.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
}

func TestLoadEnvOverridesDotEnv(t *testing.T) {
	path := writeDotEnv(t, "HTTP_PORT=9000\nDB_DRIVER=sqlite\nHTTP_CORS_ORIGINS=http://a.test, http://b.test\nAUTH_SKIP=true\n")
	t.Setenv(dotenvPathEnv, path)
	t.Setenv("HTTP_PORT", "7000")
	t.Setenv("APP_TIMEZONE", "UTC")

	// Variables set by the dotenv loader leak into the process; clean them up.
	t.Cleanup(func() {
		_ = os.Unsetenv("DB_DRIVER")
		_ = os.Unsetenv("HTTP_CORS_ORIGINS")
		_ = os.Unsetenv("AUTH_SKIP")
	})

	cfg, err := Load(testLogger(), "")
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.HTTP.Port)
	assert.Equal(t, DBDriverSQLite, cfg.DB.Driver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.HTTP.CORSOrigins)
	assert.True(t, cfg.Auth.SkipAuth)
	assert.Equal(t, "shared-finance.db", cfg.DB.GetDSN())
}

func TestLoadRejectsUnknownDrivers(t *testing.T) {
	t.Setenv(dotenvPathEnv, writeDotEnv(t, ""))
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("CACHE_DRIVER", "memcached")

	_, err := Load(testLogger(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache driver")
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv(dotenvPathEnv, writeDotEnv(t, ""))
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load(testLogger(), "")
	require.Error(t, err)
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv(dotenvPathEnv, writeDotEnv(t, ""))
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auth:\n  jwt_secret: from-file\ncache:\n  driver: none\n"), 0o600))

	cfg, err := Load(testLogger(), path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Auth.JWTSecret)
	assert.Equal(t, CacheDriverNone, cfg.Cache.Driver)
}

func writeDotEnv(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}
