package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PLANNER_CONFIG", "PORT", "LOG_LEVEL", "STORE_DRIVER", "SQLITE_PATH", "BLOB_TABLE",
		"DB_HOST", "DB_NAME", "REDIS_HOST", "REDIS_DB", "JWT_SECRET", "OWNER_PASSWORD_HASH",
		"RATE_WINDOW", "RECONCILE_INTERVAL", "TIMEZONE", "CACHE_TTL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("", "")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "planner_blobs", cfg.Store.BlobTable)
	assert.Equal(t, 5*time.Minute, cfg.ReconcileInterval)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "planner.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(`
port = "9000"
log_level = "debug"
reconcile_interval = "1m"

[store]
driver = "memory"

[redis]
host = "cache.local"
`), 0o600))

	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("PORT=9100\n"), 0o600))

	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(tomlPath, envPath)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Port, ".env overrides the TOML file")
	assert.Equal(t, "warn", cfg.LogLevel, "environment overrides the TOML file")
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, time.Minute, cfg.ReconcileInterval)
	assert.True(t, cfg.Redis.Enabled())
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	clearEnv(t)

	_, err := Load("", filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "Unknown driver", env: map[string]string{"STORE_DRIVER": "floppy"}},
		{name: "Redis driver without host", env: map[string]string{"STORE_DRIVER": "redis"}},
		{name: "Bad duration", env: map[string]string{"RATE_WINDOW": "soon"}},
		{name: "Bad number", env: map[string]string{"REDIS_DB": "one"}},
		{name: "Password hash without secret", env: map[string]string{"OWNER_PASSWORD_HASH": "$2a$12$abc"}},
		{name: "Unknown timezone", env: map[string]string{"TIMEZONE": "Mars/Olympus_Mons"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load("", "")
			assert.Error(t, err)
		})
	}
}

func TestPostgresConfig_DSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "n"}
	assert.Equal(t, "postgres://u:p@db:5432/n?sslmode=disable", p.DSN())
}
