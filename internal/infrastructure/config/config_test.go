package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "money-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "USD", cfg.App.DefaultCurrency)
		assert.Equal(t, DriverSQLite, cfg.Database.Driver)
		assert.Equal(t, "money.db", cfg.Database.Path)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.False(t, cfg.Redis.Enabled)
		assert.False(t, cfg.Event.Async)
		assert.True(t, cfg.Event.IdempotencyEnabled)
		assert.Equal(t, 256, cfg.Event.BufferSize)
		assert.Equal(t, 24*time.Hour, cfg.Event.IdempotencyTTL)
		assert.True(t, cfg.Telemetry.MetricsEnabled)
		assert.Equal(t, "money-backend", cfg.Telemetry.ServiceName)
	})

	t.Run("loads values from environment variables with MONEY prefix", func(t *testing.T) {
		t.Setenv("MONEY_APP_PORT", "9000")
		t.Setenv("MONEY_APP_DEFAULT_CURRENCY", "EUR")
		t.Setenv("MONEY_DATABASE_DRIVER", "postgres")
		t.Setenv("MONEY_DATABASE_HOST", "testdb.local")
		t.Setenv("MONEY_DATABASE_PORT", "5433")
		t.Setenv("MONEY_REDIS_ENABLED", "true")
		t.Setenv("MONEY_EVENT_ASYNC", "true")
		t.Setenv("MONEY_EVENT_BUFFER_SIZE", "16")
		t.Setenv("MONEY_EVENT_IDEMPOTENCY_ENABLED", "false")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "EUR", cfg.App.DefaultCurrency)
		assert.Equal(t, DriverPostgres, cfg.Database.Driver)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.True(t, cfg.Redis.Enabled)
		assert.True(t, cfg.Event.Async)
		assert.Equal(t, 16, cfg.Event.BufferSize)
		assert.False(t, cfg.Event.IdempotencyEnabled)
	})
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		msg  string
	}{
		{
			name: "unknown driver",
			env:  map[string]string{"MONEY_DATABASE_DRIVER": "mysql"},
			msg:  "database.driver",
		},
		{
			name: "idle connections exceed open connections",
			env: map[string]string{
				"MONEY_DATABASE_MAX_OPEN_CONNS": "10",
				"MONEY_DATABASE_MAX_IDLE_CONNS": "20",
			},
			msg: "cannot exceed",
		},
		{
			name: "negative idle connections",
			env:  map[string]string{"MONEY_DATABASE_MAX_IDLE_CONNS": "-1"},
			msg:  "cannot be negative",
		},
		{
			name: "bad currency code",
			env:  map[string]string{"MONEY_APP_DEFAULT_CURRENCY": "euro"},
			msg:  "app.default_currency",
		},
		{
			name: "negative buffer",
			env:  map[string]string{"MONEY_EVENT_BUFFER_SIZE": "-4"},
			msg:  "event.buffer_size",
		},
		{
			name: "sampling ratio out of range",
			env:  map[string]string{"MONEY_TELEMETRY_SAMPLING_RATIO": "1.5"},
			msg:  "sampling_ratio",
		},
		{
			name: "memory store in production",
			env: map[string]string{
				"MONEY_APP_ENV":         "production",
				"MONEY_DATABASE_DRIVER": "memory",
			},
			msg: "not allowed in production",
		},
		{
			name: "plaintext postgres in production",
			env: map[string]string{
				"MONEY_APP_ENV":         "production",
				"MONEY_DATABASE_DRIVER": "postgres",
			},
			msg: "sslmode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[app]
default_currency = "CZK"

[database]
driver = "memory"

[event]
async = true
idempotency_ttl = "2h"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "CZK", cfg.App.DefaultCurrency)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.True(t, cfg.Event.Async)
	assert.Equal(t, 2*time.Hour, cfg.Event.IdempotencyTTL)

	t.Run("env still overrides the file", func(t *testing.T) {
		t.Setenv("MONEY_DATABASE_DRIVER", "sqlite")
		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "nope.toml"))
		assert.Error(t, err)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "money",
		Password: "p@ss word",
		DBName:   "ledger",
		SSLMode:  "require",
	}
	assert.Equal(t, "postgres://money:p%40ss%20word@db:5432/ledger?sslmode=require", cfg.DSN())
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", cfg.Addr())
}
