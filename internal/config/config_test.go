package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, "local", cfg.Storage.Provider)
	assert.Equal(t, 200, cfg.Upload.MaxFiles)
	assert.Equal(t, int64(20), cfg.Upload.MaxFileSizeMB)
	assert.Equal(t, 3, cfg.Queue.MaxRetries)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.NotEmpty(t, cfg.CORS.AllowedOrigins)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PEAKBRIDGE_SERVER_PORT", ":9999")
	t.Setenv("PEAKBRIDGE_DB_HOST", "db.internal")
	t.Setenv("PEAKBRIDGE_JWT_SECRET", "super-secret")
	t.Setenv("PEAKBRIDGE_QUEUE_CONCURRENCY", "8")
	t.Setenv("PEAKBRIDGE_EMAIL_NOTIFY_TO", "accounting@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "super-secret", cfg.JWT.Secret)
	assert.Equal(t, 8, cfg.Queue.Concurrency)
	assert.Equal(t, "accounting@example.com", cfg.Email.NotifyTo)
}

func TestLoadPaaSPortFallback(t *testing.T) {
	t.Setenv("PORT", "7001")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7001", cfg.Server.Port)
}

func TestDSN(t *testing.T) {
	cfg := DBConfig{
		Host: "localhost", Port: 5432, User: "peakbridge",
		Password: "pw", Name: "peakbridge_db", SSLMode: "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "localhost")
	assert.Contains(t, dsn, "5432")
	assert.Contains(t, dsn, "peakbridge_db")
	assert.Contains(t, dsn, "sslmode=disable")
}
