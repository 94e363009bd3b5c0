package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/piresc/tripstats/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg := InitConfig("")

	assert.Equal(t, "trips-service", cfg.App.Name)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 300, cfg.Trips.WorkerCount)
	assert.Equal(t, models.FareBackendMemory, cfg.Trips.FareBackend)
	assert.Empty(t, cfg.NATS.URL)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.False(t, cfg.NewRelic.Enabled)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestInitConfig_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("TRIPS_WORKER_COUNT", "16")
	t.Setenv("TRIPS_FARE_BACKEND", "REDIS")
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("NATS_URL", "nats://nats:4222")

	cfg := InitConfig("")

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, 16, cfg.Trips.WorkerCount)
	assert.Equal(t, models.FareBackendRedis, cfg.Trips.FareBackend)
	assert.Equal(t, "redis.internal", cfg.Redis.Host)
	assert.Equal(t, "nats://nats:4222", cfg.NATS.URL)
}

func TestInitConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("TRIPS_WORKER_COUNT", "-4")
	t.Setenv("TRIPS_FARE_BACKEND", "cassandra")
	t.Setenv("SERVER_PORT", "not-a-port")

	cfg := InitConfig("")

	assert.Equal(t, 300, cfg.Trips.WorkerCount)
	assert.Equal(t, models.FareBackendMemory, cfg.Trips.FareBackend)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestInitConfig_LoadsEnvFileLocally(t *testing.T) {
	t.Setenv("APP_ENV", "local")
	path := filepath.Join(t.TempDir(), "trips.env")
	require.NoError(t, os.WriteFile(path, []byte("TRIPS_API_KEY=secret\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("TRIPS_API_KEY") })

	cfg := InitConfig(path)

	assert.Equal(t, "secret", cfg.Trips.APIKey)
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("SOME_INTERVAL", "1500ms")
	t.Setenv("BAD_INTERVAL", "soon")

	assert.Equal(t, 1500*time.Millisecond, GetEnvAsDuration("SOME_INTERVAL", time.Second))
	assert.Equal(t, time.Second, GetEnvAsDuration("BAD_INTERVAL", time.Second))
	assert.Equal(t, 2*time.Second, GetEnvAsDuration("MISSING_INTERVAL", 2*time.Second))
}
