package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewZapLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "trips.log")

	zl, err := NewZapLogger(ZapConfig{Level: "debug", FilePath: path, ServiceName: "trips-test"}, nil)
	require.NoError(t, err)

	zl.Info("trip started", Int64("trip_id", 7), Float64("latitude", 1.01))
	zl.LogHTTPRequest(nil, "GET", "/v1/trips/passed", "127.0.0.1", "req-1", 500, 3*time.Millisecond, errors.New("boom"))
	require.NoError(t, zl.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, `"message":"trip started"`)
	assert.Contains(t, content, `"trip_id":7`)
	assert.Contains(t, content, `"service":"trips-test"`)
	assert.Contains(t, content, `"request_id":"req-1"`)
	assert.Contains(t, content, `"status":500`)
}

func TestNewZapLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trips.log")

	zl, err := NewZapLogger(ZapConfig{Level: "loud", FilePath: path}, nil)
	require.NoError(t, err)

	zl.Debug("hidden")
	zl.Info("visible")
	require.NoError(t, zl.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "visible")
}

func TestGlobalLogger(t *testing.T) {
	nop := NewNopZapLogger()
	SetGlobalLogger(nop)
	t.Cleanup(func() { SetGlobalLogger(nil) })

	assert.Same(t, nop, GetGlobalLogger())
	assert.NotPanics(t, func() {
		Info("info", String("k", "v"))
		Warn("warn")
		Debug("debug")
		Error("error", Err(errors.New("x")))
	})
}
