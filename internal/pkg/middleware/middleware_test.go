package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/tripstats/internal/pkg/logger"
	"github.com/piresc/tripstats/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func bufferedLogger(buf *bytes.Buffer) *logger.ZapLogger {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(buf),
		zapcore.DebugLevel,
	)
	return &logger.ZapLogger{Logger: zap.New(core)}
}

func TestRequestIDMiddleware(t *testing.T) {
	e := echo.New()
	e.Use(RequestIDMiddleware())
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("generates an id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rec.Header().Get(echo.HeaderXRequestID)
		assert.Len(t, id, 36)
		assert.Equal(t, id, rec.Body.String())
	})

	t.Run("keeps the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderXRequestID, "abc-123")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", rec.Header().Get(echo.HeaderXRequestID))
		assert.Equal(t, "abc-123", rec.Body.String())
	})
}

func TestPanicRecoveryWithZapMiddleware(t *testing.T) {
	tests := []struct {
		name         string
		panicValue   interface{}
		expectInLogs []string
	}{
		{
			name:         "string panic",
			panicValue:   "test panic message",
			expectInLogs: []string{"test panic message", "stack_trace", "Panic recovered during request processing"},
		},
		{
			name:         "error panic",
			panicValue:   errors.New("test error panic"),
			expectInLogs: []string{"test error panic", "*errors.errorString"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuffer bytes.Buffer
			e := echo.New()
			handler := PanicRecoveryWithZapMiddleware(bufferedLogger(&logBuffer))(func(c echo.Context) error {
				panic(tt.panicValue)
			})

			req := httptest.NewRequest(http.MethodGet, "/v1/trips/passed", nil)
			req.Header.Set("User-Agent", "test-agent")
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := handler(c)
			assert.NoError(t, err)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)

			var resp utils.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)

			logOutput := logBuffer.String()
			for _, expected := range tt.expectInLogs {
				assert.Contains(t, logOutput, expected)
			}
			assert.Contains(t, logOutput, "/v1/trips/passed")
			assert.Contains(t, logOutput, "test-agent")
		})
	}

	t.Run("requires a logger", func(t *testing.T) {
		assert.Panics(t, func() { PanicRecoveryWithZapMiddleware(nil) })
	})
}

func TestValidateAPIKey(t *testing.T) {
	tests := []struct {
		name           string
		configuredKey  string
		headerKey      string
		expectedStatus int
	}{
		{name: "disabled when empty", configuredKey: "", headerKey: "", expectedStatus: http.StatusOK},
		{name: "missing header", configuredKey: "secret", headerKey: "", expectedStatus: http.StatusUnauthorized},
		{name: "wrong key", configuredKey: "secret", headerKey: "nope", expectedStatus: http.StatusUnauthorized},
		{name: "valid key", configuredKey: "secret", headerKey: "secret", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.GET("/", func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			}, ValidateAPIKey(tt.configuredKey))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.headerKey != "" {
				req.Header.Set(APIKeyHeader, tt.headerKey)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestNewRelicMiddleware(t *testing.T) {
	t.Run("nil app passes through", func(t *testing.T) {
		e := echo.New()
		e.Use(NewRelicMiddleware(nil))
		e.GET("/", func(c echo.Context) error {
			assert.Nil(t, newrelic.FromContext(c.Request().Context()))
			return c.NoContent(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("transaction in request context", func(t *testing.T) {
		app, err := newrelic.NewApplication(
			newrelic.ConfigAppName("trips-test"),
			newrelic.ConfigLicense("0000000000000000000000000000000000000000"),
			newrelic.ConfigEnabled(false),
		)
		require.NoError(t, err)

		e := echo.New()
		e.Use(NewRelicMiddleware(app))
		e.GET("/v1/trips/:tripID", func(c echo.Context) error {
			assert.NotNil(t, newrelic.FromContext(c.Request().Context()))
			SetTripID(c, 7)
			return c.NoContent(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/trips/7", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

type countingObserver struct {
	acquired, released, rejected atomic.Int32
}

func (o *countingObserver) WorkerAcquired() { o.acquired.Add(1) }
func (o *countingObserver) WorkerReleased() { o.released.Add(1) }
func (o *countingObserver) WorkerRejected() { o.rejected.Add(1) }

func TestWorkerPool(t *testing.T) {
	t.Run("default size", func(t *testing.T) {
		assert.Equal(t, DefaultWorkerCount, NewWorkerPool(0, 0, nil).Size())
		assert.Equal(t, DefaultWorkerCount, NewWorkerPool(-3, 0, nil).Size())
		assert.Equal(t, 4, NewWorkerPool(4, 0, nil).Size())
	})

	t.Run("bounds concurrency", func(t *testing.T) {
		const size = 3
		pool := NewWorkerPool(size, 0, nil)

		var inFlight, peak atomic.Int32
		e := echo.New()
		e.Use(pool.Middleware())
		e.GET("/", func(c echo.Context) error {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			inFlight.Add(-1)
			return c.NoContent(http.StatusOK)
		})

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				rec := httptest.NewRecorder()
				e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
				assert.Equal(t, http.StatusOK, rec.Code)
			}()
		}
		wg.Wait()

		assert.LessOrEqual(t, peak.Load(), int32(size))
		assert.Greater(t, peak.Load(), int32(0))
	})

	t.Run("rejects when no slot frees in time", func(t *testing.T) {
		obs := &countingObserver{}
		pool := NewWorkerPool(1, 20*time.Millisecond, obs)

		release, err := pool.Acquire(context.Background())
		require.NoError(t, err)

		e := echo.New()
		e.Use(pool.Middleware())
		e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		release()

		rec = httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)

		assert.Equal(t, int32(2), obs.acquired.Load())
		assert.Equal(t, int32(2), obs.released.Load())
		assert.Equal(t, int32(1), obs.rejected.Load())
	})
}
