package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	httpclient "github.com/piresc/tripstats/internal/pkg/http"
	"github.com/piresc/tripstats/internal/pkg/middleware"
	"github.com/piresc/tripstats/internal/pkg/models"
	"github.com/piresc/tripstats/internal/pkg/retry"
	"github.com/piresc/tripstats/services/trips/handler"
	"github.com/piresc/tripstats/services/trips/repository/memory"
	"github.com/piresc/tripstats/services/trips/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// startServer runs the trips routes over a real in-memory store
func startServer(t *testing.T, apiKey string, clock func() time.Time) *httptest.Server {
	t.Helper()

	var opts []usecase.Option
	if clock != nil {
		opts = append(opts, usecase.WithClock(clock))
	}
	return serveStore(t, apiKey, usecase.NewTripStore(usecase.NewMemoryStores(nil), opts...))
}

func serveStore(t *testing.T, apiKey string, store *usecase.TripStore) *httptest.Server {
	t.Helper()

	cfg := &models.Config{Trips: models.TripsConfig{APIKey: apiKey}}
	h := handler.NewHandler(store, nil, cfg, nil, nil)

	e := echo.New()
	e.Use(middleware.RequestIDMiddleware())
	h.RegisterRoutes(e, middleware.NewWorkerPool(8, time.Second, nil))

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func pt(lat, lng float64) models.Point {
	return models.Point{Latitude: lat, Longitude: lng}
}

// Mirrors the reference test client fixture end to end over HTTP.
func TestTripClient_FixtureScenario(t *testing.T) {
	ctx := context.Background()
	fixed := time.Unix(1_700_000_000, 0)
	srv := startServer(t, "", func() time.Time { return fixed })
	c := NewTripClient(srv.URL, "", time.Second, nil)

	rect := models.GeoRect{TopLeft: pt(1, 2), BottomRight: pt(3, 4)}

	require.NoError(t, c.BeginTrip(ctx, 7, pt(1.01, 2.02)))
	require.NoError(t, c.BeginTrip(ctx, 11, pt(5, 6)))

	passed, err := c.NumTripsPassed(ctx, rect)
	require.NoError(t, err)
	assert.Equal(t, int32(1), passed)

	require.NoError(t, c.EndTrip(ctx, 7, pt(7, 8), 13.5))

	fare, err := c.NumTripsStartedOrStoppedAndFare(ctx, rect)
	require.NoError(t, err)
	assert.Equal(t, models.NumFare{NumTrips: 1, DollarFare: 13.5}, fare)

	now := fixed.Unix()
	occurring, err := c.NumOccurringTrips(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int32(1), occurring)

	require.NoError(t, c.EndTrip(ctx, 11, pt(7, 8), 3.5))

	occurring, err = c.NumOccurringTrips(ctx, now+10)
	require.NoError(t, err)
	assert.Equal(t, int32(0), occurring)
}

func TestTripClient_ConcurrentTrips(t *testing.T) {
	ctx := context.Background()
	srv := startServer(t, "", nil)
	c := NewTripClient(srv.URL, "", 5*time.Second, nil)

	const n = 40
	var g errgroup.Group
	for i := 0; i < n; i++ {
		id := models.TripID(i)
		g.Go(func() error {
			if err := c.BeginTrip(ctx, id, pt(45, 90)); err != nil {
				return err
			}
			if err := c.UpdateTrip(ctx, id, pt(46, 91)); err != nil {
				return err
			}
			return c.EndTrip(ctx, id, pt(47, 92), 2)
		})
	}
	require.NoError(t, g.Wait())

	rect := models.GeoRect{TopLeft: pt(45, 90), BottomRight: pt(55, 100)}
	passed, err := c.NumTripsPassed(ctx, rect)
	require.NoError(t, err)
	assert.Equal(t, int32(n), passed)

	fare, err := c.NumTripsStartedOrStoppedAndFare(ctx, rect)
	require.NoError(t, err)
	assert.Equal(t, models.NumFare{NumTrips: n, DollarFare: 2 * n}, fare)
}

// unavailableLedger rejects every fare write
type unavailableLedger struct {
	*memory.FareLedger
	sets atomic.Int32
}

func (l *unavailableLedger) Set(context.Context, models.TripID, float64) error {
	l.sets.Add(1)
	return errors.New("fare backend unavailable")
}

func TestTripClient_FailedEndTripIsAppliedAtMostOnce(t *testing.T) {
	ctx := context.Background()
	fixed := time.Unix(1_700_000_000, 0)

	ledger := &unavailableLedger{FareLedger: memory.NewFareLedger()}
	stores := usecase.NewMemoryStores(ledger)
	store := usecase.NewTripStore(stores, usecase.WithClock(func() time.Time { return fixed }))
	srv := serveStore(t, "", store)

	c := NewTripClient(srv.URL, "", time.Second, retry.New(retry.Config{
		MaxRetries: 3,
		BaseDelay:  time.Millisecond,
		MaxDelay:   2 * time.Millisecond,
		Multiplier: 2,
	}))

	require.NoError(t, c.BeginTrip(ctx, 1, pt(1, 1)))

	err := c.EndTrip(ctx, 1, pt(2, 2), 5)
	var statusErr *httpclient.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Equal(t, int32(1), ledger.sets.Load())

	// only the begin call left a mark
	assert.Len(t, stores.Points.Snapshot(), 1)
	assert.Empty(t, stores.Ends.Snapshot())
	assert.Equal(t, int32(1), stores.Occupancy.Active())

	occurring, err := c.NumOccurringTrips(ctx, fixed.Unix())
	require.NoError(t, err)
	assert.Equal(t, int32(1), occurring)

	endRect := models.GeoRect{TopLeft: pt(1.5, 1.5), BottomRight: pt(3, 3)}
	fare, err := c.NumTripsStartedOrStoppedAndFare(ctx, endRect)
	require.NoError(t, err)
	assert.Equal(t, models.NumFare{}, fare)
}

func TestTripClient_APIKey(t *testing.T) {
	ctx := context.Background()
	srv := startServer(t, "secret", nil)

	err := NewTripClient(srv.URL, "wrong", time.Second, nil).BeginTrip(ctx, 1, pt(0, 0))
	var statusErr *httpclient.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.Code)

	assert.NoError(t, NewTripClient(srv.URL, "secret", time.Second, nil).BeginTrip(ctx, 1, pt(0, 0)))
}

func TestRectQuery(t *testing.T) {
	q := rectQuery(models.GeoRect{TopLeft: pt(1.5, -2), BottomRight: pt(3, 4.25)})
	assert.Equal(t, "bottom_right_lat=3&bottom_right_lng=4.25&top_left_lat=1.5&top_left_lng=-2", q)
	assert.Equal(t, "/v1/trips/-4/end", tripPath(-4, "end"))
}
