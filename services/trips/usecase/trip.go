package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/piresc/tripstats/internal/pkg/logger"
	"github.com/piresc/tripstats/internal/pkg/models"
	nrpkg "github.com/piresc/tripstats/internal/pkg/newrelic"
	"github.com/piresc/tripstats/internal/utils"
	"github.com/piresc/tripstats/services/trips"
	"github.com/piresc/tripstats/services/trips/repository/memory"
)

// Metrics receives trip store measurements. Optional.
type Metrics interface {
	TripEvent(kind string)
	SetActiveTrips(n int32)
	ObserveQuery(query string, d time.Duration)
}

// Stores groups the collections a TripStore is built from.
type Stores struct {
	Points    trips.PointLog
	Begins    trips.PointLog
	Ends      trips.PointLog
	Fares     trips.FareLedger
	Occupancy trips.OccupancyTimeline
}

// NewMemoryStores builds in-process stores. A nil fares falls back to an
// in-process ledger.
func NewMemoryStores(fares trips.FareLedger) Stores {
	if fares == nil {
		fares = memory.NewFareLedger()
	}
	lifecycle := memory.NewLifecycleIndex()
	return Stores{
		Points:    memory.NewTripPointLog(),
		Begins:    lifecycle.Begins,
		Ends:      lifecycle.Ends,
		Fares:     fares,
		Occupancy: memory.NewOccupancyTimeline(),
	}
}

// Option configures a TripStore
type Option func(*TripStore)

// WithMetrics reports events and query latency to m
func WithMetrics(m Metrics) Option {
	return func(s *TripStore) { s.metrics = m }
}

// WithClock replaces the wall clock used to stamp occupancy samples
func WithClock(now func() time.Time) Option {
	return func(s *TripStore) { s.now = now }
}

// TripStore implements trips.TripUC on top of the append-only stores.
// All methods are safe for concurrent use.
type TripStore struct {
	stores  Stores
	metrics Metrics
	now     func() time.Time
}

var _ trips.TripUC = (*TripStore)(nil)

// NewTripStore creates a trip store over stores
func NewTripStore(stores Stores, opts ...Option) *TripStore {
	s := &TripStore{
		stores: stores,
		now:    models.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics != nil {
		s.metrics.SetActiveTrips(stores.Occupancy.Active())
	}
	return s
}

// BeginTrip logs the starting point of tripID and counts it as active
func (s *TripStore) BeginTrip(ctx context.Context, tripID models.TripID, point models.Point) error {
	tp := models.TripPoint{TripID: tripID, Point: point}
	s.stores.Points.Append(tp)
	s.stores.Begins.Append(tp)
	sample := s.stores.Occupancy.Adjust(+1, s.now().Unix())

	s.recordEvent(ctx, models.TripEventBegin, tp, sample)
	return nil
}

// UpdateTrip logs an intermediate point of tripID
func (s *TripStore) UpdateTrip(ctx context.Context, tripID models.TripID, point models.Point) error {
	tp := models.TripPoint{TripID: tripID, Point: point}
	s.stores.Points.Append(tp)

	if s.metrics != nil {
		s.metrics.TripEvent(string(models.TripEventUpdate))
	}
	logger.DebugCtx(ctx, "Trip updated",
		logger.Int64("trip_id", int64(tripID)),
		logger.String("geohash", utils.EncodePoint(point)))
	return nil
}

// EndTrip records the fare of tripID, replacing any earlier fare for the same
// trip, then logs its final point and stops counting it as active. When the
// fare cannot be recorded nothing else is logged, so a retried call does not
// end the trip twice.
func (s *TripStore) EndTrip(ctx context.Context, tripID models.TripID, point models.Point, dollarAmount float64) error {
	err := nrpkg.WithSegment(ctx, "TripStore.SetFare", func() error {
		return s.stores.Fares.Set(ctx, tripID, dollarAmount)
	})
	if err != nil {
		logger.ErrorCtx(ctx, "Failed to record trip fare",
			logger.Int64("trip_id", int64(tripID)),
			logger.Float64("dollar_amount", dollarAmount),
			logger.Err(err))
		return fmt.Errorf("failed to end trip %d: %w", tripID, err)
	}

	tp := models.TripPoint{TripID: tripID, Point: point}
	s.stores.Points.Append(tp)
	s.stores.Ends.Append(tp)
	sample := s.stores.Occupancy.Adjust(-1, s.now().Unix())

	s.recordEvent(ctx, models.TripEventEnd, tp, sample)
	return nil
}

// NumTripsPassed counts distinct trips with any logged point inside rect
func (s *TripStore) NumTripsPassed(ctx context.Context, rect models.GeoRect) (int32, error) {
	defer s.observe("num_trips_passed", time.Now())

	n := countTripsPassed(s.stores.Points.Snapshot(), rect)

	logger.InfoCtx(ctx, "Trips passed through rect",
		logger.Any("rect", rect),
		logger.Int32("num_trips", n))
	return n, nil
}

// NumTripsStartedOrStoppedAndFare counts distinct trips that began or ended
// inside rect and sums their fares. Trips still running contribute 0.
func (s *TripStore) NumTripsStartedOrStoppedAndFare(ctx context.Context, rect models.GeoRect) (models.NumFare, error) {
	defer s.observe("num_trips_started_or_stopped", time.Now())

	ids := startedOrStopped(s.stores.Begins.Snapshot(), s.stores.Ends.Snapshot(), rect)

	fares, err := nrpkg.WithSegmentAndReturn(ctx, "TripStore.Fares", func() (map[models.TripID]float64, error) {
		return s.stores.Fares.Fares(ctx, ids)
	})
	if err != nil {
		return models.NumFare{}, fmt.Errorf("failed to sum fares: %w", err)
	}

	result := models.NumFare{
		NumTrips:   int32(len(ids)),
		DollarFare: sumFares(ids, fares),
	}

	logger.InfoCtx(ctx, "Trips started or stopped in rect",
		logger.Any("rect", rect),
		logger.Int32("num_trips", result.NumTrips),
		logger.Float64("dollar_fare", result.DollarFare))
	return result, nil
}

// NumOccurringTrips returns how many trips were active at timestamp (unix seconds)
func (s *TripStore) NumOccurringTrips(ctx context.Context, timestamp int64) (int32, error) {
	defer s.observe("num_occurring_trips", time.Now())

	n := s.stores.Occupancy.AtOrBefore(timestamp)

	logger.InfoCtx(ctx, "Trips occurring",
		logger.Int64("timestamp", timestamp),
		logger.Int32("num_trips", n))
	return n, nil
}

func (s *TripStore) recordEvent(ctx context.Context, kind models.TripEventKind, tp models.TripPoint, sample models.OccupancySample) {
	if s.metrics != nil {
		s.metrics.TripEvent(string(kind))
		s.metrics.SetActiveTrips(sample.ActiveCount)
	}
	logger.DebugCtx(ctx, "Trip "+string(kind),
		logger.Int64("trip_id", int64(tp.TripID)),
		logger.String("geohash", utils.EncodePoint(tp.Point)),
		logger.Int32("active_trips", sample.ActiveCount),
		logger.Uint64("seq", sample.Seq))
}

func (s *TripStore) observe(query string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveQuery(query, time.Since(start))
	}
}
