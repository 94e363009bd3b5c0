package main

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/piresc/tripstats/internal/pkg/constants"
	"github.com/piresc/tripstats/internal/pkg/logger"
	"github.com/piresc/tripstats/internal/pkg/models"
	"github.com/piresc/tripstats/internal/utils"
	"github.com/piresc/tripstats/services/trips"
	"golang.org/x/sync/errgroup"
)

var (
	startPoint = models.Point{Latitude: 45, Longitude: 90}
	queryRect  = models.GeoRect{
		TopLeft:     models.Point{Latitude: 45, Longitude: 90},
		BottomRight: models.Point{Latitude: 55, Longitude: 100},
	}
)

// EventPublisher sends a trip event to a subject
type EventPublisher interface {
	PublishJSON(subject string, message interface{}) error
}

// publisherWriter records trip events by publishing them instead of calling
// the RPC surface. Queries still go through the embedded TripUC.
type publisherWriter struct {
	trips.TripUC
	pub EventPublisher
}

func (w *publisherWriter) BeginTrip(_ context.Context, tripID models.TripID, point models.Point) error {
	return w.pub.PublishJSON(constants.SubjectTripBegin, models.TripEvent{
		TripID: tripID, Kind: models.TripEventBegin, Point: point,
	})
}

func (w *publisherWriter) UpdateTrip(_ context.Context, tripID models.TripID, point models.Point) error {
	return w.pub.PublishJSON(constants.SubjectTripUpdate, models.TripEvent{
		TripID: tripID, Kind: models.TripEventUpdate, Point: point,
	})
}

func (w *publisherWriter) EndTrip(_ context.Context, tripID models.TripID, point models.Point, dollarAmount float64) error {
	return w.pub.PublishJSON(constants.SubjectTripEnd, models.TripEvent{
		TripID: tripID, Kind: models.TripEventEnd, Point: point, DollarAmount: dollarAmount,
	})
}

// Simulator drives concurrent random-walk trips against a trips service
type Simulator struct {
	tripUC      trips.TripUC
	trips       int
	updates     int
	firstTripID models.TripID

	mu    sync.Mutex
	rng   *rand.Rand
	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

// NewSimulator creates a simulator running count trips of updates steps each,
// numbered from firstTripID.
func NewSimulator(tripUC trips.TripUC, count, updates int, firstTripID models.TripID) *Simulator {
	return &Simulator{
		tripUC:      tripUC,
		trips:       count,
		updates:     updates,
		firstTripID: firstTripID,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep:       sleepCtx,
		now:         models.Now,
	}
}

// Run starts every trip concurrently and waits for all of them
func (s *Simulator) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < s.trips; i++ {
		tripID := s.firstTripID + models.TripID(i)
		g.Go(func() error {
			return s.runTrip(ctx, tripID)
		})
	}
	return g.Wait()
}

func (s *Simulator) runTrip(ctx context.Context, tripID models.TripID) error {
	// stagger start by up to a second
	if err := s.sleep(ctx, time.Duration(s.intn(1000))*time.Millisecond); err != nil {
		return err
	}

	point := startPoint
	if err := s.tripUC.BeginTrip(ctx, tripID, point); err != nil {
		return fmt.Errorf("begin trip %d: %w", tripID, err)
	}

	for i := 0; i < s.updates; i++ {
		// 0.1 to 2 seconds between updates
		if err := s.sleep(ctx, time.Duration(100*(1+s.intn(20)))*time.Millisecond); err != nil {
			return err
		}
		point = s.step(point)
		if err := s.tripUC.UpdateTrip(ctx, tripID, point); err != nil {
			return fmt.Errorf("update trip %d: %w", tripID, err)
		}
	}

	point = s.step(point)
	// the fare is the trip duration in update steps
	if err := s.tripUC.EndTrip(ctx, tripID, point, float64(s.updates)); err != nil {
		return fmt.Errorf("end trip %d: %w", tripID, err)
	}
	logger.Debug("Trip finished",
		logger.Int64("trip_id", int64(tripID)),
		logger.String("geohash", utils.EncodePoint(point)))

	return s.report(ctx, tripID)
}

func (s *Simulator) report(ctx context.Context, tripID models.TripID) error {
	passed, err := s.tripUC.NumTripsPassed(ctx, queryRect)
	if err != nil {
		return fmt.Errorf("num trips passed: %w", err)
	}
	nf, err := s.tripUC.NumTripsStartedOrStoppedAndFare(ctx, queryRect)
	if err != nil {
		return fmt.Errorf("num trips started or stopped: %w", err)
	}
	ts := s.now().Unix()
	occurring, err := s.tripUC.NumOccurringTrips(ctx, ts)
	if err != nil {
		return fmt.Errorf("num occurring trips: %w", err)
	}

	logger.Info("Trip stats",
		logger.Int64("trip_id", int64(tripID)),
		logger.Int("num_trips_passed", int(passed)),
		logger.Int("num_trips_started_or_stopped", int(nf.NumTrips)),
		logger.Float64("dollar_fare", nf.DollarFare),
		logger.Int64("timestamp", ts),
		logger.Int("num_occurring_trips", int(occurring)))
	return nil
}

// step moves p by U(-0.5, 0.5) on each axis
func (s *Simulator) step(p models.Point) models.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.Latitude += s.rng.Float64() - 0.5
	p.Longitude += s.rng.Float64() - 0.5
	return p
}

func (s *Simulator) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
