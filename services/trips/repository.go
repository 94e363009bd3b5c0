package trips

import (
	"context"

	"github.com/piresc/tripstats/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/tripstats/services/trips FareLedger

// PointLog is an append-only sequence of trip points.
type PointLog interface {
	Append(tp models.TripPoint)
	// Snapshot returns every point appended so far. The slice must not be modified.
	Snapshot() []models.TripPoint
}

// FareLedger maps trip ids to their settled fare, last write wins.
type FareLedger interface {
	Set(ctx context.Context, tripID models.TripID, amount float64) error
	// Fares looks up many trips at once; ids without a fare are absent from the result.
	Fares(ctx context.Context, tripIDs []models.TripID) (map[models.TripID]float64, error)
}

// OccupancyTimeline tracks the number of active trips and samples it on every change.
type OccupancyTimeline interface {
	// Adjust adds delta to the active count and records a sample stamped now,
	// as one atomic step.
	Adjust(delta int32, now int64) models.OccupancySample
	// AtOrBefore returns the active count of the last sample stamped <= timestamp, or 0.
	AtOrBefore(timestamp int64) int32
	// Active returns the current active trip count.
	Active() int32
}
