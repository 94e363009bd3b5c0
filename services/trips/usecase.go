package trips

import (
	"context"

	"github.com/piresc/tripstats/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/tripstats/services/trips TripUC

// TripUC records trip lifecycle events and answers aggregate queries over them.
// Every operation accepts any trip id and any rectangle; errors only come from
// an external fare ledger backend.
type TripUC interface {
	// Lifecycle events
	BeginTrip(ctx context.Context, tripID models.TripID, point models.Point) error
	UpdateTrip(ctx context.Context, tripID models.TripID, point models.Point) error
	EndTrip(ctx context.Context, tripID models.TripID, point models.Point, dollarAmount float64) error

	// Queries
	NumTripsPassed(ctx context.Context, rect models.GeoRect) (int32, error)
	NumTripsStartedOrStoppedAndFare(ctx context.Context, rect models.GeoRect) (models.NumFare, error)
	NumOccurringTrips(ctx context.Context, timestamp int64) (int32, error)
}
