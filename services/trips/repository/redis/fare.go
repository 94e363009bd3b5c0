package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/piresc/tripstats/internal/pkg/constants"
	"github.com/piresc/tripstats/internal/pkg/database"
	"github.com/piresc/tripstats/internal/pkg/models"
)

// FareLedger stores trip fares in a single Redis hash, so fares outlive the
// process. Point logs and the occupancy timeline stay in process memory and
// are not shared between instances. HSET overwrites, which gives last write wins.
type FareLedger struct {
	redisClient *database.RedisClient
	key         string
}

// NewFareLedger creates a Redis backed fare ledger
func NewFareLedger(redisClient *database.RedisClient) *FareLedger {
	return &FareLedger{
		redisClient: redisClient,
		key:         constants.KeyTripFares,
	}
}

// Set records amount for tripID
func (f *FareLedger) Set(ctx context.Context, tripID models.TripID, amount float64) error {
	err := f.redisClient.GetClient().HSet(ctx, f.key, field(tripID), amount).Err()
	if err != nil {
		return fmt.Errorf("failed to store fare for trip %d: %w", tripID, err)
	}
	return nil
}

// Get returns the fare for tripID, 0 if none was recorded
func (f *FareLedger) Get(ctx context.Context, tripID models.TripID) (float64, error) {
	amount, err := f.redisClient.GetClient().HGet(ctx, f.key, field(tripID)).Float64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get fare for trip %d: %w", tripID, err)
	}
	return amount, nil
}

// Fares fetches the fares of tripIDs with one HMGET
func (f *FareLedger) Fares(ctx context.Context, tripIDs []models.TripID) (map[models.TripID]float64, error) {
	out := make(map[models.TripID]float64, len(tripIDs))
	if len(tripIDs) == 0 {
		return out, nil
	}

	fields := make([]string, len(tripIDs))
	for i, id := range tripIDs {
		fields[i] = field(id)
	}

	values, err := f.redisClient.GetClient().HMGet(ctx, f.key, fields...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get fares: %w", err)
	}

	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue // nil: no fare recorded
		}
		amount, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid fare %q for trip %d: %w", s, tripIDs[i], err)
		}
		out[tripIDs[i]] = amount
	}
	return out, nil
}

func field(tripID models.TripID) string {
	return strconv.FormatInt(int64(tripID), 10)
}
