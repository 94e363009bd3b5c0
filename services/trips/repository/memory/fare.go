package memory

import (
	"context"
	"sync"

	"github.com/piresc/tripstats/internal/pkg/models"
)

// FareLedger is an in-process trip fare ledger. It never returns an error.
type FareLedger struct {
	mu    sync.RWMutex
	fares map[models.TripID]float64
}

// NewFareLedger creates an empty ledger
func NewFareLedger() *FareLedger {
	return &FareLedger{fares: make(map[models.TripID]float64)}
}

// Set records amount for tripID, replacing any earlier fare
func (f *FareLedger) Set(_ context.Context, tripID models.TripID, amount float64) error {
	f.mu.Lock()
	f.fares[tripID] = amount
	f.mu.Unlock()
	return nil
}

// Get returns the fare for tripID, 0 if none was recorded
func (f *FareLedger) Get(_ context.Context, tripID models.TripID) (float64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.fares[tripID], nil
}

// Fares returns the recorded fares for tripIDs under a single lock acquisition
func (f *FareLedger) Fares(_ context.Context, tripIDs []models.TripID) (map[models.TripID]float64, error) {
	out := make(map[models.TripID]float64, len(tripIDs))

	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, id := range tripIDs {
		if amount, ok := f.fares[id]; ok {
			out[id] = amount
		}
	}
	return out, nil
}

// Len returns the number of trips with a recorded fare
func (f *FareLedger) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.fares)
}
