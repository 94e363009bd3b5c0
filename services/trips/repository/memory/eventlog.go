package memory

import (
	"sync"

	"github.com/piresc/tripstats/internal/pkg/models"
)

// TripPointLog is an append-only, concurrency-safe log of trip points.
//
// Snapshot hands out a capacity-capped prefix of the backing slice. Appended
// elements are never modified, so a snapshot stays valid after the lock is
// released and later appends cannot write into it.
type TripPointLog struct {
	mu     sync.RWMutex
	points []models.TripPoint
}

// NewTripPointLog creates an empty log
func NewTripPointLog() *TripPointLog {
	return &TripPointLog{}
}

// Append adds tp to the end of the log
func (l *TripPointLog) Append(tp models.TripPoint) {
	l.mu.Lock()
	l.points = append(l.points, tp)
	l.mu.Unlock()
}

// Snapshot returns the points logged so far
func (l *TripPointLog) Snapshot() []models.TripPoint {
	l.mu.RLock()
	defer l.mu.RUnlock()
	n := len(l.points)
	return l.points[:n:n]
}

// Len returns the number of points logged so far
func (l *TripPointLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.points)
}
