package memory

import (
	"sort"
	"sync"

	"github.com/piresc/tripstats/internal/pkg/models"
)

// OccupancyTimeline holds the active trip counter and its sample history
// behind one mutex, so samples are appended in the same order the counter
// changes. Sample timestamps never decrease: a clock reading older than the
// last sample is clamped up to it. Seq breaks ties between samples stamped
// in the same second.
type OccupancyTimeline struct {
	mu      sync.RWMutex
	active  int32
	seq     uint64
	samples []models.OccupancySample
}

// NewOccupancyTimeline creates a timeline with no samples and zero active trips
func NewOccupancyTimeline() *OccupancyTimeline {
	return &OccupancyTimeline{}
}

// Adjust applies delta to the active count and appends the resulting sample
func (o *OccupancyTimeline) Adjust(delta int32, now int64) models.OccupancySample {
	o.mu.Lock()
	defer o.mu.Unlock()

	if n := len(o.samples); n > 0 && now < o.samples[n-1].Timestamp {
		now = o.samples[n-1].Timestamp
	}
	o.active += delta
	o.seq++

	sample := models.OccupancySample{
		Seq:         o.seq,
		Timestamp:   now,
		ActiveCount: o.active,
	}
	o.samples = append(o.samples, sample)
	return sample
}

// AtOrBefore returns the active count recorded by the last sample stamped at
// or before timestamp. It is 0 when timestamp predates every sample.
func (o *OccupancyTimeline) AtOrBefore(timestamp int64) int32 {
	o.mu.RLock()
	defer o.mu.RUnlock()

	// first sample strictly after timestamp
	i := sort.Search(len(o.samples), func(i int) bool {
		return o.samples[i].Timestamp > timestamp
	})
	if i == 0 {
		return 0
	}
	return o.samples[i-1].ActiveCount
}

// Active returns the current active trip count
func (o *OccupancyTimeline) Active() int32 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.active
}

// Samples returns every sample recorded so far, oldest first
func (o *OccupancyTimeline) Samples() []models.OccupancySample {
	o.mu.RLock()
	defer o.mu.RUnlock()
	n := len(o.samples)
	return o.samples[:n:n]
}
