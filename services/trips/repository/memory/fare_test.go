package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/piresc/tripstats/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFareLedger(t *testing.T) {
	ctx := context.Background()
	ledger := NewFareLedger()

	amount, err := ledger.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 0.0, amount)

	require.NoError(t, ledger.Set(ctx, 42, 13.5))
	require.NoError(t, ledger.Set(ctx, 42, 3.5))
	require.NoError(t, ledger.Set(ctx, 43, 1))

	amount, err = ledger.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 3.5, amount)
	assert.Equal(t, 2, ledger.Len())

	fares, err := ledger.Fares(ctx, []models.TripID{41, 42, 43})
	require.NoError(t, err)
	assert.Equal(t, map[models.TripID]float64{42: 3.5, 43: 1}, fares)
}

func TestFareLedger_ConcurrentSet(t *testing.T) {
	ctx := context.Background()
	ledger := NewFareLedger()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = ledger.Set(ctx, models.TripID(i%5), float64(i))
		}(i)
	}
	wg.Wait()

	// one live entry per trip id however many writes it took
	assert.Equal(t, 5, ledger.Len())
}
