package middleware

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/tripstats/internal/pkg/logger"
	"github.com/piresc/tripstats/internal/utils"
	"golang.org/x/sync/semaphore"
)

// DefaultWorkerCount is used when no positive worker count is configured.
const DefaultWorkerCount = 300

// WorkerPoolObserver receives worker pool occupancy updates. Optional.
type WorkerPoolObserver interface {
	WorkerAcquired()
	WorkerReleased()
	WorkerRejected()
}

// WorkerPool bounds the number of requests handled concurrently.
type WorkerPool struct {
	sem      *semaphore.Weighted
	size     int64
	maxWait  time.Duration
	observer WorkerPoolObserver
}

// NewWorkerPool creates a pool with size slots. Requests wait at most maxWait
// for a slot; zero means wait as long as the request context lives.
func NewWorkerPool(size int, maxWait time.Duration, observer WorkerPoolObserver) *WorkerPool {
	if size <= 0 {
		size = DefaultWorkerCount
	}
	return &WorkerPool{
		sem:      semaphore.NewWeighted(int64(size)),
		size:     int64(size),
		maxWait:  maxWait,
		observer: observer,
	}
}

// Size returns the number of slots.
func (p *WorkerPool) Size() int {
	return int(p.size)
}

// Acquire blocks until a slot is free. The returned release func must be called once.
func (p *WorkerPool) Acquire(ctx context.Context) (func(), error) {
	if p.maxWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.maxWait)
		defer cancel()
	}

	if err := p.sem.Acquire(ctx, 1); err != nil {
		if p.observer != nil {
			p.observer.WorkerRejected()
		}
		return nil, err
	}
	if p.observer != nil {
		p.observer.WorkerAcquired()
	}

	return func() {
		p.sem.Release(1)
		if p.observer != nil {
			p.observer.WorkerReleased()
		}
	}, nil
}

// Middleware holds a slot for the duration of each request and answers 503
// when none frees up in time.
func (p *WorkerPool) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			release, err := p.Acquire(c.Request().Context())
			if err != nil {
				logger.Warn("No worker available",
					logger.String("path", c.Request().URL.Path),
					logger.Int("workers", p.Size()),
					logger.Err(err))
				return utils.ServiceUnavailableResponse(c, "Server busy, try again later")
			}
			defer release()

			return next(c)
		}
	}
}
