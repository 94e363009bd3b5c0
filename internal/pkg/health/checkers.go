package health

import (
	"context"
	"errors"

	"github.com/piresc/tripstats/internal/pkg/database"
	"github.com/piresc/tripstats/internal/pkg/nats"
)

// RedisHealthChecker checks Redis connectivity
type RedisHealthChecker struct {
	client *database.RedisClient
}

// NewRedisHealthChecker creates a new Redis health checker
func NewRedisHealthChecker(client *database.RedisClient) *RedisHealthChecker {
	return &RedisHealthChecker{client: client}
}

// CheckHealth pings Redis
func (r *RedisHealthChecker) CheckHealth(ctx context.Context) error {
	if r.client == nil {
		return errors.New("redis client not initialized")
	}
	return r.client.Ping(ctx)
}

// NATSHealthChecker checks NATS connectivity
type NATSHealthChecker struct {
	client *nats.Client
}

// NewNATSHealthChecker creates a new NATS health checker
func NewNATSHealthChecker(client *nats.Client) *NATSHealthChecker {
	return &NATSHealthChecker{client: client}
}

// CheckHealth reports whether the NATS connection is up
func (n *NATSHealthChecker) CheckHealth(ctx context.Context) error {
	if n.client == nil || !n.client.IsConnected() {
		return errors.New("NATS connection not available")
	}
	return nil
}
