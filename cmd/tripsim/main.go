package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/tripstats/internal/pkg/config"
	"github.com/piresc/tripstats/internal/pkg/logger"
	"github.com/piresc/tripstats/internal/pkg/models"
	"github.com/piresc/tripstats/internal/pkg/nats"
	"github.com/piresc/tripstats/internal/pkg/retry"
	"github.com/piresc/tripstats/services/trips"
	"github.com/piresc/tripstats/services/trips/client"
)

func main() {
	serverURL := config.GetEnv("TRIPSIM_SERVER_URL", "http://localhost:9090")
	apiKey := config.GetEnv("TRIPSIM_API_KEY", "")
	natsURL := config.GetEnv("TRIPSIM_NATS_URL", "")
	count := config.GetEnvAsInt("TRIPSIM_TRIPS", 10)
	updates := config.GetEnvAsInt("TRIPSIM_TRIP_DURATION", 10)
	timeout := config.GetEnvAsDuration("TRIPSIM_TIMEOUT", 10*time.Second)

	zapLogger, err := logger.NewZapLogger(logger.ZapConfig{
		Level:       config.GetEnv("LOG_LEVEL", "info"),
		ServiceName: "tripsim",
	}, nil)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	logger.SetGlobalLogger(zapLogger)
	defer func() { _ = zapLogger.Sync() }()

	// trip ids of separate runs should not collide
	runID := uuid.New()
	firstTripID := models.TripID(int64(runID.ID()) << 16)

	var tripUC trips.TripUC = client.NewTripClient(serverURL, apiKey, timeout, retry.NewWithDefaults())
	if natsURL != "" {
		natsClient, err := nats.NewClient(natsURL, "tripsim-"+runID.String())
		if err != nil {
			zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
		}
		defer func() { _ = natsClient.Drain() }()
		tripUC = &publisherWriter{TripUC: tripUC, pub: natsClient}
	}

	logger.Info("Starting trip simulation",
		logger.String("run_id", runID.String()),
		logger.String("server_url", serverURL),
		logger.Bool("nats", natsURL != ""),
		logger.Int("trips", count),
		logger.Int("updates_per_trip", updates),
		logger.Int64("first_trip_id", int64(firstTripID)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := NewSimulator(tripUC, count, updates, firstTripID).Run(ctx); err != nil {
		logger.Error("Trip simulation failed", logger.Err(err))
		_ = zapLogger.Sync()
		os.Exit(1)
	}
	logger.Info("Trip simulation finished", logger.String("run_id", runID.String()))
}
