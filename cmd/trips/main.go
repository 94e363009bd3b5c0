package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/tripstats/internal/pkg/config"
	"github.com/piresc/tripstats/internal/pkg/database"
	"github.com/piresc/tripstats/internal/pkg/health"
	"github.com/piresc/tripstats/internal/pkg/logger"
	"github.com/piresc/tripstats/internal/pkg/metrics"
	"github.com/piresc/tripstats/internal/pkg/middleware"
	"github.com/piresc/tripstats/internal/pkg/models"
	"github.com/piresc/tripstats/internal/pkg/nats"
	nrpkg "github.com/piresc/tripstats/internal/pkg/newrelic"
	"github.com/piresc/tripstats/internal/pkg/server"
	"github.com/piresc/tripstats/services/trips"
	"github.com/piresc/tripstats/services/trips/handler"
	natsHandler "github.com/piresc/tripstats/services/trips/handler/nats"
	redisrepo "github.com/piresc/tripstats/services/trips/repository/redis"
	"github.com/piresc/tripstats/services/trips/usecase"
)

func main() {
	configPath := "config/trips.env"
	configs := config.InitConfig(configPath)

	// optional positional override of the worker count: trips [workers]
	if len(os.Args) > 1 {
		if n, err := strconv.Atoi(os.Args[1]); err == nil && n > 0 {
			configs.Trips.WorkerCount = n
		} else {
			log.Printf("ignoring invalid worker count %q, using %d", os.Args[1], configs.Trips.WorkerCount)
		}
	}
	appName := configs.App.Name

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
		logger.Int("workers", configs.Trips.WorkerCount),
		logger.String("fare_backend", configs.Trips.FareBackend),
	)

	shutdown := server.NewShutdownManager(zapLogger)
	healthService := health.NewHealthService(appName)

	var collector *metrics.Collector
	if configs.Metrics.Enabled {
		collector = metrics.NewCollector()
	}

	// Fare ledger: in-process unless Redis is configured
	var fares trips.FareLedger
	if configs.Trips.FareBackend == models.FareBackendRedis {
		redisClient, err := database.NewRedisClient(configs.Redis)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
		}
		shutdown.Register(func(context.Context) error { return redisClient.Close() })
		healthService.AddChecker("redis", health.NewRedisHealthChecker(redisClient))
		fares = redisrepo.NewFareLedger(redisClient)
	}

	opts := []usecase.Option{}
	if collector != nil {
		opts = append(opts, usecase.WithMetrics(collector))
	}
	tripUC := usecase.NewTripStore(usecase.NewMemoryStores(fares), opts...)

	// NATS ingestion is optional
	var natsClient *nats.Client
	if configs.NATS.URL != "" {
		natsClient, err = nats.NewClient(configs.NATS.URL, appName)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
		}
		shutdown.Register(func(context.Context) error { return natsClient.Drain() })
		healthService.AddChecker("nats", health.NewNATSHealthChecker(natsClient))
	}

	var observer natsHandler.MessageObserver
	if collector != nil {
		observer = collector
	}
	tripHandler := handler.NewHandler(tripUC, natsClient, configs, nrApp, observer)

	if err := tripHandler.InitNATSConsumers(); err != nil {
		zapLogger.Fatal("Failed to initialize NATS consumers", logger.Err(err))
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = time.Duration(configs.Server.ReadTimeout) * time.Second
	e.Server.WriteTimeout = time.Duration(configs.Server.WriteTimeout) * time.Second

	// panic recovery first
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(middleware.RequestIDMiddleware())
	e.Use(middleware.NewRelicMiddleware(nrApp))
	if collector != nil {
		e.Use(collector.EchoMiddleware())
	}
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	health.RegisterHealthEndpoints(e, healthService)

	var poolObserver middleware.WorkerPoolObserver
	if collector != nil {
		collector.WorkersLimit.Set(float64(configs.Trips.WorkerCount))
		poolObserver = collector
		e.GET(configs.Metrics.Path, echo.WrapHandler(collector.Handler()))
	}
	pool := middleware.NewWorkerPool(configs.Trips.WorkerCount, 0, poolObserver)
	tripHandler.RegisterRoutes(e, pool)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Host, configs.Server.Port,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	if err := srv.Run(ctx); err != nil {
		zapLogger.Error("HTTP server stopped with error", logger.Err(err))
	}

	cleanupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := shutdown.Shutdown(cleanupCtx); err != nil {
		zapLogger.Error("Shutdown finished with errors", logger.Err(err))
	}

	if nrApp != nil {
		zapLogger.Info("Shutting down New Relic...")
		nrApp.Shutdown(10 * time.Second)
	}

	zapLogger.Info("Server exiting gracefully")
	_ = zapLogger.Sync()
}
