package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/tripstats/internal/pkg/middleware"
	"github.com/piresc/tripstats/internal/pkg/models"
	natspkg "github.com/piresc/tripstats/internal/pkg/nats"
	"github.com/piresc/tripstats/services/trips"
	httpHandler "github.com/piresc/tripstats/services/trips/handler/http"
	natsHandler "github.com/piresc/tripstats/services/trips/handler/nats"
)

// Handler combines all handlers for the trips service
type Handler struct {
	tripsHTTP *httpHandler.TripsHandler
	tripsNATS *natsHandler.TripsHandler
	cfg       *models.Config
}

// NewHandler creates a new combined handler. natsClient may be nil.
func NewHandler(
	tripUC trips.TripUC,
	natsClient *natspkg.Client,
	cfg *models.Config,
	nrApp *newrelic.Application,
	observer natsHandler.MessageObserver,
) *Handler {
	return &Handler{
		tripsHTTP: httpHandler.NewTripsHandler(tripUC),
		tripsNATS: natsHandler.NewTripsHandler(tripUC, natsClient, cfg, nrApp, observer),
		cfg:       cfg,
	}
}

// RegisterRoutes registers the trip RPC routes, guarded by the worker pool and the API key
func (h *Handler) RegisterRoutes(e *echo.Echo, pool *middleware.WorkerPool) {
	v1 := e.Group("/v1/trips", pool.Middleware(), middleware.ValidateAPIKey(h.cfg.Trips.APIKey))

	v1.POST("/:tripID/begin", h.tripsHTTP.BeginTrip)
	v1.POST("/:tripID/update", h.tripsHTTP.UpdateTrip)
	v1.POST("/:tripID/end", h.tripsHTTP.EndTrip)

	v1.GET("/passed", h.tripsHTTP.NumTripsPassed)
	v1.GET("/started-or-stopped", h.tripsHTTP.NumTripsStartedOrStoppedAndFare)
	v1.GET("/occurring", h.tripsHTTP.NumOccurringTrips)
}

// InitNATSConsumers initializes all NATS consumers
func (h *Handler) InitNATSConsumers() error {
	return h.tripsNATS.InitNATSConsumers()
}
