package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/piresc/tripstats/internal/pkg/logger"
	"github.com/piresc/tripstats/internal/pkg/middleware"
	"github.com/piresc/tripstats/internal/pkg/models"
	"github.com/piresc/tripstats/internal/utils"
	"github.com/piresc/tripstats/services/trips"
)

// Query parameter names for rectangle queries
const (
	ParamTopLeftLat     = "top_left_lat"
	ParamTopLeftLng     = "top_left_lng"
	ParamBottomRightLat = "bottom_right_lat"
	ParamBottomRightLng = "bottom_right_lng"
	ParamTimestamp      = "timestamp"
)

// TripsHandler handles HTTP requests for trip events and queries
type TripsHandler struct {
	tripUC trips.TripUC
}

// NewTripsHandler creates a new trips HTTP handler
func NewTripsHandler(tripUC trips.TripUC) *TripsHandler {
	return &TripsHandler{
		tripUC: tripUC,
	}
}

// BeginTrip records the start of a trip
func (h *TripsHandler) BeginTrip(c echo.Context) error {
	tripID, err := parseTripID(c)
	if err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	var req models.TripPointRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn("Failed to bind begin trip request", logger.Err(err))
		return utils.BadRequestResponse(c, "invalid request body")
	}

	if err := h.tripUC.BeginTrip(c.Request().Context(), tripID, req.Point); err != nil {
		logger.Error("Failed to begin trip",
			logger.Int64("trip_id", int64(tripID)),
			logger.Err(err))
		return utils.InternalServerErrorResponse(c, "failed to begin trip")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trip started", nil)
}

// UpdateTrip records an intermediate position of a trip
func (h *TripsHandler) UpdateTrip(c echo.Context) error {
	tripID, err := parseTripID(c)
	if err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	var req models.TripPointRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn("Failed to bind update trip request", logger.Err(err))
		return utils.BadRequestResponse(c, "invalid request body")
	}

	if err := h.tripUC.UpdateTrip(c.Request().Context(), tripID, req.Point); err != nil {
		logger.Error("Failed to update trip",
			logger.Int64("trip_id", int64(tripID)),
			logger.Err(err))
		return utils.InternalServerErrorResponse(c, "failed to update trip")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trip updated", nil)
}

// EndTrip records the end of a trip and its fare
func (h *TripsHandler) EndTrip(c echo.Context) error {
	tripID, err := parseTripID(c)
	if err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	var req models.TripEndRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn("Failed to bind end trip request", logger.Err(err))
		return utils.BadRequestResponse(c, "invalid request body")
	}

	if err := h.tripUC.EndTrip(c.Request().Context(), tripID, req.Point, req.DollarAmount); err != nil {
		logger.Error("Failed to end trip",
			logger.Int64("trip_id", int64(tripID)),
			logger.Err(err))
		return utils.InternalServerErrorResponse(c, "failed to end trip")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trip ended", nil)
}

// NumTripsPassed counts trips with any point inside the requested rectangle
func (h *TripsHandler) NumTripsPassed(c echo.Context) error {
	rect, err := parseRect(c)
	if err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	n, err := h.tripUC.NumTripsPassed(c.Request().Context(), rect)
	if err != nil {
		logger.Error("Failed to count trips passed", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "failed to count trips")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trips counted", models.TripCountResponse{NumTrips: n})
}

// NumTripsStartedOrStoppedAndFare counts trips that began or ended inside the
// requested rectangle and sums their fares
func (h *TripsHandler) NumTripsStartedOrStoppedAndFare(c echo.Context) error {
	rect, err := parseRect(c)
	if err != nil {
		return utils.BadRequestResponse(c, err.Error())
	}

	result, err := h.tripUC.NumTripsStartedOrStoppedAndFare(c.Request().Context(), rect)
	if err != nil {
		logger.Error("Failed to count trips started or stopped", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "failed to count trips")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trips counted", result)
}

// NumOccurringTrips returns the number of trips active at a unix timestamp
func (h *TripsHandler) NumOccurringTrips(c echo.Context) error {
	raw := c.QueryParam(ParamTimestamp)
	if raw == "" {
		return utils.BadRequestResponse(c, "timestamp is required")
	}
	timestamp, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return utils.BadRequestResponse(c, "timestamp must be unix seconds")
	}

	n, err := h.tripUC.NumOccurringTrips(c.Request().Context(), timestamp)
	if err != nil {
		logger.Error("Failed to count occurring trips", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "failed to count trips")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Trips counted", models.TripCountResponse{NumTrips: n})
}

func parseTripID(c echo.Context) (models.TripID, error) {
	raw := c.Param("tripID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid trip id %q", raw)
	}
	middleware.SetTripID(c, id)
	return models.TripID(id), nil
}

func parseRect(c echo.Context) (models.GeoRect, error) {
	var values [4]float64
	for i, name := range []string{ParamTopLeftLat, ParamTopLeftLng, ParamBottomRightLat, ParamBottomRightLng} {
		raw := c.QueryParam(name)
		if raw == "" {
			return models.GeoRect{}, fmt.Errorf("%s is required", name)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.GeoRect{}, fmt.Errorf("%s must be a number", name)
		}
		values[i] = v
	}

	return models.GeoRect{
		TopLeft:     models.Point{Latitude: values[0], Longitude: values[1]},
		BottomRight: models.Point{Latitude: values[2], Longitude: values[3]},
	}, nil
}
