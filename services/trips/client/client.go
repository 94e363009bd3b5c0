package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	httpclient "github.com/piresc/tripstats/internal/pkg/http"
	"github.com/piresc/tripstats/internal/pkg/models"
	"github.com/piresc/tripstats/internal/pkg/retry"
	"github.com/piresc/tripstats/services/trips"
	tripshttp "github.com/piresc/tripstats/services/trips/handler/http"
)

// TripClient calls a remote trips service over HTTP. It satisfies trips.TripUC
// so callers can swap a local store for a remote one.
type TripClient struct {
	http *httpclient.Client
}

var _ trips.TripUC = (*TripClient)(nil)

// NewTripClient creates a client for the trips service at baseURL
func NewTripClient(baseURL, apiKey string, timeout time.Duration, retrier *retry.Retrier) *TripClient {
	return &TripClient{
		http: httpclient.NewClient(baseURL, apiKey, timeout, retrier),
	}
}

func (c *TripClient) BeginTrip(ctx context.Context, tripID models.TripID, point models.Point) error {
	return c.http.PostJSON(ctx, tripPath(tripID, "begin"), models.TripPointRequest{Point: point}, nil)
}

func (c *TripClient) UpdateTrip(ctx context.Context, tripID models.TripID, point models.Point) error {
	return c.http.PostJSON(ctx, tripPath(tripID, "update"), models.TripPointRequest{Point: point}, nil)
}

func (c *TripClient) EndTrip(ctx context.Context, tripID models.TripID, point models.Point, dollarAmount float64) error {
	body := models.TripEndRequest{Point: point, DollarAmount: dollarAmount}
	return c.http.PostJSON(ctx, tripPath(tripID, "end"), body, nil)
}

func (c *TripClient) NumTripsPassed(ctx context.Context, rect models.GeoRect) (int32, error) {
	var resp models.TripCountResponse
	if err := c.http.GetJSON(ctx, "/v1/trips/passed?"+rectQuery(rect), &resp); err != nil {
		return 0, err
	}
	return resp.NumTrips, nil
}

func (c *TripClient) NumTripsStartedOrStoppedAndFare(ctx context.Context, rect models.GeoRect) (models.NumFare, error) {
	var resp models.NumFare
	if err := c.http.GetJSON(ctx, "/v1/trips/started-or-stopped?"+rectQuery(rect), &resp); err != nil {
		return models.NumFare{}, err
	}
	return resp, nil
}

func (c *TripClient) NumOccurringTrips(ctx context.Context, timestamp int64) (int32, error) {
	q := url.Values{}
	q.Set(tripshttp.ParamTimestamp, strconv.FormatInt(timestamp, 10))

	var resp models.TripCountResponse
	if err := c.http.GetJSON(ctx, "/v1/trips/occurring?"+q.Encode(), &resp); err != nil {
		return 0, err
	}
	return resp.NumTrips, nil
}

func tripPath(tripID models.TripID, action string) string {
	return fmt.Sprintf("/v1/trips/%d/%s", tripID, action)
}

func rectQuery(rect models.GeoRect) string {
	format := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	q := url.Values{}
	q.Set(tripshttp.ParamTopLeftLat, format(rect.TopLeft.Latitude))
	q.Set(tripshttp.ParamTopLeftLng, format(rect.TopLeft.Longitude))
	q.Set(tripshttp.ParamBottomRightLat, format(rect.BottomRight.Latitude))
	q.Set(tripshttp.ParamBottomRightLng, format(rect.BottomRight.Longitude))
	return q.Encode()
}
