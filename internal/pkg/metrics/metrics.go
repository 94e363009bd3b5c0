package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns a private registry with the trips service metrics.
type Collector struct {
	reg *prometheus.Registry

	TripEvents    *prometheus.CounterVec // kind label: begin|update|end
	ActiveTrips   prometheus.Gauge
	QueryDuration *prometheus.HistogramVec // query label

	NATSMessages *prometheus.CounterVec // subject, result labels

	HTTPRequests  *prometheus.CounterVec // method, route, status labels
	HTTPDuration  *prometheus.HistogramVec
	WorkersBusy   prometheus.Gauge
	WorkersLimit  prometheus.Gauge
	WorkerRejects prometheus.Counter
}

// NewCollector builds and registers every trips service metric.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		TripEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trips_events_total",
			Help: "Trip lifecycle events accepted, by kind.",
		}, []string{"kind"}),
		ActiveTrips: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "trips_active",
			Help: "Trips begun and not yet ended.",
		}),
		QueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trips_query_duration_seconds",
			Help:    "Duration of trip aggregate queries.",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 18),
		}, []string{"query"}),
		NATSMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trips_nats_messages_total",
			Help: "Trip events consumed from NATS, by subject and result.",
		}, []string{"subject", "result"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trips_http_requests_total",
			Help: "HTTP requests served, by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trips_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		WorkersBusy: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "trips_workers_busy",
			Help: "Requests currently holding a worker slot.",
		}),
		WorkersLimit: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "trips_workers_limit",
			Help: "Configured number of worker slots.",
		}),
		WorkerRejects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trips_worker_rejections_total",
			Help: "Requests that gave up waiting for a worker slot.",
		}),
	}

	reg.MustRegister(
		c.TripEvents, c.ActiveTrips, c.QueryDuration,
		c.NATSMessages,
		c.HTTPRequests, c.HTTPDuration,
		c.WorkersBusy, c.WorkersLimit, c.WorkerRejects,
	)

	return c
}

// Registry exposes the private registry, mostly for tests.
func (c *Collector) Registry() *prometheus.Registry { return c.reg }

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// TripEvent counts one accepted lifecycle event.
func (c *Collector) TripEvent(kind string) {
	c.TripEvents.WithLabelValues(kind).Inc()
}

func (c *Collector) SetActiveTrips(n int32) {
	c.ActiveTrips.Set(float64(n))
}

func (c *Collector) ObserveQuery(query string, d time.Duration) {
	c.QueryDuration.WithLabelValues(query).Observe(d.Seconds())
}

func (c *Collector) NATSMessage(subject string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.NATSMessages.WithLabelValues(subject, result).Inc()
}

// EchoMiddleware records request counts and latency keyed by the route pattern.
func (c *Collector) EchoMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)

			status := ctx.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else if status < http.StatusBadRequest {
					status = http.StatusInternalServerError
				}
			}

			route := ctx.Path()
			if route == "" {
				route = "unmatched"
			}
			c.HTTPRequests.WithLabelValues(ctx.Request().Method, route, strconv.Itoa(status)).Inc()
			c.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

func (c *Collector) WorkerAcquired() { c.WorkersBusy.Inc() }

func (c *Collector) WorkerReleased() { c.WorkersBusy.Dec() }

func (c *Collector) WorkerRejected() { c.WorkerRejects.Inc() }
