package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/tripstats/internal/pkg/constants"
	"github.com/piresc/tripstats/internal/pkg/logger"
	"github.com/piresc/tripstats/internal/pkg/models"
	natspkg "github.com/piresc/tripstats/internal/pkg/nats"
	nrpkg "github.com/piresc/tripstats/internal/pkg/newrelic"
	"github.com/piresc/tripstats/services/trips"
)

// MessageObserver is told the outcome of every consumed message. Optional.
type MessageObserver interface {
	NATSMessage(subject string, err error)
}

// TripsHandler feeds trip events published on NATS into the trip store
type TripsHandler struct {
	tripUC     trips.TripUC
	natsClient *natspkg.Client
	queueGroup string
	nrApp      *newrelic.Application
	observer   MessageObserver
}

// NewTripsHandler creates a new trips NATS handler
func NewTripsHandler(
	tripUC trips.TripUC,
	client *natspkg.Client,
	cfg *models.Config,
	nrApp *newrelic.Application,
	observer MessageObserver,
) *TripsHandler {
	return &TripsHandler{
		tripUC:     tripUC,
		natsClient: client,
		queueGroup: cfg.NATS.QueueGroup,
		nrApp:      nrApp,
		observer:   observer,
	}
}

// InitNATSConsumers subscribes to the trip lifecycle subjects
func (h *TripsHandler) InitNATSConsumers() error {
	if h.natsClient == nil {
		logger.Info("NATS not configured, trip event ingestion disabled")
		return nil
	}

	handlers := map[string]natspkg.MessageHandler{
		constants.SubjectTripBegin:  h.traced(constants.SubjectTripBegin, h.handleTripBegin),
		constants.SubjectTripUpdate: h.traced(constants.SubjectTripUpdate, h.handleTripUpdate),
		constants.SubjectTripEnd:    h.traced(constants.SubjectTripEnd, h.handleTripEnd),
	}

	for _, subject := range constants.TripSubjects {
		if err := h.natsClient.QueueSubscribe(subject, h.queueGroup, handlers[subject]); err != nil {
			logger.Error("Failed to subscribe to trip events",
				logger.String("subject", subject),
				logger.Err(err))
			return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
		}
	}

	logger.Info("Successfully initialized NATS consumers for trips service",
		logger.String("queue_group", h.queueGroup))
	return nil
}

// traced runs fn inside a background New Relic transaction and reports the outcome
func (h *TripsHandler) traced(subject string, fn func(ctx context.Context, data []byte) error) natspkg.MessageHandler {
	return func(data []byte) error {
		txn := h.nrApp.StartTransaction("NATS.Trips." + subject)
		defer txn.End()
		txn.AddAttribute("message.subject", subject)
		txn.AddAttribute("message.size", len(data))

		ctx := newrelic.NewContext(context.Background(), txn)
		err := fn(ctx, data)
		if err != nil {
			nrpkg.NoticeTransactionError(txn, err)
		}
		if h.observer != nil {
			h.observer.NATSMessage(subject, err)
		}
		return err
	}
}

func (h *TripsHandler) handleTripBegin(ctx context.Context, data []byte) error {
	event, err := decodeEvent(data)
	if err != nil {
		return err
	}
	return h.tripUC.BeginTrip(ctx, event.TripID, event.Point)
}

func (h *TripsHandler) handleTripUpdate(ctx context.Context, data []byte) error {
	event, err := decodeEvent(data)
	if err != nil {
		return err
	}
	return h.tripUC.UpdateTrip(ctx, event.TripID, event.Point)
}

func (h *TripsHandler) handleTripEnd(ctx context.Context, data []byte) error {
	event, err := decodeEvent(data)
	if err != nil {
		return err
	}
	return h.tripUC.EndTrip(ctx, event.TripID, event.Point, event.DollarAmount)
}

func decodeEvent(data []byte) (models.TripEvent, error) {
	var event models.TripEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return event, fmt.Errorf("failed to unmarshal trip event: %w", err)
	}
	return event, nil
}
