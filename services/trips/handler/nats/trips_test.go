package nats

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/piresc/tripstats/internal/pkg/constants"
	"github.com/piresc/tripstats/internal/pkg/models"
	"github.com/piresc/tripstats/services/trips/mocks"
	"github.com/stretchr/testify/assert"
)

type outcome struct {
	subject string
	err     error
}

type recordingObserver struct {
	outcomes []outcome
}

func (o *recordingObserver) NATSMessage(subject string, err error) {
	o.outcomes = append(o.outcomes, outcome{subject: subject, err: err})
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	assert.NoError(t, err)
	return data
}

func TestTripsHandler_Messages(t *testing.T) {
	point := models.Point{Latitude: 45.1, Longitude: 90.2}

	tests := []struct {
		name      string
		subject   string
		payload   []byte
		mockSetup func(*mocks.MockTripUC)
		expectErr bool
	}{
		{
			name:    "begin",
			subject: constants.SubjectTripBegin,
			payload: mustJSON(t, models.TripEvent{TripID: 1, Kind: models.TripEventBegin, Point: point}),
			mockSetup: func(mockUC *mocks.MockTripUC) {
				mockUC.EXPECT().BeginTrip(gomock.Any(), models.TripID(1), point).Return(nil)
			},
		},
		{
			name:    "update",
			subject: constants.SubjectTripUpdate,
			payload: mustJSON(t, models.TripEvent{TripID: 1, Point: point}),
			mockSetup: func(mockUC *mocks.MockTripUC) {
				mockUC.EXPECT().UpdateTrip(gomock.Any(), models.TripID(1), point).Return(nil)
			},
		},
		{
			name:    "end",
			subject: constants.SubjectTripEnd,
			payload: mustJSON(t, models.TripEvent{TripID: 1, Point: point, DollarAmount: 12}),
			mockSetup: func(mockUC *mocks.MockTripUC) {
				mockUC.EXPECT().EndTrip(gomock.Any(), models.TripID(1), point, 12.0).Return(nil)
			},
		},
		{
			name:      "malformed payload",
			subject:   constants.SubjectTripBegin,
			payload:   []byte("{not json"),
			mockSetup: func(mockUC *mocks.MockTripUC) {},
			expectErr: true,
		},
		{
			name:    "usecase error",
			subject: constants.SubjectTripEnd,
			payload: mustJSON(t, models.TripEvent{TripID: 2, Point: point, DollarAmount: 1}),
			mockSetup: func(mockUC *mocks.MockTripUC) {
				mockUC.EXPECT().EndTrip(gomock.Any(), models.TripID(2), point, 1.0).Return(errors.New("redis down"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockUC := mocks.NewMockTripUC(ctrl)
			tt.mockSetup(mockUC)

			observer := &recordingObserver{}
			h := NewTripsHandler(mockUC, nil, &models.Config{}, nil, observer)

			fns := map[string]func(context.Context, []byte) error{
				constants.SubjectTripBegin:  h.handleTripBegin,
				constants.SubjectTripUpdate: h.handleTripUpdate,
				constants.SubjectTripEnd:    h.handleTripEnd,
			}
			err := h.traced(tt.subject, fns[tt.subject])(tt.payload)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if assert.Len(t, observer.outcomes, 1) {
				assert.Equal(t, tt.subject, observer.outcomes[0].subject)
				assert.Equal(t, tt.expectErr, observer.outcomes[0].err != nil)
			}
		})
	}
}

func TestTripsHandler_InitWithoutNATS(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewTripsHandler(mocks.NewMockTripUC(ctrl), nil, &models.Config{}, nil, nil)
	assert.NoError(t, h.InitNATSConsumers())
}
