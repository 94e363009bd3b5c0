package newrelic

import (
	"context"
	"errors"
	"testing"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/tripstats/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitNewRelic_Disabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  models.NewRelicConfig
	}{
		{name: "disabled", cfg: models.NewRelicConfig{Enabled: false, LicenseKey: "0000000000000000000000000000000000000000"}},
		{name: "no license", cfg: models.NewRelicConfig{Enabled: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, InitNewRelic(&models.Config{NewRelic: tt.cfg}))
		})
	}
}

func TestWithSegment(t *testing.T) {
	t.Run("no transaction", func(t *testing.T) {
		called := false
		err := WithSegment(context.Background(), "noop", func() error {
			called = true
			return nil
		})
		assert.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("propagates error and value", func(t *testing.T) {
		app, err := newrelic.NewApplication(
			newrelic.ConfigAppName("trips-test"),
			newrelic.ConfigLicense("0000000000000000000000000000000000000000"),
			newrelic.ConfigEnabled(false),
		)
		require.NoError(t, err)

		txn := app.StartTransaction("test")
		defer txn.End()
		ctx := newrelic.NewContext(context.Background(), txn)

		boom := errors.New("boom")
		assert.ErrorIs(t, WithSegment(ctx, "fails", func() error { return boom }), boom)

		v, err := WithSegmentAndReturn(ctx, "count", func() (int32, error) { return 3, nil })
		assert.NoError(t, err)
		assert.Equal(t, int32(3), v)
	})
}
