package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/hoteldesk/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap/zaptest"
)

func TestNewMeterProvider_Disabled(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctx := context.Background()

	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           false,
		CollectorEndpoint: "localhost:14317",
		ServiceName:       "test-service",
	}, logger)
	require.NoError(t, err)
	require.NotNil(t, mp)

	assert.False(t, mp.IsEnabled())

	// Meter falls back to the global provider
	meter := mp.Meter("test")
	assert.NotNil(t, meter)

	assert.NoError(t, mp.ForceFlush(ctx))
	assert.NoError(t, mp.Shutdown(ctx))
}

func TestCounter(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	c, err := telemetry.NewCounter(meter, "test_total", "A test counter", "{items}")
	require.NoError(t, err)

	ctx := context.Background()
	c.Inc(ctx)
	c.Add(ctx, 5, telemetry.AttrPropertyID.String("p1"))
}

func TestHistogram(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	h, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        "test_duration_seconds",
		Description: "A test histogram",
		Unit:        "s",
		Boundaries:  telemetry.HTTPDurationBuckets,
	})
	require.NoError(t, err)

	ctx := context.Background()
	h.Record(ctx, 0.25)
	h.RecordDuration(ctx, 150*time.Millisecond, telemetry.AttrHTTPRoute.String("/api/v1/rooms"))
}

func TestGauge(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")

	g, err := telemetry.NewGauge(meter, "test_current", "A test gauge", "{rooms}")
	require.NoError(t, err)

	g.Record(context.Background(), 12, telemetry.AttrPropertyID.String("p1"))
}
