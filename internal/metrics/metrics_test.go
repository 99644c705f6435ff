package metrics

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestNew_NoopMeter(t *testing.T) {
	rec, err := New(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	assert.NotPanics(t, func() {
		rec.ShotAccepted(ctx, 1, 4)
		rec.ShotRejected(ctx)
		rec.Reset(ctx, 1)
	})
}

func TestRecorder_ManualReader(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	rec, err := New(mp.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	rec.ShotAccepted(ctx, 1, 4)
	rec.ShotRejected(ctx)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	byName := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			byName[m.Name] = m
		}
	}

	shots, ok := byName["blockie.shots"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	byOutcome := map[string]int64{}
	for _, dp := range shots.DataPoints {
		v, _ := dp.Attributes.Value(attribute.Key("outcome"))
		byOutcome[v.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"accepted": 1, "duplicate": 1}, byOutcome)

	splits, ok := byName["blockie.region.splits"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, splits.DataPoints, 1)
	assert.Equal(t, int64(1), splits.DataPoints[0].Value)

	regions, ok := byName["blockie.regions"].Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, regions.DataPoints, 1)
	assert.Equal(t, int64(4), regions.DataPoints[0].Value)

	assert.Equal(t, Totals{Accepted: 1, Rejected: 1, Splits: 1, Regions: 4}, TotalsOf(rm))
}

func TestProvider_Snapshot(t *testing.T) {
	p := NewProvider("blockie-test", true)
	require.True(t, p.Enabled())
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })

	rec, err := New(p.Meter())
	require.NoError(t, err)

	ctx := context.Background()
	rec.ShotAccepted(ctx, 1, 4)
	rec.ShotAccepted(ctx, 2, 7)
	rec.ShotRejected(ctx)
	rec.Reset(ctx, 1)

	totals, err := p.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, Totals{Accepted: 2, Rejected: 1, Splits: 3, Regions: 1}, totals)
}

func TestProvider_Disabled(t *testing.T) {
	p := NewProvider("blockie-test", false)
	assert.False(t, p.Enabled())

	rec, err := New(p.Meter())
	require.NoError(t, err)
	rec.ShotAccepted(context.Background(), 1, 4)

	totals, err := p.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Zero(t, totals)
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestNew_GlobalMeter(t *testing.T) {
	rec, err := New(nil)
	require.NoError(t, err)
	assert.NotNil(t, rec)
}

func TestTotals_Log(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	log.Info().EmbedObject(Totals{Accepted: 3, Rejected: 1, Splits: 5, Regions: 9}).Msg("Session totals")
	assert.JSONEq(t,
		`{"level":"info","accepted":3,"rejected":1,"splits":5,"regions":9,"message":"Session totals"}`,
		buf.String())
}
