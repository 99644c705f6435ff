// Package metrics records shot and region counts through OpenTelemetry.
// Without an installed MeterProvider the global one is a no-op.
package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/plus3/blockie/internal/metrics"

// Instrument names and attribute values.
const (
	shotsName   = "blockie.shots"
	splitsName  = "blockie.region.splits"
	regionsName = "blockie.regions"

	outcomeKey           = "outcome"
	outcomeAcceptedValue = "accepted"
	outcomeRejectedValue = "duplicate"
)

// Recorder holds the instruments used by the board.
type Recorder struct {
	shots   metric.Int64Counter
	splits  metric.Int64Counter
	regions metric.Int64Gauge
}

// New creates instruments on the given meter. A nil meter uses the global
// provider.
func New(meter metric.Meter) (*Recorder, error) {
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}

	shots, err := meter.Int64Counter(shotsName,
		metric.WithDescription("Shots submitted, by outcome"),
		metric.WithUnit("{shot}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create shots counter: %w", err)
	}

	splits, err := meter.Int64Counter(splitsName,
		metric.WithDescription("Regions removed by a split"),
		metric.WithUnit("{region}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create splits counter: %w", err)
	}

	regions, err := meter.Int64Gauge(regionsName,
		metric.WithDescription("Regions currently in the partition"),
		metric.WithUnit("{region}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create regions gauge: %w", err)
	}

	return &Recorder{shots: shots, splits: splits, regions: regions}, nil
}

var (
	outcomeAccepted = metric.WithAttributes(attribute.String(outcomeKey, outcomeAcceptedValue))
	outcomeRejected = metric.WithAttributes(attribute.String(outcomeKey, outcomeRejectedValue))
)

// ShotAccepted records an accepted shot that split the given number of regions.
func (r *Recorder) ShotAccepted(ctx context.Context, split, regions int) {
	r.shots.Add(ctx, 1, outcomeAccepted)
	if split > 0 {
		r.splits.Add(ctx, int64(split))
	}
	r.regions.Record(ctx, int64(regions))
}

// ShotRejected records a duplicate shot.
func (r *Recorder) ShotRejected(ctx context.Context) {
	r.shots.Add(ctx, 1, outcomeRejected)
}

// Reset records the region count after the board is reset.
func (r *Recorder) Reset(ctx context.Context, regions int) {
	r.regions.Record(ctx, int64(regions))
}
