package metrics

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Totals is a point-in-time read of the recorded instruments.
type Totals struct {
	Accepted int64
	Rejected int64
	Splits   int64
	Regions  int64
}

// MarshalZerologObject lets totals be attached to a log event with EmbedObject.
func (t Totals) MarshalZerologObject(e *zerolog.Event) {
	e.Int64("accepted", t.Accepted).
		Int64("rejected", t.Rejected).
		Int64("splits", t.Splits).
		Int64("regions", t.Regions)
}

// Provider owns an SDK MeterProvider backed by a manual reader, so the
// binaries can read back what the board recorded.
type Provider struct {
	mp     *sdkmetric.MeterProvider
	reader *sdkmetric.ManualReader
	meter  metric.Meter
}

// NewProvider creates a provider. A disabled provider hands out a no-op
// meter and reports zero totals.
func NewProvider(serviceName string, enabled bool) *Provider {
	if !enabled {
		return &Provider{meter: noop.NewMeterProvider().Meter(instrumentationName)}
	}

	res := resource.NewSchemaless(semconv.ServiceName(serviceName))

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	return &Provider{
		mp:     mp,
		reader: reader,
		meter:  mp.Meter(instrumentationName),
	}
}

// Meter returns the meter to pass to New.
func (p *Provider) Meter() metric.Meter {
	return p.meter
}

// Enabled reports whether values are actually collected.
func (p *Provider) Enabled() bool {
	return p.reader != nil
}

// Snapshot collects the current values of the blockie instruments.
func (p *Provider) Snapshot(ctx context.Context) (Totals, error) {
	var totals Totals
	if p.reader == nil {
		return totals, nil
	}

	var rm metricdata.ResourceMetrics
	if err := p.reader.Collect(ctx, &rm); err != nil {
		return totals, fmt.Errorf("failed to collect metrics: %w", err)
	}
	return TotalsOf(rm), nil
}

// Shutdown flushes and stops the provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.mp == nil {
		return nil
	}
	return p.mp.Shutdown(ctx)
}

// TotalsOf extracts the blockie instruments from collected data.
func TotalsOf(rm metricdata.ResourceMetrics) Totals {
	var totals Totals
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					switch m.Name {
					case shotsName:
						outcome, _ := dp.Attributes.Value(attribute.Key(outcomeKey))
						switch outcome.AsString() {
						case outcomeAcceptedValue:
							totals.Accepted += dp.Value
						case outcomeRejectedValue:
							totals.Rejected += dp.Value
						}
					case splitsName:
						totals.Splits += dp.Value
					}
				}
			case metricdata.Gauge[int64]:
				if m.Name == regionsName {
					for _, dp := range data.DataPoints {
						totals.Regions = dp.Value
					}
				}
			}
		}
	}
	return totals
}
