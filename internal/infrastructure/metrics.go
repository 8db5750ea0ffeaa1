package infrastructure

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ChartMetrics records chart build counts and durations.
type ChartMetrics struct {
	built    metric.Int64Counter
	duration metric.Float64Histogram
}

// NewChartMetrics registers the chart build instruments on the meter.
func NewChartMetrics(meter metric.Meter) (*ChartMetrics, error) {
	built, err := meter.Int64Counter("pulse_charts_built_total",
		metric.WithDescription("Number of chart figures built, by chart type and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("create chart counter: %w", err)
	}
	duration, err := meter.Float64Histogram("pulse_chart_build_seconds",
		metric.WithDescription("Chart build duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create chart histogram: %w", err)
	}
	return &ChartMetrics{built: built, duration: duration}, nil
}

// RecordBuild records one chart build attempt.
func (m *ChartMetrics) RecordBuild(ctx context.Context, chart string, seconds float64, err error) {
	attrs := metric.WithAttributes(
		attribute.String("chart", chart),
		attribute.Bool("success", err == nil),
	)
	m.built.Add(ctx, 1, attrs)
	m.duration.Record(ctx, seconds, attrs)
}
