package http

import (
	"context"

	"pulsecli/internal/charts"
	"pulsecli/internal/dataset"
	"pulsecli/internal/services"
)

// ChartServiceInterface defines the service contract the chart handler
// depends on, kept narrow so tests can substitute fakes.
type ChartServiceInterface interface {
	Histogram(ctx context.Context, x, category string) (*services.FigureEnvelope, error)
	Cumulative(ctx context.Context, ys []string, category string) (*services.FigureEnvelope, error)
	Scatter(ctx context.Context, x, y string, opts charts.ScatterOptions) (*services.FigureEnvelope, error)
	PolyFits(ctx context.Context, x, y string, degree int) (*services.FigureEnvelope, error)
	Regression(ctx context.Context, x, y string, interceptZero bool) (*services.FigureEnvelope, error)
	Interactive(ctx context.Context, x, y, baseTitle string, opts charts.InteractiveOptions) (*services.FigureEnvelope, error)
	Summary(ctx context.Context) (*dataset.Summary, error)
	Reload(ctx context.Context) error
}
