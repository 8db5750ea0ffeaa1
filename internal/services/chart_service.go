// Package services binds the loaded dataset to the chart builders and
// exposes the operations the transport layer calls.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"pulsecli/internal/charts"
	"pulsecli/internal/config"
	"pulsecli/internal/dataset"
	"pulsecli/internal/figure"
	"pulsecli/internal/infrastructure"
)

// FigureEnvelope wraps a built figure with identity and provenance for the
// API surface.
type FigureEnvelope struct {
	ID          string                    `json:"id"`
	Chart       string                    `json:"chart"`
	GeneratedAt time.Time                 `json:"generated_at"`
	Figure      *figure.Figure            `json:"figure"`
	FitStats    []charts.FitStat          `json:"fit_stats,omitempty"`
	Regression  *charts.RegressionSummary `json:"regression,omitempty"`
}

// ChartService holds the dataset behind a read-write lock and dispatches
// chart requests to the builders. Reload swaps the table atomically so
// in-flight builds keep the snapshot they started with.
type ChartService struct {
	mu      sync.RWMutex
	table   *dataset.Table
	path    string
	format  dataset.Format
	logger  *slog.Logger
	metrics *infrastructure.ChartMetrics
}

// NewChartService loads the configured dataset and returns the service.
// Metrics may be nil in tests and CLI use.
func NewChartService(cfg config.DatasetConfig, logger *slog.Logger, metrics *infrastructure.ChartMetrics) (*ChartService, error) {
	table, err := dataset.LoadFile(cfg.Path, dataset.Format(cfg.Format))
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	logger = logger.With(slog.String("component", "chart_service"))
	logger.Info("dataset loaded",
		slog.String("path", cfg.Path),
		slog.Int("rows", table.Len()),
	)
	return &ChartService{
		table:   table,
		path:    cfg.Path,
		format:  dataset.Format(cfg.Format),
		logger:  logger,
		metrics: metrics,
	}, nil
}

// NewChartServiceFromTable wraps an already-loaded table, used by the CLI
// and tests.
func NewChartServiceFromTable(table *dataset.Table, logger *slog.Logger) *ChartService {
	return &ChartService{
		table:  table,
		logger: logger.With(slog.String("component", "chart_service")),
	}
}

// Reload re-reads the dataset from disk and swaps it in.
func (s *ChartService) Reload(ctx context.Context) error {
	table, err := dataset.LoadFile(s.path, s.format)
	if err != nil {
		return fmt.Errorf("reload dataset: %w", err)
	}

	s.mu.Lock()
	s.table = table
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "dataset reloaded",
		slog.String("path", s.path),
		slog.Int("rows", table.Len()),
	)
	return nil
}

// Summary describes the loaded dataset.
func (s *ChartService) Summary(ctx context.Context) (*dataset.Summary, error) {
	return s.snapshot().Summarize()
}

// Histogram builds a distribution figure.
func (s *ChartService) Histogram(ctx context.Context, x, category string) (*FigureEnvelope, error) {
	return s.build(ctx, "histogram", func(t *dataset.Table) (*FigureEnvelope, error) {
		fig, err := charts.Histogram(t, x, category)
		if err != nil {
			return nil, err
		}
		return s.envelope("histogram", fig), nil
	})
}

// Cumulative builds a running-total time series figure.
func (s *ChartService) Cumulative(ctx context.Context, ys []string, category string) (*FigureEnvelope, error) {
	return s.build(ctx, "cumulative", func(t *dataset.Table) (*FigureEnvelope, error) {
		fig, err := charts.Cumulative(t, ys, category)
		if err != nil {
			return nil, err
		}
		return s.envelope("cumulative", fig), nil
	})
}

// Scatter builds a scatter figure.
func (s *ChartService) Scatter(ctx context.Context, x, y string, opts charts.ScatterOptions) (*FigureEnvelope, error) {
	return s.build(ctx, "scatter", func(t *dataset.Table) (*FigureEnvelope, error) {
		fig, err := charts.Scatter(t, x, y, opts)
		if err != nil {
			return nil, err
		}
		return s.envelope("scatter", fig), nil
	})
}

// PolyFits builds the polynomial-fit figure with its fit statistics.
func (s *ChartService) PolyFits(ctx context.Context, x, y string, degree int) (*FigureEnvelope, error) {
	return s.build(ctx, "polyfit", func(t *dataset.Table) (*FigureEnvelope, error) {
		stats, fig, err := charts.PolyFits(t, x, y, degree)
		if err != nil {
			return nil, err
		}
		env := s.envelope("polyfit", fig)
		env.FitStats = stats
		return env, nil
	})
}

// Regression builds the linear-regression figure with its summary.
func (s *ChartService) Regression(ctx context.Context, x, y string, interceptZero bool) (*FigureEnvelope, error) {
	return s.build(ctx, "regression", func(t *dataset.Table) (*FigureEnvelope, error) {
		fig, summary, err := charts.LinearRegression(t, x, y, interceptZero)
		if err != nil {
			return nil, err
		}
		env := s.envelope("regression", fig)
		env.Regression = summary
		return env, nil
	})
}

// Interactive builds the article/response comparison figure.
func (s *ChartService) Interactive(ctx context.Context, x, y, baseTitle string, opts charts.InteractiveOptions) (*FigureEnvelope, error) {
	return s.build(ctx, "interactive", func(t *dataset.Table) (*FigureEnvelope, error) {
		fig, err := charts.Interactive(t, x, y, baseTitle, opts)
		if err != nil {
			return nil, err
		}
		return s.envelope("interactive", fig), nil
	})
}

func (s *ChartService) snapshot() *dataset.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

func (s *ChartService) build(ctx context.Context, chart string, f func(*dataset.Table) (*FigureEnvelope, error)) (*FigureEnvelope, error) {
	start := time.Now()
	env, err := f(s.snapshot())
	if s.metrics != nil {
		s.metrics.RecordBuild(ctx, chart, time.Since(start).Seconds(), err)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "chart build failed",
			slog.String("chart", chart),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	s.logger.InfoContext(ctx, "chart built",
		slog.String("chart", chart),
		slog.String("figure_id", env.ID),
		slog.Int("traces", len(env.Figure.Data)),
		slog.Duration("elapsed", time.Since(start)),
	)
	return env, nil
}

func (s *ChartService) envelope(chart string, fig *figure.Figure) *FigureEnvelope {
	return &FigureEnvelope{
		ID:          uuid.NewString(),
		Chart:       chart,
		GeneratedAt: time.Now().UTC(),
		Figure:      fig,
	}
}
