package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"pulsecli/internal/charts"
	"pulsecli/internal/dataset"
	"pulsecli/internal/fetch"
	"pulsecli/internal/services"
)

func main() {
	in := flag.String("in", "", "dataset file (csv, xlsx, or saved stats html)")
	fetchURL := flag.String("fetch", "", "fetch the stats page at this URL instead of reading a file")
	out := flag.String("out", "figures", "output directory for figure JSON files")
	chart := flag.String("chart", "bundle", "chart to build: histogram, cumulative, scatter, polyfit, regression, interactive, or bundle")
	x := flag.String("x", "", "x column")
	y := flag.String("y", "", "y column, or two comma-separated columns for a dual-axis cumulative plot")
	category := flag.String("category", "", "label column to segment by")
	scale := flag.String("scale", "", "numeric column to size markers by")
	degree := flag.Int("degree", charts.DefaultPolyDegree, "maximum polynomial fit degree")
	xlog := flag.Bool("xlog", false, "log-scale x axis")
	ylog := flag.Bool("ylog", false, "log-scale y axis")
	title := flag.String("title", "", "base title for the interactive plot")
	timeAxis := flag.Bool("time", false, "treat the x axis as time in the interactive plot")
	intercept0 := flag.Bool("intercept0", false, "pin the regression intercept to zero")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	ctx := context.Background()

	table, err := loadTable(ctx, *in, *fetchURL, logger)
	if err != nil {
		slog.Error("Failed to load dataset", "error", err)
		os.Exit(1)
	}
	slog.Info("Dataset loaded", "rows", table.Len())

	if err := os.MkdirAll(*out, 0755); err != nil {
		slog.Error("Failed to create output directory", "error", err)
		os.Exit(1)
	}

	service := services.NewChartServiceFromTable(table, logger)

	if *chart == "bundle" {
		if err := writeBundle(ctx, service, *x, *y, *category, *out); err != nil {
			slog.Error("Failed to build figure bundle", "error", err)
			os.Exit(1)
		}
		return
	}

	env, err := buildOne(ctx, service, *chart, buildParams{
		x: *x, y: *y, category: *category, scale: *scale,
		degree: *degree, xlog: *xlog, ylog: *ylog,
		title: *title, timeAxis: *timeAxis, intercept0: *intercept0,
	})
	if err != nil {
		slog.Error("Failed to build figure", "chart", *chart, "error", err)
		os.Exit(1)
	}
	path := filepath.Join(*out, *chart+".json")
	if err := writeFigure(path, env); err != nil {
		slog.Error("Failed to write figure", "path", path, "error", err)
		os.Exit(1)
	}
	slog.Info("Figure written", "path", path, "figure_id", env.ID)
}

func loadTable(ctx context.Context, in, fetchURL string, logger *slog.Logger) (*dataset.Table, error) {
	if fetchURL != "" {
		fetcher := fetch.NewFetcher(logger, 2*time.Minute)
		return fetcher.StatsPage(ctx, fetchURL)
	}
	if in == "" {
		return nil, fmt.Errorf("either -in or -fetch is required")
	}
	return dataset.LoadFile(in, dataset.FormatAuto)
}

type buildParams struct {
	x, y, category, scale string
	degree                int
	xlog, ylog            bool
	title                 string
	timeAxis              bool
	intercept0            bool
}

func buildOne(ctx context.Context, service *services.ChartService, chart string, p buildParams) (*services.FigureEnvelope, error) {
	switch chart {
	case "histogram":
		return service.Histogram(ctx, p.x, p.category)
	case "cumulative":
		return service.Cumulative(ctx, splitColumns(p.y), p.category)
	case "scatter":
		return service.Scatter(ctx, p.x, p.y, charts.ScatterOptions{
			XLog: p.xlog, YLog: p.ylog,
			Category: p.category, Scale: p.scale,
		})
	case "polyfit":
		return service.PolyFits(ctx, p.x, p.y, p.degree)
	case "regression":
		return service.Regression(ctx, p.x, p.y, p.intercept0)
	case "interactive":
		title := p.title
		if title == "" {
			title = fmt.Sprintf("%s vs %s", p.y, p.x)
		}
		return service.Interactive(ctx, p.x, p.y, title, charts.InteractiveOptions{TimeAxis: p.timeAxis})
	default:
		return nil, fmt.Errorf("unknown chart %q", chart)
	}
}

// writeBundle emits the standard exploration set for one x/y pair: the
// distribution of y, its cumulative series, the scatter, and the fits.
func writeBundle(ctx context.Context, service *services.ChartService, x, y, category, out string) error {
	if x == "" || y == "" {
		return fmt.Errorf("-x and -y are required for a bundle")
	}

	builds := map[string]func() (*services.FigureEnvelope, error){
		"histogram": func() (*services.FigureEnvelope, error) {
			return service.Histogram(ctx, y, category)
		},
		"cumulative": func() (*services.FigureEnvelope, error) {
			return service.Cumulative(ctx, []string{y}, category)
		},
		"scatter": func() (*services.FigureEnvelope, error) {
			return service.Scatter(ctx, x, y, charts.ScatterOptions{Category: category})
		},
		"polyfit": func() (*services.FigureEnvelope, error) {
			return service.PolyFits(ctx, x, y, charts.DefaultPolyDegree)
		},
		"regression": func() (*services.FigureEnvelope, error) {
			return service.Regression(ctx, x, y, false)
		},
	}

	g, _ := errgroup.WithContext(ctx)
	for name, build := range builds {
		g.Go(func() error {
			env, err := build()
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			path := filepath.Join(out, name+".json")
			if err := writeFigure(path, env); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			slog.Info("Figure written", "path", path, "figure_id", env.ID)
			return nil
		})
	}
	return g.Wait()
}

func writeFigure(path string, env *services.FigureEnvelope) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create figure file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(env); err != nil {
		return fmt.Errorf("encode figure: %w", err)
	}
	return nil
}

func splitColumns(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
