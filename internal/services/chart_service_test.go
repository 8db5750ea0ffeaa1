package services

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsecli/internal/charts"
	"pulsecli/internal/config"
	"pulsecli/internal/dataset"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func serviceTable() *dataset.Table {
	day := func(d int) time.Time {
		return time.Date(2024, time.May, d, 0, 0, 0, 0, time.UTC)
	}
	return dataset.New([]dataset.Entry{
		{PublishedDate: day(1), Title: "A", Kind: dataset.KindArticle,
			Values: map[string]float64{"claps": 10, "word_count": 500}},
		{PublishedDate: day(2), Title: "B", Kind: dataset.KindArticle,
			Values: map[string]float64{"claps": 21, "word_count": 1000}},
		{PublishedDate: day(3), Title: "C", Kind: dataset.KindArticle,
			Values: map[string]float64{"claps": 29, "word_count": 1500}},
		{PublishedDate: day(4), Title: "D", Kind: dataset.KindArticle,
			Values: map[string]float64{"claps": 42, "word_count": 2000}},
		{PublishedDate: day(5), Title: "Re: A", Kind: dataset.KindResponse,
			Values: map[string]float64{"claps": 4, "word_count": 150}},
		{PublishedDate: day(6), Title: "Re: B", Kind: dataset.KindResponse,
			Values: map[string]float64{"claps": 7, "word_count": 300}},
	})
}

func TestChartServiceBuilds(t *testing.T) {
	svc := NewChartServiceFromTable(serviceTable(), testLogger())
	ctx := context.Background()

	tests := []struct {
		name  string
		build func() (*FigureEnvelope, error)
		chart string
	}{
		{
			name:  "histogram",
			chart: "histogram",
			build: func() (*FigureEnvelope, error) { return svc.Histogram(ctx, "claps", "") },
		},
		{
			name:  "cumulative",
			chart: "cumulative",
			build: func() (*FigureEnvelope, error) { return svc.Cumulative(ctx, []string{"claps"}, "") },
		},
		{
			name:  "scatter",
			chart: "scatter",
			build: func() (*FigureEnvelope, error) {
				return svc.Scatter(ctx, "word_count", "claps", charts.ScatterOptions{})
			},
		},
		{
			name:  "interactive",
			chart: "interactive",
			build: func() (*FigureEnvelope, error) {
				return svc.Interactive(ctx, "word_count", "claps", "Claps vs Word Count", charts.InteractiveOptions{})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := tt.build()
			require.NoError(t, err)
			assert.NotEmpty(t, env.ID)
			assert.Equal(t, tt.chart, env.Chart)
			assert.False(t, env.GeneratedAt.IsZero())
			require.NotNil(t, env.Figure)
			assert.NotEmpty(t, env.Figure.Data)
		})
	}
}

func TestChartServicePolyFits(t *testing.T) {
	svc := NewChartServiceFromTable(serviceTable(), testLogger())

	env, err := svc.PolyFits(context.Background(), "word_count", "claps", 2)
	require.NoError(t, err)
	require.Len(t, env.FitStats, 2)
	assert.Nil(t, env.Regression)
}

func TestChartServiceRegression(t *testing.T) {
	svc := NewChartServiceFromTable(serviceTable(), testLogger())

	env, err := svc.Regression(context.Background(), "word_count", "claps", false)
	require.NoError(t, err)
	require.NotNil(t, env.Regression)
	assert.Greater(t, env.Regression.Slope, 0.0)
	assert.Empty(t, env.FitStats)
}

func TestChartServiceBuildError(t *testing.T) {
	svc := NewChartServiceFromTable(serviceTable(), testLogger())

	_, err := svc.Histogram(context.Background(), "views", "")
	assert.ErrorIs(t, err, dataset.ErrColumnNotFound)
}

func TestChartServiceSummary(t *testing.T) {
	svc := NewChartServiceFromTable(serviceTable(), testLogger())

	s, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, s.Rows)
	assert.Equal(t, 4, s.Articles)
	assert.Equal(t, 2, s.Responses)
}

func TestChartServiceReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "articles.csv")
	write := func(rows string) {
		content := "published_date,title,claps\n" + rows
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	write("2024-05-01,A,10\n")

	svc, err := NewChartService(config.DatasetConfig{Path: path, Format: "csv"}, testLogger(), nil)
	require.NoError(t, err)

	s, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, s.Rows)

	write("2024-05-01,A,10\n2024-05-02,B,20\n")
	require.NoError(t, svc.Reload(context.Background()))

	s, err = svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, s.Rows)
}

func TestChartServiceReloadKeepsTableOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "articles.csv")
	require.NoError(t, os.WriteFile(path, []byte("published_date,title,claps\n2024-05-01,A,10\n"), 0644))

	svc, err := NewChartService(config.DatasetConfig{Path: path, Format: "csv"}, testLogger(), nil)
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	assert.Error(t, svc.Reload(context.Background()))

	s, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, s.Rows)
}

func TestHealthServiceCheck(t *testing.T) {
	svc := NewChartServiceFromTable(serviceTable(), testLogger())
	health := NewHealthService(svc, "test")

	status := health.Check(context.Background())
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "test", status.Version)
	assert.Equal(t, 6, status.Rows)

	empty := NewChartServiceFromTable(dataset.New(nil), testLogger())
	status = NewHealthService(empty, "test").Check(context.Background())
	assert.Equal(t, "degraded", status.Status)
}
