package charts

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsecli/internal/dataset"
)

func TestScatterPlain(t *testing.T) {
	fig, err := Scatter(testTable(), "word_count", "claps", ScatterOptions{})
	require.NoError(t, err)

	require.Len(t, fig.Data, 1)
	trace := fig.Data[0]
	assert.Equal(t, "markers", trace.Mode)
	assert.Equal(t, "observations", trace.Name)
	assert.Equal(t, "blue", trace.Marker.Color)

	// Points come back sorted by x.
	xs, ok := trace.X.([]float64)
	require.True(t, ok)
	assert.True(t, sort.Float64sAreSorted(xs))

	assert.Equal(t, "Claps vs Word Count", fig.Layout.Title)
	assert.Equal(t, "Word Count", fig.Layout.XAxis.Title)
	assert.Equal(t, "Claps", fig.Layout.YAxis.Title)
}

func TestScatterLogAxes(t *testing.T) {
	fig, err := Scatter(testTable(), "word_count", "claps", ScatterOptions{XLog: true, YLog: true})
	require.NoError(t, err)

	assert.Equal(t, "Word Count (log scale)", fig.Layout.XAxis.Title)
	assert.Equal(t, "log", fig.Layout.XAxis.Type)
	assert.Equal(t, "Claps (log scale)", fig.Layout.YAxis.Title)
	assert.Equal(t, "log", fig.Layout.YAxis.Type)
}

func TestScatterByCategory(t *testing.T) {
	fig, err := Scatter(testTable(), "word_count", "claps", ScatterOptions{Category: "publication"})
	require.NoError(t, err)

	require.Len(t, fig.Data, 2)
	assert.Equal(t, "alpha", fig.Data[0].Name)
	assert.Equal(t, 2, fig.Data[0].Marker.Symbol)
	assert.Equal(t, "beta", fig.Data[1].Name)
	assert.Equal(t, 3, fig.Data[1].Marker.Symbol)

	assert.Equal(t, "Claps vs Word Count by Publication", fig.Layout.Title)
}

func TestScatterScaled(t *testing.T) {
	fig, err := Scatter(testTable(), "word_count", "claps", ScatterOptions{Scale: "reads"})
	require.NoError(t, err)

	require.Len(t, fig.Data, 1)
	marker := fig.Data[0].Marker
	assert.Equal(t, "area", marker.SizeMode)
	assert.Equal(t, float64(DefaultSizeRef), marker.SizeRef)
	assert.Equal(t, 2.0, marker.SizeMin)
	assert.Equal(t, "Viridis", marker.ColorScale)
	assert.True(t, marker.ShowScale)
	assert.Len(t, marker.Size, 10)

	assert.Equal(t, "Claps vs Word Count Scaled by Reads", fig.Layout.Title)
}

func TestScatterScaledCustomSizeRef(t *testing.T) {
	fig, err := Scatter(testTable(), "word_count", "claps", ScatterOptions{Scale: "reads", SizeRef: 5})
	require.NoError(t, err)
	assert.Equal(t, 5.0, fig.Data[0].Marker.SizeRef)
}

func TestScatterWithFits(t *testing.T) {
	table := testTable().Copy()
	vals := make([]float64, table.Len())
	for i := range vals {
		vals[i] = float64(i)
	}
	require.NoError(t, table.AddColumn("fit_values", vals))

	fig, err := Scatter(table, "word_count", "claps", ScatterOptions{Fits: []string{"fit_values"}})
	require.NoError(t, err)

	require.Len(t, fig.Data, 2)
	fit := fig.Data[1]
	assert.Equal(t, "fit_values", fit.Name)
	assert.Equal(t, "lines+markers", fit.Mode)
	assert.Equal(t, "dash", fit.Line.Dash)

	assert.Equal(t, "Claps vs Word Count with Fit", fig.Layout.Title)
}

func TestScatterErrors(t *testing.T) {
	tests := []struct {
		name string
		x, y string
		opts ScatterOptions
	}{
		{name: "missing x", x: "views", y: "claps"},
		{name: "missing y", x: "claps", y: "views"},
		{name: "missing category", x: "word_count", y: "claps", opts: ScatterOptions{Category: "tag"}},
		{name: "missing scale", x: "word_count", y: "claps", opts: ScatterOptions{Scale: "views"}},
		{name: "missing fit column", x: "word_count", y: "claps", opts: ScatterOptions{Fits: []string{"nope"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Scatter(testTable(), tt.x, tt.y, tt.opts)
			require.Error(t, err)
			assert.ErrorIs(t, err, dataset.ErrColumnNotFound)
		})
	}
}
