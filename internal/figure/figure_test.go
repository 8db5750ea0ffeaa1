package figure

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFigureSerialization(t *testing.T) {
	fig := New(
		[]Trace{{
			X:    []float64{1, 2},
			Y:    []float64{3, 4},
			Mode: "markers",
			Marker: &Marker{
				Size:  10,
				Color: "blue",
			},
		}},
		Layout{
			Title: "Demo",
			XAxis: &Axis{Title: "X"},
		},
	)

	raw, err := json.Marshal(fig)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	data, ok := decoded["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 1)

	trace, ok := data[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "markers", trace["mode"])

	// Unset fields stay out of the payload entirely.
	assert.NotContains(t, trace, "name")
	assert.NotContains(t, trace, "line")
	assert.NotContains(t, trace, "yaxis")

	layout, ok := decoded["layout"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Demo", layout["title"])
	assert.NotContains(t, layout, "yaxis")
	assert.NotContains(t, layout, "annotations")
}

func TestAnnotationShowArrowAlwaysSerialized(t *testing.T) {
	raw, err := json.Marshal(Annotation{X: 1, Y: 2, Text: "eq"})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"showarrow":false`)
}

func TestRangeSliderVisibleAlwaysSerialized(t *testing.T) {
	raw, err := json.Marshal(RangeSlider{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"visible":false}`, string(raw))
}

func TestMarkerPerPointSize(t *testing.T) {
	raw, err := json.Marshal(Marker{Size: []float64{1, 2, 3}, SizeMode: "area"})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"size":[1,2,3]`)
}
