// Package figure defines the declarative chart description consumed by the
// interactive plotting surface. A Figure is an ordered list of traces plus
// one layout, serialized to the Plotly JSON schema. Values are populated by
// the chart builders and never mutated afterwards.
package figure

// Trace describes one rendered data series.
type Trace struct {
	Type   string    `json:"type,omitempty"`
	X      any       `json:"x,omitempty"`
	Y      []float64 `json:"y,omitempty"`
	YAxis  string    `json:"yaxis,omitempty"`
	Mode   string    `json:"mode,omitempty"`
	Name   string    `json:"name,omitempty"`
	Text   []string  `json:"text,omitempty"`
	Marker *Marker   `json:"marker,omitempty"`
	Line   *Line     `json:"line,omitempty"`
}

// Marker describes marker styling for a trace. Size and Color accept either
// a scalar or a per-point array, matching the surface's schema.
type Marker struct {
	Size       any     `json:"size,omitempty"`
	Color      any     `json:"color,omitempty"`
	Opacity    float64 `json:"opacity,omitempty"`
	Symbol     int     `json:"symbol,omitempty"`
	Line       *Line   `json:"line,omitempty"`
	SizeMode   string  `json:"sizemode,omitempty"`
	SizeRef    float64 `json:"sizeref,omitempty"`
	SizeMin    float64 `json:"sizemin,omitempty"`
	ColorScale string  `json:"colorscale,omitempty"`
	ShowScale  bool    `json:"showscale,omitempty"`
}

// Line describes line styling, used both for trace lines and marker outlines.
type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
	Dash  string  `json:"dash,omitempty"`
}

// Font describes text styling.
type Font struct {
	Size  int    `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
}

// Axis describes one chart axis.
type Axis struct {
	Title         string         `json:"title,omitempty"`
	Type          string         `json:"type,omitempty"`
	Color         string         `json:"color,omitempty"`
	Overlaying    string         `json:"overlaying,omitempty"`
	Side          string         `json:"side,omitempty"`
	TickFont      *Font          `json:"tickfont,omitempty"`
	TitleFont     *Font          `json:"titlefont,omitempty"`
	RangeSelector *RangeSelector `json:"rangeselector,omitempty"`
	RangeSlider   *RangeSlider   `json:"rangeslider,omitempty"`
}

// RangeSelector holds the quick-range buttons shown above a time axis.
type RangeSelector struct {
	Buttons []SelectorButton `json:"buttons"`
}

// SelectorButton is one quick-range button. The "all" button carries only
// a step.
type SelectorButton struct {
	Count    int    `json:"count,omitempty"`
	Label    string `json:"label,omitempty"`
	Step     string `json:"step"`
	StepMode string `json:"stepmode,omitempty"`
}

// RangeSlider toggles the draggable range slider under a time axis.
// Visible serializes unconditionally since the surface defaults it on for
// some chart kinds and off for others.
type RangeSlider struct {
	Visible bool `json:"visible"`
}

// Annotation is free-standing text placed at data coordinates. ShowArrow
// serializes unconditionally because the surface defaults it to true.
type Annotation struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Text      string  `json:"text"`
	ShowArrow bool    `json:"showarrow"`
	Font      *Font   `json:"font,omitempty"`
}

// Layout holds chart-wide presentation settings.
type Layout struct {
	Title       string       `json:"title,omitempty"`
	Width       int          `json:"width,omitempty"`
	Height      int          `json:"height,omitempty"`
	XAxis       *Axis        `json:"xaxis,omitempty"`
	YAxis       *Axis        `json:"yaxis,omitempty"`
	YAxis2      *Axis        `json:"yaxis2,omitempty"`
	Font        *Font        `json:"font,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
	UpdateMenus []UpdateMenu `json:"updatemenus,omitempty"`
}

// Figure combines traces with a layout for rendering.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// New returns a figure over the given traces and layout.
func New(data []Trace, layout Layout) *Figure {
	return &Figure{Data: data, Layout: layout}
}
