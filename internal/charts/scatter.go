package charts

import (
	"fmt"

	"pulsecli/internal/dataset"
	"pulsecli/internal/figure"
)

// DefaultSizeRef is the marker scaling factor used when ScatterOptions
// leaves SizeRef unset.
const DefaultSizeRef = 2

// ScatterOptions switches the scatter builder between its variants.
// Category wins over Scale; Fits apply only to the plain variant.
type ScatterOptions struct {
	// Fits names derived columns to overlay as dashed fit series.
	Fits []string
	// XLog and YLog switch the axes to log scale.
	XLog bool
	YLog bool
	// Category segments points into one trace per group of this label
	// column.
	Category string
	// Scale sizes and colors markers by this numeric column.
	Scale string
	// SizeRef tunes marker area scaling when Scale is set.
	SizeRef float64
	// Annotations are placed on the layout as given.
	Annotations []figure.Annotation
}

// Scatter builds a scatter chart of y against x.
func Scatter(t *dataset.Table, x, y string, opts ScatterOptions) (*figure.Figure, error) {
	var (
		data  []figure.Trace
		title string
	)

	switch {
	case opts.Category != "":
		groups, err := t.GroupBy(opts.Category)
		if err != nil {
			return nil, fmt.Errorf("scatter: %w", err)
		}
		for i, g := range groups {
			xs, err := g.Table.Numeric(x)
			if err != nil {
				return nil, fmt.Errorf("scatter group %q: %w", g.Name, err)
			}
			ysVals, err := g.Table.Numeric(y)
			if err != nil {
				return nil, fmt.Errorf("scatter group %q: %w", g.Name, err)
			}
			data = append(data, figure.Trace{
				X:      xs,
				Y:      ysVals,
				Mode:   "markers",
				Text:   g.Table.Titles(),
				Name:   g.Name,
				Marker: &figure.Marker{Size: 8, Symbol: i + 2},
			})
		}
		title = fmt.Sprintf("%s vs %s by %s", titleize(y), titleize(x), titleize(opts.Category))

	case opts.Scale != "":
		xs, ysVals, err := columns(t, x, y)
		if err != nil {
			return nil, fmt.Errorf("scatter: %w", err)
		}
		scale, err := t.Numeric(opts.Scale)
		if err != nil {
			return nil, fmt.Errorf("scatter: %w", err)
		}
		sizeref := opts.SizeRef
		if sizeref == 0 {
			sizeref = DefaultSizeRef
		}
		data = []figure.Trace{{
			X:    xs,
			Y:    ysVals,
			Mode: "markers",
			Text: t.Titles(),
			Marker: &figure.Marker{
				Size:       scale,
				Line:       &figure.Line{Color: "black", Width: 0.5},
				SizeMode:   "area",
				SizeRef:    sizeref,
				SizeMin:    2,
				Opacity:    0.8,
				ColorScale: "Viridis",
				Color:      scale,
				ShowScale:  true,
			},
		}}
		title = fmt.Sprintf("%s vs %s Scaled by %s", titleize(y), titleize(x), titleize(opts.Scale))

	default:
		c := t.Copy()
		if err := c.SortByColumn(x); err != nil {
			return nil, fmt.Errorf("scatter: %w", err)
		}
		xs, ysVals, err := columns(c, x, y)
		if err != nil {
			return nil, fmt.Errorf("scatter: %w", err)
		}
		data = []figure.Trace{{
			X:    xs,
			Y:    ysVals,
			Mode: "markers",
			Text: c.Titles(),
			Name: "observations",
			Marker: &figure.Marker{
				Size:    12,
				Color:   "blue",
				Opacity: 0.8,
				Line:    &figure.Line{Color: "black"},
			},
		}}
		title = fmt.Sprintf("%s vs %s", titleize(y), titleize(x))

		for _, fit := range opts.Fits {
			fitVals, err := c.Numeric(fit)
			if err != nil {
				return nil, fmt.Errorf("scatter fit %q: %w", fit, err)
			}
			data = append(data, figure.Trace{
				X:      xs,
				Y:      fitVals,
				Mode:   "lines+markers",
				Marker: &figure.Marker{Size: 8, Opacity: 0.6},
				Line:   &figure.Line{Dash: "dash"},
				Name:   fit,
			})
		}
		if len(opts.Fits) > 0 {
			title += " with Fit"
		}
	}

	layout := figure.Layout{
		Title:       title,
		Annotations: opts.Annotations,
		XAxis:       logAxis(titleize(x), opts.XLog),
		YAxis:       logAxis(titleize(y), opts.YLog),
		Font:        &figure.Font{Size: 14},
	}
	return figure.New(data, layout), nil
}

func logAxis(title string, log bool) *figure.Axis {
	axis := &figure.Axis{Title: title}
	if log {
		axis.Title += " (log scale)"
		axis.Type = "log"
	}
	return axis
}

func columns(t *dataset.Table, x, y string) ([]float64, []float64, error) {
	xs, err := t.Numeric(x)
	if err != nil {
		return nil, nil, err
	}
	ys, err := t.Numeric(y)
	if err != nil {
		return nil, nil, err
	}
	return xs, ys, nil
}
