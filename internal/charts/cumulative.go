package charts

import (
	"fmt"

	"pulsecli/internal/dataset"
	"pulsecli/internal/figure"
)

// Cumulative builds a running-total time series over published_date. One y
// column plots a single series, two y columns plot against dual y axes,
// and a category segments a single y column into one series per group.
func Cumulative(t *dataset.Table, ys []string, category string) (*figure.Figure, error) {
	switch {
	case len(ys) == 0:
		return nil, fmt.Errorf("cumulative: no y column given")
	case len(ys) > 2:
		return nil, fmt.Errorf("cumulative: at most two y columns, got %d", len(ys))
	case len(ys) == 2 && category != "":
		return nil, fmt.Errorf("cumulative: dual axis and category cannot combine")
	}

	if category != "" {
		return cumulativeByCategory(t, ys[0], category)
	}
	if len(ys) == 2 {
		return cumulativeDual(t, ys[0], ys[1])
	}
	return cumulativeSingle(t, ys[0])
}

func cumulativeByCategory(t *dataset.Table, y, category string) (*figure.Figure, error) {
	groups, err := t.GroupBy(category)
	if err != nil {
		return nil, fmt.Errorf("cumulative: %w", err)
	}

	var data []figure.Trace
	for i, g := range groups {
		grp := g.Table.Copy()
		grp.SortByDate()
		cum, err := grp.CumSum(y)
		if err != nil {
			return nil, fmt.Errorf("cumulative group %q: %w", g.Name, err)
		}
		data = append(data, figure.Trace{
			X:    grp.Dates(),
			Y:    cum,
			Mode: "lines+markers",
			Text: grp.Titles(),
			Name: g.Name,
			Marker: &figure.Marker{
				Size:    10,
				Opacity: 0.8,
				Symbol:  i + 2,
			},
		})
	}

	layout := cumulativeLayout(fmt.Sprintf("Cumulative %s by %s", titleize(y), titleize(category)))
	layout.YAxis = &figure.Axis{Title: titleize(y)}
	return figure.New(data, *layout), nil
}

func cumulativeSingle(t *dataset.Table, y string) (*figure.Figure, error) {
	c := t.Copy()
	c.SortByDate()
	cum, err := c.CumSum(y)
	if err != nil {
		return nil, fmt.Errorf("cumulative: %w", err)
	}

	data := []figure.Trace{{
		X:    c.Dates(),
		Y:    cum,
		Mode: "lines+markers",
		Text: c.Titles(),
		Marker: &figure.Marker{
			Size:    12,
			Color:   "blue",
			Opacity: 0.6,
			Line:    &figure.Line{Color: "black"},
		},
	}}

	layout := cumulativeLayout("Cumulative " + titleize(y))
	layout.YAxis = &figure.Axis{Title: titleize(y)}
	return figure.New(data, *layout), nil
}

func cumulativeDual(t *dataset.Table, y0, y1 string) (*figure.Figure, error) {
	c := t.Copy()
	c.SortByDate()
	cum0, err := c.CumSum(y0)
	if err != nil {
		return nil, fmt.Errorf("cumulative: %w", err)
	}
	cum1, err := c.CumSum(y1)
	if err != nil {
		return nil, fmt.Errorf("cumulative: %w", err)
	}

	data := []figure.Trace{
		{
			X:    c.Dates(),
			Y:    cum0,
			Name: titleize(y0),
			Mode: "lines+markers",
			Text: c.Titles(),
			Marker: &figure.Marker{
				Size:    10,
				Color:   "blue",
				Opacity: 0.6,
				Line:    &figure.Line{Color: "black"},
			},
		},
		{
			X:     c.Dates(),
			Y:     cum1,
			YAxis: "y2",
			Name:  titleize(y1),
			Mode:  "lines+markers",
			Text:  c.Titles(),
			Marker: &figure.Marker{
				Size:    10,
				Color:   "red",
				Opacity: 0.6,
				Line:    &figure.Line{Color: "black"},
			},
		},
	}

	layout := cumulativeLayout(fmt.Sprintf("Cumulative %s and %s", titleize(y0), titleize(y1)))
	layout.YAxis = &figure.Axis{Title: titleize(y0), Color: "blue"}
	layout.YAxis2 = &figure.Axis{
		Title:      titleize(y1),
		Color:      "red",
		Overlaying: "y",
		Side:       "right",
	}
	return figure.New(data, *layout), nil
}

func cumulativeLayout(title string) *figure.Layout {
	return &figure.Layout{
		Title: title,
		XAxis: &figure.Axis{Title: "Published Date", Type: "date"},
		Font:  &figure.Font{Size: 14},
	}
}
