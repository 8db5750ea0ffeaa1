package charts

import (
	"fmt"

	"pulsecli/internal/dataset"
	"pulsecli/internal/figure"
)

// Histogram builds a distribution chart of the x column, with one trace
// per category group when category is set.
func Histogram(t *dataset.Table, x, category string) (*figure.Figure, error) {
	var data []figure.Trace

	if category != "" {
		groups, err := t.GroupBy(category)
		if err != nil {
			return nil, fmt.Errorf("histogram: %w", err)
		}
		for _, g := range groups {
			vals, err := g.Table.Numeric(x)
			if err != nil {
				return nil, fmt.Errorf("histogram group %q: %w", g.Name, err)
			}
			data = append(data, figure.Trace{
				Type: "histogram",
				X:    vals,
				Name: g.Name,
			})
		}
	} else {
		vals, err := t.Numeric(x)
		if err != nil {
			return nil, fmt.Errorf("histogram: %w", err)
		}
		data = []figure.Trace{{Type: "histogram", X: vals}}
	}

	title := titleize(x) + " Distribution"
	if category != "" {
		title += " by " + titleize(category)
	}

	layout := figure.Layout{
		Title: title,
		XAxis: &figure.Axis{Title: titleize(x)},
		YAxis: &figure.Axis{Title: "Count"},
	}
	return figure.New(data, layout), nil
}
