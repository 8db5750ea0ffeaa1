package charts

import (
	"fmt"

	"pulsecli/internal/dataset"
	"pulsecli/internal/figure"
	"pulsecli/internal/numfit"
)

// DefaultEqPos places regression equations at 75% of the x range and 25%
// of the y range when InteractiveOptions leaves EqPos unset.
var DefaultEqPos = [2]float64{0.75, 0.25}

// InteractiveOptions tunes the article/response comparison plot.
type InteractiveOptions struct {
	// TimeAxis marks the x axis as time: the layout gains a range
	// selector and slider and no regression lines are fitted.
	TimeAxis bool
	// EqPos positions regression equation annotations as fractions of
	// the x and y data ranges.
	EqPos [2]float64
}

// Interactive builds the article/response comparison plot. When response
// rows exist the figure carries one trace per population plus a dropdown
// menu toggling between them; otherwise a single observation series is
// drawn. Off a time axis each plotted population also gets a fitted
// regression line and its equation annotation.
func Interactive(t *dataset.Table, x, y, baseTitle string, opts InteractiveOptions) (*figure.Figure, error) {
	if t.Len() == 0 {
		return nil, fmt.Errorf("interactive: %w", dataset.ErrEmptyTable)
	}

	eqPos := opts.EqPos
	if eqPos == [2]float64{} {
		eqPos = DefaultEqPos
	}
	timeAxis := opts.TimeAxis || x == dataset.ColPublishedDate

	articles, responses := t.Split()

	var (
		data        []figure.Trace
		annotations []figure.Annotation
		menus       []figure.UpdateMenu
	)

	if responses.Len() > 0 {
		// Article trace first so the menu visibility masks line up.
		artX, artXs, err := xValues(articles, x)
		if err != nil {
			return nil, fmt.Errorf("interactive articles: %w", err)
		}
		respX, respXs, err := xValues(responses, x)
		if err != nil {
			return nil, fmt.Errorf("interactive responses: %w", err)
		}
		artYs, err := articles.Numeric(y)
		if err != nil {
			return nil, fmt.Errorf("interactive articles: %w", err)
		}
		respYs, err := responses.Numeric(y)
		if err != nil {
			return nil, fmt.Errorf("interactive responses: %w", err)
		}

		data = []figure.Trace{
			{
				X:      artX,
				Y:      artYs,
				Mode:   "markers",
				Name:   "articles",
				Text:   articles.Titles(),
				Marker: &figure.Marker{Color: "blue", Size: 12},
			},
			{
				X:      respX,
				Y:      respYs,
				Mode:   "markers",
				Name:   "responses",
				Marker: &figure.Marker{Color: "green", Size: 12},
			},
		}

		var artAnn, respAnn *figure.Annotation
		if !timeAxis {
			pops := []struct {
				name  string
				color string
				xs    []float64
				ys    []float64
				ann   **figure.Annotation
			}{
				{"articles", "blue", artXs, artYs, &artAnn},
				{"responses", "green", respXs, respYs, &respAnn},
			}
			for _, pop := range pops {
				trace, ann, err := regressionTrace(pop.xs, pop.ys, pop.name+" linear fit", pop.color, eqPos)
				if err != nil {
					return nil, fmt.Errorf("interactive %s: %w", pop.name, err)
				}
				data = append(data, *trace)
				*pop.ann = ann
			}
			annotations = []figure.Annotation{*artAnn, *respAnn}
		}
		menus = figure.ArticleResponseMenu(baseTitle, artAnn, respAnn)
	} else {
		xAny, xs, err := xValues(articles, x)
		if err != nil {
			return nil, fmt.Errorf("interactive: %w", err)
		}
		ys, err := articles.Numeric(y)
		if err != nil {
			return nil, fmt.Errorf("interactive: %w", err)
		}

		data = []figure.Trace{{
			X:      xAny,
			Y:      ys,
			Mode:   "markers",
			Name:   "observations",
			Text:   articles.Titles(),
			Marker: &figure.Marker{Color: "blue", Size: 12},
		}}

		if !timeAxis {
			trace, ann, err := regressionTrace(xs, ys, "linear fit", "red", eqPos)
			if err != nil {
				return nil, fmt.Errorf("interactive: %w", err)
			}
			ann.Font = &figure.Font{Size: 16}
			data = append(data, *trace)
			annotations = []figure.Annotation{*ann}
		}
	}

	xaxis := &figure.Axis{
		Title:     titleize(x),
		TickFont:  &figure.Font{Size: 14},
		TitleFont: &figure.Font{Size: 16},
	}
	if timeAxis {
		xaxis.RangeSelector = &figure.RangeSelector{
			Buttons: []figure.SelectorButton{
				{Count: 1, Label: "1m", Step: "month", StepMode: "backward"},
				{Count: 6, Label: "6m", Step: "month", StepMode: "backward"},
				{Count: 1, Label: "YTD", Step: "year", StepMode: "todate"},
				{Count: 1, Label: "1y", Step: "year", StepMode: "backward"},
				{Step: "all"},
			},
		}
		xaxis.RangeSlider = &figure.RangeSlider{Visible: true}
	}

	layout := figure.Layout{
		Title:       baseTitle,
		Height:      600,
		Width:       900,
		Annotations: annotations,
		XAxis:       xaxis,
		YAxis: &figure.Axis{
			Title:     titleize(y),
			TickFont:  &figure.Font{Size: 14},
			TitleFont: &figure.Font{Size: 16},
		},
		UpdateMenus: menus,
	}
	return figure.New(data, layout), nil
}

// regressionTrace fits a line over the integer span of xs and returns the
// line trace plus its equation annotation positioned by eqPos fractions.
func regressionTrace(xs, ys []float64, name, color string, eqPos [2]float64) (*figure.Trace, *figure.Annotation, error) {
	reg, err := numfit.Linregress(xs, ys)
	if err != nil {
		return nil, nil, err
	}

	xi := intSpan(xs)
	line := make([]float64, len(xi))
	for i, v := range xi {
		line[i] = reg.Slope*v + reg.Intercept
	}

	trace := &figure.Trace{
		X:      xi,
		Y:      line,
		Mode:   "lines",
		Marker: &figure.Marker{Color: color},
		Line:   &figure.Line{Width: 4, Dash: "longdash"},
		Name:   name,
	}

	maxY := ys[0]
	for _, v := range ys[1:] {
		if v > maxY {
			maxY = v
		}
	}
	ann := &figure.Annotation{
		X:         xi[len(xi)-1] * eqPos[0],
		Y:         maxY * eqPos[1],
		Text:      fmt.Sprintf("$R^2 = %.2f; Y = %.2fX + %.2f$", reg.RValue, reg.Slope, reg.Intercept),
		ShowArrow: false,
		Font:      &figure.Font{Size: 16, Color: color},
	}
	return trace, ann, nil
}

// intSpan returns unit steps across the truncated range of xs. Spans
// narrower than one unit fall back to the raw endpoints so the fitted line
// still renders.
func intSpan(xs []float64) []float64 {
	min, max := xs[0], xs[0]
	for _, v := range xs[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	lo, hi := int(min), int(max)
	if hi <= lo {
		return []float64{min, max}
	}
	out := make([]float64, 0, hi-lo)
	for v := lo; v < hi; v++ {
		out = append(out, float64(v))
	}
	return out
}

// xValues resolves an x column for the comparison plot. published_date
// yields timestamps for the rendered axis and no numeric series.
func xValues(t *dataset.Table, x string) (any, []float64, error) {
	if x == dataset.ColPublishedDate {
		return t.Dates(), nil, nil
	}
	xs, err := t.Numeric(x)
	if err != nil {
		return nil, nil, err
	}
	return xs, xs, nil
}
