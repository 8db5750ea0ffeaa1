package charts

import (
	"fmt"

	"pulsecli/internal/dataset"
	"pulsecli/internal/figure"
	"pulsecli/internal/numfit"
)

// DefaultPolyDegree is the highest fit degree used when callers leave the
// degree unset.
const DefaultPolyDegree = 6

// FitStat describes one polynomial fit: its trace name, the square root of
// its residual sum of squares, and its coefficients highest degree first.
type FitStat struct {
	Name         string    `json:"fit"`
	RMSE         float64   `json:"rmse"`
	Coefficients []float64 `json:"params"`
}

// PolyFits fits polynomials of degree 1 through degree to y over x and
// returns the fit statistics together with a scatter figure overlaying
// every fit as a dashed series.
func PolyFits(t *dataset.Table, x, y string, degree int) ([]FitStat, *figure.Figure, error) {
	if degree <= 0 {
		degree = DefaultPolyDegree
	}

	c := t.Copy()
	xs, err := c.Numeric(x)
	if err != nil {
		return nil, nil, fmt.Errorf("polyfit: %w", err)
	}
	ys, err := c.Numeric(y)
	if err != nil {
		return nil, nil, fmt.Errorf("polyfit: %w", err)
	}

	stats := make([]FitStat, 0, degree)
	fitNames := make([]string, 0, degree)
	for d := 1; d <= degree; d++ {
		coeffs, rmse, err := numfit.PolyFit(xs, ys, d)
		if err != nil {
			return nil, nil, fmt.Errorf("polyfit degree %d: %w", d, err)
		}
		name := fmt.Sprintf("fit degree = %d", d)
		if err := c.AddColumn(name, numfit.Eval(coeffs, xs)); err != nil {
			return nil, nil, fmt.Errorf("polyfit degree %d: %w", d, err)
		}
		stats = append(stats, FitStat{Name: name, RMSE: rmse, Coefficients: coeffs})
		fitNames = append(fitNames, name)
	}

	fig, err := Scatter(c, x, y, ScatterOptions{Fits: fitNames})
	if err != nil {
		return nil, nil, fmt.Errorf("polyfit: %w", err)
	}
	return stats, fig, nil
}

// RegressionSummary reports the fitted line behind a regression figure.
type RegressionSummary struct {
	Equation  string  `json:"equation"`
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RValue    float64 `json:"rvalue,omitempty"`
	PValue    float64 `json:"pvalue,omitempty"`
}

// LinearRegression fits a line to y over x, either through the origin or
// with a free intercept, and returns a scatter figure with the fitted
// series and the equation annotated near the top right of the data.
func LinearRegression(t *dataset.Table, x, y string, interceptZero bool) (*figure.Figure, *RegressionSummary, error) {
	c := t.Copy()
	xs, err := c.Numeric(x)
	if err != nil {
		return nil, nil, fmt.Errorf("regression: %w", err)
	}
	ys, err := c.Numeric(y)
	if err != nil {
		return nil, nil, fmt.Errorf("regression: %w", err)
	}

	var (
		fitted  []float64
		summary *RegressionSummary
	)
	if interceptZero {
		slope, fit, err := numfit.OLSThroughOrigin(xs, ys)
		if err != nil {
			return nil, nil, fmt.Errorf("regression: %w", err)
		}
		fitted = fit
		summary = &RegressionSummary{
			Equation: fmt.Sprintf("$%s = %.2f * %s$", y, slope, spaced(x)),
			Slope:    slope,
		}
	} else {
		reg, err := numfit.Linregress(xs, ys)
		if err != nil {
			return nil, nil, fmt.Errorf("regression: %w", err)
		}
		fitted = make([]float64, len(xs))
		for i, v := range xs {
			fitted[i] = reg.Slope*v + reg.Intercept
		}
		summary = &RegressionSummary{
			Equation:  fmt.Sprintf("$%s = %.2f * %s + %.2f$", y, reg.Slope, spaced(x), reg.Intercept),
			Slope:     reg.Slope,
			Intercept: reg.Intercept,
			RValue:    reg.RValue,
			PValue:    reg.PValue,
		}
	}

	if err := c.AddColumn("fit_values", fitted); err != nil {
		return nil, nil, fmt.Errorf("regression: %w", err)
	}

	maxX, err := c.Max(x)
	if err != nil {
		return nil, nil, fmt.Errorf("regression: %w", err)
	}
	maxY, err := c.Max(y)
	if err != nil {
		return nil, nil, fmt.Errorf("regression: %w", err)
	}
	annotations := []figure.Annotation{{
		X:         0.75 * maxX,
		Y:         0.9 * maxY,
		Text:      summary.Equation,
		ShowArrow: false,
		Font:      &figure.Font{Size: 32},
	}}

	fig, err := Scatter(c, x, y, ScatterOptions{
		Fits:        []string{"fit_values"},
		Annotations: annotations,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("regression: %w", err)
	}
	return fig, summary, nil
}
