// Package numfit wraps the least-squares routines the chart builders need:
// simple linear regression, regression through the origin, and polynomial
// fitting of arbitrary degree.
package numfit

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Sentinel errors for fit preconditions.
var (
	ErrInsufficientData = errors.New("insufficient data points")
	ErrMismatchedLength = errors.New("x and y lengths differ")
	ErrDegenerate       = errors.New("x values are degenerate")
)

// Regression holds the result of a simple linear regression y = slope*x +
// intercept.
type Regression struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RValue    float64 `json:"rvalue"`
	R2        float64 `json:"r2"`
	PValue    float64 `json:"pvalue"`
	StdErr    float64 `json:"stderr"`
}

// Linregress fits y = slope*x + intercept by ordinary least squares and
// reports the correlation coefficient, the two-sided p-value for a zero
// slope, and the standard error of the slope estimate.
func Linregress(x, y []float64) (Regression, error) {
	if err := checkSeries(x, y); err != nil {
		return Regression{}, err
	}

	intercept, slope := stat.LinearRegression(x, y, nil, false)
	r := stat.Correlation(x, y, nil)

	n := float64(len(x))
	reg := Regression{
		Slope:     slope,
		Intercept: intercept,
		RValue:    r,
		R2:        r * r,
	}

	if len(x) > 2 {
		// Residual-based slope standard error.
		var rss, sxx float64
		xmean := stat.Mean(x, nil)
		for i := range x {
			resid := y[i] - (slope*x[i] + intercept)
			rss += resid * resid
			sxx += (x[i] - xmean) * (x[i] - xmean)
		}
		if sxx > 0 && rss >= 0 {
			reg.StdErr = math.Sqrt(rss / ((n - 2) * sxx))
		}

		// Two-sided p-value for slope == 0 from the t statistic.
		if r2 := r * r; r2 < 1 {
			t := r * math.Sqrt((n-2)/(1-r2))
			dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: n - 2}
			reg.PValue = 2 * (1 - dist.CDF(math.Abs(t)))
		}
	}

	return reg, nil
}

// OLSThroughOrigin fits y = slope*x with the intercept pinned to zero and
// returns the slope with the fitted values.
func OLSThroughOrigin(x, y []float64) (slope float64, fitted []float64, err error) {
	if err := checkSeries(x, y); err != nil {
		return 0, nil, err
	}

	var sxy, sxx float64
	for i := range x {
		sxy += x[i] * y[i]
		sxx += x[i] * x[i]
	}
	if sxx == 0 {
		return 0, nil, ErrDegenerate
	}

	slope = sxy / sxx
	fitted = make([]float64, len(x))
	for i := range x {
		fitted[i] = slope * x[i]
	}
	return slope, fitted, nil
}

// PolyFit fits a polynomial of the given degree by least squares and
// returns the coefficients highest degree first, along with the square
// root of the residual sum of squares.
func PolyFit(x, y []float64, degree int) (coeffs []float64, rootSS float64, err error) {
	if degree < 1 {
		return nil, 0, fmt.Errorf("degree %d: must be at least 1", degree)
	}
	if err := checkSeries(x, y); err != nil {
		return nil, 0, err
	}
	n, m := len(x), degree+1
	if n < m {
		return nil, 0, fmt.Errorf("degree %d with %d points: %w", degree, n, ErrInsufficientData)
	}

	// Vandermonde matrix with columns x^degree .. x^0.
	a := mat.NewDense(n, m, nil)
	for i := range x {
		v := 1.0
		for j := m - 1; j >= 0; j-- {
			a.Set(i, j, v)
			v *= x[i]
		}
	}

	// Scale each column to unit Euclidean norm before factorizing. The raw
	// Vandermonde system is near-singular for x magnitudes in the
	// thousands at the degrees the fit charts use.
	scale := make([]float64, m)
	for j := 0; j < m; j++ {
		var ss float64
		for i := 0; i < n; i++ {
			ss += a.At(i, j) * a.At(i, j)
		}
		scale[j] = math.Sqrt(ss)
		if scale[j] == 0 {
			scale[j] = 1
		}
		for i := 0; i < n; i++ {
			a.Set(i, j, a.At(i, j)/scale[j])
		}
	}
	b := mat.NewDense(n, 1, append([]float64(nil), y...))

	var qr mat.QR
	qr.Factorize(a)
	var sol mat.Dense
	if err := qr.SolveTo(&sol, false, b); err != nil {
		return nil, 0, fmt.Errorf("solve degree-%d fit: %w", degree, err)
	}

	coeffs = make([]float64, m)
	for j := 0; j < m; j++ {
		coeffs[j] = sol.At(j, 0) / scale[j]
	}

	var rss float64
	for i := range x {
		resid := y[i] - PolyVal(coeffs, x[i])
		rss += resid * resid
	}
	return coeffs, math.Sqrt(rss), nil
}

// PolyVal evaluates a polynomial with coefficients ordered highest degree
// first, matching PolyFit output.
func PolyVal(coeffs []float64, x float64) float64 {
	var v float64
	for _, c := range coeffs {
		v = v*x + c
	}
	return v
}

// Eval applies PolyVal across a series.
func Eval(coeffs, xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = PolyVal(coeffs, x)
	}
	return out
}

func checkSeries(x, y []float64) error {
	if len(x) != len(y) {
		return ErrMismatchedLength
	}
	if len(x) < 2 {
		return ErrInsufficientData
	}
	allEqual := true
	for _, v := range x[1:] {
		if v != x[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return ErrDegenerate
	}
	return nil
}
