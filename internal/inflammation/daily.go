package inflammation

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// DailyMean returns the arithmetic mean across patients for each day.
// NaN cells propagate into their day's mean.
func DailyMean(m mat.Matrix, opts ...Option) ([]float64, error) {
	return reduceDays(m, opts, func(col []float64) float64 {
		return stat.Mean(col, nil)
	})
}

// DailyMax returns the maximum across patients for each day. A day holding
// any NaN reports NaN.
func DailyMax(m mat.Matrix, opts ...Option) ([]float64, error) {
	return reduceDays(m, opts, func(col []float64) float64 {
		if floats.HasNaN(col) {
			return math.NaN()
		}
		return floats.Max(col)
	})
}

// DailyMin returns the minimum across patients for each day. A day holding
// any NaN reports NaN.
func DailyMin(m mat.Matrix, opts ...Option) ([]float64, error) {
	return reduceDays(m, opts, func(col []float64) float64 {
		if floats.HasNaN(col) {
			return math.NaN()
		}
		return floats.Min(col)
	})
}

// reduceDays applies fn to every column of m. Each column is copied out, so
// fn may not observe or alter m.
func reduceDays(m mat.Matrix, opts []Option, fn func(col []float64) float64) ([]float64, error) {
	p, d, err := checkNonEmpty(m)
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	out := make([]float64, d)
	o.forEach(d, p*d, func(j int) {
		out[j] = fn(mat.Col(nil, j, m))
	})
	return out, nil
}
