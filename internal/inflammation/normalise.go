package inflammation

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Normalise rescales each patient's row by that row's maximum so every value
// lands in [0, 1]. The input is left untouched.
//
// Any negative cell (including -Inf) fails the whole call with an
// *InvalidMeasurementError before anything is computed. The row maximum
// ignores NaN cells. Rows without a positive maximum, such as all-zero rows,
// come back as zeros, and any NaN or infinite quotient is written as 0.
func Normalise(m mat.Matrix, opts ...Option) (*mat.Dense, error) {
	p, d, err := checkNonEmpty(m)
	if err != nil {
		return nil, err
	}
	if err := checkNonNegative(m, p, d); err != nil {
		return nil, err
	}

	o := buildOptions(opts)
	out := mat.NewDense(p, d, nil)
	o.forEach(p, p*d, func(i int) {
		row := mat.Row(nil, i, m)
		normaliseRow(row)
		out.SetRow(i, row)
	})
	return out, nil
}

func checkNonNegative(m mat.Matrix, p, d int) error {
	for i := 0; i < p; i++ {
		for j := 0; j < d; j++ {
			if v := m.At(i, j); v < 0 {
				return &InvalidMeasurementError{Row: i, Col: j, Value: v}
			}
		}
	}
	return nil
}

// normaliseRow rewrites row in place. The row must hold no negative values.
func normaliseRow(row []float64) {
	peak := rowMax(row)
	if !(peak > 0) {
		for j := range row {
			row[j] = 0
		}
		return
	}
	for j, v := range row {
		q := v / peak
		if math.IsNaN(q) || math.IsInf(q, 0) || q < 0 {
			q = 0
		}
		row[j] = q
	}
}

// rowMax is the maximum over non-NaN values, or NaN when every value is NaN.
func rowMax(row []float64) float64 {
	peak := math.NaN()
	for _, v := range row {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(peak) || v > peak {
			peak = v
		}
	}
	return peak
}
