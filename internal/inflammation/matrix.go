// Package inflammation holds the numerical core: loading a patient × day
// measurement matrix and computing daily aggregates and per-patient
// normalisation over it.
//
// Rows are patients, columns are days. Matrices are gonum dense matrices;
// every operation reads its input through the mat.Matrix interface and
// returns fresh values, so callers may share a loaded matrix freely.
package inflammation

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// NewMatrix builds a measurement matrix from row slices. Every row must have
// the same length; the data is copied.
func NewMatrix(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyInput
	}
	days := len(rows[0])
	data := make([]float64, 0, len(rows)*days)
	for i, row := range rows {
		if len(row) != days {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrMalformedInput, i, len(row), days)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), days, data), nil
}

// Rows copies m into row slices.
func Rows(m mat.Matrix) [][]float64 {
	p, d := shape(m)
	out := make([][]float64, p)
	for i := 0; i < p; i++ {
		out[i] = make([]float64, d)
		for j := 0; j < d; j++ {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}

// Shape returns (patients, days); nil and zero-value matrices report (0, 0).
func Shape(m mat.Matrix) (patients, days int) {
	return shape(m)
}

func shape(m mat.Matrix) (int, int) {
	if m == nil {
		return 0, 0
	}
	if d, ok := m.(*mat.Dense); ok && (d == nil || d.IsEmpty()) {
		return 0, 0
	}
	return m.Dims()
}

// checkNonEmpty returns the shape of m or ErrEmptyInput.
func checkNonEmpty(m mat.Matrix) (int, int, error) {
	p, d := shape(m)
	if p == 0 || d == 0 {
		return 0, 0, fmt.Errorf("%w: matrix has shape (%d, %d)", ErrEmptyInput, p, d)
	}
	return p, d, nil
}
