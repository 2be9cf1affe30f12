package inflammation

import (
	"errors"
	"fmt"
)

// Sentinel errors. Match them with errors.Is; the typed errors below carry
// the diagnostic detail and still match their sentinel.
var (
	// ErrSourceNotFound is returned when an input source cannot be opened.
	ErrSourceNotFound = errors.New("inflammation: source not found")

	// ErrMalformedInput is returned for ragged rows or unparseable tokens.
	ErrMalformedInput = errors.New("inflammation: malformed input")

	// ErrInvalidMeasurement is returned when normalisation sees a negative cell.
	ErrInvalidMeasurement = errors.New("inflammation: measurement values must not be negative")

	// ErrEmptyInput is returned when a matrix or source has no rows or no columns.
	ErrEmptyInput = errors.New("inflammation: empty input")
)

// MalformedInputError describes where a source stopped making sense.
// Line is 1-based and counts physical lines (or sheet rows), including skipped
// comments and blank lines.
type MalformedInputError struct {
	Source string
	Line   int
	Column int    // 1-based token position; 0 when the whole row is at fault
	Token  string // offending token, if any
	Want   int    // expected token count for ragged rows
	Got    int    // actual token count for ragged rows
	Err    error  // underlying parse error, if any
}

func (e *MalformedInputError) Error() string {
	loc := e.Source
	if loc == "" {
		loc = "input"
	}
	if e.Line > 0 {
		loc = fmt.Sprintf("%s line %d", loc, e.Line)
	}
	switch {
	case e.Column > 0:
		msg := fmt.Sprintf("%s: %s column %d: cannot parse %q as a number", ErrMalformedInput, loc, e.Column, e.Token)
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
		return msg
	case e.Want > 0:
		return fmt.Sprintf("%s: %s: expected %d values, got %d", ErrMalformedInput, loc, e.Want, e.Got)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", ErrMalformedInput, loc, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedInput, loc)
}

// Is reports whether target is ErrMalformedInput.
func (e *MalformedInputError) Is(target error) bool { return target == ErrMalformedInput }

func (e *MalformedInputError) Unwrap() error { return e.Err }

// InvalidMeasurementError records the first negative cell found in row-major order.
type InvalidMeasurementError struct {
	Row, Col int
	Value    float64
}

func (e *InvalidMeasurementError) Error() string {
	return fmt.Sprintf("%s (patient %d, day %d: %g)", ErrInvalidMeasurement, e.Row, e.Col, e.Value)
}

// Is reports whether target is ErrInvalidMeasurement.
func (e *InvalidMeasurementError) Is(target error) bool { return target == ErrInvalidMeasurement }
