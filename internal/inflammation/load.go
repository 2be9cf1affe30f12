package inflammation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// LoadOption configures delimited-text loading.
type LoadOption func(*loadOptions)

type loadOptions struct {
	delimiter rune
	source    string
}

// WithDelimiter overrides the default ',' field separator.
func WithDelimiter(r rune) LoadOption {
	return func(o *loadOptions) {
		if r != 0 {
			o.delimiter = r
		}
	}
}

// WithSourceName sets the name used in error messages for ReadCSV.
func WithSourceName(name string) LoadOption {
	return func(o *loadOptions) { o.source = name }
}

// LoadCSV reads a delimited text file into a measurement matrix: one line per
// patient, one token per day. The file is closed before LoadCSV returns.
func LoadCSV(path string, opts ...LoadOption) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceNotFound, err)
	}
	defer f.Close()
	if fi, err := f.Stat(); err == nil && fi.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrSourceNotFound, path)
	}
	return ReadCSV(f, append([]LoadOption{WithSourceName(path)}, opts...)...)
}

// ReadCSV parses delimited text from r. Blank lines and lines starting with
// '#' are skipped and whitespace around each token is ignored. Empty tokens
// are malformed. Every remaining line
// must carry the same number of numeric tokens as the first.
func ReadCSV(r io.Reader, opts ...LoadOption) (*mat.Dense, error) {
	lo := loadOptions{delimiter: ','}
	for _, fn := range opts {
		if fn != nil {
			fn(&lo)
		}
	}

	cr := csv.NewReader(r)
	cr.Comma = lo.delimiter
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	var (
		data []float64
		days int
		rows int
	)
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			line := 0
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.Line
			}
			return nil, &MalformedInputError{Source: lo.source, Line: line, Err: err}
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		line, _ := cr.FieldPos(0)
		if rows == 0 {
			days = len(rec)
		} else if len(rec) != days {
			return nil, &MalformedInputError{Source: lo.source, Line: line, Want: days, Got: len(rec)}
		}
		for j, tok := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
			if err != nil {
				tl, _ := cr.FieldPos(j)
				return nil, &MalformedInputError{Source: lo.source, Line: tl, Column: j + 1, Token: tok, Err: err}
			}
			data = append(data, v)
		}
		rows++
	}
	if rows == 0 {
		src := lo.source
		if src == "" {
			src = "input"
		}
		return nil, fmt.Errorf("%w: %s has no data rows", ErrEmptyInput, src)
	}
	return mat.NewDense(rows, days, data), nil
}
