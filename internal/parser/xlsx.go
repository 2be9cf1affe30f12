package parser

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/mat"

	"github.com/KaramelBytes/inflammation-cli/internal/inflammation"
)

type workbookLoader struct{}

func (workbookLoader) CanLoad(path string) bool { return ext(path) == ".xlsx" }

// Load reads the selected sheet: one row per patient, one cell per day.
// Empty rows are skipped; an empty cell between values is malformed.
func (workbookLoader) Load(path string, opt Options) (*mat.Dense, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", inflammation.ErrSourceNotFound, err)
		}
		return nil, &inflammation.MalformedInputError{Source: path, Err: err}
	}
	defer f.Close()

	sheet, err := pickSheet(f.GetSheetList(), opt)
	if err != nil {
		return nil, &inflammation.MalformedInputError{Source: path, Err: err}
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &inflammation.MalformedInputError{Source: path, Err: fmt.Errorf("read sheet %q: %w", sheet, err)}
	}

	source := fmt.Sprintf("%s[%s]", path, sheet)
	var (
		data []float64
		days int
		n    int
	)
	for i, row := range rows {
		if blankRow(row) {
			continue
		}
		if n == 0 {
			days = len(row)
		} else if len(row) != days {
			return nil, &inflammation.MalformedInputError{Source: source, Line: i + 1, Want: days, Got: len(row)}
		}
		for j, cell := range row {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, &inflammation.MalformedInputError{Source: source, Line: i + 1, Column: j + 1, Token: cell, Err: err}
			}
			data = append(data, v)
		}
		n++
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s has no data rows", inflammation.ErrEmptyInput, source)
	}
	return mat.NewDense(n, days, data), nil
}

func pickSheet(sheets []string, opt Options) (string, error) {
	if len(sheets) == 0 {
		return "", errors.New("workbook has no sheets")
	}
	if opt.SheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, opt.SheetName) {
				return s, nil
			}
		}
		return "", fmt.Errorf("sheet %q not found; available sheets: %s", opt.SheetName, strings.Join(sheets, ", "))
	}
	idx := opt.SheetIndex
	if idx <= 0 {
		idx = 1
	}
	if idx > len(sheets) {
		return "", fmt.Errorf("sheet index %d out of range (workbook has %d sheets)", idx, len(sheets))
	}
	return sheets[idx-1], nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
