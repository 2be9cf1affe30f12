package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/KaramelBytes/inflammation-cli/internal/analysis"
	"github.com/KaramelBytes/inflammation-cli/internal/inflammation"
	"github.com/KaramelBytes/inflammation-cli/internal/parser"
)

// inputFlags are shared by every command that reads a measurement file.
type inputFlags struct {
	delimiter  string
	sheetName  string
	sheetIndex int
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.delimiter, "delimiter", "", "delimiter: ',' | ';' | 'tab' (default from extension)")
	cmd.Flags().StringVar(&f.sheetName, "sheet-name", "", "XLSX: sheet name to load")
	cmd.Flags().IntVar(&f.sheetIndex, "sheet-index", 0, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}

// options merges flags over the loaded configuration.
func (f *inputFlags) options() (parser.Options, error) {
	c := settings()
	opt := parser.Options{
		Delimiter:  c.DelimiterRune(),
		SheetName:  c.SheetName,
		SheetIndex: c.SheetIndex,
	}
	if f.delimiter != "" {
		r, err := parseDelimiter(f.delimiter)
		if err != nil {
			return opt, err
		}
		opt.Delimiter = r
	}
	if f.sheetName != "" {
		opt.SheetName = f.sheetName
	}
	if f.sheetIndex > 0 {
		opt.SheetIndex = f.sheetIndex
	}
	return opt, nil
}

func parseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case ",", "comma":
		return ',', nil
	case ";", "semicolon":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s", s)
	}
}

// loadMatrix reads path with the merged input options and logs its shape.
func loadMatrix(path string, in *inputFlags) (*mat.Dense, error) {
	opt, err := in.options()
	if err != nil {
		return nil, err
	}
	m, err := parser.LoadFile(path, opt)
	if err != nil {
		return nil, err
	}
	p, d := inflammation.Shape(m)
	logger.Debug("loaded measurement matrix", "file", path, "patients", p, "days", d)
	return m, nil
}

// computeOptions returns the core scheduling options from configuration.
func computeOptions() []inflammation.Option {
	c := settings()
	return []inflammation.Option{
		inflammation.WithWorkers(c.Workers),
		inflammation.WithParallelThreshold(c.ParallelThreshold),
	}
}

// reportFlags are shared by analyze and analyze-batch.
type reportFlags struct {
	format    string
	normalise bool
	maxDays   int
	precision int
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "format", "", "report format: markdown|json|yaml (default from config)")
	cmd.Flags().BoolVar(&f.normalise, "normalise", false, "include the per-patient normalised matrix")
	cmd.Flags().IntVar(&f.maxDays, "max-days", -1, "maximum days shown in tables (0 = all; default from config)")
	cmd.Flags().IntVar(&f.precision, "precision", -1, "significant digits (0 = shortest exact; default from config)")
}

func (f *reportFlags) options(cmd *cobra.Command) (analysis.Options, string) {
	c := settings()
	opt := analysis.DefaultOptions()
	opt.Normalise = c.Normalise
	if cmd.Flags().Changed("normalise") {
		opt.Normalise = f.normalise
	}
	opt.MaxDays = c.MaxDays
	if f.maxDays >= 0 {
		opt.MaxDays = f.maxDays
	}
	opt.Precision = c.Precision
	if f.precision >= 0 {
		opt.Precision = f.precision
	}
	opt.Workers = c.Workers
	opt.ParallelThreshold = c.ParallelThreshold
	format := c.OutputFormat
	if f.format != "" {
		format = f.format
	}
	return opt, format
}
