package analysis

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/KaramelBytes/inflammation-cli/internal/inflammation"
)

// Options controls report contents.
type Options struct {
	// Normalise includes the per-patient normalised matrix.
	Normalise bool
	// MaxDays limits how many days the Markdown tables show; 0 means all.
	MaxDays int
	// Precision is the number of significant digits in rendered numbers; 0 means shortest exact.
	Precision int
	// Workers and ParallelThreshold are passed through to the numerical core.
	Workers           int
	ParallelThreshold int
}

// DefaultOptions returns reasonable defaults for dataset reports.
func DefaultOptions() Options {
	return Options{
		Precision:         4,
		ParallelThreshold: inflammation.DefaultParallelThreshold,
	}
}

func (o Options) compute() []inflammation.Option {
	return []inflammation.Option{
		inflammation.WithWorkers(o.Workers),
		inflammation.WithParallelThreshold(o.ParallelThreshold),
	}
}

// Report summarises one measurement matrix.
type Report struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	GeneratedAt time.Time   `json:"generated_at" yaml:"generated_at"`
	Patients    int         `json:"patients" yaml:"patients"`
	Days        int         `json:"days" yaml:"days"`
	DailyMean   Series      `json:"daily_mean" yaml:"daily_mean"`
	DailyMax    Series      `json:"daily_max" yaml:"daily_max"`
	DailyMin    Series      `json:"daily_min" yaml:"daily_min"`
	Normalised  [][]float64 `json:"normalised,omitempty" yaml:"normalised,omitempty"`
	// ZeroPatients lists patients whose readings are all zero.
	ZeroPatients []int    `json:"zero_patients,omitempty" yaml:"zero_patients,omitempty"`
	Warnings     []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	maxDays   int
	precision int
}

// Build computes the daily aggregates (and, if requested, the normalised
// matrix) for m. Any failure in the core aborts the whole report.
func Build(name string, m mat.Matrix, opt Options) (*Report, error) {
	copts := opt.compute()
	mean, err := inflammation.DailyMean(m, copts...)
	if err != nil {
		return nil, fmt.Errorf("daily mean: %w", err)
	}
	hi, err := inflammation.DailyMax(m, copts...)
	if err != nil {
		return nil, fmt.Errorf("daily max: %w", err)
	}
	lo, err := inflammation.DailyMin(m, copts...)
	if err != nil {
		return nil, fmt.Errorf("daily min: %w", err)
	}
	p, d := inflammation.Shape(m)
	rep := &Report{
		ID:          uuid.NewString(),
		Name:        name,
		GeneratedAt: time.Now().UTC(),
		Patients:    p,
		Days:        d,
		DailyMean:   mean,
		DailyMax:    hi,
		DailyMin:    lo,
	}
	rep.SetView(opt.MaxDays, opt.Precision)
	if opt.Normalise {
		norm, err := inflammation.Normalise(m, copts...)
		if err != nil {
			return nil, fmt.Errorf("normalise: %w", err)
		}
		rep.Normalised = inflammation.Rows(norm)
	}

	var nanDays []string
	for j, v := range mean {
		if math.IsNaN(v) {
			nanDays = append(nanDays, strconv.Itoa(j))
		}
	}
	if len(nanDays) > 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("days with NaN readings: %s", strings.Join(nanDays, ", ")))
	}
	for i := 0; i < p; i++ {
		zero := true
		for j := 0; j < d; j++ {
			if m.At(i, j) != 0 {
				zero = false
				break
			}
		}
		if zero {
			rep.ZeroPatients = append(rep.ZeroPatients, i)
		}
	}
	if len(rep.ZeroPatients) > 0 {
		ids := make([]string, len(rep.ZeroPatients))
		for i, v := range rep.ZeroPatients {
			ids[i] = strconv.Itoa(v)
		}
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("patients with no recorded inflammation: %s", strings.Join(ids, ", ")))
	}
	return rep, nil
}

// Markdown renders a compact report suitable for terminals or standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", safeVal(r.Name)))
	}
	b.WriteString(fmt.Sprintf("Patients: %d\n", r.Patients))
	b.WriteString(fmt.Sprintf("Days: %d\n", r.Days))

	shown := r.Days
	if r.maxDays > 0 && r.maxDays < shown {
		shown = r.maxDays
	}

	b.WriteString("\n[DAILY STATISTICS]\n")
	b.WriteString("| Day | Mean | Max | Min |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for j := 0; j < shown && j < len(r.DailyMean); j++ {
		b.WriteString(fmt.Sprintf("| %d | %s | %s | %s |\n", j,
			formatFloat(r.DailyMean[j], r.precision),
			formatFloat(r.DailyMax[j], r.precision),
			formatFloat(r.DailyMin[j], r.precision)))
	}

	if len(r.Normalised) > 0 {
		b.WriteString("\n[NORMALISED]\n")
		b.WriteString("| Patient |")
		for j := 0; j < shown; j++ {
			b.WriteString(fmt.Sprintf(" %d |", j))
		}
		b.WriteString("\n|")
		for j := 0; j <= shown; j++ {
			b.WriteString(" --- |")
		}
		b.WriteString("\n")
		for i, row := range r.Normalised {
			b.WriteString(fmt.Sprintf("| %d |", i))
			for j := 0; j < shown && j < len(row); j++ {
				b.WriteString(" ")
				b.WriteString(formatFloat(row[j], r.precision))
				b.WriteString(" |")
			}
			b.WriteString("\n")
		}
	}

	notes := append([]string(nil), r.Warnings...)
	if shown < r.Days {
		notes = append(notes, fmt.Sprintf("showing %d/%d days due to MaxDays", shown, r.Days))
	}
	if len(notes) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range notes {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// SetView sets the day limit and precision Markdown renders with. Decoded
// reports carry neither, so callers set them before rendering.
func (r *Report) SetView(maxDays, precision int) {
	r.maxDays = maxDays
	r.precision = precision
}

// formatFloat renders v with prec significant digits; prec <= 0 gives the
// shortest exact form.
func formatFloat(v float64, prec int) string {
	if prec <= 0 {
		prec = -1
	}
	return strconv.FormatFloat(v, 'g', prec, 64)
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
