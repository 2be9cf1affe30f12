package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/inflammation-cli/internal/inflammation"
)

func buildReport(t *testing.T, rows [][]float64, opt Options) *Report {
	t.Helper()
	m, err := inflammation.NewMatrix(rows)
	if err != nil {
		t.Fatalf("NewMatrix: %v", err)
	}
	rep, err := Build("inflammation-01.csv", m, opt)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return rep
}

func TestBuildAndMarkdown(t *testing.T) {
	opt := DefaultOptions()
	opt.Normalise = true
	rep := buildReport(t, [][]float64{{1, 2, 3}, {4, 5, 6}, {0, 0, 0}}, opt)

	if rep.Patients != 3 || rep.Days != 3 {
		t.Fatalf("shape = (%d, %d)", rep.Patients, rep.Days)
	}
	if rep.ID == "" {
		t.Fatalf("missing report id")
	}
	if !reflect.DeepEqual([]float64(rep.DailyMax), []float64{4, 5, 6}) {
		t.Fatalf("daily max = %v", rep.DailyMax)
	}
	if !reflect.DeepEqual([]float64(rep.DailyMin), []float64{0, 0, 0}) {
		t.Fatalf("daily min = %v", rep.DailyMin)
	}
	if !reflect.DeepEqual(rep.ZeroPatients, []int{2}) {
		t.Fatalf("zero patients = %v", rep.ZeroPatients)
	}
	if !reflect.DeepEqual(rep.Normalised[2], []float64{0, 0, 0}) {
		t.Fatalf("normalised zero row = %v", rep.Normalised[2])
	}

	md := rep.Markdown()
	for _, want := range []string{
		"[DATASET SUMMARY]",
		"File: inflammation-01.csv",
		"Patients: 3",
		"[DAILY STATISTICS]",
		"| 0 | 1.667 | 4 | 0 |",
		"| 2 | 3 | 6 | 0 |",
		"[NORMALISED]",
		"| 0 | 0.3333 | 0.6667 | 1 |",
		"[NOTES]",
		"patients with no recorded inflammation: 2",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestMarkdown_MaxDays(t *testing.T) {
	opt := DefaultOptions()
	opt.MaxDays = 2
	rep := buildReport(t, [][]float64{{1, 2, 3, 4}}, opt)
	md := rep.Markdown()
	if got := dailyRows(md); !reflect.DeepEqual(got, []string{"0", "1"}) {
		t.Fatalf("visible days = %v, want [0 1]:\n%s", got, md)
	}
	if !strings.Contains(md, "showing 2/4 days due to MaxDays") {
		t.Fatalf("missing truncation note:\n%s", md)
	}
}

// dailyRows returns the day column of every row in the [DAILY STATISTICS] table.
func dailyRows(md string) []string {
	var days []string
	in := false
	for _, line := range strings.Split(md, "\n") {
		switch {
		case line == "[DAILY STATISTICS]":
			in = true
		case strings.HasPrefix(line, "["):
			in = false
		case in && strings.HasPrefix(line, "| ") && !strings.HasPrefix(line, "| Day") && !strings.HasPrefix(line, "| ---"):
			days = append(days, strings.TrimSpace(strings.Split(line, "|")[1]))
		}
	}
	return days
}

func TestSetView_DecodedReport(t *testing.T) {
	rep := buildReport(t, [][]float64{{1, 2, 3, 4}, {2, 4, 6, 9}, {0, 1, 1, 1}}, DefaultOptions())
	b, err := rep.JSON()
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	var back Report
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := dailyRows(back.Markdown()); len(got) != 4 {
		t.Fatalf("decoded report should show all days, got %v", got)
	}
	back.SetView(3, 2)
	md := back.Markdown()
	if got := dailyRows(md); !reflect.DeepEqual(got, []string{"0", "1", "2"}) {
		t.Fatalf("visible days = %v:\n%s", got, md)
	}
	if !strings.Contains(md, "| 1 | 2.3 | 4 | 1 |") || !strings.Contains(md, "| 2 | 3.3 | 6 | 1 |") {
		t.Fatalf("precision not applied:\n%s", md)
	}
	if !strings.Contains(md, "showing 3/4 days due to MaxDays") {
		t.Fatalf("missing truncation note:\n%s", md)
	}
}

func TestSeries_InfRoundTrip(t *testing.T) {
	in := Series{1.5, math.Inf(1), math.Inf(-1), math.NaN()}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `[1.5,"+Inf","-Inf",null]` {
		t.Fatalf("json = %s", b)
	}
	var back Series
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back[0] != 1.5 || !math.IsInf(back[1], 1) || !math.IsInf(back[2], -1) || !math.IsNaN(back[3]) {
		t.Fatalf("round trip = %v", back)
	}
	if err := json.Unmarshal([]byte(`["x"]`), &back); err == nil {
		t.Fatalf("expected error for non-numeric string")
	}
}

func TestBuild_NegativeWithNormaliseFails(t *testing.T) {
	m, err := inflammation.NewMatrix([][]float64{{-1, 2, 3}})
	if err != nil {
		t.Fatal(err)
	}
	opt := DefaultOptions()
	if _, err := Build("x", m, opt); err != nil {
		t.Fatalf("aggregates alone should accept negatives: %v", err)
	}
	opt.Normalise = true
	_, err = Build("x", m, opt)
	if !errors.Is(err, inflammation.ErrInvalidMeasurement) {
		t.Fatalf("err = %v, want ErrInvalidMeasurement", err)
	}
}

func TestBuild_EmptyFails(t *testing.T) {
	_, err := Build("x", nil, DefaultOptions())
	if !errors.Is(err, inflammation.ErrEmptyInput) {
		t.Fatalf("err = %v, want ErrEmptyInput", err)
	}
}

func TestJSON_NaNRoundTrip(t *testing.T) {
	rep := buildReport(t, [][]float64{{1, math.NaN()}, {3, 4}}, DefaultOptions())
	if len(rep.Warnings) == 0 || !strings.Contains(rep.Warnings[0], "days with NaN readings: 1") {
		t.Fatalf("warnings = %v", rep.Warnings)
	}
	b, err := Render(rep, FormatJSON)
	if err != nil {
		t.Fatalf("render json: %v", err)
	}
	if !bytes.Contains(b, []byte(`"daily_mean": [`)) {
		t.Fatalf("json = %s", b)
	}
	var back Report
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.DailyMean[0] != 2 || !math.IsNaN(back.DailyMean[1]) {
		t.Fatalf("daily mean = %v", back.DailyMean)
	}
	if back.ID != rep.ID {
		t.Fatalf("id = %q, want %q", back.ID, rep.ID)
	}
}

func TestYAML_Render(t *testing.T) {
	rep := buildReport(t, [][]float64{{1, 2}, {3, 4}}, DefaultOptions())
	b, err := Render(rep, "yaml")
	if err != nil {
		t.Fatalf("render yaml: %v", err)
	}
	var back Report
	if err := yaml.Unmarshal(b, &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual([]float64(back.DailyMean), []float64{2, 3}) {
		t.Fatalf("daily mean = %v", back.DailyMean)
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	rep := buildReport(t, [][]float64{{1}}, DefaultOptions())
	if _, err := Render(rep, "html"); err == nil {
		t.Fatalf("expected error for html")
	}
	if Extension("json") != ".json" || Extension("markdown") != ".md" || Extension("yaml") != ".yaml" {
		t.Fatalf("unexpected extensions")
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	m, err := inflammation.NewMatrix([][]float64{{0.25, 0.5, 1}, {0, 0, 0}})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, m, 0); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if buf.String() != "0.25,0.5,1\n0,0,0\n" {
		t.Fatalf("csv = %q", buf.String())
	}
	back, err := inflammation.ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if !reflect.DeepEqual(inflammation.Rows(back), inflammation.Rows(m)) {
		t.Fatalf("round trip mismatch")
	}
}
