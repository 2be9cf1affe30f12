package analysis

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/inflammation-cli/internal/inflammation"
	"github.com/KaramelBytes/inflammation-cli/internal/utils"
)

// Formats accepted by Render.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// Series is a daily aggregate vector. JSON has no NaN or ±Inf literal, so
// NaN encodes as null and ±Inf as the strings "+Inf" and "-Inf"; all three
// decode back to the value they came from.
type Series []float64

func (s Series) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		switch {
		case math.IsNaN(v):
			b.WriteString("null")
		case math.IsInf(v, 1):
			b.WriteString(`"+Inf"`)
		case math.IsInf(v, -1):
			b.WriteString(`"-Inf"`)
		default:
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	b.WriteByte(']')
	return b.Bytes(), nil
}

func (s *Series) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Series, len(raw))
	for i, tok := range raw {
		switch string(tok) {
		case "null":
			out[i] = math.NaN()
		case `"+Inf"`:
			out[i] = math.Inf(1)
		case `"-Inf"`:
			out[i] = math.Inf(-1)
		default:
			if err := json.Unmarshal(tok, &out[i]); err != nil {
				return fmt.Errorf("daily value %d: %w", i, err)
			}
		}
	}
	*s = out
	return nil
}

// JSON renders the report as indented JSON.
func (r *Report) JSON() ([]byte, error) {
	return utils.PrettyJSON(r)
}

// YAML renders the report as YAML.
func (r *Report) YAML() ([]byte, error) {
	b, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	return b, nil
}

// Render returns r in the requested format.
func Render(r *Report, format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatMarkdown, "md":
		return []byte(r.Markdown()), nil
	case FormatJSON:
		return r.JSON()
	case FormatYAML, "yml":
		return r.YAML()
	default:
		return nil, fmt.Errorf("unsupported format: %s (use markdown|json|yaml)", format)
	}
}

// Extension returns the file extension used for a format.
func Extension(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		return ".json"
	case FormatYAML, "yml":
		return ".yaml"
	default:
		return ".md"
	}
}

// WriteCSV writes m as comma-delimited text, one patient per line, in a form
// inflammation.LoadCSV reads back. precision <= 0 writes the shortest exact form.
func WriteCSV(w io.Writer, m mat.Matrix, precision int) error {
	rows := inflammation.Rows(m)
	cw := csv.NewWriter(w)
	rec := make([]string, 0)
	for _, row := range rows {
		rec = rec[:0]
		for _, v := range row {
			rec = append(rec, formatFloat(v, precision))
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
