package analyzer

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Score is one metric's value.
type Score struct {
	Metric Metric
	Value  float64
}

// Report holds the scores for a single file in report order, plus the
// unweighted mean across all metrics.
type Report struct {
	FilePath string
	Scores   []Score
	Total    float64
}

// Value returns the recorded value for a metric, or 0 when the metric is
// not present.
func (r *Report) Value(m Metric) float64 {
	for _, s := range r.Scores {
		if s.Metric == m {
			return s.Value
		}
	}
	return 0
}

// WriteJSON writes the report as a JSON object with 2-space indentation
// and keys in registry order. encoding/json sorts map keys and drops the
// decimal point on whole floats, so the object is emitted by hand. When
// includeTotal is set, a trailing "total_score" entry is appended.
func (r *Report) WriteJSON(w io.Writer, includeTotal bool) error {
	var b strings.Builder
	b.WriteString("{\n")
	for i, s := range r.Scores {
		fmt.Fprintf(&b, "  %q: %s", string(s.Metric), formatFloat(s.Value))
		if i < len(r.Scores)-1 || includeTotal {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	if includeTotal {
		fmt.Fprintf(&b, "  %q: %s\n", "total_score", formatFloat(r.Total))
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// formatFloat renders a score in shortest round-trip form with a
// trailing ".0" on whole values, so 1.0 prints as "1.0" and not "1".
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
