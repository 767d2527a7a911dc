package analyzer

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONOrderAndFormat(t *testing.T) {
	report := &Report{
		Scores: []Score{
			{MetricCyclomaticComplexity, 1.0},
			{MetricNestingDepth, 0.6},
			{MetricFunctionLength, 1.2},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf, false))

	want := `{
  "cyclomatic_complexity": 1.0,
  "nesting_depth": 0.6,
  "function_length": 1.2
}
`
	assert.Equal(t, want, buf.String())
}

func TestWriteJSONIncludesTotal(t *testing.T) {
	report := &Report{
		Scores: []Score{
			{MetricImportComplexity, 0.05},
		},
		Total: 0.05,
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf, true))

	want := `{
  "import_complexity": 0.05,
  "total_score": 0.05
}
`
	assert.Equal(t, want, buf.String())
}

func TestWriteJSONIsValidJSON(t *testing.T) {
	report := analyzeString(t, "import os\n")

	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf, true))

	var decoded map[string]float64
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded, 12)
	assert.Equal(t, 0.05, decoded["import_complexity"])
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{2, "2.0"},
		{0.5, "0.5"},
		{1.2, "1.2"},
		{0.04, "0.04"},
		{0.30000000000000004, "0.30000000000000004"},
	}
	for _, tt := range tests {
		if got := formatFloat(tt.value); got != tt.want {
			t.Errorf("formatFloat(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestReportValueMissingMetric(t *testing.T) {
	report := &Report{}
	assert.Equal(t, 0.0, report.Value(MetricCohesion))
}
