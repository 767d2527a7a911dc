package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/imyousuf/codescore/internal/analyzer"
	"github.com/imyousuf/codescore/internal/config"
)

func TestScoreAndPrintJSON(t *testing.T) {
	path := writeTempSource(t, "app.py", "import os\n")
	cfg := &config.Config{
		Output: config.OutputConfig{Format: config.FormatJSON},
		Watch:  config.WatchConfig{DebounceMS: config.DefaultDebounceMS},
	}

	buf := new(bytes.Buffer)
	if err := scoreAndPrint(analyzer.New(), path, cfg, buf); err != nil {
		t.Fatalf("scoreAndPrint: %v", err)
	}
	if !strings.Contains(buf.String(), `"import_complexity": 0.05`) {
		t.Errorf("expected JSON report, got:\n%s", buf.String())
	}
}

func TestScoreAndPrintText(t *testing.T) {
	path := writeTempSource(t, "app.py", "import os\n")
	cfg := &config.Config{
		Output: config.OutputConfig{Format: config.FormatText, ShowTotal: true},
	}

	buf := new(bytes.Buffer)
	if err := scoreAndPrint(analyzer.New(), path, cfg, buf); err != nil {
		t.Fatalf("scoreAndPrint: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Scores for ") || !strings.Contains(out, "total_score") {
		t.Errorf("expected text report with total, got:\n%s", out)
	}
}
