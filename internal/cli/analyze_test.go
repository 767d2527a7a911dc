package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/imyousuf/codescore/internal/parser"
)

// runCommand executes a freshly built command with args and returns stdout.
func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	// A nil arg slice makes cobra fall back to os.Args, which holds the
	// test binary's flags here.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeTempSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp source: %v", err)
	}
	return path
}

func TestAnalyzeCommandJSON(t *testing.T) {
	path := writeTempSource(t, "app.py", "import os\n")

	out, err := runCommand(t, newAnalyzeCmd(), path)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	// One import out of twenty scores 0.05; everything else is zero and
	// total_score is absent without --total.
	want := `{
  "cyclomatic_complexity": 0.0,
  "nesting_depth": 0.0,
  "function_length": 0.0,
  "parameter_count": 0.0,
  "class_coupling": 0.0,
  "cohesion": 0.0,
  "global_variable_usage": 0.0,
  "inheritance_depth": 0.0,
  "number_of_interfaces": 0.0,
  "polymorphism": 0.0,
  "import_complexity": 0.05
}
`
	if out != want {
		t.Errorf("output mismatch:\ngot:\n%s\nwant:\n%s", out, want)
	}
}

func TestAnalyzeCommandTotalFlag(t *testing.T) {
	path := writeTempSource(t, "app.py", "import os\n")

	out, err := runCommand(t, newAnalyzeCmd(), path, "--total")
	if err != nil {
		t.Fatalf("analyze --total: %v", err)
	}
	if !strings.Contains(out, `"total_score": `) {
		t.Errorf("expected total_score in output, got:\n%s", out)
	}
	if !strings.Contains(out, `"import_complexity": 0.05,`) {
		t.Errorf("expected comma after last metric when total is appended, got:\n%s", out)
	}
}

func TestAnalyzeCommandTextFormat(t *testing.T) {
	path := writeTempSource(t, "app.py", "import os\n")

	out, err := runCommand(t, newAnalyzeCmd(), path, "--format", "text")
	if err != nil {
		t.Fatalf("analyze --format text: %v", err)
	}
	if !strings.Contains(out, "Scores for ") {
		t.Errorf("expected title in text output, got:\n%s", out)
	}
	if !strings.Contains(out, "import_complexity") || !strings.Contains(out, "0.05") {
		t.Errorf("expected import_complexity row in text output, got:\n%s", out)
	}
	if strings.Contains(out, "total_score") {
		t.Errorf("total must stay hidden without --total, got:\n%s", out)
	}
}

func TestAnalyzeCommandInvalidFormat(t *testing.T) {
	path := writeTempSource(t, "app.py", "import os\n")

	_, err := runCommand(t, newAnalyzeCmd(), path, "--format", "xml")
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("expected invalid config error, got: %v", err)
	}
}

func TestAnalyzeCommandMissingFile(t *testing.T) {
	_, err := runCommand(t, newAnalyzeCmd(), filepath.Join(t.TempDir(), "nope.py"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "stat file") {
		t.Errorf("expected stat file error, got: %v", err)
	}
}

func TestAnalyzeCommandUnsupportedExtension(t *testing.T) {
	path := writeTempSource(t, "notes.txt", "just text\n")

	_, err := runCommand(t, newAnalyzeCmd(), path)
	if !errors.Is(err, parser.ErrUnsupportedExtension) {
		t.Errorf("expected ErrUnsupportedExtension, got: %v", err)
	}
}

func TestAnalyzeCommandParseError(t *testing.T) {
	path := writeTempSource(t, "broken.py", "def broken(:\n")

	_, err := runCommand(t, newAnalyzeCmd(), path)
	if !errors.Is(err, parser.ErrSyntax) {
		t.Errorf("expected ErrSyntax, got: %v", err)
	}
}
