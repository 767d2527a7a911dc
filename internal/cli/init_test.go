package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// chdir switches the working directory for one test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
}

func TestInitCommandWritesConfig(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	out, err := runCommand(t, newInitCmd())
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out, "Created ") {
		t.Errorf("expected Created message, got: %s", out)
	}

	data, err := os.ReadFile(filepath.Join(dir, ".codescore.yaml"))
	if err != nil {
		t.Fatalf("read generated config: %v", err)
	}
	content := string(data)
	for _, want := range []string{"output:", "format: json", "show_total: false", "debounce_ms: 100"} {
		if !strings.Contains(content, want) {
			t.Errorf("generated config missing %q:\n%s", want, content)
		}
	}
}

func TestInitCommandRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	if _, err := runCommand(t, newInitCmd()); err != nil {
		t.Fatalf("first init: %v", err)
	}
	_, err := runCommand(t, newInitCmd())
	if err == nil {
		t.Fatal("expected error on second init")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected already exists error, got: %v", err)
	}
}

func TestConfigViewShowsDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	out, err := runCommand(t, newConfigCmd())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	for _, want := range []string{"codescore Configuration", "Format:", "json", "Debounce:", "100ms", "cyclomatic_complexity", "import_complexity"} {
		if !strings.Contains(out, want) {
			t.Errorf("config view missing %q:\n%s", want, out)
		}
	}
}
