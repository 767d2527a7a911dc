package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imyousuf/codescore/internal/analyzer"
	"github.com/imyousuf/codescore/internal/config"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Show the configuration codescore resolved from defaults, the config
file, and environment variables.`,
		RunE: runConfigView,
	}
}

func runConfigView(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)

	// Title
	fmt.Fprintln(out, headerStyle.Render("codescore Configuration"))
	fmt.Fprintln(out, headerStyle.Render(strings.Repeat("=", 23)))
	fmt.Fprintln(out)

	// Output
	printSection(out, "Output")
	printKV(out, "Format", cfg.Output.Format)
	printKV(out, "Show total", boolYesNo(cfg.Output.ShowTotal))
	fmt.Fprintln(out)

	// Watch
	printSection(out, "Watch")
	printKV(out, "Debounce", fmt.Sprintf("%dms", cfg.Watch.DebounceMS))
	fmt.Fprintln(out)

	// Metrics are fixed; listed here for reference.
	printSection(out, "Metrics")
	for _, m := range analyzer.Metrics() {
		fmt.Fprintf(out, "    %s\n", m)
	}
	fmt.Fprintln(out)

	return nil
}

func printSection(out io.Writer, title string) {
	fmt.Fprintf(out, "  %s\n", headerStyle.Render(title))
}

func printKV(out io.Writer, label, value string) {
	fmt.Fprintf(out, "    %s%s\n", labelStyle.Render(label+":"), valueStyle.Render(value))
}

func boolYesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
