package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/imyousuf/codescore/internal/analyzer"
	"github.com/imyousuf/codescore/internal/config"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		format    string
		showTotal bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Score a single source file and print the report",
		Long: `Score a single source file against every quality metric and print
the report to stdout. Metrics are reported in a fixed order; JSON output
is stable across runs on the same input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			// Flags override the config file only when given explicitly.
			if cmd.Flags().Changed("format") {
				cfg.Output.Format = format
			}
			if cmd.Flags().Changed("total") {
				cfg.Output.ShowTotal = showTotal
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			start := time.Now()
			report, err := analyzer.New().AnalyzeFile(args[0])
			if err != nil {
				return err
			}
			if verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "analyzed %s in %s\n", args[0], time.Since(start).Round(time.Microsecond))
			}

			out := cmd.OutOrStdout()
			if cfg.Output.Format == config.FormatText {
				renderText(out, report, cfg.Output.ShowTotal)
				return nil
			}
			return report.WriteJSON(out, cfg.Output.ShowTotal)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "output format: json or text (default from config)")
	cmd.Flags().BoolVar(&showTotal, "total", false, "append the aggregate total score")

	return cmd
}
