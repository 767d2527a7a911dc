package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/imyousuf/codescore/internal/config"
)

func newInitCmd() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a .codescore.yaml config file",
		Long: `Initialize a codescore config file in the current directory.

The file carries output and watch options only; scores never depend on
it. Use --interactive to pick the values in a wizard instead of editing
the generated defaults.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}

			configPath := filepath.Join(cwd, config.DefaultConfigFile+"."+config.DefaultConfigType)

			// Refuse to clobber an existing config.
			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("%s already exists", configPath)
			}

			if interactive {
				return runInteractiveInit(cmd, configPath)
			}

			out := cmd.OutOrStdout()

			if err := os.WriteFile(configPath, []byte(generateConfigYAML()), 0644); err != nil {
				return fmt.Errorf("write config file: %w", err)
			}
			fmt.Fprintf(out, "Created %s\n", configPath)

			// Print next steps.
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Next steps:")
			fmt.Fprintln(out, "  1. Edit .codescore.yaml to adjust output and watch options")
			fmt.Fprintln(out, "  2. Run 'codescore analyze <file>' to score a file")
			fmt.Fprintln(out, "  3. Run 'codescore watch <file>' to re-score on every save")

			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "configure interactively")

	return cmd
}

func generateConfigYAML() string {
	return fmt.Sprintf(`# codescore configuration
# All keys are optional; the defaults shown here apply when a key is absent.

output:
  # json or text
  format: %s
  # append total_score to every report
  show_total: false

watch:
  # quiet window between re-analyses, in milliseconds
  debounce_ms: %d
`, config.FormatJSON, config.DefaultDebounceMS)
}
