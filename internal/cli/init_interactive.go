package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/imyousuf/codescore/internal/config"
)

// runInteractiveInit runs the interactive wizard for config creation.
func runInteractiveInit(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()

	// Form variables, pre-filled with the defaults.
	var (
		format    = config.FormatJSON
		showTotal bool
		debounce  = strconv.Itoa(config.DefaultDebounceMS)
		confirm   bool
	)

	formatOptions := []huh.Option[string]{
		huh.NewOption("JSON (machine-readable, stable key order)", config.FormatJSON),
		huh.NewOption("Text (aligned metric table)", config.FormatText),
	}

	form := huh.NewForm(
		// Group 1: Output
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Output format").
				Options(formatOptions...).
				Value(&format),
			huh.NewConfirm().
				Title("Show total score?").
				Description("Appends the aggregate total_score to every report").
				Value(&showTotal).
				Affirmative("Yes").
				Negative("No"),
		).Title("Output"),

		// Group 2: Watch
		huh.NewGroup(
			huh.NewInput().
				Title("Watch debounce (milliseconds)").
				Value(&debounce).
				Placeholder("100").
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("debounce must be a number")
					}
					if n <= 0 {
						return fmt.Errorf("debounce must be positive")
					}
					return nil
				}),
		).Title("Watch"),

		// Group 3: Confirm
		huh.NewGroup(
			huh.NewNote().
				Title("Summary").
				DescriptionFunc(func() string {
					return fmt.Sprintf(
						"Format:      %s\n"+
							"Show total:  %v\n"+
							"Debounce:    %sms",
						format, showTotal, strings.TrimSpace(debounce),
					)
				}, &debounce),
			huh.NewConfirm().
				Title("Write config?").
				Value(&confirm).
				Affirmative("Write").
				Negative("Cancel"),
		).Title("Confirm"),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		if err == huh.ErrUserAborted {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
		return fmt.Errorf("interactive init: %w", err)
	}

	if !confirm {
		fmt.Fprintln(out, "Cancelled.")
		return nil
	}

	debounceMS, err := strconv.Atoi(strings.TrimSpace(debounce))
	if err != nil {
		return fmt.Errorf("parse debounce: %w", err)
	}

	cfg := &config.Config{
		Output: config.OutputConfig{
			Format:    format,
			ShowTotal: showTotal,
		},
		Watch: config.WatchConfig{
			DebounceMS: debounceMS,
		},
	}

	if err := config.WriteConfig(cfg, configPath); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	fmt.Fprintf(out, "Created %s\n", configPath)

	return nil
}
