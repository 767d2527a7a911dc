package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/imyousuf/codescore/internal/analyzer"
	"github.com/imyousuf/codescore/internal/config"
	"github.com/imyousuf/codescore/internal/watcher"
)

func newWatchCmd() *cobra.Command {
	var (
		format    string
		showTotal bool
	)

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-score a file whenever it changes on disk",
		Long: `Score a source file, then keep watching it and print a fresh report
after every debounced change until interrupted. Removing or renaming the
watched file ends the watch with an error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cmd.Flags().Changed("format") {
				cfg.Output.Format = format
			}
			if cmd.Flags().Changed("total") {
				cfg.Output.ShowTotal = showTotal
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			filePath := args[0]
			a := analyzer.New()
			out := cmd.OutOrStdout()

			// First report before any change arrives.
			if err := scoreAndPrint(a, filePath, cfg, out); err != nil {
				return err
			}

			w, err := watcher.NewWatcher(watcher.Config{
				Paths:    []string{filePath},
				Debounce: time.Duration(cfg.Watch.DebounceMS) * time.Millisecond,
			})
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer w.Close()

			// Set up signal handling.
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				<-sigCh
				fmt.Fprintln(out, "\nShutting down...")
				cancel()
			}()

			events, err := w.Start(ctx)
			if err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (debounce %dms)...\n", filePath, cfg.Watch.DebounceMS)

			for ev := range events {
				if ev.Op == watcher.Remove || ev.Op == watcher.Rename {
					return fmt.Errorf("watched file %s was removed", ev.Path)
				}
				// A half-saved file may not parse; report it and keep watching.
				if err := scoreAndPrint(a, filePath, cfg, out); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "output format: json or text (default from config)")
	cmd.Flags().BoolVar(&showTotal, "total", false, "append the aggregate total score")

	return cmd
}

func scoreAndPrint(a *analyzer.Analyzer, path string, cfg *config.Config, out io.Writer) error {
	report, err := a.AnalyzeFile(path)
	if err != nil {
		return err
	}
	if cfg.Output.Format == config.FormatText {
		renderText(out, report, cfg.Output.ShowTotal)
		return nil
	}
	return report.WriteJSON(out, cfg.Output.ShowTotal)
}
