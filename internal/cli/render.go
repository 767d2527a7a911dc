package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/imyousuf/codescore/internal/analyzer"
)

// Style definitions shared by the human-readable views.
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"})
	labelStyle = lipgloss.NewStyle().
			Faint(true).
			Width(24)
	valueStyle = lipgloss.NewStyle()
)

// renderText writes the report as an aligned metric table.
func renderText(out io.Writer, r *analyzer.Report, includeTotal bool) {
	title := fmt.Sprintf("Scores for %s", r.FilePath)
	fmt.Fprintln(out, headerStyle.Render(title))
	fmt.Fprintln(out, headerStyle.Render(strings.Repeat("=", len(title))))
	fmt.Fprintln(out)

	for _, s := range r.Scores {
		fmt.Fprintf(out, "  %s%s\n", labelStyle.Render(string(s.Metric)), valueStyle.Render(fmt.Sprintf("%.2f", s.Value)))
	}
	if includeTotal {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  %s%s\n", labelStyle.Render("total_score"), valueStyle.Render(fmt.Sprintf("%.2f", r.Total)))
	}
}
