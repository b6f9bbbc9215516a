// Package presentation renders finalized distributions for the terminal.
// Rendering lives outside the core: the engine only hands over read
// accessors, and this package turns them into text.
package presentation

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/mendelian/mendel/pkg/domain"
)

// Markdown builds a markdown report of the distribution: one row per
// observed label with count, point estimate, and the confidence interval at
// the given level.
func Markdown(name string, dist *domain.Distribution, level float64) string {
	var b strings.Builder

	title := name
	if title == "" {
		title = "Simulation"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "%d trials\n\n", dist.TotalTrials())
	fmt.Fprintf(&b, "| Result | Count | Probability | %.0f%% CI |\n", level*100)
	b.WriteString("|--------|------:|------------:|--------|\n")

	for label := range dist.Labels() {
		p := dist.ProbabilityOf(label)
		low, high, err := dist.ConfidenceInterval(label, level)
		ci := "-"
		if err == nil {
			ci = fmt.Sprintf("[%.4f, %.4f]", low, high)
		}
		fmt.Fprintf(&b, "| %s | %d | %.4f | %s |\n", label, dist.Count(label), p, ci)
	}
	return b.String()
}

// Render turns a markdown report into terminal output. On a capable
// terminal the markdown is styled with glamour; otherwise the raw markdown
// comes back unchanged.
func Render(markdown string) string {
	if termenv.ColorProfile() == termenv.Ascii {
		return markdown
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return markdown
	}
	out, err := r.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}
