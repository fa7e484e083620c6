package components

import (
	"fmt"

	"github.com/theirongolddev/chatrecap/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ShareBar renders a solid bar for a 0-100 share followed by the percentage.
func ShareBar(pct float64, width int) string {
	t := theme.Active

	frac := pct / 100
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	if width < 4 {
		width = 4
	}

	bar := progress.New(
		progress.WithSolidFill(string(t.Assistant)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	return bar.ViewAs(frac) + " " + pctStyle.Render(fmt.Sprintf("%5.1f%%", pct))
}
