package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/chatrecap/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return lipgloss.NewStyle().Foreground(color).Render(buf.String())
}

// BarRows renders one horizontal bar per label, scaled to the largest value.
// Each row is "label │ bar count" within width columns.
func BarRows(labels []string, values []int, width int) string {
	if len(labels) == 0 || len(labels) != len(values) {
		return ""
	}
	t := theme.Active

	labelW := 0
	countW := 0
	peak := 0
	for i, l := range labels {
		labelW = max(labelW, lipgloss.Width(l))
		countW = max(countW, len(fmt.Sprint(values[i])))
		peak = max(peak, values[i])
	}

	barW := width - labelW - countW - 4
	if barW < 5 {
		barW = 5
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	barStyle := lipgloss.NewStyle().Foreground(t.Accent)
	countStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	sepStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	rows := make([]string, 0, len(labels))
	for i, l := range labels {
		filled := 0
		if peak > 0 {
			filled = values[i] * barW / peak
		}
		if filled == 0 && values[i] > 0 {
			filled = 1
		}
		pad := strings.Repeat(" ", labelW-lipgloss.Width(l))
		rows = append(rows, labelStyle.Render(l+pad)+
			sepStyle.Render(" │ ")+
			barStyle.Render(strings.Repeat("█", filled))+
			" "+countStyle.Render(fmt.Sprint(values[i])))
	}
	return strings.Join(rows, "\n")
}
