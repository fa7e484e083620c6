package tui

import (
	"strings"

	"github.com/theirongolddev/chatrecap/internal/tui/components"
	"github.com/theirongolddev/chatrecap/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderModelsTab(cw int) string {
	t := theme.Active
	r := a.report
	if len(r.Models) == 0 {
		return components.ContentCard("Model Usage", "No assistant messages", cw)
	}

	nameW := 0
	countW := 0
	for _, ms := range r.Models {
		nameW = max(nameW, lipgloss.Width(ms.Model))
		countW = max(countW, len(formatCount(ms.Messages)))
	}
	barW := components.CardInnerWidth(cw) - nameW - countW - 12
	if barW < 10 {
		barW = 10
	}

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Width(nameW)
	countStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Width(countW).Align(lipgloss.Right)

	rows := make([]string, 0, len(r.Models))
	for _, ms := range r.Models {
		rows = append(rows, nameStyle.Render(ms.Model)+"  "+
			countStyle.Render(formatCount(ms.Messages))+"  "+
			components.ShareBar(ms.SharePercent, barW))
	}

	return components.ContentCard("Model Usage · "+r.Scope.Label(), strings.Join(rows, "\n"), cw)
}
