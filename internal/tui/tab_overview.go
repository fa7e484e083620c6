package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/chatrecap/internal/cli"
	"github.com/theirongolddev/chatrecap/internal/tui/components"
	"github.com/theirongolddev/chatrecap/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	r := a.report

	cards := components.MetricCardRow([]components.Metric{
		{Label: "Conversations", Value: formatCount(r.TotalConversations), Detail: "in export"},
		{Label: "Messages", Value: formatCount(r.TotalMessages), Detail: r.Scope.Label()},
		{Label: "User", Value: formatCount(r.User.Messages), Detail: cli.FormatCompact(int64(r.User.Chars)) + " chars"},
		{Label: "Assistant", Value: formatCount(r.Assistant.Messages), Detail: cli.FormatCompact(int64(r.Assistant.Chars)) + " chars"},
	}, cw)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	warnStyle := lipgloss.NewStyle().Foreground(t.Warn)

	var b strings.Builder
	if len(r.Monthly) > 0 {
		values := make([]float64, len(r.Monthly))
		for i, ms := range r.Monthly {
			values[i] = float64(ms.Messages)
		}
		b.WriteString(components.Sparkline(values, t.Accent))
		fmt.Fprintf(&b, "  %s → %s\n",
			labelStyle.Render(r.Monthly[0].Key.String()),
			labelStyle.Render(r.Monthly[len(r.Monthly)-1].Key.String()))
	} else {
		b.WriteString(labelStyle.Render("No activity in this scope"))
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render("Average messages per conversation: "))
	if r.AvgPerConversation != nil {
		b.WriteString(valueStyle.Render(cli.FormatAverage(*r.AvgPerConversation)))
	} else {
		b.WriteString(labelStyle.Render("n/a"))
	}
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("Models used: "))
	b.WriteString(valueStyle.Render(formatCount(len(r.Models))))

	if a.dropped > 0 {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render(fmt.Sprintf("%s messages without a timestamp were skipped", formatCount(a.dropped))))
	}

	return cards + "\n" + components.ContentCard("Activity", b.String(), cw)
}
