package report

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/chatrecap/internal/cli"
	"github.com/theirongolddev/chatrecap/internal/model"
)

const monthBarWidth = 30

// Console renders r as the terminal report. It mirrors the Markdown sections
// and adds emoji section markers and lipgloss styling.
func Console(r model.Report) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(cli.RenderTitle(fmt.Sprintf("🤖 AI CHAT REPORT  %s", strings.ToUpper(r.Scope.Label()))))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "  📁 Conversations: %s\n", cli.Value(cli.FormatNumber(int64(r.TotalConversations))))
	fmt.Fprintf(&b, "  💬 Messages:      %s\n", cli.Value(cli.FormatNumber(int64(r.TotalMessages))))
	fmt.Fprintf(&b, "     - User:      %s %s\n",
		cli.Value(cli.FormatNumber(int64(r.User.Messages))), cli.Muted("("+chars(r.User.Chars)+")"))
	fmt.Fprintf(&b, "     - Assistant: %s %s\n",
		cli.Value(cli.FormatNumber(int64(r.Assistant.Messages))), cli.Muted("("+chars(r.Assistant.Chars)+")"))
	b.WriteString("\n")

	b.WriteString("  " + cli.Section(fmt.Sprintf("📈 Monthly activity (%s)", r.Scope.Label())) + "\n")
	if len(r.Monthly) == 0 {
		b.WriteString("     " + cli.Muted("No activity") + "\n")
	}
	peak := 0
	for _, m := range r.Monthly {
		if m.Messages > peak {
			peak = m.Messages
		}
	}
	for _, m := range r.Monthly {
		label := fmt.Sprintf("   %-14s %8s", m.Key, cli.FormatNumber(int64(m.Messages)))
		b.WriteString(cli.RenderHorizontalBar(label, float64(m.Messages), float64(peak), monthBarWidth))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("  " + cli.Section("🧠 Models") + "\n")
	if len(r.Models) == 0 {
		b.WriteString("     " + cli.Muted("No assistant messages") + "\n")
	}
	for _, m := range r.Models {
		fmt.Fprintf(&b, "     - %s: %s %s\n", m.Model,
			cli.Value(messages(m.Messages)), cli.Muted(cli.FormatPercent(m.SharePercent)))
	}
	b.WriteString("\n")

	if r.AvgPerConversation != nil {
		fmt.Fprintf(&b, "  📊 Average messages per conversation: %s\n\n",
			cli.Value(cli.FormatAverage(*r.AvgPerConversation)))
	}

	return b.String()
}
