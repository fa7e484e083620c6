// Package report renders aggregated chat statistics as Markdown and console text.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/chatrecap/internal/cli"
	"github.com/theirongolddev/chatrecap/internal/model"
)

// FileName returns the Markdown file name for scope.
func FileName(scope model.Scope) string {
	if scope.AllTime() {
		return "ai_chat_summary_all.md"
	}
	return fmt.Sprintf("ai_chat_summary_%d.md", scope.Year)
}

// Markdown renders r as a Markdown document. The output depends only on r.
func Markdown(r model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# AI Chat Summary (%s)\n\n", r.Scope.Label())
	fmt.Fprintf(&b, "- Conversations: %s\n", cli.FormatNumber(int64(r.TotalConversations)))
	fmt.Fprintf(&b, "- Messages: %s\n", cli.FormatNumber(int64(r.TotalMessages)))
	fmt.Fprintf(&b, "- User messages: %s (%s)\n", cli.FormatNumber(int64(r.User.Messages)), chars(r.User.Chars))
	fmt.Fprintf(&b, "- Assistant messages: %s (%s)\n", cli.FormatNumber(int64(r.Assistant.Messages)), chars(r.Assistant.Chars))
	if r.AvgPerConversation != nil {
		fmt.Fprintf(&b, "- Average messages per conversation: %.1f\n", *r.AvgPerConversation)
	}

	b.WriteString("\n## Monthly Activity\n\n")
	if len(r.Monthly) == 0 {
		b.WriteString("- No activity\n")
	}
	for _, m := range r.Monthly {
		fmt.Fprintf(&b, "- %s: %s\n", m.Key, messages(m.Messages))
	}

	b.WriteString("\n## Model Usage\n\n")
	if len(r.Models) == 0 {
		b.WriteString("- No assistant messages\n")
	}
	for _, m := range r.Models {
		fmt.Fprintf(&b, "- %s: %s\n", m.Model, messages(m.Messages))
	}

	return b.String()
}

// WriteMarkdown renders r into dir, replacing any existing report for the same
// scope. The file is written to a temp file first and renamed into place.
func WriteMarkdown(dir string, r model.Report) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	path := filepath.Join(dir, FileName(r.Scope))

	tmp, err := os.CreateTemp(dir, ".ai_chat_summary-*.md")
	if err != nil {
		return "", fmt.Errorf("creating report file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.WriteString(Markdown(r)); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("writing report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil { //nolint:gosec // reports are meant to be shared
		return "", fmt.Errorf("writing report: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("saving report: %w", err)
	}
	return path, nil
}

func messages(n int) string {
	if n == 1 {
		return "1 message"
	}
	return cli.FormatNumber(int64(n)) + " messages"
}

func chars(n int) string {
	if n == 1 {
		return "1 character"
	}
	return cli.FormatNumber(int64(n)) + " characters"
}
