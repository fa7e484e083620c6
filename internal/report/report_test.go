package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/chatrecap/internal/model"
)

func sampleReport() model.Report {
	avg := 2.0
	return model.Report{
		Scope:              model.Scope{Year: 2025},
		TotalConversations: 2,
		TotalMessages:      4,
		User:               model.RoleStats{Messages: 1, Chars: 1234},
		Assistant:          model.RoleStats{Messages: 3, Chars: 1},
		Monthly: []model.MonthlyStats{
			{Key: model.YearMonth{Year: 2025, Month: time.January}, Messages: 3},
			{Key: model.YearMonth{Year: 2025, Month: time.March}, Messages: 1},
		},
		Models: []model.ModelStats{
			{Model: "qwen-max", Messages: 2, SharePercent: 66.7},
			{Model: "unknown", Messages: 1, SharePercent: 33.3},
		},
		AvgPerConversation: &avg,
	}
}

func TestFileName(t *testing.T) {
	if got := FileName(model.Scope{Year: 2025}); got != "ai_chat_summary_2025.md" {
		t.Errorf("FileName(2025) = %q", got)
	}
	if got := FileName(model.Scope{}); got != "ai_chat_summary_all.md" {
		t.Errorf("FileName(all) = %q", got)
	}
}

func TestMarkdown(t *testing.T) {
	want := `# AI Chat Summary (2025)

- Conversations: 2
- Messages: 4
- User messages: 1 (1,234 characters)
- Assistant messages: 3 (1 character)
- Average messages per conversation: 2.0

## Monthly Activity

- January 2025: 3 messages
- March 2025: 1 message

## Model Usage

- qwen-max: 2 messages
- unknown: 1 message
`
	if got := Markdown(sampleReport()); got != want {
		t.Errorf("Markdown mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestMarkdown_EmptyAndNoAverage(t *testing.T) {
	r := model.Report{Scope: model.Scope{}}
	got := Markdown(r)

	if !strings.HasPrefix(got, "# AI Chat Summary (all time)\n") {
		t.Errorf("header = %q", strings.SplitN(got, "\n", 2)[0])
	}
	if strings.Contains(got, "Average") {
		t.Error("average line should be omitted without conversations")
	}
	if !strings.Contains(got, "- No activity\n") || !strings.Contains(got, "- No assistant messages\n") {
		t.Errorf("empty sections not rendered:\n%s", got)
	}
}

func TestWriteMarkdown_OverwritesAndIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ai_chat_summary_2025.md")
	if err := os.WriteFile(path, []byte("stale"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := WriteMarkdown(dir, sampleReport())
	if err != nil {
		t.Fatalf("WriteMarkdown: %v", err)
	}
	if got != path {
		t.Errorf("path = %q, want %q", got, path)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) == "stale" {
		t.Fatal("existing report was not overwritten")
	}

	if _, err := WriteMarkdown(dir, sampleReport()); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Error("two writes of the same report differ")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("output dir has %d entries, want 1 (no temp files left)", len(entries))
	}
}

func TestWriteMarkdown_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports", "chat")
	path, err := WriteMarkdown(dir, model.Report{})
	if err != nil {
		t.Fatalf("WriteMarkdown: %v", err)
	}
	if filepath.Base(path) != "ai_chat_summary_all.md" {
		t.Errorf("path = %q", path)
	}
}

func TestConsole(t *testing.T) {
	out := Console(sampleReport())
	for _, want := range []string{"🤖", "📁", "💬", "📈", "🧠", "📊", "January 2025", "qwen-max", "1,234 characters"} {
		if !strings.Contains(out, want) {
			t.Errorf("console output missing %q", want)
		}
	}
	// Models section keeps report order.
	if strings.Index(out, "qwen-max") > strings.Index(out, "unknown") {
		t.Error("models out of order")
	}

	r := sampleReport()
	r.AvgPerConversation = nil
	if strings.Contains(Console(r), "📊") {
		t.Error("average line should be omitted")
	}
}
