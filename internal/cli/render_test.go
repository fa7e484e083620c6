package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Model", "Messages"},
		Rows: [][]string{
			{"qwen-max", "2"},
			{"---"},
			{"通义千问", "10"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("table has %d lines, want 7:\n%s", len(lines), out)
	}

	// Every line should have the same display width, including wide runes.
	want := lipgloss.Width(lines[0])
	for i, l := range lines {
		if w := lipgloss.Width(l); w != want {
			t.Errorf("line %d width = %d, want %d: %q", i, w, want, l)
		}
	}
	if !strings.Contains(out, "qwen-max") || !strings.Contains(out, "通义千问") {
		t.Errorf("table missing cells:\n%s", out)
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if got := RenderTable(Table{}); got != "" {
		t.Errorf("RenderTable(empty) = %q, want empty", got)
	}
}

func TestRenderSparkline(t *testing.T) {
	got := RenderSparkline([]float64{0, 5, 10})
	if got != "▁▄█" {
		t.Errorf("RenderSparkline = %q, want ▁▄█", got)
	}
	if RenderSparkline(nil) != "" {
		t.Error("RenderSparkline(nil) should be empty")
	}
}

func TestRenderHorizontalBar(t *testing.T) {
	got := RenderHorizontalBar("Jan", 5, 10, 20)
	if !strings.Contains(got, "Jan") || strings.Count(got, "█") != 10 {
		t.Errorf("RenderHorizontalBar = %q, want label and 10 blocks", got)
	}
	if strings.Contains(RenderHorizontalBar("Feb", 1, 0, 20), "█") {
		t.Error("zero max should render no bar")
	}
}
