package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/chatrecap/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRow(t *testing.T) {
	tests := []struct {
		total, n int
		want     []int
	}{
		{10, 3, []int{4, 3, 3}},
		{9, 3, []int{3, 3, 3}},
		{5, 0, nil},
	}
	for _, tt := range tests {
		got := LayoutRow(tt.total, tt.n)
		if len(got) != len(tt.want) {
			t.Fatalf("LayoutRow(%d, %d) = %v, want %v", tt.total, tt.n, got, tt.want)
		}
		sum := 0
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("LayoutRow(%d, %d) = %v, want %v", tt.total, tt.n, got, tt.want)
			}
			sum += got[i]
		}
		if tt.n > 0 && sum != tt.total {
			t.Errorf("sum = %d, want %d", sum, tt.total)
		}
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]Metric{
		{Label: "Conversations", Value: "12"},
		{Label: "Messages", Value: "340", Detail: "2025"},
		{Label: "Models", Value: "3"},
	}, 90)

	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 90 {
			t.Errorf("line %d width = %d, want 90", i, w)
		}
	}
}

func TestRenderTabBarMatchesTabWidths(t *testing.T) {
	theme.SetActive("flexoki-dark")

	for active := range Tabs {
		bar := RenderTabBar(active, 200)
		plain := strings.TrimRight(stripANSI(bar), " ")

		want := 0
		for i, tab := range Tabs {
			want += TabVisualWidth(tab, i == active)
		}
		want += len(Tabs) - 1 // separators
		if got := lipgloss.Width(plain); got != want {
			t.Errorf("active=%d: bar width = %d, want %d (%q)", active, got, want, plain)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('d'); got != 2 {
		t.Errorf("TabIdxByKey('d') = %d, want 2", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}

func TestBarRows(t *testing.T) {
	out := stripANSI(BarRows([]string{"January 2025", "March 2025"}, []int{4, 1}, 40))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d rows, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "January 2025 │ ") || !strings.HasSuffix(lines[0], " 4") {
		t.Errorf("row 0 = %q", lines[0])
	}
	if strings.Count(lines[0], "█") <= strings.Count(lines[1], "█") {
		t.Errorf("peak row should have the longest bar:\n%s", out)
	}
	if strings.Count(lines[1], "█") == 0 {
		t.Error("non-zero value should render at least one block")
	}
	if BarRows([]string{"a"}, nil, 40) != "" {
		t.Error("mismatched input should render nothing")
	}
}

func TestShareBar(t *testing.T) {
	out := stripANSI(ShareBar(50, 10))
	if !strings.HasSuffix(out, " 50.0%") {
		t.Errorf("ShareBar = %q", out)
	}
}

func TestSparkline(t *testing.T) {
	out := stripANSI(Sparkline([]float64{0, 4, 8}, theme.Active.Accent))
	if out != "▁▄█" {
		t.Errorf("Sparkline = %q, want ▁▄█", out)
	}
}

// stripANSI removes SGR escape sequences.
func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && r == 'm':
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
