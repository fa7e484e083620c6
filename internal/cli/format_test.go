package cli

import "testing"

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4200, "-4,200"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{12, "12"},
		{1234, "1.2K"},
		{1234567, "1.2M"},
		{2_500_000_000, "2.5B"},
	}
	for _, tt := range tests {
		if got := FormatCompact(tt.in); got != tt.want {
			t.Errorf("FormatCompact(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercentAndAverage(t *testing.T) {
	if got := FormatPercent(66.666); got != "66.7%" {
		t.Errorf("FormatPercent = %q, want 66.7%%", got)
	}
	if got := FormatAverage(1.5); got != "1.5" {
		t.Errorf("FormatAverage(1.5) = %q, want 1.5", got)
	}
	if got := FormatAverage(3); got != "3.0" {
		t.Errorf("FormatAverage(3) = %q, want 3.0", got)
	}
}
