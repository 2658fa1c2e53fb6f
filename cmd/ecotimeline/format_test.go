package main

import "testing"

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{12.346, "12.35"},
		{1234.5, "1,234.50"},
		{4462.5, "4,462.50"},
	}
	for _, tt := range tests {
		if got := formatAmount(tt.in); got != tt.want {
			t.Errorf("formatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatYear(t *testing.T) {
	if got := formatYear(nil); got != "-" {
		t.Errorf("formatYear(nil) = %q, want -", got)
	}
	y := 2033
	if got := formatYear(&y); got != "2033" {
		t.Errorf("formatYear(2033) = %q", got)
	}
}

func TestFormatPercent(t *testing.T) {
	if got := formatPercent(0.456); got != "46%" {
		t.Errorf("formatPercent(0.456) = %q, want 46%%", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Japan", 22); got != "Japan" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("United Arab Emirates of Somewhere", 10); len([]rune(got)) != 10 {
		t.Errorf("truncate long = %q, want 10 runes", got)
	}
}
