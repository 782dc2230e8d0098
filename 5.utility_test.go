package main

import (
	"testing"
	"time"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-42000, "-42,000"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.n); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatHP(t *testing.T) {
	if got := FormatHP(3); got != "3" {
		t.Errorf("FormatHP(3) = %q, want %q", got, "3")
	}
	if got := FormatHP(2.5); got != "2.5" {
		t.Errorf("FormatHP(2.5) = %q, want %q", got, "2.5")
	}
}

func TestProgressBar(t *testing.T) {
	if got := ProgressBar(0); got != "▱▱▱▱▱▱▱▱▱▱" {
		t.Errorf("ProgressBar(0) = %q", got)
	}
	if got := ProgressBar(1); got != "▰▰▰▰▰▰▰▰▰▰" {
		t.Errorf("ProgressBar(1) = %q", got)
	}
	if got := ProgressBar(0.5); got != "▰▰▰▰▰▱▱▱▱▱" {
		t.Errorf("ProgressBar(0.5) = %q", got)
	}
	// Out-of-range ratios clamp instead of panicking.
	if got := ProgressBar(-3); got != ProgressBar(0) {
		t.Errorf("ProgressBar(-3) = %q", got)
	}
	if got := ProgressBar(7); got != ProgressBar(1) {
		t.Errorf("ProgressBar(7) = %q", got)
	}
}

func TestPlural(t *testing.T) {
	if Plural(1) != "" || Plural(0) != "s" || Plural(2) != "s" || Plural(-1) != "s" {
		t.Error("Plural is wrong for one of 1, 0, 2, -1")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s      string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a much longer string", 10, "a much ..."},
		{"abc", 2, "ab"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.s, tt.maxLen); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
		}
	}
}

func TestHumanizeDuration(t *testing.T) {
	tests := []struct {
		d     time.Duration
		depth int
		want  string
	}{
		{500 * time.Millisecond, 2, "0 seconds"},
		{time.Second, 2, "1 second"},
		{90 * time.Second, 2, "1 minute and 30 seconds"},
		{time.Hour + 30*time.Minute, 2, "1 hour and 30 minutes"},
		{26*time.Hour + 5*time.Minute, 3, "1 day, 2 hours and 5 minutes"},
		{26*time.Hour + 5*time.Minute, 1, "1 day"},
	}
	for _, tt := range tests {
		if got := HumanizeDuration(tt.d, tt.depth); got != tt.want {
			t.Errorf("HumanizeDuration(%v, %d) = %q, want %q", tt.d, tt.depth, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "∞"},
		{45 * time.Second, "45s"},
		{3 * time.Minute, "3m 0s"},
		{2*time.Hour + 15*time.Minute, "2h 15m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
