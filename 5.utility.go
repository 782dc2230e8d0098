package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ============================================================================
// Helper Functions
// ============================================================================

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intPtr(i int) *int {
	return &i
}

// ============================================================================
// Math & Logic
// ============================================================================

// Min returns the minimum of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Atoi converts a string to an integer, returning 0 on error.
func Atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

// ============================================================================
// String Utilities
// ============================================================================

// Truncate truncates a string to the specified length with ellipsis at the end.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// FormatNumber formats an integer with thousands separators.
func FormatNumber(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte(s[i])
	}
	if neg {
		return "-" + sb.String()
	}
	return sb.String()
}

// FormatHP formats a hit point value, dropping a trailing ".0".
func FormatHP(hp float64) string {
	return strings.TrimSuffix(fmt.Sprintf("%.1f", hp), ".0")
}

// ProgressBar renders a fixed-width text gauge for a ratio in [0, 1].
func ProgressBar(ratio float64) string {
	const width = 10
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(math.Round(ratio * width))
	return strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
}

// Plural returns "s" when n is anything but 1.
func Plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// ============================================================================
// Time Utilities
// ============================================================================

func FormatDuration(d time.Duration) string {
	if d == 0 {
		return "∞"
	}
	h, m, s := int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// HumanizeDuration spells out the largest non-zero units of d, at most depth of them.
func HumanizeDuration(d time.Duration, depth int) string {
	if d < time.Second {
		return "0 seconds"
	}
	units := []struct {
		name string
		size time.Duration
	}{
		{"day", 24 * time.Hour},
		{"hour", time.Hour},
		{"minute", time.Minute},
		{"second", time.Second},
	}

	var parts []string
	for _, u := range units {
		if len(parts) >= depth {
			break
		}
		if n := int(d / u.size); n > 0 {
			d -= time.Duration(n) * u.size
			parts = append(parts, fmt.Sprintf("%d %s%s", n, u.name, Plural(n)))
		}
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}

// RelativeTimestamp renders a Discord relative timestamp for t.
func RelativeTimestamp(t time.Time) string {
	return fmt.Sprintf("<t:%d:R>", t.Unix())
}
