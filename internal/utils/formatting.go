package utils

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// FormatPhones joins phone numbers the way contact summaries show them
func FormatPhones(phones []string) string {
	if len(phones) == 0 {
		return "none"
	}
	return strings.Join(phones, "; ")
}

// FormatDaysUntil describes a day distance in words
func FormatDaysUntil(days int) string {
	switch days {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

// TruncateString truncates a string to a maximum number of runes with ellipsis
func TruncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}

	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// PadString pads a string to a specific width
func PadString(s string, width int, padChar rune) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(string(padChar), width-n)
}

// Capitalize upper-cases the first letter of s
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// FormatTimeAgo formats t relative to now as "X ago"
func FormatTimeAgo(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "min")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return plural(int(diff.Hours()/24), "day")
	case diff < 30*24*time.Hour:
		return plural(int(diff.Hours()/(24*7)), "week")
	default:
		return plural(int(diff.Hours()/(24*30)), "month")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
