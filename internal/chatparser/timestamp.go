package chatparser

import (
	"strconv"
	"strings"
	"time"
)

// normalizeYear applies the spec's two-digit-year pivot: YY <= 69 maps to
// 2000+YY, otherwise 1900+YY. Four-digit years pass through unchanged.
func normalizeYear(yearStr string) int {
	y, err := strconv.Atoi(yearStr)
	if err != nil {
		return time.Now().UTC().Year()
	}
	if len(yearStr) >= 4 {
		return y
	}
	if y <= 69 {
		return 2000 + y
	}
	return 1900 + y
}

// to24Hour converts a possibly 12-hour clock reading plus an optional
// AM/PM token into 24-hour form. ampm is "" when the source had none.
func to24Hour(hour int, ampm string) int {
	ampm = strings.ToUpper(strings.TrimSpace(ampm))
	switch ampm {
	case "AM":
		if hour == 12 {
			return 0
		}
		return hour
	case "PM":
		if hour == 12 {
			return 12
		}
		return hour + 12
	default:
		return hour
	}
}

func atoiOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

// buildUTC constructs a UTC instant from already-24-hour components.
// Naive timestamps (no explicit zone in the source) are always assumed
// to be UTC per the frozen Open Question decision.
func buildUTC(year, month, day, hour, minute, second int) time.Time {
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
}

var monthNames = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4, "may": 5, "june": 6,
	"july": 7, "august": 8, "september": 9, "october": 10, "november": 11, "december": 12,
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "jun": 6, "jul": 7, "aug": 8, "sep": 9, "sept": 9,
	"oct": 10, "nov": 11, "dec": 12,
}

func monthFromName(name string) (int, bool) {
	m, ok := monthNames[strings.ToLower(name)]
	return m, ok
}
