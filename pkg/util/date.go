package util

import (
	"fmt"
	"strconv"
	"time"
)

// ParseDate tries YYYY-MM-DD, RFC3339, and unix seconds. Returns (t, true) if any worked.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0), true
	}
	return time.Time{}, false
}

// ParseDateDefault parses a date or returns default if empty/invalid.
func ParseDateDefault(s string, def time.Time) time.Time {
	if t, ok := ParseDate(s); ok {
		return t
	}
	return def
}

// Day truncates a time to midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayOffset returns the whole number of days from base to t, both at day granularity.
func DayOffset(base, t time.Time) int {
	return int(Day(t).Sub(Day(base)) / (24 * time.Hour))
}

// PeriodToRange converts a period string like "6mo", "2y", "30d" into a
// [start, end] range ending now. Unknown periods default to two years.
func PeriodToRange(period string, now time.Time) (time.Time, time.Time, error) {
	end := Day(now)
	if period == "" {
		return end.AddDate(-2, 0, 0), end, nil
	}
	n := len(period)
	var num int
	var unit string
	switch {
	case n > 2 && period[n-2:] == "mo":
		num, unit = atoiOr(period[:n-2], 0), "mo"
	case n > 1 && (period[n-1] == 'y' || period[n-1] == 'd'):
		num, unit = atoiOr(period[:n-1], 0), string(period[n-1])
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("invalid period %q", period)
	}
	if num <= 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid period %q", period)
	}
	switch unit {
	case "y":
		return end.AddDate(-num, 0, 0), end, nil
	case "mo":
		return end.AddDate(0, -num, 0), end, nil
	default:
		return end.AddDate(0, 0, -num), end, nil
	}
}

func atoiOr(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
	return atoiOr(s, def)
}
