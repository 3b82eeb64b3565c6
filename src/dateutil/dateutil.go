package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layouts tried by ParseDate, in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"01/02/2006",
}

// ParseDate parses a date string in one of the supported formats:
// ISO date (YYYY-MM-DD), ISO datetime, MM/DD/YYYY, or a numeric unix
// timestamp (seconds or milliseconds). It never panics; unparseable
// input is reported as an error.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	// 数値文字列はunixタイムスタンプとして解釈（13桁以上はミリ秒）
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if len(s) >= 13 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}

	return time.Time{}, fmt.Errorf("unparseable date: %q", s)
}

// ParseTime parses a clock time in H:MM or HH:MM format and validates
// the hour (0-23) and minute (0-59) ranges.
func ParseTime(s string) (hour, minute int, err error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("unparseable time: %q", s)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("unparseable time: %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("unparseable time: %q", s)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time out of range: %q", s)
	}

	return hour, minute, nil
}

// CombineDateAndTime merges a date string and a time string into a
// single instant: the date's calendar day at hour:minute, with seconds
// and nanoseconds zeroed.
func CombineDateAndTime(dateStr, timeStr string) (time.Time, error) {
	d, err := ParseDate(dateStr)
	if err != nil {
		return time.Time{}, err
	}
	hour, minute, err := ParseTime(timeStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location()), nil
}

// IsToday reports whether t falls on the same calendar day as now.
func IsToday(t, now time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsPast reports whether t is strictly before now.
func IsPast(t, now time.Time) bool {
	return t.Before(now)
}

// IsOverdue reports whether t is in the past and not today. Note that
// this deliberately excludes "earlier today"; the status engine uses a
// direct instant comparison instead and the two disagree for instants
// earlier on the current day.
func IsOverdue(t, now time.Time) bool {
	return IsPast(t, now) && !IsToday(t, now)
}

// FormatRelativeTime renders the distance between t and now as a
// human-readable string ("Just now", "5 minutes ago", "in 3 days", ...).
func FormatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	past := diff >= 0
	if diff < 0 {
		diff = -diff
	}

	var value int64
	var unit string

	switch {
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		value = int64(diff.Minutes())
		unit = "minute"
	case diff < 24*time.Hour:
		value = int64(diff.Hours())
		unit = "hour"
	case diff < 7*24*time.Hour:
		value = int64(diff.Hours() / 24)
		unit = "day"
	case diff < 30*24*time.Hour:
		value = int64(diff.Hours() / 24 / 7)
		unit = "week"
	case diff < 365*24*time.Hour:
		value = int64(diff.Hours() / 24 / 30)
		unit = "month"
	default:
		value = int64(diff.Hours() / 24 / 365)
		unit = "year"
	}

	if value != 1 {
		unit += "s"
	}

	if past {
		return fmt.Sprintf("%d %s ago", value, unit)
	}
	return fmt.Sprintf("in %d %s", value, unit)
}
