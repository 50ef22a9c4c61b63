// Package timeutil formats timestamps for task lists and notification
// feeds: fixed backend formats plus human-friendly relative rendering.
package timeutil

import (
	"fmt"
	"time"
)

// Layouts matching the backend's date formats.
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// FormatDate renders t as YYYY-MM-DD. Zero time renders as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// FormatTime renders t as HH:MM:SS. Zero time renders as "".
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimeLayout)
}

// FormatDateTime renders t as YYYY-MM-DD HH:MM:SS. Zero time renders as "".
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateTimeLayout)
}

// RelativeTime renders how long ago t was, relative to now: "just now"
// under a minute, then minutes, hours, days, weeks, months and years.
// Future or zero times render as "".
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	diff := now.Sub(t)
	if diff < 0 {
		return ""
	}

	const (
		day   = 24 * time.Hour
		week  = 7 * day
		month = 30 * day
		year  = 365 * day
	)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff/time.Minute), "minute")
	case diff < day:
		return plural(int(diff/time.Hour), "hour")
	case diff < week:
		return plural(int(diff/day), "day")
	case diff < month:
		return plural(int(diff/week), "week")
	case diff < year:
		return plural(int(diff/month), "month")
	default:
		return plural(int(diff/year), "year")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// IsToday reports whether t falls on the same calendar day as now.
func IsToday(t, now time.Time) bool {
	if t.IsZero() {
		return false
	}
	y1, m1, d1 := t.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsYesterday reports whether t falls on the calendar day before now.
func IsYesterday(t, now time.Time) bool {
	return IsToday(t, now.AddDate(0, 0, -1))
}

// FriendlyDateTime renders "today HH:MM:SS" or "yesterday HH:MM:SS" for
// recent times and the full datetime otherwise.
func FriendlyDateTime(t, now time.Time) string {
	switch {
	case t.IsZero():
		return ""
	case IsToday(t, now):
		return "today " + FormatTime(t)
	case IsYesterday(t, now):
		return "yesterday " + FormatTime(t)
	default:
		return FormatDateTime(t)
	}
}
