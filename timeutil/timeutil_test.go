package timeutil

import (
	"testing"
	"time"
)

var now = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

func TestFormatters(t *testing.T) {
	ts := time.Date(2025, 6, 14, 9, 5, 3, 0, time.UTC)

	if got := FormatDate(ts); got != "2025-06-14" {
		t.Fatalf("FormatDate = %q", got)
	}
	if got := FormatTime(ts); got != "09:05:03" {
		t.Fatalf("FormatTime = %q", got)
	}
	if got := FormatDateTime(ts); got != "2025-06-14 09:05:03" {
		t.Fatalf("FormatDateTime = %q", got)
	}
	if got := FormatDate(time.Time{}); got != "" {
		t.Fatalf("FormatDate(zero) = %q", got)
	}
}

func TestRelativeTime(t *testing.T) {
	cases := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{time.Minute, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{90 * time.Minute, "1 hour ago"},
		{26 * time.Hour, "1 day ago"},
		{8 * 24 * time.Hour, "1 week ago"},
		{45 * 24 * time.Hour, "1 month ago"},
		{400 * 24 * time.Hour, "1 year ago"},
	}
	for _, tc := range cases {
		if got := RelativeTime(now.Add(-tc.ago), now); got != tc.want {
			t.Fatalf("RelativeTime(-%v) = %q, want %q", tc.ago, got, tc.want)
		}
	}

	if got := RelativeTime(now.Add(time.Hour), now); got != "" {
		t.Fatalf("future time = %q, want empty", got)
	}
	if got := RelativeTime(time.Time{}, now); got != "" {
		t.Fatalf("zero time = %q, want empty", got)
	}
}

func TestDayPredicates(t *testing.T) {
	today := time.Date(2025, 6, 15, 1, 0, 0, 0, time.UTC)
	yesterday := time.Date(2025, 6, 14, 23, 59, 0, 0, time.UTC)
	lastWeek := time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC)

	if !IsToday(today, now) || IsToday(yesterday, now) {
		t.Fatal("IsToday misclassified")
	}
	if !IsYesterday(yesterday, now) || IsYesterday(lastWeek, now) {
		t.Fatal("IsYesterday misclassified")
	}
	if IsToday(time.Time{}, now) {
		t.Fatal("zero time must not be today")
	}
}

func TestFriendlyDateTime(t *testing.T) {
	cases := []struct {
		ts   time.Time
		want string
	}{
		{time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC), "today 09:00:00"},
		{time.Date(2025, 6, 14, 22, 15, 0, 0, time.UTC), "yesterday 22:15:00"},
		{time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC), "2025-05-01 08:00:00"},
		{time.Time{}, ""},
	}
	for _, tc := range cases {
		if got := FriendlyDateTime(tc.ts, now); got != tc.want {
			t.Fatalf("FriendlyDateTime(%v) = %q, want %q", tc.ts, got, tc.want)
		}
	}
}
