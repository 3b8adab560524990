package record

import (
	"testing"
	"time"
)

func TestDayKeyRoundTrip(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 8, 31, 14, 30, 0, 0, time.Local)
	key := DayKey(day)
	if key != "2026-08-31" {
		t.Fatalf("expected 2026-08-31, got %q", key)
	}
	parsed, err := ParseDayKey(key)
	if err != nil {
		t.Fatalf("parse day key: %v", err)
	}
	if !SameDay(parsed, day) {
		t.Fatalf("expected round trip to land on the same day")
	}
	if _, err := ParseDayKey("not-a-date"); err == nil {
		t.Fatalf("expected error for malformed key")
	}
}

func TestWeekKey_ISOWeekBoundaries(t *testing.T) {
	t.Parallel()

	// 2026-01-01 is a Thursday, so it belongs to ISO week 1 of 2026.
	if got := WeekKey(time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)); got != "2026-W01" {
		t.Fatalf("expected 2026-W01, got %q", got)
	}
	// 2027-01-01 is a Friday in ISO week 53 of 2026.
	if got := WeekKey(time.Date(2027, 1, 1, 0, 0, 0, 0, time.Local)); got != "2026-W53" {
		t.Fatalf("expected 2026-W53, got %q", got)
	}
}

func TestWeekStart_MondayMidnight(t *testing.T) {
	t.Parallel()

	// 2026-08-31 is a Monday.
	for _, day := range []time.Time{
		time.Date(2026, 8, 31, 9, 0, 0, 0, time.Local),
		time.Date(2026, 9, 2, 23, 59, 0, 0, time.Local),
		time.Date(2026, 9, 6, 12, 0, 0, 0, time.Local), // Sunday
	} {
		start := WeekStart(day)
		want := time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)
		if !start.Equal(want) {
			t.Fatalf("WeekStart(%v) = %v, want %v", day, start, want)
		}
	}
}

func TestMonthKeys(t *testing.T) {
	t.Parallel()

	day := time.Date(2026, 8, 15, 10, 0, 0, 0, time.Local)
	if got := MonthKey(day); got != "2026-08" {
		t.Fatalf("expected 2026-08, got %q", got)
	}
	if got := MonthStart(day); !got.Equal(time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("unexpected month start %v", got)
	}
	start, err := MonthStartOfKey("2026-08")
	if err != nil {
		t.Fatalf("parse month key: %v", err)
	}
	if !start.Equal(time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("unexpected parsed month start %v", start)
	}
	if _, err := MonthStartOfKey("bogus"); err == nil {
		t.Fatalf("expected error for malformed month key")
	}
}
