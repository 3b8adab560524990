package record

import (
	"fmt"
	"time"
)

// DayFormat is the canonical date-key layout for daily records.
const DayFormat = "2006-01-02"

// DayKey returns the date key for t in local time.
func DayKey(t time.Time) string {
	return t.In(time.Local).Format(DayFormat)
}

// ParseDayKey parses a YYYY-MM-DD date key in local time.
func ParseDayKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DayFormat, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date key %q: %w", key, err)
	}
	return t, nil
}

// WeekKey returns the ISO-week identifier for t, e.g. "2026-W35".
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// MonthKey returns the calendar-month identifier for t, e.g. "2026-08".
func MonthKey(t time.Time) string {
	return t.In(time.Local).Format("2006-01")
}

// WeekStart returns the Monday that begins t's ISO week, at midnight local.
func WeekStart(t time.Time) time.Time {
	t = t.In(time.Local)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	day := t.AddDate(0, 0, 1-weekday)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local)
}

// MonthStart returns midnight local on the first day of t's month.
func MonthStart(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
}

// MonthStartOfKey returns the start of the month named by a YYYY-MM key.
func MonthStartOfKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01", key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse month key %q: %w", key, err)
	}
	return t, nil
}

// SameDay reports whether a and b fall on the same local calendar date.
func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}
