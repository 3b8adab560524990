package summary

import (
	"context"
	"sort"
	"time"

	"github.com/daycoach-ai/daycoach/internal/logging"
	"github.com/daycoach-ai/daycoach/internal/record"
)

// Freeze ages: once a period's start is older than its threshold, a cached
// summary for it is never regenerated.
const (
	weeklyFreezeAge  = 30 * 24 * time.Hour
	monthlyFreezeAge = 90 * 24 * time.Hour
)

// Generator produces one completion for one prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Input is the slice of store state the summarizer reads.
type Input struct {
	Records map[string]record.DailyRecord
	Journal []record.JournalEntry
	Focus   []record.FocusSession
}

// Refresher generates and memoizes tiered rollups.
type Refresher struct {
	gen Generator
}

// NewRefresher creates a refresher backed by gen.
func NewRefresher(gen Generator) *Refresher {
	return &Refresher{gen: gen}
}

// Refresh brings the cache up to date for all completed weeks and months and
// returns the updated cache; the caller persists it.
//
// It is a no-op when the cache was already refreshed on the current calendar
// date. The current week and month are always excluded: they stay represented
// by raw daily records. A generator transport failure skips that one period
// so it is retried on a later refresh; a malformed reply is cached as a
// degraded summary with the error flag set.
func (r *Refresher) Refresh(ctx context.Context, in Input, cache Cache, now time.Time) (Cache, error) {
	if err := ctx.Err(); err != nil {
		return cache, err
	}
	if !cache.LastSummarized.IsZero() && record.SameDay(cache.LastSummarized, now) {
		return cache, nil
	}

	out := cache.Clone()
	weeks, months := bucketKeys(in.Records, now)

	for _, weekKey := range sortedKeys(weeks) {
		if err := ctx.Err(); err != nil {
			return cache, err
		}
		dates := weeks[weekKey]
		if cached, ok := out.Weekly[weekKey]; ok && frozenWeek(cached, dates, now) {
			continue
		}
		weekly, ok := r.weekly(ctx, weekKey, dates, in.Records, now)
		if ok {
			out.Weekly[weekKey] = weekly
		}
	}

	for _, month := range sortedKeys(months) {
		if err := ctx.Err(); err != nil {
			return cache, err
		}
		if _, ok := out.Monthly[month]; ok && frozenMonth(month, now) {
			continue
		}
		metrics := MonthMetrics(month, in.Records, in.Journal, in.Focus)
		monthly, ok := r.monthly(ctx, month, metrics, now)
		if ok {
			out.Monthly[month] = monthly
		}
	}

	out.LastSummarized = now
	return out, nil
}

func (r *Refresher) weekly(ctx context.Context, weekKey string, dates []string, records map[string]record.DailyRecord, now time.Time) (Weekly, bool) {
	text, err := r.gen.Generate(ctx, weeklyPrompt(weekKey, dates, records))
	if err != nil {
		// Transport failures are not cached so the week is retried on a
		// later refresh.
		logging.Logger().Warn("weekly summary generation failed", "week", weekKey, "err", err)
		return Weekly{}, false
	}
	w, ok := DecodeWeekly(weekKey, text, now)
	if !ok {
		logging.Logger().Warn("weekly summary reply unparseable", "week", weekKey)
		return degradedWeekly(weekKey, dates, now), true
	}
	w.Dates = dates
	return w, true
}

func (r *Refresher) monthly(ctx context.Context, month string, metrics Metrics, now time.Time) (Monthly, bool) {
	text, err := r.gen.Generate(ctx, monthlyPrompt(month, metrics))
	if err != nil {
		// Transport failures are not cached: the metrics were computed
		// locally, so retrying on a later refresh costs nothing.
		logging.Logger().Warn("monthly summary generation failed", "month", month, "err", err)
		return Monthly{}, false
	}
	m, ok := DecodeMonthly(month, metrics, text, now)
	if !ok {
		logging.Logger().Warn("monthly summary reply unparseable", "month", month)
		return Monthly{
			Month:        month,
			Summary:      "Summary generation failed for this month.",
			DominantMood: DominantMood(metrics.MoodCounts),
			Metrics:      metrics,
			GeneratedAt:  now,
			Error:        true,
		}, true
	}
	return m, true
}

func degradedWeekly(weekKey string, dates []string, now time.Time) Weekly {
	return Weekly{
		Week:        weekKey,
		Summary:     "Summary generation failed for this week.",
		Dates:       dates,
		GeneratedAt: now,
		Error:       true,
	}
}

// frozenWeek reports whether a cached weekly summary is immutable: the week
// started more than the freeze age before now.
func frozenWeek(cached Weekly, dates []string, now time.Time) bool {
	dateKey := cached.Week
	if len(dates) > 0 {
		dateKey = dates[0]
	}
	day, err := record.ParseDayKey(dateKey)
	if err != nil {
		return true
	}
	return record.WeekStart(day).Before(now.Add(-weeklyFreezeAge))
}

func frozenMonth(month string, now time.Time) bool {
	start, err := record.MonthStartOfKey(month)
	if err != nil {
		return true
	}
	return start.Before(now.Add(-monthlyFreezeAge))
}

// bucketKeys groups record date keys into completed ISO weeks and months,
// skipping future dates and the current week and month.
func bucketKeys(records map[string]record.DailyRecord, now time.Time) (map[string][]string, map[string][]string) {
	currentWeek := record.WeekKey(now)
	currentMonth := record.MonthKey(now)
	today := record.DayKey(now)

	weeks := make(map[string][]string)
	months := make(map[string][]string)
	for dateKey := range records {
		day, err := record.ParseDayKey(dateKey)
		if err != nil || dateKey > today {
			continue
		}
		if weekKey := record.WeekKey(day); weekKey != currentWeek {
			weeks[weekKey] = append(weeks[weekKey], dateKey)
		}
		if monthKey := record.MonthKey(day); monthKey != currentMonth {
			months[monthKey] = append(months[monthKey], dateKey)
		}
	}
	for _, dates := range weeks {
		sort.Strings(dates)
	}
	for _, dates := range months {
		sort.Strings(dates)
	}
	return weeks, months
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
