package coach

import (
	"context"
	"time"

	"github.com/daycoach-ai/daycoach/internal/logging"
	"github.com/daycoach-ai/daycoach/internal/record"
	"github.com/daycoach-ai/daycoach/internal/store"
	"github.com/daycoach-ai/daycoach/internal/summary"
)

// DailyMaintenance refreshes the summary cache when more than seven days
// have elapsed since the last run, then prunes the ledger and old rollups.
// The cron schedule re-fires at the configured hour regardless of outcome.
func (c *Coach) DailyMaintenance(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	doc, err := c.store.Get(ctx)
	if err != nil {
		return err
	}
	if !doc.Coach.LastMaintenance.IsZero() && now.Sub(doc.Coach.LastMaintenance) <= maintenanceEvery {
		return nil
	}

	c.refreshSummaries(ctx, &doc, now)
	pruneLedger(&doc.Coach, now)
	pruneSummaries(&doc.Summaries, now)
	doc.Coach.LastMaintenance = now
	c.persist(ctx, doc)

	logging.Logger().Info(
		"maintenance complete",
		"weekly_summaries", len(doc.Summaries.Weekly),
		"monthly_summaries", len(doc.Summaries.Monthly),
	)
	return nil
}

// RefreshSummaries refreshes rollups immediately, bypassing the seven-day
// maintenance gate but keeping the once-per-day cache memoization.
func (c *Coach) RefreshSummaries(ctx context.Context) (summary.Cache, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc, err := c.store.Get(ctx)
	if err != nil {
		return summary.Cache{}, err
	}
	c.refreshSummaries(ctx, &doc, c.clock.Now())
	c.persist(ctx, doc)
	return doc.Summaries, nil
}

// Summaries returns the cached rollups without regenerating anything.
func (c *Coach) Summaries(ctx context.Context) (summary.Cache, error) {
	doc, err := c.store.Get(ctx)
	if err != nil {
		return summary.Cache{}, err
	}
	return doc.Summaries, nil
}

func (c *Coach) refreshSummaries(ctx context.Context, doc *store.Document, now time.Time) {
	cache, err := c.refresher.Refresh(ctx, summary.Input{
		Records: doc.Records,
		Journal: doc.Journal,
		Focus:   doc.FocusSessions,
	}, doc.Summaries, now)
	if err != nil {
		logging.Logger().Warn("summary refresh aborted", "err", err)
		return
	}
	doc.Summaries = cache
}

// pruneLedger drops dedup entries and baseline snapshots older than the
// rolling retention window; the ledger otherwise grows one entry per date
// forever.
func pruneLedger(state *store.CoachState, now time.Time) {
	cutoff := record.DayKey(now.Add(-ledgerRetention))
	for dateKey := range state.RecentTriggers {
		if dateKey < cutoff {
			delete(state.RecentTriggers, dateKey)
		}
	}
	for dateKey := range state.LastCheckedData {
		if dateKey < cutoff {
			delete(state.LastCheckedData, dateKey)
		}
	}
}

// pruneSummaries removes rollups generated more than six months ago.
func pruneSummaries(cache *summary.Cache, now time.Time) {
	cutoff := now.Add(-summaryRetention)
	for key, w := range cache.Weekly {
		if !w.GeneratedAt.IsZero() && w.GeneratedAt.Before(cutoff) {
			delete(cache.Weekly, key)
		}
	}
	for key, m := range cache.Monthly {
		if !m.GeneratedAt.IsZero() && m.GeneratedAt.Before(cutoff) {
			delete(cache.Monthly, key)
		}
	}
}
