package coach

import (
	"context"
	"slices"

	"github.com/daycoach-ai/daycoach/internal/assemble"
	"github.com/daycoach-ai/daycoach/internal/conversation"
	"github.com/daycoach-ai/daycoach/internal/detect"
	"github.com/daycoach-ai/daycoach/internal/logging"
	"github.com/daycoach-ai/daycoach/internal/record"
	"github.com/daycoach-ai/daycoach/internal/store"
)

// HandleDataChange evaluates one mutation of a date's record and returns
// true iff a coach message was generated.
func (c *Coach) HandleDataChange(ctx context.Context, dateKey, module string, payload map[string]any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evaluate(ctx, dateKey, module)
}

// Tick opportunistically re-checks today's record without a mutation event.
// It requires proactive messaging enabled, a minimum gap since the previous
// tick-originated check, the last message not coach-authored, and the
// startup grace period elapsed.
func (c *Coach) Tick(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if c.startedAt.IsZero() || now.Sub(c.startedAt) < c.cfg.StartupGrace {
		return false, nil
	}
	if !c.lastTickCheck.IsZero() && now.Sub(c.lastTickCheck) < c.cfg.TickMinGap {
		return false, nil
	}

	doc, err := c.store.Get(ctx)
	if err != nil {
		return false, err
	}
	if !doc.Preferences.ProactiveEnabled {
		return false, nil
	}
	if n := len(doc.Coach.Messages); n > 0 && doc.Coach.Messages[n-1].Sender == conversation.SenderCoach {
		// Never send two unsolicited messages back to back.
		return false, nil
	}

	c.lastTickCheck = now
	return c.evaluate(ctx, record.DayKey(now), "tick")
}

// evaluate runs the detector and the trigger gates for one date. Callers
// must hold c.mu: the gate check and the ledger update form one atomic step.
func (c *Coach) evaluate(ctx context.Context, dateKey, module string) (bool, error) {
	now := c.clock.Now()
	today := record.DayKey(now)

	doc, err := c.store.Get(ctx)
	if err != nil {
		return false, err
	}

	current := doc.Records[dateKey]
	previous := doc.Coach.LastCheckedData[dateKey]

	// Triggers never fire for past dates; only the baseline advances.
	if dateKey < today {
		doc.Coach.LastCheckedData[dateKey] = current.Clone()
		c.persist(ctx, doc)
		return false, nil
	}

	trig := detect.Detect(current, previous, dateKey, now)

	// The baseline advances whether or not the trigger survives the
	// gates; a blocked attempt is dropped, not deferred.
	doc.Coach.LastCheckedData[dateKey] = current.Clone()

	if !trig.Fire || c.blocked(doc, dateKey, trig) {
		c.persist(ctx, doc)
		return false, nil
	}

	payload := assemble.Build(doc, now)
	reply, err := c.generateReply(ctx, payload, ChatContext{
		MessageType: string(trig.Type),
		Module:      module,
		Trigger:     trig.Context,
	})
	if err != nil {
		// Proactive failures drop the attempt: no message, no ledger
		// update, nothing user-visible.
		logging.Logger().Warn(
			"proactive generation failed; dropping trigger",
			"date", dateKey,
			"type", trig.Type,
			"err", err,
		)
		c.persist(ctx, doc)
		return false, nil
	}

	msg := conversation.Message{
		ID:          conversation.NewID(now),
		Sender:      conversation.SenderCoach,
		Content:     reply.Message,
		Timestamp:   now,
		Suggestions: reply.Suggestions,
		Context: map[string]any{
			"trigger": string(trig.Type),
			"date":    dateKey,
		},
	}
	log := conversation.NewLog(doc.Coach.Messages)
	log.Append(msg)
	doc.Coach.Messages = log.Messages()
	doc.Coach.RecentTriggers[dateKey] = append(doc.Coach.RecentTriggers[dateKey], string(trig.Type))
	doc.Coach.LastMessageTime = now

	// A fired greeting marks its window flag on the date's record so the
	// window cannot fire again that day.
	if flag, ok := trig.Context["flag"].(string); ok && flag != "" {
		rec := current.Clone()
		if rec == nil {
			rec = record.DailyRecord{}
		}
		rec[flag] = true
		doc.Records[dateKey] = rec
		doc.Coach.LastCheckedData[dateKey] = rec.Clone()
	}

	c.persist(ctx, doc)

	if c.notifier != nil {
		if err := c.notifier.Notify(ctx, reply.Message); err != nil {
			logging.Logger().Warn("proactive delivery failed", "err", err)
		}
	}

	logging.Logger().Info(
		"proactive message sent",
		"date", dateKey,
		"type", trig.Type,
		"module", module,
	)
	return true, nil
}

// blocked applies the dedup ledger and the rolling-hour global cap.
func (c *Coach) blocked(doc store.Document, dateKey string, trig detect.Trigger) bool {
	if slices.Contains(doc.Coach.RecentTriggers[dateKey], string(trig.Type)) {
		return true
	}
	last := doc.Coach.LastMessageTime
	return !last.IsZero() && c.clock.Now().Sub(last) < rateLimitWindow
}

// persist writes the document back, continuing on in-memory state when the
// store fails: a write error is surfaced in the log, never fatal.
func (c *Coach) persist(ctx context.Context, doc store.Document) {
	if err := c.store.Set(ctx, doc); err != nil {
		logging.Logger().Warn("persist failed; continuing with in-memory state", "err", err)
	}
}
