package coach

import (
	"context"

	"github.com/daycoach-ai/daycoach/internal/conversation"
)

const greetingText = "Hi! I'm your day coach. Ask me anything about your days, or I'll check in when something noteworthy happens."

// Messages returns the conversation log in append order.
func (c *Coach) Messages(ctx context.Context) ([]conversation.Message, error) {
	doc, err := c.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	return conversation.NewLog(doc.Coach.Messages).Messages(), nil
}

// UnreadCount returns the number of unread coach messages.
func (c *Coach) UnreadCount(ctx context.Context) (int, error) {
	doc, err := c.store.Get(ctx)
	if err != nil {
		return 0, err
	}
	return conversation.NewLog(doc.Coach.Messages).UnreadCount(), nil
}

// MarkAllRead marks every coach-authored message read.
func (c *Coach) MarkAllRead(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc, err := c.store.Get(ctx)
	if err != nil {
		return err
	}
	log := conversation.NewLog(doc.Coach.Messages)
	log.MarkAllRead()
	doc.Coach.Messages = log.Messages()
	c.persist(ctx, doc)
	return nil
}

// ClearConversation discards all messages and reseeds one greeting.
// Preferences, baseline snapshots, and the trigger ledger survive.
func (c *Coach) ClearConversation(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc, err := c.store.Get(ctx)
	if err != nil {
		return err
	}
	now := c.clock.Now()
	log := conversation.NewLog(doc.Coach.Messages)
	log.Clear(conversation.Message{
		ID:        conversation.NewID(now),
		Sender:    conversation.SenderCoach,
		Content:   greetingText,
		Timestamp: now,
	})
	doc.Coach.Messages = log.Messages()
	c.persist(ctx, doc)
	return nil
}
