package coach

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/daycoach-ai/daycoach/internal/assemble"
	"github.com/daycoach-ai/daycoach/internal/conversation"
	"github.com/daycoach-ai/daycoach/internal/logging"
	"github.com/daycoach-ai/daycoach/internal/summary"
)

// fallbackReply substitutes for the generator on reactive asks that fail.
const fallbackReply = "Sorry, I'm having trouble responding right now. Let's try again in a little while."

// ChatContext describes one generation request. Reactive and proactive
// requests differ only by MessageType.
type ChatContext struct {
	MessageType string
	Question    string
	Module      string
	Trigger     map[string]any
}

// Reply is one generated coach response.
type Reply struct {
	Message     string
	Suggestions []string
}

// FetchResponse assembles the bounded context payload and generates one
// reply. Used for both reactive asks and trigger-originated messages.
func (c *Coach) FetchResponse(ctx context.Context, chat ChatContext) (Reply, error) {
	doc, err := c.store.Get(ctx)
	if err != nil {
		return Reply{}, err
	}
	return c.generateReply(ctx, assemble.Build(doc, c.clock.Now()), chat)
}

// AskDirect logs the user's question, generates a reply, and logs it. A
// generation failure yields the fixed apologetic fallback instead of an
// error: the user asked, so something must come back.
func (c *Coach) AskDirect(ctx context.Context, question, module string) (Reply, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	doc, err := c.store.Get(ctx)
	if err != nil {
		return Reply{}, err
	}

	userID := conversation.NewID(now)
	log := conversation.NewLog(doc.Coach.Messages)
	log.Append(conversation.Message{
		ID:        userID,
		Sender:    conversation.SenderUser,
		Content:   question,
		Timestamp: now,
		IsRead:    true,
		Context:   map[string]any{"module": module},
	})

	reply, err := c.generateReply(ctx, assemble.Build(doc, now), ChatContext{
		MessageType: "userQuestion",
		Question:    question,
		Module:      module,
	})
	if err != nil {
		logging.Logger().Warn("reactive generation failed; using fallback", "err", err)
		reply = Reply{Message: fallbackReply}
	}

	// A coarse clock can stamp both messages on the same nanosecond; the
	// reply ID must still be unique within the log.
	replyID := conversation.NewID(c.clock.Now())
	if replyID == userID {
		replyID += "_r"
	}
	log.Append(conversation.Message{
		ID:          replyID,
		Sender:      conversation.SenderCoach,
		Content:     reply.Message,
		Timestamp:   c.clock.Now(),
		Suggestions: reply.Suggestions,
		Context:     map[string]any{"module": module},
	})
	doc.Coach.Messages = log.Messages()
	c.persist(ctx, doc)
	return reply, nil
}

func (c *Coach) generateReply(ctx context.Context, payload assemble.Payload, chat ChatContext) (Reply, error) {
	text, err := c.gen.Generate(ctx, buildPrompt(payload, chat))
	if err != nil {
		return Reply{}, fmt.Errorf("generate reply: %w", err)
	}
	return decodeReply(text), nil
}

// decodeReply extracts {message, suggestions} from the generator output,
// falling back to the raw text when no usable JSON is embedded.
func decodeReply(text string) Reply {
	if raw, ok := summary.ExtractJSON(text); ok && gjson.Valid(raw) {
		doc := gjson.Parse(raw)
		if msg := strings.TrimSpace(doc.Get("message").String()); msg != "" {
			reply := Reply{Message: msg}
			for _, item := range doc.Get("suggestions").Array() {
				if s := strings.TrimSpace(item.String()); s != "" {
					reply.Suggestions = append(reply.Suggestions, s)
				}
			}
			return reply
		}
	}
	return Reply{Message: strings.TrimSpace(text)}
}
