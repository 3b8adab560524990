package conversation

import (
	"fmt"
	"testing"
	"time"
)

func coachMsg(i int) Message {
	return Message{
		ID:        fmt.Sprintf("msg_%03d", i),
		Sender:    SenderCoach,
		Content:   fmt.Sprintf("message %d", i),
		Timestamp: time.Date(2026, 8, 1, 0, 0, i, 0, time.UTC),
	}
}

func TestAppend_EvictsOldestPastCap(t *testing.T) {
	t.Parallel()

	log := NewLog(nil)
	for i := 0; i < MaxMessages+1; i++ {
		log.Append(coachMsg(i))
	}

	if log.Len() != MaxMessages {
		t.Fatalf("expected %d messages, got %d", MaxMessages, log.Len())
	}
	msgs := log.Messages()
	if msgs[0].ID != "msg_001" {
		t.Fatalf("expected oldest message evicted, first is %q", msgs[0].ID)
	}
	last, ok := log.Last()
	if !ok || last.ID != fmt.Sprintf("msg_%03d", MaxMessages) {
		t.Fatalf("expected newest message retained, got %q", last.ID)
	}
	for i := 1; i < len(msgs); i++ {
		if msgs[i-1].Timestamp.After(msgs[i].Timestamp) {
			t.Fatalf("messages out of order at %d", i)
		}
	}
}

func TestNewLog_TrimsOversizedSeed(t *testing.T) {
	t.Parallel()

	seed := make([]Message, MaxMessages+25)
	for i := range seed {
		seed[i] = coachMsg(i)
	}
	log := NewLog(seed)
	if log.Len() != MaxMessages {
		t.Fatalf("expected seed trimmed to %d, got %d", MaxMessages, log.Len())
	}
	if first := log.Messages()[0]; first.ID != "msg_025" {
		t.Fatalf("expected trim from the front, first is %q", first.ID)
	}
}

func TestUnreadCount_OnlyCoachMessages(t *testing.T) {
	t.Parallel()

	log := NewLog([]Message{
		{ID: "1", Sender: SenderUser, Content: "hi"},
		{ID: "2", Sender: SenderCoach, Content: "hello"},
		{ID: "3", Sender: SenderCoach, Content: "still there?", IsRead: true},
		{ID: "4", Sender: SenderCoach, Content: "ping"},
	})

	if got := log.UnreadCount(); got != 2 {
		t.Fatalf("expected 2 unread, got %d", got)
	}

	log.MarkAllRead()
	if got := log.UnreadCount(); got != 0 {
		t.Fatalf("expected 0 unread after mark, got %d", got)
	}
	for _, msg := range log.Messages() {
		if msg.Sender == SenderUser && msg.IsRead {
			t.Fatalf("user message %q must not be marked read", msg.ID)
		}
	}
}

func TestClear_ReseedsSingleReadGreeting(t *testing.T) {
	t.Parallel()

	log := NewLog([]Message{coachMsg(1), coachMsg(2)})
	log.Clear(Message{ID: "greet", Sender: SenderCoach, Content: "hi again"})

	if log.Len() != 1 {
		t.Fatalf("expected single message after clear, got %d", log.Len())
	}
	greeting, _ := log.Last()
	if greeting.ID != "greet" || !greeting.IsRead {
		t.Fatalf("expected read greeting, got %+v", greeting)
	}
}

func TestMessages_ReturnsCopy(t *testing.T) {
	t.Parallel()

	log := NewLog([]Message{coachMsg(1)})
	msgs := log.Messages()
	msgs[0].Content = "mutated"
	if got, _ := log.Last(); got.Content == "mutated" {
		t.Fatalf("Messages must return a copy")
	}
}
