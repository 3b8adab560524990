// Package conversation maintains the bounded, ordered coach message log.
package conversation

import (
	"fmt"
	"time"
)

// MaxMessages bounds the log; the oldest messages are evicted first.
const MaxMessages = 100

// Sender identifies the author of a message.
type Sender string

const (
	SenderUser  Sender = "user"
	SenderCoach Sender = "coach"
)

// Message is one exchanged chat message.
type Message struct {
	ID          string         `json:"id"`
	Sender      Sender         `json:"sender"`
	Content     string         `json:"content"`
	Timestamp   time.Time      `json:"timestamp"`
	Suggestions []string       `json:"suggestions,omitempty"`
	IsRead      bool           `json:"isRead"`
	Context     map[string]any `json:"context,omitempty"`
}

// NewID returns a message ID derived from the append instant.
func NewID(now time.Time) string {
	return fmt.Sprintf("msg_%d", now.UnixNano())
}

// Log is an append-only message sequence capped at MaxMessages.
type Log struct {
	messages []Message
}

// NewLog creates a log seeded with a copy of messages, trimming from the
// front if the seed already exceeds the cap.
func NewLog(messages []Message) *Log {
	l := &Log{messages: append([]Message{}, messages...)}
	l.trim()
	return l
}

// Append adds msg to the end, evicting the oldest entries past the cap.
func (l *Log) Append(msg Message) {
	l.messages = append(l.messages, msg)
	l.trim()
}

func (l *Log) trim() {
	if extra := len(l.messages) - MaxMessages; extra > 0 {
		l.messages = append([]Message{}, l.messages[extra:]...)
	}
}

// Messages returns a copy of the log in append order.
func (l *Log) Messages() []Message {
	return append([]Message{}, l.messages...)
}

// Len returns the number of messages in the log.
func (l *Log) Len() int {
	return len(l.messages)
}

// Last returns the most recently appended message.
func (l *Log) Last() (Message, bool) {
	if len(l.messages) == 0 {
		return Message{}, false
	}
	return l.messages[len(l.messages)-1], true
}

// UnreadCount returns the number of unread coach messages.
func (l *Log) UnreadCount() int {
	count := 0
	for _, msg := range l.messages {
		if msg.Sender == SenderCoach && !msg.IsRead {
			count++
		}
	}
	return count
}

// MarkAllRead marks every coach-authored message read. User messages carry
// no unread concept and are left untouched.
func (l *Log) MarkAllRead() {
	for i := range l.messages {
		if l.messages[i].Sender == SenderCoach {
			l.messages[i].IsRead = true
		}
	}
}

// Clear discards all messages and reseeds the log with one greeting,
// marked read so it does not count as pending.
func (l *Log) Clear(greeting Message) {
	greeting.IsRead = true
	l.messages = []Message{greeting}
}
