// Package channel delivers proactive coach messages to surfaces outside
// the in-app chat list.
package channel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"

	"github.com/daycoach-ai/daycoach/internal/logging"
)

// Notifier pushes one message to the user.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// Telegram sends coach messages to one fixed chat.
type Telegram struct {
	bot    *bot.Bot
	chatID int64
}

// NewTelegram connects a Telegram notifier for the given bot token and chat.
func NewTelegram(ctx context.Context, token string, chatID int64) (*Telegram, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil, errors.New("telegram token is required")
	}
	if chatID == 0 {
		return nil, errors.New("telegram chat_id is required")
	}

	b, err := bot.New(trimmed)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram bot: %w", err)
	}

	me, err := b.GetMe(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch telegram bot profile: %w", err)
	}
	logging.Logger().Info(fmt.Sprintf("Connected to Telegram Bot @%s", strings.TrimSpace(me.Username)))

	return &Telegram{bot: b, chatID: chatID}, nil
}

// Notify sends text to the configured chat.
func (t *Telegram) Notify(ctx context.Context, text string) error {
	_, err := t.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: t.chatID,
		Text:   text,
	})
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}
