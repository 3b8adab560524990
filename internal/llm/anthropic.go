package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/daycoach-ai/daycoach/internal/config"
)

type anthropicGenerator struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int
	timeout   time.Duration
}

func newAnthropicGenerator(cfg config.LLMConfig) (Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("anthropic model is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))
	return &anthropicGenerator{
		client:    client,
		model:     anthropic.Model(cfg.Model),
		maxTokens: normalizeMaxTokens(cfg.MaxTokens),
		timeout:   cfg.RequestTimeout,
	}, nil
}

// Generate sends one user prompt and returns the concatenated text blocks.
func (g *anthropicGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	msg, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     g.model,
		MaxTokens: int64(g.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}

	var parts []string
	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok && text.Text != "" {
			parts = append(parts, text.Text)
		}
	}
	return strings.Join(parts, "\n"), nil
}

func normalizeMaxTokens(maxTokens int) int {
	if maxTokens <= 0 {
		return 1024
	}
	return maxTokens
}
