package llm

import (
	"fmt"

	"github.com/daycoach-ai/daycoach/internal/config"
)

// New constructs a Generator from one LLM config profile.
func New(cfg config.LLMConfig) (Generator, error) {
	switch cfg.Provider {
	case "anthropic":
		return newAnthropicGenerator(cfg)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}
