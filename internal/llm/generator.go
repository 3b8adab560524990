// Package llm sends text-generation requests to an LLM backend.
package llm

import "context"

// Generator produces one completion for one prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
