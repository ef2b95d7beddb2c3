// Package llm defines the text-generation capability consumed by the
// orchestrator and its production implementation backed by the Anthropic
// Messages API.
package llm

import (
	"context"

	"github.com/zenapp/council/core"
)

// Options control a single generation call.
type Options struct {
	Model       string
	MaxTokens   int64
	Temperature float64
}

// Generator produces an assistant reply for a system prompt and a bounded
// window of conversation messages. Failures wrap core.ErrGeneration.
type Generator interface {
	Generate(ctx context.Context, system string, history []core.Message, opts Options) (string, error)
}
