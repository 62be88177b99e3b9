package ai

import (
	"context"
)

// CompletionRequest represents a prompt to the AI: a system instruction block
// plus one user content block. No streaming, no multi-turn state.
type CompletionRequest struct {
	Prompt      string
	System      string
	Temperature float32
	MaxTokens   int
}

// CompletionResponse represents the AI's answer.
type CompletionResponse struct {
	Text  string
	Usage TokenUsage
	Model string
}

// TokenUsage tracks costs.
type TokenUsage struct {
	InputTokens  int
	OutputTokens int
}

// Provider is the interface for all AI backends. Implementations issue
// exactly one request per call and honor context cancellation; retrying is
// always the caller's decision, signaled through the typed Error's Retryable
// flag.
type Provider interface {
	ID() string
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}
