package ai

import (
	"context"

	"github.com/pacerhq/pacer/pkg/domain/ai"
)

// MockProvider returns a canned response. Used by the "mock" provider name
// for demos and tests that exercise the pipeline without a network.
type MockProvider struct {
	Model    string
	Response string
	Err      error
}

func (p *MockProvider) ID() string {
	return "mock:" + p.Model
}

func (p *MockProvider) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Err != nil {
		return nil, p.Err
	}
	return &ai.CompletionResponse{
		Text:  p.Response,
		Model: p.Model,
		Usage: ai.TokenUsage{
			InputTokens:  len(req.Prompt) / 4,
			OutputTokens: len(p.Response) / 4,
		},
	}, nil
}
