package ai

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/fortify/timeout"

	"github.com/pacerhq/pacer/pkg/domain/ai"
)

// DefaultTimeout bounds a single completion call.
const DefaultTimeout = 30 * time.Second

// ResilientProvider bounds the inner provider with a hard timeout. It never
// retries: the gateway contract is one request per call, with retryability
// signaled to the caller through the typed error.
type ResilientProvider struct {
	inner   ai.Provider
	timeout time.Duration
}

func NewResilientProvider(inner ai.Provider) *ResilientProvider {
	return NewResilientProviderWithTimeout(inner, DefaultTimeout)
}

// NewResilientProviderWithTimeout allows the configured timeout (from
// ai.yaml) to override the default.
func NewResilientProviderWithTimeout(inner ai.Provider, d time.Duration) *ResilientProvider {
	if d <= 0 {
		d = DefaultTimeout
	}
	return &ResilientProvider{inner: inner, timeout: d}
}

func (p *ResilientProvider) ID() string {
	return p.inner.ID()
}

func (p *ResilientProvider) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	t := timeout.New[*ai.CompletionResponse](timeout.Config{
		DefaultTimeout: p.timeout,
	})

	resp, err := t.Execute(ctx, p.timeout, func(ctx context.Context) (*ai.CompletionResponse, error) {
		return p.inner.Complete(ctx, req)
	})
	if err != nil {
		if _, ok := ai.AsError(err); ok {
			return nil, err
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ai.NewError(ai.CodeTimeout, "completion call timed out")
		}
		return nil, err
	}
	return resp, nil
}
