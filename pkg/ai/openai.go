package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/pacerhq/pacer/pkg/domain/ai"
)

type OpenAIProvider struct {
	Model      string
	APIKey     string
	baseURL    string       // for testing - defaults to the OpenAI API
	httpClient *http.Client // for testing - defaults to http.DefaultClient
}

const openAIDefaultURL = "https://api.openai.com/v1/chat/completions"

func NewOpenAIProvider(model string, apiKey string) *OpenAIProvider {
	if model == "" {
		model = "gpt-4o"
	}
	return &OpenAIProvider{
		Model:   model,
		APIKey:  apiKey,
		baseURL: openAIDefaultURL,
	}
}

// NewOpenAIProviderWithClient creates a provider with custom HTTP client and base URL (for testing).
func NewOpenAIProviderWithClient(model, apiKey, baseURL string, client *http.Client) *OpenAIProvider {
	if model == "" {
		model = "gpt-4o"
	}
	if baseURL == "" {
		baseURL = openAIDefaultURL
	}
	return &OpenAIProvider{
		Model:      model,
		APIKey:     apiKey,
		baseURL:    baseURL,
		httpClient: client,
	}
}

func (p *OpenAIProvider) ID() string {
	return "openai:" + p.Model
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float32         `json:"temperature,omitempty"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

func (p *OpenAIProvider) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if p.APIKey == "" {
		return nil, ai.NewError(ai.CodeAPIError, "OpenAI API key not provided (set OPENAI_API_KEY)")
	}

	messages := []openAIMessage{}
	if req.System != "" {
		messages = append(messages, openAIMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, openAIMessage{Role: "user", Content: req.Prompt})

	body, err := json.Marshal(openAIRequest{
		Model:       p.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", p.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.APIKey)

	client := p.httpClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close on read body

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, "OpenAI")
	}

	var openAIResp openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return nil, ai.NewError(ai.CodeInvalidResponse, fmt.Sprintf("OpenAI returned unparseable body: %v", err))
	}

	if len(openAIResp.Choices) == 0 || openAIResp.Choices[0].Message.Content == "" {
		return nil, ai.NewError(ai.CodeInvalidResponse, "OpenAI returned an empty completion")
	}

	return &ai.CompletionResponse{
		Text:  openAIResp.Choices[0].Message.Content,
		Model: p.Model,
		Usage: ai.TokenUsage{
			InputTokens:  openAIResp.Usage.PromptTokens,
			OutputTokens: openAIResp.Usage.CompletionTokens,
		},
	}, nil
}

// transportError classifies a client.Do failure. Context expiry means the
// bounded call timed out; anything else is a service failure.
func transportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return ai.NewError(ai.CodeTimeout, "completion call timed out")
	}
	return ai.NewError(ai.CodeAPIError, fmt.Sprintf("completion transport failed: %v", err)).WithRetryable(true)
}

// statusError maps a non-2xx status per the gateway contract: 429 is rate
// limiting, 5xx is a retryable service failure, other 4xx are permanent.
func statusError(status int, service string) error {
	switch {
	case status == http.StatusTooManyRequests:
		return ai.NewError(ai.CodeRateLimited, fmt.Sprintf("%s rate limit exceeded", service))
	case status >= 500:
		return ai.NewError(ai.CodeAPIError, fmt.Sprintf("%s returned status %d", service, status)).WithRetryable(true)
	default:
		return ai.NewError(ai.CodeAPIError, fmt.Sprintf("%s returned status %d", service, status))
	}
}
