package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/pacerhq/pacer/pkg/domain/ai"
)

// OllamaProvider talks to a local Ollama daemon. Useful for development
// without an API key; the gateway contract is identical.
type OllamaProvider struct {
	Model   string
	baseURL string // for testing - defaults to the local daemon
}

const ollamaDefaultURL = "http://localhost:11434/api/generate"

func NewOllamaProvider(model string) *OllamaProvider {
	if model == "" {
		model = "llama3"
	}
	return &OllamaProvider{Model: model, baseURL: ollamaDefaultURL}
}

// NewOllamaProviderWithURL creates a provider pointing at a custom daemon URL (for testing).
func NewOllamaProviderWithURL(model, baseURL string) *OllamaProvider {
	p := NewOllamaProvider(model)
	if baseURL != "" {
		p.baseURL = baseURL
	}
	return p
}

func (p *OllamaProvider) ID() string {
	return "ollama:" + p.Model
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system"`
	Stream bool   `json:"stream"`
	Format string `json:"format,omitempty"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

var safeModelName = regexp.MustCompile(`^[a-zA-Z0-9:._-]+$`)

func (p *OllamaProvider) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if !safeModelName.MatchString(p.Model) {
		return nil, ai.NewError(ai.CodeAPIError, fmt.Sprintf("invalid model name: %s", p.Model))
	}

	// Every pacer prompt requests a JSON object, so ask the daemon for
	// constrained output.
	format := ""
	if strings.Contains(req.Prompt, "JSON") || strings.Contains(req.System, "JSON") {
		format = "json"
	}

	body, err := json.Marshal(ollamaRequest{
		Model:  p.Model,
		Prompt: req.Prompt,
		System: req.System,
		Stream: false,
		Format: format,
	})
	if err != nil {
		return nil, err
	}

	hReq, err := http.NewRequestWithContext(ctx, "POST", p.baseURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	hReq.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(hReq)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close on read body

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, "Ollama")
	}

	var oResp ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&oResp); err != nil {
		return nil, ai.NewError(ai.CodeInvalidResponse, fmt.Sprintf("Ollama returned unparseable body: %v", err))
	}

	text := strings.TrimSpace(oResp.Response)
	if text == "" {
		return nil, ai.NewError(ai.CodeInvalidResponse, "Ollama returned an empty completion")
	}

	return &ai.CompletionResponse{
		Text:  text,
		Model: p.Model,
		Usage: ai.TokenUsage{
			InputTokens:  len(req.Prompt) / 4,
			OutputTokens: len(oResp.Response) / 4,
		},
	}, nil
}
