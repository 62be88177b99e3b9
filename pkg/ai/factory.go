package ai

import (
	"fmt"
	"os"

	"github.com/pacerhq/pacer/pkg/domain/ai"
)

// NewProvider builds a raw provider by name. API keys are read from the
// environment; the gateway treats them as opaque configuration.
func NewProvider(providerName string, modelName string) (ai.Provider, error) {
	switch providerName {
	case "ollama", "":
		return NewOllamaProvider(modelName), nil
	case "mock":
		return &MockProvider{Model: modelName}, nil
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		return NewOpenAIProvider(modelName, apiKey), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", providerName)
	}
}

// GetDefaultProvider returns a provider based on environment variables or
// config defaults. PACER_AI_PROVIDER and PACER_AI_MODEL win over ai.yaml.
func GetDefaultProvider(providerName, modelName string) (ai.Provider, error) {
	if envProvider := os.Getenv("PACER_AI_PROVIDER"); envProvider != "" {
		providerName = envProvider
	}
	if envModel := os.Getenv("PACER_AI_MODEL"); envModel != "" {
		modelName = envModel
	}
	return NewProvider(providerName, modelName)
}
