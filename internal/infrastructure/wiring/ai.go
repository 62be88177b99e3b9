package wiring

import (
	"time"

	"github.com/joho/godotenv"

	"github.com/pacerhq/pacer/internal/infrastructure/config"
	infraai "github.com/pacerhq/pacer/pkg/ai"
	domainai "github.com/pacerhq/pacer/pkg/domain/ai"
)

// LoadAIProvider resolves the configured provider for a workspace root.
// A .env file at the root supplies API keys without polluting the shell.
func LoadAIProvider(root string) (domainai.Provider, error) {
	_ = godotenv.Load(root + "/.env")

	cfg, err := config.LoadAIConfig(root)
	if err != nil {
		return nil, err
	}

	providerName := "ollama"
	modelName := "llama3"
	callTimeout := infraai.DefaultTimeout

	if cfg != nil {
		if cfg.Provider != "" {
			providerName = cfg.Provider
		}
		if cfg.Model != "" {
			modelName = cfg.Model
		}
		if cfg.TimeoutMs > 0 {
			callTimeout = time.Duration(cfg.TimeoutMs) * time.Millisecond
		}
	}

	baseProvider, err := infraai.GetDefaultProvider(providerName, modelName)
	if err != nil {
		return nil, err
	}

	return infraai.NewResilientProviderWithTimeout(baseProvider, callTimeout), nil
}
