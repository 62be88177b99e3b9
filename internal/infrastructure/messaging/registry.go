package messaging

import (
	"fmt"

	"github.com/pacerhq/pacer/pkg/domain/messaging"
)

// Registry creates delivery adapters from configuration.
type Registry struct {
	adapters []messaging.MessageAdapter
	configs  []messaging.AdapterConfig
}

// NewRegistry creates adapters from a MessagingConfig.
func NewRegistry(config *messaging.MessagingConfig) (*Registry, error) {
	if config == nil {
		return &Registry{}, nil
	}

	var adapters []messaging.MessageAdapter
	var configs []messaging.AdapterConfig
	for _, cfg := range config.Adapters {
		if !cfg.Enabled {
			continue
		}

		adapter, err := createAdapter(cfg)
		if err != nil {
			return nil, fmt.Errorf("create adapter %q: %w", cfg.Name, err)
		}
		adapters = append(adapters, adapter)
		configs = append(configs, cfg)
	}

	return &Registry{adapters: adapters, configs: configs}, nil
}

// Adapters returns all active adapters.
func (r *Registry) Adapters() []messaging.MessageAdapter {
	return r.adapters
}

// Configs returns the config for each active adapter, index-aligned with
// Adapters.
func (r *Registry) Configs() []messaging.AdapterConfig {
	return r.configs
}

func createAdapter(cfg messaging.AdapterConfig) (messaging.MessageAdapter, error) {
	switch cfg.Type {
	case "webhook":
		return NewWebhookAdapter(cfg), nil
	case "slack":
		return NewSlackAdapter(cfg), nil
	default:
		return nil, fmt.Errorf("unknown adapter type: %s", cfg.Type)
	}
}
