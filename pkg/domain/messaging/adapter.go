// Package messaging defines the pluggable delivery adapter interface for
// notifications.
package messaging

import (
	"context"

	"github.com/pacerhq/pacer/pkg/domain/notification"
)

// MessageAdapter delivers a notification to an external channel.
type MessageAdapter interface {
	Send(ctx context.Context, n notification.Notification) error
	Name() string
	Type() string
}

// AdapterConfig defines configuration for a delivery adapter.
type AdapterConfig struct {
	Name        string            `yaml:"name" json:"name"`
	Type        string            `yaml:"type" json:"type"` // "webhook", "slack"
	URL         string            `yaml:"url" json:"url"`
	KindFilters []string          `yaml:"kind_filters,omitempty" json:"kind_filters,omitempty"`
	Enabled     bool              `yaml:"enabled" json:"enabled"`
	Options     map[string]string `yaml:"options,omitempty" json:"options,omitempty"`
}

// Accepts reports whether the adapter wants notifications of the given kind.
// An empty filter list accepts everything.
func (c AdapterConfig) Accepts(kind notification.Kind) bool {
	if len(c.KindFilters) == 0 {
		return true
	}
	for _, f := range c.KindFilters {
		if f == string(kind) {
			return true
		}
	}
	return false
}

// MessagingConfig holds all configured delivery adapters.
type MessagingConfig struct {
	Adapters []AdapterConfig `yaml:"adapters" json:"adapters"`
}
