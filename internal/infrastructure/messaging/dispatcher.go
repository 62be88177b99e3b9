package messaging

import (
	"context"
	"fmt"
	"os"

	"github.com/pacerhq/pacer/pkg/domain/notification"
)

// Dispatcher decorates a notification repository with external delivery.
// Persistence is the source of truth; a failed delivery is warned about and
// never fails the Create.
type Dispatcher struct {
	inner    notification.Repository
	registry *Registry
}

// NewDispatcher wraps the repository with the registry's adapters.
func NewDispatcher(inner notification.Repository, registry *Registry) *Dispatcher {
	return &Dispatcher{inner: inner, registry: registry}
}

func (d *Dispatcher) Create(ctx context.Context, n notification.Notification) error {
	if err := d.inner.Create(ctx, n); err != nil {
		return err
	}

	configs := d.registry.Configs()
	for i, adapter := range d.registry.Adapters() {
		if !configs[i].Accepts(n.Kind) {
			continue
		}
		if err := adapter.Send(ctx, n); err != nil {
			fmt.Fprintf(os.Stderr, "warning: delivery via %s failed: %v\n", adapter.Name(), err)
		}
	}
	return nil
}

func (d *Dispatcher) FindForGoal(ctx context.Context, goalID string) ([]notification.Notification, error) {
	return d.inner.FindForGoal(ctx, goalID)
}

func (d *Dispatcher) MarkAsRead(ctx context.Context, id string) error {
	return d.inner.MarkAsRead(ctx, id)
}
