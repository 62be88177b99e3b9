package wiring

import (
	"fmt"
	"os"

	"github.com/pacerhq/pacer/internal/infrastructure/messaging"
	"github.com/pacerhq/pacer/pkg/application"
	"github.com/pacerhq/pacer/pkg/domain/notification"
	"github.com/pacerhq/pacer/pkg/storage"
)

// Workspace bundles core infrastructure dependencies.
type Workspace struct {
	Repo          *storage.FilesystemRepository
	Audit         *application.AuditService
	Notifications notification.Repository
}

// NewWorkspace wires the filesystem repository and, when the workspace is
// initialized, the notification store. A broken notification database
// degrades to no notifications instead of failing every command.
// Delivery adapters from messaging.yaml are layered on top of the store.
func NewWorkspace(root string) *Workspace {
	repo := storage.NewFilesystemRepository(root)

	var notifications notification.Repository
	if repo.IsInitialized() {
		sqlRepo, err := storage.OpenNotificationRepository(root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: notifications unavailable: %v\n", err)
		} else {
			notifications = sqlRepo

			msgCfg, cfgErr := repo.LoadMessagingConfig()
			if cfgErr != nil {
				fmt.Fprintf(os.Stderr, "warning: messaging config ignored: %v\n", cfgErr)
			} else if len(msgCfg.Adapters) > 0 {
				registry, regErr := messaging.NewRegistry(msgCfg)
				if regErr != nil {
					fmt.Fprintf(os.Stderr, "warning: messaging adapters disabled: %v\n", regErr)
				} else if len(registry.Adapters()) > 0 {
					notifications = messaging.NewDispatcher(sqlRepo, registry)
				}
			}
		}
	}

	return &Workspace{
		Repo:          repo,
		Audit:         application.NewAuditService(repo),
		Notifications: notifications,
	}
}
