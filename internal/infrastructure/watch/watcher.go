package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pacerhq/pacer/pkg/storage"
)

// behaviorFiles are the workspace files whose changes can alter an
// evaluation outcome. Plan and policy edits matter too; event log and usage
// writes do not, and reacting to them would loop (every evaluation writes
// both).
var behaviorFiles = map[string]bool{
	storage.TasksFile:    true,
	storage.ActivityFile: true,
	storage.PlanFile:     true,
	storage.PolicyFile:   true,
}

// WorkspaceWatcher watches the .pacer directory and invokes a callback when
// behavior-relevant state changes settle.
type WorkspaceWatcher struct {
	root     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func(changedFile string)
}

// NewWorkspaceWatcher creates a watcher for the workspace at root.
func NewWorkspaceWatcher(root string, debounce time.Duration, onChange func(changedFile string)) (*WorkspaceWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if debounce == 0 {
		debounce = 500 * time.Millisecond
	}
	return &WorkspaceWatcher{
		root:     root,
		watcher:  w,
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// Run watches the .pacer directory and blocks until the context is cancelled.
func (w *WorkspaceWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.watcher.Add(filepath.Join(w.root, storage.PacerDir)); err != nil {
		return fmt.Errorf("watch workspace: %w", err)
	}

	var lastChanged string
	debouncer := NewDebouncer(w.debounce, func() {
		if w.onChange != nil {
			w.onChange(lastChanged)
		}
	})
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			name := filepath.Base(event.Name)
			if !behaviorFiles[name] {
				continue
			}
			lastChanged = name
			debouncer.Trigger()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}
