package plan

import (
	"time"

	"github.com/pacerhq/pacer/pkg/domain/behavior"
)

// TrackedTask is a task as the workspace stores it: the accepted plan task
// plus its live completion state. The engine never sees this type directly;
// services derive value snapshots from it.
type TrackedTask struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Difficulty  Difficulty         `json:"difficulty"`
	Status      behavior.TaskState `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`
}

// Snapshot strips the task down to what the behavioral engine needs.
func (t TrackedTask) Snapshot() behavior.TaskSnapshot {
	return behavior.TaskSnapshot{
		ID:          t.ID,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
}

// Summary strips the task down to what the adaptation prompt shares with
// the model.
func (t TrackedTask) Summary() TaskSummary {
	return TaskSummary{
		ID:         t.ID,
		Title:      t.Title,
		Difficulty: t.Difficulty,
		Status:     t.Status,
	}
}

// Snapshots converts a tracked task list into engine input.
func Snapshots(tasks []TrackedTask) []behavior.TaskSnapshot {
	out := make([]behavior.TaskSnapshot, len(tasks))
	for i, t := range tasks {
		out[i] = t.Snapshot()
	}
	return out
}

// Summaries converts a tracked task list into a prompt snapshot.
func Summaries(tasks []TrackedTask) []TaskSummary {
	out := make([]TaskSummary, len(tasks))
	for i, t := range tasks {
		out[i] = t.Summary()
	}
	return out
}
