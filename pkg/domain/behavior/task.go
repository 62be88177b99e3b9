package behavior

import "time"

// TaskState is the completion state of a single task at snapshot time.
type TaskState string

const (
	TaskPending   TaskState = "pending"
	TaskCompleted TaskState = "completed"
	TaskSkipped   TaskState = "skipped"
	TaskOverdue   TaskState = "overdue"
)

// AllTaskStates returns every valid task state.
func AllTaskStates() []TaskState {
	return []TaskState{TaskPending, TaskCompleted, TaskSkipped, TaskOverdue}
}

// IsValid returns true if the state is a known task state.
func (s TaskState) IsValid() bool {
	switch s {
	case TaskPending, TaskCompleted, TaskSkipped, TaskOverdue:
		return true
	default:
		return false
	}
}

// IsFailure reports whether the state counts against the user
// (skipped and overdue tasks are failures, pending is neither).
func (s TaskState) IsFailure() bool {
	return s == TaskSkipped || s == TaskOverdue
}

// String returns the string representation of the state.
func (s TaskState) String() string {
	return string(s)
}

// TaskSnapshot is an immutable view of one task, passed by value into an
// evaluation. The task store owns the underlying record.
type TaskSnapshot struct {
	ID          string     `json:"id"`
	Status      TaskState  `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// EvaluationInput carries everything an evaluation needs. It is constructed
// fresh per call; the engine never consults a clock or a store beyond it.
type EvaluationInput struct {
	Tasks              []TaskSnapshot
	LastActivityDate   *time.Time
	EvaluationDate     time.Time
	AnalysisWindowDays int
}
