package adaptation

import (
	"time"

	"github.com/pacerhq/pacer/pkg/domain/plan"
)

// Type names one of the bounded adaptation kinds. Nothing outside this enum
// ever reaches a user.
type Type string

const (
	TypeDifficultyChange Type = "difficulty_change"
	TypeReschedule       Type = "reschedule"
	TypeBufferAdd        Type = "buffer_add"
)

// AllTypes returns every allowed adaptation type.
func AllTypes() []Type {
	return []Type{TypeDifficultyChange, TypeReschedule, TypeBufferAdd}
}

// IsValid returns true if the type is a known adaptation type.
func (t Type) IsValid() bool {
	switch t {
	case TypeDifficultyChange, TypeReschedule, TypeBufferAdd:
		return true
	default:
		return false
	}
}

// String returns the string representation of the type.
func (t Type) String() string {
	return string(t)
}

// Bounds for the reschedule and buffer variants.
const (
	MaxShiftDays  = 30
	MaxBufferDays = 14
)

// DifficultyChange shifts the difficulty of the affected tasks by exactly
// one level on the easy < medium < hard < extreme ordering.
type DifficultyChange struct {
	FromDifficulty  plan.Difficulty `json:"from_difficulty"`
	ToDifficulty    plan.Difficulty `json:"to_difficulty"`
	AffectedTaskIDs []string        `json:"affected_task_ids"`
}

// Reschedule pushes the affected tasks out by a bounded number of days.
type Reschedule struct {
	AffectedTaskIDs []string `json:"affected_task_ids"`
	ShiftDays       int      `json:"shift_days"`
}

// BufferAdd inserts rest days after a task in the plan.
type BufferAdd struct {
	AfterTaskID string `json:"after_task_id"`
	BufferDays  int    `json:"buffer_days"`
}

// Changes is the tagged union of suggested changes. Exactly the variant
// matching Type must be set; the output validator switches exhaustively on
// the tag, so adding a type is a single compile-checked change.
type Changes struct {
	Type             Type              `json:"type"`
	DifficultyChange *DifficultyChange `json:"difficulty_change,omitempty"`
	Reschedule       *Reschedule       `json:"reschedule,omitempty"`
	BufferAdd        *BufferAdd        `json:"buffer_add,omitempty"`
}

// Variant returns the populated variant's type, or "" when zero or more than
// one variant is set.
func (c Changes) Variant() Type {
	var found Type
	count := 0
	if c.DifficultyChange != nil {
		found = TypeDifficultyChange
		count++
	}
	if c.Reschedule != nil {
		found = TypeReschedule
		count++
	}
	if c.BufferAdd != nil {
		found = TypeBufferAdd
		count++
	}
	if count != 1 {
		return ""
	}
	return found
}

// Proposal is a bounded, reversible plan adjustment produced by the model.
// It is read-only once validated; applying it is the caller's job, gated on
// explicit user acceptance.
type Proposal struct {
	Type             Type                   `json:"type"`
	Reason           string                 `json:"reason"`
	Explanation      string                 `json:"explanation"`
	SuggestedChanges Changes                `json:"suggested_changes"`
	PreviousState    map[string]interface{} `json:"previous_state,omitempty"`
	NewState         map[string]interface{} `json:"new_state,omitempty"`
}

// Record tracks a proposal through its lifecycle in the workspace.
type Record struct {
	ID        string     `json:"id"`
	GoalID    string     `json:"goal_id"`
	Proposal  Proposal   `json:"proposal"`
	Status    Status     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
	AppliedAt *time.Time `json:"applied_at,omitempty"`
}

// InCooldown reports whether a rejected proposal of the same type for the
// same goal is recent enough that re-offering it would nag the user.
func InCooldown(records []Record, goalID string, t Type, now time.Time, cooldownDays int) bool {
	if cooldownDays <= 0 {
		return false
	}
	cutoff := now.AddDate(0, 0, -cooldownDays)
	for _, r := range records {
		if r.GoalID != goalID || r.Proposal.Type != t || r.Status != StatusRejected {
			continue
		}
		if r.DecidedAt != nil && r.DecidedAt.After(cutoff) {
			return true
		}
	}
	return false
}
