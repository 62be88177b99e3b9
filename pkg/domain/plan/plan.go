package plan

import "time"

// Hard bounds for generated plans. The prompt builder repeats them to the
// model as steering text; the output validator enforces them.
const (
	MaxPlanTasks    = 20
	MinTaskDuration = 5   // minutes
	MaxTaskDuration = 480 // minutes
)

// Frequency is how often a generated task recurs.
type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMilestone Frequency = "milestone"
)

// IsValid returns true if the frequency is known.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMilestone:
		return true
	default:
		return false
	}
}

// String returns the string representation of the frequency.
func (f Frequency) String() string {
	return string(f)
}

// GeneratedTask is one task inside a model-generated plan.
type GeneratedTask struct {
	Title             string     `json:"title"`
	Difficulty        Difficulty `json:"difficulty"`
	Frequency         Frequency  `json:"frequency"`
	EstimatedDuration int        `json:"estimated_duration"` // minutes
	IsOptional        bool       `json:"is_optional"`
	OrderIndex        int        `json:"order_index"`
}

// GoalPlan is the structured output of a plan-generation call. It is never
// trusted until it has cleared the output validator.
type GoalPlan struct {
	Title       string          `json:"title"`
	Tasks       []GeneratedTask `json:"tasks"`
	Explanation string          `json:"explanation"`
}

// Status is the acceptance state of a stored plan. A generated plan stays
// pending until the user accepts it.
type Status string

const (
	StatusPendingAcceptance Status = "pending_acceptance"
	StatusActive            Status = "active"
)

// StoredPlan is a plan persisted in the workspace together with its
// acceptance state.
type StoredPlan struct {
	ID        string    `json:"id"`
	GoalID    string    `json:"goal_id"`
	Plan      GoalPlan  `json:"plan"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
