package plan

import (
	"time"

	"github.com/pacerhq/pacer/pkg/domain/behavior"
)

// Preferences steer prompt tone and initial plan difficulty. Both are
// advisory inputs to the prompt builder, never validation constraints.
type Preferences struct {
	CommunicationStyle  string     `json:"communication_style,omitempty" yaml:"communication_style,omitempty"`
	PreferredDifficulty Difficulty `json:"preferred_difficulty,omitempty" yaml:"preferred_difficulty,omitempty"`
}

// Goal describes what the user is working toward.
type Goal struct {
	ID          string      `json:"id" yaml:"id"`
	Description string      `json:"description" yaml:"description"`
	CoachName   string      `json:"coach_name" yaml:"coach_name"`
	Timezone    string      `json:"timezone" yaml:"timezone"`
	Preferences Preferences `json:"preferences" yaml:"preferences"`
	CreatedAt   time.Time   `json:"created_at" yaml:"created_at"`
}

// TaskSummary is the slice of a task the adaptation pipeline shares with the
// model: identity, difficulty, and completion state. The validator uses the
// same snapshot to reject proposals that reference invented task ids.
type TaskSummary struct {
	ID         string             `json:"id"`
	Title      string             `json:"title"`
	Difficulty Difficulty         `json:"difficulty"`
	Status     behavior.TaskState `json:"status"`
}
