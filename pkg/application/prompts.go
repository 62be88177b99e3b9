package application

import (
	"fmt"
	"strings"

	"github.com/pacerhq/pacer/pkg/domain/adaptation"
	"github.com/pacerhq/pacer/pkg/domain/behavior"
	"github.com/pacerhq/pacer/pkg/domain/plan"
)

// Prompt construction for the two completion call shapes. The constraints
// spelled out here steer the model toward valid output, but they are advisory
// only: the output validator is what actually enforces them.

const planSystemPrompt = "You are an expert goal coach. You decompose a personal goal into a " +
	"concrete, achievable task plan and return it as a single JSON object with no " +
	"surrounding text, no markdown, and no code fences."

const adaptationSystemPrompt = "You are an expert goal coach. A user is struggling with their plan. " +
	"You propose exactly one small, reversible adjustment and return it as a single " +
	"JSON object with no surrounding text, no markdown, and no code fences."

// BuildPlanPrompt renders the plan-generation request for a goal.
func BuildPlanPrompt(goal plan.Goal) (system string, prompt string) {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a task plan for the following goal.\n\n")
	fmt.Fprintf(&b, "Goal: %s\n", goal.Description)
	if goal.Timezone != "" {
		fmt.Fprintf(&b, "User timezone: %s\n", goal.Timezone)
	}
	if goal.Preferences.CommunicationStyle != "" {
		fmt.Fprintf(&b, "Communication style: %s\n", goal.Preferences.CommunicationStyle)
	}
	if goal.Preferences.PreferredDifficulty != "" {
		fmt.Fprintf(&b, "Preferred difficulty: %s\n", goal.Preferences.PreferredDifficulty)
	}

	b.WriteString(`
HARD CONSTRAINTS:
- Between 1 and 20 tasks.
- Every task needs: title, difficulty, frequency, estimated_duration, is_optional, order_index.
- difficulty is one of: easy, medium, hard, extreme.
- frequency is one of: daily, weekly, milestone.
- estimated_duration is minutes, between 5 and 480.
- order_index values are unique non-negative integers.

Return ONLY a JSON object in this exact shape:
{
  "title": "string",
  "tasks": [
    {"title": "string", "difficulty": "easy", "frequency": "daily", "estimated_duration": 30, "is_optional": false, "order_index": 0}
  ],
  "explanation": "string"
}
`)

	return planSystemPrompt, b.String()
}

// BuildAdaptationPrompt renders the adaptation request for one evaluation.
// Only task ids present in the snapshot may be referenced; the validator
// rejects anything else.
func BuildAdaptationPrompt(goal plan.Goal, eval behavior.Evaluation, snapshot []plan.TaskSummary) (system string, prompt string) {
	var b strings.Builder

	fmt.Fprintf(&b, "A user is pursuing this goal: %s\n\n", goal.Description)

	b.WriteString("Recent behavior:\n")
	fmt.Fprintf(&b, "- completion rate: %d%% over the analysis window\n", eval.Metrics.CompletionRate)
	fmt.Fprintf(&b, "- consecutive missed tasks: %d\n", eval.Metrics.ConsecutiveFailures)
	if eval.Metrics.InactiveDays == behavior.InactiveForever {
		b.WriteString("- no activity ever recorded\n")
	} else {
		fmt.Fprintf(&b, "- days since last activity: %d\n", eval.Metrics.InactiveDays)
	}
	for _, s := range eval.Signals {
		fmt.Fprintf(&b, "- signal: %s (%s) %s\n", s.Type, s.Severity, s.Message)
	}

	b.WriteString("\nCurrent tasks (the ONLY task ids you may reference):\n")
	for _, t := range snapshot {
		fmt.Fprintf(&b, "- id=%s title=%q difficulty=%s status=%s\n", t.ID, t.Title, t.Difficulty, t.Status)
	}

	if goal.Preferences.CommunicationStyle != "" {
		fmt.Fprintf(&b, "\nCommunication style for the explanation: %s\n", goal.Preferences.CommunicationStyle)
	}

	fmt.Fprintf(&b, `
Propose exactly ONE adaptation. Allowed types: %s, %s, %s.

HARD CONSTRAINTS:
- difficulty_change: move between adjacent levels only, one step at a time on
  easy < medium < hard < extreme. Never jump two or more levels.
- reschedule: shift affected tasks by 1 to %d days.
- buffer_add: insert 1 to %d rest days after an existing task.
- affected task ids and after_task_id MUST come from the list above.
- suggested_changes.type must equal the top-level type, and only the matching
  variant object may be present.

Return ONLY a JSON object in this exact shape:
{
  "type": "difficulty_change",
  "reason": "string",
  "explanation": "string for the user",
  "suggested_changes": {
    "type": "difficulty_change",
    "difficulty_change": {"from_difficulty": "medium", "to_difficulty": "easy", "affected_task_ids": ["id"]}
  }
}
`, adaptation.TypeDifficultyChange, adaptation.TypeReschedule, adaptation.TypeBufferAdd,
		adaptation.MaxShiftDays, adaptation.MaxBufferDays)

	return adaptationSystemPrompt, b.String()
}
