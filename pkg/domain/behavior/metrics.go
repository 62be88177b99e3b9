package behavior

import (
	"math"
	"sort"
	"time"
)

// InactiveForever marks a user with no recorded activity at all.
// Every threshold comparison treats it as "longer than any window".
const InactiveForever = math.MaxInt32

// Metrics are the quantified behavioral measurements derived from one task
// snapshot. Derived once, never mutated.
type Metrics struct {
	CompletionRate      int `json:"completion_rate"`
	ConsecutiveFailures int `json:"consecutive_failures"`
	InactiveDays        int `json:"inactive_days"`
	TotalTasks          int `json:"total_tasks"`
	CompletedTasks      int `json:"completed_tasks"`
	FailedTasks         int `json:"failed_tasks"`
}

// StatusCounts summarizes the tasks inside an analysis window.
// Pending tasks count toward Total but neither Completed nor Failed.
type StatusCounts struct {
	Completed int
	Failed    int
	Total     int
}

// CalculateConsecutiveFailures walks the task history from the most recent
// task backwards and counts contiguous skipped/overdue tasks until the first
// completed task. Pending tasks are transparent to the walk.
func CalculateConsecutiveFailures(tasks []TaskSnapshot) int {
	if len(tasks) == 0 {
		return 0
	}

	ordered := make([]TaskSnapshot, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	failures := 0
	for _, t := range ordered {
		switch {
		case t.Status == TaskPending:
			continue
		case t.Status.IsFailure():
			failures++
		default:
			return failures
		}
	}
	return failures
}

// CalculateCompletionRate returns the percentage of completed tasks among all
// tasks created within the analysis window, rounded to the nearest integer.
// An empty window yields 100: no evidence of failure is healthy, not unknown.
func CalculateCompletionRate(tasks []TaskSnapshot, evaluationDate time.Time, windowDays int) int {
	counts := CountTasksByStatus(tasks, evaluationDate, windowDays)
	if counts.Total == 0 {
		return 100
	}
	return int(math.Round(float64(counts.Completed) / float64(counts.Total) * 100))
}

// CalculateInactiveDays returns whole calendar days between the last recorded
// activity and the evaluation date. Time of day is ignored; a future activity
// date (clock skew, test fixtures) clamps to zero. A nil activity date means
// the user never acted and returns InactiveForever.
func CalculateInactiveDays(lastActivityDate *time.Time, evaluationDate time.Time) int {
	if lastActivityDate == nil {
		return InactiveForever
	}

	last := truncateToDay(*lastActivityDate)
	eval := truncateToDay(evaluationDate)
	days := int(eval.Sub(last).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// CountTasksByStatus tallies the tasks created within the analysis window
// ending at evaluationDate. Failed covers skipped and overdue.
func CountTasksByStatus(tasks []TaskSnapshot, evaluationDate time.Time, windowDays int) StatusCounts {
	windowStart := evaluationDate.AddDate(0, 0, -windowDays)

	var counts StatusCounts
	for _, t := range tasks {
		if t.CreatedAt.Before(windowStart) || t.CreatedAt.After(evaluationDate) {
			continue
		}
		counts.Total++
		switch {
		case t.Status == TaskCompleted:
			counts.Completed++
		case t.Status.IsFailure():
			counts.Failed++
		}
	}
	return counts
}

// ComputeMetrics derives the full metric set for one evaluation input.
func ComputeMetrics(input EvaluationInput) Metrics {
	counts := CountTasksByStatus(input.Tasks, input.EvaluationDate, input.AnalysisWindowDays)
	return Metrics{
		CompletionRate:      CalculateCompletionRate(input.Tasks, input.EvaluationDate, input.AnalysisWindowDays),
		ConsecutiveFailures: CalculateConsecutiveFailures(input.Tasks),
		InactiveDays:        CalculateInactiveDays(input.LastActivityDate, input.EvaluationDate),
		TotalTasks:          counts.Total,
		CompletedTasks:      counts.Completed,
		FailedTasks:         counts.Failed,
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
