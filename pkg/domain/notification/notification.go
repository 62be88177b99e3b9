package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pacerhq/pacer/pkg/domain/adaptation"
)

// Kind tags what a notification is about.
type Kind string

const (
	KindAdaptationSuggested Kind = "adaptation_suggested"
	KindAdaptationApplied   Kind = "adaptation_applied"
	KindAbandonmentRisk     Kind = "abandonment_risk"
)

// Notification is a payload the caller may deliver to the user. The engine
// only produces these values; delivery and persistence belong to the
// collaborator behind Repository.
type Notification struct {
	ID        string                 `json:"id"`
	GoalID    string                 `json:"goal_id"`
	Kind      Kind                   `json:"kind"`
	Title     string                 `json:"title"`
	Body      string                 `json:"body"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	ReadAt    *time.Time             `json:"read_at,omitempty"`
}

// Repository is the injected persistence dependency for notifications.
type Repository interface {
	Create(ctx context.Context, n Notification) error
	FindForGoal(ctx context.Context, goalID string) ([]Notification, error)
	MarkAsRead(ctx context.Context, id string) error
}

// NewAdaptationSuggested builds the payload announcing a validated proposal.
func NewAdaptationSuggested(goalID, goalTitle string, t adaptation.Type, reason string, now time.Time) Notification {
	return Notification{
		ID:     uuid.NewString(),
		GoalID: goalID,
		Kind:   KindAdaptationSuggested,
		Title:  fmt.Sprintf("Suggestion for %s", goalTitle),
		Body:   reason,
		Metadata: map[string]interface{}{
			"adaptation_type": t.String(),
		},
		CreatedAt: now,
	}
}

// NewAdaptationApplied builds the payload confirming an accepted proposal was
// applied.
func NewAdaptationApplied(goalID string, changesApplied int, now time.Time) Notification {
	return Notification{
		ID:     uuid.NewString(),
		GoalID: goalID,
		Kind:   KindAdaptationApplied,
		Title:  "Plan updated",
		Body:   fmt.Sprintf("%d change(s) applied to your plan", changesApplied),
		Metadata: map[string]interface{}{
			"changes_applied": changesApplied,
		},
		CreatedAt: now,
	}
}

// NewAbandonmentRisk builds the re-engagement payload. Abandonment is flagged
// to the caller, never routed into the adaptation pipeline.
func NewAbandonmentRisk(goalID, goalTitle string, inactiveDays int, now time.Time) Notification {
	return Notification{
		ID:     uuid.NewString(),
		GoalID: goalID,
		Kind:   KindAbandonmentRisk,
		Title:  fmt.Sprintf("Still working on %s?", goalTitle),
		Body:   "It has been a while since your last activity on this goal.",
		Metadata: map[string]interface{}{
			"inactive_days": inactiveDays,
		},
		CreatedAt: now,
	}
}
