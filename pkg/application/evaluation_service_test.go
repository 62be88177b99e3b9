package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacerhq/pacer/pkg/domain"
	"github.com/pacerhq/pacer/pkg/domain/behavior"
	"github.com/pacerhq/pacer/pkg/domain/notification"
	"github.com/pacerhq/pacer/pkg/domain/plan"
)

var evalNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// trackedAt builds a tracked task created daysAgo days before evalNow.
func trackedAt(id string, status behavior.TaskState, daysAgo int) plan.TrackedTask {
	created := evalNow.AddDate(0, 0, -daysAgo)
	task := plan.TrackedTask{
		ID:         id,
		Title:      "task " + id,
		Difficulty: plan.DifficultyMedium,
		Status:     status,
		CreatedAt:  created,
	}
	if status == behavior.TaskCompleted {
		done := created.Add(time.Hour)
		task.CompletedAt = &done
	}
	return task
}

func activityAt(daysAgo int) *domain.LastActivity {
	return &domain.LastActivity{At: evalNow.AddDate(0, 0, -daysAgo)}
}

func newEvalService(repo *memoryRepo, audit *recordingAudit, notifications notification.Repository) *EvaluationService {
	svc := NewEvaluationService(repo, audit, notifications)
	svc.now = func() time.Time { return evalNow }
	return svc
}

func TestEvaluateHealthyBehavior(t *testing.T) {
	repo := newMemoryRepo()
	repo.goal = fixtureGoal()
	repo.tasks = []plan.TrackedTask{
		trackedAt("t1", behavior.TaskCompleted, 3),
		trackedAt("t2", behavior.TaskCompleted, 2),
		trackedAt("t3", behavior.TaskPending, 1),
	}
	repo.lastActivity = activityAt(1)
	audit := &recordingAudit{}

	svc := newEvalService(repo, audit, nil)
	eval, err := svc.Evaluate(context.Background())
	require.NoError(t, err)

	assert.False(t, eval.ShouldTriggerAdaptation)
	assert.True(t, eval.HasSignal(behavior.SignalHealthy))
	assert.True(t, audit.has("behavior.evaluate"))

	require.NotNil(t, repo.usage)
	assert.Equal(t, 1, repo.usage.Evaluations)
}

func TestEvaluateStrugglingTriggersAdaptation(t *testing.T) {
	repo := newMemoryRepo()
	repo.goal = fixtureGoal()
	repo.tasks = []plan.TrackedTask{
		trackedAt("t1", behavior.TaskSkipped, 3),
		trackedAt("t2", behavior.TaskSkipped, 2),
		trackedAt("t3", behavior.TaskOverdue, 1),
	}
	repo.lastActivity = activityAt(1)

	svc := newEvalService(repo, &recordingAudit{}, nil)
	eval, err := svc.Evaluate(context.Background())
	require.NoError(t, err)

	assert.True(t, eval.ShouldTriggerAdaptation)
	assert.True(t, eval.HasSignal(behavior.SignalStruggling))
}

func TestEvaluateAbandonmentCreatesNotification(t *testing.T) {
	repo := newMemoryRepo()
	repo.goal = fixtureGoal()
	repo.tasks = []plan.TrackedTask{
		trackedAt("t1", behavior.TaskCompleted, 20),
	}
	repo.lastActivity = activityAt(10)
	inbox := &recordingNotifications{}

	svc := newEvalService(repo, &recordingAudit{}, inbox)
	eval, err := svc.Evaluate(context.Background())
	require.NoError(t, err)

	assert.True(t, eval.HasSignal(behavior.SignalAbandonmentRisk))
	assert.False(t, eval.ShouldTriggerAdaptation, "abandonment alone never triggers adaptation")

	require.Len(t, inbox.created, 1)
	assert.Equal(t, notification.KindAbandonmentRisk, inbox.created[0].Kind)
	assert.Equal(t, "goal-1", inbox.created[0].GoalID)
}

func TestEvaluateNoActivityEver(t *testing.T) {
	repo := newMemoryRepo()
	repo.goal = fixtureGoal()
	inbox := &recordingNotifications{}

	svc := newEvalService(repo, &recordingAudit{}, inbox)
	eval, err := svc.Evaluate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, behavior.InactiveForever, eval.Metrics.InactiveDays)
	assert.True(t, eval.HasSignal(behavior.SignalAbandonmentRisk))
	assert.Len(t, inbox.created, 1)
}

func TestEvaluateRequiresWorkspace(t *testing.T) {
	repo := newMemoryRepo()
	repo.initialized = false

	svc := newEvalService(repo, &recordingAudit{}, nil)
	_, err := svc.Evaluate(context.Background())
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestEvaluateRequiresGoal(t *testing.T) {
	repo := newMemoryRepo()

	svc := newEvalService(repo, &recordingAudit{}, nil)
	_, err := svc.Evaluate(context.Background())
	assert.ErrorIs(t, err, ErrNoGoal)
}

func TestEvaluateDefaultsAnalysisWindow(t *testing.T) {
	repo := newMemoryRepo()
	repo.goal = fixtureGoal()
	repo.policy = &domain.PolicyConfig{AllowAI: true} // window days left zero
	repo.tasks = []plan.TrackedTask{
		trackedAt("t1", behavior.TaskCompleted, 3),
	}
	repo.lastActivity = activityAt(1)

	svc := newEvalService(repo, &recordingAudit{}, nil)
	eval, err := svc.Evaluate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100, eval.Metrics.CompletionRate)
}
