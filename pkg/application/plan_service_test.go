package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pacerhq/pacer/pkg/domain"
	"github.com/pacerhq/pacer/pkg/domain/ai"
	"github.com/pacerhq/pacer/pkg/domain/behavior"
	"github.com/pacerhq/pacer/pkg/domain/plan"
)

func fixtureGoal() *plan.Goal {
	return &plan.Goal{
		ID:          "goal-1",
		Description: "Run a 10k",
		CoachName:   "Sam",
		Timezone:    "Europe/Berlin",
		CreatedAt:   time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestPlanGenerateStoresPendingPlan(t *testing.T) {
	repo := newMemoryRepo()
	repo.goal = fixtureGoal()
	audit := &recordingAudit{}
	provider := &stubProvider{text: validPlanJSON(3), usage: ai.TokenUsage{InputTokens: 100, OutputTokens: 200}}

	svc := NewPlanService(repo, provider, audit)
	stored, err := svc.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, plan.StatusPendingAcceptance, stored.Status)
	assert.Equal(t, "goal-1", stored.GoalID)
	assert.Len(t, stored.Plan.Tasks, 3)
	assert.NotEmpty(t, stored.ID)
	assert.True(t, audit.has("plan.generate"))

	require.NotNil(t, repo.usage)
	assert.Equal(t, 300, repo.usage.TotalTokens())
}

func TestPlanGenerateRejectsInvalidOutput(t *testing.T) {
	repo := newMemoryRepo()
	repo.goal = fixtureGoal()
	audit := &recordingAudit{}
	provider := &stubProvider{text: validPlanJSON(21)}

	svc := NewPlanService(repo, provider, audit)
	_, err := svc.Generate(context.Background())
	require.Error(t, err)
	assert.Equal(t, ai.CodeValidationFailed, ai.CodeOf(err))
	assert.Nil(t, repo.storedPlan, "an invalid plan must never be stored")
	assert.True(t, audit.has("plan.generate_rejected"))
}

func TestPlanGeneratePolicyGates(t *testing.T) {
	t.Run("AI disabled", func(t *testing.T) {
		repo := newMemoryRepo()
		repo.goal = fixtureGoal()
		repo.policy = &domain.PolicyConfig{AllowAI: false}
		provider := &stubProvider{text: validPlanJSON(3)}

		svc := NewPlanService(repo, provider, &recordingAudit{})
		_, err := svc.Generate(context.Background())
		assert.ErrorIs(t, err, ErrAIDisabled)
		assert.Zero(t, provider.calls)
	})

	t.Run("token budget exhausted", func(t *testing.T) {
		repo := newMemoryRepo()
		repo.goal = fixtureGoal()
		repo.policy = &domain.PolicyConfig{AllowAI: true, TokenLimit: 100}
		repo.usage = &domain.UsageStats{ProviderStats: map[string]int{"stub-tokens": 150}}
		provider := &stubProvider{text: validPlanJSON(3)}

		svc := NewPlanService(repo, provider, &recordingAudit{})
		_, err := svc.Generate(context.Background())
		assert.ErrorIs(t, err, ErrTokenBudgetExceeded)
		assert.Zero(t, provider.calls)
	})

	t.Run("not initialized", func(t *testing.T) {
		repo := newMemoryRepo()
		repo.initialized = false

		svc := NewPlanService(repo, &stubProvider{}, &recordingAudit{})
		_, err := svc.Generate(context.Background())
		assert.ErrorIs(t, err, ErrNotInitialized)
	})

	t.Run("no goal", func(t *testing.T) {
		repo := newMemoryRepo()

		svc := NewPlanService(repo, &stubProvider{text: validPlanJSON(3)}, &recordingAudit{})
		_, err := svc.Generate(context.Background())
		assert.ErrorIs(t, err, ErrNoGoal)
	})
}

func TestPlanGeneratePropagatesProviderError(t *testing.T) {
	repo := newMemoryRepo()
	repo.goal = fixtureGoal()
	provider := &stubProvider{err: ai.NewError(ai.CodeRateLimited, "429 from service")}

	svc := NewPlanService(repo, provider, &recordingAudit{})
	_, err := svc.Generate(context.Background())
	require.Error(t, err)
	assert.Equal(t, ai.CodeRateLimited, ai.CodeOf(err))
	assert.True(t, ai.IsRetryable(err))
}

func TestPlanAcceptMaterializesTasks(t *testing.T) {
	repo := newMemoryRepo()
	repo.goal = fixtureGoal()
	audit := &recordingAudit{}
	provider := &stubProvider{text: validPlanJSON(2)}

	svc := NewPlanService(repo, provider, audit)
	_, err := svc.Generate(context.Background())
	require.NoError(t, err)

	accepted, err := svc.Accept(context.Background())
	require.NoError(t, err)
	assert.Equal(t, plan.StatusActive, accepted.Status)

	require.Len(t, repo.tasks, 2)
	for _, task := range repo.tasks {
		assert.NotEmpty(t, task.ID)
		assert.Equal(t, behavior.TaskPending, task.Status)
	}
	require.NotNil(t, repo.lastActivity, "accepting a plan counts as activity")
	assert.True(t, audit.has("plan.accept"))

	_, err = svc.Accept(context.Background())
	assert.ErrorIs(t, err, ErrPlanAlreadyActive)
}

func TestPlanAcceptWithoutPlan(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewPlanService(repo, &stubProvider{}, &recordingAudit{})

	_, err := svc.Accept(context.Background())
	assert.ErrorIs(t, err, ErrNoPlan)
}

func TestPlanGetWrapsSentinels(t *testing.T) {
	repo := newMemoryRepo()
	repo.initialized = false
	svc := NewPlanService(repo, &stubProvider{}, &recordingAudit{})

	_, err := svc.Get()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotInitialized))
}
