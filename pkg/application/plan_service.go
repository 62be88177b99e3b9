package application

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/pacerhq/pacer/pkg/domain"
	"github.com/pacerhq/pacer/pkg/domain/ai"
	"github.com/pacerhq/pacer/pkg/domain/behavior"
	"github.com/pacerhq/pacer/pkg/domain/plan"
)

// PlanService generates task plans from the goal and manages their
// acceptance. A generated plan is inert until the user accepts it; only
// acceptance materializes tracked tasks.
type PlanService struct {
	repo     domain.WorkspaceRepository
	provider ai.Provider
	audit    domain.AuditLogger
	now      func() time.Time
}

func NewPlanService(repo domain.WorkspaceRepository, provider ai.Provider, audit domain.AuditLogger) *PlanService {
	return &PlanService{
		repo:     repo,
		provider: provider,
		audit:    audit,
		now:      time.Now,
	}
}

// Generate runs one plan-generation completion, validates the output and
// stores the result as pending acceptance. Invalid output is rejected, never
// repaired.
func (s *PlanService) Generate(ctx context.Context) (*plan.StoredPlan, error) {
	if !s.repo.IsInitialized() {
		return nil, ErrNotInitialized
	}
	if _, err := checkAIPolicy(s.repo); err != nil {
		return nil, err
	}

	goal, err := s.repo.LoadGoal()
	if err != nil {
		return nil, fmt.Errorf("load goal: %w", err)
	}
	if goal == nil {
		return nil, ErrNoGoal
	}

	system, prompt := BuildPlanPrompt(*goal)
	resp, err := s.provider.Complete(ctx, ai.CompletionRequest{
		Prompt:      prompt,
		System:      system,
		Temperature: 0.2,
		MaxTokens:   2000,
	})
	if err != nil {
		return nil, fmt.Errorf("plan generation failed: %w", err)
	}
	recordTokenSpend(s.repo, s.provider.ID(), resp.Usage, s.now())

	generated, err := ValidateGoalPlan(resp.Text)
	if err != nil {
		if logErr := s.audit.Log("plan.generate_rejected", "ai", map[string]interface{}{
			"model": resp.Model,
			"code":  string(ai.CodeOf(err)),
		}); logErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to log audit event: %v\n", logErr)
		}
		return nil, fmt.Errorf("plan generation produced invalid output: %w", err)
	}

	now := s.now()
	stored := &plan.StoredPlan{
		ID:        uuid.NewString(),
		GoalID:    goal.ID,
		Plan:      *generated,
		Status:    plan.StatusPendingAcceptance,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.SavePlan(stored); err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}

	if err := s.audit.Log("plan.generate", "ai", map[string]interface{}{
		"model":         resp.Model,
		"plan_id":       stored.ID,
		"task_count":    len(generated.Tasks),
		"input_tokens":  resp.Usage.InputTokens,
		"output_tokens": resp.Usage.OutputTokens,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log audit event: %v\n", err)
	}

	return stored, nil
}

// Accept activates the pending plan and materializes its tasks as tracked
// tasks. Accepting counts as goal activity.
func (s *PlanService) Accept(ctx context.Context) (*plan.StoredPlan, error) {
	stored, err := s.Get()
	if err != nil {
		return nil, err
	}
	if stored.Status == plan.StatusActive {
		return nil, ErrPlanAlreadyActive
	}

	now := s.now()
	stored.Status = plan.StatusActive
	stored.UpdatedAt = now
	if err := s.repo.SavePlan(stored); err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}

	tracked := make([]plan.TrackedTask, len(stored.Plan.Tasks))
	for i, t := range stored.Plan.Tasks {
		tracked[i] = plan.TrackedTask{
			ID:         uuid.NewString(),
			Title:      t.Title,
			Difficulty: t.Difficulty,
			Status:     behavior.TaskPending,
			CreatedAt:  now,
		}
	}
	if err := s.repo.SaveTasks(tracked); err != nil {
		return nil, fmt.Errorf("save tasks: %w", err)
	}
	if err := s.repo.SaveLastActivity(domain.LastActivity{At: now}); err != nil {
		return nil, fmt.Errorf("save last activity: %w", err)
	}

	if err := s.audit.Log("plan.accept", "human", map[string]interface{}{
		"plan_id":    stored.ID,
		"task_count": len(tracked),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log audit event: %v\n", err)
	}

	return stored, nil
}

// Get returns the stored plan, pending or active.
func (s *PlanService) Get() (*plan.StoredPlan, error) {
	if !s.repo.IsInitialized() {
		return nil, ErrNotInitialized
	}
	stored, err := s.repo.LoadPlan()
	if err != nil {
		return nil, fmt.Errorf("load plan: %w", err)
	}
	if stored == nil {
		return nil, ErrNoPlan
	}
	return stored, nil
}
