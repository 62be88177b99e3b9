package application

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pacerhq/pacer/pkg/domain"
	"github.com/pacerhq/pacer/pkg/domain/behavior"
	"github.com/pacerhq/pacer/pkg/domain/notification"
	"github.com/pacerhq/pacer/pkg/domain/plan"
)

// EvaluationService runs the behavioral engine over the workspace state.
// The engine itself is pure; this service owns the I/O around it: loading
// snapshots, logging the outcome and raising abandonment notifications.
type EvaluationService struct {
	repo          domain.WorkspaceRepository
	audit         domain.AuditLogger
	notifications notification.Repository
	now           func() time.Time
}

// NewEvaluationService builds the service. notifications may be nil when no
// delivery channel is configured.
func NewEvaluationService(repo domain.WorkspaceRepository, audit domain.AuditLogger, notifications notification.Repository) *EvaluationService {
	return &EvaluationService{
		repo:          repo,
		audit:         audit,
		notifications: notifications,
		now:           time.Now,
	}
}

// Evaluate loads the tracked tasks and activity record, runs the engine and
// logs the outcome. It never calls the AI.
func (s *EvaluationService) Evaluate(ctx context.Context) (*behavior.Evaluation, error) {
	if !s.repo.IsInitialized() {
		return nil, ErrNotInitialized
	}

	goal, err := s.repo.LoadGoal()
	if err != nil {
		return nil, fmt.Errorf("load goal: %w", err)
	}
	if goal == nil {
		return nil, ErrNoGoal
	}

	input, err := s.buildInput()
	if err != nil {
		return nil, err
	}

	eval := behavior.Evaluate(*input)

	if err := s.audit.Log("behavior.evaluate", "engine", map[string]interface{}{
		"completion_rate":      eval.Metrics.CompletionRate,
		"consecutive_failures": eval.Metrics.ConsecutiveFailures,
		"inactive_days":        eval.Metrics.InactiveDays,
		"signals":              signalNames(eval.Signals),
		"trigger_adaptation":   eval.ShouldTriggerAdaptation,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log audit event: %v\n", err)
	}
	recordEvaluation(s.repo, s.now())

	// Abandonment risk is routed to the user directly, never into the
	// adaptation pipeline.
	if s.notifications != nil && eval.HasSignal(behavior.SignalAbandonmentRisk) {
		n := notification.NewAbandonmentRisk(goal.ID, goal.Description, eval.Metrics.InactiveDays, s.now())
		if err := s.notifications.Create(ctx, n); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create notification: %v\n", err)
		}
	}

	return &eval, nil
}

// buildInput assembles the engine input from the workspace.
func (s *EvaluationService) buildInput() (*behavior.EvaluationInput, error) {
	tasks, err := s.repo.LoadTasks()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	var lastActivity *time.Time
	activity, err := s.repo.LoadLastActivity()
	if err != nil {
		return nil, fmt.Errorf("load last activity: %w", err)
	}
	if activity != nil {
		lastActivity = &activity.At
	}

	cfg, err := s.repo.LoadPolicy()
	if err != nil {
		return nil, fmt.Errorf("load policy: %w", err)
	}
	windowDays := cfg.AnalysisWindowDays
	if windowDays <= 0 {
		windowDays = domain.DefaultPolicy().AnalysisWindowDays
	}

	return &behavior.EvaluationInput{
		Tasks:              plan.Snapshots(tasks),
		LastActivityDate:   lastActivity,
		EvaluationDate:     s.now(),
		AnalysisWindowDays: windowDays,
	}, nil
}

func signalNames(signals []behavior.Signal) []string {
	names := make([]string, len(signals))
	for i, s := range signals {
		names[i] = string(s.Type)
	}
	return names
}
