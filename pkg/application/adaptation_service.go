package application

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/pacerhq/pacer/pkg/domain"
	"github.com/pacerhq/pacer/pkg/domain/adaptation"
	"github.com/pacerhq/pacer/pkg/domain/ai"
	"github.com/pacerhq/pacer/pkg/domain/notification"
	"github.com/pacerhq/pacer/pkg/domain/plan"
)

// AdaptationService drives the constrained adaptation pipeline: evaluation
// gate, one completion call, validation, then the propose/accept/apply
// lifecycle. The model only ever suggests; every plan change passes through
// an explicit user decision.
type AdaptationService struct {
	repo          domain.WorkspaceRepository
	provider      ai.Provider
	audit         domain.AuditLogger
	notifications notification.Repository
	evaluations   *EvaluationService
	now           func() time.Time
}

func NewAdaptationService(
	repo domain.WorkspaceRepository,
	provider ai.Provider,
	audit domain.AuditLogger,
	notifications notification.Repository,
	evaluations *EvaluationService,
) *AdaptationService {
	return &AdaptationService{
		repo:          repo,
		provider:      provider,
		audit:         audit,
		notifications: notifications,
		evaluations:   evaluations,
		now:           time.Now,
	}
}

// Propose runs one adaptation attempt. It refuses to call the AI when the
// behavioral engine sees no struggle, when a proposal is already open, or
// when policy forbids it. A validated proposal is stored as proposed and
// announced; it changes nothing until applied.
func (s *AdaptationService) Propose(ctx context.Context) (*adaptation.Record, error) {
	if !s.repo.IsInitialized() {
		return nil, ErrNotInitialized
	}
	cfg, err := checkAIPolicy(s.repo)
	if err != nil {
		return nil, err
	}

	goal, err := s.repo.LoadGoal()
	if err != nil {
		return nil, fmt.Errorf("load goal: %w", err)
	}
	if goal == nil {
		return nil, ErrNoGoal
	}

	stored, err := s.repo.LoadPlan()
	if err != nil {
		return nil, fmt.Errorf("load plan: %w", err)
	}
	if stored == nil {
		return nil, ErrNoPlan
	}
	if stored.Status != plan.StatusActive {
		return nil, ErrPlanNotAccepted
	}

	records, err := s.repo.LoadProposals()
	if err != nil {
		return nil, fmt.Errorf("load proposals: %w", err)
	}
	for _, r := range records {
		if r.Status == adaptation.StatusProposed || r.Status == adaptation.StatusAccepted {
			return nil, ErrProposalPending
		}
	}

	eval, err := s.evaluations.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	if !eval.ShouldTriggerAdaptation {
		return nil, ErrNoAdaptationNeeded
	}

	tasks, err := s.repo.LoadTasks()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	snapshot := plan.Summaries(tasks)

	system, prompt := BuildAdaptationPrompt(*goal, *eval, snapshot)
	resp, err := s.provider.Complete(ctx, ai.CompletionRequest{
		Prompt:      prompt,
		System:      system,
		Temperature: 0.2,
		MaxTokens:   1500,
	})
	if err != nil {
		return nil, fmt.Errorf("adaptation proposal failed: %w", err)
	}
	recordTokenSpend(s.repo, s.provider.ID(), resp.Usage, s.now())

	proposal, err := ValidateProposal(resp.Text, snapshot)
	if err != nil {
		if logErr := s.audit.Log("adaptation.propose_rejected", "ai", map[string]interface{}{
			"model": resp.Model,
			"code":  string(ai.CodeOf(err)),
		}); logErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to log audit event: %v\n", logErr)
		}
		return nil, fmt.Errorf("adaptation proposal produced invalid output: %w", err)
	}

	now := s.now()
	if adaptation.InCooldown(records, goal.ID, proposal.Type, now, cfg.CooldownDays) {
		if logErr := s.audit.Log("adaptation.cooldown_skip", "engine", map[string]interface{}{
			"adaptation_type": proposal.Type.String(),
			"cooldown_days":   cfg.CooldownDays,
		}); logErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to log audit event: %v\n", logErr)
		}
		return nil, ErrCooldownActive
	}

	record := adaptation.Record{
		ID:        uuid.NewString(),
		GoalID:    goal.ID,
		Proposal:  *proposal,
		Status:    adaptation.StatusProposed,
		CreatedAt: now,
	}
	records = append(records, record)
	if err := s.repo.SaveProposals(records); err != nil {
		return nil, fmt.Errorf("save proposals: %w", err)
	}

	if err := s.audit.Log("adaptation.propose", "ai", map[string]interface{}{
		"model":           resp.Model,
		"proposal_id":     record.ID,
		"adaptation_type": proposal.Type.String(),
		"input_tokens":    resp.Usage.InputTokens,
		"output_tokens":   resp.Usage.OutputTokens,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log audit event: %v\n", err)
	}

	if s.notifications != nil {
		n := notification.NewAdaptationSuggested(goal.ID, goal.Description, proposal.Type, proposal.Explanation, now)
		if err := s.notifications.Create(ctx, n); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create notification: %v\n", err)
		}
	}

	return &record, nil
}

// Accept marks a proposal as accepted. The plan stays untouched until Apply.
func (s *AdaptationService) Accept(ctx context.Context, proposalID string) (*adaptation.Record, error) {
	return s.decide(proposalID, "accept", "adaptation.accept")
}

// Reject marks a proposal as rejected, which starts the cooldown for its
// type on this goal.
func (s *AdaptationService) Reject(ctx context.Context, proposalID string) (*adaptation.Record, error) {
	return s.decide(proposalID, "reject", "adaptation.reject")
}

func (s *AdaptationService) decide(proposalID, event, action string) (*adaptation.Record, error) {
	records, idx, err := s.findProposal(proposalID)
	if err != nil {
		return nil, err
	}
	record := &records[idx]

	lifecycle, err := adaptation.NewLifecycle(string(record.Status), record.ID, nil)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.Transition(event); err != nil {
		return nil, err
	}

	now := s.now()
	record.Status = lifecycle.CurrentStatus()
	record.DecidedAt = &now
	if err := s.repo.SaveProposals(records); err != nil {
		return nil, fmt.Errorf("save proposals: %w", err)
	}

	if err := s.audit.Log(action, "human", map[string]interface{}{
		"proposal_id":     record.ID,
		"adaptation_type": record.Proposal.Type.String(),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log audit event: %v\n", err)
	}

	return record, nil
}

// Apply executes an accepted proposal against the tracked tasks. Difficulty
// changes mutate the affected tasks; reschedules and buffers are recorded as
// plan annotations in the audit trail, since tracked tasks carry no dates.
func (s *AdaptationService) Apply(ctx context.Context, proposalID string) (*adaptation.Record, error) {
	records, idx, err := s.findProposal(proposalID)
	if err != nil {
		return nil, err
	}
	record := &records[idx]

	lifecycle, err := adaptation.NewLifecycle(string(record.Status), record.ID, nil)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.Transition("apply"); err != nil {
		return nil, err
	}

	changed, err := s.applyChanges(record.Proposal)
	if err != nil {
		return nil, err
	}

	now := s.now()
	record.Status = lifecycle.CurrentStatus()
	record.AppliedAt = &now
	if err := s.repo.SaveProposals(records); err != nil {
		return nil, fmt.Errorf("save proposals: %w", err)
	}
	if err := s.repo.SaveLastActivity(domain.LastActivity{At: now}); err != nil {
		return nil, fmt.Errorf("save last activity: %w", err)
	}

	if err := s.audit.Log("adaptation.apply", "human", map[string]interface{}{
		"proposal_id":     record.ID,
		"adaptation_type": record.Proposal.Type.String(),
		"changes_applied": changed,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log audit event: %v\n", err)
	}

	if s.notifications != nil {
		n := notification.NewAdaptationApplied(record.GoalID, changed, now)
		if err := s.notifications.Create(ctx, n); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create notification: %v\n", err)
		}
	}

	return record, nil
}

// List returns all proposal records, newest last.
func (s *AdaptationService) List() ([]adaptation.Record, error) {
	if !s.repo.IsInitialized() {
		return nil, ErrNotInitialized
	}
	records, err := s.repo.LoadProposals()
	if err != nil {
		return nil, fmt.Errorf("load proposals: %w", err)
	}
	return records, nil
}

func (s *AdaptationService) findProposal(proposalID string) ([]adaptation.Record, int, error) {
	if !s.repo.IsInitialized() {
		return nil, 0, ErrNotInitialized
	}
	records, err := s.repo.LoadProposals()
	if err != nil {
		return nil, 0, fmt.Errorf("load proposals: %w", err)
	}
	for i := range records {
		if records[i].ID == proposalID {
			return records, i, nil
		}
	}
	return nil, 0, ErrProposalNotFound
}

// applyChanges mutates the workspace per the proposal's variant and returns
// how many tasks were touched. The validator has already guaranteed that the
// variant matches the type and that every id exists.
func (s *AdaptationService) applyChanges(p adaptation.Proposal) (int, error) {
	switch p.Type {
	case adaptation.TypeDifficultyChange:
		c := p.SuggestedChanges.DifficultyChange
		tasks, err := s.repo.LoadTasks()
		if err != nil {
			return 0, fmt.Errorf("load tasks: %w", err)
		}
		affected := make(map[string]bool, len(c.AffectedTaskIDs))
		for _, id := range c.AffectedTaskIDs {
			affected[id] = true
		}
		changed := 0
		for i := range tasks {
			if affected[tasks[i].ID] {
				tasks[i].Difficulty = c.ToDifficulty
				changed++
			}
		}
		if err := s.repo.SaveTasks(tasks); err != nil {
			return 0, fmt.Errorf("save tasks: %w", err)
		}
		return changed, nil
	case adaptation.TypeReschedule:
		return len(p.SuggestedChanges.Reschedule.AffectedTaskIDs), nil
	case adaptation.TypeBufferAdd:
		return 1, nil
	default:
		return 0, fmt.Errorf("unknown adaptation type %q", p.Type)
	}
}
