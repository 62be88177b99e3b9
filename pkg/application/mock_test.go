package application

import (
	"context"

	"github.com/pacerhq/pacer/pkg/domain"
	"github.com/pacerhq/pacer/pkg/domain/adaptation"
	"github.com/pacerhq/pacer/pkg/domain/ai"
	"github.com/pacerhq/pacer/pkg/domain/notification"
	"github.com/pacerhq/pacer/pkg/domain/plan"
)

// memoryRepo is an in-memory WorkspaceRepository for service tests.
type memoryRepo struct {
	initialized  bool
	goal         *plan.Goal
	storedPlan   *plan.StoredPlan
	tasks        []plan.TrackedTask
	lastActivity *domain.LastActivity
	proposals    []adaptation.Record
	policy       *domain.PolicyConfig
	events       []domain.Event
	usage        *domain.UsageStats
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		initialized: true,
		policy:      domain.DefaultPolicy(),
	}
}

func (r *memoryRepo) Initialize() error   { r.initialized = true; return nil }
func (r *memoryRepo) IsInitialized() bool { return r.initialized }

func (r *memoryRepo) SaveGoal(g *plan.Goal) error { r.goal = g; return nil }
func (r *memoryRepo) LoadGoal() (*plan.Goal, error) {
	return r.goal, nil
}

func (r *memoryRepo) SavePlan(p *plan.StoredPlan) error {
	cp := *p
	r.storedPlan = &cp
	return nil
}
func (r *memoryRepo) LoadPlan() (*plan.StoredPlan, error) {
	if r.storedPlan == nil {
		return nil, nil
	}
	cp := *r.storedPlan
	return &cp, nil
}

func (r *memoryRepo) SaveTasks(tasks []plan.TrackedTask) error {
	r.tasks = append([]plan.TrackedTask(nil), tasks...)
	return nil
}
func (r *memoryRepo) LoadTasks() ([]plan.TrackedTask, error) {
	return append([]plan.TrackedTask(nil), r.tasks...), nil
}

func (r *memoryRepo) SaveLastActivity(ts domain.LastActivity) error {
	r.lastActivity = &ts
	return nil
}
func (r *memoryRepo) LoadLastActivity() (*domain.LastActivity, error) {
	return r.lastActivity, nil
}

func (r *memoryRepo) SaveProposals(records []adaptation.Record) error {
	r.proposals = append([]adaptation.Record(nil), records...)
	return nil
}
func (r *memoryRepo) LoadProposals() ([]adaptation.Record, error) {
	return append([]adaptation.Record(nil), r.proposals...), nil
}

func (r *memoryRepo) SavePolicy(cfg *domain.PolicyConfig) error { r.policy = cfg; return nil }
func (r *memoryRepo) LoadPolicy() (*domain.PolicyConfig, error) {
	return r.policy, nil
}

func (r *memoryRepo) RecordEvent(event domain.Event) error {
	r.events = append(r.events, event)
	return nil
}
func (r *memoryRepo) LoadEvents() ([]domain.Event, error) {
	return r.events, nil
}

func (r *memoryRepo) UpdateUsage(stats domain.UsageStats) error {
	r.usage = &stats
	return nil
}
func (r *memoryRepo) LoadUsage() (*domain.UsageStats, error) {
	return r.usage, nil
}

// recordingAudit captures audit actions for assertions.
type recordingAudit struct {
	actions []string
}

func (a *recordingAudit) Log(action, actor string, metadata map[string]interface{}) error {
	a.actions = append(a.actions, action)
	return nil
}

func (a *recordingAudit) has(action string) bool {
	for _, got := range a.actions {
		if got == action {
			return true
		}
	}
	return false
}

// recordingNotifications captures created notifications.
type recordingNotifications struct {
	created []notification.Notification
}

func (n *recordingNotifications) Create(ctx context.Context, p notification.Notification) error {
	n.created = append(n.created, p)
	return nil
}

func (n *recordingNotifications) FindForGoal(ctx context.Context, goalID string) ([]notification.Notification, error) {
	return n.created, nil
}

func (n *recordingNotifications) MarkAsRead(ctx context.Context, id string) error { return nil }

// stubProvider returns a scripted completion.
type stubProvider struct {
	text  string
	err   error
	usage ai.TokenUsage
	calls int
}

func (p *stubProvider) ID() string { return "stub" }

func (p *stubProvider) Complete(ctx context.Context, req ai.CompletionRequest) (*ai.CompletionResponse, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &ai.CompletionResponse{Text: p.text, Usage: p.usage, Model: "stub-model"}, nil
}
