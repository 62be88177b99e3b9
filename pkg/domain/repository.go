package domain

import (
	"github.com/pacerhq/pacer/pkg/domain/adaptation"
	"github.com/pacerhq/pacer/pkg/domain/plan"
)

// WorkspaceRepository handles the persistence of pacer artifacts in the
// .pacer/ directory. The behavioral engine itself never touches it; services
// load snapshots through it and pass them into the engine by value.
type WorkspaceRepository interface {
	Initialize() error
	IsInitialized() bool
	SaveGoal(goal *plan.Goal) error
	LoadGoal() (*plan.Goal, error)
	SavePlan(stored *plan.StoredPlan) error
	LoadPlan() (*plan.StoredPlan, error)
	SaveTasks(tasks []plan.TrackedTask) error
	LoadTasks() ([]plan.TrackedTask, error)
	SaveLastActivity(ts LastActivity) error
	LoadLastActivity() (*LastActivity, error)
	SaveProposals(records []adaptation.Record) error
	LoadProposals() ([]adaptation.Record, error)
	SavePolicy(cfg *PolicyConfig) error
	LoadPolicy() (*PolicyConfig, error)
	RecordEvent(event Event) error
	LoadEvents() ([]Event, error)
	UpdateUsage(stats UsageStats) error
	LoadUsage() (*UsageStats, error)
}

// PolicyConfig is the serialized representation of policy.yaml.
type PolicyConfig struct {
	AllowAI            bool `yaml:"allow_ai"`
	TokenLimit         int  `yaml:"token_limit"`          // max tokens spent across providers, 0 = unlimited
	CooldownDays       int  `yaml:"cooldown_days"`        // rejected-proposal cooldown per goal and type
	AnalysisWindowDays int  `yaml:"analysis_window_days"` // completion-rate window for evaluations
}

// DefaultPolicy returns the policy written by `pacer init`.
func DefaultPolicy() *PolicyConfig {
	return &PolicyConfig{
		AllowAI:            true,
		CooldownDays:       7,
		AnalysisWindowDays: 30,
	}
}
