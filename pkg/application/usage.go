package application

import (
	"fmt"
	"time"

	"github.com/pacerhq/pacer/pkg/domain"
	"github.com/pacerhq/pacer/pkg/domain/ai"
)

// checkAIPolicy gates every completion call on policy.yaml: AI must be
// allowed and the token budget must not be spent. A missing usage file
// counts as zero spend.
func checkAIPolicy(repo domain.WorkspaceRepository) (*domain.PolicyConfig, error) {
	cfg, err := repo.LoadPolicy()
	if err != nil {
		return nil, fmt.Errorf("load policy: %w", err)
	}
	if !cfg.AllowAI {
		return nil, ErrAIDisabled
	}

	if cfg.TokenLimit > 0 {
		stats, _ := repo.LoadUsage()
		if stats != nil && stats.TotalTokens() >= cfg.TokenLimit {
			return nil, fmt.Errorf("%w (%d/%d tokens)", ErrTokenBudgetExceeded, stats.TotalTokens(), cfg.TokenLimit)
		}
	}

	return cfg, nil
}

// recordTokenSpend folds one completion's token usage into the workspace
// usage stats. Failures here never fail the calling operation.
func recordTokenSpend(repo domain.WorkspaceRepository, providerID string, usage ai.TokenUsage, now time.Time) {
	stats, _ := repo.LoadUsage()
	if stats == nil {
		stats = &domain.UsageStats{}
	}
	if stats.ProviderStats == nil {
		stats.ProviderStats = make(map[string]int)
	}
	stats.ProviderStats[providerID+"-tokens"] += usage.InputTokens + usage.OutputTokens
	stats.TotalCommands++
	stats.LastCommandAt = now
	_ = repo.UpdateUsage(*stats)
}

// recordEvaluation bumps the evaluation counter in the usage stats.
func recordEvaluation(repo domain.WorkspaceRepository, now time.Time) {
	stats, _ := repo.LoadUsage()
	if stats == nil {
		stats = &domain.UsageStats{}
	}
	stats.Evaluations++
	stats.TotalCommands++
	stats.LastCommandAt = now
	_ = repo.UpdateUsage(*stats)
}
