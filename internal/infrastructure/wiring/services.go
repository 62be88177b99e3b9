package wiring

import (
	"fmt"

	"github.com/pacerhq/pacer/pkg/ai"
	"github.com/pacerhq/pacer/pkg/application"
	domainai "github.com/pacerhq/pacer/pkg/domain/ai"
)

// AppServices exposes the application layer services wired together with a workspace.
type AppServices struct {
	Workspace  *Workspace
	Evaluation *application.EvaluationService
	Plan       *application.PlanService
	Adaptation *application.AdaptationService
	Audit      *application.AuditService
	Provider   domainai.Provider
}

// BuildAppServices constructs the workbench of services and AI provider wiring for a repo root.
func BuildAppServices(root string) (*AppServices, error) {
	workspace := NewWorkspace(root)
	provider, err := LoadAIProvider(root)
	var loadErr error
	if err != nil {
		loadErr = fmt.Errorf("AI provider config fallback: %w", err)
		fallback, fallbackErr := ai.GetDefaultProvider("ollama", "llama3")
		if fallbackErr != nil {
			return nil, fmt.Errorf("fallback AI provider failed: %w", fallbackErr)
		}
		provider = ai.NewResilientProvider(fallback)
	}

	evalSvc := application.NewEvaluationService(workspace.Repo, workspace.Audit, workspace.Notifications)
	planSvc := application.NewPlanService(workspace.Repo, provider, workspace.Audit)
	adaptSvc := application.NewAdaptationService(workspace.Repo, provider, workspace.Audit, workspace.Notifications, evalSvc)

	services := &AppServices{
		Workspace:  workspace,
		Evaluation: evalSvc,
		Plan:       planSvc,
		Adaptation: adaptSvc,
		Audit:      workspace.Audit,
		Provider:   provider,
	}

	return services, loadErr
}
