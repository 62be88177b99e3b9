package cli

import (
	"errors"
	"fmt"

	"github.com/pacerhq/pacer/pkg/application"
)

// CLIError wraps domain errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known application errors into CLIErrors with actionable
// hints. Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, application.ErrNotInitialized):
		return NewCLIError("workspace not initialized", "Run 'pacer init' first", err)
	case errors.Is(err, application.ErrNoGoal):
		return NewCLIError("no goal defined", "Run 'pacer goal set \"<description>\"' first", err)
	case errors.Is(err, application.ErrNoPlan):
		return NewCLIError("no plan found", "Run 'pacer plan generate' to create one", err)
	case errors.Is(err, application.ErrPlanAlreadyActive):
		return NewCLIError("plan already accepted", "Run 'pacer plan show' to see the active plan", err)
	case errors.Is(err, application.ErrPlanNotAccepted):
		return NewCLIError("plan not accepted yet", "Run 'pacer plan accept' first", err)
	case errors.Is(err, application.ErrAIDisabled):
		return NewCLIError("AI usage is disabled", "Set allow_ai: true in .pacer/policy.yaml or run 'pacer ai configure --allow'", err)
	case errors.Is(err, application.ErrTokenBudgetExceeded):
		return NewCLIError("AI token limit reached", "Raise token_limit in .pacer/policy.yaml", err)
	case errors.Is(err, application.ErrNoAdaptationNeeded):
		return NewCLIError("behavior is on track", "Nothing to adapt; run 'pacer evaluate' to see the signals", err)
	case errors.Is(err, application.ErrProposalPending):
		return NewCLIError("a proposal is already open", "Decide it with 'pacer adapt accept' or 'pacer adapt reject'", err)
	case errors.Is(err, application.ErrCooldownActive):
		return NewCLIError("similar proposal was rejected recently", "Wait out the cooldown or lower cooldown_days in .pacer/policy.yaml", err)
	case errors.Is(err, application.ErrProposalNotFound):
		return NewCLIError("proposal not found", "Run 'pacer adapt list' to see proposal ids", err)
	}

	return err
}
