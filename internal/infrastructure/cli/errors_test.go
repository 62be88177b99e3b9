package cli

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pacerhq/pacer/pkg/application"
)

func TestMapErrorNil(t *testing.T) {
	if got := MapError(nil); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestMapErrorUnknownPassthrough(t *testing.T) {
	err := errors.New("some storage failure")
	if got := MapError(err); got != err {
		t.Errorf("expected passthrough, got %v", got)
	}
}

func TestMapErrorHints(t *testing.T) {
	tests := []struct {
		err  error
		hint string
	}{
		{application.ErrNotInitialized, "pacer init"},
		{application.ErrNoGoal, "pacer goal set"},
		{application.ErrNoPlan, "pacer plan generate"},
		{application.ErrPlanAlreadyActive, "pacer plan show"},
		{application.ErrPlanNotAccepted, "pacer plan accept"},
		{application.ErrAIDisabled, "allow_ai"},
		{application.ErrTokenBudgetExceeded, "token_limit"},
		{application.ErrNoAdaptationNeeded, "pacer evaluate"},
		{application.ErrProposalPending, "pacer adapt accept"},
		{application.ErrCooldownActive, "cooldown_days"},
		{application.ErrProposalNotFound, "pacer adapt list"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			got := MapError(tt.err)

			var cliErr *CLIError
			if !errors.As(got, &cliErr) {
				t.Fatalf("expected CLIError, got %T", got)
			}
			if !strings.Contains(cliErr.Hint, tt.hint) {
				t.Errorf("hint %q does not mention %q", cliErr.Hint, tt.hint)
			}
			if !errors.Is(got, tt.err) {
				t.Error("mapped error lost the original sentinel")
			}
		})
	}
}

func TestMapErrorWrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("propose: %w", application.ErrCooldownActive)

	got := MapError(wrapped)

	var cliErr *CLIError
	if !errors.As(got, &cliErr) {
		t.Fatalf("expected CLIError, got %T", got)
	}
	if cliErr.ExitCode != 1 {
		t.Errorf("expected exit code 1, got %d", cliErr.ExitCode)
	}
}

func TestCLIErrorError(t *testing.T) {
	withCause := NewCLIError("it broke", "fix it", errors.New("cause"))
	if !strings.Contains(withCause.Error(), "cause") {
		t.Errorf("expected cause in message, got %q", withCause.Error())
	}

	withoutCause := NewCLIError("it broke", "fix it", nil)
	if withoutCause.Error() != "it broke" {
		t.Errorf("unexpected message %q", withoutCause.Error())
	}
}
