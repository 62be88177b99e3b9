package application

import "errors"

// Sentinel errors for expected control-flow outcomes. The CLI matches on
// these to print guidance instead of a stack of wrapped causes.
var (
	ErrNotInitialized      = errors.New("workspace not initialized, run 'pacer init' first")
	ErrNoGoal              = errors.New("no goal defined, run 'pacer goal set' first")
	ErrNoPlan              = errors.New("no plan found, run 'pacer plan generate' first")
	ErrPlanAlreadyActive   = errors.New("the plan is already accepted")
	ErrPlanNotAccepted     = errors.New("the plan has not been accepted yet, run 'pacer plan accept' first")
	ErrAIDisabled          = errors.New("AI usage is disabled by workspace policy")
	ErrTokenBudgetExceeded = errors.New("AI token limit reached, increase token_limit in policy.yaml")
	ErrNoAdaptationNeeded  = errors.New("behavior is on track, no adaptation needed")
	ErrProposalPending     = errors.New("a proposal is already awaiting a decision")
	ErrCooldownActive      = errors.New("a similar proposal was rejected recently, waiting out the cooldown")
	ErrProposalNotFound    = errors.New("no proposal with that id")
)
