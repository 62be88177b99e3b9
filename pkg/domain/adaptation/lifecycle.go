package adaptation

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// State constants for statekit integration.
// These must remain untyped string constants for statekit.StateID
// compatibility. Values are kept in sync with the Status constants.
const (
	StateProposed = "proposed"
	StateAccepted = "accepted"
	StateRejected = "rejected"
	StateApplied  = "applied"
)

func init() {
	stateMap := map[string]Status{
		StateProposed: StatusProposed,
		StateAccepted: StatusAccepted,
		StateRejected: StatusRejected,
		StateApplied:  StatusApplied,
	}
	for fsmState, status := range stateMap {
		if fsmState != string(status) {
			panic(fmt.Sprintf("FSM state %q does not match Status %q - constants are out of sync", fsmState, status))
		}
	}
}

// LifecycleContext carries the proposal identity and an optional guard that
// lets the caller veto transitions (for example, refusing an accept while
// another accept for the same goal is in flight).
type LifecycleContext struct {
	ProposalID string
	Guard      func(proposalID string, event string) bool
}

// Lifecycle wraps the proposal state machine.
type Lifecycle struct {
	interpreter *statekit.Interpreter[LifecycleContext]
}

// NewLifecycle builds the machine starting from the given status. A nil
// guard allows every structurally valid transition.
func NewLifecycle(initialState string, proposalID string, guard func(string, string) bool) (*Lifecycle, error) {
	if guard == nil {
		guard = func(string, string) bool { return true }
	}

	builder := statekit.NewMachine[LifecycleContext]("adaptation-lifecycle").
		WithInitial(statekit.StateID(initialState)).
		WithContext(LifecycleContext{
			ProposalID: proposalID,
			Guard:      guard,
		}).
		WithGuard("callerGuard", func(ctx LifecycleContext, e statekit.Event) bool {
			return ctx.Guard(ctx.ProposalID, string(e.Type))
		})

	builder.State(StateProposed).
		On("accept").Target(StateAccepted).Guard("callerGuard").
		On("reject").Target(StateRejected).
		Done()

	builder.State(StateAccepted).
		On("apply").Target(StateApplied).Guard("callerGuard").
		Done()

	// Rejected and applied are terminal.
	builder.State(StateRejected).Done()
	builder.State(StateApplied).Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build state machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &Lifecycle{interpreter: interpreter}, nil
}

// Transition attempts to move the proposal with the given event.
func (l *Lifecycle) Transition(event string) error {
	before := l.Current()
	l.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	after := l.Current()

	if before != after {
		return nil
	}
	return fmt.Errorf("the action '%s' is not allowed while the proposal is in the '%s' state", event, before)
}

// Current returns the current state name.
func (l *Lifecycle) Current() string {
	return string(l.interpreter.State().Value)
}

// CurrentStatus returns the current state as a Status value object.
func (l *Lifecycle) CurrentStatus() Status {
	return Status(l.Current())
}

// CanTransition checks if the given event is valid for the current state.
func (l *Lifecycle) CanTransition(event string) bool {
	return l.CurrentStatus().CanTransitionWith(event)
}

// IsFinal returns true if no further transition is possible.
func (l *Lifecycle) IsFinal() bool {
	return l.CurrentStatus().IsFinal()
}
