package adaptation

// Status is the lifecycle state of a proposal. Proposed is the only state the
// engine ever produces; every later transition requires an explicit user or
// collaborator action, and nothing bypasses proposed.
type Status string

const (
	StatusProposed Status = "proposed"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusApplied  Status = "applied"
)

// validTransitions maps current status -> event -> target status.
var validTransitions = map[Status]map[string]Status{
	StatusProposed: {
		"accept": StatusAccepted,
		"reject": StatusRejected,
	},
	StatusAccepted: {
		"apply": StatusApplied,
	},
}

// AllStatuses returns every valid lifecycle status.
func AllStatuses() []Status {
	return []Status{StatusProposed, StatusAccepted, StatusRejected, StatusApplied}
}

// IsValid returns true if the status is a known lifecycle status.
func (s Status) IsValid() bool {
	switch s {
	case StatusProposed, StatusAccepted, StatusRejected, StatusApplied:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsFinal returns true once no further transition is possible.
func (s Status) IsFinal() bool {
	return len(validTransitions[s]) == 0
}

// CanTransitionWith returns true if the given event can trigger a transition
// from this status.
func (s Status) CanTransitionWith(event string) bool {
	_, ok := validTransitions[s][event]
	return ok
}

// ValidEvents returns the events accepted in the current status.
func (s Status) ValidEvents() []string {
	events := make([]string, 0, len(validTransitions[s]))
	for e := range validTransitions[s] {
		events = append(events, e)
	}
	return events
}
