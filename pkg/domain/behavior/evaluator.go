package behavior

import "time"

// Evaluation is the complete outcome of one behavioral evaluation.
// It is an ephemeral value: the caller decides whether to log it, notify on
// it, or feed it into the adaptation pipeline.
type Evaluation struct {
	Signals                 []Signal  `json:"signals"`
	Metrics                 Metrics   `json:"metrics"`
	ShouldTriggerAdaptation bool      `json:"should_trigger_adaptation"`
	EvaluatedAt             time.Time `json:"evaluated_at"`
}

// HasSignal reports whether a signal of the given type fired.
func (e Evaluation) HasSignal(t SignalType) bool {
	for _, s := range e.Signals {
		if s.Type == t {
			return true
		}
	}
	return false
}

// Evaluate runs the full engine: metrics, classification, and the adaptation
// trigger decision. Pure and deterministic; identical input yields identical
// output, and no clock is consulted beyond input.EvaluationDate.
//
// Abandonment risk alone never triggers an adaptation proposal. It is flagged
// for the caller to handle separately (a re-engagement nudge, not a plan
// change).
func Evaluate(input EvaluationInput) Evaluation {
	metrics := ComputeMetrics(input)
	signals := Classify(metrics)

	if len(signals) == 0 {
		signals = []Signal{{
			Type:     SignalHealthy,
			Severity: SeverityNone,
			Message:  "behavior is on track",
		}}
	}

	trigger := false
	for _, s := range signals {
		if s.Type == SignalStruggling || s.Type == SignalCritical {
			trigger = true
			break
		}
	}

	return Evaluation{
		Signals:                 signals,
		Metrics:                 metrics,
		ShouldTriggerAdaptation: trigger,
		EvaluatedAt:             input.EvaluationDate,
	}
}
