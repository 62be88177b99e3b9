package behavior

import "fmt"

// Classification thresholds. The predicates below are independent: several
// may fire from the same metric set.
const (
	StrugglingFailures      = 3  // consecutive failures before struggling fires
	StrugglingHighFailures  = 5  // consecutive failures before severity becomes high
	CriticalCompletionRate  = 10 // completion rate (exclusive) below which critical fires
	AbandonmentRiskDays     = 7  // inactive days before abandonment risk fires
	AbandonmentCriticalDays = 14 // inactive days before abandonment severity becomes critical
)

// IsStruggling reports whether the consecutive-failure streak is long enough
// to flag the user as struggling.
func IsStruggling(consecutiveFailures int) bool {
	return consecutiveFailures >= StrugglingFailures
}

// IsCritical reports whether the completion rate has collapsed.
func IsCritical(completionRate int) bool {
	return completionRate < CriticalCompletionRate
}

// IsAbandonmentRisk reports whether the user has been inactive long enough to
// risk abandoning the goal. Monotonic in inactiveDays.
func IsAbandonmentRisk(inactiveDays int) bool {
	return inactiveDays >= AbandonmentRiskDays
}

// Classify applies every predicate to the metrics and returns the signals
// that fired. An empty slice means the behavior looks healthy.
func Classify(m Metrics) []Signal {
	var signals []Signal

	if IsStruggling(m.ConsecutiveFailures) {
		severity := SeverityMedium
		if m.ConsecutiveFailures >= StrugglingHighFailures {
			severity = SeverityHigh
		}
		signals = append(signals, Signal{
			Type:     SignalStruggling,
			Severity: severity,
			Message:  fmt.Sprintf("%d consecutive tasks missed", m.ConsecutiveFailures),
		})
	}

	if IsCritical(m.CompletionRate) {
		signals = append(signals, Signal{
			Type:     SignalCritical,
			Severity: SeverityCritical,
			Message:  fmt.Sprintf("completion rate dropped to %d%%", m.CompletionRate),
		})
	}

	if IsAbandonmentRisk(m.InactiveDays) {
		severity := SeverityHigh
		if m.InactiveDays >= AbandonmentCriticalDays {
			severity = SeverityCritical
		}
		message := fmt.Sprintf("no activity for %d days", m.InactiveDays)
		if m.InactiveDays == InactiveForever {
			message = "no activity recorded for this goal"
		}
		signals = append(signals, Signal{
			Type:     SignalAbandonmentRisk,
			Severity: severity,
			Message:  message,
		})
	}

	return signals
}
