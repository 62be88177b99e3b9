package behavior

// SignalType tags a behavioral observation.
type SignalType string

const (
	SignalHealthy         SignalType = "healthy"
	SignalStruggling      SignalType = "struggling"
	SignalCritical        SignalType = "critical"
	SignalAbandonmentRisk SignalType = "abandonment_risk"
)

// Severity ranks how urgent a signal is.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Signal is one typed, severity-ranked observation about recent behavior.
type Signal struct {
	Type     SignalType `json:"type"`
	Severity Severity   `json:"severity"`
	Message  string     `json:"message"`
}

// IsValid returns true if the type is a known signal type.
func (s SignalType) IsValid() bool {
	switch s {
	case SignalHealthy, SignalStruggling, SignalCritical, SignalAbandonmentRisk:
		return true
	default:
		return false
	}
}

// String returns the string representation of the signal type.
func (s SignalType) String() string {
	return string(s)
}
