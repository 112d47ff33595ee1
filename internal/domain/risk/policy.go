package risk

// Alert severities. Low exists in the schema for completeness but the policy
// never produces it.
const (
	SeverityLow    = "Low"
	SeverityMedium = "Medium"
	SeverityHigh   = "High"
)

// Score thresholds above which an alert is raised. Strictly greater-than:
// a score of exactly 70 stays Medium, exactly 40 raises nothing.
const (
	highAlertThreshold     = 70
	moderateAlertThreshold = 40
)

const (
	highAlertMessage     = "High risk detected. Please consult your doctor immediately."
	moderateAlertMessage = "Moderate risk detected. Monitor your condition closely."
)

// AlertDraft is an alert the policy wants raised for a score.
type AlertDraft struct {
	Severity string
	Message  string
}

// EvaluateScore maps a risk score to at most one alert. Pure and total over
// the score range.
func EvaluateScore(score int) (AlertDraft, bool) {
	switch {
	case score > highAlertThreshold:
		return AlertDraft{Severity: SeverityHigh, Message: highAlertMessage}, true
	case score > moderateAlertThreshold:
		return AlertDraft{Severity: SeverityMedium, Message: moderateAlertMessage}, true
	default:
		return AlertDraft{}, false
	}
}
