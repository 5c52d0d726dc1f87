package engine

import "strings"

// Severity is the domain severity of a violation
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeverityPass    Severity = "pass"
)

// SeverityFromImpact maps an engine impact to a severity.
// Unrecognized or missing impacts are treated as warnings.
func SeverityFromImpact(impact string) Severity {
	switch strings.ToLower(strings.TrimSpace(impact)) {
	case "critical", "serious":
		return SeverityError
	case "moderate":
		return SeverityWarning
	case "minor":
		return SeverityInfo
	default:
		return SeverityWarning
	}
}

// ImpactForSeverity is the impact recorded for custom rule violations
func ImpactForSeverity(s Severity) string {
	if s == SeverityError {
		return "serious"
	}
	return "moderate"
}

// Rank orders severities for grouping; higher is worse
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// Label returns the Korean label used in reports
func (s Severity) Label() string {
	switch s {
	case SeverityError:
		return "오류"
	case SeverityWarning:
		return "경고"
	case SeverityInfo:
		return "정보"
	case SeverityPass:
		return "통과"
	default:
		return string(s)
	}
}
