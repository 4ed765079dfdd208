package models

import "strings"

// Severity labels as reported by scanners.
const (
	SeverityCritical = "CRITICAL"
	SeverityHigh     = "HIGH"
	SeverityMedium   = "MEDIUM"
	SeverityLow      = "LOW"
	SeverityUnknown  = "UNKNOWN"
)

// defaultScore is used when neither a numeric score nor a recognized
// severity label is available.
const defaultScore = 5.0

// severityScores is the single label-to-score fallback table shared by
// every mapping path. Both the vulnerability and misconfiguration mappers
// must use this table so the two paths cannot drift apart.
var severityScores = map[string]float64{
	SeverityCritical: 9.0,
	SeverityHigh:     7.5,
	SeverityMedium:   5.0,
	SeverityLow:      2.5,
}

// ScoreForSeverity returns the CVSS-equivalent score for a severity label,
// for findings where the scanner reported no usable numeric score.
func ScoreForSeverity(label string) float64 {
	if score, ok := severityScores[strings.ToUpper(strings.TrimSpace(label))]; ok {
		return score
	}
	return defaultScore
}
