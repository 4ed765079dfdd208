package engine

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Killmanga-AI/reportgc/internal/models"
)

// SARIF 2.1.0 schema, trimmed to the fields the engine consumes. Rule
// property bags are open-ended, so they stay map[string]any and are probed
// key by key.

type sarifLog struct {
	Runs []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Rules []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string         `json:"id"`
	ShortDescription sarifMessage   `json:"shortDescription"`
	Properties       map[string]any `json:"properties"`
}

type sarifResult struct {
	RuleID  string       `json:"ruleId"`
	Level   string       `json:"level"`
	Message sarifMessage `json:"message"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

// parseSARIF maps a SARIF payload to findings. For each run, results are
// resolved against the run's rule index; a result whose rule is missing
// still yields a finding built from defaults.
func (e *Engine) parseSARIF(raw []byte) []models.Finding {
	var log sarifLog
	if err := json.Unmarshal(raw, &log); err != nil {
		e.logger.Warn("unrecognized sarif payload shape, reporting zero findings", "error", err)
		return nil
	}

	var findings []models.Finding
	for _, run := range log.Runs {
		rules := make(map[string]sarifRule, len(run.Tool.Driver.Rules))
		for _, rule := range run.Tool.Driver.Rules {
			rules[rule.ID] = rule
		}

		for _, result := range run.Results {
			findings = append(findings, mapSARIFResult(result, rules))
		}
	}

	return findings
}

// mapSARIFResult converts one SARIF result to a finding using its rule's
// property bag where populated, and level-derived defaults otherwise.
func mapSARIFResult(result sarifResult, rules map[string]sarifRule) models.Finding {
	ruleID := stringOr(result.RuleID, "N/A")
	rule := rules[ruleID]
	props := rule.Properties

	severity := stringProp(props, "severity")
	if severity == "" {
		severity = severityForLevel(result.Level)
	}

	score := models.ScoreForSeverity(severity)
	if raw, ok := props["cvssV3_score"]; ok {
		score = safeFloat(raw, score)
	}

	return models.Finding{
		ID:               ruleID,
		Title:            stringOr(rule.ShortDescription.Text, "Security Issue"),
		Severity:         severity,
		CVSSScore:        score,
		CisaKEV:          propsMentionKEV(props),
		FixedVersion:     stringProp(props, "fixedVersion"),
		PkgName:          stringOr(stringProp(props, "pkgName"), "system"),
		InstalledVersion: stringOr(stringProp(props, "installedVersion"), "N/A"),
		Description:      result.Message.Text,
	}
}

// severityForLevel maps a SARIF reporting level to a severity label.
func severityForLevel(level string) string {
	switch strings.ToLower(level) {
	case "error":
		return models.SeverityHigh
	case "warning":
		return models.SeverityMedium
	case "note":
		return models.SeverityLow
	default:
		return models.SeverityUnknown
	}
}

// propsMentionKEV is a best-effort known-exploited check on the stringified
// property bag.
func propsMentionKEV(props map[string]any) bool {
	if len(props) == 0 {
		return false
	}
	return strings.Contains(strings.ToLower(fmt.Sprint(props)), "cisa")
}

// stringProp returns a string-typed property, or "" when the key is absent
// or holds a non-string value.
func stringProp(props map[string]any, key string) string {
	if value, ok := props[key].(string); ok {
		return value
	}
	return ""
}
