package engine

import (
	"encoding/json"
	"strings"

	"github.com/Killmanga-AI/reportgc/internal/models"
)

// Trivy's native JSON schema, trimmed to the fields the engine consumes.
// Score fields are decoded as `any` so that a scanner emitting a string
// where a number belongs degrades to the documented default instead of
// failing the whole payload.

type trivyReport struct {
	Results []trivyResult `json:"Results"`
}

type trivyResult struct {
	Vulnerabilities   []trivyVulnerability    `json:"Vulnerabilities"`
	Misconfigurations []trivyMisconfiguration `json:"Misconfigurations"`
}

type trivyVulnerability struct {
	VulnerabilityID    string               `json:"VulnerabilityID"`
	Title              string               `json:"Title"`
	Severity           string               `json:"Severity"`
	CVSS               map[string]trivyCVSS `json:"CVSS"`
	CisaKnownExploited bool                 `json:"CisaKnownExploited"`
	FixedVersion       string               `json:"FixedVersion"`
	PkgName            string               `json:"PkgName"`
	InstalledVersion   string               `json:"InstalledVersion"`
	Description        string               `json:"Description"`
	PrimaryURL         string               `json:"PrimaryURL"`
	References         []string             `json:"References"`
}

type trivyCVSS struct {
	V3Score any `json:"V3Score"`
	V2Score any `json:"V2Score"`
}

type trivyMisconfiguration struct {
	ID          string `json:"ID"`
	Type        string `json:"Type"`
	Title       string `json:"Title"`
	Severity    string `json:"Severity"`
	Description string `json:"Description"`
}

// cvssSources is the fixed preference order for CVSS score extraction.
var cvssSources = []string{"nvd", "redhat", "ghsa", "vendor"}

// parseTrivy maps a native Trivy payload to findings. Missing containers at
// any level yield zero findings for that scope, never an error.
func (e *Engine) parseTrivy(raw []byte) []models.Finding {
	var report trivyReport
	if err := json.Unmarshal(raw, &report); err != nil {
		e.logger.Warn("unrecognized trivy payload shape, reporting zero findings", "error", err)
		return nil
	}

	var findings []models.Finding
	for _, result := range report.Results {
		for _, vuln := range result.Vulnerabilities {
			findings = append(findings, mapVulnerability(vuln))
		}
		for _, misconf := range result.Misconfigurations {
			findings = append(findings, mapMisconfiguration(misconf))
		}
	}

	return findings
}

// mapVulnerability converts one Trivy vulnerability entry to a finding.
func mapVulnerability(vuln trivyVulnerability) models.Finding {
	return models.Finding{
		ID:               stringOr(vuln.VulnerabilityID, "N/A"),
		Title:            stringOr(vuln.Title, "Untitled Vulnerability"),
		Severity:         stringOr(vuln.Severity, models.SeverityUnknown),
		CVSSScore:        extractCVSS(vuln),
		CisaKEV:          detectKEV(vuln),
		FixedVersion:     vuln.FixedVersion,
		PkgName:          stringOr(vuln.PkgName, "system"),
		InstalledVersion: stringOr(vuln.InstalledVersion, "N/A"),
		Description:      vuln.Description,
	}
}

// mapMisconfiguration converts one Trivy misconfiguration entry to a
// finding. Misconfigurations carry no CVSS of their own, so the score comes
// from the shared severity table; there is no installed-package concept, so
// the package fields are synthesized from the misconfiguration type.
func mapMisconfiguration(misconf trivyMisconfiguration) models.Finding {
	severity := stringOr(misconf.Severity, models.SeverityMedium)

	return models.Finding{
		ID:               stringOr(misconf.ID, "MISCONFIG"),
		Title:            stringOr(misconf.Title, "Configuration Issue"),
		Severity:         severity,
		CVSSScore:        models.ScoreForSeverity(severity),
		CisaKEV:          false,
		FixedVersion:     "",
		PkgName:          stringOr(misconf.Type, "config"),
		InstalledVersion: "N/A",
		Description:      misconf.Description,
	}
}

// extractCVSS resolves the numeric score for a vulnerability. Sources are
// consulted in the fixed preference order, a v3 score wins over a v2 score
// within one source, and the first usable source decides: an unparseable
// score there becomes the default rather than falling through to the next
// source. With no usable source the severity label decides.
func extractCVSS(vuln trivyVulnerability) float64 {
	for _, source := range cvssSources {
		entry, ok := vuln.CVSS[source]
		if !ok {
			continue
		}
		if present(entry.V3Score) {
			return safeFloat(entry.V3Score, defaultCVSS)
		}
		if present(entry.V2Score) {
			return safeFloat(entry.V2Score, defaultCVSS)
		}
	}

	return models.ScoreForSeverity(vuln.Severity)
}

const defaultCVSS = 5.0

// detectKEV reports whether a vulnerability is in the CISA known-exploited
// catalog: either the explicit flag, or reference URLs mentioning both the
// advisory domain and the catalog. The substring check is the documented
// behavior, brittle as it is.
func detectKEV(vuln trivyVulnerability) bool {
	if vuln.CisaKnownExploited {
		return true
	}

	refs := strings.ToLower(strings.Join(vuln.References, " ") + " " + vuln.PrimaryURL)
	return strings.Contains(refs, "cisa.gov") && strings.Contains(refs, "known")
}
