// Package models contains the data structures for reportgc findings and
// execution-plan reports.
package models

import "strings"

// Finding represents one normalized security issue extracted from scanner
// output. It is a plain immutable value: the risk level and effort estimate
// are derived from its fields on demand, never stored.
type Finding struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Severity         string  `json:"severity"`
	CVSSScore        float64 `json:"cvss_score"`
	CisaKEV          bool    `json:"cisa_kev"`
	FixedVersion     string  `json:"fixed_version"`
	PkgName          string  `json:"pkg_name"`
	InstalledVersion string  `json:"installed_version"`
	Description      string  `json:"description"`
}

// foundationalPackages are system packages where an unpatched vulnerability
// implies an architectural workaround rather than a version bump.
var foundationalPackages = map[string]bool{
	"kernel":  true,
	"glibc":   true,
	"openssl": true,
}

// RiskLevel classifies the finding. Boundary scores belong to the stricter
// tier (exactly 9.0 is a full table scan), and a CISA KEV listing forces
// FULL_TABLE_SCAN regardless of score.
func (f Finding) RiskLevel() RiskLevel {
	switch {
	case f.CisaKEV || f.CVSSScore >= 9.0:
		return RiskFullTableScan
	case f.CVSSScore >= 7.0:
		return RiskIndexRangeScan
	case f.CVSSScore >= 4.0:
		return RiskNestedLoop
	default:
		return RiskSequentialRead
	}
}

// HasFix reports whether a patched version is known.
func (f Finding) HasFix() bool {
	return f.FixedVersion != ""
}

// FixEffortHours is a rough remediation effort heuristic. Patch
// availability is the dominant driver: without a fixed version the estimate
// covers a workaround, and foundational packages carry the widest blast
// radius.
func (f Finding) FixEffortHours() int {
	if !f.HasFix() {
		if foundationalPackages[strings.ToLower(f.PkgName)] {
			return 24
		}
		return 8
	}
	if f.CVSSScore >= 9.0 {
		return 6
	}
	return 4
}

// Item returns the serialized form of the finding as carried in report plan
// buckets, with the derived risk level and effort estimate alongside the
// base fields.
func (f Finding) Item() PlanItem {
	return PlanItem{
		Finding:        f,
		RiskLevel:      f.RiskLevel(),
		FixEffortHours: f.FixEffortHours(),
	}
}
