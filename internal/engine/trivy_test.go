package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Killmanga-AI/reportgc/internal/models"
)

func TestExtractCVSS(t *testing.T) {
	tests := []struct {
		name string
		vuln trivyVulnerability
		want float64
	}{
		{
			name: "nvd wins over vendor",
			vuln: trivyVulnerability{CVSS: map[string]trivyCVSS{
				"vendor": {V3Score: 9.9},
				"nvd":    {V3Score: 7.2},
			}},
			want: 7.2,
		},
		{
			name: "redhat wins over ghsa",
			vuln: trivyVulnerability{CVSS: map[string]trivyCVSS{
				"ghsa":   {V3Score: 9.9},
				"redhat": {V3Score: 6.1},
			}},
			want: 6.1,
		},
		{
			name: "v3 preferred over v2 within a source",
			vuln: trivyVulnerability{CVSS: map[string]trivyCVSS{
				"nvd": {V3Score: 8.8, V2Score: 6.8},
			}},
			want: 8.8,
		},
		{
			name: "v2 used when v3 absent",
			vuln: trivyVulnerability{CVSS: map[string]trivyCVSS{
				"nvd": {V2Score: 6.8},
			}},
			want: 6.8,
		},
		{
			name: "zero v3 falls through to v2",
			vuln: trivyVulnerability{CVSS: map[string]trivyCVSS{
				"nvd": {V3Score: 0.0, V2Score: 6.8},
			}},
			want: 6.8,
		},
		{
			name: "empty source skipped for the next one",
			vuln: trivyVulnerability{CVSS: map[string]trivyCVSS{
				"nvd":    {},
				"redhat": {V3Score: 5.5},
			}},
			want: 5.5,
		},
		{
			name: "string score coerced",
			vuln: trivyVulnerability{CVSS: map[string]trivyCVSS{
				"nvd": {V3Score: "7.8"},
			}},
			want: 7.8,
		},
		{
			name: "unparseable score becomes the default, not the next source",
			vuln: trivyVulnerability{
				Severity: "CRITICAL",
				CVSS: map[string]trivyCVSS{
					"nvd":    {V3Score: "not-a-number"},
					"redhat": {V3Score: 9.9},
				},
			},
			want: 5.0,
		},
		{
			name: "no scores falls back to severity table",
			vuln: trivyVulnerability{Severity: "CRITICAL"},
			want: 9.0,
		},
		{
			name: "no scores unknown severity",
			vuln: trivyVulnerability{Severity: "WEIRD"},
			want: 5.0,
		},
		{
			name: "no scores no severity",
			vuln: trivyVulnerability{},
			want: 5.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, extractCVSS(tt.vuln), 0.001)
		})
	}
}

func TestDetectKEV(t *testing.T) {
	tests := []struct {
		name string
		vuln trivyVulnerability
		want bool
	}{
		{
			name: "explicit flag",
			vuln: trivyVulnerability{CisaKnownExploited: true},
			want: true,
		},
		{
			name: "references mention catalog",
			vuln: trivyVulnerability{References: []string{
				"https://www.cisa.gov/known-exploited-vulnerabilities-catalog",
			}},
			want: true,
		},
		{
			name: "case-insensitive match",
			vuln: trivyVulnerability{PrimaryURL: "https://WWW.CISA.GOV/KNOWN-exploited"},
			want: true,
		},
		{
			name: "split across reference fields",
			vuln: trivyVulnerability{
				References: []string{"https://cisa.gov/advisories/aa22-011a"},
				PrimaryURL: "https://example.com/known-issues",
			},
			want: true,
		},
		{
			name: "cisa without known is not enough",
			vuln: trivyVulnerability{References: []string{"https://cisa.gov/somewhere"}},
			want: false,
		},
		{
			name: "known without cisa is not enough",
			vuln: trivyVulnerability{References: []string{"https://example.com/known-exploited"}},
			want: false,
		},
		{
			name: "no references",
			vuln: trivyVulnerability{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectKEV(tt.vuln))
		})
	}
}

func TestMapVulnerabilityDefaults(t *testing.T) {
	f := mapVulnerability(trivyVulnerability{})

	assert.Equal(t, "N/A", f.ID)
	assert.Equal(t, "Untitled Vulnerability", f.Title)
	assert.Equal(t, models.SeverityUnknown, f.Severity)
	assert.InDelta(t, 5.0, f.CVSSScore, 0.001)
	assert.False(t, f.CisaKEV)
	assert.Empty(t, f.FixedVersion)
	assert.Equal(t, "system", f.PkgName)
	assert.Equal(t, "N/A", f.InstalledVersion)
}

func TestMapMisconfiguration(t *testing.T) {
	t.Run("populated entry", func(t *testing.T) {
		f := mapMisconfiguration(trivyMisconfiguration{
			ID:          "AVD-AWS-0086",
			Type:        "Terraform Security Check",
			Title:       "S3 bucket publicly readable",
			Severity:    "CRITICAL",
			Description: "Bucket ACL allows public read.",
		})

		assert.Equal(t, "AVD-AWS-0086", f.ID)
		assert.Equal(t, "CRITICAL", f.Severity)
		// Shared severity table: the misconfiguration path must not use
		// its own score mapping.
		assert.InDelta(t, 9.0, f.CVSSScore, 0.001)
		assert.False(t, f.CisaKEV)
		assert.Empty(t, f.FixedVersion)
		assert.Equal(t, "Terraform Security Check", f.PkgName)
		assert.Equal(t, "N/A", f.InstalledVersion)
	})

	t.Run("empty entry gets defaults", func(t *testing.T) {
		f := mapMisconfiguration(trivyMisconfiguration{})

		assert.Equal(t, "MISCONFIG", f.ID)
		assert.Equal(t, "Configuration Issue", f.Title)
		assert.Equal(t, models.SeverityMedium, f.Severity)
		assert.InDelta(t, 5.0, f.CVSSScore, 0.001)
		assert.Equal(t, "config", f.PkgName)
	})
}

func TestParseTrivyMissingContainers(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "no results key", raw: `{}`, want: 0},
		{name: "null results", raw: `{"Results": null}`, want: 0},
		{name: "result without vulnerability lists", raw: `{"Results": [{"Target": "app"}]}`, want: 0},
		{name: "null vulnerabilities", raw: `{"Results": [{"Vulnerabilities": null}]}`, want: 0},
		{
			name: "vulnerabilities and misconfigurations both mapped",
			raw: `{"Results": [
				{"Vulnerabilities": [{"VulnerabilityID": "CVE-1"}, {"VulnerabilityID": "CVE-2"}]},
				{"Misconfigurations": [{"ID": "MIS-1"}]}
			]}`,
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := newTestEngine().parseTrivy([]byte(tt.raw))
			assert.Len(t, findings, tt.want)
		})
	}
}

func TestParseTrivyPreservesOrder(t *testing.T) {
	raw := []byte(`{"Results": [
		{"Vulnerabilities": [{"VulnerabilityID": "CVE-A"}], "Misconfigurations": [{"ID": "MIS-A"}]},
		{"Vulnerabilities": [{"VulnerabilityID": "CVE-B"}]}
	]}`)

	findings := newTestEngine().parseTrivy(raw)
	require.Len(t, findings, 3)
	assert.Equal(t, "CVE-A", findings[0].ID)
	assert.Equal(t, "MIS-A", findings[1].ID)
	assert.Equal(t, "CVE-B", findings[2].ID)
}
