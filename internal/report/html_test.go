package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Killmanga-AI/reportgc/internal/models"
	"github.com/Killmanga-AI/reportgc/pkg/logger"
)

func TestHTMLFormatGenerate(t *testing.T) {
	format, err := GetFormat("html", logger.NewMockLogger())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, format.Generate(sampleReport(), path))

	content, err := os.ReadFile(path) // #nosec G304 - test temp dir
	require.NoError(t, err)
	html := string(content)

	assert.Contains(t, html, "20260829-101500")
	assert.Contains(t, html, ">B<")
	assert.Contains(t, html, "GOOD")
	assert.Contains(t, html, "#6c757d")
	assert.Contains(t, html, "CVE-2024-1234")
	assert.Contains(t, html, "Heap overflow in libfoo")
	assert.Contains(t, html, "Critical Priority")
	assert.Contains(t, html, "Low Priority")
	assert.Contains(t, html, "No findings in this tier.")
}

func TestHTMLFormatEscapesContent(t *testing.T) {
	rep := sampleReport()
	items := rep.ExecutionPlan.FullTableScans.Items
	items[0].Title = `<script>alert("x")</script>`
	rep.ExecutionPlan.FullTableScans.Items = items

	format, err := GetFormat("html", logger.NewMockLogger())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, format.Generate(rep, path))

	content, err := os.ReadFile(path) // #nosec G304 - test temp dir
	require.NoError(t, err)
	assert.NotContains(t, string(content), `<script>alert`)
}

func TestStyleForGrade(t *testing.T) {
	assert.Equal(t, "EXCELLENT", styleForGrade("A").Label)
	assert.Equal(t, "GOOD", styleForGrade("B").Label)
	assert.Equal(t, "FAIR", styleForGrade("C").Label)
	assert.Equal(t, "POOR", styleForGrade("D").Label)
	assert.Equal(t, "CRITICAL", styleForGrade("F").Label)
	assert.Equal(t, "UNKNOWN", styleForGrade("Z").Label)
}

func TestJSONFormatGenerate(t *testing.T) {
	format, err := GetFormat("json", logger.NewMockLogger())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, format.Generate(sampleReport(), path))

	content, err := os.ReadFile(path) // #nosec G304 - test temp dir
	require.NoError(t, err)

	var decoded models.Report
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Equal(t, *sampleReport(), decoded)
}

func TestTerminalSummary(t *testing.T) {
	out := Summary(sampleReport())

	assert.Contains(t, out, "GRADE B")
	assert.Contains(t, out, "2 findings")
	assert.Contains(t, out, "critical")
	assert.Contains(t, out, "1 known-exploited finding(s)")
	assert.Contains(t, out, "6h committed remediation effort")
}

func TestTerminalSummaryNoKEV(t *testing.T) {
	rep := sampleReport()
	rep.Summary.CisaKEVCount = 0

	out := Summary(rep)
	assert.NotContains(t, out, "known-exploited")
}
