package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Killmanga-AI/reportgc/internal/models"
)

// Terminal colors keyed by letter grade, matching the HTML palette.
var gradeColors = map[string]lipgloss.Color{
	"A": lipgloss.Color("10"),  // green
	"B": lipgloss.Color("8"),   // gray
	"C": lipgloss.Color("11"),  // yellow
	"D": lipgloss.Color("208"), // orange
	"F": lipgloss.Color("9"),   // red
}

var (
	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 2).
			Foreground(lipgloss.Color("15"))

	headerStyle = lipgloss.NewStyle().Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	kevStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// Summary renders a short terminal summary of a report: the grade badge,
// per-tier counts, and the committed effort total.
func Summary(report *models.Report) string {
	color, ok := gradeColors[report.Grade]
	if !ok {
		color = lipgloss.Color("7")
	}

	var b strings.Builder

	badge := badgeStyle.Background(color).Render(fmt.Sprintf("GRADE %s", report.Grade))
	b.WriteString(badge)
	b.WriteString("  ")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%d findings", report.Summary.TotalFindings)))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  report %s, generated %s", report.ReportID, report.GeneratedAt)))
	b.WriteString("\n\n")

	rows := []struct {
		label  string
		bucket models.PlanBucket
	}{
		{"critical", report.ExecutionPlan.FullTableScans},
		{"high", report.ExecutionPlan.IndexScans},
		{"medium", report.ExecutionPlan.NestedLoops},
		{"low", report.ExecutionPlan.LowPriority},
	}

	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %-8s %4d findings  %s\n",
			row.label,
			row.bucket.Count,
			dimStyle.Render(fmt.Sprintf("%dh estimated", row.bucket.EstimatedHours)),
		))
	}

	b.WriteString("\n")
	if report.Summary.CisaKEVCount > 0 {
		b.WriteString(kevStyle.Render(fmt.Sprintf("  %d known-exploited finding(s)", report.Summary.CisaKEVCount)))
		b.WriteString("\n")
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %dh committed remediation effort", report.TotalEffortHours)))
	b.WriteString("\n")

	return b.String()
}
