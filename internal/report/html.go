package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Killmanga-AI/reportgc/internal/models"
	"github.com/Killmanga-AI/reportgc/pkg/logger"
)

//go:embed templates/*
var templateFS embed.FS

// gradeStyle is the color coding for the security posture grade.
type gradeStyle struct {
	Color string
	Label string
}

var gradeStyles = map[string]gradeStyle{
	"A": {Color: "#28a745", Label: "EXCELLENT"},
	"B": {Color: "#6c757d", Label: "GOOD"},
	"C": {Color: "#ffc107", Label: "FAIR"},
	"D": {Color: "#fd7e14", Label: "POOR"},
	"F": {Color: "#dc3545", Label: "CRITICAL"},
}

// styleForGrade returns the color coding for a letter grade.
func styleForGrade(grade string) gradeStyle {
	if style, ok := gradeStyles[grade]; ok {
		return style
	}
	return gradeStyle{Color: "#333", Label: "UNKNOWN"}
}

// htmlFormat renders the report as a standalone HTML page.
type htmlFormat struct {
	logger logger.Logger
}

// planSection is the template view of one plan bucket.
type planSection struct {
	Heading string
	Bucket  models.PlanBucket
}

// htmlData is the template context.
type htmlData struct {
	Report     *models.Report
	GradeColor string
	GradeLabel string
	Sections   []planSection
}

// Generate renders the report to outputPath.
func (f *htmlFormat) Generate(report *models.Report, outputPath string) error {
	tmpl, err := template.ParseFS(templateFS, "templates/report.html.tmpl")
	if err != nil {
		return fmt.Errorf("parsing report template: %w", err)
	}

	style := styleForGrade(report.Grade)
	titler := cases.Title(language.English)

	sections := make([]planSection, 0, 4)
	for _, level := range models.Levels() {
		sections = append(sections, planSection{
			Heading: titler.String(level.Label()) + " Priority",
			Bucket:  report.ExecutionPlan.Bucket(level),
		})
	}

	data := htmlData{
		Report:     report,
		GradeColor: style.Color,
		GradeLabel: style.Label,
		Sections:   sections,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("rendering report template: %w", err)
	}

	if err := os.WriteFile(outputPath, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("writing HTML report: %w", err)
	}

	f.logger.Info("generated HTML report", "path", outputPath)
	return nil
}

// Name returns the format identifier.
func (f *htmlFormat) Name() string {
	return "html"
}

// Description returns a human-readable description.
func (f *htmlFormat) Description() string {
	return "Standalone HTML report"
}
