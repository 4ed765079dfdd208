package engine

import (
	"github.com/Killmanga-AI/reportgc/internal/models"
)

// Timestamp layouts for report metadata.
const (
	generatedAtLayout = "2006-01-02 15:04:05"
	reportIDLayout    = "20060102-150405"
)

// aggregate buckets every finding into its risk level in a single pass and
// assembles the complete report. The output contract is satisfied by
// construction here: every bucket, count, and item field is always
// populated, so renderers never default anything.
func (e *Engine) aggregate(findings []models.Finding, reportID string) *models.Report {
	items := map[models.RiskLevel][]models.PlanItem{}
	for _, level := range models.Levels() {
		items[level] = make([]models.PlanItem, 0)
	}

	kevCount := 0
	for _, f := range findings {
		item := f.Item()
		items[item.RiskLevel] = append(items[item.RiskLevel], item)
		if f.CisaKEV {
			kevCount++
		}
	}

	criticals := bucketFor(items[models.RiskFullTableScan])
	highs := bucketFor(items[models.RiskIndexRangeScan])
	mediums := bucketFor(items[models.RiskNestedLoop])
	lows := bucketFor(items[models.RiskSequentialRead])

	now := e.now()
	if reportID == "" {
		reportID = now.Format(reportIDLayout)
	}

	return &models.Report{
		Grade:       models.GradeForCriticalCount(criticals.Count),
		GeneratedAt: now.Format(generatedAtLayout),
		ReportID:    reportID,
		Summary: models.Summary{
			TotalFindings: len(findings),
			Critical:      criticals.Count,
			High:          highs.Count,
			Medium:        mediums.Count,
			Low:           lows.Count,
			CisaKEVCount:  kevCount,
		},
		// Medium and low findings are backlog work: they keep their
		// per-item estimates but stay out of the committed total.
		TotalEffortHours: criticals.EstimatedHours + highs.EstimatedHours,
		ExecutionPlan: models.ExecutionPlan{
			FullTableScans: criticals,
			IndexScans:     highs,
			NestedLoops:    mediums,
			LowPriority:    lows,
		},
	}
}

// bucketFor assembles one plan bucket from its items.
func bucketFor(items []models.PlanItem) models.PlanBucket {
	hours := 0
	for _, item := range items {
		hours += item.FixEffortHours
	}

	return models.PlanBucket{
		Count:          len(items),
		EstimatedHours: hours,
		Items:          items,
	}
}
