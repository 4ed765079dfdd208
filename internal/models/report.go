package models

// Report is the engine's complete output artifact, consumed by rendering
// collaborators as an immutable value. Every field is populated by the
// aggregator; renderers never need defensive defaulting.
type Report struct {
	Grade            string        `json:"grade"`
	GeneratedAt      string        `json:"generated_at"`
	ReportID         string        `json:"report_id"`
	Summary          Summary       `json:"summary"`
	TotalEffortHours int           `json:"total_effort_hours"`
	ExecutionPlan    ExecutionPlan `json:"execution_plan"`
}

// Summary provides high-level statistics for the report.
type Summary struct {
	TotalFindings int `json:"total_findings"`
	Critical      int `json:"critical"`
	High          int `json:"high"`
	Medium        int `json:"medium"`
	Low           int `json:"low"`
	CisaKEVCount  int `json:"cisa_kev_count"`
}

// ExecutionPlan partitions findings into the four plan buckets. Every
// finding appears in exactly one bucket.
type ExecutionPlan struct {
	FullTableScans PlanBucket `json:"full_table_scans"`
	IndexScans     PlanBucket `json:"index_scans"`
	NestedLoops    PlanBucket `json:"nested_loops"`
	LowPriority    PlanBucket `json:"low_priority"`
}

// Bucket returns the plan bucket holding findings of the given risk level.
func (p ExecutionPlan) Bucket(level RiskLevel) PlanBucket {
	switch level {
	case RiskFullTableScan:
		return p.FullTableScans
	case RiskIndexRangeScan:
		return p.IndexScans
	case RiskNestedLoop:
		return p.NestedLoops
	default:
		return p.LowPriority
	}
}

// PlanBucket holds the findings of one risk level along with their count
// and summed effort estimate.
type PlanBucket struct {
	Count          int        `json:"count"`
	EstimatedHours int        `json:"estimated_hours"`
	Items          []PlanItem `json:"items"`
}

// PlanItem is a finding as serialized into a plan bucket: the base fields
// plus the derived risk level and effort estimate.
type PlanItem struct {
	Finding
	RiskLevel      RiskLevel `json:"risk_level"`
	FixEffortHours int       `json:"fix_effort_hours"`
}

// GradeForCriticalCount derives the overall letter grade. Only the number
// of FULL_TABLE_SCAN findings moves the grade.
func GradeForCriticalCount(criticals int) string {
	switch {
	case criticals == 0:
		return "A"
	case criticals <= 2:
		return "B"
	case criticals <= 5:
		return "C"
	case criticals <= 10:
		return "D"
	default:
		return "F"
	}
}
