package models

// RiskLevel is the engine's classification of a finding. The names follow
// the database explain-plan metaphor the report is built around: the most
// urgent findings are "full table scans", the cheapest are "sequential
// reads".
type RiskLevel string

// Risk levels ordered from most to least urgent.
const (
	RiskFullTableScan  RiskLevel = "FULL_TABLE_SCAN"  // critical
	RiskIndexRangeScan RiskLevel = "INDEX_RANGE_SCAN" // high
	RiskNestedLoop     RiskLevel = "NESTED_LOOP"      // medium
	RiskSequentialRead RiskLevel = "SEQUENTIAL_READ"  // low
)

// Levels returns all risk levels, most urgent first.
func Levels() []RiskLevel {
	return []RiskLevel{
		RiskFullTableScan,
		RiskIndexRangeScan,
		RiskNestedLoop,
		RiskSequentialRead,
	}
}

// Label returns the human-readable severity name for a risk level.
func (r RiskLevel) Label() string {
	switch r {
	case RiskFullTableScan:
		return "critical"
	case RiskIndexRangeScan:
		return "high"
	case RiskNestedLoop:
		return "medium"
	case RiskSequentialRead:
		return "low"
	default:
		return "unknown"
	}
}
