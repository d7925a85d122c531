package dashboard

import "time"

// Stats is the aggregate view of an organization subtree: the org the caller
// asked for plus every descendant.
type Stats struct {
	OrgID               string           `json:"org_id"`
	OrgCount            int              `json:"org_count"`
	InspectionsByStatus map[string]int64 `json:"inspections_by_status"`
	AverageScore        *float64         `json:"average_score,omitempty"`
	OpenActionPlans     int64            `json:"open_action_plans"`
	OverdueActionPlans  int64            `json:"overdue_action_plans"`
	ComplianceRate      *float64         `json:"compliance_rate,omitempty"`
	GeneratedAt         time.Time        `json:"generated_at"`
}

// ReportSummary is the flat per-organization breakdown behind Stats, one row
// per org in the subtree.
type ReportSummary struct {
	OrgID       string    `json:"org_id"`
	Rows        []OrgRow  `json:"rows"`
	GeneratedAt time.Time `json:"generated_at"`
}

type OrgRow struct {
	OrgID           string   `json:"org_id"`
	OrgName         string   `json:"org_name"`
	Depth           int      `json:"depth"`
	Inspections     int64    `json:"inspections"`
	CompletedCount  int64    `json:"completed"`
	AverageScore    *float64 `json:"average_score,omitempty"`
	OpenActionPlans int64    `json:"open_action_plans"`
}
