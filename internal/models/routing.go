// Package models defines the data structures for the submission routing engine.
package models

// Score criterion names.
const (
	CriterionRegionMatch        = "region_match"
	CriterionNAICSSpecialty     = "naics_specialty"
	CriterionRiskAppetite       = "risk_appetite"
	CriterionTurnaroundSpeed    = "turnaround_speed"
	CriterionAcceptanceRate     = "acceptance_rate"
	CriterionWorkloadAdjustment = "workload_adjustment"
)

// Criteria returns the criterion names in scoring order.
func Criteria() []string {
	return []string{
		CriterionRegionMatch,
		CriterionNAICSSpecialty,
		CriterionRiskAppetite,
		CriterionTurnaroundSpeed,
		CriterionAcceptanceRate,
		CriterionWorkloadAdjustment,
	}
}

// ScoreBreakdown holds one (underwriter, profile) evaluation.
type ScoreBreakdown struct {
	RegionMatch        float64 `json:"region_match"`
	NAICSSpecialty     float64 `json:"naics_specialty"`
	RiskAppetite       float64 `json:"risk_appetite"`
	TurnaroundSpeed    float64 `json:"turnaround_speed"`
	AcceptanceRate     float64 `json:"acceptance_rate"`
	WorkloadAdjustment float64 `json:"workload_adjustment"`
	Total              float64 `json:"total"`
}

// Sum adds the six components in scoring order.
func (b ScoreBreakdown) Sum() float64 {
	return b.RegionMatch +
		b.NAICSSpecialty +
		b.RiskAppetite +
		b.TurnaroundSpeed +
		b.AcceptanceRate +
		b.WorkloadAdjustment
}

// Map returns the components keyed by criterion name.
func (b ScoreBreakdown) Map() map[string]float64 {
	return map[string]float64{
		CriterionRegionMatch:        b.RegionMatch,
		CriterionNAICSSpecialty:     b.NAICSSpecialty,
		CriterionRiskAppetite:       b.RiskAppetite,
		CriterionTurnaroundSpeed:    b.TurnaroundSpeed,
		CriterionAcceptanceRate:     b.AcceptanceRate,
		CriterionWorkloadAdjustment: b.WorkloadAdjustment,
	}
}

// UnderwriterScore pairs an underwriter with its breakdown.
type UnderwriterScore struct {
	Underwriter *Underwriter   `json:"underwriter"`
	Breakdown   ScoreBreakdown `json:"breakdown"`
}

// RoutingRecommendation is a ranked underwriter with its justification.
// Only the top-ranked recommendation carries alternatives.
type RoutingRecommendation struct {
	Underwriter   *Underwriter            `json:"underwriter"`
	Score         float64                 `json:"score"`
	Breakdown     ScoreBreakdown          `json:"breakdown"`
	Justification string                  `json:"justification"`
	Alternatives  []RoutingRecommendation `json:"alternatives"`
}
