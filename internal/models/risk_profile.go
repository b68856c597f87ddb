// Package models defines the data structures for the submission routing engine.
package models

// Urgency is the submission urgency tier.
type Urgency string

const (
	UrgencyRush     Urgency = "rush"
	UrgencyStandard Urgency = "standard"
	UrgencyFlexible Urgency = "flexible"
)

// Hazard labels appended from form flags.
const (
	HazardAlcoholService    = "alcohol_service"
	HazardLiveEntertainment = "live_entertainment"
)

// RiskProfile is the compact risk summary a submission is routed on.
// Nil pointers mean the attribute is unknown.
type RiskProfile struct {
	NAICSCode       *string  `json:"naics_code"`
	Region          *Region  `json:"region"`
	Hazards         []string `json:"hazards"`
	LiquorLiability bool     `json:"liquor_liability"`
	BusinessType    *string  `json:"business_type"`
	AnnualRevenue   *float64 `json:"annual_revenue"`
	Urgency         Urgency  `json:"urgency"`
}

// HasHazard reports whether the hazard label is present.
func (p RiskProfile) HasHazard(hazard string) bool {
	return containsString(p.Hazards, hazard)
}

// EffectiveUrgency returns the urgency, defaulting to standard.
func (p RiskProfile) EffectiveUrgency() Urgency {
	switch p.Urgency {
	case UrgencyRush, UrgencyFlexible:
		return p.Urgency
	default:
		return UrgencyStandard
	}
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// Float64Ptr returns a pointer to f.
func Float64Ptr(f float64) *float64 {
	return &f
}

// RegionPtr returns a pointer to r.
func RegionPtr(r Region) *Region {
	return &r
}

// StringValue dereferences p, returning "" for nil.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
