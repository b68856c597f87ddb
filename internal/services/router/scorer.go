package router

import (
	"math"
	"strings"

	"submission-routing-engine/internal/models"
	"submission-routing-engine/internal/services/region"
)

// Scoring weights
const (
	RegionMatchPoints       = 25.0
	NAICSSpecialtyPoints    = 30.0
	RiskAppetitePoints      = 20.0
	RiskAversionPenalty     = -50.0
	TurnaroundMaxPoints     = 15.0
	AcceptanceRateMaxPoints = 10.0
	WorkloadLowBonus        = 10.0
	WorkloadHighPenalty     = -15.0

	adjacentRegionFactor = 0.5
	naicsPrefixFactor    = 0.7
)

// Turnaround benchmarks in days.
const (
	turnaroundExcellent = 1.0
	turnaroundGood      = 3.0
	turnaroundAverage   = 5.0
)

// Score evaluates one underwriter against a risk profile.
// Each criterion is computed independently and Total is their exact sum.
func Score(u *models.Underwriter, p models.RiskProfile) models.ScoreBreakdown {
	b := models.ScoreBreakdown{
		RegionMatch:        ScoreRegionMatch(u, p),
		NAICSSpecialty:     ScoreNAICSSpecialty(u, p),
		RiskAppetite:       ScoreRiskAppetite(u, p),
		TurnaroundSpeed:    ScoreTurnaround(u, p),
		AcceptanceRate:     ScoreAcceptanceRate(u),
		WorkloadAdjustment: ScoreWorkload(u),
	}
	b.Total = b.Sum()
	return b
}

// ScoreRegionMatch gives full points for a covered region and half for an adjacent one.
func ScoreRegionMatch(u *models.Underwriter, p models.RiskProfile) float64 {
	if p.Region == nil {
		return 0
	}

	if u.CoversRegion(*p.Region) {
		return RegionMatchPoints
	}

	for _, r := range u.Regions {
		if region.IsAdjacent(*p.Region, r) {
			return RegionMatchPoints * adjacentRegionFactor
		}
	}

	return 0
}

// ScoreNAICSSpecialty gives full points for an exact code and partial credit
// when a specialty shares the industry group.
func ScoreNAICSSpecialty(u *models.Underwriter, p models.RiskProfile) float64 {
	if p.NAICSCode == nil || *p.NAICSCode == "" {
		return 0
	}
	code := *p.NAICSCode

	if u.HasSpecialty(code) {
		return NAICSSpecialtyPoints
	}

	prefix := naicsPrefix(code)
	for _, specialty := range u.NAICSSpecialties {
		if strings.HasPrefix(specialty, prefix) {
			return NAICSSpecialtyPoints * naicsPrefixFactor
		}
	}

	return 0
}

// ScoreRiskAppetite rewards a liked business type and penalizes an avoided
// business type or hazard. An appetite hit returns before aversions are checked.
func ScoreRiskAppetite(u *models.Underwriter, p models.RiskProfile) float64 {
	if p.BusinessType == nil {
		return 0
	}
	businessType := *p.BusinessType

	if u.HasAppetite(businessType) {
		return RiskAppetitePoints
	}

	if u.Avoids(businessType) {
		return RiskAversionPenalty
	}

	for _, hazard := range p.Hazards {
		if u.Avoids(hazard) {
			return RiskAversionPenalty
		}
	}

	return 0
}

// ScoreTurnaround tiers the average turnaround and weights it by urgency,
// capped at TurnaroundMaxPoints.
func ScoreTurnaround(u *models.Underwriter, p models.RiskProfile) float64 {
	var base float64
	switch days := u.AvgTurnaroundDays; {
	case days <= turnaroundExcellent:
		base = TurnaroundMaxPoints
	case days <= turnaroundGood:
		base = TurnaroundMaxPoints * 0.8
	case days <= turnaroundAverage:
		base = TurnaroundMaxPoints * 0.5
	default:
		base = TurnaroundMaxPoints * 0.2
	}

	return math.Min(base*urgencyMultiplier(p.EffectiveUrgency()), TurnaroundMaxPoints)
}

func urgencyMultiplier(u models.Urgency) float64 {
	switch u {
	case models.UrgencyRush:
		return 1.5
	case models.UrgencyFlexible:
		return 0.5
	default:
		return 1.0
	}
}

// ScoreAcceptanceRate scales the acceptance fraction linearly to 0-10.
func ScoreAcceptanceRate(u *models.Underwriter) float64 {
	return u.AcceptanceRate * AcceptanceRateMaxPoints
}

// ScoreWorkload adds a bonus for spare capacity and a penalty for overload.
func ScoreWorkload(u *models.Underwriter) float64 {
	switch u.CurrentWorkload {
	case models.WorkloadLow:
		return WorkloadLowBonus
	case models.WorkloadHigh:
		return WorkloadHighPenalty
	default:
		return 0
	}
}
