package router

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"submission-routing-engine/internal/models"
)

// DefaultTopN is the number of recommendations returned when none is requested.
const DefaultTopN = 3

// ScoreAll scores every underwriter and sorts descending by total.
// Ties keep input order.
func ScoreAll(profile models.RiskProfile, underwriters []*models.Underwriter) []models.UnderwriterScore {
	scores := make([]models.UnderwriterScore, 0, len(underwriters))
	for _, u := range underwriters {
		if u == nil {
			continue
		}
		scores = append(scores, models.UnderwriterScore{
			Underwriter: u,
			Breakdown:   Score(u, profile),
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Breakdown.Total > scores[j].Breakdown.Total
	})

	return scores
}

// Rank returns the top N recommendations for a profile. The first
// recommendation carries the rest as alternatives. An empty underwriter
// list yields an empty, non-nil slice.
func Rank(profile models.RiskProfile, underwriters []*models.Underwriter, topN int) []models.RoutingRecommendation {
	if topN <= 0 {
		topN = DefaultTopN
	}

	scores := ScoreAll(profile, underwriters)
	if len(scores) > topN {
		scores = scores[:topN]
	}

	recommendations := make([]models.RoutingRecommendation, len(scores))
	for i, s := range scores {
		recommendations[i] = models.RoutingRecommendation{
			Underwriter:   s.Underwriter,
			Score:         s.Breakdown.Total,
			Breakdown:     s.Breakdown,
			Justification: Justify(s, profile),
			Alternatives:  []models.RoutingRecommendation{},
		}
	}

	if len(recommendations) > 1 {
		alternatives := make([]models.RoutingRecommendation, len(recommendations)-1)
		copy(alternatives, recommendations[1:])
		recommendations[0].Alternatives = alternatives
	}

	return recommendations
}

// Justify builds the deterministic explanation for one scored underwriter.
func Justify(s models.UnderwriterScore, profile models.RiskProfile) string {
	u := s.Underwriter
	b := s.Breakdown

	var reasons []string

	if b.NAICSSpecialty > 0 {
		businessType := valueOr(profile.BusinessType, "this industry")
		if profile.NAICSCode != nil && *profile.NAICSCode != "" {
			reasons = append(reasons, fmt.Sprintf("specializes in %ss (NAICS %s)", businessType, *profile.NAICSCode))
		} else {
			reasons = append(reasons, fmt.Sprintf("specializes in %ss", businessType))
		}
	}

	if b.RegionMatch > 0 {
		regionName := "the"
		if profile.Region != nil {
			regionName = "the " + string(*profile.Region)
		}
		reasons = append(reasons, fmt.Sprintf("covers %s region", regionName))
	}

	if b.RiskAppetite > 0 {
		reasons = append(reasons, fmt.Sprintf("has appetite for %ss", valueOr(profile.BusinessType, "this type of business")))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Recommendation: %s.", u.Name)

	if len(reasons) > 0 {
		fmt.Fprintf(&sb, " Reason: %s.", capitalize(joinReasons(reasons)))
	}

	fmt.Fprintf(&sb, " Averages %g-day turnaround with %.0f%% acceptance rate.",
		u.AvgTurnaroundDays, u.AcceptanceRate*100)

	if b.WorkloadAdjustment < -5 {
		sb.WriteString(" Note: Currently at high workload capacity.")
	}

	return sb.String()
}

// joinReasons renders "a", "a and b", or "a, b and c".
func joinReasons(reasons []string) string {
	switch len(reasons) {
	case 0:
		return ""
	case 1:
		return reasons[0]
	default:
		return strings.Join(reasons[:len(reasons)-1], ", ") + " and " + reasons[len(reasons)-1]
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func valueOr(p *string, fallback string) string {
	if p == nil || *p == "" {
		return fallback
	}
	return *p
}
