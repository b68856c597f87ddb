// Package router scores and ranks underwriters against a submission's risk profile.
package router

import (
	"submission-routing-engine/internal/models"
	"submission-routing-engine/internal/services/region"
)

// Business type labels produced by ClassifyBusinessType.
const (
	BusinessTypeBar        = "bar"
	BusinessTypeRestaurant = "restaurant"
	BusinessTypeRetail     = "retail"
	BusinessTypeHotel      = "hotel"
)

var naicsBusinessTypes = map[string]string{
	"722410": BusinessTypeBar,        // Drinking places
	"722511": BusinessTypeRestaurant, // Full-service restaurants
	"722513": BusinessTypeRestaurant, // Limited-service restaurants
	"722514": BusinessTypeRestaurant, // Cafeterias
	"722515": BusinessTypeRestaurant, // Snack and nonalcoholic beverage bars
	"445110": BusinessTypeRetail,     // Supermarkets
	"445120": BusinessTypeRetail,     // Convenience stores
	"448110": BusinessTypeRetail,     // Men's clothing
	"448120": BusinessTypeRetail,     // Women's clothing
	"721110": BusinessTypeHotel,      // Hotels
	"721120": BusinessTypeHotel,      // Casino hotels
}

var naicsPrefixBusinessTypes = map[string]string{
	"7224": BusinessTypeBar,
	"7225": BusinessTypeRestaurant,
	"4451": BusinessTypeRetail,
	"4481": BusinessTypeRetail,
	"7211": BusinessTypeHotel,
}

// ClassifyBusinessType maps a NAICS code to a business type label.
// Exact codes win over 4-digit prefixes; anything else returns nil.
func ClassifyBusinessType(naicsCode *string) *string {
	if naicsCode == nil || *naicsCode == "" {
		return nil
	}
	code := *naicsCode

	if bt, ok := naicsBusinessTypes[code]; ok {
		return &bt
	}

	if bt, ok := naicsPrefixBusinessTypes[naicsPrefix(code)]; ok {
		return &bt
	}

	return nil
}

// naicsPrefix returns the industry-group prefix (first 4 digits).
func naicsPrefix(code string) string {
	if len(code) < 4 {
		return code
	}
	return code[:4]
}

// ExtractRiskProfile derives the routing risk profile from a mapped form.
// It never fails: missing inputs degrade to nil fields.
func ExtractRiskProfile(form *models.MappedForm) models.RiskProfile {
	profile := models.RiskProfile{
		Hazards: []string{},
		Urgency: models.UrgencyStandard,
	}
	if form == nil {
		return profile
	}

	profile.NAICSCode = copyString(form.Acord125.Business.NAICSCode)
	profile.Region = region.ResolvePtr(form.Acord125.Premises.State)

	profile.Hazards = append(profile.Hazards, form.Acord126.Hazards.Hazards...)

	profile.LiquorLiability = form.Acord126.LiquorLiability.Required
	if profile.LiquorLiability && !profile.HasHazard(models.HazardAlcoholService) {
		profile.Hazards = append(profile.Hazards, models.HazardAlcoholService)
	}

	if form.Acord126.Entertainment.LiveEntertainment && !profile.HasHazard(models.HazardLiveEntertainment) {
		profile.Hazards = append(profile.Hazards, models.HazardLiveEntertainment)
	}

	profile.BusinessType = ClassifyBusinessType(profile.NAICSCode)

	if sales := form.Acord125.Revenue.AnnualGrossSales; sales != nil {
		v := *sales
		profile.AnnualRevenue = &v
	}

	return profile
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
