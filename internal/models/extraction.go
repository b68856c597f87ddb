// Package models defines the data structures for the submission routing engine.
package models

// Address is the physical business address as stated on the call.
type Address struct {
	Street  *string `json:"street"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	ZipCode *string `json:"zip_code"`
}

// BusinessEntity identifies the applicant.
type BusinessEntity struct {
	LegalName     *string `json:"legal_name"`
	DBA           *string `json:"dba"`
	Address       Address `json:"address"`
	OccupancyType *string `json:"occupancy_type"`
}

// DisplayName returns the DBA, falling back to the legal name.
func (b BusinessEntity) DisplayName() string {
	if b.DBA != nil && *b.DBA != "" {
		return *b.DBA
	}
	if b.LegalName != nil && *b.LegalName != "" {
		return *b.LegalName
	}
	return "Unknown Business"
}

// IndustryClassification holds codes inferred from the business description.
type IndustryClassification struct {
	NAICSCode           *string `json:"naics_code"`
	SICCode             *string `json:"sic_code"`
	BusinessDescription string  `json:"business_description"`
}

// RevenueDetails holds projected revenue and its split.
type RevenueDetails struct {
	GrossAnnualSales  *float64 `json:"gross_annual_sales"`
	AlcoholPercentage *float64 `json:"alcohol_percentage"`
	FoodPercentage    *float64 `json:"food_percentage"`
}

// RiskFactors holds free-text hazards and operating details.
type RiskFactors struct {
	Hazards         []string `json:"hazards"`
	OperatingHours  *string  `json:"operating_hours"`
	SpecialFeatures []string `json:"special_features"`
}

// InsuranceHistory separates prior coverage from the current need.
type InsuranceHistory struct {
	PastCarrier        *string `json:"past_carrier"`
	PastCarrierContext *string `json:"past_carrier_context"`
	CurrentNeed        *string `json:"current_need"`
	Urgency            *string `json:"urgency"`
}

// DiscoveryCallExtraction is the structured record pulled from a call transcript.
type DiscoveryCallExtraction struct {
	BusinessEntity         BusinessEntity         `json:"business_entity"`
	IndustryClassification IndustryClassification `json:"industry_classification"`
	RevenueDetails         RevenueDetails         `json:"revenue_details"`
	RiskFactors            RiskFactors            `json:"risk_factors"`
	InsuranceHistory       InsuranceHistory       `json:"insurance_history"`
	SocialContext          SocialContext          `json:"social_context"`
}
