// Package mapper fills ACORD 125/126 forms from a discovery-call extraction.
// Shared values (address, NAICS) are written once and copied into every
// section that needs them. Missing required fields stay nil and become
// broker tasks.
package mapper

import (
	"math"
	"regexp"
	"strings"

	"submission-routing-engine/internal/models"
)

// Form section names used in broker tasks.
const (
	SectionApplicant       = "Applicant Info"
	SectionPremises        = "Premises Info"
	SectionBusiness        = "Business Info"
	SectionRevenue         = "Revenue Info"
	SectionLiquorLiability = "Liquor Liability"
)

// LiquorTypeSell is the liquor liability type for establishments selling alcohol.
const LiquorTypeSell = "Sell"

type requiredField struct {
	name     string
	section  string
	priority models.TaskPriority
	question string
}

var (
	entertainmentRe = regexp.MustCompile(`\b(piano|music|bands?|djs?|entertainment|live)\b`)

	// "1 am", "2am", "3 am" or "midnight"; "11 am" does not count
	lateNightRe = regexp.MustCompile(`\b[123]\s?am\b|midnight`)
)

// Map builds both forms, broker tasks and the completion summary.
// A nil extraction yields an empty form whose required fields are all tasks.
func Map(ext *models.DiscoveryCallExtraction) *models.MappedForm {
	form := models.NewMappedForm()
	if ext == nil {
		ext = &models.DiscoveryCallExtraction{}
	}

	mapAcord125(ext, &form.Acord125)
	mapAcord126(ext, &form.Acord126)
	form.BrokerTasks = brokerTasks(form)
	form.Summary = summarize(form)

	return form
}

func mapAcord125(ext *models.DiscoveryCallExtraction, f *models.Acord125Form) {
	entity := ext.BusinessEntity
	addr := entity.Address

	f.Applicant.ApplicantName = entity.LegalName
	f.Applicant.DBA = entity.DBA

	f.Applicant.MailingAddress = addr.Street
	f.Applicant.MailingCity = addr.City
	f.Applicant.MailingState = addr.State
	f.Applicant.MailingZip = addr.ZipCode

	f.Premises.StreetAddress = addr.Street
	f.Premises.City = addr.City
	f.Premises.State = addr.State
	f.Premises.ZipCode = addr.ZipCode
	f.Premises.Occupancy = occupancy(entity.OccupancyType)

	f.Contact.PreferredContactTime = optional(ext.SocialContext.PreferredContactTime)
	f.Contact.ContactRestrictions = optional(ext.SocialContext.ContactRestrictions)

	industry := ext.IndustryClassification
	f.Business.NatureOfBusiness = optional(industry.BusinessDescription)
	f.Business.SICCode = industry.SICCode
	f.Business.NAICSCode = industry.NAICSCode

	f.Revenue.AnnualGrossSales = ext.RevenueDetails.GrossAnnualSales

	f.PriorInsurance.PriorCarrier = ext.InsuranceHistory.PastCarrier
	f.PriorInsurance.PriorCoverageType = ext.InsuranceHistory.PastCarrierContext
}

func occupancy(occupancyType *string) *models.PremisesOccupancy {
	if occupancyType == nil {
		return nil
	}

	occ := strings.ToLower(*occupancyType)
	var result models.PremisesOccupancy
	switch {
	case strings.Contains(occ, "leas"), strings.Contains(occ, "tenant"), strings.Contains(occ, "rent"):
		result = models.OccupancyTenant
	case strings.Contains(occ, "own"):
		result = models.OccupancyOwner
	default:
		return nil
	}
	return &result
}

func mapAcord126(ext *models.DiscoveryCallExtraction, f *models.Acord126Form) {
	industry := ext.IndustryClassification
	f.Classification.ClassificationDescription = optional(industry.BusinessDescription)
	f.Classification.ClassCode = industry.NAICSCode

	revenue := ext.RevenueDetails
	if alc := revenue.AlcoholPercentage; alc != nil && *alc > 0 {
		f.LiquorLiability.Required = true
		f.LiquorLiability.Type = models.StringPtr(LiquorTypeSell)
		f.LiquorLiability.AlcoholSalesPercentage = models.Float64Ptr(*alc)
		if revenue.FoodPercentage != nil {
			f.LiquorLiability.FoodSalesPercentage = models.Float64Ptr(*revenue.FoodPercentage)
		}
		if revenue.GrossAnnualSales != nil {
			f.LiquorLiability.AnnualLiquorReceipts = models.Float64Ptr(*revenue.GrossAnnualSales * (*alc / 100))
		}
	}

	hazards := ext.RiskFactors.Hazards
	f.Hazards.Hazards = append([]string{}, hazards...)

	for _, h := range hazards {
		if entertainmentRe.MatchString(strings.ToLower(h)) {
			f.Entertainment.LiveEntertainment = true
			f.Entertainment.EntertainmentDescription = models.StringPtr(h)
			break
		}
	}

	for _, h := range hazards {
		lower := strings.ToLower(h)
		if strings.Contains(lower, "dance") {
			f.Entertainment.DanceFloor = true
		}
		if strings.Contains(lower, "pool") {
			f.Entertainment.PoolTables = true
		}
		if strings.Contains(lower, "fry") {
			f.Hazards.DeepFryer = true
			f.Hazards.CookingOperations = true
		}
		if containsAny(lower, "grill", "flame") {
			f.Hazards.OpenFlameCooking = true
			f.Hazards.CookingOperations = true
		}
		if strings.Contains(lower, "delivery") {
			f.Hazards.DeliveryOperations = true
		}
		if strings.Contains(lower, "cater") {
			f.Hazards.CateringOperations = true
		}
	}

	if hours := ext.RiskFactors.OperatingHours; hours != nil && *hours != "" {
		f.Hours.OperatingHours = models.StringPtr(*hours)
		f.Hours.LateNightOperations = lateNightRe.MatchString(strings.ToLower(*hours))
	}
}

func brokerTasks(form *models.MappedForm) []models.BrokerTask {
	a125 := form.Acord125
	checks125 := []struct {
		field requiredField
		set   bool
	}{
		{requiredField{"applicant.applicant_name", SectionApplicant, models.PriorityHigh, "What is the legal business name?"}, a125.Applicant.ApplicantName != nil},
		{requiredField{"applicant.dba", SectionApplicant, models.PriorityHigh, "What name does the business operate under?"}, a125.Applicant.DBA != nil},
		{requiredField{"premises.street_address", SectionPremises, models.PriorityHigh, "What is the business location address?"}, a125.Premises.StreetAddress != nil},
		{requiredField{"premises.city", SectionPremises, models.PriorityHigh, "What city is the business located in?"}, a125.Premises.City != nil},
		{requiredField{"premises.state", SectionPremises, models.PriorityHigh, "What state is the business located in?"}, a125.Premises.State != nil},
		{requiredField{"premises.zip_code", SectionPremises, models.PriorityHigh, "What is the ZIP code?"}, a125.Premises.ZipCode != nil},
		{requiredField{"business.naics_code", SectionBusiness, models.PriorityMedium, "What is the NAICS code for this business?"}, a125.Business.NAICSCode != nil},
		{requiredField{"revenue.annual_gross_sales", SectionRevenue, models.PriorityHigh, "What are the projected annual gross sales?"}, a125.Revenue.AnnualGrossSales != nil},
	}

	tasks := []models.BrokerTask{}
	for _, c := range checks125 {
		if !c.set {
			tasks = append(tasks, newTask(c.field, models.FormIDAcord125))
		}
	}

	liquor := form.Acord126.LiquorLiability
	if liquor.Required && liquor.FoodSalesPercentage == nil {
		tasks = append(tasks, newTask(requiredField{
			"liquor_liability.food_sales_percentage", SectionLiquorLiability,
			models.PriorityMedium, "What percentage of sales is from food?",
		}, models.FormIDAcord126))
	}

	return tasks
}

func newTask(f requiredField, formID string) models.BrokerTask {
	return models.BrokerTask{
		FieldName:         f.name,
		FormSection:       f.section,
		FormID:            formID,
		Priority:          f.priority,
		SuggestedQuestion: models.StringPtr(f.question),
	}
}

func summarize(form *models.MappedForm) models.MappingSummary {
	a := form.Acord125
	fields125 := []bool{
		a.Applicant.ApplicantName != nil, a.Applicant.DBA != nil,
		a.Applicant.MailingAddress != nil, a.Applicant.MailingCity != nil,
		a.Applicant.MailingState != nil, a.Applicant.MailingZip != nil,
		a.Applicant.BusinessPhone != nil, a.Applicant.FEIN != nil,

		a.Contact.ContactName != nil, a.Contact.ContactPhone != nil, a.Contact.ContactEmail != nil,
		a.Contact.PreferredContactTime != nil, a.Contact.ContactRestrictions != nil,

		a.Premises.LocationNumber > 0, a.Premises.StreetAddress != nil, a.Premises.City != nil,
		a.Premises.State != nil, a.Premises.ZipCode != nil, a.Premises.Occupancy != nil,
		a.Premises.YearBuilt != nil, a.Premises.SquareFootage != nil,

		a.Business.NatureOfBusiness != nil, a.Business.SICCode != nil,
		a.Business.NAICSCode != nil, a.Business.YearsInBusiness != nil,

		a.Revenue.AnnualGrossSales != nil, a.Revenue.AnnualPayroll != nil,

		a.PriorInsurance.PriorCarrier != nil, a.PriorInsurance.PriorPolicyNumber != nil,
		a.PriorInsurance.PriorCoverageType != nil,
	}

	g := form.Acord126
	fields126 := []bool{
		g.Classification.ClassCode != nil, g.Classification.ClassificationDescription != nil,
		g.Classification.PremisesOperations, g.Classification.ProductsCompletedOps,

		g.LiquorLiability.Required, g.LiquorLiability.Type != nil,
		g.LiquorLiability.AlcoholSalesPercentage != nil, g.LiquorLiability.FoodSalesPercentage != nil,
		g.LiquorLiability.AnnualLiquorReceipts != nil,

		g.Entertainment.LiveEntertainment, g.Entertainment.EntertainmentDescription != nil,
		g.Entertainment.DanceFloor, g.Entertainment.PoolTables,

		len(g.Hazards.Hazards) > 0, g.Hazards.CookingOperations, g.Hazards.DeepFryer,
		g.Hazards.OpenFlameCooking, g.Hazards.DeliveryOperations, g.Hazards.CateringOperations,

		g.Hours.OperatingHours != nil, g.Hours.LateNightOperations,
	}

	return models.MappingSummary{
		Acord125:         completion(fields125),
		Acord126:         completion(fields126),
		BrokerTasksCount: len(form.BrokerTasks),
	}
}

func completion(fields []bool) models.FormCompletion {
	populated := 0
	for _, set := range fields {
		if set {
			populated++
		}
	}

	c := models.FormCompletion{PopulatedFields: populated, TotalFields: len(fields)}
	if len(fields) > 0 {
		c.CompletionPercentage = math.Round(float64(populated)/float64(len(fields))*1000) / 10
	}
	return c
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return models.StringPtr(s)
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
