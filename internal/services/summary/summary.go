// Package summary builds the broker-facing executive summary for a submission.
package summary

import (
	"fmt"
	"strings"
	"time"

	"submission-routing-engine/internal/models"
)

const noConstraintsNote = "No specific availability constraints noted."

// nextActionLayout renders "Monday, Jan 06 at 09:00 AM".
const nextActionLayout = "Monday, Jan 02 at 03:04 PM"

var entertainmentWords = []string{"piano", "music", "band", "entertainment", "live"}

// Generator builds executive summaries.
type Generator struct {
	clock func() time.Time
}

// NewGenerator creates a generator. A nil clock uses time.Now.
func NewGenerator(clock func() time.Time) *Generator {
	if clock == nil {
		clock = time.Now
	}
	return &Generator{clock: clock}
}

// Generate summarizes one submission. rec may be nil when no underwriter
// could be recommended.
func (g *Generator) Generate(
	ext *models.DiscoveryCallExtraction,
	form *models.MappedForm,
	rec *models.RoutingRecommendation,
	action models.ScheduledAction,
) *models.ExecutiveSummary {
	if ext == nil {
		ext = &models.DiscoveryCallExtraction{}
	}
	if form == nil {
		form = models.NewMappedForm()
	}

	return &models.ExecutiveSummary{
		Headline:          Headline(ext, rec),
		BusinessSnapshot:  BusinessSnapshot(ext, form),
		RoutingRationale:  RoutingRationale(rec),
		NextAction:        NextAction(action.ScheduledTime, ext.SocialContext),
		BrokerTasks:       BrokerTasks(form),
		ClientContextNote: ClientContextNote(ext.SocialContext),
		GeneratedAt:       g.clock(),
	}
}

// Headline is "{business} -> {underwriter}", with a specialist tag when the
// underwriter lists the business's exact NAICS code.
func Headline(ext *models.DiscoveryCallExtraction, rec *models.RoutingRecommendation) string {
	business := ext.BusinessEntity.DisplayName()
	if rec == nil || rec.Underwriter == nil {
		return business + " -> Unassigned"
	}

	uw := rec.Underwriter
	if code := ext.IndustryClassification.NAICSCode; code != nil && uw.HasSpecialty(*code) {
		industry := ext.IndustryClassification.BusinessDescription
		if industry == "" {
			industry = "Industry"
		}
		return fmt.Sprintf("%s -> %s (%s Specialist)", business, uw.Name, industry)
	}

	return fmt.Sprintf("%s -> %s", business, uw.Name)
}

// BusinessSnapshot is a two or three sentence description of the business.
func BusinessSnapshot(ext *models.DiscoveryCallExtraction, form *models.MappedForm) string {
	var parts []string

	desc := ext.IndustryClassification.BusinessDescription
	if desc == "" {
		desc = "Business"
	}
	addr := ext.BusinessEntity.Address
	if addr.City != nil && addr.State != nil {
		desc += fmt.Sprintf(" in %s, %s", *addr.City, *addr.State)
	}
	parts = append(parts, desc+".")

	var revenue []string
	if sales := ext.RevenueDetails.GrossAnnualSales; sales != nil && *sales > 0 {
		revenue = append(revenue, FormatRevenue(*sales)+" revenue")
	}
	if alc := ext.RevenueDetails.AlcoholPercentage; alc != nil && *alc > 0 {
		revenue = append(revenue, fmt.Sprintf("%.0f%% alcohol", *alc))
	}
	if len(revenue) > 0 {
		parts = append(parts, strings.Join(revenue, ", ")+".")
	}

	var features []string
	for _, h := range ext.RiskFactors.Hazards {
		lower := strings.ToLower(h)
		if containsAny(lower, entertainmentWords) {
			features = append(features, h)
			break
		}
	}
	if form.Acord126.LiquorLiability.Required {
		features = append(features, "Liquor liability required")
	}
	if len(features) > 0 {
		parts = append(parts, strings.Join(features, ". ")+".")
	}

	return strings.Join(parts, " ")
}

// FormatRevenue renders $1.2M or $850K.
func FormatRevenue(amount float64) string {
	if amount >= 1_000_000 {
		return fmt.Sprintf("$%.1fM", amount/1_000_000)
	}
	return fmt.Sprintf("$%.0fK", amount/1_000)
}

// RoutingRationale explains the recommendation in one or two sentences.
func RoutingRationale(rec *models.RoutingRecommendation) string {
	if rec == nil || rec.Underwriter == nil {
		return "No underwriter available. Manual routing required."
	}

	uw := rec.Underwriter
	parts := []string{fmt.Sprintf("%s selected (score %.1f).", uw.Name, rec.Score)}

	var reasons []string
	if len(uw.NAICSSpecialties) > 0 {
		reasons = append(reasons, "Specializes in NAICS "+uw.NAICSSpecialties[0])
	}
	if len(uw.Regions) > 0 {
		regions := uw.Regions
		if len(regions) > 2 {
			regions = regions[:2]
		}
		names := make([]string, len(regions))
		for i, r := range regions {
			names[i] = string(r)
		}
		reasons = append(reasons, strings.Join(names, ", ")+" region")
	}
	if len(reasons) > 0 {
		parts = append(parts, strings.Join(reasons, ", ")+".")
	}

	parts = append(parts, fmt.Sprintf("%g-day avg turnaround, %.0f%% acceptance rate.",
		uw.AvgTurnaroundDays, uw.AcceptanceRate*100))

	return strings.Join(parts, " ")
}

// NextAction describes the scheduled email and the client constraint it honours.
func NextAction(at time.Time, sc models.SocialContext) string {
	action := "Email scheduled for " + at.Format(nextActionLayout)

	switch {
	case sc.ContactRestrictions != "":
		action += fmt.Sprintf(" (Respecting: %s)", sc.ContactRestrictions)
	case sc.AvailabilityNotes != "":
		action += fmt.Sprintf(" (Client: %s)", sc.AvailabilityNotes)
	}

	return action
}

// BrokerTasks lists outstanding follow-ups as questions for the client.
func BrokerTasks(form *models.MappedForm) []string {
	tasks := make([]string, 0, len(form.BrokerTasks))
	for _, t := range form.BrokerTasks {
		if q := models.StringValue(t.SuggestedQuestion); q != "" {
			tasks = append(tasks, q)
			continue
		}
		field := strings.NewReplacer(".", " ", "_", " ").Replace(t.FieldName)
		tasks = append(tasks, "Obtain "+field)
	}
	return tasks
}

// ClientContextNote collects the client's personal constraints and contact
// preferences.
func ClientContextNote(sc models.SocialContext) string {
	var parts []string

	if sc.PersonalConstraints != "" {
		parts = append(parts, sc.PersonalConstraints)
	}
	if sc.PreferredContactTime != "" {
		parts = append(parts, fmt.Sprintf("Prefers %s contact", sc.PreferredContactTime))
	}
	if sc.ContactRestrictions != "" {
		parts = append(parts, sc.ContactRestrictions)
	}
	if sc.AvailabilityNotes != "" && !strings.Contains(strings.Join(parts, " "), sc.AvailabilityNotes) {
		parts = append(parts, sc.AvailabilityNotes)
	}

	if len(parts) == 0 {
		return noConstraintsNote
	}
	return strings.Join(parts, ". ")
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
