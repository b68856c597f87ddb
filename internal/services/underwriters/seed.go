package underwriters

import (
	"submission-routing-engine/internal/models"
)

// Seed returns the default underwriter roster. Appetite and aversion
// entries use lowercase business-type and hazard labels so they line up
// with the risk profile vocabulary.
func Seed() []*models.Underwriter {
	return []*models.Underwriter{
		{
			ID:                1,
			Name:              "Sarah Mitchell",
			Email:             "sarah.mitchell@insureco.com",
			Phone:             "(404) 555-1234",
			Carrier:           "InsureCo",
			Regions:           []models.Region{models.RegionSoutheast},
			NAICSSpecialties:  []string{"722410", "722511", "722513"},
			RiskAppetite:      []string{"bar", "restaurant", "nightclub", "tavern"},
			RiskAversions:     []string{"heavy_manufacturing", "mining"},
			AvgTurnaroundDays: 2.5,
			AcceptanceRate:    0.82,
			CurrentWorkload:   models.WorkloadMedium,
			Notes:             "15 years experience in hospitality sector. Prefers detailed loss runs.",
		},
		{
			ID:                2,
			Name:              "Michael Chen",
			Email:             "m.chen@pacificuw.com",
			Phone:             "(206) 555-5678",
			Carrier:           "Pacific Underwriters",
			Regions:           []models.Region{models.RegionWest},
			NAICSSpecialties:  []string{"541511", "541512", "541519"},
			RiskAppetite:      []string{"technology", "software", "professional_services"},
			RiskAversions:     []string{"bar", "nightclub", "cannabis"},
			AvgTurnaroundDays: 1.5,
			AcceptanceRate:    0.88,
			CurrentWorkload:   models.WorkloadLow,
			Notes:             "Fast turnaround for tech companies. Requires cyber liability details.",
		},
		{
			ID:                3,
			Name:              "Jennifer Rodriguez",
			Email:             "jrodriguez@sunbeltins.com",
			Phone:             "(305) 555-9012",
			Carrier:           "Sunbelt Insurance",
			Regions:           []models.Region{models.RegionSoutheast},
			NAICSSpecialties:  []string{"722511", "721110", "445110"},
			RiskAppetite:      []string{"restaurant", "hotel", "retail"},
			RiskAversions:     []string{"construction", "roofing"},
			AvgTurnaroundDays: 3.0,
			AcceptanceRate:    0.79,
			CurrentWorkload:   models.WorkloadHigh,
			Notes:             "Bilingual (English/Spanish). Strong relationships with Florida markets.",
		},
		{
			ID:                4,
			Name:              "David Thompson",
			Email:             "david.t@midwestmutual.com",
			Phone:             "(312) 555-3456",
			Carrier:           "Midwest Mutual",
			Regions:           []models.Region{models.RegionMidwest},
			NAICSSpecialties:  []string{"332999", "493110", "484110"},
			RiskAppetite:      []string{"manufacturing", "warehousing", "distribution"},
			RiskAversions:     []string{"bar", "adult_entertainment"},
			AvgTurnaroundDays: 4.0,
			AcceptanceRate:    0.71,
			CurrentWorkload:   models.WorkloadMedium,
			Notes:             "Extensive experience with product liability. Prefers face-to-face meetings.",
		},
		{
			ID:                5,
			Name:              "Amanda Foster",
			Email:             "afoster@eastcoastuw.com",
			Phone:             "(212) 555-7890",
			Carrier:           "East Coast Underwriters",
			Regions:           []models.Region{models.RegionNortheast},
			NAICSSpecialties:  []string{"448140", "541110", "621111"},
			RiskAppetite:      []string{"retail", "professional_services", "medical_office"},
			RiskAversions:     []string{"heavy_construction", "hazardous_materials"},
			AvgTurnaroundDays: 2.0,
			AcceptanceRate:    0.85,
			CurrentWorkload:   models.WorkloadLow,
			Notes:             "Quick responses. Specializes in small to mid-market accounts.",
		},
		{
			ID:                6,
			Name:              "Robert Garcia",
			Email:             "rgarcia@desertuw.com",
			Phone:             "(602) 555-2345",
			Carrier:           "Desert Underwriters",
			Regions:           []models.Region{models.RegionSouthwest},
			NAICSSpecialties:  []string{"722410", "722511", "713940"},
			RiskAppetite:      []string{"bar", "restaurant", "entertainment_venue"},
			RiskAversions:     []string{"mining", "oil_and_gas"},
			AvgTurnaroundDays: 3.5,
			AcceptanceRate:    0.76,
			CurrentWorkload:   models.WorkloadMedium,
			Notes:             "Strong liquor liability experience. Familiar with Arizona/Nevada regulations.",
		},
		{
			ID:                7,
			Name:              "Lisa Park",
			Email:             "lpark@goldengate.com",
			Phone:             "(415) 555-6789",
			Carrier:           "Golden Gate Insurance",
			Regions:           []models.Region{models.RegionWest},
			NAICSSpecialties:  []string{"541511", "522320", "518210"},
			RiskAppetite:      []string{"technology", "saas", "fintech"},
			RiskAversions:     []string{"heavy_manufacturing", "agriculture"},
			AvgTurnaroundDays: 1.0,
			AcceptanceRate:    0.92,
			CurrentWorkload:   models.WorkloadHigh,
			Notes:             "Fastest turnaround in the region. Premium pricing but high acceptance rate.",
		},
		{
			ID:                8,
			Name:              "James Wilson",
			Email:             "jwilson@atlanticins.com",
			Phone:             "(617) 555-0123",
			Carrier:           "Atlantic Insurance",
			Regions:           []models.Region{models.RegionNortheast},
			NAICSSpecialties:  []string{"236220", "238210", "531210"},
			RiskAppetite:      []string{"construction", "contractor", "real_estate"},
			RiskAversions:     []string{"restaurant", "bar"},
			AvgTurnaroundDays: 5.0,
			AcceptanceRate:    0.68,
			CurrentWorkload:   models.WorkloadLow,
			Notes:             "Conservative underwriter. Thorough review process but reliable approvals.",
		},
		{
			ID:                9,
			Name:              "Maria Santos",
			Email:             "msantos@heartlanduw.com",
			Phone:             "(816) 555-4567",
			Carrier:           "Heartland Underwriters",
			Regions:           []models.Region{models.RegionMidwest},
			NAICSSpecialties:  []string{"111998", "311999", "445110"},
			RiskAppetite:      []string{"agriculture", "food_processing", "retail"},
			RiskAversions:     []string{"nightclub", "cannabis"},
			AvgTurnaroundDays: 4.5,
			AcceptanceRate:    0.73,
			CurrentWorkload:   models.WorkloadMedium,
			Notes:             "Deep expertise in agricultural risks. Familiar with crop insurance programs.",
		},
		{
			ID:                10,
			Name:              "Kevin O'Brien",
			Email:             "kobrien@peachstateuw.com",
			Phone:             "(770) 555-8901",
			Carrier:           "Peach State Underwriters",
			Regions:           []models.Region{models.RegionSoutheast},
			NAICSSpecialties:  []string{"722410", "722511", "312120", "312130"},
			RiskAppetite:      []string{"restaurant", "bar", "brewery", "winery"},
			RiskAversions:     []string{"heavy_industry", "chemical_processing"},
			AvgTurnaroundDays: 2.0,
			AcceptanceRate:    0.87,
			CurrentWorkload:   models.WorkloadLow,
			Notes:             "Hospitality specialist. Great for craft beverage accounts. Very responsive.",
		},
	}
}
