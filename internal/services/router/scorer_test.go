package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"submission-routing-engine/internal/models"
	"submission-routing-engine/internal/services/router"
	"submission-routing-engine/internal/services/underwriters"
)

// mockUnderwriter creates a test underwriter with default values
func mockUnderwriter(overrides map[string]interface{}) *models.Underwriter {
	u := &models.Underwriter{
		ID:                1,
		Name:              "Test Underwriter",
		Email:             "uw@example.com",
		Regions:           []models.Region{models.RegionSoutheast},
		NAICSSpecialties:  []string{"722410"},
		RiskAppetite:      []string{"bar"},
		RiskAversions:     []string{},
		AvgTurnaroundDays: 2.0,
		AcceptanceRate:    0.87,
		CurrentWorkload:   models.WorkloadLow,
	}

	if v, ok := overrides["id"]; ok {
		u.ID = v.(int64)
	}
	if v, ok := overrides["name"]; ok {
		u.Name = v.(string)
	}
	if v, ok := overrides["regions"]; ok {
		u.Regions = v.([]models.Region)
	}
	if v, ok := overrides["naics_specialties"]; ok {
		u.NAICSSpecialties = v.([]string)
	}
	if v, ok := overrides["risk_appetite"]; ok {
		u.RiskAppetite = v.([]string)
	}
	if v, ok := overrides["risk_aversions"]; ok {
		u.RiskAversions = v.([]string)
	}
	if v, ok := overrides["avg_turnaround_days"]; ok {
		u.AvgTurnaroundDays = v.(float64)
	}
	if v, ok := overrides["acceptance_rate"]; ok {
		u.AcceptanceRate = v.(float64)
	}
	if v, ok := overrides["current_workload"]; ok {
		u.CurrentWorkload = v.(models.Workload)
	}

	return u
}

// barProfile is the Southeast bar profile used across routing tests
func barProfile() models.RiskProfile {
	return models.RiskProfile{
		NAICSCode:       models.StringPtr("722410"),
		Region:          models.RegionPtr(models.RegionSoutheast),
		Hazards:         []string{"alcohol_service"},
		LiquorLiability: true,
		BusinessType:    models.StringPtr("bar"),
		Urgency:         models.UrgencyStandard,
	}
}

func TestScore_BarSpecialistScenario(t *testing.T) {
	b := router.Score(mockUnderwriter(nil), barProfile())

	assert.Equal(t, 25.0, b.RegionMatch)
	assert.Equal(t, 30.0, b.NAICSSpecialty)
	assert.Equal(t, 20.0, b.RiskAppetite)
	assert.InDelta(t, 12.0, b.TurnaroundSpeed, 1e-9)
	assert.InDelta(t, 8.7, b.AcceptanceRate, 1e-9)
	assert.Equal(t, 10.0, b.WorkloadAdjustment)
	assert.InDelta(t, 105.7, b.Total, 1e-9)
}

func TestScore_TotalIsExactSum(t *testing.T) {
	profiles := []models.RiskProfile{
		barProfile(),
		{Urgency: models.UrgencyRush},
		{
			NAICSCode:    models.StringPtr("541511"),
			Region:       models.RegionPtr(models.RegionWest),
			BusinessType: nil,
			Hazards:      []string{"cannabis"},
			Urgency:      models.UrgencyFlexible,
		},
		{
			NAICSCode:    models.StringPtr("722599"),
			Region:       models.RegionPtr(models.RegionMidwest),
			BusinessType: models.StringPtr("restaurant"),
			Hazards:      []string{"live_entertainment", "nightclub"},
		},
	}

	for _, u := range underwriters.Seed() {
		for _, p := range profiles {
			b := router.Score(u, p)
			expected := b.RegionMatch + b.NAICSSpecialty + b.RiskAppetite +
				b.TurnaroundSpeed + b.AcceptanceRate + b.WorkloadAdjustment
			assert.Equal(t, expected, b.Total, u.Name)
		}
	}
}

func TestScoreRegionMatch(t *testing.T) {
	profile := barProfile()

	exact := mockUnderwriter(nil)
	assert.Equal(t, 25.0, router.ScoreRegionMatch(exact, profile))

	adjacent := mockUnderwriter(map[string]interface{}{
		"regions": []models.Region{models.RegionNortheast},
	})
	assert.Equal(t, 12.5, router.ScoreRegionMatch(adjacent, profile))

	unrelated := mockUnderwriter(map[string]interface{}{
		"regions": []models.Region{models.RegionWest},
	})
	assert.Equal(t, 0.0, router.ScoreRegionMatch(unrelated, profile))

	none := mockUnderwriter(map[string]interface{}{
		"regions": []models.Region{},
	})
	assert.Equal(t, 0.0, router.ScoreRegionMatch(none, profile))
}

func TestScoreRegionMatch_NilRegionAlwaysZero(t *testing.T) {
	profile := barProfile()
	profile.Region = nil

	for _, u := range underwriters.Seed() {
		assert.Equal(t, 0.0, router.ScoreRegionMatch(u, profile), u.Name)
		assert.Equal(t, 0.0, router.Score(u, profile).RegionMatch, u.Name)
	}
}

func TestScoreNAICSSpecialty(t *testing.T) {
	profile := barProfile()

	assert.Equal(t, 30.0, router.ScoreNAICSSpecialty(mockUnderwriter(nil), profile))

	sameGroup := mockUnderwriter(map[string]interface{}{
		"naics_specialties": []string{"722411"},
	})
	assert.InDelta(t, 21.0, router.ScoreNAICSSpecialty(sameGroup, profile), 1e-9)

	otherGroup := mockUnderwriter(map[string]interface{}{
		"naics_specialties": []string{"722511", "541511"},
	})
	assert.Equal(t, 0.0, router.ScoreNAICSSpecialty(otherGroup, profile))

	profile.NAICSCode = nil
	assert.Equal(t, 0.0, router.ScoreNAICSSpecialty(mockUnderwriter(nil), profile))
}

func TestScoreRiskAppetite(t *testing.T) {
	profile := barProfile()

	t.Run("appetite match", func(t *testing.T) {
		assert.Equal(t, 20.0, router.ScoreRiskAppetite(mockUnderwriter(nil), profile))
	})

	t.Run("business type aversion", func(t *testing.T) {
		u := mockUnderwriter(map[string]interface{}{
			"risk_appetite":  []string{"technology"},
			"risk_aversions": []string{"bar"},
		})
		assert.Equal(t, -50.0, router.ScoreRiskAppetite(u, profile))
	})

	t.Run("hazard aversion", func(t *testing.T) {
		u := mockUnderwriter(map[string]interface{}{
			"risk_appetite":  []string{},
			"risk_aversions": []string{"alcohol_service"},
		})
		assert.Equal(t, -50.0, router.ScoreRiskAppetite(u, profile))
	})

	t.Run("appetite short-circuits hazard aversion", func(t *testing.T) {
		u := mockUnderwriter(map[string]interface{}{
			"risk_appetite":  []string{"bar"},
			"risk_aversions": []string{"alcohol_service"},
		})
		assert.Equal(t, 20.0, router.ScoreRiskAppetite(u, profile))
	})

	t.Run("neutral", func(t *testing.T) {
		u := mockUnderwriter(map[string]interface{}{
			"risk_appetite":  []string{"retail"},
			"risk_aversions": []string{"mining"},
		})
		assert.Equal(t, 0.0, router.ScoreRiskAppetite(u, profile))
	})

	t.Run("unknown business type ignores hazard aversions", func(t *testing.T) {
		p := profile
		p.BusinessType = nil
		u := mockUnderwriter(map[string]interface{}{
			"risk_aversions": []string{"alcohol_service"},
		})
		assert.Equal(t, 0.0, router.ScoreRiskAppetite(u, p))
	})
}

func TestScoreTurnaround(t *testing.T) {
	tests := []struct {
		name     string
		days     float64
		urgency  models.Urgency
		expected float64
	}{
		{"same day", 1.0, models.UrgencyStandard, 15},
		{"three days", 3.0, models.UrgencyStandard, 12},
		{"five days", 5.0, models.UrgencyStandard, 7.5},
		{"slow", 6.0, models.UrgencyStandard, 3},
		{"rush capped", 2.0, models.UrgencyRush, 15},
		{"rush slow", 6.0, models.UrgencyRush, 4.5},
		{"flexible", 2.0, models.UrgencyFlexible, 6},
		{"empty urgency is standard", 2.0, "", 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := mockUnderwriter(map[string]interface{}{"avg_turnaround_days": tt.days})
			p := models.RiskProfile{Urgency: tt.urgency}
			got := router.ScoreTurnaround(u, p)
			assert.InDelta(t, tt.expected, got, 1e-9)
			assert.LessOrEqual(t, got, router.TurnaroundMaxPoints)
		})
	}
}

func TestScoreAcceptanceRate(t *testing.T) {
	assert.Equal(t, 0.0, router.ScoreAcceptanceRate(mockUnderwriter(map[string]interface{}{"acceptance_rate": 0.0})))
	assert.Equal(t, 10.0, router.ScoreAcceptanceRate(mockUnderwriter(map[string]interface{}{"acceptance_rate": 1.0})))
	assert.InDelta(t, 5.5, router.ScoreAcceptanceRate(mockUnderwriter(map[string]interface{}{"acceptance_rate": 0.55})), 1e-9)
}

func TestScoreWorkload(t *testing.T) {
	assert.Equal(t, 10.0, router.ScoreWorkload(mockUnderwriter(map[string]interface{}{"current_workload": models.WorkloadLow})))
	assert.Equal(t, 0.0, router.ScoreWorkload(mockUnderwriter(map[string]interface{}{"current_workload": models.WorkloadMedium})))
	assert.Equal(t, -15.0, router.ScoreWorkload(mockUnderwriter(map[string]interface{}{"current_workload": models.WorkloadHigh})))
}
