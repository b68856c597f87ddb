package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"submission-routing-engine/internal/app"
	"submission-routing-engine/internal/config"
	"submission-routing-engine/internal/models"
)

func baseConfig() *config.Config {
	return &config.Config{
		DBHost:                "localhost",
		RoutingTopN:           2,
		ScheduleBufferMinutes: 30,
		ScheduleTimezone:      "UTC",
	}
}

func TestNew_InMemory(t *testing.T) {
	monday := time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC)

	a, err := app.New(context.Background(), baseConfig(), app.WithoutStorage(), app.WithClock(func() time.Time { return monday }))
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.DB)
	assert.Nil(t, a.Storage)
	require.NotNil(t, a.Roster)
	assert.Equal(t, 10, a.RosterSize())
	assert.Equal(t, monday, a.Scheduler.Now())

	pkg, err := a.Engine.ProcessSubmission(context.Background(), &models.DiscoveryCallExtraction{
		BusinessEntity: models.BusinessEntity{
			DBA:     models.StringPtr("Corner Tap"),
			Address: models.Address{State: models.StringPtr("GA")},
		},
		IndustryClassification: models.IndustryClassification{NAICSCode: models.StringPtr("722410")},
	})
	require.NoError(t, err)
	assert.Len(t, pkg.Recommendations, 2)
	assert.Equal(t, monday.Add(30*time.Minute), pkg.Schedule.ScheduledTime)

	_, err = a.Engine.ProcessTranscript(context.Background(), "Broker: hi")
	assert.Error(t, err)
}

func TestNew_UnderwritersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "underwriters.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{
		"name": "Dana Brooks",
		"email": "dana@example.com",
		"regions": ["West"],
		"naics_specialties": ["722410"],
		"risk_appetite": ["bar"],
		"risk_aversions": [],
		"avg_turnaround_days": 2,
		"acceptance_rate": 0.8,
		"current_workload": "low"
	}]`), 0o600))

	cfg := baseConfig()
	cfg.UnderwritersFile = path

	a, err := app.New(context.Background(), cfg, app.WithoutDatabase(), app.WithoutStorage())
	require.NoError(t, err)
	assert.Equal(t, 1, a.RosterSize())
}

func TestNew_BadInputs(t *testing.T) {
	cfg := baseConfig()
	cfg.UnderwritersFile = filepath.Join(t.TempDir(), "missing.json")
	_, err := app.New(context.Background(), cfg, app.WithoutStorage())
	assert.Error(t, err)

	cfg = baseConfig()
	cfg.ScheduleTimezone = "Nowhere/Special"
	_, err = app.New(context.Background(), cfg, app.WithoutStorage())
	assert.Error(t, err)
}
