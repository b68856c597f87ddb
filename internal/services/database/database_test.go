package database_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"submission-routing-engine/internal/models"
	"submission-routing-engine/internal/services/database"
	"submission-routing-engine/internal/services/underwriters"
)

var testDB *database.DB

func TestMain(m *testing.M) {
	// Skip database tests if no database URL is provided
	if os.Getenv("DATABASE_URL") == "" {
		os.Exit(0)
	}

	var err error
	testDB, err = database.NewFromURL(os.Getenv("DATABASE_URL"))
	if err != nil {
		panic("Failed to connect to test database: " + err.Error())
	}
	if err := testDB.Migrate(context.Background()); err != nil {
		panic("Failed to migrate test database: " + err.Error())
	}

	code := m.Run()

	testDB.Close()
	os.Exit(code)
}

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s %d", prefix, time.Now().UnixNano())
}

func TestHealthCheck(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, testDB.HealthCheck(ctx))
}

func TestUnderwriterRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := database.NewUnderwriterRepository(testDB)

	uw := underwriters.Seed()[0]
	uw.Name = uniqueName("Test Underwriter")
	t.Cleanup(func() { _ = repo.Deactivate(ctx, uw.Name) })

	id, err := repo.Upsert(ctx, uw)
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := repo.GetByName(ctx, uw.Name)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uw.Regions, got.Regions)
	assert.Equal(t, uw.NAICSSpecialties, got.NAICSSpecialties)
	assert.Equal(t, uw.CurrentWorkload, got.CurrentWorkload)
	assert.InDelta(t, uw.AcceptanceRate, got.AcceptanceRate, 1e-9)

	require.NoError(t, repo.UpdateWorkload(ctx, uw.Name, models.WorkloadHigh))
	got, err = repo.GetByName(ctx, uw.Name)
	require.NoError(t, err)
	assert.Equal(t, models.WorkloadHigh, got.CurrentWorkload)

	again, err := repo.Upsert(ctx, uw)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	list, err := repo.ListUnderwriters(ctx)
	require.NoError(t, err)
	found := false
	for _, u := range list {
		if u.Name == uw.Name {
			found = true
		}
	}
	assert.True(t, found)

	require.NoError(t, repo.Deactivate(ctx, uw.Name))
	got, err = repo.GetByName(ctx, uw.Name)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUnderwriterRepository_RejectsInvalid(t *testing.T) {
	ctx := context.Background()
	repo := database.NewUnderwriterRepository(testDB)

	bad := underwriters.Seed()[0]
	bad.AcceptanceRate = 1.5
	_, err := repo.Upsert(ctx, bad)
	assert.ErrorIs(t, err, models.ErrInvalidAcceptanceRate)

	_, err = repo.BulkUpsert(ctx, []*models.Underwriter{underwriters.Seed()[1], bad})
	assert.ErrorIs(t, err, models.ErrInvalidAcceptanceRate)

	assert.ErrorIs(t, repo.UpdateWorkload(ctx, "anyone", "swamped"), models.ErrInvalidWorkload)
}

func TestSubmissionRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := database.NewSubmissionRepository(testDB)

	now := time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC)
	status := &models.SubmissionStatus{
		SubmissionID: uniqueName("SUB"),
		BusinessName: "The Rusty Anchor",
		CurrentState: models.StateReceived,
		StateHistory: []models.StateChange{{State: models.StateReceived, Timestamp: now, Notes: "Submission received"}},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repo.Save(ctx, status))

	sendAt := now.Add(27*time.Hour + 30*time.Minute)
	require.NoError(t, status.Transition(models.StateScheduled, "Scheduled", now))
	status.ScheduledSendTime = &sendAt
	status.RecommendedUnderwriter = "Kevin O'Brien"
	require.NoError(t, repo.Save(ctx, status))

	got, err := repo.Get(ctx, status.SubmissionID)
	require.NoError(t, err)
	assert.Equal(t, models.StateScheduled, got.CurrentState)
	assert.Equal(t, "Kevin O'Brien", got.RecommendedUnderwriter)
	require.Len(t, got.StateHistory, 2)
	assert.True(t, got.StateHistory[0].Timestamp.Equal(now))
	require.NotNil(t, got.ScheduledSendTime)
	assert.True(t, got.ScheduledSendTime.Equal(sendAt))

	_, err = repo.Get(ctx, "does-not-exist")
	assert.ErrorIs(t, err, models.ErrSubmissionNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, list)
}
