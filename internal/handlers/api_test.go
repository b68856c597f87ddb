package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"submission-routing-engine/internal/handlers"
	"submission-routing-engine/internal/models"
	"submission-routing-engine/internal/services/mapper"
	"submission-routing-engine/internal/services/pipeline"
	"submission-routing-engine/internal/services/router"
	"submission-routing-engine/internal/services/scheduler"
	"submission-routing-engine/internal/services/underwriters"
)

var referenceMonday = time.Date(2025, time.January, 6, 10, 0, 0, 0, time.UTC)

func barExtraction() *models.DiscoveryCallExtraction {
	return &models.DiscoveryCallExtraction{
		BusinessEntity: models.BusinessEntity{
			DBA: models.StringPtr("The Rusty Anchor"),
			Address: models.Address{
				Street:  models.StringPtr("123 Harbor Way"),
				City:    models.StringPtr("Savannah"),
				State:   models.StringPtr("GA"),
				ZipCode: models.StringPtr("31401"),
			},
		},
		IndustryClassification: models.IndustryClassification{
			NAICSCode:           models.StringPtr("722410"),
			BusinessDescription: "Neighborhood bar",
		},
		RevenueDetails: models.RevenueDetails{
			GrossAnnualSales:  models.Float64Ptr(1_200_000),
			AlcoholPercentage: models.Float64Ptr(60),
		},
		RiskFactors: models.RiskFactors{
			Hazards: []string{"Live piano music on weekends"},
		},
		SocialContext: models.SocialContext{
			AvailabilityNotes: "unavailable until 1:00 PM Tuesday",
		},
	}
}

type fixture struct {
	engine  *pipeline.Engine
	handler http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := underwriters.MustSeedStore()
	sched := scheduler.New(scheduler.WithClock(func() time.Time { return referenceMonday }))
	rt := router.NewService(store, 3)
	n := 0
	engine := pipeline.NewEngine(rt, sched, pipeline.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("SUB-%03d", n)
	}))

	api := handlers.NewAPI(handlers.APIConfig{
		Underwriters: store,
		Router:       rt,
		Scheduler:    sched,
		Engine:       engine,
	})
	return &fixture{engine: engine, handler: api.Handler()}
}

func (f *fixture) do(t *testing.T, method, target string, body interface{}) (*httptest.ResponseRecorder, handlers.Response) {
	t.Helper()

	var reader *strings.Reader
	switch b := body.(type) {
	case nil:
		reader = strings.NewReader("")
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = strings.NewReader(string(data))
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	var resp handlers.Response
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func decodeData(t *testing.T, resp handlers.Response, v interface{}) {
	t.Helper()
	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}

func TestAPI_Health(t *testing.T) {
	f := newFixture(t)

	rec, _ := f.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"not configured"`)
}

func TestAPI_Metrics(t *testing.T) {
	f := newFixture(t)

	rec, _ := f.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "routing_requests_total")
}

func TestAPI_ListUnderwriters(t *testing.T) {
	f := newFixture(t)

	rec, resp := f.do(t, http.MethodGet, "/api/underwriters", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Underwriter
	decodeData(t, resp, &list)
	assert.Len(t, list, 10)

	_, resp = f.do(t, http.MethodGet, "/api/underwriters?view=summary", nil)
	var summaries []models.UnderwriterSummary
	decodeData(t, resp, &summaries)
	require.Len(t, summaries, 10)
	assert.Equal(t, "Sarah Mitchell", summaries[0].Name)
}

func TestAPI_Route(t *testing.T) {
	f := newFixture(t)
	form := mapper.Map(barExtraction())

	rec, resp := f.do(t, http.MethodPost, "/api/route", map[string]interface{}{"form": form, "top_n": 2})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, resp.Success)

	var result router.RoutingResult
	decodeData(t, resp, &result)
	require.Len(t, result.Recommendations, 2)
	assert.Equal(t, "Kevin O'Brien", result.Recommendations[0].Underwriter.Name)
	assert.Equal(t, models.RegionSoutheast, *result.Profile.Region)
}

func TestAPI_Route_InvalidRequests(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		body interface{}
	}{
		{"empty body", nil},
		{"not json", "{"},
		{"missing form", map[string]interface{}{"top_n": 2}},
		{"form not object", map[string]interface{}{"form": "bar"}},
		{"top n too large", map[string]interface{}{"form": map[string]interface{}{}, "top_n": 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := f.do(t, http.MethodPost, "/api/route", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, resp.Success)
			assert.Contains(t, resp.Error, "invalid request")
		})
	}
}

func TestAPI_Schedule(t *testing.T) {
	f := newFixture(t)

	rec, resp := f.do(t, http.MethodPost, "/api/schedule", map[string]interface{}{
		"social_context": map[string]string{"availability_notes": "unavailable until 1:00 PM Tuesday"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var action models.ScheduledAction
	decodeData(t, resp, &action)
	assert.Equal(t, time.Date(2025, time.January, 7, 13, 30, 0, 0, time.UTC), action.ScheduledTime.UTC())
	assert.Equal(t, "Unavailable until Tuesday 13:00", action.RespectedConstraint)
}

func TestAPI_Schedule_ExplicitNow(t *testing.T) {
	f := newFixture(t)

	rec, resp := f.do(t, http.MethodPost, "/api/schedule", map[string]interface{}{
		"social_context": map[string]string{},
		"now":            "2025-01-10T16:45:00Z",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var action models.ScheduledAction
	decodeData(t, resp, &action)
	// Friday 17:15 is past close, so Monday opening
	assert.Equal(t, time.Date(2025, time.January, 13, 9, 0, 0, 0, time.UTC), action.ScheduledTime.UTC())
	assert.Equal(t, scheduler.BusinessHoursPolicy, action.RespectedConstraint)
}

func TestAPI_Schedule_UnknownField(t *testing.T) {
	f := newFixture(t)

	rec, _ := f.do(t, http.MethodPost, "/api/schedule", map[string]interface{}{
		"social_context": map[string]string{"mood": "grumpy"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_SubmissionLifecycle(t *testing.T) {
	f := newFixture(t)

	rec, resp := f.do(t, http.MethodPost, "/api/submissions", map[string]interface{}{"extraction": barExtraction()})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var result handlers.ProcessResult
	decodeData(t, resp, &result)
	require.NotNil(t, result.Package)
	assert.Equal(t, "SUB-001", result.Package.Status.SubmissionID)
	assert.Empty(t, result.PackageKey)

	rec, resp = f.do(t, http.MethodGet, "/api/submissions/SUB-001", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var status models.SubmissionStatus
	decodeData(t, resp, &status)
	assert.Equal(t, models.StateScheduled, status.CurrentState)

	rec, _ = f.do(t, http.MethodGet, "/api/pending-actions", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	_, resp = f.do(t, http.MethodGet, "/api/pending-actions?now=2025-01-07T14:00:00Z", nil)
	var pending []models.PendingAction
	decodeData(t, resp, &pending)
	require.Len(t, pending, 1)
	assert.Equal(t, "SUB-001", pending[0].SubmissionID)

	rec, resp = f.do(t, http.MethodPatch, "/api/submissions/SUB-001/state", map[string]string{"state": "sent", "notes": "Email sent"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeData(t, resp, &status)
	assert.Equal(t, models.StateSent, status.CurrentState)

	rec, _ = f.do(t, http.MethodPatch, "/api/submissions/SUB-001/state", map[string]string{"state": "routed"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = f.do(t, http.MethodPatch, "/api/submissions/SUB-001/state", map[string]string{"state": "archived"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_SubmissionErrors(t *testing.T) {
	f := newFixture(t)

	rec, _ := f.do(t, http.MethodGet, "/api/submissions/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/api/submissions", map[string]interface{}{
		"extraction": barExtraction(),
		"transcript": "both at once",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, resp := f.do(t, http.MethodPost, "/api/submissions", map[string]string{"transcript": "Broker: hello"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, resp.Error, "not configured")

	rec, _ = f.do(t, http.MethodPost, "/api/submissions", map[string]string{"transcript_key": "transcripts/a.txt"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec, _ = f.do(t, http.MethodGet, "/api/pending-actions?now=tomorrow", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_UploadURLRouteOnlyWhenConfigured(t *testing.T) {
	f := newFixture(t)

	rec, _ := f.do(t, http.MethodGet, "/api/upload-url?filename=call.txt", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	store := underwriters.MustSeedStore()
	sched := scheduler.New(scheduler.WithClock(func() time.Time { return referenceMonday }))
	rt := router.NewService(store, 3)
	api := handlers.NewAPI(handlers.APIConfig{
		Underwriters: store,
		Router:       rt,
		Scheduler:    sched,
		Engine:       pipeline.NewEngine(rt, sched),
		Uploads:      handlers.NewPresignedURLHandler(fakePresigner{}),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/upload-url?filename=call.txt", nil)
	w := httptest.NewRecorder()
	api.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "transcripts/")
}

func TestAPI_CORSPreflight(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/route", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
