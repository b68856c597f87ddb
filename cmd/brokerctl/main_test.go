package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"submission-routing-engine/internal/models"
)

const barExtractionJSON = `{
  "business_entity": {
    "legal_name": "Harbor Hospitality LLC",
    "dba": "The Rusty Anchor",
    "address": {"street": "123 Harbor Way", "city": "Savannah", "state": "GA", "zip_code": "31401"}
  },
  "industry_classification": {"naics_code": "722410", "business_description": "Neighborhood bar"},
  "revenue_details": {"gross_annual_sales": 1200000, "alcohol_percentage": 60},
  "risk_factors": {"hazards": ["Live piano music on weekends", "Deep fryer"]},
  "social_context": {
    "availability_notes": "unavailable until 1:00 PM Tuesday",
    "contact_restrictions": "don't call tomorrow morning"
  }
}`

const referenceNow = "2025-01-06T10:00:00Z"

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GEMINI_API_KEY", "UNDERWRITERS_FILE", "DB_PASSWORD", "DB_HOST", "ROUTING_TOP_N", "SCHEDULE_TIMEZONE", "SCHEDULE_BUFFER_MINUTES"} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "brokerctl dev\n", out)
}

func TestRoute_Extraction(t *testing.T) {
	isolateEnv(t)
	path := writeFile(t, "extraction.json", barExtractionJSON)

	out, err := run(t, "route", "--extraction", path, "--top", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "UNDERWRITER")
	assert.Contains(t, lines[1], "Kevin O'Brien")
}

func TestRoute_FormJSON(t *testing.T) {
	isolateEnv(t)
	form := `{"accord_125": {"business": {"naics_code": "722410"}}}`
	path := writeFile(t, "form.json", form)

	out, err := run(t, "route", "--form", path, "--json")
	require.NoError(t, err)

	var result struct {
		Recommendations []models.RoutingRecommendation `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Len(t, result.Recommendations, 3)
}

func TestRoute_RequiresOneInput(t *testing.T) {
	isolateEnv(t)

	_, err := run(t, "route")
	require.Error(t, err)

	_, err = run(t, "route", "--form", "a.json", "--extraction", "b.json")
	require.Error(t, err)

	_, err = run(t, "route", "--form", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestSchedule(t *testing.T) {
	isolateEnv(t)

	out, err := run(t, "schedule",
		"--availability", "unavailable until 1:00 PM Tuesday",
		"--restrictions", "don't call tomorrow morning",
		"--now", referenceNow,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Tuesday, Jan 07 2025 13:30 UTC")
	assert.Contains(t, out, "Unavailable until Tuesday 13:00")
}

func TestSchedule_JSONAndTimezone(t *testing.T) {
	isolateEnv(t)

	out, err := run(t, "schedule", "--now", referenceNow, "--json", "--timezone", "UTC")
	require.NoError(t, err)

	var action models.ScheduledAction
	require.NoError(t, json.Unmarshal([]byte(out), &action))
	assert.Equal(t, "2025-01-06T10:30:00Z", action.ScheduledTime.UTC().Format("2006-01-02T15:04:05Z07:00"))

	_, err = run(t, "schedule", "--timezone", "Mars/Olympus")
	require.Error(t, err)

	_, err = run(t, "schedule", "--now", "monday")
	require.Error(t, err)
}

func TestProcess_Extraction(t *testing.T) {
	isolateEnv(t)
	path := writeFile(t, "extraction.json", barExtractionJSON)

	out, err := run(t, "process", "--extraction", path, "--now", referenceNow)
	require.NoError(t, err)
	assert.Contains(t, out, "(scheduled)")
	assert.Contains(t, out, "The Rusty Anchor -> Kevin O'Brien")
	assert.Contains(t, out, "Broker tasks:")

	out, err = run(t, "process", "--extraction", path, "--now", referenceNow, "--json")
	require.NoError(t, err)
	var pkg models.SubmissionPackage
	require.NoError(t, json.Unmarshal([]byte(out), &pkg))
	assert.Equal(t, models.StateScheduled, pkg.Status.CurrentState)
	assert.Equal(t, "Kevin O'Brien", pkg.Status.RecommendedUnderwriter)
}

func TestProcess_TranscriptWithoutExtractor(t *testing.T) {
	isolateEnv(t)
	path := writeFile(t, "call.txt", "Broker: tell me about the bar")

	_, err := run(t, "process", "--transcript", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestUnderwritersList(t *testing.T) {
	isolateEnv(t)

	out, err := run(t, "underwriters", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Kevin O'Brien")
	assert.Contains(t, out, "WORKLOAD")

	out, err = run(t, "uw", "list", "--region", "Southeast", "--naics", "722410")
	require.NoError(t, err)
	assert.Contains(t, out, "Kevin O'Brien")
	for _, line := range strings.Split(strings.TrimSpace(out), "\n")[1:] {
		assert.Contains(t, line, "Southeast")
	}

	out, err = run(t, "uw", "list", "--naics", "000000")
	require.NoError(t, err)
	assert.Equal(t, "No underwriters found.\n", out)

	_, err = run(t, "uw", "list", "--max-workload", "swamped")
	require.Error(t, err)
}

func TestUnderwritersList_FromFile(t *testing.T) {
	isolateEnv(t)
	roster := `[{
  "name": "Dana Cole",
  "regions": ["West"],
  "naics_specialties": ["541511"],
  "risk_appetite": ["technology"],
  "risk_aversions": [],
  "avg_turnaround_days": 1.5,
  "acceptance_rate": 0.9,
  "current_workload": "low"
}]`
	path := writeFile(t, "roster.json", roster)

	out, err := run(t, "--underwriters", path, "uw", "list", "--max-workload", "low")
	require.NoError(t, err)
	assert.Contains(t, out, "Dana Cole")
	assert.Contains(t, out, "90%")
	assert.NotContains(t, out, "Kevin O'Brien")
}

func TestUnderwritersValidate(t *testing.T) {
	csvRoster := `name,regions,naics_specialties,avg_turnaround_days,acceptance_rate,current_workload
Sarah Mitchell,Southeast,722410,2.5,0.82,medium
Broken Row,Atlantis,,x,0.5,low`
	path := writeFile(t, "roster.csv", csvRoster)

	out, err := run(t, "uw", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "1 of 2 rows valid")
	assert.Contains(t, out, "skipped:")

	bad := writeFile(t, "bad.csv", "name,email\nA,a@example.com\n")
	_, err = run(t, "uw", "validate", bad)
	require.Error(t, err)

	badJSON := writeFile(t, "bad.json", `[{"name": "No Regions"}]`)
	_, err = run(t, "uw", "validate", badJSON)
	require.Error(t, err)

	_, err = run(t, "uw", "validate")
	require.Error(t, err)
}

func TestUnderwritersImport_RequiresCSV(t *testing.T) {
	_, err := run(t, "uw", "import")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--csv")
}
