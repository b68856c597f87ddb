package extractor_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"submission-routing-engine/internal/services/extractor"
)

const extractionJSON = `{
  "business_entity": {"legal_name": "Harbor Hospitality LLC", "dba": "The Rusty Anchor",
    "address": {"street": "123 Harbor Way", "city": "Savannah", "state": "GA", "zip_code": "31401"},
    "occupancy_type": "Leasing"},
  "industry_classification": {"naics_code": "722410", "sic_code": "5813", "business_description": "Neighborhood bar"},
  "revenue_details": {"gross_annual_sales": 1200000, "alcohol_percentage": 60, "food_percentage": 40},
  "risk_factors": {"hazards": ["Live piano music"], "operating_hours": "4 PM to 2 AM", "special_features": []},
  "insurance_history": {"past_carrier": "State Farm", "past_carrier_context": "personal auto", "current_need": "bar package", "urgency": null},
  "social_context": {"availability_notes": "unavailable until 1:00 PM Tuesday", "preferred_contact_time": null,
    "personal_constraints": "Daughter's recital", "contact_restrictions": ""}
}`

func geminiReply(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []interface{}{
			map[string]interface{}{
				"content": map[string]interface{}{
					"parts": []interface{}{map[string]interface{}{"text": text}},
				},
			},
		},
	}
}

func TestGeminiClient_Extract(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(geminiReply("```json\n" + extractionJSON + "\n```"))
	}))
	defer srv.Close()

	client := extractor.NewGeminiClient("test-key", "gemini-test", extractor.WithBaseURL(srv.URL))
	ext, err := client.Extract(context.Background(), "Broker: Tell me about the bar...")
	require.NoError(t, err)

	assert.Equal(t, "/gemini-test:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Contains(t, gotBody, "contents")

	assert.Equal(t, "The Rusty Anchor", ext.BusinessEntity.DisplayName())
	assert.Equal(t, "GA", *ext.BusinessEntity.Address.State)
	assert.Equal(t, "722410", *ext.IndustryClassification.NAICSCode)
	assert.Equal(t, 60.0, *ext.RevenueDetails.AlcoholPercentage)
	assert.Equal(t, []string{"Live piano music"}, ext.RiskFactors.Hazards)
	assert.Nil(t, ext.InsuranceHistory.Urgency)
	assert.Equal(t, "unavailable until 1:00 PM Tuesday", ext.SocialContext.AvailabilityNotes)
	assert.Empty(t, ext.SocialContext.PreferredContactTime)
}

func TestGeminiClient_NotConfigured(t *testing.T) {
	client := extractor.NewGeminiClient("", "")

	_, err := client.Extract(context.Background(), "anything")
	assert.ErrorIs(t, err, extractor.ErrExtractorNotConfigured)
}

func TestGeminiClient_EmptyTranscript(t *testing.T) {
	client := extractor.NewGeminiClient("key", "")

	_, err := client.Extract(context.Background(), "   ")
	assert.ErrorIs(t, err, extractor.ErrEmptyTranscript)
}

func TestGeminiClient_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := extractor.NewGeminiClient("key", "", extractor.WithBaseURL(srv.URL))
	_, err := client.Extract(context.Background(), "transcript")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGeminiClient_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	client := extractor.NewGeminiClient("key", "", extractor.WithBaseURL(srv.URL))
	_, err := client.Extract(context.Background(), "transcript")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestParseExtraction(t *testing.T) {
	ext, err := extractor.ParseExtraction("Here you go: " + extractionJSON + " Thanks!")
	require.NoError(t, err)
	assert.Equal(t, "Harbor Hospitality LLC", *ext.BusinessEntity.LegalName)

	_, err = extractor.ParseExtraction("I could not find anything.")
	assert.ErrorIs(t, err, extractor.ErrNoJSON)

	_, err = extractor.ParseExtraction("{not json}")
	require.Error(t, err)

	ext, err = extractor.ParseExtraction(`{"industry_classification": {"business_description": "Cafe"}}`)
	require.NoError(t, err)
	assert.NotNil(t, ext.RiskFactors.Hazards)
	assert.True(t, strings.HasPrefix(ext.BusinessEntity.DisplayName(), "Unknown"))
}
