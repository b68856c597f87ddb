// Package extractor turns a discovery-call transcript into a structured
// extraction using the Gemini generateContent API.
package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"submission-routing-engine/internal/models"
	"submission-routing-engine/internal/utils"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-1.5-flash"

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// Extraction errors
var (
	ErrExtractorNotConfigured = errors.New("extractor not configured: missing API key")
	ErrEmptyTranscript        = errors.New("transcript is empty")
	ErrNoJSON                 = errors.New("no JSON found in response")
)

// Extractor produces a structured extraction from transcript text.
type Extractor interface {
	Extract(ctx context.Context, transcript string) (*models.DiscoveryCallExtraction, error)
}

// GeminiClient calls the Gemini API.
type GeminiClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// Option configures a GeminiClient.
type Option func(*GeminiClient)

// WithBaseURL points the client at a different endpoint, such as a test server.
func WithBaseURL(url string) Option {
	return func(c *GeminiClient) { c.baseURL = strings.TrimRight(url, "/") }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *GeminiClient) { c.client = hc }
}

// NewGeminiClient creates a client for the model. An empty model uses DefaultModel.
func NewGeminiClient(apiKey, model string, opts ...Option) *GeminiClient {
	if model == "" {
		model = DefaultModel
	}
	c := &GeminiClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Extract sends the transcript to the model and decodes the JSON object in
// its reply.
func (c *GeminiClient) Extract(ctx context.Context, transcript string) (*models.DiscoveryCallExtraction, error) {
	if c.apiKey == "" {
		return nil, ErrExtractorNotConfigured
	}
	if strings.TrimSpace(transcript) == "" {
		return nil, ErrEmptyTranscript
	}

	requestBody := map[string]interface{}{
		"systemInstruction": map[string]interface{}{
			"parts": []map[string]string{{"text": systemPrompt}},
		},
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]string{
					{"text": "Extract structured data from this discovery call transcript:\n\n" + transcript},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":      0.1,
			"responseMimeType": "application/json",
		},
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	ext, err := parseResponse(&result)
	if err != nil {
		return nil, err
	}

	utils.Logger.Info("Transcript extracted",
		zap.String("model", c.model),
		zap.String("business", ext.BusinessEntity.DisplayName()),
		zap.Int("hazards", len(ext.RiskFactors.Hazards)),
		zap.Duration("duration", time.Since(start)),
	)

	return ext, nil
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// parseResponse extracts the JSON object from the first candidate part.
func parseResponse(result *generateResponse) (*models.DiscoveryCallExtraction, error) {
	if len(result.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in response")
	}
	parts := result.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return nil, fmt.Errorf("no parts in response")
	}

	return ParseExtraction(parts[0].Text)
}

// ParseExtraction decodes the first JSON object found in text. Models often
// wrap JSON in prose or code fences.
func ParseExtraction(text string) (*models.DiscoveryCallExtraction, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, ErrNoJSON
	}

	var ext models.DiscoveryCallExtraction
	if err := json.Unmarshal([]byte(text[start:end+1]), &ext); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if ext.RiskFactors.Hazards == nil {
		ext.RiskFactors.Hazards = []string{}
	}

	return &ext, nil
}

const systemPrompt = `You are an insurance data extraction agent for a commercial broker.

Extract structured data from discovery call transcripts:

1. BUSINESS DETAILS: legal name, DBA, address (street, city, state, zip_code) and occupancy type (leasing or owning).

2. INDUSTRY CLASSIFICATION: infer NAICS and SIC codes from the business description.
   - Bars/Taverns: NAICS 722410, SIC 5813

3. REVENUE: gross_annual_sales in USD, alcohol_percentage and food_percentage as 0-100.

4. RISK FACTORS: every hazard affecting the risk profile (live entertainment, deep fryers, grills,
   late hours), operating_hours and special_features.

5. INSURANCE HISTORY: keep past_carrier and past_carrier_context (what the old policy covered)
   separate from current_need and urgency.

6. SOCIAL CONTEXT: availability_notes, preferred_contact_time, personal_constraints and
   contact_restrictions (when NOT to call), as plain strings.

Never invent data. Use null for anything not mentioned.

Respond ONLY with one JSON object using these keys:
{
  "business_entity": {"legal_name": null, "dba": null, "address": {"street": null, "city": null, "state": null, "zip_code": null}, "occupancy_type": null},
  "industry_classification": {"naics_code": null, "sic_code": null, "business_description": ""},
  "revenue_details": {"gross_annual_sales": null, "alcohol_percentage": null, "food_percentage": null},
  "risk_factors": {"hazards": [], "operating_hours": null, "special_features": []},
  "insurance_history": {"past_carrier": null, "past_carrier_context": null, "current_need": null, "urgency": null},
  "social_context": {"availability_notes": "", "preferred_contact_time": "", "personal_constraints": "", "contact_restrictions": ""}
}`
