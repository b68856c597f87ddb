package handlers

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"submission-routing-engine/internal/models"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// ErrInvalidRequest is returned when a request body fails validation.
var ErrInvalidRequest = errors.New("invalid request")

var (
	routeSchema      = mustSchema("route")
	scheduleSchema   = mustSchema("schedule")
	submissionSchema = mustSchema("submission")
	stateSchema      = mustSchema("state")
)

// RouteRequest asks for recommendations for a mapped form.
type RouteRequest struct {
	Form *models.MappedForm `json:"form"`
	TopN int                `json:"top_n,omitempty"`
}

// ScheduleRequest asks for the next contact slot. Now defaults to the
// scheduler's clock.
type ScheduleRequest struct {
	SocialContext models.SocialContext `json:"social_context"`
	Now           *time.Time           `json:"now,omitempty"`
}

// SubmissionRequest carries one of an extraction, a raw transcript or the
// S3 key of a transcript.
type SubmissionRequest struct {
	Extraction    *models.DiscoveryCallExtraction `json:"extraction,omitempty"`
	Transcript    string                          `json:"transcript,omitempty"`
	TranscriptKey string                          `json:"transcript_key,omitempty"`
}

// StateRequest moves a submission to a later lifecycle state.
type StateRequest struct {
	State models.SubmissionState `json:"state"`
	Notes string                 `json:"notes,omitempty"`
}

func mustSchema(name string) *gojsonschema.Schema {
	data, err := schemaFS.ReadFile("schemas/" + name + ".json")
	if err != nil {
		panic(fmt.Sprintf("missing request schema %s: %v", name, err))
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		panic(fmt.Sprintf("invalid request schema %s: %v", name, err))
	}
	return schema
}

// decodeRequest validates body against schema and decodes it into v.
func decodeRequest(schema *gojsonschema.Schema, body []byte, v interface{}) error {
	if len(strings.TrimSpace(string(body))) == 0 {
		return fmt.Errorf("%w: empty body", ErrInvalidRequest)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(errs, "; "))
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}
