package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
)

// Pinger reports database connectivity.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	db           Pinger
	stage        string
	version      string
	underwriters func() int
}

// NewHealthHandler creates a new health handler. db may be nil when the
// service runs without a database.
func NewHealthHandler(db Pinger, stage, version string) *HealthHandler {
	if version == "" {
		version = "1.0.0"
	}
	return &HealthHandler{db: db, stage: stage, version: version}
}

// WithUnderwriterCount reports the size of the in-memory roster.
func (h *HealthHandler) WithUnderwriterCount(count func() int) *HealthHandler {
	h.underwriters = count
	return h
}

// HealthResponse is the response structure for health checks.
type HealthResponse struct {
	Status       string `json:"status"`
	Timestamp    string `json:"timestamp"`
	Service      string `json:"service"`
	Version      string `json:"version"`
	Stage        string `json:"stage"`
	Database     string `json:"database,omitempty"`
	Underwriters *int   `json:"underwriters,omitempty"`
}

// Check builds the health report.
func (h *HealthHandler) Check(ctx context.Context) HealthResponse {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   "submission-routing-engine",
		Version:   h.version,
		Stage:     h.stage,
	}

	// Check database connectivity
	if h.db != nil {
		if err := h.db.HealthCheck(ctx); err != nil {
			response.Database = "disconnected"
			response.Status = "degraded"
		} else {
			response.Database = "connected"
		}
	} else {
		response.Database = "not configured"
	}

	if h.underwriters != nil {
		n := h.underwriters()
		response.Underwriters = &n
	}

	return response
}

func (h *HealthHandler) statusCode(response HealthResponse) int {
	if response.Status != "healthy" {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}

// Handle processes API Gateway health check requests.
func (h *HealthHandler) Handle(ctx context.Context, _ events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	response := h.Check(ctx)
	return jsonResponse(lambdaHeaders("GET,OPTIONS"), h.statusCode(response), response)
}

// ServeHTTP serves the same report over HTTP.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := h.Check(r.Context())
	writeJSON(w, h.statusCode(response), response)
}
