package handlers

import (
	"context"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"go.uber.org/zap"

	s3service "submission-routing-engine/internal/services/s3"
	"submission-routing-engine/internal/utils"
)

// UploadPresigner issues presigned upload URLs.
type UploadPresigner interface {
	GeneratePresignedUploadURL(ctx context.Context, key string, contentType string, expiryMinutes int) (*s3service.PresignedURLResult, error)
}

// PresignedURLHandler issues upload URLs for call transcripts and
// underwriter rosters.
type PresignedURLHandler struct {
	presigner UploadPresigner
	now       func() time.Time
}

// NewPresignedURLHandler creates a new presigned URL handler.
func NewPresignedURLHandler(presigner UploadPresigner) *PresignedURLHandler {
	return &PresignedURLHandler{presigner: presigner, now: time.Now}
}

// PresignedURLResponse is the response structure for presigned URL requests.
type PresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	S3Key     string `json:"s3Key"`
	ExpiresIn int    `json:"expiresIn"`
}

const uploadExpiryMinutes = 60

// Handle processes the API Gateway request for generating presigned URLs.
func (h *PresignedURLHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	headers := lambdaHeaders("GET,OPTIONS")

	// Handle CORS preflight
	if request.HTTPMethod == http.MethodOptions {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers:    headers,
		}, nil
	}

	response, status, msg := h.generate(ctx, request.QueryStringParameters["filename"])
	if response == nil {
		return errorResponse(headers, status, msg)
	}
	return jsonResponse(headers, http.StatusOK, response)
}

// ServeHTTP handles GET /api/upload-url?filename=.
func (h *PresignedURLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response, status, msg := h.generate(r.Context(), r.URL.Query().Get("filename"))
	if response == nil {
		writeError(w, status, msg)
		return
	}
	writeData(w, http.StatusOK, response)
}

func (h *PresignedURLHandler) generate(ctx context.Context, filename string) (*PresignedURLResponse, int, string) {
	if filename == "" {
		filename = "call_" + uuid.New().String()[:8] + ".txt"
	}

	// Transcripts are plain text, rosters are CSV
	var prefix, contentType string
	switch strings.ToLower(path.Ext(filename)) {
	case ".txt":
		prefix, contentType = s3service.TranscriptPrefix, "text/plain"
	case ".csv":
		prefix, contentType = RosterPrefix, "text/csv"
	default:
		return nil, http.StatusBadRequest, "Only .txt transcripts and .csv rosters are allowed"
	}

	safe := sanitizeFilename(filename)
	if safe == "" {
		return nil, http.StatusBadRequest, "Invalid filename"
	}

	timestamp := h.now().UTC().Format("2006/01/02")
	s3Key := prefix + timestamp + "/" + uuid.New().String() + "_" + safe

	result, err := h.presigner.GeneratePresignedUploadURL(ctx, s3Key, contentType, uploadExpiryMinutes)
	if err != nil {
		utils.Logger.Error("Failed to generate presigned URL", zap.Error(err))
		return nil, http.StatusInternalServerError, "Failed to generate upload URL"
	}

	return &PresignedURLResponse{
		UploadURL: result.URL,
		S3Key:     s3Key,
		ExpiresIn: uploadExpiryMinutes * 60,
	}, http.StatusOK, ""
}

// sanitizeFilename removes unsafe characters from filename.
func sanitizeFilename(filename string) string {
	var b strings.Builder
	for _, r := range path.Base(filename) {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	safe := b.String()
	if len(safe) > 100 {
		safe = safe[:100]
	}
	return strings.TrimLeft(safe, ".")
}
