package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"submission-routing-engine/internal/models"
	"submission-routing-engine/internal/services/extractor"
	"submission-routing-engine/internal/services/pipeline"
	s3service "submission-routing-engine/internal/services/s3"
	"submission-routing-engine/internal/utils"
)

// ErrStorageNotConfigured is returned when a transcript key is given but no
// object store is wired.
var ErrStorageNotConfigured = errors.New("transcript storage is not configured")

// ObjectStore reads transcripts and stores processed packages.
type ObjectStore interface {
	DownloadTranscript(ctx context.Context, key string) (string, error)
	UploadPackage(ctx context.Context, pkg *models.SubmissionPackage) (string, error)
}

// SubmissionProcessor turns submission requests and transcript uploads into
// processed submissions.
type SubmissionProcessor struct {
	engine  *pipeline.Engine
	objects ObjectStore
}

// NewSubmissionProcessor creates a processor. objects may be nil, in which
// case transcript keys are rejected and packages are not uploaded.
func NewSubmissionProcessor(engine *pipeline.Engine, objects ObjectStore) *SubmissionProcessor {
	return &SubmissionProcessor{engine: engine, objects: objects}
}

// ProcessResult is returned for every processed submission.
type ProcessResult struct {
	Package    *models.SubmissionPackage `json:"package"`
	PackageKey string                    `json:"package_key,omitempty"`
}

// Process runs one submission request through the pipeline.
func (p *SubmissionProcessor) Process(ctx context.Context, req SubmissionRequest) (*ProcessResult, error) {
	var (
		pkg *models.SubmissionPackage
		err error
	)

	switch {
	case req.Extraction != nil:
		pkg, err = p.engine.ProcessSubmission(ctx, req.Extraction)
	case req.Transcript != "":
		pkg, err = p.engine.ProcessTranscript(ctx, req.Transcript)
	case req.TranscriptKey != "":
		if p.objects == nil {
			return nil, ErrStorageNotConfigured
		}
		transcript, dlErr := p.objects.DownloadTranscript(ctx, req.TranscriptKey)
		if dlErr != nil {
			return nil, fmt.Errorf("failed to load transcript: %w", dlErr)
		}
		pkg, err = p.engine.ProcessTranscript(ctx, transcript)
	default:
		return nil, fmt.Errorf("%w: extraction, transcript or transcript_key is required", ErrInvalidRequest)
	}
	if err != nil {
		return nil, err
	}

	result := &ProcessResult{Package: pkg}
	if p.objects != nil {
		key, err := p.objects.UploadPackage(ctx, pkg)
		if err != nil {
			return nil, fmt.Errorf("failed to store submission package: %w", err)
		}
		result.PackageKey = key
	}

	return result, nil
}

// Handle processes API Gateway requests to submit a discovery call.
func (p *SubmissionProcessor) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	headers := lambdaHeaders("POST,OPTIONS")

	// Handle CORS preflight
	if request.HTTPMethod == http.MethodOptions {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers:    headers,
		}, nil
	}

	var req SubmissionRequest
	if err := decodeRequest(submissionSchema, []byte(request.Body), &req); err != nil {
		return errorResponse(headers, http.StatusBadRequest, err.Error())
	}

	result, err := p.Process(ctx, req)
	if err != nil {
		utils.Logger.Error("Failed to process submission", zap.Error(err))
		return errorResponse(headers, statusFor(err), err.Error())
	}

	return jsonResponse(headers, http.StatusCreated, result)
}

// S3ProcessResult summarizes one transcript upload event.
type S3ProcessResult struct {
	Message     string   `json:"message"`
	Submissions []string `json:"submissions"`
	Errors      []string `json:"errors,omitempty"`
}

// HandleS3Event processes transcripts uploaded under the transcripts prefix.
// Other keys are ignored.
func (p *SubmissionProcessor) HandleS3Event(ctx context.Context, s3Event events.S3Event) (S3ProcessResult, error) {
	result := S3ProcessResult{Submissions: []string{}}
	if len(s3Event.Records) == 0 {
		result.Message = "No records to process"
		return result, nil
	}

	for _, record := range s3Event.Records {
		key, err := url.QueryUnescape(record.S3.Object.Key)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: failed to decode key: %v", record.S3.Object.Key, err))
			continue
		}
		if !strings.HasPrefix(key, s3service.TranscriptPrefix) {
			continue
		}

		utils.Logger.Info("Processing transcript",
			zap.String("bucket", record.S3.Bucket.Name),
			zap.String("key", key),
		)

		processed, err := p.Process(ctx, SubmissionRequest{TranscriptKey: key})
		if err != nil {
			utils.Logger.Error("Failed to process transcript", zap.String("key", key), zap.Error(err))
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", key, err))
			continue
		}
		result.Submissions = append(result.Submissions, processed.Package.Status.SubmissionID)
	}

	result.Message = fmt.Sprintf("Processed %d transcript(s)", len(result.Submissions))
	if len(result.Submissions) == 0 && len(result.Errors) > 0 {
		return result, fmt.Errorf("no transcripts processed: %s", strings.Join(result.Errors, "; "))
	}
	return result, nil
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, extractor.ErrEmptyTranscript):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrSubmissionNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, extractor.ErrExtractorNotConfigured), errors.Is(err, ErrStorageNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
