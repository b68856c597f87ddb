package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"submission-routing-engine/internal/models"
	"submission-routing-engine/internal/utils"
)

// RosterPrefix is the S3 prefix for underwriter roster CSV uploads.
const RosterPrefix = "rosters/"

// FileDownloader reads raw objects.
type FileDownloader interface {
	DownloadFile(ctx context.Context, key string) ([]byte, error)
}

// UnderwriterWriter persists underwriter reference data.
type UnderwriterWriter interface {
	BulkUpsert(ctx context.Context, list []*models.Underwriter) (int, error)
}

// UnderwriterImportHandler imports underwriter roster CSV files uploaded to S3.
type UnderwriterImportHandler struct {
	files  FileDownloader
	writer UnderwriterWriter
}

// NewUnderwriterImportHandler creates a new roster import handler.
func NewUnderwriterImportHandler(files FileDownloader, writer UnderwriterWriter) *UnderwriterImportHandler {
	return &UnderwriterImportHandler{files: files, writer: writer}
}

// ImportResult is the result of importing a roster file.
type ImportResult struct {
	Message  string   `json:"message"`
	Key      string   `json:"key,omitempty"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// Handle processes S3 events for uploaded roster files.
func (h *UnderwriterImportHandler) Handle(ctx context.Context, s3Event events.S3Event) (ImportResult, error) {
	if len(s3Event.Records) == 0 {
		return ImportResult{Message: "No records to process"}, nil
	}

	record := s3Event.Records[0]
	key, err := url.QueryUnescape(record.S3.Object.Key)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to decode S3 key: %w", err)
	}
	if !strings.HasPrefix(key, RosterPrefix) {
		return ImportResult{Message: "Ignored " + key, Key: key}, nil
	}

	utils.Logger.Info("Importing underwriter roster",
		zap.String("bucket", record.S3.Bucket.Name),
		zap.String("key", key),
	)

	content, err := h.files.DownloadFile(ctx, key)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to download roster: %w", err)
	}

	result, err := h.Import(ctx, string(content))
	result.Key = key
	return result, err
}

// Import parses roster CSV content and upserts every valid row. Invalid rows
// are skipped and reported.
func (h *UnderwriterImportHandler) Import(ctx context.Context, content string) (ImportResult, error) {
	parser := utils.NewCSVParser()
	list, parseErrors := parser.ParseUnderwriters(content)

	skipped := 0
	errMsgs := make([]string, 0, len(parseErrors))
	for _, e := range parseErrors {
		if !errors.Is(e, utils.ErrNoDataRows) {
			skipped++
		}
		errMsgs = append(errMsgs, e.Error())
	}

	// Limit errors in response
	if len(errMsgs) > 10 {
		errMsgs = errMsgs[:10]
	}

	if len(list) == 0 {
		return ImportResult{
			Message: "No valid underwriters found in CSV",
			Skipped: skipped,
			Errors:  errMsgs,
		}, nil
	}

	imported, err := h.writer.BulkUpsert(ctx, list)
	if err != nil {
		utils.Logger.Error("Failed to import underwriters", zap.Error(err))
		return ImportResult{}, fmt.Errorf("failed to import underwriters: %w", err)
	}

	utils.Logger.Info("Imported underwriters",
		zap.Int("imported", imported),
		zap.Int("skipped", skipped),
	)

	return ImportResult{
		Message:  "Roster imported successfully",
		Imported: imported,
		Skipped:  skipped,
		Errors:   errMsgs,
	}, nil
}
