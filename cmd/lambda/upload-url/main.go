// Presigned upload URL Lambda entry point
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"

	"submission-routing-engine/internal/config"
	"submission-routing-engine/internal/handlers"
	s3service "submission-routing-engine/internal/services/s3"
	"submission-routing-engine/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	_ = utils.InitLogger(cfg.LogLevel)
	defer utils.Sync()

	storage, err := s3service.NewService(context.Background(), cfg.AWSRegion, cfg.S3Bucket)
	if err != nil {
		panic("Failed to initialize S3: " + err.Error())
	}

	handler := handlers.NewPresignedURLHandler(storage)
	lambda.Start(handler.Handle)
}
