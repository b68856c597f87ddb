// Transcript upload Lambda entry point, triggered by S3 object creation
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"

	"submission-routing-engine/internal/app"
	"submission-routing-engine/internal/config"
	"submission-routing-engine/internal/handlers"
	"submission-routing-engine/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	_ = utils.InitLogger(cfg.LogLevel)
	defer utils.Sync()

	application, err := app.New(context.Background(), cfg)
	if err != nil {
		panic("Failed to initialize application: " + err.Error())
	}
	defer application.Close()

	if application.Storage == nil {
		panic("S3_BUCKET must be set for the transcript processor")
	}

	handler := handlers.NewSubmissionProcessor(application.Engine, application.Storage)
	lambda.Start(handler.HandleS3Event)
}
