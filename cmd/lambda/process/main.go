// Submission processing Lambda entry point
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

	var objects handlers.ObjectStore
	if application.Storage != nil {
		objects = application.Storage
	}

	handler := handlers.NewSubmissionProcessor(application.Engine, objects)
	lambda.Start(handler.Handle)
}
