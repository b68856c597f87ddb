// Underwriter roster import Lambda entry point, triggered by S3 object creation
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"

	"submission-routing-engine/internal/config"
	"submission-routing-engine/internal/handlers"
	"submission-routing-engine/internal/services/database"
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

	db, err := database.New(cfg)
	if err != nil {
		panic("Failed to connect to database: " + err.Error())
	}
	defer db.Close()

	storage, err := s3service.NewService(context.Background(), cfg.AWSRegion, cfg.S3Bucket)
	if err != nil {
		panic("Failed to initialize S3: " + err.Error())
	}

	handler := handlers.NewUnderwriterImportHandler(storage, database.NewUnderwriterRepository(db))
	lambda.Start(handler.Handle)
}
