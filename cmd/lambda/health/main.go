// Health Check Lambda entry point
package main

import (
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"submission-routing-engine/internal/config"
	"submission-routing-engine/internal/handlers"
	"submission-routing-engine/internal/services/database"
	"submission-routing-engine/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	_ = utils.InitLogger(cfg.LogLevel)
	defer utils.Sync()

	// Report without a database when it is unreachable
	var pinger handlers.Pinger
	if cfg.DatabaseConfigured() {
		if db, err := database.New(cfg); err == nil {
			defer db.Close()
			pinger = db
		}
	}

	handler := handlers.NewHealthHandler(pinger, cfg.Stage, os.Getenv("SERVICE_VERSION"))
	lambda.Start(handler.Handle)
}
