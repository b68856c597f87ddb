// Package main runs the routing engine as a local HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"submission-routing-engine/internal/app"
	"submission-routing-engine/internal/config"
	"submission-routing-engine/internal/handlers"
	"submission-routing-engine/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := utils.InitLogger(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer utils.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer application.Close()

	var pinger handlers.Pinger
	if application.DB != nil {
		pinger = application.DB
	}
	health := handlers.NewHealthHandler(pinger, cfg.Stage, os.Getenv("SERVICE_VERSION")).
		WithUnderwriterCount(application.RosterSize)

	apiCfg := handlers.APIConfig{
		Underwriters: application.Underwriters,
		Router:       application.Router,
		Scheduler:    application.Scheduler,
		Engine:       application.Engine,
		Health:       health,
	}
	if application.Storage != nil {
		apiCfg.Processor = handlers.NewSubmissionProcessor(application.Engine, application.Storage)
		apiCfg.Uploads = handlers.NewPresignedURLHandler(application.Storage)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		Handler:           handlers.NewAPI(apiCfg).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	utils.Logger.Info("Submission routing API listening",
		zap.String("addr", srv.Addr),
		zap.String("stage", cfg.Stage),
	)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		utils.Logger.Fatal("Server failed", zap.Error(err))
	}
}
