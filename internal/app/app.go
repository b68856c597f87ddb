// Package app wires configuration, storage and services into a runnable
// engine for the server, the Lambda functions and the CLI.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"submission-routing-engine/internal/config"
	"submission-routing-engine/internal/services/database"
	"submission-routing-engine/internal/services/extractor"
	"submission-routing-engine/internal/services/pipeline"
	"submission-routing-engine/internal/services/router"
	s3service "submission-routing-engine/internal/services/s3"
	"submission-routing-engine/internal/services/scheduler"
	"submission-routing-engine/internal/services/underwriters"
	"submission-routing-engine/internal/utils"
)

// App holds the wired services.
type App struct {
	Config       *config.Config
	DB           *database.DB
	Roster       *underwriters.Store
	Underwriters router.UnderwriterSource
	Router       *router.Service
	Scheduler    *scheduler.Scheduler
	Engine       *pipeline.Engine
	Storage      *s3service.Service
}

type options struct {
	database bool
	storage  bool
	clock    scheduler.Clock
}

// Option configures New.
type Option func(*options)

// WithoutDatabase keeps underwriters and submissions in memory.
func WithoutDatabase() Option {
	return func(o *options) { o.database = false }
}

// WithoutStorage skips S3 wiring.
func WithoutStorage() Option {
	return func(o *options) { o.storage = false }
}

// WithClock overrides the scheduler clock.
func WithClock(c scheduler.Clock) Option {
	return func(o *options) { o.clock = c }
}

// New builds the application from configuration. A database that is
// configured but unreachable is logged and replaced by the in-memory roster.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	o := &options{database: true, storage: true}
	for _, opt := range opts {
		opt(o)
	}

	a := &App{Config: cfg}

	if o.database && cfg.DatabaseConfigured() {
		db, err := database.New(cfg)
		if err != nil {
			utils.Logger.Warn("Could not connect to database, using in-memory roster", zap.Error(err))
		} else {
			a.DB = db
		}
	}

	if a.DB != nil {
		a.Underwriters = database.NewUnderwriterRepository(a.DB)
	} else {
		roster, err := LoadRoster(cfg.UnderwritersFile)
		if err != nil {
			return nil, err
		}
		a.Roster = roster
		a.Underwriters = roster
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	schedOpts := []scheduler.Option{
		scheduler.WithBuffer(cfg.ScheduleBuffer()),
		scheduler.WithLocation(loc),
	}
	if o.clock != nil {
		schedOpts = append(schedOpts, scheduler.WithClock(o.clock))
	}

	a.Router = router.NewService(a.Underwriters, cfg.RoutingTopN)
	a.Scheduler = scheduler.New(schedOpts...)

	engineOpts := []pipeline.Option{}
	if a.DB != nil {
		engineOpts = append(engineOpts, pipeline.WithStore(database.NewSubmissionRepository(a.DB)))
	}
	if cfg.GeminiAPIKey != "" {
		engineOpts = append(engineOpts, pipeline.WithExtractor(extractor.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)))
	}
	a.Engine = pipeline.NewEngine(a.Router, a.Scheduler, engineOpts...)

	if o.storage && cfg.S3Bucket != "" {
		storage, err := s3service.NewService(ctx, cfg.AWSRegion, cfg.S3Bucket)
		if err != nil {
			utils.Logger.Warn("Could not initialize S3, transcript storage disabled", zap.Error(err))
		} else {
			a.Storage = storage
		}
	}

	utils.Logger.Info("Application initialized",
		zap.Bool("database", a.DB != nil),
		zap.Bool("storage", a.Storage != nil),
		zap.Bool("extractor", cfg.GeminiAPIKey != ""),
		zap.Int("top_n", cfg.RoutingTopN),
		zap.Duration("schedule_buffer", cfg.ScheduleBuffer()),
		zap.String("timezone", loc.String()),
	)

	return a, nil
}

// LoadRoster reads the underwriter file, or the built-in roster when path
// is empty.
func LoadRoster(path string) (*underwriters.Store, error) {
	if path == "" {
		return underwriters.NewStore(underwriters.Seed())
	}
	store, err := underwriters.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load underwriters from %s: %w", path, err)
	}
	return store, nil
}

// RosterSize counts the underwriters currently visible to routing.
func (a *App) RosterSize() int {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	list, err := a.Underwriters.ListUnderwriters(ctx)
	if err != nil {
		return 0
	}
	return len(list)
}

// Close releases the database pool.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}
