package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	"DemandScout/internal/config"
	"DemandScout/internal/extract"
	"DemandScout/internal/infrastructure/crawler"
	"DemandScout/internal/infrastructure/scheduler"
	"DemandScout/internal/infrastructure/storage"
	"DemandScout/internal/infrastructure/telegram"
	"DemandScout/internal/logging"
	"DemandScout/internal/ports"
	transporthttp "DemandScout/internal/transport/http"
	"DemandScout/internal/usecase"
)

// Application wires config to adapters, pipeline, scheduler, and API.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	db        *sql.DB
	store     *storage.PostgresStore
	pipeline  *usecase.Pipeline
	registry  *usecase.RunRegistry
	scheduler *usecase.Scheduler
	server    *http.Server
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	var (
		db    *sql.DB
		store *storage.PostgresStore
	)
	if cfg.Database.DSN != "" {
		var err error
		db, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		store = storage.NewPostgresStore(db)
	}

	httpClient := &http.Client{Timeout: cfg.Crawler.Timeout()}
	source := crawler.NewHackerNewsSource(httpClient, cfg.Crawler.BaseURL, baseLogger.With("component", "crawler.hackernews"))

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	deps := usecase.PipelineDeps{
		Sources:   []ports.PostSource{source},
		Notifier:  notifier,
		Logger:    baseLogger.With("component", "pipeline"),
		Extractor: extract.NewExtractor(cfg.Extractor.Confidence),
	}
	if store != nil {
		deps.Store = store
	}
	pipeline := usecase.NewPipeline(deps)

	registry := usecase.NewRunRegistry()

	cronDriver := scheduler.NewCronScheduler(cfg.Scheduler.CronExpression, cfg.Scheduler.Location())
	sched := usecase.NewScheduler(cronDriver, pipeline, registry, cfg.Crawler.MaxPosts, baseLogger.With("component", "scheduler"))

	var health transporthttp.HealthReader
	if store != nil {
		health = store
	}
	api := transporthttp.NewServer(pipeline, registry, health, cfg.Crawler.MaxPosts, baseLogger.With("component", "api"))
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Application{
		cfg:       cfg,
		logger:    baseLogger,
		db:        db,
		store:     store,
		pipeline:  pipeline,
		registry:  registry,
		scheduler: sched,
		server:    server,
	}, nil
}

// Run starts the scheduler and the API listener, then blocks until the
// context is cancelled.
func (a *Application) Run(ctx context.Context) error {
	if a.store != nil {
		if err := a.store.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("prepare storage: %w", err)
		}
	}

	if err := a.scheduler.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("api listening", "addr", a.cfg.Server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("api server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = a.scheduler.Stop(shutdownCtx)
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("api shutdown", "error", err)
	}
	if a.db != nil {
		_ = a.db.Close()
	}
	return nil
}
