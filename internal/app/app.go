package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"LinkBrief/internal/classify"
	"LinkBrief/internal/config"
	"LinkBrief/internal/domain"
	"LinkBrief/internal/infrastructure/fetcher"
	"LinkBrief/internal/infrastructure/llm"
	"LinkBrief/internal/infrastructure/parser"
	"LinkBrief/internal/infrastructure/scheduler"
	"LinkBrief/internal/infrastructure/storage"
	"LinkBrief/internal/infrastructure/telegram"
	"LinkBrief/internal/logging"
	"LinkBrief/internal/ports"
	"LinkBrief/internal/summarize"
	"LinkBrief/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg        config.Config
	logger     *slog.Logger
	fetcher    *fetcher.Fetcher
	extractor  *parser.Extractor
	classifier *classify.Classifier
	summarizer *summarize.Summarizer
	catalog    *llm.Catalog
	notifier   ports.Notifier

	db         *sql.DB
	repository *storage.SQLiteRepository
}

// New builds the adapters. The database is opened on first use so that
// commands which never store anything do not create it.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	endpoints := llm.Endpoints{
		Anthropic: cfg.AI.AnthropicBaseURL,
		OpenAI:    cfg.AI.OpenAIBaseURL,
		Gemini:    cfg.AI.GeminiBaseURL,
	}
	backends := llm.NewDefaultRegistry(endpoints)

	var notifier ports.Notifier
	if tg := telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID); tg.Configured() {
		notifier = tg
	}

	return &Application{
		cfg:        cfg,
		logger:     baseLogger,
		fetcher:    fetcher.New(&http.Client{Timeout: cfg.Fetch.Timeout}, cfg.Fetch.UserAgent),
		extractor:  parser.NewExtractor(baseLogger.With("component", "parser")),
		classifier: classify.New(backends, baseLogger.With("component", "classifier")),
		summarizer: summarize.New(backends, baseLogger.With("component", "summarizer")),
		catalog:    llm.NewCatalog(endpoints, nil, baseLogger.With("component", "models")),
		notifier:   notifier,
	}
}

// Close releases the database if it was opened.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db, a.repository = nil, nil
	return err
}

func (a *Application) store() (*storage.SQLiteRepository, error) {
	if a.repository != nil {
		return a.repository, nil
	}
	db, err := storage.Open(a.cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", a.cfg.Storage.Path, err)
	}
	a.db = db
	a.repository = storage.NewSQLiteRepository(db)
	return a.repository, nil
}

func (a *Application) pipeline() (*usecase.Pipeline, error) {
	repo, err := a.store()
	if err != nil {
		return nil, err
	}
	return usecase.NewPipeline(usecase.PipelineDeps{
		Fetcher:    a.fetcher,
		Extractor:  a.extractor,
		Classifier: a.classifier,
		Summarizer: a.summarizer,
		Repository: repo,
		Notifier:   a.notifier,
		Logger:     a.logger.With("component", "pipeline"),
		Workers:    a.cfg.Pipeline.Workers,
	}), nil
}

// Ingest runs the pipeline once over the messages from source.
func (a *Application) Ingest(ctx context.Context, source ports.MessageSource) (usecase.Report, error) {
	pipeline, err := a.pipeline()
	if err != nil {
		return usecase.Report{}, err
	}
	messages, err := source.Messages(ctx)
	if err != nil {
		return usecase.Report{}, err
	}
	return pipeline.Ingest(ctx, messages, a.cfg.AI.Domain())
}

// Watch re-runs ingestion on the configured interval until ctx is done.
func (a *Application) Watch(ctx context.Context, source ports.MessageSource) error {
	pipeline, err := a.pipeline()
	if err != nil {
		return err
	}

	driver := scheduler.NewIntervalScheduler(a.cfg.Scheduler.Interval)
	sched := usecase.NewScheduler(driver, pipeline, source, a.cfg.AI.Domain(), a.logger.With("component", "scheduler"))
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.Info("watching", "interval", a.cfg.Scheduler.Interval)

	<-ctx.Done()
	return sched.Stop(context.WithoutCancel(ctx))
}

// Scrape fetches and extracts a single page.
func (a *Application) Scrape(ctx context.Context, url string) (domain.ScrapedContent, error) {
	return usecase.Scrape(ctx, a.fetcher, a.extractor, url)
}

// Classify runs the collect decision for a single URL.
func (a *Application) Classify(ctx context.Context, url, messageText string) domain.ContentClassification {
	return a.classifier.Classify(ctx, messageText, url, "", "", a.cfg.AI.Domain())
}

// Models lists live models for provider, or the static table when the
// listing comes back empty.
func (a *Application) Models(ctx context.Context, provider domain.Provider) []domain.ModelInfo {
	if a.cfg.AI.APIKey != "" {
		if models := a.catalog.FetchModels(ctx, provider, a.cfg.AI.APIKey); len(models) > 0 {
			return models
		}
	}
	return llm.FallbackModelsFor(provider)
}

// Recent returns the newest stored articles.
func (a *Application) Recent(ctx context.Context, limit uint64) ([]domain.Article, error) {
	repo, err := a.store()
	if err != nil {
		return nil, err
	}
	return repo.Recent(ctx, limit)
}
