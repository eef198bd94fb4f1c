package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/asaskevich/EventBus"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/jobscout/internal/clients/browser"
	"github.com/maxaizer/jobscout/internal/clients/gemini"
	"github.com/maxaizer/jobscout/internal/clients/groq"
	"github.com/maxaizer/jobscout/internal/clients/sheets"
	"github.com/maxaizer/jobscout/internal/config"
	"github.com/maxaizer/jobscout/internal/logger"
	"github.com/maxaizer/jobscout/internal/metrics"
	"github.com/maxaizer/jobscout/internal/profile"
	"github.com/maxaizer/jobscout/internal/repositories"
	"github.com/maxaizer/jobscout/internal/scraper/linkedin"
	"github.com/maxaizer/jobscout/internal/services"
	log "github.com/sirupsen/logrus"
)

func createBackends(ctx context.Context, cfg config.AIConfig) (backends []services.ScoringBackend, cleanup func()) {

	cleanup = func() {}
	var fast, paid services.ScoringBackend

	if cfg.GroqKey != "" {
		client := groq.NewClient(cfg.GroqKey, cfg.GroqModel)
		client.SetMinuteRateLimit(cfg.MaxRequestsPerMinute)
		client.SetDayRateLimit(cfg.MaxRequestsPerDay)
		fast = client
	}

	if cfg.GeminiKey != "" {
		client, err := gemini.NewClient(ctx, cfg.GeminiKey, gemini.Model(cfg.GeminiModel))
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeAiApi).Errorf("can't create gemini client: %v", err)
		} else {
			client.SetMinuteRateLimit(cfg.MaxRequestsPerMinute)
			client.SetDayRateLimit(cfg.MaxRequestsPerDay)
			paid = client
			cleanup = func() { _ = client.Close() }
		}
	}

	order := []services.ScoringBackend{fast, paid}
	if cfg.Backend == config.BackendGemini {
		order = []services.ScoringBackend{paid, fast}
	}
	for _, backend := range order {
		if backend != nil {
			backends = append(backends, backend)
		}
	}

	if len(backends) == 0 {
		log.Warn("no AI credentials configured, postings will be scored by keyword overlap")
	}
	return backends, cleanup
}

func createStore(ctx context.Context, cfg config.StoreConfig, dbContext *repositories.DbContext) (services.JobStore, error) {

	if cfg.Backend != config.StoreSheets {
		return repositories.NewJobsRepository(dbContext.DB), nil
	}

	store, err := sheets.NewStore(ctx, sheets.Options{
		SpreadsheetID:   cfg.SpreadsheetID,
		SheetName:       cfg.SheetName,
		CredentialsFile: cfg.CredentialsFile,
		MaxAttempts:     3,
		Backoff:         2 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	if err = store.EnsureHeaders(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func startNotifier(cfg config.NotifyConfig, bus EventBus.Bus) {
	if !cfg.Enabled() {
		return
	}

	api, err := botApi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).Errorf("can't create telegram api: %v", err)
		return
	}
	log.Infof("authorized on account %s", api.Self.UserName)

	if _, err = services.NewNotifier(bus, api, cfg.ChatID, cfg.MinScore); err != nil {
		log.Errorf("can't create notifier: %v", err)
	}
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(ctx, cfg.Logger)
	defer logger.Cleanup()

	if cfg.Metrics.Port > 0 {
		metrics.StartMetricsServer(cfg.Metrics.Port)
	}

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	if err = dbContext.Migrate(); err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}
	runs := repositories.NewRunsRepository(dbContext.DB)

	cleaner, err := services.NewRunsCleaner(runs, cfg.Schedule.RunsRetentionDays)
	if err != nil {
		log.Fatalf("can't create runs cleaner: %v", err)
	}
	defer cleaner.Stop()

	lock, err := services.NewRunLock(cfg.DB.LockFile)
	if err != nil {
		log.Fatalf("can't create run lock: %v", err)
	}

	store, err := createStore(ctx, cfg.Store, dbContext)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeStore).Fatalf("can't create store: %v", err)
	}

	session := browser.NewSession(browser.Options{
		Headless:    cfg.Browser.Headless,
		Timeout:     cfg.Browser.Timeout,
		UserAgent:   cfg.Browser.UserAgent,
		CookiesFile: cfg.Browser.CookiesFile,
		Install:     cfg.Browser.Install,
	})
	defer func() {
		if err := session.Close(); err != nil {
			log.Errorf("failed to close browser: %v", err)
		}
	}()

	extractor := linkedin.NewExtractor(session, linkedin.Options{
		BaseURL:     cfg.Browser.BaseURL,
		MinDelay:    cfg.Browser.MinDelay,
		Jitter:      cfg.Browser.Jitter,
		MaxAttempts: cfg.Browser.MaxAttempts,
		Backoff:     cfg.Browser.Backoff,
	})

	backends, closeBackends := createBackends(ctx, cfg.AI)
	defer closeBackends()

	matcher := services.NewMatcher(services.MatcherConfig{
		MaxAttempts:    cfg.AI.MaxAttempts,
		Backoff:        cfg.AI.Backoff,
		RequestTimeout: cfg.AI.RequestTimeout,
		MaxResumeChars: cfg.AI.MaxResumeChars,
	}, backends...)

	bus := EventBus.New()
	startNotifier(cfg.Notify, bus)

	pipeline, err := services.NewPipeline(services.PipelineConfig{
		Categories:             cfg.Search.Categories,
		MaxKeywordsPerCategory: cfg.Search.MaxKeywordsPerCategory,
	}, services.PipelineDeps{
		Extractor: extractor,
		Matcher:   matcher,
		Store:     store,
		Profile:   profile.NewLoader(cfg.Search.ProfilePath),
		Runs:      runs,
		Locker:    lock,
		Bus:       bus,
	})
	if err != nil {
		log.Fatalf("can't create pipeline: %v", err)
	}

	if cfg.Schedule.Cron == "" {
		if _, err = pipeline.Run(ctx); err != nil {
			log.Errorf("run failed: %v", err)
		}
		return
	}

	scheduler, err := services.NewScheduler(ctx, pipeline, cfg.Schedule.Cron)
	if err != nil {
		log.Fatalf("can't create scheduler: %v", err)
	}
	scheduler.Start()

	<-ctx.Done()

	log.Info("Shutting down services...")
	scheduler.Stop()
	log.Info("Services stopped.")
}
