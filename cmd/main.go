package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"github.com/lizsears/contentcal/internal/ai"
	"github.com/lizsears/contentcal/internal/api"
	"github.com/lizsears/contentcal/internal/cache"
	"github.com/lizsears/contentcal/internal/calendar"
	"github.com/lizsears/contentcal/internal/config"
	"github.com/lizsears/contentcal/internal/database"
	"github.com/lizsears/contentcal/internal/generation"
	"github.com/lizsears/contentcal/internal/logger"
	"github.com/lizsears/contentcal/internal/middleware"
	"github.com/lizsears/contentcal/internal/research"
	"github.com/lizsears/contentcal/internal/scheduler"
	"github.com/lizsears/contentcal/internal/similarity"
	"github.com/lizsears/contentcal/internal/tasks"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: "stdout",
		Pretty: cfg.Env == "development",
	}); err != nil {
		panic(err)
	}

	logger.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting content calendar service")

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Info().Uint("version", version).Bool("dirty", dirty).Msg("Database migrations applied")

	var store cache.CacheInterface
	if redisClient, err := cache.NewRedisClient(cfg.RedisURL); err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, using in-memory cache")
		store = cache.NewMockCache()
	} else {
		store = redisClient
	}
	defer store.Close()

	contentRepo := database.NewContentRepo(db)
	researchRepo := database.NewResearchRepo(db)
	jobRepo := database.NewJobRepo(db)
	settingsRepo := database.NewSettingsRepo(db)

	router := ai.NewRouter(cfg)
	embedder := ai.NewOpenAIClient(cfg.OpenAIAPIKey)

	var summarizer ai.Summarizer
	if cfg.AnthropicAPIKey != "" {
		summarizer = ai.NewAnthropicClient(cfg.AnthropicAPIKey)
	}

	gate := similarity.NewGate(embedder, contentRepo)
	queue := tasks.NewEmbeddingQueue(embedder, contentRepo, cfg.EmbedWorkers, cfg.EmbedQueueSize)
	queue.Start()
	defer queue.Stop()

	scraper := research.NewScraper(researchRepo, summarizer, cfg.JinaReaderURL, cfg.JinaAPIKey)
	contextBuilder := research.NewContextBuilder(researchRepo, store, cfg.ResearchContextTTL)

	runner := generation.NewRunner(
		contentRepo, jobRepo, settingsRepo,
		router, gate, scraper, contextBuilder, queue,
	)

	calendarClient := calendar.NewGoogleClient(cfg)

	if cfg.SchedulerOn {
		weekly := scheduler.New(settingsRepo, runner)
		weekly.Start(context.Background())
		defer weekly.Stop()
	}

	app := fiber.New(fiber.Config{
		AppName:      "contentcal",
		ErrorHandler: middleware.ErrorHandler,
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
	})

	handlers := api.NewHandlers(cfg, contentRepo, researchRepo, settingsRepo, runner, scraper, calendarClient)
	api.SetupRoutes(app, handlers, func(c *fiber.Ctx, key string) (string, error) {
		return settingsRepo.UserIDForKey(c.Context(), key)
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server")
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	logger.Info().Msg("Server exited")
}
