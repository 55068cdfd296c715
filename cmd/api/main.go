// @title WikiQuiz API
// @version 1.0
// @description Generates multiple-choice and fill-in-the-blank quizzes from Wikipedia articles.
// @contact.name API Support
// @license.name MIT
// @host localhost:8000
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "wiki-quiz/cmd/api/docs"
	"wiki-quiz/internal/adapter"
	"wiki-quiz/internal/adapter/quizgen"
	"wiki-quiz/internal/adapter/scraper"
	"wiki-quiz/internal/cache"
	"wiki-quiz/internal/config"
	"wiki-quiz/internal/database"
	"wiki-quiz/internal/handler"
	"wiki-quiz/internal/heuristic"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/middleware"
	"wiki-quiz/internal/repository"
	"wiki-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database and bring the schema up to date
	db, err := database.Connect(cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	if err := database.RunMigrations(db.DB, cfg.DB.Driver); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	quizRepository := repository.NewQuizDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	articleScraper := scraper.NewWikipediaScraper(cfg.Scraper.Timeout, cfg.Scraper.BaseURL, cfg.Scraper.UserAgent)

	llmGenerator, err := quizgen.NewFromConfig(context.Background(), cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create LLM quiz generator", zap.Error(err))
	}
	if llmGenerator == nil {
		appLogger.Warn("No LLM configured, every quiz uses the fallback generator",
			zap.String("provider", cfg.LLM.Provider))
	} else {
		appLogger.Info("LLM quiz generator initialized",
			zap.String("provider", cfg.LLM.Provider),
			zap.String("model", cfg.LLM.Model))
	}

	var fallbackOpts []heuristic.Option
	if cfg.Generator.Seed != 0 {
		fallbackOpts = append(fallbackOpts, heuristic.WithSeed(cfg.Generator.Seed))
	}
	fallbackGenerator := heuristic.NewGenerator(fallbackOpts...)

	quizCache := adapter.NewNoopCache()
	if cfg.Redis.Enabled() {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		quizCache = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
	}

	quizService := service.NewQuizService(
		quizRepository,
		txManager,
		articleScraper,
		llmGenerator,
		fallbackGenerator,
		quizCache,
		cfg,
	)
	quizHandler := handler.NewQuizHandler(quizService)

	app := newApp(cfg.Server, quizHandler)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("db_driver", cfg.DB.Driver))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}

// newApp builds the fiber application with middleware and routes
func newApp(serverCfg config.ServerConfig, quizHandler *handler.QuizHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "WikiQuiz",
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
		IdleTimeout:  serverCfg.IdleTimeout,
		BodyLimit:    serverCfg.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       300,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	quizHandler.RegisterRoutes(app)

	return app
}
