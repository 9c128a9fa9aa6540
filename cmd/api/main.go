// @title IELTS Reading API
// @version 1.0
// @description Generates IELTS Reading passages and questions with a language model and scores completed tests.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8090
// @BasePath /api
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

	_ "ielts-reading/cmd/api/docs"
	"ielts-reading/internal/adapter"
	"ielts-reading/internal/adapter/completion"
	"ielts-reading/internal/cache"
	"ielts-reading/internal/config"
	"ielts-reading/internal/database"
	"ielts-reading/internal/domain"
	"ielts-reading/internal/handler"
	"ielts-reading/internal/logger"
	"ielts-reading/internal/middleware"
	"ielts-reading/internal/parser"
	"ielts-reading/internal/prompt"
	"ielts-reading/internal/repository"
	"ielts-reading/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		// Process request
		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

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

	ctx := context.Background()

	// Completion provider
	appLogger.Info("Initializing completion client",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
		zap.Duration("timeout", cfg.LLM.Timeout),
		zap.Int("max_retries", cfg.LLM.MaxRetries))
	completionClient, err := completion.NewFromConfig(cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create completion client", zap.Error(err))
	}

	// Distribution and band tables, with config overrides
	distribution := domain.DefaultDistribution()
	if cfg.Reading.Distribution != nil {
		for variant, rows := range cfg.Reading.Distribution {
			distribution[variant] = rows
		}
		appLogger.Info("Using configured question type distribution")
	}
	bandTables := domain.DefaultBandTables()
	for variant, table := range cfg.Reading.BandTables {
		bandTables[variant] = table
	}
	bands, err := domain.NewBandScoreConverter(bandTables)
	if err != nil {
		appLogger.Fatal("Invalid band tables", zap.Error(err))
	}

	// Redis result cache (optional)
	var cacheAdapter domain.Cache
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Warn("Redis unavailable, scored results will not be retrievable", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheAdapter = adapter.NewRedisCache(redisClient)
			appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
		}
	}
	resultCache := service.NewResultCache(cacheAdapter, cfg.Redis.ResultTTL)

	// Attempt store (optional)
	var attempts domain.AttemptRepository
	if cfg.DB.Enabled {
		db, err := database.NewSQLXOracleDB(ctx, cfg.GetDSN())
		if err != nil {
			appLogger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		attempts = repository.NewSQLXAttemptRepository(db)
		appLogger.Info("Attempt persistence enabled")
	}

	readingService := service.NewReadingService(
		completionClient,
		prompt.NewComposer(),
		parser.NewQuestionParser(nil),
		distribution,
		bands,
		resultCache,
		attempts,
		cfg.Pipeline,
	)
	appLogger.Info("ReadingService initialized",
		zap.Bool("parallel_generation", cfg.Pipeline.ParallelGeneration),
		zap.Bool("feedback_enabled", cfg.Pipeline.FeedbackEnabled))

	// Initialize handlers
	readingHandler := handler.NewReadingHandler(readingService)
	healthHandler := handler.NewHealthHandler(cacheAdapter)
	validationMiddleware := middleware.NewValidationMiddleware()

	// Generation calls can take minutes; the server timeouts come from config
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", healthHandler.Health)

	apiGroup := app.Group("/api")
	readingHandler.RegisterRoutes(apiGroup.Group("/reading"), validationMiddleware)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
