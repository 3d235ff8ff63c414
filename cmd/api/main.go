package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/itsmrajesh/quizgen-backend/internal/adapter/quizgen"
	"github.com/itsmrajesh/quizgen-backend/internal/config"
	"github.com/itsmrajesh/quizgen-backend/internal/database"
	"github.com/itsmrajesh/quizgen-backend/internal/handler"
	"github.com/itsmrajesh/quizgen-backend/internal/llm"
	"github.com/itsmrajesh/quizgen-backend/internal/logger"
	"github.com/itsmrajesh/quizgen-backend/internal/middleware"
	"github.com/itsmrajesh/quizgen-backend/internal/repository"
	"github.com/itsmrajesh/quizgen-backend/internal/service"
	"github.com/itsmrajesh/quizgen-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger logs every HTTP request with its outcome.
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Usage ledger storage.
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to Postgres")

	usageRepository := repository.NewSQLXUsageRepository(db)

	// LLM provider.
	provider, err := llm.NewOpenAIProvider(llm.OpenAIConfig{
		APIKey: cfg.LLM.APIKey,
		Model:  cfg.LLM.ModelID,
	})
	if err != nil {
		appLogger.Fatal("Failed to create LLM provider", zap.Error(err))
	}
	appLogger.Info("LLM provider initialized", zap.String("model", cfg.LLM.ModelID))

	generator := quizgen.NewOpenAIQuizGenerator(provider, cfg.LLM.Temperature, cfg.LLM.MaxTokens, appLogger)

	// Identity verification.
	authService, err := service.NewAuthService(cfg.Google.ClientID, service.NewGoogleKeyProvider())
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	quizService := service.NewQuizService(usageRepository, generator, cfg.Quota.CostLimit)
	quizHandler := handler.NewQuizHandler(quizService, validation.NewValidator())

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "*",
		AllowHeaders: "*",
	}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Post("/quiz/create", middleware.Protected(authService), quizHandler.CreateQuiz)

	go func() {
		appLogger.Info("Starting server",
			zap.Int("port", cfg.Server.Port),
			zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
