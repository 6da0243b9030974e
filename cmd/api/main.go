package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"alfredoptarigan/pdf-profiler/internal/config"
	"alfredoptarigan/pdf-profiler/internal/handlers"
	"alfredoptarigan/pdf-profiler/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zapLogger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("✅ Config loaded successfully",
		zap.String("provider", cfg.LLM.Provider),
		zap.Duration("llm_timeout", cfg.LLM.Timeout))

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.TempPath, zapLogger)
	if err := storageService.EnsureTempDir(); err != nil {
		zapLogger.Fatal("❌ Failed to create temp directory", zap.Error(err))
	}

	pdfParser := services.NewPDFParserService(cfg.Extraction.MaxChars, zapLogger)
	promptBuilder := services.NewPromptBuilder(cfg.Extraction.MaxChars)
	normalizer := services.NewNormalizer(zapLogger)

	llmService, err := services.NewLLMService(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("❌ Failed to initialize LLM client", zap.Error(err))
	}
	zapLogger.Info("✅ LLM client initialized", zap.String("provider", llmService.Name()))

	profileService := services.NewProfileService(pdfParser, promptBuilder, llmService, normalizer, zapLogger)

	// Initialize Handlers
	profileHandler := handlers.NewProfileHandler(
		profileService,
		storageService,
		cfg.Storage.MaxFileSize,
		cfg.Extraction.ExcerptChars,
		zapLogger,
	)

	app := NewApp(cfg, profileHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zapLogger.Info("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			zapLogger.Error("❌ Server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zapLogger.Info("🚀 Server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zapLogger.Fatal("❌ Failed to start server", zap.Error(err))
	}
}

// NewApp wires middleware and routes.
func NewApp(cfg *config.Config, profileHandler *handlers.ProfileHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "PDF Profiler API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.LLM.Timeout + 30*time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/process-pdf", profileHandler.HandleProcessPDF)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "PDF Profiler API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/process-pdf",
				"GET /api/v1/health",
				"GET /metrics",
			},
		})
	})

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
