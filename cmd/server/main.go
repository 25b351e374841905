package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"seoforge/internal/api"
	"seoforge/internal/config"
	"seoforge/internal/service/generator"
	"seoforge/internal/service/llm"
	"seoforge/internal/service/llm/providers"
	"seoforge/internal/service/llm/tokens"
	"seoforge/internal/writer"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := config.NewConfig()
	svcLogger := &llm.DefaultLogger{}

	// Redis is optional and only feeds usage accounting.
	var redisClient *redis.Client
	if cfg.RedisURI != "" {
		opts, err := redis.ParseURL(cfg.RedisURI)
		if err != nil {
			log.Fatalf("Invalid REDIS_URI: %v", err)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
	}
	tracker := tokens.NewUsageTracker(redisClient, cfg.DailyBudget)

	service := llm.NewService(llm.ServiceOptions{
		DefaultProvider: cfg.DefaultProvider,
		RateLimit:       rate.Limit(cfg.RateLimit),
		RateBurst:       cfg.RateBurst,
		Tracker:         tracker,
		Logger:          svcLogger,
	})
	defer service.Close()

	if cfg.OpenAIAPIKey != "" {
		p, err := providers.NewOpenAIProvider(cfg.OpenAIAPIKey, svcLogger)
		if err != nil {
			log.Fatalf("Failed to initialize OpenAI provider: %v", err)
		}
		service.RegisterProvider(p)
	}
	if cfg.GeminiAPIKey != "" {
		p, err := providers.NewGeminiProvider(context.Background(), cfg.GeminiAPIKey, svcLogger)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini provider: %v", err)
		}
		service.RegisterProvider(p)
	}
	if cfg.OpenAIAPIKey == "" && cfg.GeminiAPIKey == "" {
		log.Fatal("No provider configured: set OPENAI_API_KEY or GEMINI_API_KEY")
	}

	gen := generator.New(generator.Options{
		Service:      service,
		Provider:     cfg.DefaultProvider,
		DefaultModel: cfg.DefaultModel,
		Temperature:  cfg.Temperature,
		Logger:       svcLogger,
	})

	out, err := writer.New(cfg.OutputDir)
	if err != nil {
		log.Fatalf("Failed to prepare output directory: %v", err)
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST",
	}))

	api.SetupRoutes(app, gen, out)

	// Start server
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
}
