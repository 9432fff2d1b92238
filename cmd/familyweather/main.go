package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"familyweather/internal/advisory"
	httpapi "familyweather/internal/api/http"
	"familyweather/internal/config"
	"familyweather/internal/derived"
	"familyweather/internal/forecast"
	"familyweather/internal/janitor"
	"familyweather/internal/llm"
	"familyweather/internal/location"
	"familyweather/internal/settings"
	"familyweather/internal/summary"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound upstream calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Forecast fetcher: Google Weather behind a TTL cache.
	forecastCache := forecast.NewCache(cfg.ForecastTTL)
	provider := forecast.NewGoogleProvider(httpClient, cfg.GoogleWeatherAPIKey)
	forecastSvc := forecast.NewService(provider, forecastCache)

	// Gemini-backed summarizer and advisory.
	gemini := llm.NewClient(&http.Client{Timeout: cfg.LLMTimeout}, cfg.GeminiAPIKey, cfg.LLMTimeout)
	summarySvc := summary.NewService(gemini, cfg.SummaryModel)
	advisorySvc := advisory.NewService(gemini, cfg.AdvisoryModel)

	// Derived results (cards, advisories) cached by input tuple.
	derivedCache := derived.NewCache(cfg.DerivedTTL)

	// Persisted family context.
	store, err := settings.OpenSQLite(cfg.SettingsPath)
	if err != nil {
		log.Fatalf("failed to open settings store: %v", err)
	}
	defer store.Close()

	resolver := location.NewResolver(cfg.GeocoderAPIKey, cfg.GeocodeTimeout)

	// Janitor sweeping expired cache entries.
	jan := janitor.New(cfg.JanitorInterval, forecastCache, derivedCache)
	if err := jan.Start(); err != nil {
		log.Fatalf("failed to start janitor: %v", err)
	}
	defer jan.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "familyweather",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, apikey",
		AllowMethods: "GET, POST, PUT, OPTIONS",
	}))
	app.Use(httpapi.NewAuthMiddleware(cfg.APIToken))

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "familyweather",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, httpapi.Deps{
		Forecast: forecastSvc,
		Summary:  summarySvc,
		Advisory: advisorySvc,
		Derived:  derivedCache,
		Settings: store,
		Location: resolver,
	})

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
