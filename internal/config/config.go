package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds everything the service reads from the environment.
type AppConfig struct {
	Port string

	// APIToken gates every /api/v1 route (the client's shareable key).
	APIToken string

	// Upstream credentials. Checked per-request, not at startup: a missing
	// key fails that request with a configuration error but never the
	// process.
	GoogleWeatherAPIKey string
	GeminiAPIKey        string
	GeocoderAPIKey      string

	SummaryModel  string
	AdvisoryModel string

	HTTPTimeout     time.Duration
	LLMTimeout      time.Duration
	GeocodeTimeout  time.Duration
	ForecastTTL     time.Duration
	DerivedTTL      time.Duration
	JanitorInterval time.Duration

	SettingsPath string
	AllowOrigins string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		Port:                getenvDefault("PORT", "8080"),
		APIToken:            os.Getenv("API_TOKEN"),
		GoogleWeatherAPIKey: os.Getenv("GOOGLE_WEATHER_API_KEY"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		GeocoderAPIKey:      os.Getenv("GEOCODER_API_KEY"),
		SummaryModel:        getenvDefault("SUMMARY_MODEL", "gemini-1.5-flash-latest"),
		AdvisoryModel:       getenvDefault("ADVISORY_MODEL", "gemini-2.0-flash"),
		SettingsPath:        getenvDefault("SETTINGS_DB", "familyweather.db"),
		AllowOrigins:        getenvDefault("ALLOW_ORIGINS", "*"),
	}

	if cfg.APIToken == "" {
		return nil, fmt.Errorf("API_TOKEN is required")
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.LLMTimeout, err = getenvDuration("LLM_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	if cfg.GeocodeTimeout, err = getenvDuration("GEOCODE_TIMEOUT", "20s"); err != nil {
		return nil, err
	}
	// Forecasts stay fresh for 10 minutes, derived results for 15.
	if cfg.ForecastTTL, err = getenvDuration("FORECAST_TTL", "10m"); err != nil {
		return nil, err
	}
	if cfg.DerivedTTL, err = getenvDuration("DERIVED_TTL", "15m"); err != nil {
		return nil, err
	}
	if cfg.JanitorInterval, err = getenvDuration("JANITOR_INTERVAL", "5m"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	raw := getenvDefault(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
