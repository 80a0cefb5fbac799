package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds process-wide settings loaded from the environment.
type Config struct {
	BaseURL     string
	Port        string
	RedisURL    string
	Environment string

	Scraper ScraperConfig
	Debug   DebugConfig
}

// ScraperConfig controls the fetch client.
type ScraperConfig struct {
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration
}

// DebugConfig controls the HTML sample capture machinery.
type DebugConfig struct {
	Enabled        bool
	SampleDir      string
	MaxSamples     int
	CaptureOnError bool
	CaptureOnEmpty bool
}

// Load reads configuration from a .env file (when present) and the
// environment. Missing keys fall back to defaults suitable for development.
func Load(logger zerolog.Logger) *Config {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	env := getEnv("ENVIRONMENT", "development")

	cfg := &Config{
		BaseURL:     getEnv("VLR_BASE_URL", "https://www.vlr.gg"),
		Port:        getEnv("PORT", "3000"),
		RedisURL:    getEnv("REDIS_URL", ""),
		Environment: env,
		Scraper: ScraperConfig{
			Timeout:    10 * time.Second,
			Retries:    3,
			RetryDelay: time.Second,
		},
		Debug: DebugConfig{
			Enabled:        getEnvBool("DEBUG_MODE", env != "production"),
			SampleDir:      getEnv("DEBUG_SAMPLE_DIR", "./debug-samples"),
			MaxSamples:     50,
			CaptureOnError: true,
			CaptureOnEmpty: true,
		},
	}

	logger.Info().
		Str("base_url", cfg.BaseURL).
		Str("port", cfg.Port).
		Str("environment", cfg.Environment).
		Bool("debug", cfg.Debug.Enabled).
		Msg("configuration loaded")

	return cfg
}

// IsProduction reports whether the process runs in production mode. Debug
// endpoints are disabled there unless ENABLE_DEBUG is set.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// DebugEndpointsAllowed gates the /api/debug surface.
func (c *Config) DebugEndpointsAllowed() bool {
	if c.IsProduction() && !getEnvBool("ENABLE_DEBUG", false) {
		return false
	}
	return c.Debug.Enabled
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
