// Package config resolves application configuration from the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds application configuration.
type Config struct {
	// Server
	Port         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Providers
	OpenAIAPIKey    string
	GeminiAPIKey    string
	DefaultProvider string
	DefaultModel    string
	Temperature     float64

	// Transport policy
	RateLimit      float64
	RateBurst      int
	RequestTimeout time.Duration

	// Usage accounting
	RedisURI    string
	DailyBudget float64

	// Output
	OutputDir string
}

// NewConfig creates a new configuration from environment variables.
func NewConfig() *Config {
	readTimeoutSec, _ := strconv.Atoi(getEnv("READ_TIMEOUT", "5"))
	writeTimeoutSec, _ := strconv.Atoi(getEnv("WRITE_TIMEOUT", "30"))
	requestTimeoutSec, _ := strconv.Atoi(getEnv("REQUEST_TIMEOUT", "180"))
	temperature, _ := strconv.ParseFloat(getEnv("TEMPERATURE", "0.7"), 64)
	rateLimit, _ := strconv.ParseFloat(getEnv("RATE_LIMIT", "2"), 64)
	rateBurst, _ := strconv.Atoi(getEnv("RATE_BURST", "1"))
	dailyBudget, _ := strconv.ParseFloat(getEnv("DAILY_BUDGET", "0"), 64)

	return &Config{
		// Server
		Port:         getEnv("PORT", "8080"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		ReadTimeout:  time.Duration(readTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(writeTimeoutSec) * time.Second,

		// Providers
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		DefaultProvider: getEnv("DEFAULT_PROVIDER", "openai"),
		DefaultModel:    getEnv("DEFAULT_MODEL", ""),
		Temperature:     temperature,

		// Transport policy
		RateLimit:      rateLimit,
		RateBurst:      rateBurst,
		RequestTimeout: time.Duration(requestTimeoutSec) * time.Second,

		// Usage accounting (optional)
		RedisURI:    getEnv("REDIS_URI", ""),
		DailyBudget: dailyBudget,

		// Output
		OutputDir: getEnv("OUTPUT_DIR", defaultOutputDir()),
	}
}

// defaultOutputDir mirrors the historical default of "~/SEO articles".
func defaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "SEO articles"
	}
	return filepath.Join(home, "SEO articles")
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
