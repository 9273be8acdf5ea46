// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Storage settings
	DatabaseURL string

	// Provider credentials. An empty value means the provider is skipped
	// by the summary fallback chain.
	OllamaURL         string
	OllamaModel       string
	OpenAIAPIKey      string
	OpenAIModel       string
	GeminiAPIKey      string
	GeminiModel       string
	HuggingFaceAPIKey string
	HuggingFaceModel  string

	// Summary defaults
	SummaryMaxSentences int
	SummaryMaxTokens    int
	SummaryTemperature  float64
	SummaryMaxLength    int

	// Recommendation settings
	RecommendLimit int
	TrendingWindow time.Duration
	TrendingLimit  int

	// Ingestion settings
	FeedsConfigPath   string
	NewsMaxAge        time.Duration
	ScrapeConcurrency int
	ScrapeMaxArticles int

	// App settings
	Debug          bool
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		OllamaModel:         "llama3.2",
		OpenAIModel:         "gpt-4o-mini",
		GeminiModel:         "gemini-1.5-flash",
		HuggingFaceModel:    "facebook/bart-large-cnn",
		SummaryMaxSentences: 3,
		SummaryMaxTokens:    256,
		SummaryTemperature:  0.3,
		SummaryMaxLength:    150,
		RecommendLimit:      10,
		TrendingWindow:      24 * time.Hour,
		TrendingLimit:       10,
		FeedsConfigPath:     "configs/feeds.yaml",
		NewsMaxAge:          24 * time.Hour,
		ScrapeConcurrency:   8,
		ScrapeMaxArticles:   10,
		RequestTimeout:      30 * time.Second,
		RetryAttempts:       3,
		RetryDelay:          5 * time.Second,
	}

	// Load from environment
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.OllamaURL = os.Getenv("OLLAMA_URL")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.HuggingFaceAPIKey = os.Getenv("HUGGINGFACE_API_KEY")

	if v := os.Getenv("OLLAMA_MODEL"); v != "" {
		cfg.OllamaModel = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.OpenAIModel = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.GeminiModel = v
	}
	if v := os.Getenv("HUGGINGFACE_MODEL"); v != "" {
		cfg.HuggingFaceModel = v
	}

	cfg.SummaryMaxSentences = getEnvIntOrDefault("SUMMARY_MAX_SENTENCES", cfg.SummaryMaxSentences)
	cfg.SummaryMaxTokens = getEnvIntOrDefault("SUMMARY_MAX_TOKENS", cfg.SummaryMaxTokens)
	cfg.SummaryMaxLength = getEnvIntOrDefault("SUMMARY_MAX_LENGTH", cfg.SummaryMaxLength)
	if v := os.Getenv("SUMMARY_TEMPERATURE"); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil && val >= 0 && val <= 2 {
			cfg.SummaryTemperature = val
		}
	}

	cfg.RecommendLimit = getEnvIntOrDefault("RECOMMEND_LIMIT", cfg.RecommendLimit)
	cfg.TrendingLimit = getEnvIntOrDefault("TRENDING_LIMIT", cfg.TrendingLimit)
	if hours := getEnvIntOrDefault("TRENDING_WINDOW_HOURS", 0); hours > 0 {
		cfg.TrendingWindow = time.Duration(hours) * time.Hour
	}

	cfg.FeedsConfigPath = getEnvOrDefault("FEEDS_CONFIG_PATH", cfg.FeedsConfigPath)
	if hours := getEnvIntOrDefault("NEWS_MAX_AGE_HOURS", 0); hours > 0 {
		cfg.NewsMaxAge = time.Duration(hours) * time.Hour
	}
	cfg.ScrapeConcurrency = getEnvIntOrDefault("SCRAPE_CONCURRENCY", cfg.ScrapeConcurrency)
	cfg.ScrapeMaxArticles = getEnvIntOrDefault("SCRAPE_MAX_ARTICLES", cfg.ScrapeMaxArticles)

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.SummaryMaxSentences < 1 {
		return fmt.Errorf("SUMMARY_MAX_SENTENCES must be at least 1")
	}
	if c.RecommendLimit < 1 {
		return fmt.Errorf("RECOMMEND_LIMIT must be at least 1")
	}
	return nil
}
