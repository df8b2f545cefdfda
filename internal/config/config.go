package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port"`
	Env             string        `json:"env"`
	SiteURL         string        `json:"site_url"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	HTTPTimeout     time.Duration `json:"http_timeout"`

	// Database configuration
	DatabaseURL string `json:"database_url"`

	// Redis configuration
	RedisURL           string        `json:"redis_url"`
	ResearchContextTTL time.Duration `json:"research_context_ttl"`

	// AI provider keys
	AnthropicAPIKey string `json:"anthropic_api_key"`
	OpenAIAPIKey    string `json:"openai_api_key"`
	GrokAPIKey      string `json:"grok_api_key"`

	// Research scraping
	JinaAPIKey    string `json:"jina_api_key"`
	JinaReaderURL string `json:"jina_reader_url"`

	// Google Calendar
	GoogleClientID     string `json:"google_client_id"`
	GoogleClientSecret string `json:"google_client_secret"`
	GoogleRedirectURI  string `json:"google_redirect_uri"`
	GoogleCalendarID   string `json:"google_calendar_id"`

	// Background work
	EmbedWorkers   int  `json:"embed_workers"`
	EmbedQueueSize int  `json:"embed_queue_size"`
	SchedulerOn    bool `json:"scheduler_on"`

	// Logging
	LogLevel string `json:"log_level"`
}

// Load loads configuration from environment variables
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		SiteURL:         getEnv("SITE_URL", "http://localhost:3000"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379/0"),
		ResearchContextTTL: getEnvAsDuration("RESEARCH_CONTEXT_TTL", 15*time.Minute),

		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		GrokAPIKey:      getEnv("GROK_API_KEY", ""),

		JinaAPIKey:    getEnv("JINA_API_KEY", ""),
		JinaReaderURL: getEnv("JINA_READER_URL", "https://r.jina.ai"),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:  getEnv("GOOGLE_REDIRECT_URI", ""),
		GoogleCalendarID:   getEnv("GOOGLE_CALENDAR_ID", "primary"),

		EmbedWorkers:   getEnvAsInt("EMBED_WORKERS", 2),
		EmbedQueueSize: getEnvAsInt("EMBED_QUEUE_SIZE", 100),
		SchedulerOn:    getEnvAsBool("SCHEDULER_ON", true),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if cfg.GoogleRedirectURI == "" {
		cfg.GoogleRedirectURI = cfg.SiteURL + "/api/v1/auth/google/callback"
	}

	return cfg
}

// GoogleCalendarConfigured reports whether the Google Calendar credentials are
// all present. Calendar routes return 503 when they are not.
func (c *Config) GoogleCalendarConfigured() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != "" && c.GoogleCalendarID != ""
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %t", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
