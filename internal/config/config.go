package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port            string
	OddsAPIKey      string
	XBearerToken    string
	RedisURL        string
	AlertWebhookURL string
	CORSOrigins     []string
}

// Load reads configuration from environment variables, with a best-effort
// .env load first. Only the odds API key matters for core functionality and
// even that is checked at fetch time, not here.
func Load() Config {
	// Missing .env is the normal case in deployed environments
	_ = godotenv.Load()

	return Config{
		Port:            getEnv("PORT", ":8080"),
		OddsAPIKey:      os.Getenv("ODDS_API_KEY"),
		XBearerToken:    os.Getenv("X_BEARER_TOKEN"),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379"),
		AlertWebhookURL: os.Getenv("ALERT_WEBHOOK_URL"),
		CORSOrigins:     getEnvList("CORS_ORIGINS", []string{"*"}),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvList retrieves a comma-separated environment variable
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}
