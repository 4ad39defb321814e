package config

import (
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: envOr("MIGRATIONS_DIR", "./migrations"),
		Port:          getEnv("PORT"),
		SessionSecret: getEnv("SESSION_SECRET"),
		Turso: TursoConfig{
			PrimaryURL: envOr("TURSO_PRIMARY_URL", ""),
			AuthToken:  envOr("TURSO_AUTH_TOKEN", ""),
		},
		Stats: StatsConfig{
			BaseURL:    envOr("STATS_API_URL", "https://ow-api.com/v1"),
			Platform:   envOr("STATS_PLATFORM", "pc"),
			Region:     envOr("STATS_REGION", "us"),
			Timeout:    durationOr("STATS_TIMEOUT", 10*time.Second),
			RatePerSec: floatOr("STATS_RATE_PER_SEC", 2),
		},
		Slack: SlackConfig{
			Token:     envOr("SLACK_BOT_TOKEN", ""),
			ChannelID: envOr("SLACK_CHANNEL_ID", ""),
		},
		ProjectID:   envOr("GCP_PROJECT", ""),
		EventsTopic: envOr("EVENTS_TOPIC", "squadup-events"),
	}
	return cfg
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Warn("Invalid duration in environment, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return d
}

func floatOr(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f <= 0 {
		log.Warn("Invalid number in environment, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return f
}
