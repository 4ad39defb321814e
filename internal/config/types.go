package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	SessionSecret string
	Turso         TursoConfig
	Stats         StatsConfig
	Slack         SlackConfig
	ProjectID     string
	EventsTopic   string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// StatsConfig configures the client for the third-party stats API.
type StatsConfig struct {
	BaseURL    string
	Platform   string
	Region     string
	Timeout    time.Duration
	RatePerSec float64
}

type SlackConfig struct {
	Token     string
	ChannelID string
}
