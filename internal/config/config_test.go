package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("DB_NAME", "squadup.db")
	t.Setenv("PORT", "8080")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("STATS_TIMEOUT", "3s")
	t.Setenv("STATS_RATE_PER_SEC", "not-a-number")
	t.Setenv("STATS_REGION", "")

	cfg := Load()

	assert.Equal(t, "squadup.db", cfg.DBName)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "s3cret", cfg.SessionSecret)
	assert.Equal(t, 3*time.Second, cfg.Stats.Timeout)
	assert.Equal(t, float64(2), cfg.Stats.RatePerSec, "invalid rate falls back to default")
	assert.Equal(t, "us", cfg.Stats.Region, "empty value falls back to default")
	assert.Equal(t, "pc", cfg.Stats.Platform)
	assert.Equal(t, "squadup-events", cfg.EventsTopic)
}
