package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultTickSeconds is the demo cadence of the simulated queue: one
// "now serving" advance every 10 seconds.
const DefaultTickSeconds = 10

type Config struct {
	TelegramToken    string
	Environment      string
	QueueTickSeconds int
}

func Load() (*Config, error) {
	// Try the .env file first; fall back to plain environment variables.
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		Environment:   os.Getenv("ENV"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	cfg.QueueTickSeconds = DefaultTickSeconds
	if raw := os.Getenv("QUEUE_TICK_SECONDS"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("QUEUE_TICK_SECONDS must be a positive integer, got %q", raw)
		}
		cfg.QueueTickSeconds = secs
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}

	return cfg, nil
}
