package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	EventsPath  string
	Environment string
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production we rely on system environment variables only,
	// so a missing .env file is not an error.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment: env,
		EventsPath:  os.Getenv("EVENTS_PATH"),
	}

	if cfg.EventsPath == "" {
		cfg.EventsPath = "samples/events.json"
	}

	return cfg, nil
}
