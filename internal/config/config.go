package config

import (
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config is the full server configuration, read from the environment.
// Secrets (keys, connection URLs) only ever travel through here; they are
// never logged.
type Config struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// StorageType selects the persistence backend:
	// memory, supabase, redis or postgres
	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	SupabaseURL string `env:"SUPABASE_URL"`
	SupabaseKey string `env:"SUPABASE_KEY"`
	RedisURL    string `env:"REDIS_URL"`
	DatabaseURL string `env:"DATABASE_URL"`

	// OCRProvider selects the recognition engine:
	// ocrspace, tesseract or gemini
	OCRProvider  string `env:"OCR_PROVIDER" envDefault:"ocrspace"`
	OCRAPIKey    string `env:"OCR_API_KEY"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`

	// Roster overrides the default player list
	Roster []string `env:"ROSTER" envSeparator:","`
}

// Read parses configuration from the environment
func Read() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SlogLevel maps the configured level name to a slog level, defaulting to
// info for anything unrecognized
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
