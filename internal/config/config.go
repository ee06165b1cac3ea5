package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Snapshot backends selectable through SNAPSHOT_BACKEND.
const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// DefaultSnapshotKey is the well-known durable-storage key holding the
// entire serialized system state, carried over from the browser
// rendition's localStorage key.
const DefaultSnapshotKey = "teacher_portfolio_state"

type GeminiConfig struct {
	APIKey string
	Model  string
}

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// Durable snapshot storage
	SnapshotBackend string
	SnapshotKey     string
	RedisURL        string
	DatabaseURL     string

	// Document extraction collaborator
	Gemini GeminiConfig

	// Optional domain-event broker
	KafkaBrokers []string
}

// LoadConfig reads configuration from the environment, seeding it from
// a .env file when present.
func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        parseLogLevel(getEnv("LOG_LEVEL", "info")),
		SnapshotBackend: getEnv("SNAPSHOT_BACKEND", BackendRedis),
		SnapshotKey:     getEnv("SNAPSHOT_KEY", DefaultSnapshotKey),
		RedisURL:        getEnv("REDIS_URL", ""),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
		},
	}

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	switch cfg.SnapshotBackend {
	case BackendRedis:
		if cfg.RedisURL == "" {
			cfg.RedisURL = "redis://localhost:6379/0"
		}
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("SNAPSHOT_BACKEND=postgres requires DATABASE_URL")
		}
	case BackendMemory:
		// no external backend; state survives only for the process lifetime
	default:
		return nil, fmt.Errorf("unknown SNAPSHOT_BACKEND %q", cfg.SnapshotBackend)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
