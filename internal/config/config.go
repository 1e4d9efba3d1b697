package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	Environment string

	// Database (optional; enables the run journal)
	DatabaseURL    string
	MigrateOnStart bool

	// Redis (optional; enables engine transport and idle reaping)
	RedisURL string

	// Server
	Port        string
	FrontendURL string

	// Tables
	TablesFile         string
	PreviewDir         string
	DefaultPlaybackFPS int

	// Sessions
	JWTSecret             string
	SessionTimeoutMin     int
	IdleWorkerPollSeconds int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Database
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrateOnStart: getEnvBool("MIGRATE_ON_START", false),

		// Redis
		RedisURL: getEnv("REDIS_URL", ""),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Tables
		TablesFile:         getEnv("TABLES_FILE", ""),
		PreviewDir:         getEnv("PREVIEW_DIR", "images"),
		DefaultPlaybackFPS: getEnvInt("DEFAULT_PLAYBACK_FPS", 30),

		// Sessions
		JWTSecret:             getEnv("JWT_SECRET", "change-me-in-production"),
		SessionTimeoutMin:     getEnvInt("SESSION_TIMEOUT_MINUTES", 30),
		IdleWorkerPollSeconds: getEnvInt("IDLE_WORKER_POLL_SECONDS", 15),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
