package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all deployment-level settings, read from the environment.
type Config struct {
	Port         string
	BaseURL      string
	DatabasePath string
	JWTSecret    string

	// AllowAnonymousLinks selects the permissive creation policy: links may be
	// created without an authenticated owner.
	AllowAnonymousLinks bool

	// FallbackURL is where visitors are sent when a short code cannot be
	// resolved.
	FallbackURL string

	ShortCodeLength int
}

// Load reads configuration from the environment, with a .env file as an
// optional source for local development.
func Load() *Config {
	_ = godotenv.Load() // a missing .env file is fine (e.g. prod)

	return &Config{
		Port:                getEnv("PORT", "8080"),
		BaseURL:             getEnv("BASE_URL", "http://localhost:8080"),
		DatabasePath:        getEnv("DATABASE_PATH", "data/shortener.db"),
		JWTSecret:           getEnv("JWT_SECRET", "dev-secret-change-me"),
		AllowAnonymousLinks: getBoolEnv("ALLOW_ANONYMOUS_LINKS", true),
		FallbackURL:         getEnv("FALLBACK_URL", "/"),
		// Short codes are capped at 15 characters by the schema.
		ShortCodeLength: min(max(getIntEnv("SHORT_CODE_LENGTH", 6), 1), 15),
	}
}

// getEnv retrieves an environment variable or returns the default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
