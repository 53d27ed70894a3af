package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	DatabaseURL     string
	Env             string
	AIProvider      string
	AIModel         string
	AIAPIKey        string
	ShareBaseURL    string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	_ = godotenv.Load(".env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:     dbURL,
		Env:             env,
		AIProvider:      normalizeProvider(getEnv("AI_PROVIDER", "cohere")),
		AIModel:         getEnv("AI_MODEL", "command"),
		AIAPIKey:        getEnv("AI_API_KEY", ""),
		ShareBaseURL:    strings.TrimSuffix(getEnv("SHARE_BASE_URL", "http://localhost:5173"), "/"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return "openai"
	case "none":
		return "none"
	default:
		return "cohere"
	}
}
