package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	StaticDir  string // built client UI, served with SPA index fallback
	ViewsDir   string // html templates for the classic form routes

	// Model bundles
	ModelDir       string // six-class bundle, tried first
	BinaryModelDir string // binary fallback bundle

	// Optional backing services; empty disables them
	DatabaseURL string
	RedisURL    string

	// CORS
	CORSOrigins string // Comma-separated allowed origins, "*" allows any

	// Limits
	RateLimitPerMinute int // per client IP on /api/predict and POST /predict, 0 disables
	MaxTextLength      int // in runes, 0 = unlimited

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json or console

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "TruthLens"
	SiteTagline string // env: SITE_TAGLINE
	SiteFooter  string // env: SITE_FOOTER
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:        getEnv("ENV", "development"),
		ServerAddr: getEnv("SERVER_ADDR", ":3000"),
		StaticDir:  getEnv("STATIC_DIR", "./web/dist"),
		ViewsDir:   getEnv("VIEWS_DIR", "./views"),

		ModelDir:       getEnv("MODEL_DIR", "./models/liar"),
		BinaryModelDir: getEnv("BINARY_MODEL_DIR", "./models/binary"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		MaxTextLength:      getEnvInt("MAX_TEXT_LENGTH", 0),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		SiteTitle:   getEnv("SITE_TITLE", "TruthLens"),
		SiteTagline: getEnv("SITE_TAGLINE", "How true is that headline?"),
		SiteFooter:  getEnv("SITE_FOOTER", "TruthLens - trained on the LIAR dataset"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvInt falls back on unset, malformed or negative values.
func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// StoreEnabled reports whether prediction outcomes are persisted.
func (c *Config) StoreEnabled() bool {
	return c.DatabaseURL != ""
}
