package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration.
type Config struct {
	// DefaultLang is the language tag used when a cite context does not
	// specify one (e.g. "en-US").
	DefaultLang string

	// LocaleDSN is either a filesystem path to a local SQLite cache file
	// or a "libsql://" URL for a shared remote locale cache.
	LocaleDSN string

	// LocaleCacheTTL is parsed from CITEPROC_LOCALE_CACHE_TTL. The
	// locale cache (internal/localestore) does not consult it: cached
	// locale documents are never re-fetched.
	LocaleCacheTTL time.Duration

	// LocaleDir is a directory scanned for on-disk locale XML files
	// (locales-*.xml) when a tag is not already in the locale cache.
	LocaleDir string

	// LogLevel is a slog level name ("debug", "info", "warn", "error")
	// read from CITEPROC_LOG_LEVEL. The CLI does not use it; its log
	// level comes from --verbose and Debug.
	LogLevel string

	// Debug enables verbose SQL logging in internal/localestore.
	Debug bool
}

// LoadConfig loads configuration from environment variables, after
// loading a ".env" file in the working directory if one is present.
// A missing .env is not an error; a malformed one is ignored the same
// way, since real process env vars always take precedence anyway.
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DefaultLang:    os.Getenv("CITEPROC_DEFAULT_LANG"),
		LocaleDSN:      os.Getenv("CITEPROC_LOCALE_DSN"),
		LocaleDir:      os.Getenv("CITEPROC_LOCALE_DIR"),
		LogLevel:       os.Getenv("CITEPROC_LOG_LEVEL"),
		LocaleCacheTTL: 24 * time.Hour, // Default value
	}

	if cfg.DefaultLang == "" {
		cfg.DefaultLang = "en-US"
	}
	if cfg.LocaleDSN == "" {
		cfg.LocaleDSN = "citeproc-locales.db"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if ttlStr := os.Getenv("CITEPROC_LOCALE_CACHE_TTL"); ttlStr != "" {
		if ttl, err := time.ParseDuration(ttlStr); err == nil && ttl > 0 {
			cfg.LocaleCacheTTL = ttl
		}
	}

	if debugStr := os.Getenv("CITEPROC_DEBUG"); debugStr != "" {
		if debug, err := strconv.ParseBool(debugStr); err == nil {
			cfg.Debug = debug
		}
	}

	return cfg
}
