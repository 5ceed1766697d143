package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port   string
	APIKey string

	// DaysAhead is the forward-looking window length in days (default 7).
	DaysAhead int

	// APIEndpoint is the URL the extractor publishes aggregated payloads to.
	// When empty the extractor runs in test mode and skips publishing.
	APIEndpoint string

	// DominionBaseURL overrides the upstream calendar API base URL.
	DominionBaseURL string

	// Storage selection, first match wins: DatabaseURL, then JSONBin
	// credentials, then the local data file.
	DataFile      string
	JSONBinAPIKey string
	JSONBinBinID  string
	DatabaseURL   string

	// ExtractCron, when set, runs the extractor as a daemon firing on this
	// cron expression instead of a one-shot run.
	ExtractCron string

	// HTTPTimeout bounds every outbound call (upstream fetch, publish, remote store).
	HTTPTimeout time.Duration

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string

	// CORSAllowedOrigins is a list of origins allowed for CORS.
	// Set via CORS_ALLOWED_ORIGINS (comma-separated). When empty, no CORS headers are sent (same-origin only).
	CORSAllowedOrigins []string
}

func Load() Config {
	return Config{
		Port:   getEnv("PORT", "5000"),
		APIKey: getEnv("API_KEY", "dev-key"),

		DaysAhead: getEnvInt("DAYS_AHEAD", 7),

		APIEndpoint:     getEnv("API_ENDPOINT", ""),
		DominionBaseURL: getEnv("DOMINION_BASE_URL", ""),

		DataFile:      getEnv("DATA_FILE", "schedule_data.json"),
		JSONBinAPIKey: getEnv("JSONBIN_API_KEY", ""),
		JSONBinBinID:  getEnv("JSONBIN_BIN_ID", ""),
		DatabaseURL:   getEnv("DATABASE_URL", ""),

		ExtractCron: getEnv("EXTRACT_CRON", ""),

		HTTPTimeout: time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 10)) * time.Second,

		LogFormat: getEnv("LOG_FORMAT", "text"),

		CORSAllowedOrigins: parseCORSOrigins(getEnv("CORS_ALLOWED_ORIGINS", "")),
	}
}

// parseCORSOrigins splits a comma-separated list of origins and trims spaces. Empty strings are omitted.
func parseCORSOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
