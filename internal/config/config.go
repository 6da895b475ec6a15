package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds ambient settings for the library's diagnostics and loader
// defaults. Everything comes from environment variables, with .env as a
// fallback for local runs.
type Config struct {
	LogLevel  string
	LogFormat string

	// MissingStrategy is the default missing-value strategy applied by
	// Loader.CleanMissing.
	MissingStrategy string
	// XLSXSheet overrides the sheet read from Excel workbooks when the caller
	// passes no sheet option.
	XLSXSheet string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		LogLevel:        getEnv("BATTKIT_LOG_LEVEL", "info"),
		LogFormat:       getEnv("BATTKIT_LOG_FORMAT", "console"),
		MissingStrategy: getEnv("BATTKIT_MISSING_STRATEGY", "mean"),
		XLSXSheet:       getEnv("BATTKIT_XLSX_SHEET", ""),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
