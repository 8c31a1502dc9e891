package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/rojanmagar2001/googlaudit/internal/fetch"
	"github.com/rojanmagar2001/googlaudit/internal/report"
	"github.com/rojanmagar2001/googlaudit/internal/usecase"
)

type Config struct {
	Timeout     time.Duration
	Concurrency int
	UserAgent   string
	LogLevel    string

	// CLI mode
	InputFile string
	OutFile   string

	// Serve mode; empty means CLI mode.
	Addr string
}

// LoadConfig reads defaults from the environment (and an optional .env file).
// Command line flags override what it returns.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		Timeout:     getDuration("GOOGL_TIMEOUT", fetch.DefaultTimeout),
		Concurrency: getInt("GOOGL_CONCURRENCY", usecase.DefaultConcurrency),
		UserAgent:   getEnv("GOOGL_USER_AGENT", ""),
		LogLevel:    getEnv("GOOGL_LOG_LEVEL", "info"),
		Addr:        getEnv("GOOGL_ADDR", ""),
		OutFile:     getEnv("GOOGL_OUT", report.ExportFileName),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
