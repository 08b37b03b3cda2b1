package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds runtime settings loaded from the environment.
type Config struct {
	Port             string
	ExtractWorkers   int
	UserAgent        string
	Sources          []string // empty means every preset
	IncludeHomepages bool
	WatchSchedule    string
}

// Load reads .env if present, then the environment.
func Load() (*Config, error) {
	// Non-fatal if missing
	_ = godotenv.Load()

	cfg := &Config{
		Port:             GetEnvOrDefault("PORT", "8080"),
		ExtractWorkers:   getEnvOrDefaultInt("EXTRACT_WORKERS", DefaultExtractWorkers),
		UserAgent:        GetEnvOrDefault("FETCH_USER_AGENT", FallbackUserAgent),
		Sources:          parseStringSlice(os.Getenv("TOPSTORIES_SOURCES")),
		IncludeHomepages: strings.EqualFold(strings.TrimSpace(os.Getenv("INCLUDE_HOMEPAGES")), "true"),
		WatchSchedule:    GetEnvOrDefault("WATCH_SCHEDULE", DefaultWatchSchedule),
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.ExtractWorkers <= 0 {
		return fmt.Errorf("EXTRACT_WORKERS must be positive, got %d", c.ExtractWorkers)
	}
	if strings.TrimSpace(c.UserAgent) == "" {
		return fmt.Errorf("FETCH_USER_AGENT must not be blank")
	}
	return nil
}

// GetEnvOrDefault returns the trimmed value of key, or def when unset.
func GetEnvOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvOrDefaultInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func parseStringSlice(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
