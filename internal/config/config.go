package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the data layer and its front ends.
type Config struct {
	DatabaseURL        string
	LoadTimeout        time.Duration
	LoadWorkers        int
	OrphanScanInterval time.Duration
	HTTPAddr           string
	LogLevel           string
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:        env("DATABASE_URL"),
		HTTPAddr:           env("HTTP_ADDR"),
		LogLevel:           strings.ToLower(env("LOG_LEVEL")),
		LoadTimeout:        5 * time.Second,
		LoadWorkers:        4,
		OrphanScanInterval: time.Hour,
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "field_tasks.db"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	var err error
	if cfg.LoadTimeout, err = parseDuration("LOAD_TIMEOUT", cfg.LoadTimeout); err != nil {
		return cfg, err
	}
	if cfg.OrphanScanInterval, err = parseDuration("ORPHAN_SCAN_INTERVAL", cfg.OrphanScanInterval); err != nil {
		return cfg, err
	}
	if raw := env("LOAD_WORKERS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("LOAD_WORKERS must be a positive integer, got %q", raw)
		}
		cfg.LoadWorkers = n
	}

	return cfg, nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func parseDuration(key string, def time.Duration) (time.Duration, error) {
	raw := env(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}
	return d, nil
}
