// Package config loads runtime settings for the pattern-scan CLI from
// defaults, an optional dotenv file, environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ironsheep/pattern-scan/internal/imaging"
	"github.com/ironsheep/pattern-scan/internal/scan"
)

// Environment variable names.
const (
	EnvMarker           = "PATTERN_SCAN_MARKER"
	EnvExtractTolerance = "PATTERN_SCAN_EXTRACT_TOLERANCE"
	EnvSearchTolerance  = "PATTERN_SCAN_SEARCH_TOLERANCE"
	EnvWorkers          = "PATTERN_SCAN_WORKERS"
	EnvCacheSize        = "PATTERN_SCAN_CACHE_SIZE"
	EnvLogLevel         = "PATTERN_SCAN_LOG_LEVEL"
)

// Config holds scanner configuration.
type Config struct {
	// MarkerColor is the template's shape color as hex ("#RRGGBB").
	MarkerColor string
	// ExtractTolerance applies when extracting the pattern (0-255).
	ExtractTolerance int
	// SearchTolerance applies to every anchor while scanning (0-255).
	SearchTolerance int
	// Workers is the scan pool size; 0 means GOMAXPROCS.
	Workers int
	// CacheSize bounds the number of decoded images kept in memory.
	CacheSize int
	// LogLevel is "debug" or "info".
	LogLevel string
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		MarkerColor:      "#000000",
		ExtractTolerance: 1,
		SearchTolerance:  0,
		Workers:          0,
		CacheSize:        imaging.DefaultCacheSize,
		LogLevel:         "info",
	}
}

// Load starts from DefaultConfig, applies envFile when it exists (an empty
// name skips it) and then the PATTERN_SCAN_* environment variables.
// Variables already set in the environment win over the dotenv file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
	}

	cfg := DefaultConfig()
	cfg.MarkerColor = getEnvOrDefault(EnvMarker, cfg.MarkerColor)
	cfg.LogLevel = strings.ToLower(getEnvOrDefault(EnvLogLevel, cfg.LogLevel))

	ints := []struct {
		key string
		dst *int
	}{
		{EnvExtractTolerance, &cfg.ExtractTolerance},
		{EnvSearchTolerance, &cfg.SearchTolerance},
		{EnvWorkers, &cfg.Workers},
		{EnvCacheSize, &cfg.CacheSize},
	}
	for _, f := range ints {
		v, err := getEnvAsIntOrDefault(f.key, *f.dst)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks if configuration is valid.
func (c *Config) Validate() error {
	if _, err := imaging.ParseHexColor(c.MarkerColor); err != nil {
		return fmt.Errorf("marker color: %w", err)
	}
	if c.ExtractTolerance < 0 || c.ExtractTolerance > 255 {
		return fmt.Errorf("extract tolerance must be between 0 and 255, got %d", c.ExtractTolerance)
	}
	if c.SearchTolerance < 0 || c.SearchTolerance > 255 {
		return fmt.Errorf("search tolerance must be between 0 and 255, got %d", c.SearchTolerance)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache size must not be negative, got %d", c.CacheSize)
	}
	switch c.LogLevel {
	case "debug", "info":
	default:
		return fmt.Errorf("log level must be debug or info, got %q", c.LogLevel)
	}
	return nil
}

// Debug reports whether debug logging is requested.
func (c *Config) Debug() bool { return c.LogLevel == "debug" }

// ScanOptions validates c and converts it for scan.NewScanner.
func (c *Config) ScanOptions() (scan.Options, error) {
	if err := c.Validate(); err != nil {
		return scan.Options{}, err
	}
	marker, err := imaging.ParseHexColor(c.MarkerColor)
	if err != nil {
		return scan.Options{}, err
	}
	return scan.Options{
		Marker:           marker,
		ExtractTolerance: uint8(c.ExtractTolerance),
		SearchTolerance:  uint8(c.SearchTolerance),
		Workers:          c.Workers,
	}, nil
}

// getEnvOrDefault gets environment variable or returns default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault gets environment variable as int or returns default
func getEnvAsIntOrDefault(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}
