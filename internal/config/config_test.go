package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/pattern-scan/internal/imaging"
)

var allEnv = []string{
	EnvMarker, EnvExtractTolerance, EnvSearchTolerance,
	EnvWorkers, EnvCacheSize, EnvLogLevel,
}

// clearEnv unsets every PATTERN_SCAN_* variable for the duration of the
// test. t.Setenv registers the restore; Unsetenv makes the key absent so a
// dotenv file can still supply it.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allEnv {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MarkerColor != "#000000" {
		t.Errorf("MarkerColor = %q, want #000000", cfg.MarkerColor)
	}
	if cfg.ExtractTolerance != 1 {
		t.Errorf("ExtractTolerance = %d, want 1", cfg.ExtractTolerance)
	}
	if cfg.SearchTolerance != 0 {
		t.Errorf("SearchTolerance = %d, want 0", cfg.SearchTolerance)
	}
	if cfg.CacheSize != imaging.DefaultCacheSize {
		t.Errorf("CacheSize = %d, want %d", cfg.CacheSize, imaging.DefaultCacheSize)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("got %+v, want defaults", *cfg)
	}
}

func TestLoad_MissingEnvFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("missing env file should be ignored, got %v", err)
	}
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvMarker, "#FF00FF")
	t.Setenv(EnvExtractTolerance, "3")
	t.Setenv(EnvSearchTolerance, " 12 ")
	t.Setenv(EnvWorkers, "6")
	t.Setenv(EnvCacheSize, "2")
	t.Setenv(EnvLogLevel, "DEBUG")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := Config{
		MarkerColor:      "#FF00FF",
		ExtractTolerance: 3,
		SearchTolerance:  12,
		Workers:          6,
		CacheSize:        2,
		LogLevel:         "debug",
	}
	if *cfg != want {
		t.Errorf("got %+v, want %+v", *cfg, want)
	}
	if !cfg.Debug() {
		t.Error("Debug() = false")
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	path := writeEnvFile(t, "PATTERN_SCAN_MARKER=#123456\nPATTERN_SCAN_WORKERS=3\n")
	t.Setenv(EnvWorkers, "5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MarkerColor != "#123456" {
		t.Errorf("MarkerColor = %q, want value from env file", cfg.MarkerColor)
	}
	if cfg.Workers != 5 {
		t.Errorf("Workers = %d, want 5 (environment wins over env file)", cfg.Workers)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"non-numeric tolerance", EnvSearchTolerance, "abc", EnvSearchTolerance},
		{"tolerance too large", EnvExtractTolerance, "256", "extract tolerance"},
		{"negative workers", EnvWorkers, "-1", "workers"},
		{"negative cache", EnvCacheSize, "-4", "cache size"},
		{"bad marker", EnvMarker, "#GG0000", "marker color"},
		{"bad log level", EnvLogLevel, "trace", "log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load("")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ScanOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MarkerColor = "#0A0B0C"
	cfg.ExtractTolerance = 4
	cfg.SearchTolerance = 255
	cfg.Workers = 2

	opts, err := cfg.ScanOptions()
	if err != nil {
		t.Fatalf("ScanOptions failed: %v", err)
	}
	if opts.Marker != (imaging.RGBAColor{R: 10, G: 11, B: 12, A: 255}) {
		t.Errorf("Marker = %v", opts.Marker)
	}
	if opts.ExtractTolerance != 4 || opts.SearchTolerance != 255 || opts.Workers != 2 {
		t.Errorf("got %+v", opts)
	}

	cfg.SearchTolerance = 300
	if _, err := cfg.ScanOptions(); err == nil {
		t.Error("expected error for out-of-range tolerance")
	}
}
