package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-docsite/internal/config"
)

// envPrefix marks the variables docsite reads.
const envPrefix = "DOCSITE_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring config files.
type envConfig struct {
	ConfigPath string        // DOCSITE_CONFIG: config file name or path
	SrcDir     string        // DOCSITE_SRC_DIR: source directory
	OutDir     string        // DOCSITE_OUT_DIR: output directory
	BaseURL    string        // DOCSITE_BASE_URL: public site URL
	Theme      string        // DOCSITE_THEME: highlighting theme
	Timeout    time.Duration // DOCSITE_TIMEOUT: social card timeout
	Workers    int           // DOCSITE_WORKERS: parallel workers
}

// knownEnvVars lists valid DOCSITE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"DOCSITE_CONFIG":    true,
	"DOCSITE_SRC_DIR":   true,
	"DOCSITE_OUT_DIR":   true,
	"DOCSITE_BASE_URL":  true,
	"DOCSITE_THEME":     true,
	"DOCSITE_TIMEOUT":   true,
	"DOCSITE_WORKERS":   true,
	"DOCSITE_CONTAINER": true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and durations are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("DOCSITE_CONFIG"),
		SrcDir:     getenv("DOCSITE_SRC_DIR"),
		OutDir:     getenv("DOCSITE_OUT_DIR"),
		BaseURL:    getenv("DOCSITE_BASE_URL"),
		Theme:      getenv("DOCSITE_THEME"),
	}

	if timeout := getenv("DOCSITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := getenv("DOCSITE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized DOCSITE_* variables.
// Helps catch typos like DOCSITE_SRCDIR instead of DOCSITE_SRC_DIR.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment variable values over the config file.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeSiteFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.SrcDir != "" {
		cfg.Build.SrcDir = env.SrcDir
	}
	if env.OutDir != "" {
		cfg.Build.OutDir = env.OutDir
	}
	if env.BaseURL != "" {
		cfg.BaseURL = env.BaseURL
	}
	if env.Theme != "" {
		cfg.Markdown.Theme = env.Theme
	}
	if env.Workers > 0 {
		cfg.Build.Workers = env.Workers
	}
}
