package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/moodle2pdf/internal/config"
)

// envPrefix is shared by every recognized environment variable.
const envPrefix = "MOODLE2PDF_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MOODLE2PDF_CONFIG: config file name or path
	OutputDir  string // MOODLE2PDF_OUTPUT_DIR: root output directory
	Timeout    string // MOODLE2PDF_TIMEOUT: per-attempt timeout
	Engine     string // MOODLE2PDF_ENGINE: rod or chromedp
	Workers    int    // MOODLE2PDF_WORKERS: parallel exports
}

// knownEnvVars lists valid MOODLE2PDF_* environment variables.
var knownEnvVars = map[string]bool{
	"MOODLE2PDF_CONFIG":     true,
	"MOODLE2PDF_OUTPUT_DIR": true,
	"MOODLE2PDF_TIMEOUT":    true,
	"MOODLE2PDF_ENGINE":     true,
	"MOODLE2PDF_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed worker counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MOODLE2PDF_CONFIG"),
		OutputDir:  os.Getenv("MOODLE2PDF_OUTPUT_DIR"),
		Timeout:    os.Getenv("MOODLE2PDF_TIMEOUT"),
		Engine:     os.Getenv("MOODLE2PDF_ENGINE"),
	}

	if workers := os.Getenv("MOODLE2PDF_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MOODLE2PDF_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment values over the loaded config.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.Timeout != "" {
		cfg.Timeout = env.Timeout
	}
	if env.Engine != "" {
		cfg.Browser.Engine = env.Engine
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
}
