package main

// Notes:
// - loadEnvConfig: malformed worker counts are ignored, not errors.
// - applyEnvConfig: env values override the config file; mergeFlags runs
//   afterwards so CLI flags still win.
// - Tests use t.Setenv() which prevents t.Parallel() at parent level.

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alnah/moodle2pdf/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Run("all variables", func(t *testing.T) {
		t.Setenv("MOODLE2PDF_CONFIG", "/etc/moodle2pdf.yaml")
		t.Setenv("MOODLE2PDF_OUTPUT_DIR", "/exports")
		t.Setenv("MOODLE2PDF_TIMEOUT", "2m")
		t.Setenv("MOODLE2PDF_ENGINE", "chromedp")
		t.Setenv("MOODLE2PDF_WORKERS", "4")

		cfg := loadEnvConfig()

		if cfg.ConfigPath != "/etc/moodle2pdf.yaml" {
			t.Errorf("ConfigPath = %q", cfg.ConfigPath)
		}
		if cfg.OutputDir != "/exports" {
			t.Errorf("OutputDir = %q", cfg.OutputDir)
		}
		if cfg.Timeout != "2m" {
			t.Errorf("Timeout = %q", cfg.Timeout)
		}
		if cfg.Engine != "chromedp" {
			t.Errorf("Engine = %q", cfg.Engine)
		}
		if cfg.Workers != 4 {
			t.Errorf("Workers = %d, want 4", cfg.Workers)
		}
	})

	t.Run("invalid workers ignored", func(t *testing.T) {
		for _, v := range []string{"many", "-2", "0"} {
			t.Setenv("MOODLE2PDF_WORKERS", v)
			if cfg := loadEnvConfig(); cfg.Workers != 0 {
				t.Errorf("MOODLE2PDF_WORKERS=%q: Workers = %d, want 0", v, cfg.Workers)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("MOODLE2PDF_WORKER", "3")
	t.Setenv("MOODLE2PDF_ENGINE", "rod")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	out := buf.String()
	if !strings.Contains(out, "MOODLE2PDF_WORKER ") {
		t.Errorf("expected warning for MOODLE2PDF_WORKER, got %q", out)
	}
	if strings.Contains(out, "MOODLE2PDF_ENGINE") {
		t.Errorf("known variable should not warn, got %q", out)
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Precedence over config file values
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("env overrides config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Output.Dir = "from-file"
		applyEnvConfig(&envConfig{OutputDir: "from-env", Timeout: "10s", Engine: "chromedp", Workers: 2}, cfg)

		if cfg.Output.Dir != "from-env" {
			t.Errorf("Output.Dir = %q, want from-env", cfg.Output.Dir)
		}
		if cfg.Timeout != "10s" {
			t.Errorf("Timeout = %q, want 10s", cfg.Timeout)
		}
		if cfg.Browser.Engine != "chromedp" {
			t.Errorf("Browser.Engine = %q, want chromedp", cfg.Browser.Engine)
		}
		if cfg.Workers != 2 {
			t.Errorf("Workers = %d, want 2", cfg.Workers)
		}
	})

	t.Run("empty env keeps config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Workers = 7
		applyEnvConfig(&envConfig{}, cfg)

		if cfg.Workers != 7 || cfg.Output.Dir != "output" {
			t.Errorf("config changed by empty env: %+v", cfg)
		}
	})
}
