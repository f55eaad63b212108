package main

// Notes:
// - exitCodeFor: we test the sentinel errors from the moodle2pdf and config
//   packages, plus wrapped errors to verify the errors.Is() chain.
// - Exit code constants: we verify Unix conventions (0=success, 1=general, 2=usage)
//   and custom codes are below 126.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	moodle2pdf "github.com/alnah/moodle2pdf"
	"github.com/alnah/moodle2pdf/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", moodle2pdf.ErrBrowserConnect, ExitBrowser},
		{"page create", moodle2pdf.ErrPageCreate, ExitBrowser},
		{"page load", moodle2pdf.ErrPageLoad, ExitBrowser},
		{"set cookie", moodle2pdf.ErrSetCookie, ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("line 3: %w", moodle2pdf.ErrBrowserConnect), ExitBrowser},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"output dir", moodle2pdf.ErrOutputDir, ExitIO},
		{"directive file wrapped in config", fmt.Errorf("%w: %w", moodle2pdf.ErrConfig, moodle2pdf.ErrReadDirectives), ExitIO},

		// Usage errors (exit 2)
		{"sequence", moodle2pdf.ErrSequence, ExitUsage},
		{"config category", moodle2pdf.ErrConfig, ExitUsage},
		{"missing cookie", fmt.Errorf("%w: %w", moodle2pdf.ErrConfig, moodle2pdf.ErrMissingCookie), ExitUsage},
		{"cookie decode", fmt.Errorf("%w: %w", moodle2pdf.ErrConfig, moodle2pdf.ErrCookieDecode), ExitUsage},
		{"unknown engine", moodle2pdf.ErrUnknownEngine, ExitUsage},
		{"report format", moodle2pdf.ErrInvalidReportFormat, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"config field too long", config.ErrFieldTooLong, ExitUsage},
		{"config invalid value", config.ErrInvalidValue, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"no input", ErrNoInput, ExitUsage},
		{"too many args", ErrTooManyArgs, ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("boom"), ExitGeneral},
		{"report error alone", moodle2pdf.ErrReport, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitGeneral != 1 {
		t.Errorf("ExitGeneral = %d, want 1", ExitGeneral)
	}
	if ExitUsage != 2 {
		t.Errorf("ExitUsage = %d, want 2", ExitUsage)
	}

	codes := []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO, ExitBrowser}
	seen := make(map[int]bool)
	for _, c := range codes {
		if c >= 126 {
			t.Errorf("exit code %d collides with shell-reserved codes", c)
		}
		if seen[c] {
			t.Errorf("duplicate exit code %d", c)
		}
		seen[c] = true
	}
}
