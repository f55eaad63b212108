package main

import (
	"errors"
	"os"

	moodle2pdf "github.com/alnah/moodle2pdf"
	"github.com/alnah/moodle2pdf/internal/config"
)

// Exit codes for the moodle2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
// Individual export failures are counted in the stats and do not change
// the exit code.
const (
	ExitSuccess = 0 // Run completed (possibly with file errors)
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or directive sequence
	ExitIO      = 3 // Directive file or output directory unusable
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3). Checked before ErrConfig, which wraps
	// directive file read errors.
	if errors.Is(err, moodle2pdf.ErrReadDirectives) ||
		errors.Is(err, moodle2pdf.ErrOutputDir) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Usage/config/sequence errors (exit 2)
	if errors.Is(err, moodle2pdf.ErrConfig) ||
		errors.Is(err, moodle2pdf.ErrSequence) ||
		errors.Is(err, moodle2pdf.ErrUnknownEngine) ||
		errors.Is(err, moodle2pdf.ErrInvalidReportFormat) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrTooManyArgs) {
		return ExitUsage
	}

	// Browser errors (exit 4)
	if errors.Is(err, moodle2pdf.ErrBrowserConnect) ||
		errors.Is(err, moodle2pdf.ErrPageCreate) ||
		errors.Is(err, moodle2pdf.ErrPageLoad) ||
		errors.Is(err, moodle2pdf.ErrSetCookie) {
		return ExitBrowser
	}

	return ExitGeneral
}
