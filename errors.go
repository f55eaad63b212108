package moodle2pdf

import (
	"errors"
	"fmt"
)

// Error categories. Every fatal error returned by Execute wraps one of
// ErrConfig or ErrSequence; ErrReport is never fatal.
var (
	ErrConfig   = errors.New("configuration error")
	ErrSequence = errors.New("directive sequence error")
	ErrReport   = errors.New("failed to write stats report")
)

// Sentinel errors for library operations.
var (
	ErrReadDirectives = errors.New("failed to read directive file")
	ErrCookieDecode   = errors.New("failed to decode cookies")
	ErrMissingCookie  = errors.New("missing session cookie")
	ErrInvalidURL     = errors.New("invalid attempt URL")
	ErrOutputDir      = errors.New("failed to create output directory")

	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrSetCookie      = errors.New("failed to set session cookie")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrInvalidPDF     = errors.New("rendered PDF is invalid")
	ErrWritePDF       = errors.New("failed to write PDF file")

	ErrInvalidReportFormat = errors.New("invalid report format")
	ErrUnknownEngine       = errors.New("unknown browser engine")
)

// ExportError describes the failure of a single export task.
// It never aborts a run; it is only surfaced through RunResult and Stats.
type ExportError struct {
	Seq int
	URL string
	Err error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("attempt %d (%s): %v", e.Seq, e.URL, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// configError wraps err so that it matches both ErrConfig and err.
func configError(err error) error {
	return fmt.Errorf("%w: %w", ErrConfig, err)
}
