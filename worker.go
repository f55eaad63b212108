package moodle2pdf

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alnah/moodle2pdf/internal/fileutil"
	"github.com/alnah/moodle2pdf/internal/hints"
)

// ExportResult is the outcome of one export task.
type ExportResult struct {
	Seq      int
	URL      string
	Path     string
	Pages    int // 0 unless validation is enabled
	Duration time.Duration
	Err      error // *ExportError on failure
}

// OK reports whether the PDF was written.
func (r ExportResult) OK() bool {
	return r.Seq > 0 && r.Err == nil
}

func failedResult(task exportTask, err error) ExportResult {
	return ExportResult{
		Seq:  task.Seq,
		URL:  task.URL,
		Path: task.Path,
		Err:  &ExportError{Seq: task.Seq, URL: task.URL, Err: err},
	}
}

// exportAttempt renders task.URL on tab and writes the PDF to task.Path.
// It never returns an error: every failure, panics included, is captured
// in the result and logged with the attempt number.
func (e *Exporter) exportAttempt(ctx context.Context, tab Tab, task exportTask) (result ExportResult) {
	start := time.Now()
	result = ExportResult{Seq: task.Seq, URL: task.URL, Path: task.Path}

	defer func() {
		if r := recover(); r != nil {
			result.Err = &ExportError{Seq: task.Seq, URL: task.URL, Err: fmt.Errorf("internal error: %v", r)}
		}
		result.Duration = time.Since(start)
		if result.Err != nil {
			hint := ""
			if e.cfg.timeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				hint = hints.ForTimeout()
			}
			e.errorf("Error exporting attempt %d: %v%s\n", task.Seq, result.Err, hint)
			return
		}
		e.debugf("attempt %d -> %s (%v)\n", task.Seq, task.Path, result.Duration.Round(time.Millisecond))
	}()

	if e.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.timeout)
		defer cancel()
	}

	e.progressf("Exporting attempt %d...\n", task.Seq)

	pdf, pages, err := e.render(ctx, tab, task.URL)
	if err != nil {
		result.Err = &ExportError{Seq: task.Seq, URL: task.URL, Err: err}
		return result
	}

	if err := fileutil.WriteFileAtomic(task.Path, pdf); err != nil {
		result.Err = &ExportError{Seq: task.Seq, URL: task.URL, Err: fmt.Errorf("%w: %v", ErrWritePDF, err)}
		return result
	}

	result.Pages = pages
	return result
}

// render navigates tab to url and prints it.
func (e *Exporter) render(ctx context.Context, tab Tab, url string) ([]byte, int, error) {
	if err := tab.Navigate(ctx, url); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	pdf, err := tab.PrintToPDF(ctx, e.cfg.print)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	if len(pdf) == 0 {
		return nil, 0, fmt.Errorf("%w: empty document", ErrPDFGeneration)
	}

	if !e.cfg.validate {
		return pdf, 0, nil
	}

	pages, err := validatePDF(pdf)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	return pdf, pages, nil
}
