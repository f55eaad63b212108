package moodle2pdf

import (
	"io"
	"os"
	"sync"
	"time"
)

// DefaultOutputDir is the root under which one directory per quiz is created.
const DefaultOutputDir = "output"

// Option configures an Exporter.
type Option func(*Exporter)

// exporterConfig holds internal configuration for Exporter.
type exporterConfig struct {
	workers      int           // 0 = ResolvePoolSize default
	outputDir    string        // root output directory
	cookieName   string        // session cookie to forward
	timeout      time.Duration // per export; 0 = none
	reportPath   string        // empty = no report
	reportFormat string
	validate     bool
	launch       LaunchOptions
	print        *PrintOptions
	quiet        bool
	verbose      bool
}

func defaultExporterConfig() exporterConfig {
	return exporterConfig{
		outputDir:    DefaultOutputDir,
		cookieName:   DefaultCookieName,
		reportPath:   DefaultReportPath,
		reportFormat: ReportJSON,
		launch:       LaunchOptions{NoSandbox: true},
		print:        DefaultPrintOptions(),
	}
}

// WithWorkers sets the export concurrency. n <= 0 selects the default.
func WithWorkers(n int) Option {
	return func(e *Exporter) {
		e.cfg.workers = n
	}
}

// WithOutputDir sets the root output directory.
func WithOutputDir(dir string) Option {
	return func(e *Exporter) {
		e.cfg.outputDir = dir
	}
}

// WithCookieName sets the name of the session cookie to forward.
func WithCookieName(name string) Option {
	return func(e *Exporter) {
		e.cfg.cookieName = name
	}
}

// WithTimeout bounds each export (navigation, rendering and writing).
// Zero disables the bound. Panics if d < 0 (programmer error).
func WithTimeout(d time.Duration) Option {
	if d < 0 {
		panic("moodle2pdf: WithTimeout duration must not be negative")
	}
	return func(e *Exporter) {
		e.cfg.timeout = d
	}
}

// WithReport sets where and how the stats report is written.
// An empty path disables the report.
func WithReport(path, format string) Option {
	return func(e *Exporter) {
		e.cfg.reportPath = path
		e.cfg.reportFormat = format
	}
}

// WithValidation checks every rendered PDF before writing it.
func WithValidation(enabled bool) Option {
	return func(e *Exporter) {
		e.cfg.validate = enabled
	}
}

// WithLaunchOptions configures the headless browser.
func WithLaunchOptions(opts LaunchOptions) Option {
	return func(e *Exporter) {
		e.cfg.launch = opts
	}
}

// WithPrintOptions overrides the print-to-PDF parameters.
func WithPrintOptions(opts *PrintOptions) Option {
	return func(e *Exporter) {
		if opts != nil {
			e.cfg.print = opts
		}
	}
}

// WithBrowserFactory replaces the browser backend (e.g., for tests).
func WithBrowserFactory(f BrowserFactory) Option {
	return func(e *Exporter) {
		e.newBrowser = f
	}
}

// WithOutput sets the progress and diagnostic writers.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(e *Exporter) {
		e.stdout = stdout
		e.stderr = stderr
	}
}

// WithQuiet suppresses progress output. Errors are still reported.
func WithQuiet(quiet bool) Option {
	return func(e *Exporter) {
		e.cfg.quiet = quiet
	}
}

// WithVerbose enables debug diagnostics.
func WithVerbose(verbose bool) Option {
	return func(e *Exporter) {
		e.cfg.verbose = verbose
	}
}

// WithClock replaces time.Now for the run's timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		e.now = now
	}
}

// lockedWriter serializes writes from concurrent workers.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func newLockedWriter(w io.Writer) io.Writer {
	if w == nil {
		w = io.Discard
	}
	if _, ok := w.(*lockedWriter); ok {
		return w
	}
	return &lockedWriter{w: w}
}

func defaultWriters() (io.Writer, io.Writer) {
	return os.Stdout, os.Stderr
}
