package moodle2pdf

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/alnah/moodle2pdf/internal/fileutil"
)

// Exporter replays a directive sequence: it creates quiz directories,
// captures the session cookie, and renders attempt pages to PDF on a
// bounded pool of browser tabs.
type Exporter struct {
	cfg        exporterConfig
	newBrowser BrowserFactory
	stdout     io.Writer
	stderr     io.Writer
	now        func() time.Time
}

// NewExporter creates an Exporter with default configuration.
// Use options to customize behavior (e.g., WithWorkers, WithOutputDir).
func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{
		cfg: defaultExporterConfig(),
		now: time.Now,
	}
	e.stdout, e.stderr = defaultWriters()

	for _, opt := range opts {
		opt(e)
	}

	if e.newBrowser == nil {
		e.newBrowser = newRodBrowser
	}
	e.stdout = newLockedWriter(e.stdout)
	e.stderr = newLockedWriter(e.stderr)

	return e
}

// RunResult is the outcome of a run that reached its completion phase,
// or the partial outcome of an aborted one.
type RunResult struct {
	QuizName  *string
	Stats     Stats
	Exports   []ExportResult // ordered by sequence number
	ReportErr error          // non-fatal
}

// exportTask is one unit of work: render URL into Path.
type exportTask struct {
	Seq  int
	URL  string
	Path string
}

// exportRun is the browser session and worker pool of one run.
type exportRun struct {
	browser Browser
	tabs    *TabPool
	jobs    chan exportTask
	tasks   []exportTask
	results []ExportResult // indexed by Seq-1, each slot written by one worker
	wg      sync.WaitGroup
}

// Execute processes directives strictly in order. PDF exports are submitted
// to the worker pool as save-pdf directives are reached; Execute waits for
// all of them before closing the browser and writing the report.
//
// A fatal error (ErrSequence, ErrConfig, output directory or browser
// failures) stops dispatching. Exports already submitted still finish and
// the browser is closed before Execute returns; no report is written.
func (e *Exporter) Execute(ctx context.Context, directives []Directive) (*RunResult, error) {
	res := &RunResult{Stats: Stats{Supposed: len(directives), Start: e.now()}}

	var (
		sess Session
		run  *exportRun
		dir  string
		seq  int
	)

	finish := func() {
		if run != nil {
			res.Exports = run.wait()
			res.Stats.tally(res.Exports)
			e.teardown(run)
		}
		res.Stats.End = e.now()
		if name, ok := sess.QuizName(); ok {
			res.QuizName = &name
		}
	}

	for _, d := range directives {
		switch d.Kind {
		case KindZipName:
			name := QuizDirName(d.Argument)
			dir = filepath.Join(e.cfg.outputDir, name)
			if err := fileutil.EnsureDir(dir); err != nil {
				finish()
				return res, atLine(d, fmt.Errorf("%w: %s: %v", ErrOutputDir, dir, err))
			}
			sess.SetQuizName(name)
			res.Stats.Executed++

		case KindCookies:
			value, found, err := DecodeSessionCookie(d.Argument, e.cfg.cookieName)
			if err != nil {
				finish()
				return res, atLine(d, err)
			}
			if !found {
				e.debugf("line %d: cookies carry no %s cookie\n", d.Line, e.cfg.cookieName)
			}
			sess.SetCookie(value, found)
			res.Stats.Executed++

		case KindSavePDF:
			if err := sess.CheckExportable(); err != nil {
				finish()
				return res, atLine(d, err)
			}
			if run == nil {
				r, err := e.openSession(ctx, d.Argument, &sess, countKind(directives, KindSavePDF))
				if err != nil {
					finish()
					return res, atLine(d, err)
				}
				run = r
				sess.MarkReady()
			}
			seq++
			run.submit(exportTask{
				Seq:  seq,
				URL:  d.Argument,
				Path: filepath.Join(dir, strconv.Itoa(seq)+".pdf"),
			})
			res.Stats.Executed++

		case KindSaveText, KindUnknown:
			res.Stats.Ignored++
			if k, ok := SuggestKind(d.Name); ok {
				e.debugf("line %d: ignoring %q (did you mean %q?)\n", d.Line, d.Name, k)
			}
		}
	}

	finish()

	if e.cfg.reportPath != "" {
		if err := WriteReport(e.cfg.reportPath, e.cfg.reportFormat, res.QuizName, res.Stats); err != nil {
			res.ReportErr = err
			e.errorf("%v\n", err)
		}
	}

	return res, nil
}

// work runs on its own tab until the job queue is closed.
func (e *Exporter) work(ctx context.Context, run *exportRun) {
	defer run.wg.Done()

	tab, err := run.tabs.Acquire(ctx)
	if err != nil {
		// Leave the queue to workers that have a tab.
		e.errorf("worker unavailable: %v\n", err)
		return
	}
	defer run.tabs.Release(tab)

	for task := range run.jobs {
		if err := ctx.Err(); err != nil {
			run.results[task.Seq-1] = failedResult(task, err)
			continue
		}
		run.results[task.Seq-1] = e.exportAttempt(ctx, tab, task)
	}
}

// submit queues a task. The queue holds every save-pdf of the run, so
// submit never blocks.
func (r *exportRun) submit(task exportTask) {
	r.tasks = append(r.tasks, task)
	r.jobs <- task
}

// wait closes the queue and blocks until every worker has returned.
// Tasks no worker could pick up are reported as failed.
func (r *exportRun) wait() []ExportResult {
	close(r.jobs)
	r.wg.Wait()

	// Drain tasks left behind when no worker obtained a tab.
	for task := range r.jobs {
		r.results[task.Seq-1] = failedResult(task, fmt.Errorf("%w: no browser tab available", ErrPageCreate))
	}

	return r.results[:len(r.tasks)]
}

// QuizDirName turns a zip-name argument into a directory name: words are
// joined with underscores and path separators are neutralized.
func QuizDirName(arg string) string {
	return fileutil.SanitizeName(arg)
}

func atLine(d Directive, err error) error {
	if d.Line == 0 {
		return err
	}
	return fmt.Errorf("line %d: %w", d.Line, err)
}

func (e *Exporter) progressf(format string, args ...any) {
	if !e.cfg.quiet {
		fmt.Fprintf(e.stdout, format, args...)
	}
}

func (e *Exporter) debugf(format string, args ...any) {
	if e.cfg.verbose {
		fmt.Fprintf(e.stderr, format, args...)
	}
}

func (e *Exporter) errorf(format string, args ...any) {
	fmt.Fprintf(e.stderr, format, args...)
}
