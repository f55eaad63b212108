package moodle2pdf

import (
	"context"
	"fmt"
)

// openSession launches the browser, visits the site's origin once so the
// session cookie can be attached to its domain, and starts the workers.
// expected is the number of save-pdf directives in the run.
func (e *Exporter) openSession(ctx context.Context, link string, sess *Session, expected int) (*exportRun, error) {
	origin, err := ParseOrigin(link)
	if err != nil {
		return nil, err
	}

	cookie, ok := sess.SessionCookie()
	if !ok {
		return nil, configError(fmt.Errorf("%w: %s not found in cookies directive", ErrMissingCookie, e.cfg.cookieName))
	}

	e.debugf("launching browser for %s\n", origin)
	browser, err := e.newBrowser(ctx, e.cfg.launch)
	if err != nil {
		return nil, err
	}

	tab, err := browser.NewTab(ctx)
	if err != nil {
		_ = browser.Close()
		return nil, err
	}

	if err := tab.Navigate(ctx, origin.String()); err != nil {
		_ = tab.Close()
		_ = browser.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrPageLoad, origin, err)
	}

	if err := browser.SetCookie(ctx, Cookie{Name: e.cfg.cookieName, Value: cookie, Domain: origin.Host}); err != nil {
		_ = tab.Close()
		_ = browser.Close()
		return nil, err
	}

	workers := min(ResolvePoolSize(e.cfg.workers), max(expected, MinPoolSize))
	e.debugf("pool size: %d\n", workers)

	run := &exportRun{
		browser: browser,
		tabs:    NewTabPool(browser, workers),
		jobs:    make(chan exportTask, expected),
		results: make([]ExportResult, expected),
	}
	run.tabs.Seed(tab)

	for w := 0; w < workers; w++ {
		run.wg.Add(1)
		go e.work(ctx, run)
	}

	return run, nil
}

// teardown closes every tab, then the browser.
func (e *Exporter) teardown(run *exportRun) {
	if err := run.tabs.Close(); err != nil {
		e.debugf("closing tabs: %v\n", err)
	}
	if err := run.browser.Close(); err != nil {
		e.debugf("closing browser: %v\n", err)
	}
}
