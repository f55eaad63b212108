package moodle2pdf

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

var (
	_ Browser = (*chromedpBrowser)(nil)
	_ Tab     = (*chromedpTab)(nil)
)

// chromedpBrowser implements Browser with chromedp.
// The browser context owns the first tab; NewTab opens siblings.
type chromedpBrowser struct {
	browserCtx  context.Context
	allocCancel context.CancelFunc
}

// newChromedpBrowser starts Chrome through an exec allocator.
func newChromedpBrowser(ctx context.Context, opts LaunchOptions) (Browser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("headless", true),
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if opts.NoSandbox {
		allocOpts = append(allocOpts, chromedp.NoSandbox)
	}
	if opts.Bin != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.Bin))
	}

	// The browser outlives the launching call; Close tears it down.
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.WithoutCancel(ctx), allocOpts...)
	browserCtx, _ := chromedp.NewContext(allocCtx)

	// First Run starts the browser.
	if err := chromedp.Run(browserCtx); err != nil {
		allocCancel()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	return &chromedpBrowser{browserCtx: browserCtx, allocCancel: allocCancel}, nil
}

// NewTab opens a new target in the running browser.
// The target lives as long as tabCtx, so the first Run must not use a
// derived context.
func (b *chromedpBrowser) NewTab(ctx context.Context) (Tab, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tabCtx, cancel := chromedp.NewContext(b.browserCtx)
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	return &chromedpTab{ctx: tabCtx, cancel: cancel}, nil
}

// SetCookie attaches c through the browser's first tab.
// Cookies are shared by every tab of the default browser context.
func (b *chromedpBrowser) SetCookie(ctx context.Context, c Cookie) error {
	err := runWithCaller(ctx, b.browserCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		return network.SetCookies([]*network.CookieParam{{
			Name:   c.Name,
			Value:  c.Value,
			Domain: c.Domain,
		}}).Do(ctx)
	}))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSetCookie, err)
	}
	return nil
}

// Close shuts the browser down gracefully, then kills the allocator.
func (b *chromedpBrowser) Close() error {
	err := chromedp.Cancel(b.browserCtx)
	b.allocCancel()
	return err
}

// chromedpTab implements Tab on a chromedp target context.
type chromedpTab struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func (t *chromedpTab) run(ctx context.Context, actions ...chromedp.Action) error {
	return runWithCaller(ctx, t.ctx, actions...)
}

// Navigate loads url; chromedp waits for the load event.
func (t *chromedpTab) Navigate(ctx context.Context, url string) error {
	return t.run(ctx, chromedp.Navigate(url))
}

// PrintToPDF calls Page.printToPDF on the current document.
func (t *chromedpTab) PrintToPDF(ctx context.Context, opts *PrintOptions) ([]byte, error) {
	if opts == nil {
		opts = DefaultPrintOptions()
	}

	var pdf []byte
	err := t.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		buf, _, err := page.PrintToPDF().
			WithLandscape(opts.Landscape).
			WithDisplayHeaderFooter(opts.DisplayHeaderFooter).
			WithPrintBackground(opts.PrintBackground).
			WithPreferCSSPageSize(opts.PreferCSSPageSize).
			WithPaperWidth(opts.PaperWidth).
			WithPaperHeight(opts.PaperHeight).
			Do(ctx)
		pdf = buf
		return err
	}))
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

// Close closes the target.
func (t *chromedpTab) Close() error {
	t.cancel()
	return nil
}

// runWithCaller runs actions on target while honoring the caller's
// cancellation and deadline.
func runWithCaller(caller, target context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(target)
	defer cancel()

	stop := context.AfterFunc(caller, cancel)
	defer stop()

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if caller.Err() != nil {
			return caller.Err()
		}
		return err
	}
	return nil
}
