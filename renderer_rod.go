package moodle2pdf

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/alnah/moodle2pdf/internal/process"
)

// Compile-time interface checks
var (
	_ Browser = (*rodBrowser)(nil)
	_ Tab     = (*rodTab)(nil)
)

// rodBrowser implements Browser using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodBrowser struct {
	browser *rod.Browser
	lnch    *launcher.Launcher
	stealth bool
}

// newRodBrowser launches a headless Chrome and connects to it.
func newRodBrowser(ctx context.Context, opts LaunchOptions) (Browser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l := launcher.New().
		Headless(true).
		Set("disable-gpu")

	// Explicit binary first, then the environment (Docker/containerized setups)
	bin := opts.Bin
	if bin == "" {
		bin = os.Getenv("ROD_BROWSER_BIN")
	}
	if bin != "" {
		l = l.Bin(bin)
	}

	if opts.NoSandbox || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	return &rodBrowser{browser: b, lnch: l, stealth: opts.Stealth}, nil
}

// NewTab opens a blank page, with stealth evasions when configured.
func (r *rodBrowser) NewTab(ctx context.Context) (Tab, error) {
	var page *rod.Page
	var err error

	if r.stealth {
		page, err = stealth.Page(r.browser.Context(ctx))
	} else {
		page, err = r.browser.Context(ctx).Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	return &rodTab{page: page}, nil
}

// SetCookie attaches c to the browser's default context.
func (r *rodBrowser) SetCookie(ctx context.Context, c Cookie) error {
	err := r.browser.Context(ctx).SetCookies([]*proto.NetworkCookieParam{{
		Name:   c.Name,
		Value:  c.Value,
		Domain: c.Domain,
	}})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSetCookie, err)
	}
	return nil
}

// Close releases browser resources and kills the Chrome process tree.
func (r *rodBrowser) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.lnch != nil {
		process.KillProcessGroup(r.lnch.PID())
		r.lnch.Kill()
		r.lnch.Cleanup()
		r.lnch = nil
	}
	return err
}

// rodTab implements Tab on a rod page.
type rodTab struct {
	page *rod.Page
}

// Navigate loads url and waits for the load event.
func (t *rodTab) Navigate(ctx context.Context, url string) error {
	p := t.page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		return err
	}
	return p.WaitLoad()
}

// PrintToPDF renders the current page with Chrome's native printer.
func (t *rodTab) PrintToPDF(ctx context.Context, opts *PrintOptions) ([]byte, error) {
	reader, err := t.page.Context(ctx).PDF(toRodPrintParams(opts))
	if err != nil {
		return nil, err
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading PDF stream: %w", err)
	}
	return pdf, nil
}

func (t *rodTab) Close() error {
	return t.page.Close()
}

// toRodPrintParams converts PrintOptions to the CDP request.
func toRodPrintParams(opts *PrintOptions) *proto.PagePrintToPDF {
	if opts == nil {
		opts = DefaultPrintOptions()
	}
	return &proto.PagePrintToPDF{
		Landscape:           opts.Landscape,
		DisplayHeaderFooter: opts.DisplayHeaderFooter,
		PrintBackground:     opts.PrintBackground,
		PreferCSSPageSize:   opts.PreferCSSPageSize,
		PaperWidth:          floatPtr(opts.PaperWidth),
		PaperHeight:         floatPtr(opts.PaperHeight),
	}
}
