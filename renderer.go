package moodle2pdf

import (
	"context"
	"fmt"
)

// Browser is a headless browser shared by a whole run.
// Cookies set on it apply to every tab it opens.
type Browser interface {
	NewTab(ctx context.Context) (Tab, error)
	SetCookie(ctx context.Context, c Cookie) error
	Close() error
}

// Tab is a single page. A Tab is used by one goroutine at a time.
type Tab interface {
	Navigate(ctx context.Context, url string) error
	PrintToPDF(ctx context.Context, opts *PrintOptions) ([]byte, error)
	Close() error
}

// BrowserFactory launches a Browser.
type BrowserFactory func(ctx context.Context, opts LaunchOptions) (Browser, error)

// Browser engines.
const (
	EngineRod      = "rod"
	EngineChromedp = "chromedp"
)

// LaunchOptions configures the headless browser.
type LaunchOptions struct {
	Bin       string // Chrome binary; empty = engine default lookup
	NoSandbox bool
	Stealth   bool // rod only
}

// FactoryFor returns the BrowserFactory for engine.
func FactoryFor(engine string) (BrowserFactory, error) {
	switch engine {
	case "", EngineRod:
		return newRodBrowser, nil
	case EngineChromedp:
		return newChromedpBrowser, nil
	default:
		return nil, fmt.Errorf("%w: %q (valid: %s, %s)", ErrUnknownEngine, engine, EngineRod, EngineChromedp)
	}
}

// ISO A4 paper size in inches.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// PrintOptions mirrors the Chrome print-to-PDF parameters used for export.
type PrintOptions struct {
	Landscape           bool
	DisplayHeaderFooter bool
	PrintBackground     bool
	PreferCSSPageSize   bool
	PaperWidth          float64 // inches
	PaperHeight         float64 // inches
}

// DefaultPrintOptions returns portrait A4 with backgrounds and no header
// or footer, letting the page's own CSS drive the page size.
func DefaultPrintOptions() *PrintOptions {
	return &PrintOptions{
		Landscape:           false,
		DisplayHeaderFooter: false,
		PrintBackground:     true,
		PreferCSSPageSize:   true,
		PaperWidth:          a4WidthInches,
		PaperHeight:         a4HeightInches,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
