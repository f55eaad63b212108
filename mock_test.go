package moodle2pdf

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Mock browser and tabs
// ---------------------------------------------------------------------------

// mockBrowser is a concurrency-safe Browser. Pages whose URL contains a key
// of failNavigate fail to load; keys of failPrint fail to print.
type mockBrowser struct {
	mu           sync.Mutex
	cookies      []Cookie
	navigations  []string
	tabs         []*mockTab
	closed       bool
	closedAfter  int // navigations recorded when Close was called
	newTabErr    error
	newTabFailAt int // fail the n-th NewTab call (1-based); 0 = never
	newTabCalls  int
	cookieErr    error
	failNavigate map[string]bool
	failPrint    map[string]bool
	panicOn      string
	printDelay   time.Duration
	pdf          []byte // nil = "%PDF-1.4 <url>"

	active    atomic.Int32 // concurrent renders in flight
	maxActive atomic.Int32
}

func (b *mockBrowser) NewTab(context.Context) (Tab, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.newTabCalls++
	if b.newTabErr != nil && (b.newTabFailAt == 0 || b.newTabCalls == b.newTabFailAt) {
		return nil, b.newTabErr
	}
	tab := &mockTab{browser: b}
	b.tabs = append(b.tabs, tab)
	return tab, nil
}

func (b *mockBrowser) SetCookie(_ context.Context, c Cookie) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cookieErr != nil {
		return b.cookieErr
	}
	b.cookies = append(b.cookies, c)
	return nil
}

func (b *mockBrowser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.closedAfter = len(b.navigations)
	return nil
}

func (b *mockBrowser) matches(set map[string]bool, url string) bool {
	for key := range set {
		if strings.Contains(url, key) {
			return true
		}
	}
	return false
}

func (b *mockBrowser) getNavigations() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.navigations...)
}

func (b *mockBrowser) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// mockTab records the URL it last navigated to.
type mockTab struct {
	browser *mockBrowser
	url     string
	closed  atomic.Bool
}

func (t *mockTab) Navigate(ctx context.Context, url string) error {
	b := t.browser
	b.mu.Lock()
	b.navigations = append(b.navigations, url)
	fail := b.matches(b.failNavigate, url)
	b.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if fail {
		return errors.New("net::ERR_NAME_NOT_RESOLVED")
	}
	t.url = url
	return nil
}

func (t *mockTab) PrintToPDF(ctx context.Context, _ *PrintOptions) ([]byte, error) {
	b := t.browser

	n := b.active.Add(1)
	defer b.active.Add(-1)
	for {
		cur := b.maxActive.Load()
		if n <= cur || b.maxActive.CompareAndSwap(cur, n) {
			break
		}
	}

	b.mu.Lock()
	fail := b.matches(b.failPrint, t.url)
	panicNow := b.panicOn != "" && strings.Contains(t.url, b.panicOn)
	delay := b.printDelay
	pdf := b.pdf
	b.mu.Unlock()

	if panicNow {
		panic("renderer crashed")
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if fail {
		return nil, errors.New("printing failed")
	}
	if pdf != nil {
		return pdf, nil
	}
	return []byte("%PDF-1.4 " + t.url), nil
}

func (t *mockTab) Close() error {
	t.closed.Store(true)
	return nil
}

// mockFactory returns a BrowserFactory yielding b and counting launches.
func mockFactory(b *mockBrowser, launches *atomic.Int32) BrowserFactory {
	return func(context.Context, LaunchOptions) (Browser, error) {
		if launches != nil {
			launches.Add(1)
		}
		return b, nil
	}
}

// sessionCookiesB64 is base64("MoodleSession=abc123; MOODLEID1_=xyz").
const sessionCookiesB64 = "TW9vZGxlU2Vzc2lvbj1hYmMxMjM7IE1PT0RMRUlEMV89eHl6"

// otherCookiesB64 is base64("MOODLEID1_=xyz").
const otherCookiesB64 = "TU9PRExFSUQxXz14eXo="
