package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	moodle2pdf "github.com/alnah/moodle2pdf"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake browser backend
// ---------------------------------------------------------------------------

// fakeBrowser records the cookies it receives and hands out fakeTabs.
type fakeBrowser struct {
	mu       sync.Mutex
	cookies  []moodle2pdf.Cookie
	visited  []string
	failURLs map[string]bool
	closed   bool
}

func (b *fakeBrowser) NewTab(context.Context) (moodle2pdf.Tab, error) {
	return &fakeTab{browser: b}, nil
}

func (b *fakeBrowser) SetCookie(_ context.Context, c moodle2pdf.Cookie) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cookies = append(b.cookies, c)
	return nil
}

func (b *fakeBrowser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

type fakeTab struct {
	browser *fakeBrowser
	url     string
}

func (t *fakeTab) Navigate(_ context.Context, url string) error {
	t.browser.mu.Lock()
	defer t.browser.mu.Unlock()
	t.browser.visited = append(t.browser.visited, url)
	t.url = url
	if t.browser.failURLs[url] {
		return errors.New("net::ERR_CONNECTION_REFUSED")
	}
	return nil
}

func (t *fakeTab) PrintToPDF(context.Context, *moodle2pdf.PrintOptions) ([]byte, error) {
	return []byte("%PDF-1.4 " + t.url), nil
}

func (t *fakeTab) Close() error { return nil }

// factoryFor returns a BrowserFactory that always yields b.
func factoryFor(b *fakeBrowser) moodle2pdf.BrowserFactory {
	return func(context.Context, moodle2pdf.LaunchOptions) (moodle2pdf.Browser, error) {
		return b, nil
	}
}

// failingFactory simulates a browser that cannot be launched.
func failingFactory(context.Context, moodle2pdf.LaunchOptions) (moodle2pdf.Browser, error) {
	return nil, moodle2pdf.ErrBrowserConnect
}

// testEnv returns an Environment writing to buffers with a fixed clock.
func testEnv(b *fakeBrowser) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	fixed := time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)
	env := &Environment{
		Now:    func() time.Time { return fixed },
		Stdout: &stdout,
		Stderr: &stderr,
	}
	if b != nil {
		env.NewBrowser = factoryFor(b)
	}
	return env, &stdout, &stderr
}

// writeDirectives writes lines to a directive file in dir.
func writeDirectives(t *testing.T, dir string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, "directives.txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("failed to write directives: %v", err)
	}
	return path
}

// sessionCookies is base64("MoodleSession=abc123; MOODLEID1_=xyz").
const sessionCookies = "TW9vZGxlU2Vzc2lvbj1hYmMxMjM7IE1PT0RMRUlEMV89eHl6"

// foreignCookies is base64("MOODLEID1_=xyz").
const foreignCookies = "TU9PRExFSUQxXz14eXo="
