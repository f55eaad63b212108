package moodle2pdf

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// cpuMultiplier: exports mostly wait on the network and the browser.
	cpuMultiplier = 2
)

// ErrPoolClosed is returned by Acquire after Close.
var ErrPoolClosed = errors.New("tab pool closed")

// TabPool hands out tabs of one shared Browser, one per worker.
// Tabs are created lazily on first acquire to avoid startup delay.
type TabPool struct {
	browser Browser
	size    int
	tabs    []Tab
	sem     chan Tab
	mu      sync.Mutex
	created int
	closed  bool
}

// NewTabPool creates a pool with capacity for n tabs of browser.
func NewTabPool(browser Browser, n int) *TabPool {
	if n < MinPoolSize {
		n = MinPoolSize
	}

	return &TabPool{
		browser: browser,
		size:    n,
		tabs:    make([]Tab, 0, n),
		sem:     make(chan Tab, n),
	}
}

// Seed adds an already-open tab to the pool, counting it against capacity.
// Returns false if the pool is full or closed.
func (p *TabPool) Seed(tab Tab) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.created >= p.size {
		return false
	}
	p.created++
	p.tabs = append(p.tabs, tab)
	p.sem <- tab
	return true
}

// Acquire gets a tab from the pool, opening one if needed.
// Blocks if all tabs are in use.
func (p *TabPool) Acquire(ctx context.Context) (Tab, error) {
	// Try to get an idle tab (non-blocking)
	select {
	case tab, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return tab, nil
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Open the tab outside the lock
		tab, err := p.browser.NewTab(ctx)
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, err
		}

		p.mu.Lock()
		p.tabs = append(p.tabs, tab)
		p.mu.Unlock()

		return tab, nil
	}
	p.mu.Unlock()

	// All tabs created, wait for one to be released
	select {
	case tab, ok := <-p.sem:
		if !ok {
			return nil, ErrPoolClosed
		}
		return tab, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release returns a tab to the pool.
// The lock is held while sending; the channel has room for every tab.
func (p *TabPool) Release(tab Tab) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		p.sem <- tab
	}
}

// Close closes every tab the pool opened. The browser itself is not closed.
// Returns an aggregated error if multiple tabs fail to close.
func (p *TabPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	tabs := p.tabs
	p.mu.Unlock()

	var errs []error
	for _, tab := range tabs {
		if err := tab.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *TabPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the worker count.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	// Explicit value takes priority
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	n := runtime.GOMAXPROCS(0) * cpuMultiplier
	if n < MinPoolSize {
		return MinPoolSize
	}
	return n
}
