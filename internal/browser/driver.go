// Package browser drives a single persistent-profile Chromium session via
// Playwright. It is the Browser Driver described in spec.md §4.5: one
// browser launched once at process start and closed once at exit, with
// one-at-a-time page access enforced by a mutex rather than a connection
// pool.
package browser

import (
	"fmt"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// Driver owns the Playwright runtime, the persistent browser context, and
// the single active page. Callers must not share a Driver across
// goroutines without relying on its internal locking — spec.md's
// concurrency model treats the browser as a single-writer resource.
type Driver struct {
	mu sync.Mutex

	pw      *playwright.Playwright
	context playwright.BrowserContext
	page    playwright.Page

	cfg Config
}

// NewDriver launches Playwright and opens a persistent-profile Chromium
// context rooted at cfg.UserDataDir, reusing the teacher's single-call
// launch pattern (internal/browser/session.go) but dropping the CDP-relay
// and multi-profile branching that don't apply to a single-browser
// process.
func NewDriver(cfg Config) (*Driver, error) {
	cfg = ResolveConfig(cfg)

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("browser: start playwright: %w", err)
	}

	headless := cfg.Headless
	opts := playwright.BrowserTypeLaunchPersistentContextOptions{
		Headless: &headless,
	}
	if cfg.ExecutablePath != "" {
		opts.ExecutablePath = &cfg.ExecutablePath
	}

	bctx, err := pw.Chromium.LaunchPersistentContext(cfg.UserDataDir, opts)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("browser: launch persistent context: %w", err)
	}

	var page playwright.Page
	if pages := bctx.Pages(); len(pages) > 0 {
		page = pages[0]
	} else {
		page, err = bctx.NewPage()
		if err != nil {
			_ = bctx.Close()
			_ = pw.Stop()
			return nil, fmt.Errorf("browser: open page: %w", err)
		}
	}

	return &Driver{pw: pw, context: bctx, page: page, cfg: cfg}, nil
}

// Close tears down the browser context and the Playwright process. Safe to
// call once, at process shutdown.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var firstErr error
	if d.context != nil {
		if err := d.context.Close(); err != nil {
			firstErr = fmt.Errorf("browser: close context: %w", err)
		}
	}
	if d.pw != nil {
		if err := d.pw.Stop(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("browser: stop playwright: %w", err)
		}
	}
	return firstErr
}

// Page returns the single active page. Callers hold no lock across calls;
// Driver methods take the lock internally for each operation.
func (d *Driver) Page() playwright.Page {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.page
}
