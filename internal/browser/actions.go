package browser

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Navigate loads url in the active page and waits for the load event,
// mirroring the teacher's internal/browser/actions.go Navigate helper.
func (d *Driver) Navigate(url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	timeout := float64(DefaultNavigationTimeout)
	_, err := d.page.Goto(url, playwright.PageGotoOptions{
		Timeout:   &timeout,
		WaitUntil: playwright.WaitUntilStateLoad,
	})
	if err != nil {
		return fmt.Errorf("browser: navigate to %s: %w", url, err)
	}
	return nil
}

// Click resolves selector and clicks it. When force is true, actionability
// checks (visibility, stability, receives-events) are bypassed — used for
// the "stubborn click" hosts spec.md §4.4 calls out (sites whose overlay
// layering defeats Playwright's actionability heuristics).
func (d *Driver) Click(selector string, force bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	timeout := float64(DefaultActionTimeout)
	err := d.page.Locator(selector).Click(playwright.LocatorClickOptions{
		Force:   &force,
		Timeout: &timeout,
	})
	if err != nil {
		return fmt.Errorf("browser: click %s: %w", selector, err)
	}
	return nil
}

// Type fills text into selector after clearing its current value, mirroring
// the teacher's Type/Fill helpers collapsed into one spec-required action.
func (d *Driver) Type(selector, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	timeout := float64(DefaultActionTimeout)
	loc := d.page.Locator(selector)
	if err := loc.Fill(text, playwright.LocatorFillOptions{Timeout: &timeout}); err != nil {
		return fmt.Errorf("browser: type into %s: %w", selector, err)
	}
	return nil
}

// WaitForURLPattern blocks until the page's URL matches glob, bounded by
// DefaultNavigationTimeout.
func (d *Driver) WaitForURLPattern(glob string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	timeout := float64(DefaultNavigationTimeout)
	if err := d.page.WaitForURL(glob, playwright.PageWaitForURLOptions{Timeout: &timeout}); err != nil {
		return fmt.Errorf("browser: wait for url %s: %w", glob, err)
	}
	return nil
}

// CurrentURL returns the active page's current URL.
func (d *Driver) CurrentURL() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.page.URL()
}

// IsActionable reports whether selector currently resolves to a single
// visible, enabled element — a lightweight version of the actionability
// checks Playwright performs automatically before a DOM-native click.
// The Gateway uses this as a pre-check before physically clicking a
// translated screen coordinate, skipping it entirely for stubborn-click
// hosts per spec.md §4.4.
func (d *Driver) IsActionable(selector string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	loc := d.page.Locator(selector)
	visible, err := loc.IsVisible()
	if err != nil {
		return false, fmt.Errorf("browser: check visibility of %s: %w", selector, err)
	}
	if !visible {
		return false, nil
	}
	enabled, err := loc.IsEnabled()
	if err != nil {
		return false, fmt.Errorf("browser: check enabled of %s: %w", selector, err)
	}
	return enabled, nil
}
