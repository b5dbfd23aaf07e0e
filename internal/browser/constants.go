package browser

// DefaultProfileName is used when BROWSER_PROFILE is unset.
const DefaultProfileName = "agentos"

// DefaultNavigationTimeout bounds how long Navigate waits for a page load.
const DefaultNavigationTimeout = 30000 // milliseconds, Playwright's unit

// DefaultActionTimeout bounds how long Click/Type wait for an element to
// become actionable before returning an error.
const DefaultActionTimeout = 10000
