package browser

import (
	"os"
	"path/filepath"

	"github.com/silvermark/agentos/internal/defaults"
)

// Config configures the single persistent browser profile the Driver
// launches. There is exactly one profile per process: spec.md's concurrency
// model gives each process one browser, not a pool of named profiles.
type Config struct {
	// UserDataDir is the Chromium profile directory. Reused across process
	// restarts so cookies and login sessions persist.
	UserDataDir string

	// ExecutablePath overrides Playwright's bundled Chromium, if set.
	ExecutablePath string

	// Headless runs the browser without a visible window.
	Headless bool
}

// ResolveConfig fills in Config fields from the environment per spec.md §6:
// BROWSER_USER_DATA_DIR and BROWSER_PROFILE select the profile directory,
// defaulting under the process data directory when unset.
func ResolveConfig(cfg Config) Config {
	if cfg.UserDataDir == "" {
		cfg.UserDataDir = resolveUserDataDir()
	}
	return cfg
}

func resolveUserDataDir() string {
	profile := os.Getenv("BROWSER_PROFILE")
	if profile == "" {
		profile = DefaultProfileName
	}

	if dir := os.Getenv("BROWSER_USER_DATA_DIR"); dir != "" {
		return filepath.Join(dir, profile)
	}

	base, err := defaults.DataDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config", "agentos")
	}
	return filepath.Join(base, "browser", profile)
}
