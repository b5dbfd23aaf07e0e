// Package defaults resolves the process's data directory: the base path
// under which the memory store lives and the browser profile defaults to
// living when BROWSER_USER_DATA_DIR is unset. The mission plan path is a
// CLI argument and the agent registry is read from registry/agents.json
// relative to the working directory; neither resolves under it.
//
// Platform paths:
//
//	macOS:   ~/Library/Application Support/AgentOS/
//	Windows: %AppData%\AgentOS\
//	Linux:   ~/.config/agentos/
//
// Override with AGENTOS_DATA_DIR.
package defaults

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// DataDir returns the platform-appropriate data directory.
func DataDir() (string, error) {
	if dir := os.Getenv("AGENTOS_DATA_DIR"); dir != "" {
		return dir, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}

	if runtime.GOOS == "linux" {
		return filepath.Join(configDir, "agentos"), nil
	}
	return filepath.Join(configDir, "AgentOS"), nil
}

// EnsureDataDir creates the data directory if it doesn't already exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dir, nil
}
