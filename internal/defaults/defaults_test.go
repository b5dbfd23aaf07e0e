package defaults

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDataDir(t *testing.T) {
	dir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir failed: %v", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		t.Fatalf("UserConfigDir failed: %v", err)
	}

	if !strings.HasPrefix(dir, configDir) {
		t.Errorf("Expected DataDir to be under %s, got %s", configDir, dir)
	}

	base := filepath.Base(dir)
	if base != "AgentOS" && base != "agentos" {
		t.Errorf("Expected DataDir to end with AgentOS or agentos, got %s", base)
	}
}

func TestDataDirOverride(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("AGENTOS_DATA_DIR", tmpDir)

	dir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir failed: %v", err)
	}
	if dir != tmpDir {
		t.Errorf("expected override %s, got %s", tmpDir, dir)
	}
}

func TestEnsureDataDir(t *testing.T) {
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "AgentOS")
	t.Setenv("AGENTOS_DATA_DIR", dataDir)

	dir, err := EnsureDataDir()
	if err != nil {
		t.Fatalf("EnsureDataDir failed: %v", err)
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("data directory was not created")
	}
}
