package main

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/silvermark/agentos/internal/defaults"
)

type checkResult struct {
	name    string
	status  string // "ok", "warn", "error"
	message string
}

// doctorCmd runs environment diagnostics, matching the teacher's
// cmd/nebo/doctor.go shape: a flat list of checks printed with a status
// glyph, no attempt to auto-fix anything here.
func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check system health and diagnose issues",
		Long: `Run diagnostics on your agentos installation.

Checks:
  - Data directory
  - Vision provider API keys
  - OS input automation tool availability`,
		Run: func(cmd *cobra.Command, args []string) {
			runDoctor()
		},
	}
}

func runDoctor() {
	fmt.Println("agentos doctor")
	fmt.Println("==============")
	fmt.Println()

	var results []checkResult
	results = append(results, checkDataDir())
	results = append(results, checkVisionProviders())
	results = append(results, checkOSInputTool())

	for _, r := range results {
		glyph := "✓"
		switch r.status {
		case "warn":
			glyph = "!"
		case "error":
			glyph = "✗"
		}
		fmt.Printf("[%s] %-24s %s\n", glyph, r.name, r.message)
	}
}

func checkDataDir() checkResult {
	dir, err := defaults.EnsureDataDir()
	if err != nil {
		return checkResult{"data directory", "error", err.Error()}
	}
	return checkResult{"data directory", "ok", dir}
}

func checkVisionProviders() checkResult {
	var have []string
	for _, env := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY"} {
		if os.Getenv(env) != "" {
			have = append(have, env)
		}
	}
	if len(have) == 0 {
		return checkResult{"vision provider keys", "error", "none of ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY set"}
	}
	return checkResult{"vision provider keys", "ok", fmt.Sprintf("%v", have)}
}

func checkOSInputTool() checkResult {
	var tool string
	switch runtime.GOOS {
	case "linux":
		tool = "xdotool"
	case "darwin":
		tool = "cliclick"
	case "windows":
		tool = "powershell"
	default:
		return checkResult{"OS input tool", "warn", fmt.Sprintf("unsupported platform %s", runtime.GOOS)}
	}
	if _, err := exec.LookPath(tool); err != nil {
		return checkResult{"OS input tool", "error", fmt.Sprintf("%s not found in PATH", tool)}
	}
	return checkResult{"OS input tool", "ok", tool + " found"}
}
