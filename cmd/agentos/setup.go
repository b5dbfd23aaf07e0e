package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/silvermark/agentos/internal/agent"
	"github.com/silvermark/agentos/internal/brain"
	"github.com/silvermark/agentos/internal/browser"
	"github.com/silvermark/agentos/internal/defaults"
	"github.com/silvermark/agentos/internal/display"
	"github.com/silvermark/agentos/internal/gateway"
	"github.com/silvermark/agentos/internal/logging"
	"github.com/silvermark/agentos/internal/memory"
	"github.com/silvermark/agentos/internal/mission"
	"github.com/silvermark/agentos/internal/osinput"
	"github.com/silvermark/agentos/internal/perception"
	"github.com/silvermark/agentos/internal/supervisor"
	"github.com/silvermark/agentos/internal/vision"
)

const (
	defaultAnthropicModel = "claude-sonnet-4-5"
	defaultOpenAIModel    = "gpt-4o"
	defaultGeminiModel    = "gemini-1.5-pro"
)

// system bundles every collaborator a mission run needs, the wiring
// equivalent of original_source/system/agentos_core.py's module-level
// singletons, rebuilt here as explicit constructor injection: shared
// collaborators instead of ad-hoc reconstruction.
type system struct {
	memoryStore *memory.Store
	browser     *browser.Driver
	registry    *mission.Registry
	launcher    *mission.Launcher
	shared      mission.Collaborators
}

// buildSystem wires the Browser Driver, Vision Client, Supervisor, Action
// Gateway, Cognitive Brain, Memory store, and stock agent registry into one
// Launcher, ready to run a mission plan.
func buildSystem(ctx context.Context) (*system, error) {
	dataDir, err := defaults.EnsureDataDir()
	if err != nil {
		return nil, fmt.Errorf("agentos: ensure data dir: %w", err)
	}

	store, err := memory.Open(filepath.Join(dataDir, "memory.json"))
	if err != nil {
		return nil, fmt.Errorf("agentos: open memory store: %w", err)
	}

	displayCtx, err := display.Capture()
	if err != nil {
		return nil, fmt.Errorf("agentos: capture display context: %w", err)
	}
	if err := store.Set("display_context", displayCtx); err != nil {
		return nil, fmt.Errorf("agentos: cache display context: %w", err)
	}

	browserDriver, err := browser.NewDriver(browser.ResolveConfig(browser.Config{}))
	if err != nil {
		return nil, fmt.Errorf("agentos: launch browser: %w", err)
	}

	providers, err := visionProvidersFromEnv(ctx)
	if err != nil {
		browserDriver.Close()
		return nil, err
	}
	visionClient, err := vision.NewClient(providers...)
	if err != nil {
		browserDriver.Close()
		return nil, fmt.Errorf("agentos: build vision client: %w", err)
	}

	sup := supervisor.New(visionClient)
	input := osinput.Driver{}
	gw := gateway.New(browserDriver, input, sup, displayCtx, stubbornHostsFromEnv())

	capturer := perception.NewCapturer(browserDriver)
	cognitiveBrain := brain.New(capturer, visionClient, gw)

	shared := mission.Collaborators{
		Memory:     store,
		Supervisor: sup,
		Gateway:    gw,
		Brain:      cognitiveBrain,
	}

	registry := mission.NewRegistry()
	if err := registry.LoadDescriptors("registry/agents.json"); err != nil {
		// Not fatal: Register below falls back to each factory's own
		// Requires list when no descriptor was loaded for its name.
		logging.Warnf("agentos: could not load registry/agents.json: %v", err)
	}
	registerStockAgents(registry, shared)

	launcher := mission.NewLauncher(registry, shared)

	return &system{
		memoryStore: store,
		browser:     browserDriver,
		registry:    registry,
		launcher:    launcher,
		shared:      shared,
	}, nil
}

func (s *system) Close() error {
	return s.browser.Close()
}

// registerStockAgents wires the Writer and Poster factories into registry.
// Both declare their Requires list here — the registry's compiled-in
// equivalent of an agent registry JSON file's "requires" array.
func registerStockAgents(registry *mission.Registry, _ mission.Collaborators) {
	registry.Register("Writer", []mission.RequirableCollaborator{mission.RequireName, mission.RequireMemory}, func(c mission.Collaborators) mission.Agent {
		return agent.NewWriter(c.Name, c.Memory)
	})

	registry.Register("Poster", []mission.RequirableCollaborator{mission.RequireName, mission.RequireMemory, mission.RequireBrain}, func(c mission.Collaborators) mission.Agent {
		return agent.NewPoster(c.Name, c.Memory, c.Brain)
	})
}

// visionProvidersFromEnv builds the Vision Client's ordered fallback list
// from whichever API keys are present in the environment — Anthropic,
// then OpenAI, then Gemini, per SPEC_FULL.md §2's DOMAIN STACK.
func visionProvidersFromEnv(ctx context.Context) ([]vision.Provider, error) {
	var providers []vision.Provider

	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		model := envOrDefault("ANTHROPIC_VISION_MODEL", defaultAnthropicModel)
		providers = append(providers, vision.NewAnthropicProvider(key, model))
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		model := envOrDefault("OPENAI_VISION_MODEL", defaultOpenAIModel)
		providers = append(providers, vision.NewOpenAIProvider(key, model))
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		model := envOrDefault("GEMINI_VISION_MODEL", defaultGeminiModel)
		p, err := vision.NewGeminiProvider(ctx, key, model)
		if err != nil {
			return nil, fmt.Errorf("agentos: build gemini provider: %w", err)
		}
		providers = append(providers, p)
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf("agentos: no vision provider API key set (ANTHROPIC_API_KEY, OPENAI_API_KEY, or GEMINI_API_KEY)")
	}
	return providers, nil
}

// stubbornHostsFromEnv reads AGENTOS_STUBBORN_CLICK_HOSTS as a
// comma-separated list and returns the trimmed, non-empty hosts (nil when
// unset). gateway.New also reads this same env var and adds "x.com", so the
// hosts returned here repeat ones it already has.
func stubbornHostsFromEnv() []string {
	raw := os.Getenv("AGENTOS_STUBBORN_CLICK_HOSTS")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	hosts := make([]string, 0, len(parts))
	for _, p := range parts {
		if h := strings.TrimSpace(p); h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
