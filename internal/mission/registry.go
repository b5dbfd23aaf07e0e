package mission

import (
	"encoding/json"
	"fmt"
	"os"
)

// AgentDescriptor declares one registered agent's name and which shared
// collaborators it needs injected, per spec.md §3/§6.
type AgentDescriptor struct {
	Name     string                   `json:"name"`
	Requires []RequirableCollaborator `json:"requires"`
}

// Registry maps agent names to both their descriptor (declared
// dependencies, loaded from the agent registry JSON file) and their
// compiled-in Factory (registered in Go code — this module has no dynamic
// class loader, unlike original_source/agents/agent_launcher.py's
// importlib-based _import_agent_class).
type Registry struct {
	descriptors map[string]AgentDescriptor
	factories   map[string]Factory
}

// NewRegistry builds an empty Registry. Use LoadDescriptors to populate it
// from the agent registry file, and Register to wire in compiled agent
// constructors.
func NewRegistry() *Registry {
	return &Registry{
		descriptors: make(map[string]AgentDescriptor),
		factories:   make(map[string]Factory),
	}
}

// LoadDescriptors reads the agent registry JSON file at path: a map of
// agent name to its declared Requires list.
func (r *Registry) LoadDescriptors(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("mission: read agent registry: %w", err)
	}

	var decoded map[string]struct {
		Requires []RequirableCollaborator `json:"requires"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("mission: malformed agent registry: %w", err)
	}

	for name, entry := range decoded {
		r.descriptors[name] = AgentDescriptor{Name: name, Requires: entry.Requires}
	}
	return nil
}

// Register wires a compiled-in Factory to an agent name. If no descriptor
// was already loaded for this name (e.g. via LoadDescriptors), requires
// becomes that agent's declared dependency list.
func (r *Registry) Register(name string, requires []RequirableCollaborator, factory Factory) {
	if _, ok := r.descriptors[name]; !ok {
		r.descriptors[name] = AgentDescriptor{Name: name, Requires: requires}
	}
	r.factories[name] = factory
}

// Lookup returns the descriptor and factory for name, or ok=false if the
// name is unknown — the Launcher maps this to spec.md §7's UnknownAgent
// error kind.
func (r *Registry) Lookup(name string) (AgentDescriptor, Factory, bool) {
	desc, ok := r.descriptors[name]
	if !ok {
		return AgentDescriptor{}, nil, false
	}
	factory, ok := r.factories[name]
	if !ok {
		return AgentDescriptor{}, nil, false
	}
	return desc, factory, true
}
