package mission

import (
	"context"

	"github.com/silvermark/agentos/internal/brain"
	"github.com/silvermark/agentos/internal/gateway"
	"github.com/silvermark/agentos/internal/memory"
	"github.com/silvermark/agentos/internal/supervisor"
)

// Agent is the minimal contract every mission-step agent implements.
// Compare to original_source/agents/agent_launcher.py's plain async
// agent.run(); Go distinguishes the synchronous case (Agent) from agents
// that hand off to a background goroutine (AsyncAgent) through two
// interfaces rather than Python's inspect.iscoroutinefunction check.
type Agent interface {
	Run(ctx context.Context) error
}

// AsyncAgent is implemented by agents that dispatch work to a goroutine and
// report completion on a channel, the Go analog of the original's
// coroutine-vs-plain-function distinction.
type AsyncAgent interface {
	RunAsync(ctx context.Context) <-chan error
}

// TaskContextSetter is implemented by agents that want the owning step's
// free-form task string, per spec.md §4.1.b's "set task_context to
// step.task if supported." Agents that don't need it simply omit the
// method.
type TaskContextSetter interface {
	SetTaskContext(taskContext string)
}

// Collaborators holds every shared dependency an agent constructor might
// need. Per spec.md §9's "shared collaborators via DI" design note, agents
// are handed exactly the fields their AgentDescriptor.Requires lists —
// everything else is left as the zero value.
type Collaborators struct {
	Name       string
	Memory     *memory.Store
	Supervisor *supervisor.Supervisor
	Gateway    *gateway.Gateway
	Brain      *brain.Brain
}

// Factory constructs an Agent from its injected Collaborators. Go has no
// runtime equivalent of inspect.signature(AgentClass.__init__).parameters,
// so each Factory is paired with an AgentDescriptor.Requires list in the
// registry that tells the Launcher which Collaborators fields to populate
// before calling it — the static analog of the original's dynamic
// introspection.
type Factory func(Collaborators) Agent

// RequirableCollaborator names one field of Collaborators an agent may
// declare it needs, matching spec.md §6's agent registry schema.
type RequirableCollaborator string

const (
	RequireMemory     RequirableCollaborator = "memory"
	RequireSupervisor RequirableCollaborator = "supervisor"
	RequireGateway    RequirableCollaborator = "gateway"
	RequireBrain      RequirableCollaborator = "brain"
	RequireName       RequirableCollaborator = "name"
)

// inject returns a Collaborators value containing only the fields named in
// requires, sourced from full and tagged with agentName.
func inject(full Collaborators, agentName string, requires []RequirableCollaborator) Collaborators {
	var c Collaborators
	for _, r := range requires {
		switch r {
		case RequireMemory:
			c.Memory = full.Memory
		case RequireSupervisor:
			c.Supervisor = full.Supervisor
		case RequireGateway:
			c.Gateway = full.Gateway
		case RequireBrain:
			c.Brain = full.Brain
		case RequireName:
			c.Name = agentName
		}
	}
	return c
}
