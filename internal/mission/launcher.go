package mission

import (
	"context"
	"fmt"

	"github.com/silvermark/agentos/internal/logging"
)

// Launcher drives a Plan's steps against a Registry of agents, persisting
// the plan's step statuses as it goes. Grounded on
// original_source/agents/agent_launcher.py's launch_agents loop.
type Launcher struct {
	registry *Registry
	shared   Collaborators
}

// NewLauncher builds a Launcher over registry, with shared as the full set
// of collaborators available for injection.
func NewLauncher(registry *Registry, shared Collaborators) *Launcher {
	return &Launcher{registry: registry, shared: shared}
}

// Run executes every step of plan in order, persisting plan.Save() after
// each step transition so a crash mid-mission leaves an accurate,
// resumable record. Per spec.md §7's error taxonomy: an unknown agent
// marks its step unavailable and the mission continues; an agent's Run (or
// RunAsync) error marks the step error and the mission continues;
// neither aborts the mission. Returns an error only for PlanIO/
// PlanMalformed conditions the caller should treat as mission-aborting.
func (l *Launcher) Run(ctx context.Context, plan *Plan) error {
	for i := range plan.Steps {
		step := &plan.Steps[i]

		desc, factory, ok := l.registry.Lookup(step.AgentName)
		if !ok {
			step.Status = StatusUnavailable
			step.Error = fmt.Sprintf("unknown agent: %s", step.AgentName)
			logging.Warnf("mission: step %d unavailable: %s", i, step.Error)
			if err := plan.Save(); err != nil {
				return fmt.Errorf("mission: persist plan: %w", err)
			}
			continue
		}

		step.Status = StatusInProgress
		if err := plan.Save(); err != nil {
			return fmt.Errorf("mission: persist plan: %w", err)
		}

		injected := inject(l.shared, step.AgentName, desc.Requires)
		agent := factory(injected)
		if setter, ok := agent.(TaskContextSetter); ok {
			setter.SetTaskContext(step.Task)
		}

		if err := runAgent(ctx, agent); err != nil {
			step.Status = StatusError
			step.Error = err.Error()
			logging.Errorf("mission: step %d (%s) failed: %v", i, step.AgentName, err)
		} else {
			step.Status = StatusCompleted
		}

		if err := plan.Save(); err != nil {
			return fmt.Errorf("mission: persist plan: %w", err)
		}
	}
	return nil
}

// runAgent dispatches synchronously or asynchronously depending on which
// interface agent implements, the Go analog of the original's
// inspect.iscoroutinefunction branch.
func runAgent(ctx context.Context, agent Agent) error {
	if async, ok := agent.(AsyncAgent); ok {
		select {
		case err := <-async.RunAsync(ctx):
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return agent.Run(ctx)
}
