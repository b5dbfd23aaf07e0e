package agent

import (
	"context"
	"fmt"

	"github.com/silvermark/agentos/internal/brain"
	"github.com/silvermark/agentos/internal/memory"
)

// defaultPostTarget is the composer URL the Brain is steered toward,
// matching original_source/agents/poster_agent.py's hard-coded
// "https://x.com/compose/post" target.
const defaultPostTarget = "https://x.com/compose/post"

// Poster delegates posting entirely to the Brain's perceive/think/act loop.
// Grounded on
// poster_agent.py's PosterAgent.run, whose hand-rolled perception/approval/
// click sequence is replaced here by a single brain.RunMission call — the
// Brain already performs the same perceive -> approve -> act steps
// generically.
type Poster struct {
	name        string
	memory      *memory.Store
	brain       *brain.Brain
	taskContext string
}

// NewPoster builds a Poster bound to store and b.
func NewPoster(name string, store *memory.Store, b *brain.Brain) *Poster {
	return &Poster{name: name, memory: store, brain: b}
}

// SetTaskContext implements mission.TaskContextSetter.
func (p *Poster) SetTaskContext(taskContext string) {
	p.taskContext = taskContext
}

// Run loads the pending post content from Memory and hands the Brain a
// goal describing the posting task. Per S2 in spec.md §8, a Brain failure
// (Gateway blocked or execution failed) is reported as a normal return —
// not an error — since the agent itself completed its work correctly; the
// Brain's internal terminal state is surfaced via logging only.
func (p *Poster) Run(ctx context.Context) error {
	content, ok := p.memory.GetString(PostContentKey)
	if !ok || content == "" {
		return fmt.Errorf("poster: no %s found in memory", PostContentKey)
	}

	goal := fmt.Sprintf(
		"Post content to X (Twitter). Navigate to %s, type the following text exactly into the tweet composer, then submit it: %q. %s",
		defaultPostTarget, content, p.taskContext,
	)

	p.brain.RunMission(ctx, p.name, goal)
	return nil
}
