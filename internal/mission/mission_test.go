package mission

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAgent struct {
	name string
	err  error
	ran  *bool
}

func (a fakeAgent) Run(ctx context.Context) error {
	if a.ran != nil {
		*a.ran = true
	}
	return a.err
}

type fakeAsyncAgent struct {
	err error
}

// Run satisfies Agent (every Factory returns one); the Launcher must prefer
// RunAsync, so reaching Run fails the step.
func (a fakeAsyncAgent) Run(ctx context.Context) error {
	return errors.New("fakeAsyncAgent: Run called instead of RunAsync")
}

func (a fakeAsyncAgent) RunAsync(ctx context.Context) <-chan error {
	ch := make(chan error, 1)
	ch <- a.err
	return ch
}

func writePlan(t *testing.T, steps []Step) (*Plan, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.json")
	p := &Plan{Goal: "test goal", Steps: steps}
	p.path = path
	require.NoError(t, p.Save())
	return p, path
}

func TestLauncherMarksUnknownAgentUnavailableAndContinues(t *testing.T) {
	plan, path := writePlan(t, []Step{
		{AgentName: "ghost", Task: "do something", Status: StatusPending},
		{AgentName: "writer", Task: "write", Status: StatusPending},
	})

	ranWriter := false
	registry := NewRegistry()
	registry.Register("writer", nil, func(c Collaborators) Agent {
		return fakeAgent{ran: &ranWriter}
	})

	launcher := NewLauncher(registry, Collaborators{})
	require.NoError(t, launcher.Run(context.Background(), plan))

	assert.Equal(t, StatusUnavailable, plan.Steps[0].Status)
	assert.Equal(t, StatusCompleted, plan.Steps[1].Status)
	assert.True(t, ranWriter)

	reloaded, err := LoadPlan(path)
	require.NoError(t, err)
	assert.Equal(t, StatusUnavailable, reloaded.Steps[0].Status)
}

func TestLauncherMarksAgentFailureErrorAndContinues(t *testing.T) {
	plan, _ := writePlan(t, []Step{
		{AgentName: "flaky", Task: "do something", Status: StatusPending},
		{AgentName: "writer", Task: "write", Status: StatusPending},
	})

	registry := NewRegistry()
	registry.Register("flaky", nil, func(c Collaborators) Agent {
		return fakeAgent{err: errors.New("boom")}
	})
	registry.Register("writer", nil, func(c Collaborators) Agent {
		return fakeAgent{}
	})

	launcher := NewLauncher(registry, Collaborators{})
	require.NoError(t, launcher.Run(context.Background(), plan))

	assert.Equal(t, StatusError, plan.Steps[0].Status)
	assert.Equal(t, "boom", plan.Steps[0].Error)
	assert.Equal(t, StatusCompleted, plan.Steps[1].Status)
}

func TestLauncherInjectsOnlyDeclaredCollaborators(t *testing.T) {
	plan, _ := writePlan(t, []Step{
		{AgentName: "poster", Task: "post", Status: StatusPending},
	})

	var seen Collaborators
	registry := NewRegistry()
	registry.Register("poster", []RequirableCollaborator{RequireName, RequireMemory}, func(c Collaborators) Agent {
		seen = c
		return fakeAgent{}
	})

	shared := Collaborators{Name: "should-not-be-used-directly"}
	launcher := NewLauncher(registry, shared)
	require.NoError(t, launcher.Run(context.Background(), plan))

	assert.Equal(t, "poster", seen.Name)
	assert.Nil(t, seen.Supervisor)
	assert.Nil(t, seen.Gateway)
	assert.Nil(t, seen.Brain)
}

func TestLauncherRunsAsyncAgents(t *testing.T) {
	plan, _ := writePlan(t, []Step{
		{AgentName: "background", Task: "do it", Status: StatusPending},
	})

	registry := NewRegistry()
	registry.Register("background", nil, func(c Collaborators) Agent {
		return fakeAsyncAgent{}
	})

	launcher := NewLauncher(registry, Collaborators{})
	require.NoError(t, launcher.Run(context.Background(), plan))

	assert.Equal(t, StatusCompleted, plan.Steps[0].Status)
}

func TestPlanSaveIsAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.json")
	p := &Plan{Goal: "goal", Steps: []Step{{AgentName: "a", Status: StatusPending}}}
	p.path = path
	require.NoError(t, p.Save())

	// no leftover temp file after a successful save
	_, err := os.Stat(filepath.Join(dir, ".plan.tmp"))
	assert.True(t, os.IsNotExist(err))

	reloaded, err := LoadPlan(path)
	require.NoError(t, err)
	assert.Equal(t, "goal", reloaded.Goal)
}
