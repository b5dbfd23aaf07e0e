package brain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silvermark/agentos/internal/browser"
	"github.com/silvermark/agentos/internal/gateway"
	"github.com/silvermark/agentos/internal/perception"
	"github.com/silvermark/agentos/internal/supervisor"
)

type scriptedPerceiver struct {
	snapshots []perception.Snapshot
	idx       int
}

func (p *scriptedPerceiver) Capture() (perception.Snapshot, bool, error) {
	if p.idx >= len(p.snapshots) {
		p.idx = len(p.snapshots) - 1
	}
	s := p.snapshots[p.idx]
	p.idx++
	return s, true, nil
}

type scriptedThinker struct {
	responses []string
	idx       int
}

func (t *scriptedThinker) Query(_ context.Context, _ []byte, _ string) (string, error) {
	r := t.responses[t.idx]
	if t.idx < len(t.responses)-1 {
		t.idx++
	}
	return r, nil
}

type recordingExecutor struct {
	calls int
	allow bool
}

func (e *recordingExecutor) RequestAction(_ context.Context, _ string, _ gateway.ActionType, _, _, _ string, _ *gateway.ClickTarget, _ supervisor.Perception) bool {
	e.calls++
	return e.allow
}

func snapshotWithButton() perception.Snapshot {
	return perception.Snapshot{
		URL: "https://example.com",
		DOM: []browser.DomNode{
			{Tag: "button", Text: "Submit", Attributes: map[string]string{"data-testid": "submit-btn"}, Rect: browser.Rect{X: 10, Y: 10, W: 40, H: 20}},
		},
	}
}

func TestRunMissionFinishesOnFinishAction(t *testing.T) {
	perceiver := &scriptedPerceiver{snapshots: []perception.Snapshot{snapshotWithButton()}}
	thinker := &scriptedThinker{responses: []string{`{"action":"FINISH","reason":"done"}`}}
	exec := &recordingExecutor{allow: true}

	b := New(perceiver, thinker, exec)
	result := b.RunMission(context.Background(), "writer", "post hello world")

	assert.Equal(t, TerminalSuccess, result.Terminal)
	assert.Equal(t, "done", result.Reason)
	assert.Equal(t, 0, exec.calls)
}

func TestRunMissionFailsOnFailAction(t *testing.T) {
	perceiver := &scriptedPerceiver{snapshots: []perception.Snapshot{snapshotWithButton()}}
	thinker := &scriptedThinker{responses: []string{`{"action":"FAIL","reason":"could not find element"}`}}
	exec := &recordingExecutor{allow: true}

	b := New(perceiver, thinker, exec)
	result := b.RunMission(context.Background(), "writer", "post hello world")

	assert.Equal(t, TerminalFailure, result.Terminal)
	assert.Equal(t, "could not find element", result.Reason)
}

func TestRunMissionStepBudgetExhausted(t *testing.T) {
	perceiver := &scriptedPerceiver{snapshots: []perception.Snapshot{snapshotWithButton()}}
	thinker := &scriptedThinker{responses: []string{`{"action":"CLICK","selector":"submit-btn"}`}}
	exec := &recordingExecutor{allow: true}

	b := New(perceiver, thinker, exec).WithMaxSteps(3)
	result := b.RunMission(context.Background(), "writer", "click forever")

	assert.Equal(t, TerminalFailure, result.Terminal)
	assert.Equal(t, "step budget exhausted", result.Reason)
	assert.Equal(t, 3, result.Steps)
	assert.Equal(t, 3, exec.calls)
}

func TestRunMissionStopsImmediatelyOnExecutionFailure(t *testing.T) {
	perceiver := &scriptedPerceiver{snapshots: []perception.Snapshot{snapshotWithButton()}}
	thinker := &scriptedThinker{responses: []string{`{"action":"CLICK","selector":"submit-btn"}`}}
	exec := &recordingExecutor{allow: false}

	b := New(perceiver, thinker, exec).WithMaxSteps(5)
	result := b.RunMission(context.Background(), "writer", "click the button")

	assert.Equal(t, TerminalFailure, result.Terminal)
	assert.Equal(t, 1, result.Steps)
	assert.Equal(t, 1, exec.calls)
	require.Len(t, result.History, 1)
	assert.False(t, result.History[0].Success)
	assert.Equal(t, "execution failed", result.History[0].Outcome)
}

func TestParseActionTolerantOfFencedResponse(t *testing.T) {
	text := "```json\n{\"action\": \"click\", \"selector\": \"submit-btn\", \"reason\": \"it's the submit button\"}\n```"
	action, err := ParseAction(text)
	require.NoError(t, err)
	assert.Equal(t, ActionClick, action.Type)
	assert.Equal(t, "submit-btn", action.Selector)
}

func TestHistoryAppendOnlyWithInPlaceOutcomeUpdate(t *testing.T) {
	perceiver := &scriptedPerceiver{snapshots: []perception.Snapshot{snapshotWithButton(), snapshotWithButton()}}
	thinker := &scriptedThinker{responses: []string{
		`{"action":"CLICK","selector":"submit-btn"}`,
		`{"action":"FINISH","reason":"done"}`,
	}}
	exec := &recordingExecutor{allow: true}

	b := New(perceiver, thinker, exec).WithMaxSteps(5)
	result := b.RunMission(context.Background(), "writer", "click then finish")

	require.Len(t, result.History, 2)
	assert.True(t, result.History[0].Success)
	assert.Equal(t, "executed", result.History[0].Outcome)
	assert.True(t, result.History[1].Success)
}
