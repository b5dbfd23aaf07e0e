// Package brain implements the Cognitive Brain described in spec.md §4.4:
// a perceive -> think -> act loop bounded by a step budget and a wall-clock
// cap, driving the browser via the Action Gateway and judging the next
// action with a vision-language model.
//
// Grounded directly on original_source/system/brain.py's Brain class:
// perceive_environment -> decide_next_action -> execute_action -> run_mission,
// translated from Python's dict-shaped observation/regex JSON extraction
// into typed Go values and the balanced-brace extraction
// internal/vision.ExtractJSONObject already implements.
package brain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/silvermark/agentos/internal/browser"
	"github.com/silvermark/agentos/internal/gateway"
	"github.com/silvermark/agentos/internal/logging"
	"github.com/silvermark/agentos/internal/perception"
	"github.com/silvermark/agentos/internal/supervisor"
)

// DefaultMaxSteps bounds the perceive/think/act loop per spec.md §4.4.
const DefaultMaxSteps = 15

// DefaultMissionTimeout is the recommended per-mission wall-clock cap.
const DefaultMissionTimeout = 10 * time.Minute

// Perceiver captures the current observation.
type Perceiver interface {
	Capture() (perception.Snapshot, bool, error)
}

// Thinker performs a single multimodal query and returns the model's raw
// text response.
type Thinker interface {
	Query(ctx context.Context, imageJPEG []byte, prompt string) (string, error)
}

// Executor is the Action Gateway's dispatch contract, narrowed to an
// interface so the Brain doesn't depend on gateway.Gateway's concrete
// construction.
type Executor interface {
	RequestAction(ctx context.Context, agentName string, action gateway.ActionType, value, selector, taskContext string, click *gateway.ClickTarget, snap supervisor.Perception) bool
}

// TerminalState is the Brain's outcome once the loop ends, per spec.md
// §4.4's Perceive->Think->Act->Terminal{Success|Failure} state machine.
type TerminalState string

const (
	TerminalSuccess TerminalState = "Success"
	TerminalFailure TerminalState = "Failure"
)

// HistoryEntry records one step of the loop. Outcome is set in place after
// the action executes — the history itself is append-only, but each
// entry's Outcome field is mutated exactly once, matching spec.md §9's
// "append-only with in-place outcome update" invariant.
type HistoryEntry struct {
	Step    int      `json:"step"`
	Action  Action   `json:"action"`
	Outcome string   `json:"outcome"`
	Success bool     `json:"success"`
}

// Result is what RunMission returns.
type Result struct {
	Terminal TerminalState
	Reason   string
	History  []HistoryEntry
	Steps    int
}

// Brain runs the perceive/think/act loop for a single mission goal.
type Brain struct {
	perceive Perceiver
	think    Thinker
	act      Executor

	maxSteps       int
	missionTimeout time.Duration

	history []HistoryEntry
}

// New builds a Brain with spec.md's default step budget and timeout.
func New(perceive Perceiver, think Thinker, act Executor) *Brain {
	return &Brain{
		perceive:       perceive,
		think:          think,
		act:            act,
		maxSteps:       DefaultMaxSteps,
		missionTimeout: DefaultMissionTimeout,
	}
}

// WithMaxSteps overrides the default step budget.
func (b *Brain) WithMaxSteps(n int) *Brain {
	b.maxSteps = n
	return b
}

// WithMissionTimeout overrides the default wall-clock cap.
func (b *Brain) WithMissionTimeout(d time.Duration) *Brain {
	b.missionTimeout = d
	return b
}

// RunMission drives the loop toward goal until FINISH, FAIL, the step
// budget, or the wall-clock cap is reached.
func (b *Brain) RunMission(ctx context.Context, agentName, goal string) Result {
	deadline := time.Now().Add(b.missionTimeout)
	b.history = nil

	for step := 1; step <= b.maxSteps; step++ {
		if time.Now().After(deadline) {
			return b.finish(TerminalFailure, "mission exceeded wall-clock time budget")
		}

		snapshot, _, err := b.perceive.Capture()
		if err != nil {
			return b.finish(TerminalFailure, fmt.Sprintf("perception failed: %v", err))
		}

		action := b.decide(ctx, goal, snapshot)

		entry := HistoryEntry{Step: step, Action: action}
		b.history = append(b.history, entry)
		idx := len(b.history) - 1

		switch action.Type {
		case ActionFinish:
			b.history[idx].Success = true
			b.history[idx].Outcome = "mission finished"
			return b.finish(TerminalSuccess, action.Reason)

		case ActionFail:
			b.history[idx].Outcome = "model reported failure"
			return b.finish(TerminalFailure, action.Reason)
		}

		ok := b.executeAction(ctx, agentName, goal, action, snapshot)
		if ok {
			b.history[idx].Success = true
			b.history[idx].Outcome = "executed"
		} else {
			b.history[idx].Outcome = "execution failed"
			return b.finish(TerminalFailure, "gateway rejected or failed to execute the action")
		}
	}

	return b.finish(TerminalFailure, "step budget exhausted")
}

func (b *Brain) finish(state TerminalState, reason string) Result {
	logging.Infof("brain: mission terminal state=%s reason=%s steps=%d", state, reason, len(b.history))
	return Result{
		Terminal: state,
		Reason:   reason,
		History:  append([]HistoryEntry(nil), b.history...),
		Steps:    len(b.history),
	}
}

// decide runs one think step. A vision failure is treated the same as a
// model-reported FAIL per spec.md §7's VisionUnavailable mapping: it
// synthesizes a FAIL action instead of returning an error, so the caller
// always has an action to append to history (spec.md §8 property 8).
func (b *Brain) decide(ctx context.Context, goal string, snapshot perception.Snapshot) Action {
	prompt := buildPrompt(goal, snapshot, b.history)
	text, err := b.think.Query(ctx, snapshot.PixelsJPEG, prompt)
	if err != nil {
		return Action{Type: ActionFail, Reason: fmt.Sprintf("vision unavailable: %v", err)}
	}
	action, _ := ParseAction(text)
	return action
}

func (b *Brain) executeAction(ctx context.Context, agentName, goal string, action Action, snapshot perception.Snapshot) bool {
	switch action.Type {
	case ActionBrowse:
		return b.act.RequestAction(ctx, agentName, gateway.ActionBrowse, action.Value, "", goal, nil, snapshot)

	case ActionType:
		return b.act.RequestAction(ctx, agentName, gateway.ActionTypeWeb, action.Value, action.Selector, goal, nil, snapshot)

	case ActionClick:
		cssSelector, rect, ok := findRect(snapshot.DOM, action.Selector)
		if !ok {
			return false
		}
		target := &gateway.ClickTarget{Selector: cssSelector, Rect: rect}
		return b.act.RequestAction(ctx, agentName, gateway.ActionClickWeb, action.Value, "", goal, target, snapshot)

	default:
		return false
	}
}

// knownDomAttributes are the attribute keys perception.Snapshot's DOM nodes
// ever carry, per spec.md §3's fixed DomNode.Attributes set. A bracketed
// selector naming any other attribute (e.g. "href") can't be verified
// against the captured snapshot, so findRect falls back to a tag-only
// match for it — an approximation of real CSS matching given the fixed
// attribute surface the Perception component captures.
var knownDomAttributes = map[string]bool{
	"id": true, "class": true, "role": true, "aria-label": true,
	"data-testid": true, "name": true, "placeholder": true,
}

// findRect resolves a model-supplied selector against the perceived DOM.
// It understands the forms buildPrompt's guidance steers the model toward:
// "#id", "[attr='value']", and "tag[attr='value']" (spec.md's S1 scenario
// uses both "a[href='/compose']" and "[data-testid='tweetButton']"), plus
// a bare token matched against data-testid then id for back-compat with
// models that ignore the bracket-syntax guidance. Returns a CSS selector
// for the Browser Driver's actionability check alongside the matched
// element's rect: bracketed and "#id" selectors are returned unchanged, a
// bare token is rewritten to "[data-testid=...]" or "#id".
func findRect(dom []browser.DomNode, selector string) (string, browser.Rect, bool) {
	sel := strings.TrimSpace(selector)

	if tag, attr, val, ok := parseAttrSelector(sel); ok {
		for _, node := range dom {
			if tag != "" && !strings.EqualFold(node.Tag, tag) {
				continue
			}
			if knownDomAttributes[attr] {
				if node.Attributes[attr] == val {
					return sel, node.Rect, true
				}
				continue
			}
			// attr isn't in the captured fixed set (e.g. "href"): the
			// best we can do locally is match on tag alone.
			if tag != "" {
				return sel, node.Rect, true
			}
		}
		return "", browser.Rect{}, false
	}

	if id, ok := strings.CutPrefix(sel, "#"); ok {
		for _, node := range dom {
			if node.Attributes["id"] == id {
				return sel, node.Rect, true
			}
		}
		return "", browser.Rect{}, false
	}

	for _, node := range dom {
		if node.Attributes["data-testid"] == sel {
			return fmt.Sprintf("[data-testid=%q]", sel), node.Rect, true
		}
	}
	for _, node := range dom {
		if node.Attributes["id"] == sel {
			return "#" + sel, node.Rect, true
		}
	}
	return "", browser.Rect{}, false
}

// parseAttrSelector recognizes "tag[attr='value']" and "[attr='value']"
// (tag empty), the bracketed-attribute CSS forms spec.md's S1 scenario
// uses verbatim.
func parseAttrSelector(sel string) (tag, attr, val string, ok bool) {
	start := strings.IndexByte(sel, '[')
	end := strings.IndexByte(sel, ']')
	if start < 0 || end < 0 || end < start {
		return "", "", "", false
	}
	tag = sel[:start]
	inner := sel[start+1 : end]
	eq := strings.IndexByte(inner, '=')
	if eq < 0 {
		return "", "", "", false
	}
	attr = strings.TrimSpace(inner[:eq])
	val = strings.Trim(strings.TrimSpace(inner[eq+1:]), `'"`)
	return tag, attr, val, true
}
