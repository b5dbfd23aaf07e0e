package brain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/silvermark/agentos/internal/perception"
	"github.com/silvermark/agentos/internal/vision"
)

// ActionKind is the Brain's action alphabet, per spec.md §6.
type ActionKind string

const (
	ActionBrowse ActionKind = "BROWSE"
	ActionType   ActionKind = "TYPE"
	ActionClick  ActionKind = "CLICK"
	ActionFinish ActionKind = "FINISH"
	ActionFail   ActionKind = "FAIL"
)

// Action is one decision the model returns each think step.
type Action struct {
	Type     ActionKind `json:"action"`
	Selector string     `json:"selector,omitempty"`
	Value    string     `json:"value,omitempty"`
	Reason   string     `json:"reason,omitempty"`
}

// ParseAction extracts the outermost JSON object from the model's raw text
// response and decodes it into an Action, reusing internal/vision's
// tolerant balanced-brace scanner so prose or code-fence wrapping doesn't
// break parsing. Per spec.md §7's ParseFailure mapping ("treated as the
// model saying FAIL"), an extraction or decode failure never returns a
// bare error — it synthesizes a FAIL action instead, the same way
// original_source/system/brain.py's decide_next_action swallows a bad
// response into a failure action rather than raising, so callers always
// get an action to append to history.
func ParseAction(text string) (Action, error) {
	obj, err := vision.ExtractJSONObject(text)
	if err != nil {
		return Action{Type: ActionFail, Reason: fmt.Sprintf("could not extract action JSON: %v", err)}, nil
	}

	var a Action
	if err := json.Unmarshal([]byte(obj), &a); err != nil {
		return Action{Type: ActionFail, Reason: fmt.Sprintf("could not decode action JSON: %v", err)}, nil
	}
	a.Type = ActionKind(strings.ToUpper(string(a.Type)))
	return a, nil
}

// buildPrompt assembles the VLM prompt from the mission goal, a compact DOM
// observation, and the step history, per spec.md §4.4. Selector guidance
// mirrors spec.md's rules: no :contains(), prefer :has-text() or standard
// CSS, encourage data-testid.
func buildPrompt(goal string, snapshot perception.Snapshot, history []HistoryEntry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Goal: %s\n\n", goal)
	fmt.Fprintf(&b, "Current URL: %s\n\n", snapshot.URL)

	b.WriteString("Interactive elements (tag, text, attributes, rect in CSS px):\n")
	for _, node := range snapshot.DOM {
		fmt.Fprintf(&b, "- <%s> %q attrs=%v rect={x:%.0f,y:%.0f,w:%.0f,h:%.0f}\n",
			node.Tag, node.Text, node.Attributes, node.Rect.X, node.Rect.Y, node.Rect.W, node.Rect.H)
	}
	b.WriteString("\n")

	if len(history) > 0 {
		b.WriteString("History so far:\n")
		for _, h := range history {
			fmt.Fprintf(&b, "- step %d: %s %s -> %s\n", h.Step, h.Action.Type, h.Action.Value, h.Outcome)
		}
		b.WriteString("\n")
	}

	b.WriteString("Attached: a full screenshot of the current screen.\n\n")
	b.WriteString("Choose exactly one next action from: BROWSE, TYPE, CLICK, FINISH, FAIL.\n")
	b.WriteString("For CLICK, selector must be a standard CSS selector identifying one of the " +
		"elements listed above: \"#id\", \"[data-testid='...']\", \"tag[attr='value']\", or a bare " +
		"data-testid/id token (use :has-text(\"...\") for text matching; never use :contains()).\n")
	b.WriteString("Respond with only a JSON object: " +
		"{\"action\":\"BROWSE\"|\"TYPE\"|\"CLICK\"|\"FINISH\"|\"FAIL\",\"selector\":\"...\",\"value\":\"...\",\"reason\":\"...\"}.\n")

	return b.String()
}
