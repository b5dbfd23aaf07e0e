// Package supervisor implements the Supervisor described in spec.md §4.3:
// risk classification of actions, visual validation of high-risk clicks via
// the Vision Client, and an append-only decision journal. Grounded on
// original_source/agents/supervisor.py's approve_action/log_decision pair,
// generalized from its hard-coded "post"/"submit" special case into the
// full keyword set spec.md §6 specifies, with the journal recorded through
// a component-tagged slog.Logger (slog.Default().With("component", ...))
// rather than the original's bare print statements.
package supervisor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/silvermark/agentos/internal/vision"
)

// RiskClass is Low or High, per spec.md §3.
type RiskClass string

const (
	RiskLow  RiskClass = "Low"
	RiskHigh RiskClass = "High"
)

// riskKeywords triggers High risk when found case-insensitively in either
// task_context or value, per spec.md §6.
var riskKeywords = []string{
	"post", "delete", "confirm", "purchase", "send", "submit",
	"login", "password", "credentials", "pay", "buy", "approve",
}

// riskEligibleActionTypes are the only action types subject to keyword-based
// High classification; every other action type is Low regardless of
// taskContext/value content, per spec.md §4.3's "action_type not in
// {click, click_web, type_text, type_web}" clause.
var riskEligibleActionTypes = map[string]bool{
	"click_mouse": true,
	"type_text":   true,
}

// ClassifyRisk determines whether an action is Low or High risk: actions
// outside the click/type vocabulary are always Low; click/type actions are
// High only when a risk keyword (case insensitive) appears in taskContext
// or value, per spec.md §4.3 and §8 property 4.
func ClassifyRisk(actionType, value, taskContext string) RiskClass {
	if !riskEligibleActionTypes[actionType] {
		return RiskLow
	}

	haystack := strings.ToLower(taskContext + " " + value)
	for _, kw := range riskKeywords {
		if strings.Contains(haystack, kw) {
			return RiskHigh
		}
	}
	return RiskLow
}

// Perception is the minimal view of a perception snapshot the Supervisor
// needs: a pixel frame to hand the Vision Client. Declared as a narrow
// interface rather than importing internal/perception, so the Supervisor
// doesn't couple to the full Snapshot shape.
type Perception interface {
	PixelFrame() []byte
}

// VisionQuerier is the subset of *vision.Client the Supervisor depends on,
// narrowed to an interface so tests can supply a fake without constructing
// real model providers.
type VisionQuerier interface {
	QueryDecision(ctx context.Context, imageJPEG []byte, prompt string) vision.Decision
}

// Decision is one journal entry, per spec.md §3's SupervisorDecision.
type Decision struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	AgentName   string    `json:"agent_name"`
	ActionType  string    `json:"action_type"`
	Value       string    `json:"value"`
	TaskContext string    `json:"task_context"`
	Risk        RiskClass `json:"risk"`
	Approved    bool      `json:"approved"`
	Reason      string    `json:"reason"`
}

// Supervisor classifies and approves actions, keeping an append-only
// journal of every decision.
type Supervisor struct {
	vision VisionQuerier
	log    *slog.Logger

	mu      sync.Mutex
	journal []Decision
}

// New builds a Supervisor backed by vision for high-risk click validation.
func New(vision VisionQuerier) *Supervisor {
	return &Supervisor{
		vision: vision,
		log:    slog.Default().With("component", "supervisor"),
	}
}

// significantCharThreshold is the minimum count of non-whitespace
// characters a High-risk typed value must contain to be approved without
// visual validation, per spec.md §4.3.
const significantCharThreshold = 3

// ApproveAction classifies actionType/value/taskContext, validates
// high-risk clicks against perception via the Vision Client (blocking
// automatically if perception is nil), and appends a Decision to the
// journal before returning whether the action is approved.
func (s *Supervisor) ApproveAction(ctx context.Context, agentName, actionType, value, taskContext string, perception Perception) bool {
	risk := ClassifyRisk(actionType, value, taskContext)

	if risk == RiskLow {
		return s.record(agentName, actionType, value, taskContext, risk, true, "low risk")
	}

	switch actionType {
	case "click_mouse":
		if perception == nil {
			return s.record(agentName, actionType, value, taskContext, risk, false, "no perception available for high-risk click")
		}
		prompt := buildValidationPrompt(actionType, value, taskContext)
		decision := s.vision.QueryDecision(ctx, perception.PixelFrame(), prompt)
		return s.record(agentName, actionType, value, taskContext, risk, decision.Approved(), decision.Reason)

	case "type_text":
		significant := countSignificantChars(value)
		if significant >= significantCharThreshold {
			return s.record(agentName, actionType, value, taskContext, risk, true,
				fmt.Sprintf("%d significant characters, typing does not require visual validation", significant))
		}
		return s.record(agentName, actionType, value, taskContext, risk, false, "typed value too short to approve")

	default:
		return s.record(agentName, actionType, value, taskContext, risk, true, "high risk but not a validated action type")
	}
}

func buildValidationPrompt(actionType, value, taskContext string) string {
	return fmt.Sprintf(
		"You are validating a high-risk browser action before it executes.\n"+
			"Action: %s\nValue: %s\nContext: %s\n\n"+
			"Look at the attached screenshot. Does it look safe and correct to proceed?\n"+
			"Respond with only a JSON object: {\"decision\": \"Yes\"|\"No\", \"reason\": \"...\"}.",
		actionType, value, taskContext,
	)
}

func countSignificantChars(value string) int {
	n := 0
	for _, r := range value {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			n++
		}
	}
	return n
}

func (s *Supervisor) record(agentName, actionType, value, taskContext string, risk RiskClass, approved bool, reason string) bool {
	d := Decision{
		ID:          uuid.NewString(),
		Timestamp:   time.Now(),
		AgentName:   agentName,
		ActionType:  actionType,
		Value:       value,
		TaskContext: taskContext,
		Risk:        risk,
		Approved:    approved,
		Reason:      reason,
	}

	s.mu.Lock()
	s.journal = append(s.journal, d)
	s.mu.Unlock()

	s.log.Info("action decision",
		"agent", agentName, "action", actionType, "risk", risk, "approved", approved, "reason", reason)

	return approved
}

// Journal returns a copy of the decision log, in append order.
func (s *Supervisor) Journal() []Decision {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Decision, len(s.journal))
	copy(out, s.journal)
	return out
}
