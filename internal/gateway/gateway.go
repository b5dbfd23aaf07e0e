// Package gateway implements the Action Gateway described in spec.md §4.2:
// the single RequestAction entry point through which every agent and every
// Brain step performs a side effect, whether that's loading a URL in the
// browser or a physical mouse click/keystroke on the primary monitor.
//
// Grounded on original_source/system/agentos_core.py's AgentOSCore.
// request_action (the single dispatch point calling the supervisor before
// acting), generalized to the richer action/value/task_context contract
// spec.md §4.2 specifies, and on the coordinate math implied by that
// prototype's pyautogui.moveTo/click usage.
package gateway

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/silvermark/agentos/internal/browser"
	"github.com/silvermark/agentos/internal/display"
	"github.com/silvermark/agentos/internal/supervisor"
)

// ActionType enumerates the Gateway's five-member action alphabet, per
// spec.md §4.2's "action_type ∈ {browse, click_web, type_web, click,
// type_text}".
type ActionType string

const (
	// ActionBrowse navigates the Browser Driver to a URL.
	ActionBrowse ActionType = "browse"
	// ActionClickWeb takes the caller-supplied DOM rect of a target
	// (ClickTarget), translates its center to a logical screen point, and
	// clicks through the OS Input Driver; the Browser Driver only checks
	// the selector's actionability first (skipped on stubborn-click hosts).
	ActionClickWeb ActionType = "click_web"
	// ActionTypeWeb fills text into a selector via the Browser Driver's
	// DOM-native input, bypassing the OS keyboard entirely.
	ActionTypeWeb ActionType = "type_web"
	// ActionClick clicks already-logical OS coordinates directly, with no
	// selector or Browser involvement.
	ActionClick ActionType = "click"
	// ActionTypeText sends text as physical keystrokes via the OS Input
	// Driver to whatever currently has focus.
	ActionTypeText ActionType = "type_text"
)

// PhysicalInput is the OS Input Driver contract the Gateway depends on,
// narrowed to an interface so tests can fake it.
type PhysicalInput interface {
	Click(ctx context.Context, x, y int) error
	Type(ctx context.Context, text string) error
}

// BrowserActions is the subset of *browser.Driver the Gateway depends on.
type BrowserActions interface {
	Navigate(url string) error
	CurrentURL() string
	IsActionable(selector string) (bool, error)
	Type(selector, text string) error
}

// Gateway is the single side-effect entry point for agents and the Brain.
type Gateway struct {
	browser       BrowserActions
	input         PhysicalInput
	supervisor    *supervisor.Supervisor
	displayCtx    display.Context
	stubbornHosts map[string]bool
}

// New builds a Gateway. stubbornHosts is the configurable allowlist of
// hostnames whose overlay/anti-automation layering defeats normal
// actionability checks (spec.md §9 Open Question (b)). The set always
// holds "x.com" plus any hosts in AGENTOS_STUBBORN_CLICK_HOSTS; the hosts
// passed here are added to it, so nil gives just that default set.
func New(browserDriver BrowserActions, input PhysicalInput, sup *supervisor.Supervisor, displayCtx display.Context, stubbornHosts []string) *Gateway {
	hosts := defaultStubbornHosts()
	for _, h := range stubbornHosts {
		hosts[strings.ToLower(h)] = true
	}
	return &Gateway{
		browser:       browserDriver,
		input:         input,
		supervisor:    sup,
		displayCtx:    displayCtx,
		stubbornHosts: hosts,
	}
}

func defaultStubbornHosts() map[string]bool {
	hosts := map[string]bool{"x.com": true}
	if raw := os.Getenv("AGENTOS_STUBBORN_CLICK_HOSTS"); raw != "" {
		for _, h := range strings.Split(raw, ",") {
			h = strings.ToLower(strings.TrimSpace(h))
			if h != "" {
				hosts[h] = true
			}
		}
	}
	return hosts
}

// ClickTarget describes the element a click_web action targets: its CSS
// selector (used for the actionability pre-check) and its DOM rect, in CSS
// pixels relative to the viewport, used for coordinate translation.
type ClickTarget struct {
	Selector string
	Rect     browser.Rect
}

// RequestAction is the single entry point for every side effect. It
// classifies and approves the action via the Supervisor, then dispatches:
// browse -> Browser Driver navigation; click_web -> selector resolved to a
// rect, translated, and clicked via the OS Input Driver; type_web ->
// Browser Driver DOM fill; click -> a raw logical-coordinate OS click;
// type_text -> raw OS keystrokes. selector carries the CSS target for
// type_web (click_web carries its own selector inside click). Returns
// false if the Supervisor blocks the action or if execution fails.
func (g *Gateway) RequestAction(ctx context.Context, agentName string, action ActionType, value, selector, taskContext string, click *ClickTarget, perception supervisor.Perception) bool {
	approveValue := value
	var clickX, clickY int

	switch action {
	case ActionClickWeb:
		if click == nil {
			return false
		}
		clickX, clickY = TranslateRect(click.Rect, g.displayCtx)
		approveValue = fmt.Sprintf("%d,%d", clickX, clickY)

	case ActionClick:
		x, y, ok := parseXY(value)
		if !ok {
			return false
		}
		clickX, clickY = g.displayCtx.Clamp(x, y)
		approveValue = fmt.Sprintf("%d,%d", clickX, clickY)
	}

	approved := g.supervisor.ApproveAction(ctx, agentName, mapActionType(action), approveValue, taskContext, perception)
	if !approved {
		return false
	}

	switch action {
	case ActionBrowse:
		if err := g.browser.Navigate(value); err != nil {
			return false
		}
		return true

	case ActionClickWeb:
		return g.executeClickWeb(*click, clickX, clickY)

	case ActionClick:
		if err := g.input.Click(ctx, clickX, clickY); err != nil {
			return false
		}
		return true

	case ActionTypeWeb:
		if err := g.browser.Type(selector, value); err != nil {
			return false
		}
		return true

	case ActionTypeText:
		if err := g.input.Type(ctx, value); err != nil {
			return false
		}
		return true

	default:
		return false
	}
}

// parseXY parses a "x,y" logical-coordinate value, the wire form a raw
// click action carries per spec.md §3's CLICK_OS{x, y} variant.
func parseXY(value string) (int, int, bool) {
	xs, ys, found := strings.Cut(value, ",")
	if !found {
		return 0, 0, false
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return 0, 0, false
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return 0, 0, false
	}
	return x, y, true
}

// mapActionType translates the Gateway's five-member action alphabet into
// the Supervisor's risk-classification vocabulary: both click variants are
// click_mouse, both typing variants are type_text, matching spec.md §4.3's
// "click_*"/"type_*" risk grouping.
func mapActionType(action ActionType) string {
	switch action {
	case ActionClickWeb, ActionClick:
		return "click_mouse"
	case ActionTypeWeb, ActionTypeText:
		return "type_text"
	case ActionBrowse:
		return "open_browser"
	default:
		return string(action)
	}
}

func (g *Gateway) executeClickWeb(target ClickTarget, x, y int) bool {
	if !g.isStubbornHost() {
		actionable, err := g.browser.IsActionable(target.Selector)
		if err != nil || !actionable {
			return false
		}
	}

	if err := g.input.Click(context.Background(), x, y); err != nil {
		return false
	}
	return true
}

func (g *Gateway) isStubbornHost() bool {
	u, err := url.Parse(g.browser.CurrentURL())
	if err != nil {
		return false
	}
	return g.stubbornHosts[strings.ToLower(u.Hostname())]
}

// TranslateRect converts a CSS-pixel DOM rect into a logical screen point
// for the OS Input Driver:
// the rect's center divided by the display's scaling factor, rounded to
// the nearest pixel and clamped to the primary monitor's resolution, per
// spec.md §4.2.
func TranslateRect(rect browser.Rect, ctx display.Context) (int, int) {
	scale := ctx.ScalingFactor
	if scale == 0 {
		scale = 1.0
	}

	cx := (rect.X + rect.W/2) / scale
	cy := (rect.Y + rect.H/2) / scale

	x := int(math.Round(cx))
	y := int(math.Round(cy))

	return ctx.Clamp(x, y)
}
