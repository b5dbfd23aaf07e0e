// Package osinput implements the OS Input Driver described in spec.md
// §4.6: logical-coordinate mouse clicks and keyboard typing on the primary
// monitor. No cross-platform Go automation library appears anywhere in the
// retrieval pack, so — grounded on the teacher's
// internal/agent/tools/desktop_darwin.go and desktop_linux.go — each
// platform shells out to a native CLI tool via os/exec, split across
// build-tagged files.
package osinput

import (
	"context"
	"time"
)

// FocusSettleDelay is a small pause before an action to let a just-clicked
// element settle focus, per spec.md §4.6.
const FocusSettleDelay = 250 * time.Millisecond

// Driver adapts the platform-specific Click/Type functions to an interface,
// so callers like internal/gateway can depend on an abstraction instead of
// package-level functions.
type Driver struct{}

// Click moves the mouse to the logical (x, y) coordinate and clicks.
func (Driver) Click(ctx context.Context, x, y int) error { return Click(ctx, x, y) }

// Type sends text as keystrokes to whatever currently has focus.
func (Driver) Type(ctx context.Context, text string) error { return Type(ctx, text) }
