//go:build linux

package osinput

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// clickArgs builds the xdotool argument list for a logical-coordinate
// click: move the mouse then click button 1, matching xdotool's
// mousemove/click two-step idiom.
func clickArgs(x, y int) []string {
	return []string{"mousemove", "--sync", strconv.Itoa(x), strconv.Itoa(y), "click", "1"}
}

// typeArgs builds the xdotool argument list for typing literal text.
func typeArgs(text string) []string {
	return []string{"type", "--clearmodifiers", "--", text}
}

// Click moves the mouse to the logical (x, y) coordinate and clicks the
// primary button via xdotool, pausing FocusSettleDelay first.
func Click(ctx context.Context, x, y int) error {
	time.Sleep(FocusSettleDelay)
	cmd := exec.CommandContext(ctx, "xdotool", clickArgs(x, y)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("osinput: xdotool click: %w (%s)", err, out)
	}
	return nil
}

// Type sends text as keystrokes via xdotool, pausing FocusSettleDelay
// first.
func Type(ctx context.Context, text string) error {
	time.Sleep(FocusSettleDelay)
	cmd := exec.CommandContext(ctx, "xdotool", typeArgs(text)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("osinput: xdotool type: %w (%s)", err, out)
	}
	return nil
}
