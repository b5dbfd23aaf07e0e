//go:build darwin

package osinput

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// clickArgs builds the cliclick argument list for a logical-coordinate
// click, matching cliclick's "c:x,y" click-at-point syntax.
func clickArgs(x, y int) []string {
	return []string{"c:" + strconv.Itoa(x) + "," + strconv.Itoa(y)}
}

// typeArgs builds the cliclick argument list for typing literal text.
func typeArgs(text string) []string {
	return []string{"t:" + text}
}

// Click moves the mouse to the logical (x, y) coordinate and clicks via
// cliclick, pausing FocusSettleDelay first.
func Click(ctx context.Context, x, y int) error {
	time.Sleep(FocusSettleDelay)
	cmd := exec.CommandContext(ctx, "cliclick", clickArgs(x, y)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("osinput: cliclick click: %w (%s)", err, out)
	}
	return nil
}

// Type sends text as keystrokes via cliclick, pausing FocusSettleDelay
// first.
func Type(ctx context.Context, text string) error {
	time.Sleep(FocusSettleDelay)
	cmd := exec.CommandContext(ctx, "cliclick", typeArgs(text)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("osinput: cliclick type: %w (%s)", err, out)
	}
	return nil
}
