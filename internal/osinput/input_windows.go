//go:build windows

package osinput

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// clickScript builds a PowerShell script that moves the cursor to (x, y)
// via System.Windows.Forms.Cursor and sends a left-button click through
// user32's mouse_event, the Windows analog of the teacher's per-OS
// desktop automation files.
func clickScript(x, y int) string {
	return fmt.Sprintf(`Add-Type -AssemblyName System.Windows.Forms;`+
		`[System.Windows.Forms.Cursor]::Position = New-Object System.Drawing.Point(%d,%d);`+
		`$sig='[DllImport("user32.dll")]public static extern void mouse_event(int dwFlags,int dx,int dy,int cButtons,int dwExtraInfo);';`+
		`$t=Add-Type -MemberDefinition $sig -Name Mouse -Namespace Win32 -PassThru;`+
		`$t::mouse_event(0x0002,0,0,0,0); $t::mouse_event(0x0004,0,0,0,0);`,
		x, y)
}

// typeScript builds a PowerShell script that sends text as keystrokes via
// SendKeys.
func typeScript(text string) string {
	escaped := strconv.Quote(text)
	return fmt.Sprintf(`Add-Type -AssemblyName System.Windows.Forms;`+
		`[System.Windows.Forms.SendKeys]::SendWait(%s);`, escaped)
}

// Click moves the mouse to the logical (x, y) coordinate and clicks via a
// PowerShell helper script, pausing FocusSettleDelay first.
func Click(ctx context.Context, x, y int) error {
	time.Sleep(FocusSettleDelay)
	cmd := exec.CommandContext(ctx, "powershell", "-NoProfile", "-Command", clickScript(x, y))
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("osinput: powershell click: %w (%s)", err, out)
	}
	return nil
}

// Type sends text as keystrokes via a PowerShell helper script, pausing
// FocusSettleDelay first.
func Type(ctx context.Context, text string) error {
	time.Sleep(FocusSettleDelay)
	cmd := exec.CommandContext(ctx, "powershell", "-NoProfile", "-Command", typeScript(text))
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("osinput: powershell type: %w (%s)", err, out)
	}
	return nil
}
