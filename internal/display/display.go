// Package display captures the primary monitor's geometry once at process
// start, grounded on the teacher's internal/agent/tools/screenshot.go use of
// github.com/kbinani/screenshot for display enumeration.
package display

import (
	"fmt"

	"github.com/kbinani/screenshot"
)

// Context describes the primary monitor, captured once and cached in
// Memory under "display_context" per spec.md §3. ScalingFactor converts CSS
// pixel coordinates to logical screen coordinates for the OS Input Driver
// (CSS pixels divided by ScalingFactor);
// it defaults to 1.0 when the platform can't report a HiDPI scale,
// per spec.md §4.2.
type Context struct {
	ScalingFactor    float64 `json:"scaling_factor"`
	PhysicalWidth    int     `json:"physical_width"`
	PhysicalHeight   int     `json:"physical_height"`
	PrimaryMonitorX  int     `json:"primary_monitor_x"`
	PrimaryMonitorY  int     `json:"primary_monitor_y"`
}

// Capture queries the primary monitor's bounds via screenshot.GetDisplayBounds(0).
// ScalingFactor is always 1.0: kbinani/screenshot reports physical pixels
// directly and exposes no DPI query, so a scale other than 1.0 must be
// supplied out of band (e.g. a future platform-specific probe) — see
// DESIGN.md for why this stays a stdlib-geometry read rather than growing a
// bespoke DPI detector.
func Capture() (Context, error) {
	if screenshot.NumActiveDisplays() < 1 {
		return Context{}, fmt.Errorf("display: no active displays")
	}

	bounds := screenshot.GetDisplayBounds(0)
	if bounds.Empty() {
		return Context{}, fmt.Errorf("display: empty primary display bounds")
	}

	return Context{
		ScalingFactor:   1.0,
		PhysicalWidth:   bounds.Dx(),
		PhysicalHeight:  bounds.Dy(),
		PrimaryMonitorX: bounds.Min.X,
		PrimaryMonitorY: bounds.Min.Y,
	}, nil
}

// Clamp bounds a physical-pixel point to the primary monitor's resolution,
// per spec.md §4.2's coordinate-translation contract.
func (c Context) Clamp(x, y int) (int, int) {
	cx := clampInt(x, c.PrimaryMonitorX, c.PrimaryMonitorX+c.PhysicalWidth-1)
	cy := clampInt(y, c.PrimaryMonitorY, c.PrimaryMonitorY+c.PhysicalHeight-1)
	return cx, cy
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
