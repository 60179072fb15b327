package camera

import "math"

// WheelZoomBase is the zoom multiplier per mouse wheel notch.
const WheelZoomBase = 1.1

// WheelZoomFactor converts wheel movement into a zoom multiplier.
func WheelZoomFactor(wheel float32) float32 {
	return float32(math.Pow(WheelZoomBase, float64(wheel)))
}

// Drag turns mouse button state into camera pan deltas.
type Drag struct {
	active       bool
	lastX, lastY float32
}

// Update feeds one frame of mouse state and returns the pan delta in screen
// pixels. A press on a blocked area (a UI panel) does not start a drag.
func (d *Drag) Update(x, y float32, pressed, down, blocked bool) (dx, dy float32) {
	if pressed {
		d.active = !blocked
		d.lastX, d.lastY = x, y
		return 0, 0
	}
	if !down || !d.active {
		d.active = false
		return 0, 0
	}

	// Dragging right moves the board right, so the center moves left.
	dx, dy = d.lastX-x, d.lastY-y
	d.lastX, d.lastY = x, y
	return dx, dy
}

// Active reports whether a drag is in progress.
func (d *Drag) Active() bool {
	return d.active
}
