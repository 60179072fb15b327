// Package camera provides a 2D camera for viewing the board.
package camera

// Camera controls the viewport onto the board.
// Board coordinates are cells; at zoom 1 a cell is one screen pixel.
type Camera struct {
	// Position is the camera center in board coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Board dimensions; the center never leaves the board
	BoardW, BoardH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the board with 1:1 zoom.
func New(viewportW, viewportH, boardW, boardH float32) *Camera {
	c := &Camera{
		X:         boardW / 2,
		Y:         boardH / 2,
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		BoardW:    boardW,
		BoardH:    boardH,
		MaxZoom:   64,
	}
	c.updateMinZoom()
	return c
}

// updateMinZoom lets the whole board shrink to half the viewport, but never
// below 1/8 so a huge board stays drawable.
func (c *Camera) updateMinZoom() {
	fit := min(c.ViewportW/c.BoardW, c.ViewportH/c.BoardH)
	c.MinZoom = max(fit/2, 0.125)
	if c.MinZoom > 1 {
		c.MinZoom = 1
	}
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
}

// WorldToScreen converts board coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to board coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// IsVisible returns true if a square cell of the given size at (wx, wy)
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, size float32) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return wx+size >= minX && wx <= maxX && wy+size >= minY && wy <= maxY
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.updateMinZoom()
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
	c.clampCenter()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomAt multiplies the zoom by factor, keeping the board point under
// screen position (sx, sy) fixed.
func (c *Camera) ZoomAt(factor, sx, sy float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.SetZoom(c.Zoom * factor)
	c.X = wx - (sx-c.ViewportW/2)/c.Zoom
	c.Y = wy - (sy-c.ViewportH/2)/c.Zoom
	c.clampCenter()
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = c.BoardW / 2
	c.Y = c.BoardH / 2
	c.SetZoom(1)
}

// VisibleWorldBounds returns the board-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

func (c *Camera) clampCenter() {
	c.X = clamp(c.X, 0, c.BoardW)
	c.Y = clamp(c.Y, 0, c.BoardH)
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
