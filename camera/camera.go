// Package camera maps the y-up world plane onto the screen.
package camera

// Camera is an orthographic view centered on a world point. World y points
// up; screen y points down.
type Camera struct {
	// Position is the camera center in world units.
	X, Y float64

	// Zoom multiplies PixelsPerUnit (1.0 = configured scale).
	Zoom float64

	// PixelsPerUnit is the base world-to-screen scale.
	PixelsPerUnit float64

	// Viewport dimensions in pixels.
	ViewportW, ViewportH float64

	MinZoom, MaxZoom float64
}

// New creates a camera on the world origin at zoom 1.
func New(viewportW, viewportH, pixelsPerUnit float64) *Camera {
	return &Camera{
		Zoom:          1.0,
		PixelsPerUnit: pixelsPerUnit,
		ViewportW:     viewportW,
		ViewportH:     viewportH,
		MinZoom:       0.25,
		MaxZoom:       4.0,
	}
}

// Scale returns pixels per world unit at the current zoom.
func (c *Camera) Scale() float64 {
	return c.PixelsPerUnit * c.Zoom
}

// WorldToScreen converts world coordinates to screen pixels.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float32) {
	s := c.Scale()
	sx = float32(c.ViewportW/2 + (wx-c.X)*s)
	sy = float32(c.ViewportH/2 - (wy-c.Y)*s)
	return sx, sy
}

// ScreenToWorld converts screen pixels to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float64) {
	s := c.Scale()
	wx = c.X + (float64(sx)-c.ViewportW/2)/s
	wy = c.Y - (float64(sy)-c.ViewportH/2)/s
	return wx, wy
}

// Length converts a world distance to pixels.
func (c *Camera) Length(units float64) float32 {
	return float32(units * c.Scale())
}

// IsVisible returns true if a circle at (wx, wy) with the given world
// radius could be on screen.
func (c *Camera) IsVisible(wx, wy, radius float64) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return wx+radius >= minX && wx-radius <= maxX &&
		wy+radius >= minY && wy-radius <= maxY
}

// Fit zooms so that a world rectangle of the given size fills the viewport
// along its tighter axis.
func (c *Camera) Fit(worldW, worldH float64) {
	if worldW <= 0 || worldH <= 0 || c.PixelsPerUnit <= 0 {
		return
	}
	zx := c.ViewportW / (worldW * c.PixelsPerUnit)
	zy := c.ViewportH / (worldH * c.PixelsPerUnit)
	c.SetZoom(min(zx, zy))
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by a screen-pixel delta. Screen down is world down.
func (c *Camera) Pan(dx, dy float64) {
	s := c.Scale()
	c.X += dx / s
	c.Y -= dy / s
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the origin at zoom 1.
func (c *Camera) Reset() {
	c.X = 0
	c.Y = 0
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float64) {
	s := c.Scale()
	halfW := c.ViewportW / (2 * s)
	halfH := c.ViewportH / (2 * s)
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
