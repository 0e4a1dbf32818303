// Package camera maps the centered simulation world onto the window.
package camera

import "github.com/pthm-cable/flock/vmath"

// Camera controls the viewport into the simulation world.
// World Y points up; screen Y points down.
type Camera struct {
	// Center is the camera center in world coordinates
	Center vmath.Vec2

	// Zoom level (screen pixels per world unit)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// World is the area that must stay visible
	World vmath.Rect
}

// New creates a camera that fits world into the viewport.
func New(viewportW, viewportH float32, world vmath.Rect) *Camera {
	c := &Camera{World: world}
	c.Resize(viewportW, viewportH)
	return c
}

// Resize updates viewport dimensions and refits the world.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.Fit()
}

// Fit centers the world and picks the largest zoom that shows all of it.
func (c *Camera) Fit() {
	c.Center = c.World.Min.Add(c.World.Max).Scale(0.5)
	zx := c.ViewportW / c.World.Width()
	zy := c.ViewportH / c.World.Height()
	c.Zoom = min(zx, zy)
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(p vmath.Vec2) (sx, sy float32) {
	d := p.Sub(c.Center)
	sx = c.ViewportW/2 + d.X*c.Zoom
	sy = c.ViewportH/2 - d.Y*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) vmath.Vec2 {
	dx := (sx - c.ViewportW/2) / c.Zoom
	dy := (c.ViewportH/2 - sy) / c.Zoom
	return c.Center.Add(vmath.V(dx, dy))
}

// Scale converts a world length to pixels.
func (c *Camera) Scale(length float32) float32 {
	return length * c.Zoom
}

// IsVisible returns true if a circle at p with the given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(p vmath.Vec2, radius float32) bool {
	d := p.Sub(c.Center)
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(d.X) <= halfW && absf(d.Y) <= halfH
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
