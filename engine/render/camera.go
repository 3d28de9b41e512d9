package render

import (
	"math"

	"github.com/1siamBot/skirmish/engine/core"
)

// Camera is a flat viewport onto the world
type Camera struct {
	X, Y       float64 // world point at the screen center
	Zoom       float64 // 1.0 = one world px per screen px
	MinZoom    float64
	MaxZoom    float64
	ScreenW    int
	ScreenH    int
	Speed      float64 // pan speed (screen px per second)
	EdgeScroll bool
	EdgeSize   int // edge scroll trigger zone in pixels

	// world bounds for clamping; zero disables clamping
	WorldW, WorldH float64
}

// NewCamera creates a camera with default settings
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		Zoom:       1.0,
		MinZoom:    0.4,
		MaxZoom:    3.0,
		ScreenW:    screenW,
		ScreenH:    screenH,
		Speed:      500,
		EdgeScroll: false,
		EdgeSize:   20,
	}
}

// SetWorldBounds sets the world size for camera clamping
func (c *Camera) SetWorldBounds(w, h float64) {
	c.WorldW = w
	c.WorldH = h
	c.clamp()
}

// Pan moves the camera by a screen pixel delta
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
	c.clamp()
}

// EdgePan scrolls the camera when the cursor sits within EdgeSize of a
// screen edge. dt is seconds.
func (c *Camera) EdgePan(mx, my int, dt float64) {
	if !c.EdgeScroll {
		return
	}
	step := c.Speed * dt
	var dx, dy float64
	switch {
	case mx < c.EdgeSize:
		dx = -step
	case mx >= c.ScreenW-c.EdgeSize:
		dx = step
	}
	switch {
	case my < c.EdgeSize:
		dy = -step
	case my >= c.ScreenH-c.EdgeSize:
		dy = step
	}
	if dx != 0 || dy != 0 {
		c.Pan(dx, dy)
	}
}

// SetZoom sets zoom level with clamping
func (c *Camera) SetZoom(z float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, z))
}

// ZoomAt zooms while keeping the world point under (screenX, screenY) fixed
func (c *Camera) ZoomAt(delta float64, screenX, screenY int) {
	before := c.ScreenToWorld(screenX, screenY)
	c.SetZoom(c.Zoom + delta)
	after := c.ScreenToWorld(screenX, screenY)
	c.X += before.X - after.X
	c.Y += before.Y - after.Y
	c.clamp()
}

// CenterOn centers the camera on a world position
func (c *Camera) CenterOn(p core.Vec2) {
	c.X, c.Y = p.X, p.Y
	c.clamp()
}

// WorldToScreen converts a world position to screen pixels
func (c *Camera) WorldToScreen(p core.Vec2) (float32, float32) {
	sx := (p.X-c.X)*c.Zoom + float64(c.ScreenW)/2
	sy := (p.Y-c.Y)*c.Zoom + float64(c.ScreenH)/2
	return float32(sx), float32(sy)
}

// ScreenToWorld converts a screen pixel to a world position
func (c *Camera) ScreenToWorld(sx, sy int) core.Vec2 {
	return core.Vec2{
		X: (float64(sx)-float64(c.ScreenW)/2)/c.Zoom + c.X,
		Y: (float64(sy)-float64(c.ScreenH)/2)/c.Zoom + c.Y,
	}
}

// Scale converts a world length to screen pixels
func (c *Camera) Scale(l float64) float32 {
	return float32(l * c.Zoom)
}

func (c *Camera) clamp() {
	if c.WorldW > 0 {
		c.X = core.Clamp(c.X, 0, c.WorldW)
	}
	if c.WorldH > 0 {
		c.Y = core.Clamp(c.Y, 0, c.WorldH)
	}
}
