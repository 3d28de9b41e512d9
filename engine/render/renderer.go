package render

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/1siamBot/skirmish/engine/config"
	"github.com/1siamBot/skirmish/engine/core"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	colorBackground = color.RGBA{12, 14, 24, 255}
	colorBounds     = color.RGBA{60, 70, 100, 255}
	colorSelected   = color.RGBA{0, 255, 120, 200}
	colorHighlight  = color.RGBA{255, 200, 0, 220}
	colorPath       = color.RGBA{120, 200, 255, 140}
	colorOrbit      = color.RGBA{180, 120, 255, 140}
	colorLock       = color.RGBA{255, 80, 80, 230}
	colorBullet     = color.RGBA{255, 240, 160, 255}
	colorHealthBg   = color.RGBA{60, 0, 0, 200}
	colorHealth     = color.RGBA{0, 220, 80, 255}
)

// WaypointDotRadius is the on-screen radius of a waypoint marker
const WaypointDotRadius = 5

// Overlay is the in-progress input state drawn over the world
type Overlay struct {
	Aiming        bool
	Start, Cursor core.Vec2
	Locked        bool
	LockPoint     core.Vec2
	Boxing        bool
	BoxA, BoxB    core.Vec2
}

// Renderer draws snapshots with vector primitives
type Renderer struct {
	Camera *Camera
	Config *config.Config
	HUD    *HUD

	colors map[config.ShipClass]color.RGBA
}

// NewRenderer creates a renderer for a screen of the given size
func NewRenderer(screenW, screenH int, cfg *config.Config) *Renderer {
	cam := NewCamera(screenW, screenH)
	cam.SetWorldBounds(cfg.World.Width, cfg.World.Height)
	cam.CenterOn(core.Vec2{X: cfg.World.Width / 2, Y: cfg.World.Height / 2})

	r := &Renderer{
		Camera: cam,
		Config: cfg,
		HUD:    NewHUD(screenW, screenH),
		colors: make(map[config.ShipClass]color.RGBA),
	}
	for class, t := range cfg.Types {
		r.colors[class] = ParseHex(t.Color)
	}
	return r
}

// ParseHex parses "#rrggbb" or "rrggbb", falling back to white
func ParseHex(s string) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{255, 255, 255, 255}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{255, 255, 255, 255}
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}
}

// Draw renders one frame of the world
func (r *Renderer) Draw(screen *ebiten.Image, snap core.Snapshot, ov Overlay) {
	screen.Fill(colorBackground)
	r.drawBounds(screen)

	for i := range snap.Ships {
		r.drawOrders(screen, &snap.Ships[i])
	}
	for i := range snap.Ships {
		r.drawShip(screen, &snap.Ships[i])
	}

	radius := r.Camera.Scale(r.Config.Bullet.Size / 2)
	for _, p := range snap.Projectiles {
		x, y := r.Camera.WorldToScreen(p.Pos)
		vector.DrawFilledCircle(screen, x, y, radius, colorBullet, true)
	}

	for _, e := range snap.Effects {
		x, y := r.Camera.WorldToScreen(e.Pos)
		a := uint8(220 * e.Fraction)
		grow := r.Camera.Scale(4 + 14*(1-e.Fraction))
		vector.StrokeCircle(screen, x, y, grow, 2, color.RGBA{255, 140, 40, a}, true)
	}

	r.drawOverlay(screen, ov)
}

func (r *Renderer) drawBounds(screen *ebiten.Image) {
	x0, y0 := r.Camera.WorldToScreen(core.Vec2{})
	x1, y1 := r.Camera.WorldToScreen(core.Vec2{X: r.Config.World.Width, Y: r.Config.World.Height})
	vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 1, colorBounds, false)
}

// drawOrders draws the queue, orbit or follow point of one ship
func (r *Renderer) drawOrders(screen *ebiten.Image, s *core.ShipView) {
	if !s.Selected && !s.Highlighted {
		return
	}
	from := s.Pos
	if s.PathStart != nil && len(s.Waypoints) > 0 {
		// faint trail from where the queue began
		a, b := r.Camera.WorldToScreen(*s.PathStart)
		c, d := r.Camera.WorldToScreen(s.Pos)
		vector.StrokeLine(screen, a, b, c, d, 1, color.RGBA{120, 200, 255, 50}, true)
	}
	for _, wp := range s.Waypoints {
		ax, ay := r.Camera.WorldToScreen(from)
		bx, by := r.Camera.WorldToScreen(wp.Pos)
		vector.StrokeLine(screen, ax, ay, bx, by, 1, colorPath, true)
		vector.DrawFilledCircle(screen, bx, by, WaypointDotRadius, colorPath, true)
		if wp.HasFacing {
			tip := wp.Pos.Add(core.FromAngle(wp.Facing).Scale(14 / r.Camera.Zoom))
			tx, ty := r.Camera.WorldToScreen(tip)
			vector.StrokeLine(screen, bx, by, tx, ty, 2, colorPath, true)
		}
		from = wp.Pos
	}
	if s.Orbit != nil {
		cx, cy := r.Camera.WorldToScreen(s.Orbit.Center)
		vector.StrokeCircle(screen, cx, cy, r.Camera.Scale(s.Orbit.Radius), 1, colorOrbit, true)
		vector.DrawFilledCircle(screen, cx, cy, 3, colorOrbit, true)
	}
	if s.FollowPoint != nil {
		ax, ay := r.Camera.WorldToScreen(s.Pos)
		bx, by := r.Camera.WorldToScreen(*s.FollowPoint)
		vector.StrokeLine(screen, ax, ay, bx, by, 1, colorLock, true)
	}
}

func (r *Renderer) drawShip(screen *ebiten.Image, s *core.ShipView) {
	x, y := r.Camera.WorldToScreen(s.Pos)
	half := r.Camera.Scale(s.Size / 2)
	clr := r.colors[s.Class]

	if s.Selected {
		vector.StrokeCircle(screen, x, y, half+4, 2, colorSelected, true)
	}
	if s.Highlighted {
		vector.StrokeCircle(screen, x, y, half+6, 2, colorHighlight, true)
	}

	// hull: a triangle pointing along the rotation
	nose := r.point(s.Pos, s.Rotation, s.Size/2)
	left := r.point(s.Pos, s.Rotation+2.5, s.Size/2)
	right := r.point(s.Pos, s.Rotation-2.5, s.Size/2)
	vector.DrawFilledCircle(screen, x, y, half*0.45, clr, true)
	vector.StrokeLine(screen, nose[0], nose[1], left[0], left[1], 2, clr, true)
	vector.StrokeLine(screen, left[0], left[1], right[0], right[1], 2, clr, true)
	vector.StrokeLine(screen, right[0], right[1], nose[0], nose[1], 2, clr, true)

	if s.HealthRatio < 1 {
		w := half * 2
		bx, by := x-half, y-half-8
		vector.DrawFilledRect(screen, bx, by, w, 3, colorHealthBg, false)
		vector.DrawFilledRect(screen, bx, by, w*float32(s.HealthRatio), 3, colorHealth, false)
	}
}

func (r *Renderer) point(c core.Vec2, angle, dist float64) [2]float32 {
	x, y := r.Camera.WorldToScreen(c.Add(core.FromAngle(angle).Scale(dist)))
	return [2]float32{x, y}
}

func (r *Renderer) drawOverlay(screen *ebiten.Image, ov Overlay) {
	if ov.Boxing {
		x0, y0 := r.Camera.WorldToScreen(ov.BoxA)
		x1, y1 := r.Camera.WorldToScreen(ov.BoxB)
		x, y := float32(math.Min(float64(x0), float64(x1))), float32(math.Min(float64(y0), float64(y1)))
		w, h := float32(math.Abs(float64(x1-x0))), float32(math.Abs(float64(y1-y0)))
		vector.DrawFilledRect(screen, x, y, w, h, color.RGBA{0, 255, 120, 30}, false)
		vector.StrokeRect(screen, x, y, w, h, 1, colorSelected, false)
	}
	if !ov.Aiming {
		return
	}
	sx, sy := r.Camera.WorldToScreen(ov.Start)
	cx, cy := r.Camera.WorldToScreen(ov.Cursor)
	vector.StrokeLine(screen, sx, sy, cx, cy, 1, colorPath, true)
	vector.StrokeCircle(screen, sx, sy, WaypointDotRadius+2, 1, colorPath, true)
	if ov.Locked {
		lx, ly := r.Camera.WorldToScreen(ov.LockPoint)
		vector.StrokeCircle(screen, lx, ly, WaypointDotRadius+3, 2, colorLock, true)
	}
}
