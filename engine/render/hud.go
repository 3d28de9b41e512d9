package render

import (
	"fmt"
	"image/color"

	"github.com/1siamBot/skirmish/engine/core"
	"github.com/1siamBot/skirmish/engine/metrics"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

const (
	topBarHeight = 24
	lineHeight   = 15
)

// HUDInfo is everything the HUD shows for one frame
type HUDInfo struct {
	Tick        uint64
	Now         float64 // sim ms
	Paused      bool
	Totals      metrics.Totals
	Selected    []core.ShipView
	LastCommand string
	LightSpeed  float64
	Outcome     string
}

// HUD draws the status bar and the selection panel
type HUD struct {
	ScreenW, ScreenH int
	face             text.Face
}

func NewHUD(sw, sh int) *HUD {
	return &HUD{ScreenW: sw, ScreenH: sh, face: text.NewGoXFace(basicfont.Face7x13)}
}

// Draw renders the HUD
func (h *HUD) Draw(screen *ebiten.Image, info HUDInfo) {
	vector.DrawFilledRect(screen, 0, 0, float32(h.ScreenW), topBarHeight, color.RGBA{0, 0, 0, 180}, false)
	h.print(screen, StatusLine(info), 10, 6, color.White)

	y := topBarHeight + 8
	for _, line := range SelectionLines(info.Selected) {
		h.print(screen, line, 10, y, color.RGBA{180, 230, 255, 255})
		y += lineHeight
	}

	if info.Outcome != "" {
		h.print(screen, info.Outcome, h.ScreenW/2-60, h.ScreenH/2, color.RGBA{255, 220, 80, 255})
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS %.0f", ebiten.ActualFPS()), h.ScreenW-70, h.ScreenH-20)
}

func (h *HUD) print(screen *ebiten.Image, s string, x, y int, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, h.face, op)
}

// StatusLine is the top bar text
func StatusLine(info HUDInfo) string {
	state := "RUN"
	if info.Paused {
		state = "PAUSED"
	}
	s := fmt.Sprintf("%s  t=%.1fs  tick %d  shots %d  hits %d  kills %d  light speed %.0f",
		state, info.Now/1000, info.Tick, info.Totals.ShotsFired, info.Totals.ProjectileHits,
		info.Totals.ShipsDestroyed, info.LightSpeed)
	if info.LastCommand != "" {
		s += "  | " + info.LastCommand
	}
	return s
}

// SelectionLines describes each selected ship, one per line
func SelectionLines(ships []core.ShipView) []string {
	lines := make([]string, 0, len(ships))
	for _, s := range ships {
		line := fmt.Sprintf("#%d %-12s %3.0f%% %s", s.ID, s.Class, s.HealthRatio*100, s.Mode)
		if n := len(s.Waypoints); n > 0 {
			line += fmt.Sprintf(" (%d)", n)
		}
		lines = append(lines, line)
	}
	return lines
}
