package main

import (
	"flag"
	"log"
	"os"

	"github.com/1siamBot/skirmish/engine/config"
	"github.com/1siamBot/skirmish/engine/core"
	"github.com/1siamBot/skirmish/engine/input"
	"github.com/1siamBot/skirmish/engine/logging"
	"github.com/1siamBot/skirmish/engine/metrics"
	"github.com/1siamBot/skirmish/engine/render"
	"github.com/1siamBot/skirmish/engine/sim"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720

	speedStep = 5.0
)

// Game implements ebiten.Game
type Game struct {
	sim      *sim.Simulation
	renderer *render.Renderer
	input    *input.InputState
	mapper   *input.Mapper
}

func NewGame(s *sim.Simulation, edgeScroll bool) *Game {
	r := render.NewRenderer(ScreenWidth, ScreenHeight, s.World.Config)
	r.Camera.EdgeScroll = edgeScroll
	return &Game{
		sim:      s,
		renderer: r,
		input:    input.NewInputState(),
		mapper: &input.Mapper{
			ToWorld:   r.Camera.ScreenToWorld,
			DotRadius: render.WaypointDotRadius + 2,
		},
	}
}

func (g *Game) Update() error {
	g.input.Update()
	g.handleCamera()
	g.handleKeys()

	g.mapper.Apply(g.input, g.sim.Snapshot(), g.sim.Commands)
	g.sim.Frame()
	return nil
}

func (g *Game) handleKeys() {
	cfg := g.sim.World.Config
	switch {
	case g.input.IsKeyJustPressed(ebiten.KeySpace):
		g.sim.Loop.Toggle()
	case g.input.IsKeyJustPressed(ebiten.KeyEscape):
		g.sim.Commands.CancelGesture()
	case g.input.IsKeyJustPressed(ebiten.KeyEqual):
		g.sim.Commands.SetSpeed(config.PlayerLight, cfg.Type(config.PlayerLight).Speed+speedStep)
	case g.input.IsKeyJustPressed(ebiten.KeyMinus):
		g.sim.Commands.SetSpeed(config.PlayerLight, cfg.Type(config.PlayerLight).Speed-speedStep)
	}
}

func (g *Game) handleCamera() {
	cam := g.renderer.Camera
	speed := cam.Speed / 60.0 // per frame at 60fps
	cam.EdgePan(g.input.MouseX, g.input.MouseY, 1.0/60)

	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		cam.Pan(0, -speed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		cam.Pan(0, speed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		cam.Pan(-speed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		cam.Pan(speed, 0)
	}
	if g.input.ScrollY != 0 {
		cam.ZoomAt(g.input.ScrollY*0.1, g.input.MouseX, g.input.MouseY)
	}
	// Middle mouse drag to pan
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		cam.Pan(float64(-g.input.MouseDX), float64(-g.input.MouseDY))
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.sim.Snapshot()
	g.renderer.Draw(screen, snap, g.overlay())
	g.renderer.HUD.Draw(screen, g.hudInfo(snap))
}

func (g *Game) overlay() render.Overlay {
	var ov render.Overlay
	if start, cursor, ok := g.sim.Commands.Aim(); ok {
		ov.Aiming, ov.Start, ov.Cursor = true, start, cursor
		ov.LockPoint, ov.Locked = g.sim.Commands.LockPoint()
	}
	if g.input.Dragging {
		ov.Boxing = true
		ov.BoxA = g.renderer.Camera.ScreenToWorld(g.input.DragStartX, g.input.DragStartY)
		ov.BoxB = g.renderer.Camera.ScreenToWorld(g.input.MouseX, g.input.MouseY)
	}
	return ov
}

func (g *Game) hudInfo(snap core.Snapshot) render.HUDInfo {
	info := render.HUDInfo{
		Tick:       snap.Tick,
		Now:        snap.Now,
		Paused:     g.sim.Loop.State == core.StatePaused,
		Totals:     g.sim.Metrics.Totals(),
		LightSpeed: g.sim.World.Config.Type(config.PlayerLight).Speed,
	}
	for _, s := range snap.Ships {
		if s.Selected {
			info.Selected = append(info.Selected, s)
		}
	}
	if h := g.sim.Commands.History(); len(h) > 0 {
		info.LastCommand = h[len(h)-1].String()
	}
	if winner, over := g.sim.Outcome(); over {
		info.Outcome = winner.String() + " fleet wins"
	}
	return info
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

func main() {
	configPath := flag.String("config", "", "path to a config file (json, yaml or toml)")
	seed := flag.Int64("seed", 1, "scenario seed")
	level := flag.String("log-level", "info", "log level")
	edgeScroll := flag.Bool("edge-scroll", false, "pan when the cursor touches a screen edge")
	flag.Parse()

	logger := logging.Console(os.Stderr, *level)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	logger.Info().Str("path", *configPath).Msg("config loaded")

	s, err := sim.NewScenario(cfg, *seed, logger, metrics.Meter())
	if err != nil {
		logger.Fatal().Err(err).Msg("build scenario")
	}
	s.Loop.Play()

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("Skirmish")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	if err := ebiten.RunGame(NewGame(s, *edgeScroll)); err != nil {
		log.Fatal(err)
	}
}
