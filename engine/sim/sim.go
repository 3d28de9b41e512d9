// Package sim assembles a playable simulation: the world, its systems in
// tick order, the command controller, logging and metrics.
package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/1siamBot/skirmish/engine/ai"
	"github.com/1siamBot/skirmish/engine/command"
	"github.com/1siamBot/skirmish/engine/config"
	"github.com/1siamBot/skirmish/engine/core"
	"github.com/1siamBot/skirmish/engine/logging"
	"github.com/1siamBot/skirmish/engine/metrics"
	"github.com/1siamBot/skirmish/engine/systems"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"
)

// Fleet sizes spawned by NewScenario
const (
	LightShips = 3
	HeavyShips = 2
	Hostiles   = 6
)

// Simulation is the explicit context handed to the frontends
type Simulation struct {
	World    *core.World
	Loop     *core.GameLoop
	Commands *command.Controller
	Metrics  *metrics.Recorder
	Log      zerolog.Logger
}

// New wires an empty simulation. seed drives hostile wandering; meter
// receives the event counters.
func New(cfg *config.Config, seed int64, log zerolog.Logger, meter metric.Meter) (*Simulation, error) {
	w := core.NewWorld(cfg, logging.Component(log, "world"))

	rec, err := metrics.NewRecorder(meter, w.Bus)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	s := &Simulation{
		World:    w,
		Loop:     core.NewGameLoop(w),
		Commands: command.NewController(w, logging.Component(log, "command")),
		Metrics:  rec,
		Log:      log,
	}

	w.AddSystem(s.Commands)
	w.AddSystem(&systems.MovementSystem{})
	w.AddSystem(ai.NewAISystem(seed, logging.Component(log, "ai")))
	w.AddSystem(&systems.CombatSystem{})
	w.AddSystem(&systems.EffectSystem{})
	w.AddSystem(&systems.ProjectileSystem{})
	return s, nil
}

// NewScenario builds the default skirmish: the player fleet on the left,
// hostiles scattered over the right half, placed from seed.
func NewScenario(cfg *config.Config, seed int64, log zerolog.Logger, meter metric.Meter) (*Simulation, error) {
	s, err := New(cfg, seed, log, meter)
	if err != nil {
		return nil, err
	}
	w := s.World
	width, height := w.Config.World.Width, w.Config.World.Height
	mid := height / 2

	for i := 0; i < LightShips; i++ {
		w.SpawnShip(config.PlayerLight, core.Vec2{X: width * 0.15, Y: mid + float64(i-1)*80}, 0)
	}
	for i := 0; i < HeavyShips; i++ {
		w.SpawnShip(config.PlayerHeavy, core.Vec2{X: width * 0.08, Y: mid + (float64(i)-0.5)*120}, 0)
	}

	rng := rand.New(rand.NewSource(seed))
	margin := 100.0
	for i := 0; i < Hostiles; i++ {
		p := core.Vec2{
			X: width*0.55 + rng.Float64()*(width*0.45-margin),
			Y: margin + rng.Float64()*(height-2*margin),
		}
		w.SpawnShip(config.Hostile, w.ClampToBounds(p), math.Pi)
	}

	log.Info().Int64("seed", seed).Int("ships", w.ShipCount()).Msg("scenario ready")
	return s, nil
}

// Step advances the simulation by a fixed dt in seconds, ignoring the
// wall clock.
func (s *Simulation) Step(dt float64) {
	s.World.Tick(dt)
}

// Frame ticks from the wall clock; it does nothing while paused
func (s *Simulation) Frame() float64 {
	return s.Loop.Update()
}

// Snapshot returns the drawable state of the world
func (s *Simulation) Snapshot() core.Snapshot {
	return s.World.Snapshot()
}

// Outcome reports whether one side has been wiped out
func (s *Simulation) Outcome() (winner core.Faction, over bool) {
	var players, hostiles int
	for _, ship := range s.World.Ships() {
		if ship.Hostile() {
			hostiles++
		} else {
			players++
		}
	}
	switch {
	case hostiles == 0 && players > 0:
		return core.FactionPlayer, true
	case players == 0 && hostiles > 0:
		return core.FactionHostile, true
	}
	return 0, false
}
