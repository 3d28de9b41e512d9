// Package command turns player intents into ship orders: selection,
// waypoint gestures with target locking, follow and orbit.
//
// Commands are applied synchronously between ticks. Ids that no longer
// resolve make a command a silent no-op.
package command

import (
	"math"

	"github.com/1siamBot/skirmish/engine/config"
	"github.com/1siamBot/skirmish/engine/core"
	"github.com/1siamBot/skirmish/engine/systems"
	"github.com/looplab/fsm"
	"github.com/rs/zerolog"
)

// Controller owns the in-progress gesture and applies commands to a World
type Controller struct {
	World *core.World
	Log   zerolog.Logger

	phase     *fsm.FSM
	start     core.Vec2
	cursor    core.Vec2
	lock      lock
	targeting core.EntityID

	history []Record
}

// NewController creates a controller bound to w. It listens for ship
// destruction so a lock on a destroyed hostile is released.
func NewController(w *core.World, log zerolog.Logger) *Controller {
	c := &Controller{World: w, Log: log}
	c.phase = c.newGestureFSM()
	w.Bus.On(core.EvtShipDestroyed, c.onShipDestroyed)
	return c
}

// Priority places the lock refresh ahead of steering
func (c *Controller) Priority() int { return 5 }

// Update keeps the lock point attached to its hostile between pointer
// events and drops stale locks.
func (c *Controller) Update(_ *core.World, _ float64) {
	if !c.phase.Is(PhaseIdle) {
		c.refresh()
	}
}

func (c *Controller) onShipDestroyed(e core.Event) {
	d, ok := e.Payload.(core.ShipDestroyed)
	if !ok {
		return
	}
	if c.phase.Is(PhaseLocked) && c.lock.Target == d.ID {
		c.releaseLock()
	}
	if c.targeting == d.ID {
		c.clearTargeting()
	}
}

// SelectShip makes id the only selected ship. Hostile or unknown ids are
// ignored.
func (c *Controller) SelectShip(id core.EntityID) {
	s := c.World.Ship(id)
	if s == nil || s.Hostile() {
		c.Log.Debug().Uint64("ship", uint64(id)).Msg("select ignored")
		return
	}
	c.World.Select(id)
	c.record(Record{Kind: KindSelect, Ships: []core.EntityID{id}, Point: s.Pos})
}

// BoxSelect selects every friendly ship inside r, replacing the selection
func (c *Controller) BoxSelect(r core.Rect) {
	var ids []core.EntityID
	for _, s := range c.World.Ships() {
		if !s.Hostile() && r.Contains(s.Pos) {
			ids = append(ids, s.ID)
		}
	}
	c.World.Select(ids...)
	c.record(Record{Kind: KindSelect, Ships: ids, Point: r.B})
}

// ClickShip selects a friendly ship. Clicking a hostile while friendlies
// are selected orders them to follow it instead.
func (c *Controller) ClickShip(id core.EntityID) {
	target := c.World.Ship(id)
	if target == nil {
		c.Log.Debug().Uint64("ship", uint64(id)).Msg("click on missing ship")
		return
	}
	if !target.Hostile() {
		c.SelectShip(id)
		return
	}

	ships := c.World.Selected()
	if len(ships) == 0 {
		return
	}
	trail := systems.TrailPoint(target)
	ids := make([]core.EntityID, 0, len(ships))
	for _, s := range ships {
		s.Mode = &core.Follow{Target: id, Interim: trail}
		ids = append(ids, s.ID)
	}
	c.record(Record{Kind: KindFollow, Ships: ids, Point: trail, Target: id})
}

// ClickWaypointDot puts a ship into orbit around one of its queued
// waypoints when the modifier is held. The orbit radius is the ship's
// current distance to that waypoint.
func (c *Controller) ClickWaypointDot(shipID core.EntityID, index int, modifierHeld bool) {
	s := c.World.Ship(shipID)
	if s == nil || s.Hostile() || !modifierHeld {
		return
	}
	queue := s.Queue()
	if index < 0 || index >= len(queue) {
		c.Log.Debug().Uint64("ship", uint64(shipID)).Int("index", index).Msg("no such waypoint")
		return
	}
	center := queue[index].Pos
	s.Mode = &core.Orbit{
		Center: center,
		Radius: s.Pos.DistanceTo(center),
		Angle:  math.Atan2(s.Pos.Y-center.Y, s.Pos.X-center.X),
	}
	c.record(Record{Kind: KindOrbit, Ships: []core.EntityID{shipID}, Point: center})
}

// SetSpeed is the live tuning hook for a ship class's top speed
func (c *Controller) SetSpeed(class config.ShipClass, speed float64) {
	if speed <= 0 {
		c.Log.Warn().Str("class", string(class)).Float64("speed", speed).Msg("speed rejected, keeping current")
		return
	}
	c.World.Config.SetSpeed(class, speed)
	c.Log.Info().Str("class", string(class)).Float64("speed", c.World.Config.Type(class).Speed).Msg("speed tuned")
}
