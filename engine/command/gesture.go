package command

import (
	"context"

	"github.com/1siamBot/skirmish/engine/core"
	"github.com/looplab/fsm"
)

// Gesture phases
const (
	PhaseIdle   = "idle"
	PhaseAiming = "aiming"
	PhaseLocked = "locked"
)

const (
	evStart   = "start"
	evLock    = "lock"
	evRelease = "release"
	evFinish  = "finish"
)

// DragThreshold is how far (px) the pointer must travel from the gesture
// start before the gesture counts as a drag
const DragThreshold = 10.0

// lock binds the gesture's waypoint to a moving hostile at a fixed radius
type lock struct {
	Target   core.EntityID
	Distance float64
	Point    core.Vec2
}

func (c *Controller) newGestureFSM() *fsm.FSM {
	return fsm.NewFSM(
		PhaseIdle,
		fsm.Events{
			{Name: evStart, Src: []string{PhaseIdle}, Dst: PhaseAiming},
			{Name: evLock, Src: []string{PhaseAiming}, Dst: PhaseLocked},
			{Name: evRelease, Src: []string{PhaseLocked}, Dst: PhaseAiming},
			{Name: evFinish, Src: []string{PhaseAiming, PhaseLocked}, Dst: PhaseIdle},
		},
		fsm.Callbacks{
			"enter_" + PhaseLocked: func(_ context.Context, e *fsm.Event) {
				c.Log.Debug().Uint64("hostile", uint64(c.lock.Target)).Float64("distance", c.lock.Distance).Msg("lock acquired")
			},
			"leave_" + PhaseLocked: func(_ context.Context, e *fsm.Event) {
				c.Log.Debug().Str("event", e.Event).Msg("lock released")
			},
		},
	)
}

// fire runs a phase transition, ignoring events that do not apply
func (c *Controller) fire(event string) {
	if !c.phase.Can(event) {
		return
	}
	if err := c.phase.Event(context.Background(), event); err != nil {
		c.Log.Debug().Err(err).Str("event", event).Msg("gesture transition")
	}
}

// Phase returns the current gesture phase
func (c *Controller) Phase() string { return c.phase.Current() }

// Locked reports the hostile the gesture is locked to, if any
func (c *Controller) Locked() (core.EntityID, bool) {
	if c.phase.Is(PhaseLocked) {
		return c.lock.Target, true
	}
	return 0, false
}

// LockPoint is the waypoint a locked gesture would issue
func (c *Controller) LockPoint() (core.Vec2, bool) {
	if c.phase.Is(PhaseLocked) {
		return c.lock.Point, true
	}
	return core.Vec2{}, false
}

// Targeting returns the aim-assist hostile, tracked apart from the lock
func (c *Controller) Targeting() core.EntityID { return c.targeting }

// Aim returns the gesture's start and live cursor while one is in progress
func (c *Controller) Aim() (start, cursor core.Vec2, ok bool) {
	if c.phase.Is(PhaseIdle) {
		return core.Vec2{}, core.Vec2{}, false
	}
	return c.start, c.cursor, true
}

// StartGesture begins aiming at p. A gesture already in progress is
// discarded first.
func (c *Controller) StartGesture(p core.Vec2) {
	if !c.phase.Is(PhaseIdle) {
		c.CancelGesture()
	}
	c.start, c.cursor = p, p
	c.fire(evStart)
}

// UpdateGesture moves the live cursor: it releases a lock or highlight the
// cursor has left, keeps the lock point attached to its hostile and
// acquires a new lock or highlight near the cursor.
func (c *Controller) UpdateGesture(p core.Vec2) {
	if c.phase.Is(PhaseIdle) {
		return
	}
	c.cursor = p
	c.refresh()

	cfg := c.World.Config
	nearest, d := c.World.Nearest(p, cfg.TargetingSnapRange, isHostile)
	if nearest == nil {
		return
	}
	dragged := c.start.DistanceTo(p) > DragThreshold
	switch {
	case dragged && !c.phase.Is(PhaseLocked):
		c.lock = lock{Target: nearest.ID, Distance: d, Point: p}
		c.fire(evLock)
	case !dragged && c.targeting == 0:
		c.targeting = nearest.ID
		c.World.Highlight = nearest.ID
	}
}

// EndGesture applies the gesture to every selected ship. The waypoint is
// the lock point when locked, else the gesture start; a drag sets the
// facing from start to p. With appendQueue the waypoint is queued behind
// existing ones, otherwise it replaces the queue.
func (c *Controller) EndGesture(p core.Vec2, appendQueue bool) {
	if c.phase.Is(PhaseIdle) {
		return
	}
	c.cursor = p
	c.refresh()

	target := c.start
	if pt, ok := c.LockPoint(); ok {
		target = pt
	}
	dragged := c.start.DistanceTo(p) > DragThreshold
	facing := c.start.AngleTo(p)

	ships := c.World.Selected()
	ids := make([]core.EntityID, 0, len(ships))
	for _, s := range ships {
		wp := core.Waypoint{Pos: target, Facing: s.TargetRotation, HasFacing: true}
		if dragged {
			wp.Facing = facing
		}
		if appendQueue {
			s.AppendWaypoint(wp)
		} else {
			s.ReplaceWaypoints(wp)
		}
		ids = append(ids, s.ID)
	}
	c.reset()

	if len(ids) == 0 {
		c.Log.Debug().Msg("gesture ended with empty selection")
		return
	}
	kind := KindMove
	if appendQueue {
		kind = KindQueue
	}
	c.record(Record{Kind: kind, Ships: ids, Point: target})
}

// CancelGesture drops an in-progress gesture without touching any ship
func (c *Controller) CancelGesture() {
	c.reset()
}

// refresh releases a lock or highlight whose hostile is gone or beyond
// release range of the cursor, and re-attaches the lock point.
func (c *Controller) refresh() {
	release := c.World.Config.TargetingReleaseRange

	if c.phase.Is(PhaseLocked) {
		enemy := c.World.Ship(c.lock.Target)
		if enemy == nil || c.cursor.DistanceTo(enemy.Pos) > release {
			c.releaseLock()
		} else {
			dir := c.cursor.Sub(enemy.Pos).Normalize()
			c.lock.Point = enemy.Pos.Add(dir.Scale(c.lock.Distance))
		}
	}

	if c.targeting != 0 {
		enemy := c.World.Ship(c.targeting)
		if enemy == nil || c.cursor.DistanceTo(enemy.Pos) > release {
			c.clearTargeting()
		}
	}
}

func (c *Controller) releaseLock() {
	c.fire(evRelease)
	c.lock = lock{}
}

func (c *Controller) clearTargeting() {
	if c.World.Highlight == c.targeting {
		c.World.Highlight = 0
	}
	c.targeting = 0
}

func (c *Controller) reset() {
	c.fire(evFinish)
	c.lock = lock{}
	c.clearTargeting()
}

func isHostile(s *core.Ship) bool { return s.Hostile() }
