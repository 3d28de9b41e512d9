package command

import (
	"bytes"
	"math"
	"testing"

	"github.com/1siamBot/skirmish/engine/config"
	"github.com/1siamBot/skirmish/engine/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController() (*core.World, *Controller) {
	cfg := config.Default()
	cfg.TargetingSnapRange = 50
	cfg.TargetingReleaseRange = 100
	w := core.NewWorld(cfg, zerolog.Nop())
	return w, NewController(w, zerolog.Nop())
}

func TestSelectShip(t *testing.T) {
	w, c := newController()
	a := w.SpawnShip(config.PlayerLight, core.Vec2{X: 10, Y: 10}, 0)
	b := w.SpawnShip(config.PlayerHeavy, core.Vec2{X: 20, Y: 10}, 0)
	h := w.SpawnShip(config.Hostile, core.Vec2{X: 30, Y: 10}, 0)

	c.SelectShip(a.ID)
	c.SelectShip(b.ID)
	assert.Equal(t, []*core.Ship{b}, w.Selected())

	c.SelectShip(h.ID)
	c.SelectShip(999)
	assert.Equal(t, []*core.Ship{b}, w.Selected())
}

func TestBoxSelectExcludesHostiles(t *testing.T) {
	w, c := newController()
	a := w.SpawnShip(config.PlayerLight, core.Vec2{X: 10, Y: 10}, 0)
	b := w.SpawnShip(config.PlayerHeavy, core.Vec2{X: 50, Y: 50}, 0)
	w.SpawnShip(config.Hostile, core.Vec2{X: 30, Y: 30}, 0)
	w.SpawnShip(config.PlayerLight, core.Vec2{X: 500, Y: 500}, 0)

	c.BoxSelect(core.Rect{A: core.Vec2{X: 100, Y: 100}, B: core.Vec2{}})
	assert.Equal(t, []*core.Ship{a, b}, w.Selected())

	c.BoxSelect(core.Rect{A: core.Vec2{X: 900, Y: 900}, B: core.Vec2{X: 1000, Y: 1000}})
	assert.Empty(t, w.Selected())
}

func TestClickMoveWithoutDrag(t *testing.T) {
	w, c := newController()
	s := w.SpawnShip(config.PlayerLight, core.Vec2{X: 10, Y: 10}, 0)
	s.TargetRotation = 0.7
	c.SelectShip(s.ID)

	c.StartGesture(core.Vec2{X: 300, Y: 200})
	assert.Equal(t, PhaseAiming, c.Phase())
	c.EndGesture(core.Vec2{X: 305, Y: 203}, false)

	assert.Equal(t, PhaseIdle, c.Phase())
	require.Equal(t, core.ModeWaypoint, s.Kind())
	wp := s.Queue()[0]
	assert.Equal(t, core.Vec2{X: 300, Y: 200}, wp.Pos)
	assert.Equal(t, 0.7, wp.Facing, "no reorientation without a drag")
}

func TestDragSetsFacingFromStart(t *testing.T) {
	w, c := newController()
	s := w.SpawnShip(config.PlayerLight, core.Vec2{X: 10, Y: 10}, 0)
	c.SelectShip(s.ID)

	c.StartGesture(core.Vec2{X: 300, Y: 200})
	c.UpdateGesture(core.Vec2{X: 300, Y: 260})
	c.EndGesture(core.Vec2{X: 300, Y: 260}, false)

	wp := s.Queue()[0]
	assert.Equal(t, core.Vec2{X: 300, Y: 200}, wp.Pos, "end point only sets facing")
	assert.InDelta(t, math.Pi/2, wp.Facing, 1e-9)
}

func TestAppendAndReplace(t *testing.T) {
	w, c := newController()
	s := w.SpawnShip(config.PlayerLight, core.Vec2{X: 10, Y: 10}, 0)
	c.SelectShip(s.ID)

	click := func(p core.Vec2, appendQueue bool) {
		c.StartGesture(p)
		c.EndGesture(p, appendQueue)
	}
	click(core.Vec2{X: 100, Y: 100}, false)
	click(core.Vec2{X: 200, Y: 100}, true)
	click(core.Vec2{X: 300, Y: 100}, true)
	assert.Len(t, s.Queue(), 3)
	assert.Equal(t, core.Vec2{X: 100, Y: 100}, s.Queue()[0].Pos)

	click(core.Vec2{X: 400, Y: 100}, false)
	assert.Equal(t, []core.Vec2{{X: 400, Y: 100}}, positions(s.Queue()))

	var kinds []Kind
	for _, r := range c.History() {
		kinds = append(kinds, r.Kind)
	}
	assert.Equal(t, []Kind{KindSelect, KindMove, KindQueue, KindQueue, KindMove}, kinds)
}

func positions(q []core.Waypoint) []core.Vec2 {
	out := make([]core.Vec2, len(q))
	for i, wp := range q {
		out[i] = wp.Pos
	}
	return out
}

func TestWaypointCommandClearsOrbit(t *testing.T) {
	w, c := newController()
	s := w.SpawnShip(config.PlayerLight, core.Vec2{X: 10, Y: 10}, 0)
	s.Mode = &core.Orbit{Center: core.Vec2{X: 50, Y: 50}, Radius: 20}
	c.SelectShip(s.ID)

	c.StartGesture(core.Vec2{X: 100, Y: 100})
	c.EndGesture(core.Vec2{X: 100, Y: 100}, true)
	assert.Nil(t, s.Orbit())
	assert.Len(t, s.Queue(), 1)
}

func TestLockTrailsHostileAtFixedRadius(t *testing.T) {
	w, c := newController()
	s := w.SpawnShip(config.PlayerLight, core.Vec2{X: 10, Y: 10}, 0)
	h := w.SpawnShip(config.Hostile, core.Vec2{X: 400, Y: 400}, 0)
	c.SelectShip(s.ID)

	c.StartGesture(core.Vec2{X: 300, Y: 400})
	c.UpdateGesture(core.Vec2{X: 370, Y: 400})
	id, ok := c.Locked()
	require.True(t, ok)
	assert.Equal(t, h.ID, id)
	assert.Equal(t, PhaseLocked, c.Phase())

	h.Pos = core.Vec2{X: 420, Y: 400}
	c.UpdateGesture(core.Vec2{X: 420, Y: 350})
	pt, ok := c.LockPoint()
	require.True(t, ok)
	assert.InDelta(t, 30, pt.DistanceTo(h.Pos), 1e-9)
	assert.InDelta(t, 420, pt.X, 1e-9)
	assert.InDelta(t, 370, pt.Y, 1e-9)

	c.EndGesture(core.Vec2{X: 420, Y: 350}, false)
	assert.InDelta(t, 370, s.Queue()[0].Pos.Y, 1e-9)
	_, ok = c.Locked()
	assert.False(t, ok)
}

func TestLockReleasesBeyondReleaseRange(t *testing.T) {
	w, c := newController()
	h := w.SpawnShip(config.Hostile, core.Vec2{X: 500, Y: 500}, 0)

	c.StartGesture(core.Vec2{X: 400, Y: 500})
	c.UpdateGesture(core.Vec2{X: 460, Y: 500}) // 40 from the hostile
	_, ok := c.Locked()
	require.True(t, ok)

	h.Pos = core.Vec2{X: 540, Y: 500}
	c.UpdateGesture(core.Vec2{X: 460, Y: 500}) // 80: still held
	_, ok = c.Locked()
	assert.True(t, ok, "hysteresis holds between snap and release range")

	h.Pos = core.Vec2{X: 570, Y: 500}
	c.UpdateGesture(core.Vec2{X: 460, Y: 500}) // 110
	_, ok = c.Locked()
	assert.False(t, ok)
	assert.Equal(t, PhaseAiming, c.Phase())
}

func TestLockReleasedWhenHostileDestroyed(t *testing.T) {
	w, c := newController()
	h := w.SpawnShip(config.Hostile, core.Vec2{X: 500, Y: 500}, 0)

	c.StartGesture(core.Vec2{X: 400, Y: 500})
	c.UpdateGesture(core.Vec2{X: 470, Y: 500})
	_, ok := c.Locked()
	require.True(t, ok)

	w.Destroy(h.ID)
	w.Tick(0.016)
	_, ok = c.Locked()
	assert.False(t, ok)
}

func TestTargetingHighlightWithoutDrag(t *testing.T) {
	w, c := newController()
	h := w.SpawnShip(config.Hostile, core.Vec2{X: 500, Y: 500}, 0)

	c.StartGesture(core.Vec2{X: 480, Y: 500})
	c.UpdateGesture(core.Vec2{X: 485, Y: 500})
	assert.Equal(t, h.ID, c.Targeting())
	assert.Equal(t, h.ID, w.Highlight)
	_, locked := c.Locked()
	assert.False(t, locked)

	h.Pos = core.Vec2{X: 700, Y: 500}
	c.UpdateGesture(core.Vec2{X: 485, Y: 500})
	assert.Zero(t, c.Targeting())
	assert.Zero(t, w.Highlight)
}

func TestStartGestureCancelsPrevious(t *testing.T) {
	w, c := newController()
	w.SpawnShip(config.Hostile, core.Vec2{X: 500, Y: 500}, 0)

	c.StartGesture(core.Vec2{X: 400, Y: 500})
	c.UpdateGesture(core.Vec2{X: 470, Y: 500})
	require.Equal(t, PhaseLocked, c.Phase())

	c.StartGesture(core.Vec2{X: 10, Y: 10})
	assert.Equal(t, PhaseAiming, c.Phase())
	_, ok := c.Locked()
	assert.False(t, ok)
	start, cursor, ok := c.Aim()
	require.True(t, ok)
	assert.Equal(t, core.Vec2{X: 10, Y: 10}, start)
	assert.Equal(t, start, cursor)
}

func TestCancelGestureHasNoSideEffects(t *testing.T) {
	w, c := newController()
	s := w.SpawnShip(config.PlayerLight, core.Vec2{X: 10, Y: 10}, 0)
	c.SelectShip(s.ID)

	c.StartGesture(core.Vec2{X: 100, Y: 100})
	c.CancelGesture()
	c.EndGesture(core.Vec2{X: 100, Y: 100}, false)

	assert.Equal(t, core.ModeIdle, s.Kind())
	assert.Equal(t, PhaseIdle, c.Phase())
}

func TestClickHostileIssuesFollow(t *testing.T) {
	w, c := newController()
	s := w.SpawnShip(config.PlayerLight, core.Vec2{X: 10, Y: 10}, 0)
	h := w.SpawnShip(config.Hostile, core.Vec2{X: 300, Y: 300}, 0)

	c.ClickShip(h.ID)
	assert.Equal(t, core.ModeIdle, s.Kind(), "nothing selected")

	c.ClickShip(s.ID)
	c.ClickShip(h.ID)
	f := s.Follow()
	require.NotNil(t, f)
	assert.Equal(t, h.ID, f.Target)
	assert.InDelta(t, 250, f.Interim.X, 1e-9)
	assert.InDelta(t, 300, f.Interim.Y, 1e-9)
	assert.True(t, w.IsSelected(s.ID), "follow keeps the selection")
}

func TestClickWaypointDotStartsOrbit(t *testing.T) {
	w, c := newController()
	s := w.SpawnShip(config.PlayerLight, core.Vec2{X: 100, Y: 100}, 0)
	s.AppendWaypoint(core.Waypoint{Pos: core.Vec2{X: 200, Y: 100}})
	s.AppendWaypoint(core.Waypoint{Pos: core.Vec2{X: 100, Y: 160}})

	c.ClickWaypointDot(s.ID, 1, false)
	assert.Equal(t, core.ModeWaypoint, s.Kind())
	c.ClickWaypointDot(s.ID, 5, true)
	assert.Equal(t, core.ModeWaypoint, s.Kind())

	c.ClickWaypointDot(s.ID, 1, true)
	o := s.Orbit()
	require.NotNil(t, o)
	assert.Equal(t, core.Vec2{X: 100, Y: 160}, o.Center)
	assert.InDelta(t, 60, o.Radius, 1e-9)
	assert.InDelta(t, -math.Pi/2, o.Angle, 1e-9)
	assert.Nil(t, s.Queue())
}

func TestCommandEventsEmitted(t *testing.T) {
	w, c := newController()
	s := w.SpawnShip(config.PlayerLight, core.Vec2{X: 10, Y: 10}, 0)
	var got []core.CommandIssued
	w.Bus.On(core.EvtCommandIssued, func(e core.Event) { got = append(got, e.Payload.(core.CommandIssued)) })

	c.SelectShip(s.ID)
	c.StartGesture(core.Vec2{X: 90, Y: 90})
	c.EndGesture(core.Vec2{X: 90, Y: 90}, false)
	w.Bus.Dispatch()

	require.Len(t, got, 2)
	assert.Equal(t, "select", got[0].Kind)
	assert.Equal(t, "move", got[1].Kind)
	assert.Equal(t, []core.EntityID{s.ID}, got[1].Ships)
}

func TestSetSpeedLiveTuning(t *testing.T) {
	w, c := newController()
	c.SetSpeed(config.PlayerLight, 90)
	assert.Equal(t, 90.0, w.Config.Type(config.PlayerLight).Speed)
	c.SetSpeed(config.PlayerLight, -1)
	assert.Equal(t, 90.0, w.Config.Type(config.PlayerLight).Speed)
}

func TestSetSpeedWarnsOnRejectedValue(t *testing.T) {
	var buf bytes.Buffer
	w, c := newController()
	c.Log = zerolog.New(&buf)

	c.SetSpeed(config.PlayerHeavy, 0)
	assert.Equal(t, config.Default().Type(config.PlayerHeavy).Speed, w.Config.Type(config.PlayerHeavy).Speed)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "speed rejected")
}
