package core

import (
	"testing"

	"github.com/1siamBot/skirmish/engine/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorld() *World {
	return NewWorld(config.Default(), zerolog.Nop())
}

func TestSpawnShip(t *testing.T) {
	w := newTestWorld()
	a := w.SpawnShip(config.PlayerLight, Vec2{10, 20}, 1.5)
	b := w.SpawnShip(config.Hostile, Vec2{30, 40}, 0)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, ModeIdle, a.Kind())
	assert.Equal(t, 1.5, a.TargetRotation)
	assert.Equal(t, config.Default().Types[config.PlayerLight].Health, a.Health.Current)
	assert.Equal(t, a.Health.Current, a.Health.Max)

	assert.Equal(t, []*Ship{a, b}, w.Ships())
	assert.Equal(t, []*Ship{b}, w.Hostiles())
	assert.Same(t, a, w.Ship(a.ID))
	assert.Nil(t, w.Ship(999))
}

func TestSelectExcludesHostiles(t *testing.T) {
	w := newTestWorld()
	a := w.SpawnShip(config.PlayerLight, Vec2{}, 0)
	h := w.SpawnShip(config.Hostile, Vec2{}, 0)
	b := w.SpawnShip(config.PlayerHeavy, Vec2{}, 0)

	w.Select(a.ID, h.ID, b.ID, a.ID, 12345)
	assert.Equal(t, []*Ship{a, b}, w.Selected())
	assert.False(t, w.IsSelected(h.ID))

	w.Select(b.ID)
	assert.Equal(t, []*Ship{b}, w.Selected())
}

func TestDestroyRevokesReferences(t *testing.T) {
	w := newTestWorld()
	follower := w.SpawnShip(config.PlayerLight, Vec2{}, 0)
	target := w.SpawnShip(config.Hostile, Vec2{100, 0}, 0)
	shooter := w.SpawnShip(config.PlayerHeavy, Vec2{0, 50}, 0)

	follower.Mode = &Follow{Target: target.ID}
	shooter.FireAt = target.ID
	w.Highlight = target.ID
	p := w.SpawnProjectile(Projectile{Owner: target.ID, Remaining: 500, Damage: 5})

	var destroyed []ShipDestroyed
	w.Bus.On(EvtShipDestroyed, func(e Event) {
		destroyed = append(destroyed, e.Payload.(ShipDestroyed))
	})

	w.Destroy(target.ID)
	assert.Nil(t, w.Ship(target.ID), "dead ship must not resolve before cleanup")
	assert.Empty(t, w.Hostiles())

	w.Prune()
	w.Bus.Dispatch()

	assert.Equal(t, ModeIdle, follower.Kind())
	assert.Zero(t, shooter.FireAt)
	assert.Zero(t, w.Highlight)
	assert.Zero(t, p.Owner)
	assert.Equal(t, 2, w.ShipCount())
	require.Len(t, destroyed, 1)
	assert.Equal(t, target.ID, destroyed[0].ID)
	assert.Equal(t, config.Hostile, destroyed[0].Class)
}

func TestDestroyRemovesFromSelection(t *testing.T) {
	w := newTestWorld()
	a := w.SpawnShip(config.PlayerLight, Vec2{}, 0)
	b := w.SpawnShip(config.PlayerLight, Vec2{}, 0)
	w.Select(a.ID, b.ID)

	w.Destroy(a.ID)
	w.Prune()

	assert.Equal(t, []*Ship{b}, w.Selected())
	assert.False(t, w.IsSelected(a.ID))
}

func TestNearestTieBreakStoreOrder(t *testing.T) {
	w := newTestWorld()
	first := w.SpawnShip(config.Hostile, Vec2{10, 0}, 0)
	w.SpawnShip(config.Hostile, Vec2{-10, 0}, 0)
	w.SpawnShip(config.Hostile, Vec2{50, 0}, 0)

	got, d := w.Nearest(Vec2{}, 100, nil)
	assert.Same(t, first, got)
	assert.Equal(t, 10.0, d)

	got, _ = w.Nearest(Vec2{}, 5, nil)
	assert.Nil(t, got)
}

func TestPopWaypointRevertsToIdle(t *testing.T) {
	s := &Ship{Mode: Idle{}}
	s.AppendWaypoint(Waypoint{Pos: Vec2{1, 1}})
	s.AppendWaypoint(Waypoint{Pos: Vec2{2, 2}})
	require.Equal(t, ModeWaypoint, s.Kind())
	assert.Len(t, s.Queue(), 2)

	wp, ok := s.PopWaypoint()
	assert.True(t, ok)
	assert.Equal(t, Vec2{1, 1}, wp.Pos)
	assert.Equal(t, ModeWaypoint, s.Kind())

	_, ok = s.PopWaypoint()
	assert.True(t, ok)
	assert.Equal(t, ModeIdle, s.Kind())
	assert.Nil(t, s.Queue())

	_, ok = s.PopWaypoint()
	assert.False(t, ok)
}

func TestAppendWaypointDropsOrbit(t *testing.T) {
	s := &Ship{Mode: &Orbit{Center: Vec2{5, 5}, Radius: 10}}
	s.AppendWaypoint(Waypoint{Pos: Vec2{1, 2}})
	assert.Nil(t, s.Orbit())
	assert.Equal(t, []Waypoint{{Pos: Vec2{1, 2}}}, s.Queue())
}

func TestHealthApply(t *testing.T) {
	h := Health{Current: 30, Max: 30}
	assert.False(t, h.Apply(10))
	assert.Equal(t, 20, h.Current)
	assert.True(t, h.Apply(25))
	assert.Equal(t, 0, h.Current)
	assert.Equal(t, 0.0, h.Ratio())
}

func TestSweepDropsDeadProjectilesAndExpiredEffects(t *testing.T) {
	w := newTestWorld()
	live := w.SpawnProjectile(Projectile{Remaining: 100})
	dead := w.SpawnProjectile(Projectile{Remaining: 100})
	dead.Dead = true
	fx := w.SpawnEffect(Vec2{}, 300)
	spent := w.SpawnEffect(Vec2{}, 300)
	spent.Remaining = 0

	w.Prune()

	assert.Equal(t, []*Projectile{live}, w.Projectiles())
	assert.Equal(t, []*DamageEffect{fx}, w.Effects())
}

func TestSnapshotCopiesState(t *testing.T) {
	w := newTestWorld()
	s := w.SpawnShip(config.PlayerLight, Vec2{1, 2}, 0)
	s.AppendWaypoint(Waypoint{Pos: Vec2{9, 9}, Facing: 1, HasFacing: true})
	w.Select(s.ID)
	fx := w.SpawnEffect(Vec2{3, 3}, 400)
	fx.Remaining = 100

	snap := w.Snapshot()
	require.Len(t, snap.Ships, 1)
	v := snap.Ships[0]
	assert.True(t, v.Selected)
	assert.Equal(t, ModeWaypoint, v.Mode)
	assert.Equal(t, 1.0, v.HealthRatio)
	require.Len(t, v.Waypoints, 1)

	v.Waypoints[0].Pos = Vec2{}
	assert.Equal(t, Vec2{9, 9}, s.Queue()[0].Pos, "snapshot must not alias the queue")

	require.Len(t, snap.Effects, 1)
	assert.InDelta(t, 0.25, snap.Effects[0].Fraction, 1e-9)
}

type recordingSystem struct {
	prio int
	log  *[]int
}

func (s recordingSystem) Priority() int               { return s.prio }
func (s recordingSystem) Update(_ *World, _ float64) { *s.log = append(*s.log, s.prio) }

func TestTickRunsSystemsInPriorityOrder(t *testing.T) {
	w := newTestWorld()
	var order []int
	w.AddSystem(recordingSystem{30, &order})
	w.AddSystem(recordingSystem{10, &order})
	w.AddSystem(recordingSystem{20, &order})

	w.Tick(0.5)
	assert.Equal(t, []int{10, 20, 30}, order)
	assert.Equal(t, uint64(1), w.TickCount)
	assert.Equal(t, 500.0, w.Now)
}
