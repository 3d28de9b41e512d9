package systems

import (
	"math"

	"github.com/1siamBot/skirmish/engine/config"
	"github.com/1siamBot/skirmish/engine/core"
)

const (
	// FollowDistance is how far behind its leader a following ship trails
	FollowDistance = 50.0

	// speeds closer than this to the desired value snap to it
	stopEpsilon = 1e-3
)

// MovementSystem turns, accelerates and moves every ship, advances
// waypoint queues and orbits, and nudges idle ships apart.
type MovementSystem struct{}

func (s *MovementSystem) Priority() int { return 10 }

func (s *MovementSystem) Update(w *core.World, dt float64) {
	ships := w.Ships()
	for _, ship := range ships {
		var leader *core.Ship
		if f := ship.Follow(); f != nil {
			leader = w.Ship(f.Target)
			if leader == nil {
				ship.SetIdle()
			}
		}
		Steer(ship, w.Config.Type(ship.Class), w.Config.ArriveThreshold, leader, dt)
	}

	// nudges are computed from settled positions, then applied together
	sep := w.Config.Separation
	push := make([]core.Vec2, len(ships))
	for i, ship := range ships {
		if ship.Kind() == core.ModeIdle {
			push[i] = Separation(ship, ships, sep.MinDistance)
		}
	}
	for i, ship := range ships {
		if push[i] == (core.Vec2{}) {
			continue
		}
		ship.Pos = w.ClampToBounds(ship.Pos.Add(push[i].Scale(sep.SeparationForce * dt)))
	}
}

// Steer advances one ship by dt seconds. leader is the resolved follow
// target and is ignored outside follow mode.
func Steer(ship *core.Ship, stats config.ShipType, arrive float64, leader *core.Ship, dt float64) {
	if f := ship.Follow(); f != nil && leader != nil {
		f.Interim = TrailPoint(leader)
		ship.TargetRotation = leader.Rotation
	}

	Rotate(ship, stats.RotationSpeed, dt)
	Accelerate(ship, stats, ship.Kind() != core.ModeIdle, dt)

	switch m := ship.Mode.(type) {
	case *core.Waypoints:
		if !m.HasStart {
			m.PathStart = ship.Pos
			m.HasStart = true
		}
		if moveToward(ship, m.Queue[0].Pos, arrive, dt) {
			wp, _ := ship.PopWaypoint()
			if wp.HasFacing {
				ship.TargetRotation = wp.Facing
			}
		}
	case *core.Follow:
		moveToward(ship, m.Interim, arrive, dt)
	case *core.Orbit:
		advanceOrbit(ship, m, dt)
	}
}

// TrailPoint is the spot FollowDistance behind leader along its facing
func TrailPoint(leader *core.Ship) core.Vec2 {
	return leader.Pos.Sub(core.FromAngle(leader.Rotation).Scale(FollowDistance))
}

// Rotate turns toward TargetRotation along the shorter arc, snapping when
// the remaining difference fits in one step.
func Rotate(ship *core.Ship, rate, dt float64) {
	diff := core.WrapAngle(ship.TargetRotation - ship.Rotation)
	step := rate * dt
	if math.Abs(diff) <= step {
		ship.Rotation = ship.TargetRotation
		return
	}
	if diff > 0 {
		ship.Rotation = core.WrapAngle(ship.Rotation + step)
	} else {
		ship.Rotation = core.WrapAngle(ship.Rotation - step)
	}
}

// Accelerate moves Speed toward the class speed (or zero without a target).
// The rate scales with max(current, desired), so heavier braking happens
// at higher speed.
func Accelerate(ship *core.Ship, stats config.ShipType, moving bool, dt float64) {
	desired := 0.0
	if moving {
		desired = stats.Speed
	}
	// the class speed may have been lowered by live tuning
	ship.Speed = core.Clamp(ship.Speed, 0, stats.Speed)

	if stats.Acceleration <= 0 {
		ship.Speed = desired
		return
	}
	step := math.Max(ship.Speed, desired) / (stats.Acceleration / 100) * dt
	if ship.Speed < desired {
		ship.Speed = math.Min(ship.Speed+step, desired)
	} else {
		ship.Speed = math.Max(ship.Speed-step, desired)
	}
	if math.Abs(ship.Speed-desired) < stopEpsilon {
		ship.Speed = desired
	}
}

// moveToward steps toward target and reports arrival. Arrival snaps the
// ship onto the target instead of overshooting it.
func moveToward(ship *core.Ship, target core.Vec2, arrive, dt float64) bool {
	delta := target.Sub(ship.Pos)
	dist := delta.Len()
	step := ship.Speed * dt
	if dist < arrive || step >= dist {
		ship.Pos = target
		return true
	}
	ship.Pos = ship.Pos.Add(delta.Scale(step / dist))
	return false
}

func advanceOrbit(ship *core.Ship, o *core.Orbit, dt float64) {
	if ship.Speed <= 0 {
		return
	}
	if o.Radius > 0 {
		o.Angle += ship.Speed / o.Radius * dt
	}
	ship.Pos = o.Center.Add(core.FromAngle(o.Angle).Scale(o.Radius))
	ship.TargetRotation = core.WrapAngle(o.Angle + math.Pi/2)
}
