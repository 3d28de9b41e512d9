package systems

import "github.com/1siamBot/skirmish/engine/core"

// Separation returns the unit direction pushing ship away from every
// other ship closer than minDist, or zero when nothing is too close.
// Exactly coincident neighbours give no direction and are skipped.
func Separation(ship *core.Ship, others []*core.Ship, minDist float64) core.Vec2 {
	var push core.Vec2
	for _, o := range others {
		if o == ship {
			continue
		}
		away := ship.Pos.Sub(o.Pos)
		d := away.Len()
		if d < minDist && d > 0.001 {
			push = push.Add(away.Scale(1 / d))
		}
	}
	return push.Normalize()
}
