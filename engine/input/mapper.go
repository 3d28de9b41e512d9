package input

import "github.com/1siamBot/skirmish/engine/core"

// Commander is the command surface driven by pointer input
type Commander interface {
	BoxSelect(r core.Rect)
	StartGesture(p core.Vec2)
	UpdateGesture(p core.Vec2)
	EndGesture(p core.Vec2, appendQueue bool)
	ClickShip(id core.EntityID)
	ClickWaypointDot(shipID core.EntityID, index int, modifierHeld bool)
}

// Mapper turns one frame of pointer state into commands. The right button
// draws movement gestures (shift queues), the left button clicks or box
// selects, and ctrl-clicking a waypoint dot starts an orbit.
type Mapper struct {
	ToWorld func(sx, sy int) core.Vec2
	// DotRadius is the waypoint pick radius in world units
	DotRadius float64
}

// Apply issues the commands for this frame
func (m *Mapper) Apply(in *InputState, snap core.Snapshot, cmd Commander) {
	cursor := m.ToWorld(in.MouseX, in.MouseY)

	switch {
	case in.RightJustPressed:
		cmd.StartGesture(cursor)
	case in.RightPressed:
		cmd.UpdateGesture(cursor)
	}
	if in.RightJustReleased {
		cmd.EndGesture(cursor, in.Shift)
	}

	if !in.LeftJustReleased {
		return
	}
	if in.Dragging {
		start := m.ToWorld(in.DragStartX, in.DragStartY)
		cmd.BoxSelect(core.Rect{A: start, B: cursor})
		return
	}
	if in.Ctrl {
		if id, idx, ok := PickWaypoint(snap, cursor, m.DotRadius); ok {
			cmd.ClickWaypointDot(id, idx, true)
			return
		}
	}
	if id, ok := PickShip(snap, cursor); ok {
		cmd.ClickShip(id)
	}
}

// PickShip returns the ship under p, preferring the one drawn last
func PickShip(snap core.Snapshot, p core.Vec2) (core.EntityID, bool) {
	for i := len(snap.Ships) - 1; i >= 0; i-- {
		s := snap.Ships[i]
		if p.DistanceTo(s.Pos) <= s.Size/2 {
			return s.ID, true
		}
	}
	return 0, false
}

// PickWaypoint returns the selected ship and queue index of the waypoint
// dot within radius of p
func PickWaypoint(snap core.Snapshot, p core.Vec2, radius float64) (core.EntityID, int, bool) {
	for _, s := range snap.Ships {
		if !s.Selected {
			continue
		}
		for i, wp := range s.Waypoints {
			if p.DistanceTo(wp.Pos) <= radius {
				return s.ID, i, true
			}
		}
	}
	return 0, 0, false
}
