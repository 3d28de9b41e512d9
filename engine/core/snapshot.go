package core

import "github.com/1siamBot/skirmish/engine/config"

// ShipView is the per-frame state of one ship handed to renderers
type ShipView struct {
	ID          EntityID
	Class       config.ShipClass
	Pos         Vec2
	Rotation    float64
	Size        float64
	HealthRatio float64
	Selected    bool
	Highlighted bool
	Mode        ModeKind
	Waypoints   []Waypoint
	PathStart   *Vec2
	Orbit       *Orbit
	FollowPoint *Vec2
}

// ProjectileView is the per-frame state of one projectile
type ProjectileView struct {
	ID  EntityID
	Pos Vec2
}

// EffectView is the per-frame state of one damage effect
type EffectView struct {
	ID       EntityID
	Pos      Vec2
	Fraction float64
}

// Snapshot is a copy of everything drawable; it shares no memory with the world
type Snapshot struct {
	Tick        uint64
	Now         float64
	Ships       []ShipView
	Projectiles []ProjectileView
	Effects     []EffectView
}

// Snapshot captures the world for display
func (w *World) Snapshot() Snapshot {
	snap := Snapshot{Tick: w.TickCount, Now: w.Now}

	for _, s := range w.Ships() {
		v := ShipView{
			ID:          s.ID,
			Class:       s.Class,
			Pos:         s.Pos,
			Rotation:    s.Rotation,
			Size:        w.Config.Type(s.Class).Size,
			HealthRatio: s.Health.Ratio(),
			Selected:    w.IsSelected(s.ID),
			Highlighted: s.ID == w.Highlight,
			Mode:        s.Kind(),
		}
		switch m := s.Mode.(type) {
		case *Waypoints:
			v.Waypoints = append([]Waypoint(nil), m.Queue...)
			if m.HasStart {
				start := m.PathStart
				v.PathStart = &start
			}
		case *Orbit:
			o := *m
			v.Orbit = &o
		case *Follow:
			p := m.Interim
			v.FollowPoint = &p
		}
		snap.Ships = append(snap.Ships, v)
	}

	for _, p := range w.Projectiles() {
		snap.Projectiles = append(snap.Projectiles, ProjectileView{ID: p.ID, Pos: p.Pos})
	}
	for _, e := range w.Effects() {
		snap.Effects = append(snap.Effects, EffectView{ID: e.ID, Pos: e.Pos, Fraction: e.Fraction()})
	}
	return snap
}
