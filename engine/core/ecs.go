package core

import (
	"github.com/1siamBot/skirmish/engine/config"
	"github.com/rs/zerolog"
)

// EntityID is a stable identifier, unique across ships, projectiles and
// effects within one World. Zero means "none".
type EntityID uint64

// arena holds self-contained records keyed by id, iterated in insertion order
type arena[T any] struct {
	items map[EntityID]*T
	order []EntityID
}

func newArena[T any]() arena[T] {
	return arena[T]{items: make(map[EntityID]*T)}
}

func (a *arena[T]) put(id EntityID, v *T) {
	a.items[id] = v
	a.order = append(a.order, id)
}

func (a *arena[T]) get(id EntityID) *T {
	return a.items[id]
}

func (a *arena[T]) all() []*T {
	out := make([]*T, 0, len(a.order))
	for _, id := range a.order {
		if v, ok := a.items[id]; ok {
			out = append(out, v)
		}
	}
	return out
}

// sweep drops every record matching dead and returns them in order
func (a *arena[T]) sweep(dead func(*T) bool) []*T {
	var removed []*T
	kept := a.order[:0]
	for _, id := range a.order {
		v, ok := a.items[id]
		if !ok {
			continue
		}
		if dead(v) {
			delete(a.items, id)
			removed = append(removed, v)
			continue
		}
		kept = append(kept, id)
	}
	a.order = kept
	return removed
}

func (a *arena[T]) len() int { return len(a.items) }

// System processes the world each tick
type System interface {
	Update(w *World, dt float64)
	Priority() int
}

// World is the simulation context: it owns every entity collection, the
// selection set and the clock, and is passed to every system.
type World struct {
	Config *config.Config
	Log    zerolog.Logger
	Bus    *EventBus

	ships       arena[Ship]
	hostiles    []EntityID
	projectiles arena[Projectile]
	effects     arena[DamageEffect]
	selection   []EntityID

	// Highlight is the hostile under the aim-assist cursor, if any
	Highlight EntityID

	systems   []System
	nextID    EntityID
	TickCount uint64
	Now       float64 // simulated ms since start
}

// NewWorld creates an empty world
func NewWorld(cfg *config.Config, log zerolog.Logger) *World {
	if cfg == nil {
		cfg = config.Default()
	}
	return &World{
		Config:      cfg,
		Log:         log,
		Bus:         NewEventBus(),
		ships:       newArena[Ship](),
		projectiles: newArena[Projectile](),
		effects:     newArena[DamageEffect](),
	}
}

func (w *World) newID() EntityID {
	w.nextID++
	return w.nextID
}

// ---- Ships ----

// SpawnShip creates a ship at full health facing rotation
func (w *World) SpawnShip(class config.ShipClass, pos Vec2, rotation float64) *Ship {
	t := w.Config.Type(class)
	s := &Ship{
		ID:             w.newID(),
		Class:          class,
		Pos:            pos,
		Rotation:       rotation,
		TargetRotation: rotation,
		Mode:           Idle{},
		Health:         Health{Current: t.Health, Max: t.Health},
	}
	w.ships.put(s.ID, s)
	if s.Hostile() {
		w.hostiles = append(w.hostiles, s.ID)
	}
	return s
}

// Ship resolves an id to a live ship. Destroyed or unknown ids give nil.
func (w *World) Ship(id EntityID) *Ship {
	s := w.ships.get(id)
	if s == nil || s.Dead {
		return nil
	}
	return s
}

// Ships returns live ships in store order
func (w *World) Ships() []*Ship {
	all := w.ships.all()
	out := all[:0]
	for _, s := range all {
		if !s.Dead {
			out = append(out, s)
		}
	}
	return out
}

// Hostiles returns live hostile ships in store order
func (w *World) Hostiles() []*Ship {
	out := make([]*Ship, 0, len(w.hostiles))
	for _, id := range w.hostiles {
		if s := w.Ship(id); s != nil {
			out = append(out, s)
		}
	}
	return out
}

// ShipCount returns the number of ships held, dead ones included until cleanup
func (w *World) ShipCount() int { return w.ships.len() }

// Destroy marks a ship dead. It stops being resolvable immediately and
// is removed from every index during cleanup at the end of the tick.
func (w *World) Destroy(id EntityID) {
	if s := w.ships.get(id); s != nil {
		s.Dead = true
	}
}

// Nearest returns the closest live ship to p within maxDist that passes
// keep. Ties go to the first ship in store order.
func (w *World) Nearest(p Vec2, maxDist float64, keep func(*Ship) bool) (*Ship, float64) {
	var best *Ship
	bestDist := maxDist
	for _, s := range w.Ships() {
		if keep != nil && !keep(s) {
			continue
		}
		d := p.DistanceTo(s.Pos)
		if d <= maxDist && (best == nil || d < bestDist) {
			best = s
			bestDist = d
		}
	}
	return best, bestDist
}

// ---- Selection ----

// Select replaces the selection with the given friendly ships. Hostile
// and unknown ids are dropped.
func (w *World) Select(ids ...EntityID) {
	w.selection = w.selection[:0]
	for _, id := range ids {
		if s := w.Ship(id); s != nil && !s.Hostile() && !w.IsSelected(id) {
			w.selection = append(w.selection, id)
		}
	}
}

// Selected returns the selected ships that are still alive
func (w *World) Selected() []*Ship {
	out := make([]*Ship, 0, len(w.selection))
	for _, id := range w.selection {
		if s := w.Ship(id); s != nil {
			out = append(out, s)
		}
	}
	return out
}

// IsSelected reports selection membership
func (w *World) IsSelected(id EntityID) bool {
	for _, sid := range w.selection {
		if sid == id {
			return true
		}
	}
	return false
}

// ---- Projectiles & effects ----

// SpawnProjectile stores p under a fresh id
func (w *World) SpawnProjectile(p Projectile) *Projectile {
	p.ID = w.newID()
	rec := &p
	w.projectiles.put(p.ID, rec)
	return rec
}

// Projectiles returns live projectiles in spawn order
func (w *World) Projectiles() []*Projectile {
	all := w.projectiles.all()
	out := all[:0]
	for _, p := range all {
		if !p.Dead {
			out = append(out, p)
		}
	}
	return out
}

// SpawnEffect starts a damage effect at pos
func (w *World) SpawnEffect(pos Vec2, duration float64) *DamageEffect {
	e := &DamageEffect{ID: w.newID(), Pos: pos, Remaining: duration, Duration: duration}
	w.effects.put(e.ID, e)
	return e
}

// Effects returns live damage effects
func (w *World) Effects() []*DamageEffect {
	return w.effects.all()
}

// ---- Tick ----

// AddSystem registers a system
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
	// Sort by priority (simple insertion)
	for i := len(w.systems) - 1; i > 0; i-- {
		if w.systems[i].Priority() < w.systems[i-1].Priority() {
			w.systems[i], w.systems[i-1] = w.systems[i-1], w.systems[i]
		}
	}
}

// Tick advances the clock by dt seconds, runs all systems in priority
// order, prunes destroyed entities and dispatches the tick's events.
func (w *World) Tick(dt float64) {
	w.Now += dt * 1000
	for _, s := range w.systems {
		s.Update(w, dt)
	}
	w.Prune()
	w.Bus.Dispatch()
	w.TickCount++
}

// Prune removes dead entities from every index and revokes references to
// destroyed ships: followers fall back to Idle, projectiles become
// ownerless, selection and highlight drop the id.
func (w *World) Prune() {
	dead := w.ships.sweep(func(s *Ship) bool { return s.Dead })
	if len(dead) > 0 {
		gone := make(map[EntityID]bool, len(dead))
		for _, s := range dead {
			gone[s.ID] = true
			w.Log.Debug().Uint64("ship", uint64(s.ID)).Str("class", string(s.Class)).Msg("ship destroyed")
			w.Bus.Emit(Event{Type: EvtShipDestroyed, Tick: w.TickCount, Payload: ShipDestroyed{
				ID: s.ID, Class: s.Class, Pos: s.Pos,
			}})
		}

		w.hostiles = filterIDs(w.hostiles, gone)
		w.selection = filterIDs(w.selection, gone)
		if gone[w.Highlight] {
			w.Highlight = 0
		}

		for _, s := range w.ships.all() {
			if f := s.Follow(); f != nil && gone[f.Target] {
				s.SetIdle()
			}
			if gone[s.FireAt] {
				s.FireAt = 0
			}
		}
		for _, p := range w.projectiles.all() {
			if gone[p.Owner] {
				p.Owner = 0
			}
		}
	}

	w.projectiles.sweep(func(p *Projectile) bool { return p.Dead })
	w.effects.sweep(func(e *DamageEffect) bool { return e.Remaining <= 0 })
}

func filterIDs(ids []EntityID, gone map[EntityID]bool) []EntityID {
	kept := ids[:0]
	for _, id := range ids {
		if !gone[id] {
			kept = append(kept, id)
		}
	}
	return kept
}

// ClampToBounds pulls p inside the world rectangle
func (w *World) ClampToBounds(p Vec2) Vec2 {
	return Vec2{
		X: Clamp(p.X, 0, w.Config.World.Width),
		Y: Clamp(p.Y, 0, w.Config.World.Height),
	}
}

// InBounds reports whether p lies inside the world rectangle
func (w *World) InBounds(p Vec2) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= w.Config.World.Width && p.Y <= w.Config.World.Height
}
