package ai

import (
	"math"
	"math/rand"

	"github.com/1siamBot/skirmish/engine/core"
	"github.com/rs/zerolog"
)

const (
	// WanderInterval is how long a hostile keeps one wander heading, in ms
	WanderInterval = 30000.0
	// WanderStep is how far ahead of itself a wandering hostile aims
	WanderStep = 120.0
)

type wander struct {
	dir      core.Vec2
	rolledAt float64
}

// AISystem chases and shoots for hostiles and auto-fires for player ships.
// It only records intent: movement targets go into the waypoint queue and
// shots into Ship.FireAt for the combat system.
type AISystem struct {
	Log zerolog.Logger

	rng    *rand.Rand
	wander map[core.EntityID]*wander
}

// NewAISystem creates the AI with a deterministic wander source
func NewAISystem(seed int64, log zerolog.Logger) *AISystem {
	return &AISystem{
		Log:    log,
		rng:    rand.New(rand.NewSource(seed)),
		wander: make(map[core.EntityID]*wander),
	}
}

func (s *AISystem) Priority() int { return 20 }

func (s *AISystem) Update(w *core.World, _ float64) {
	for id := range s.wander {
		if w.Ship(id) == nil {
			delete(s.wander, id)
		}
	}

	for _, h := range w.Hostiles() {
		s.think(w, h)
	}
	for _, ship := range w.Ships() {
		if !ship.Hostile() {
			autoFire(w, ship)
		}
	}
}

// think drives one hostile: chase and shoot the nearest enemy in
// detection range, otherwise wander.
func (s *AISystem) think(w *core.World, h *core.Ship) {
	stats := w.Config.Type(h.Class)
	target, dist := w.Nearest(h.Pos, stats.AI.DetectionRange, func(o *core.Ship) bool {
		return core.AreEnemies(h, o)
	})
	if target != nil {
		headFor(h, w.ClampToBounds(target.Pos))
		if dist <= stats.Weapon.Range {
			h.FireAt = target.ID
		}
		return
	}

	st := s.wander[h.ID]
	if st == nil || w.Now-st.rolledAt >= WanderInterval {
		if st == nil {
			st = &wander{}
			s.wander[h.ID] = st
		}
		st.dir = core.FromAngle(s.rng.Float64() * 2 * math.Pi)
		st.rolledAt = w.Now
		s.Log.Debug().Uint64("ship", uint64(h.ID)).Float64("heading", math.Atan2(st.dir.Y, st.dir.X)).Msg("wander heading")
	}
	headFor(h, w.ClampToBounds(h.Pos.Add(st.dir.Scale(WanderStep))))
}

// headFor replaces the queue with goal and faces it
func headFor(h *core.Ship, goal core.Vec2) {
	h.ReplaceWaypoints(core.Waypoint{Pos: goal})
	if goal != h.Pos {
		h.TargetRotation = h.Pos.AngleTo(goal)
	}
}

// autoFire picks the nearest hostile in weapon range. Player ships never
// move on their own.
func autoFire(w *core.World, ship *core.Ship) {
	rng := w.Config.Type(ship.Class).Weapon.Range
	target, _ := w.Nearest(ship.Pos, rng, func(o *core.Ship) bool {
		return core.AreEnemies(ship, o)
	})
	if target != nil {
		ship.FireAt = target.ID
	}
}

