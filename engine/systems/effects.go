package systems

import "github.com/1siamBot/skirmish/engine/core"

// EffectDuration is the lifetime of a hit marker in ms
const EffectDuration = 400.0

// EffectSystem counts damage effects down; spent ones are swept at cleanup.
// It runs before projectiles so markers spawned this tick keep full time.
type EffectSystem struct{}

func (s *EffectSystem) Priority() int { return 32 }

func (s *EffectSystem) Update(w *core.World, dt float64) {
	for _, e := range w.Effects() {
		e.Remaining -= dt * 1000
	}
}
