package systems

import "github.com/1siamBot/skirmish/engine/core"

// ProjectileSystem moves projectiles, retires expired ones and resolves hits
type ProjectileSystem struct{}

func (s *ProjectileSystem) Priority() int { return 35 }

func (s *ProjectileSystem) Update(w *core.World, dt float64) {
	for _, p := range w.Projectiles() {
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		p.Remaining -= dt * 1000
		if p.Remaining <= 0 || !w.InBounds(p.Pos) {
			p.Dead = true
			w.Bus.Emit(core.Event{Type: core.EvtProjectileExpired, Tick: w.TickCount, Payload: p.ID})
			continue
		}

		// first ship in store order wins
		for _, ship := range w.Ships() {
			if ship.ID == p.Owner {
				continue
			}
			if p.Pos.DistanceTo(ship.Pos) >= w.Config.Type(ship.Class).Size/2 {
				continue
			}
			hit(w, p, ship)
			break
		}
	}
}

func hit(w *core.World, p *core.Projectile, ship *core.Ship) {
	damage := p.Damage
	if damage <= 0 {
		damage = DefaultDamage
	}
	lethal := ApplyDamage(w, ship, damage)
	p.Dead = true
	w.SpawnEffect(p.Pos, EffectDuration)

	w.Bus.Emit(core.Event{Type: core.EvtProjectileHit, Tick: w.TickCount, Payload: core.ProjectileHit{
		Projectile: p.ID, Ship: ship.ID, Damage: damage, Lethal: lethal,
	}})
}
