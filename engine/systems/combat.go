package systems

import (
	"github.com/1siamBot/skirmish/engine/config"
	"github.com/1siamBot/skirmish/engine/core"
)

// DefaultDamage is applied by projectiles that carry no damage of their own
const DefaultDamage = 10

// CombatSystem fires at the targets chosen by AI this tick
type CombatSystem struct{}

func (s *CombatSystem) Priority() int { return 30 }

func (s *CombatSystem) Update(w *core.World, _ float64) {
	for _, ship := range w.Ships() {
		if ship.FireAt == 0 {
			continue
		}
		target := w.Ship(ship.FireAt)
		ship.FireAt = 0
		if target == nil {
			continue
		}
		if CanFire(ship, w.Config.Type(ship.Class).Weapon, w.Now) {
			Fire(w, ship, target)
		}
	}
}

// fireEpsilon absorbs float drift in the accumulated sim clock (ms)
const fireEpsilon = 1e-6

// CanFire reports whether the weapon has cooled down at time now (ms)
func CanFire(ship *core.Ship, wep config.Weapon, now float64) bool {
	interval, ok := wep.FireInterval()
	if !ok {
		return false
	}
	return !ship.Fired || now-ship.LastFire >= interval-fireEpsilon
}

// Fire spawns a projectile from shooter toward target's current position
// and restarts the shooter's cooldown.
func Fire(w *core.World, shooter, target *core.Ship) *core.Projectile {
	wep := w.Config.Type(shooter.Class).Weapon
	dir := target.Pos.Sub(shooter.Pos).Normalize()
	if dir == (core.Vec2{}) {
		dir = core.FromAngle(shooter.Rotation)
	}
	p := w.SpawnProjectile(core.Projectile{
		Pos:       shooter.Pos,
		Vel:       dir.Scale(w.Config.Bullet.Speed),
		Remaining: w.Config.Bullet.Lifetime,
		Damage:    wep.Damage,
		Owner:     shooter.ID,
	})
	shooter.LastFire = w.Now
	shooter.Fired = true

	w.Bus.Emit(core.Event{Type: core.EvtProjectileFired, Tick: w.TickCount, Payload: core.ProjectileFired{
		Projectile: p.ID, Shooter: shooter.ID, Target: target.ID,
	}})
	return p
}

// ApplyDamage hurts a ship and destroys it when health runs out. It
// reports whether the hit was lethal.
func ApplyDamage(w *core.World, ship *core.Ship, damage int) bool {
	if !ship.Health.Apply(damage) {
		return false
	}
	w.Destroy(ship.ID)
	return true
}
