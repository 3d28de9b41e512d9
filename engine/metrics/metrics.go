// Package metrics counts simulation events with OpenTelemetry instruments.
package metrics

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/1siamBot/skirmish/engine/core"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/1siamBot/skirmish/engine/metrics"

// Meter returns the global meter for the simulation
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Totals is a plain copy of the counters, for the HUD
type Totals struct {
	ShotsFired         int64
	ProjectileHits     int64
	ShipsDestroyed     int64
	ProjectilesExpired int64
	Commands           int64
}

// Recorder feeds counters from the world's event bus
type Recorder struct {
	shots     metric.Int64Counter
	hits      metric.Int64Counter
	destroyed metric.Int64Counter
	expired   metric.Int64Counter
	commands  metric.Int64Counter

	totals [5]atomic.Int64
}

// NewRecorder creates the instruments on m and subscribes to bus
func NewRecorder(m metric.Meter, bus *core.EventBus) (*Recorder, error) {
	r := &Recorder{}
	var err error

	if r.shots, err = m.Int64Counter("skirmish.shots_fired",
		metric.WithDescription("Projectiles fired")); err != nil {
		return nil, fmt.Errorf("create shots counter: %w", err)
	}
	if r.hits, err = m.Int64Counter("skirmish.projectile_hits",
		metric.WithDescription("Projectiles that hit a ship")); err != nil {
		return nil, fmt.Errorf("create hits counter: %w", err)
	}
	if r.destroyed, err = m.Int64Counter("skirmish.ships_destroyed",
		metric.WithDescription("Ships destroyed")); err != nil {
		return nil, fmt.Errorf("create destroyed counter: %w", err)
	}
	if r.expired, err = m.Int64Counter("skirmish.projectiles_expired",
		metric.WithDescription("Projectiles retired without a hit")); err != nil {
		return nil, fmt.Errorf("create expired counter: %w", err)
	}
	if r.commands, err = m.Int64Counter("skirmish.commands",
		metric.WithDescription("Player commands applied")); err != nil {
		return nil, fmt.Errorf("create commands counter: %w", err)
	}

	bus.On(core.EvtProjectileFired, r.onFired)
	bus.On(core.EvtProjectileHit, r.onHit)
	bus.On(core.EvtShipDestroyed, r.onDestroyed)
	bus.On(core.EvtProjectileExpired, r.onExpired)
	bus.On(core.EvtCommandIssued, r.onCommand)
	return r, nil
}

const (
	iShots = iota
	iHits
	iDestroyed
	iExpired
	iCommands
)

func (r *Recorder) add(c metric.Int64Counter, i int, attrs ...attribute.KeyValue) {
	c.Add(context.Background(), 1, metric.WithAttributes(attrs...))
	r.totals[i].Add(1)
}

func (r *Recorder) onFired(core.Event) { r.add(r.shots, iShots) }

func (r *Recorder) onHit(e core.Event) {
	hit, _ := e.Payload.(core.ProjectileHit)
	r.add(r.hits, iHits, attribute.Bool("lethal", hit.Lethal))
}

func (r *Recorder) onDestroyed(e core.Event) {
	d, _ := e.Payload.(core.ShipDestroyed)
	r.add(r.destroyed, iDestroyed, attribute.String("class", string(d.Class)))
}

func (r *Recorder) onExpired(core.Event) { r.add(r.expired, iExpired) }

func (r *Recorder) onCommand(e core.Event) {
	c, _ := e.Payload.(core.CommandIssued)
	r.add(r.commands, iCommands, attribute.String("kind", c.Kind))
}

// Totals returns the counts seen so far
func (r *Recorder) Totals() Totals {
	return Totals{
		ShotsFired:         r.totals[iShots].Load(),
		ProjectileHits:     r.totals[iHits].Load(),
		ShipsDestroyed:     r.totals[iDestroyed].Load(),
		ProjectilesExpired: r.totals[iExpired].Load(),
		Commands:           r.totals[iCommands].Load(),
	}
}
