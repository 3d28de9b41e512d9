package metrics

import (
	"testing"

	"github.com/1siamBot/skirmish/engine/config"
	"github.com/1siamBot/skirmish/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestRecorderCountsBusEvents(t *testing.T) {
	bus := core.NewEventBus()
	r, err := NewRecorder(noop.NewMeterProvider().Meter("test"), bus)
	require.NoError(t, err)

	bus.Emit(core.Event{Type: core.EvtProjectileFired, Payload: core.ProjectileFired{Projectile: 1}})
	bus.Emit(core.Event{Type: core.EvtProjectileFired, Payload: core.ProjectileFired{Projectile: 2}})
	bus.Emit(core.Event{Type: core.EvtProjectileHit, Payload: core.ProjectileHit{Projectile: 1, Lethal: true}})
	bus.Emit(core.Event{Type: core.EvtShipDestroyed, Payload: core.ShipDestroyed{ID: 9, Class: config.Hostile}})
	bus.Emit(core.Event{Type: core.EvtProjectileExpired, Payload: core.EntityID(2)})
	bus.Emit(core.Event{Type: core.EvtCommandIssued, Payload: core.CommandIssued{Kind: "move"}})
	bus.Dispatch()

	assert.Equal(t, Totals{
		ShotsFired:         2,
		ProjectileHits:     1,
		ShipsDestroyed:     1,
		ProjectilesExpired: 1,
		Commands:           1,
	}, r.Totals())
}

func TestRecorderGlobalMeter(t *testing.T) {
	_, err := NewRecorder(Meter(), core.NewEventBus())
	assert.NoError(t, err)
}
