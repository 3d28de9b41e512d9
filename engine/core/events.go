package core

import "github.com/1siamBot/skirmish/engine/config"

// Event represents a simulation event
type Event struct {
	Type    EventType
	Tick    uint64
	Payload interface{}
}

type EventType uint16

const (
	EvtShipDestroyed EventType = iota
	EvtProjectileFired
	EvtProjectileHit
	EvtProjectileExpired
	EvtCommandIssued
)

// ShipDestroyed is the payload of EvtShipDestroyed
type ShipDestroyed struct {
	ID    EntityID
	Class config.ShipClass
	Pos   Vec2
}

// ProjectileFired is the payload of EvtProjectileFired
type ProjectileFired struct {
	Projectile EntityID
	Shooter    EntityID
	Target     EntityID
}

// ProjectileHit is the payload of EvtProjectileHit
type ProjectileHit struct {
	Projectile EntityID
	Ship       EntityID
	Damage     int
	Lethal     bool
}

// CommandIssued is the payload of EvtCommandIssued
type CommandIssued struct {
	Kind  string
	Ships []EntityID
}

// EventBus dispatches events to listeners
type EventBus struct {
	listeners map[EventType][]EventHandler
	queue     []Event
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// Emit queues an event for dispatch
func (eb *EventBus) Emit(e Event) {
	eb.queue = append(eb.queue, e)
}

// Dispatch processes all queued events. Handlers may emit; those events
// are delivered in the same call.
func (eb *EventBus) Dispatch() {
	for i := 0; i < len(eb.queue); i++ {
		e := eb.queue[i]
		for _, h := range eb.listeners[e.Type] {
			h(e)
		}
	}
	eb.queue = eb.queue[:0]
}

// Pending returns the number of queued events
func (eb *EventBus) Pending() int {
	return len(eb.queue)
}
