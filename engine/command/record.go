package command

import (
	"fmt"

	"github.com/1siamBot/skirmish/engine/core"
)

// Kind identifies an applied player command
type Kind uint8

const (
	KindSelect Kind = iota
	KindMove
	KindQueue
	KindFollow
	KindOrbit
)

func (k Kind) String() string {
	switch k {
	case KindSelect:
		return "select"
	case KindMove:
		return "move"
	case KindQueue:
		return "queue"
	case KindFollow:
		return "follow"
	case KindOrbit:
		return "orbit"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Record describes one applied command
type Record struct {
	Tick   uint64
	Kind   Kind
	Ships  []core.EntityID
	Point  core.Vec2
	Target core.EntityID // followed hostile, if any
}

func (r Record) String() string {
	switch r.Kind {
	case KindFollow:
		return fmt.Sprintf("%s %d ship(s) -> #%d", r.Kind, len(r.Ships), r.Target)
	case KindSelect:
		return fmt.Sprintf("%s %d ship(s)", r.Kind, len(r.Ships))
	}
	return fmt.Sprintf("%s %d ship(s) -> (%.0f, %.0f)", r.Kind, len(r.Ships), r.Point.X, r.Point.Y)
}

// historySize bounds the kept command log
const historySize = 32

func (c *Controller) record(r Record) {
	r.Tick = c.World.TickCount
	c.history = append(c.history, r)
	if len(c.history) > historySize {
		c.history = c.history[len(c.history)-historySize:]
	}
	c.World.Bus.Emit(core.Event{Type: core.EvtCommandIssued, Tick: r.Tick, Payload: core.CommandIssued{
		Kind: r.Kind.String(), Ships: r.Ships,
	}})
	c.Log.Debug().Stringer("cmd", r).Msg("command applied")
}

// History returns the most recent applied commands, oldest first
func (c *Controller) History() []Record {
	return append([]Record(nil), c.history...)
}
