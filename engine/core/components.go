package core

import "github.com/1siamBot/skirmish/engine/config"

// ---- Health ----

// Health represents hit points
type Health struct {
	Current int
	Max     int
}

func (h *Health) Ratio() float64 {
	if h.Max <= 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Max)
}

// Apply subtracts damage, never dropping below zero. Returns true when
// the hit was lethal.
func (h *Health) Apply(damage int) bool {
	h.Current -= damage
	if h.Current <= 0 {
		h.Current = 0
		return true
	}
	if h.Current > h.Max {
		h.Current = h.Max
	}
	return false
}

// ---- Movement modes ----

// ModeKind identifies the active movement mode
type ModeKind uint8

const (
	ModeIdle ModeKind = iota
	ModeWaypoint
	ModeOrbit
	ModeFollow
)

func (k ModeKind) String() string {
	switch k {
	case ModeWaypoint:
		return "waypoint"
	case ModeOrbit:
		return "orbit"
	case ModeFollow:
		return "follow"
	default:
		return "idle"
	}
}

// Mode is a ship's movement mode. Exactly one variant is held at a time,
// so waypoint queue, orbit descriptor and follow target cannot coexist.
type Mode interface {
	Kind() ModeKind
}

// Idle holds position; only idle ships get the separation nudge
type Idle struct{}

func (Idle) Kind() ModeKind { return ModeIdle }

// Waypoint is one queued destination with an optional facing
type Waypoint struct {
	Pos       Vec2
	Facing    float64
	HasFacing bool
}

// Waypoints is the queue mode. Queue is never empty while held by a ship.
type Waypoints struct {
	Queue []Waypoint

	// PathStart is where the current queue began (drawing only)
	PathStart Vec2
	HasStart  bool
}

func (*Waypoints) Kind() ModeKind { return ModeWaypoint }

// Orbit circles Center at Radius; Angle advances with linear speed
type Orbit struct {
	Center Vec2
	Radius float64
	Angle  float64
}

func (*Orbit) Kind() ModeKind { return ModeOrbit }

// Follow trails another ship by id. Interim is the last computed trail point.
type Follow struct {
	Target  EntityID
	Interim Vec2
}

func (*Follow) Kind() ModeKind { return ModeFollow }

// ---- Ship ----

// Ship is one vessel. All references to other entities are ids resolved
// through the World.
type Ship struct {
	ID    EntityID
	Class config.ShipClass

	Pos            Vec2
	Rotation       float64
	TargetRotation float64
	Speed          float64 // current scalar speed

	Mode Mode

	Health   Health
	LastFire float64 // sim ms of the last shot
	Fired    bool    // LastFire is meaningful

	// FireAt is the target chosen by AI this tick; consumed by combat
	FireAt EntityID

	Dead bool
}

// Hostile reports whether the ship belongs to the AI faction
func (s *Ship) Hostile() bool { return s.Class.IsHostile() }

// Kind returns the active movement mode kind
func (s *Ship) Kind() ModeKind {
	if s.Mode == nil {
		return ModeIdle
	}
	return s.Mode.Kind()
}

// Waypoints returns the queue mode, or nil when not in waypoint mode
func (s *Ship) Waypoints() *Waypoints {
	wp, _ := s.Mode.(*Waypoints)
	return wp
}

// Orbit returns the orbit descriptor, or nil
func (s *Ship) Orbit() *Orbit {
	o, _ := s.Mode.(*Orbit)
	return o
}

// Follow returns the follow mode, or nil
func (s *Ship) Follow() *Follow {
	f, _ := s.Mode.(*Follow)
	return f
}

// Queue returns the waypoint queue (nil unless in waypoint mode)
func (s *Ship) Queue() []Waypoint {
	if wp := s.Waypoints(); wp != nil {
		return wp.Queue
	}
	return nil
}

// SetIdle drops any command state
func (s *Ship) SetIdle() { s.Mode = Idle{} }

// ReplaceWaypoints discards any queue, orbit or follow and starts a new
// queue with one waypoint.
func (s *Ship) ReplaceWaypoints(w Waypoint) {
	s.Mode = &Waypoints{Queue: []Waypoint{w}}
}

// AppendWaypoint pushes onto an existing queue, or starts one. Orbit and
// follow are dropped.
func (s *Ship) AppendWaypoint(w Waypoint) {
	if wp := s.Waypoints(); wp != nil {
		wp.Queue = append(wp.Queue, w)
		return
	}
	s.ReplaceWaypoints(w)
}

// PopWaypoint removes the queue front. An emptied queue reverts to Idle.
func (s *Ship) PopWaypoint() (Waypoint, bool) {
	wp := s.Waypoints()
	if wp == nil || len(wp.Queue) == 0 {
		s.SetIdle()
		return Waypoint{}, false
	}
	front := wp.Queue[0]
	wp.Queue = wp.Queue[1:]
	if len(wp.Queue) == 0 {
		s.SetIdle()
	}
	return front, true
}

// ---- Projectile ----

// Projectile is a live bullet. Damage is snapshotted at spawn; Owner is
// only used to skip self-hits and becomes 0 when the shooter dies.
type Projectile struct {
	ID        EntityID
	Pos       Vec2
	Vel       Vec2    // px per second
	Remaining float64 // ms
	Damage    int
	Owner     EntityID
	Dead      bool
}

// ---- Damage effect ----

// DamageEffect is a decaying hit marker
type DamageEffect struct {
	ID        EntityID
	Pos       Vec2
	Remaining float64 // ms
	Duration  float64 // ms
}

// Fraction returns remaining/duration in [0, 1]
func (e *DamageEffect) Fraction() float64 {
	if e.Duration <= 0 {
		return 0
	}
	return Clamp(e.Remaining/e.Duration, 0, 1)
}
