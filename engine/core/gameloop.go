package core

import "time"

// GameState represents the simulation run state
type GameState uint8

const (
	StatePaused GameState = iota
	StatePlaying
)

// MaxFrameTime caps a single tick's dt in seconds
const MaxFrameTime = 0.1

// GameLoop is the simulation clock: one tick per rendered frame with a
// variable dt measured from the wall clock.
type GameLoop struct {
	World    *World
	State    GameState
	lastTime time.Time
	now      func() time.Time
}

// NewGameLoop creates a paused clock driving w
func NewGameLoop(w *World) *GameLoop {
	return &GameLoop{World: w, now: time.Now}
}

// Update should be called every render frame. Returns the dt it ticked
// with (0 while paused).
func (gl *GameLoop) Update() float64 {
	now := gl.now()
	frameTime := now.Sub(gl.lastTime).Seconds()
	gl.lastTime = now

	if gl.State != StatePlaying || frameTime <= 0 {
		return 0
	}
	// Cap frame time so a stall does not teleport ships
	if frameTime > MaxFrameTime {
		frameTime = MaxFrameTime
	}
	gl.World.Tick(frameTime)
	return frameTime
}

// Play starts or resumes the simulation
func (gl *GameLoop) Play() {
	gl.State = StatePlaying
	gl.lastTime = gl.now()
}

// Pause pauses the simulation
func (gl *GameLoop) Pause() {
	gl.State = StatePaused
}

// Toggle flips between playing and paused
func (gl *GameLoop) Toggle() {
	if gl.State == StatePlaying {
		gl.Pause()
		return
	}
	gl.Play()
}

// CurrentTick returns the current simulation tick
func (gl *GameLoop) CurrentTick() uint64 {
	return gl.World.TickCount
}
