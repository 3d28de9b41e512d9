package input

import (
	"fmt"
	"testing"

	"github.com/1siamBot/skirmish/engine/core"
	"github.com/stretchr/testify/assert"
)

type recorder struct{ calls []string }

func (r *recorder) BoxSelect(rc core.Rect) {
	r.calls = append(r.calls, fmt.Sprintf("box %v %v", rc.A, rc.B))
}
func (r *recorder) StartGesture(p core.Vec2)  { r.calls = append(r.calls, fmt.Sprintf("start %v", p)) }
func (r *recorder) UpdateGesture(p core.Vec2) { r.calls = append(r.calls, fmt.Sprintf("update %v", p)) }
func (r *recorder) EndGesture(p core.Vec2, appendQueue bool) {
	r.calls = append(r.calls, fmt.Sprintf("end %v %v", p, appendQueue))
}
func (r *recorder) ClickShip(id core.EntityID) { r.calls = append(r.calls, fmt.Sprintf("click %d", id)) }
func (r *recorder) ClickWaypointDot(id core.EntityID, i int, mod bool) {
	r.calls = append(r.calls, fmt.Sprintf("dot %d %d %v", id, i, mod))
}

func identity(sx, sy int) core.Vec2 { return core.Vec2{X: float64(sx), Y: float64(sy)} }

var snap = core.Snapshot{Ships: []core.ShipView{
	{ID: 1, Pos: core.Vec2{X: 100, Y: 100}, Size: 24, Selected: true,
		Waypoints: []core.Waypoint{{Pos: core.Vec2{X: 300, Y: 300}}, {Pos: core.Vec2{X: 400, Y: 300}}}},
	{ID: 2, Pos: core.Vec2{X: 110, Y: 100}, Size: 24},
}}

func TestRightButtonGesture(t *testing.T) {
	m := &Mapper{ToWorld: identity, DotRadius: 6}
	r := &recorder{}

	m.Apply(&InputState{MouseX: 10, MouseY: 20, RightJustPressed: true, RightPressed: true}, snap, r)
	m.Apply(&InputState{MouseX: 40, MouseY: 20, RightPressed: true}, snap, r)
	m.Apply(&InputState{MouseX: 50, MouseY: 20, RightJustReleased: true, Shift: true}, snap, r)

	assert.Equal(t, []string{"start {10 20}", "update {40 20}", "end {50 20} true"}, r.calls)
}

func TestLeftClickPicksTopmostShip(t *testing.T) {
	m := &Mapper{ToWorld: identity, DotRadius: 6}
	r := &recorder{}
	m.Apply(&InputState{MouseX: 105, MouseY: 100, LeftJustReleased: true}, snap, r)
	m.Apply(&InputState{MouseX: 700, MouseY: 700, LeftJustReleased: true}, snap, r)
	assert.Equal(t, []string{"click 2"}, r.calls)
}

func TestBoxSelectOnDrag(t *testing.T) {
	m := &Mapper{ToWorld: identity, DotRadius: 6}
	r := &recorder{}
	m.Apply(&InputState{MouseX: 200, MouseY: 150, LeftJustReleased: true, Dragging: true, DragStartX: 50, DragStartY: 60}, snap, r)
	assert.Equal(t, []string{"box {50 60} {200 150}"}, r.calls)
}

func TestCtrlClickWaypointDot(t *testing.T) {
	m := &Mapper{ToWorld: identity, DotRadius: 6}
	r := &recorder{}
	m.Apply(&InputState{MouseX: 403, MouseY: 302, LeftJustReleased: true, Ctrl: true}, snap, r)
	m.Apply(&InputState{MouseX: 403, MouseY: 302, LeftJustReleased: true}, snap, r)
	assert.Equal(t, []string{"dot 1 1 true"}, r.calls)
}

func TestTrackDrag(t *testing.T) {
	s := &InputState{DragThreshold: 10, MouseX: 5, MouseY: 5, LeftJustPressed: true, LeftPressed: true}
	s.trackDrag()
	assert.False(t, s.Dragging)

	s.LeftJustPressed = false
	s.MouseX = 30
	s.trackDrag()
	assert.True(t, s.Dragging)

	s.LeftPressed, s.LeftJustReleased = false, true
	s.trackDrag()
	assert.True(t, s.Dragging, "kept on the release frame")

	s.LeftJustReleased = false
	s.trackDrag()
	assert.False(t, s.Dragging)
}
