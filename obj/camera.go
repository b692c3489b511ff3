package obj

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/roomscroller/common"
	"github.com/milk9111/roomscroller/levels"
)

const (
	DefaultCameraDecay = 7.5
	DefaultViewWidth   = 256
	DefaultViewHeight  = 240
)

// Camera follows a target point with exponential smoothing and keeps the
// view inside the room the target overlaps most. Pos is the top-left of
// the view in world pixels.
type Camera struct {
	Pos    cp.Vector
	ViewW  float64
	ViewH  float64
	Decay  float64
	Room   int
	target cp.Vector
}

// NewCamera creates a camera with the given view size in world pixels.
func NewCamera(viewW, viewH, decay float64) *Camera {
	if viewW <= 0 {
		viewW = DefaultViewWidth
	}
	if viewH <= 0 {
		viewH = DefaultViewHeight
	}
	if decay < 0 {
		decay = 0
	}
	return &Camera{ViewW: viewW, ViewH: viewH, Decay: decay, Room: -1}
}

// ViewRect is the world-space rectangle currently visible.
func (c *Camera) ViewRect() common.Rect {
	return common.Rect{X: c.Pos.X, Y: c.Pos.Y, Width: c.ViewW, Height: c.ViewH}
}

// Target is the clamped position the camera is easing toward.
func (c *Camera) Target() cp.Vector { return c.target }

// Update eases toward focus (usually the player centre). rooms is the set
// of rooms overlapping the player box; box is that box.
func (c *Camera) Update(w *levels.World, rooms *RoomSet, focus cp.Vector, box common.Rect, dt float64) {
	c.target = c.clampedTarget(w, rooms, focus, box)
	c.Pos.X = common.Filerp(c.Pos.X, c.target.X, c.Decay, dt)
	c.Pos.Y = common.Filerp(c.Pos.Y, c.target.Y, c.Decay, dt)
}

// SnapTo places the camera on focus without smoothing. Use after spawns and
// world reloads.
func (c *Camera) SnapTo(w *levels.World, rooms *RoomSet, focus cp.Vector, box common.Rect) {
	c.target = c.clampedTarget(w, rooms, focus, box)
	c.Pos = c.target
}

func (c *Camera) clampedTarget(w *levels.World, rooms *RoomSet, focus cp.Vector, box common.Rect) cp.Vector {
	t := cp.Vector{X: focus.X - c.ViewW/2, Y: focus.Y - c.ViewH/2}
	c.Room = BestRoom(w, rooms, box)
	if c.Room < 0 {
		return t
	}
	r := w.Room(c.Room).Box()
	t.X = clampView(t.X, r.X, r.Width, c.ViewW)
	t.Y = clampView(t.Y, r.Y, r.Height, c.ViewH)
	return t
}

// clampView keeps [v, v+view] inside [lo, lo+size]. When the room is
// smaller than the view the lower bound wins.
func clampView(v, lo, size, view float64) float64 {
	return common.Clamp(v, lo, lo+size-view)
}

// BestRoom returns the room in rooms with the greatest overlap area with
// box, or -1. Ties keep the room seen first.
func BestRoom(w *levels.World, rooms *RoomSet, box common.Rect) int {
	if w == nil || rooms == nil {
		return -1
	}
	best, bestArea := -1, 0.0
	bb := box.BB()
	for k := 0; k < rooms.Len(); k++ {
		i := rooms.At(k)
		room := w.Room(i)
		if room == nil {
			continue
		}
		rb := room.Box().BB()
		if !rb.Intersects(bb) {
			continue
		}
		area := overlapBB(rb, bb).Area()
		if area > bestArea {
			best, bestArea = i, area
		}
	}
	return best
}

func overlapBB(a, b cp.BB) cp.BB {
	return cp.BB{
		L: max(a.L, b.L),
		B: max(a.B, b.B),
		R: min(a.R, b.R),
		T: min(a.T, b.T),
	}
}
