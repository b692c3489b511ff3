package obj

import (
	"math"

	"github.com/milk9111/roomscroller/common"
	"github.com/milk9111/roomscroller/levels"
)

// Epsilon is added to every push-out so the resolved box does not touch
// the solid cell it was pushed out of.
const Epsilon = 0.01

type axis uint8

const (
	axisX axis = iota
	axisY
)

// MoveWithCollision integrates e.Vel over dt, X first and then Y. On each
// axis the entity is pushed back by the largest overlap with any solid cell
// of the rooms in set, and that velocity component is zeroed. A downward Y
// hit sets Grounded; any other Y outcome clears it.
//
// The previous position must not already overlap solid cells.
func MoveWithCollision(w *levels.World, set *RoomSet, e *Entity, dt float64) {
	e.PrevPos = e.Pos
	moveAxis(w, set, e, axisX, dt)
	moveAxis(w, set, e, axisY, dt)
}

func moveAxis(w *levels.World, set *RoomSet, e *Entity, ax axis, dt float64) {
	var dist float64
	if ax == axisX {
		dist = e.Vel.X * dt
		e.Pos.X += dist
	} else {
		dist = e.Vel.Y * dt
		e.Pos.Y += dist
	}
	sign := common.Sign(dist)

	overlap, hit := maxOverlap(w, set, e.Box(), ax)
	if ax == axisY {
		e.Grounded = hit && sign > 0
	}
	if !hit {
		return
	}
	push := sign * (overlap + Epsilon)
	if ax == axisX {
		e.Pos.X -= push
		e.Vel.X = 0
	} else {
		e.Pos.Y -= push
		e.Vel.Y = 0
	}
}

// maxOverlap returns the largest extent along ax by which box intersects a
// solid cell of any room in set.
func maxOverlap(w *levels.World, set *RoomSet, box common.Rect, ax axis) (float64, bool) {
	best, hit := 0.0, false
	for k := 0; k < set.Len(); k++ {
		ri := set.At(k)
		room := w.Room(ri)
		layer := w.CollisionLayer(ri)
		if room == nil || layer == nil || layer.CellSize <= 0 {
			continue
		}
		grid := w.IntGrid(layer)
		cell := float64(layer.CellSize)
		local := box.Offset(-float64(room.WorldX), -float64(room.WorldY))

		cx0, cy0, cx1, cy1, ok := cellRange(local, cell, int(layer.WidthCells), int(layer.HeightCells))
		if !ok {
			continue
		}
		wc := int(layer.WidthCells)
		for cy := cy0; cy <= cy1; cy++ {
			for cx := cx0; cx <= cx1; cx++ {
				if grid[cy*wc+cx] != levels.CellSolid {
					continue
				}
				tile := common.Rect{X: float64(cx) * cell, Y: float64(cy) * cell, Width: cell, Height: cell}
				in := local.Intersection(tile)
				if in.Width <= 0 || in.Height <= 0 {
					continue
				}
				extent := in.Width
				if ax == axisY {
					extent = in.Height
				}
				if extent > best {
					best = extent
				}
				hit = true
			}
		}
	}
	return best, hit
}

// cellRange returns the cells covered by a room-local box, clamped to the
// grid. ok is false when the box lies entirely outside the grid.
func cellRange(local common.Rect, cell float64, w, h int) (cx0, cy0, cx1, cy1 int, ok bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, 0, 0, false
	}
	fx0 := math.Floor(local.X / cell)
	fy0 := math.Floor(local.Y / cell)
	fx1 := math.Floor(local.Right() / cell)
	fy1 := math.Floor(local.Bottom() / cell)
	if fx1 < 0 || fy1 < 0 || fx0 >= float64(w) || fy0 >= float64(h) {
		return 0, 0, 0, 0, false
	}
	cx0 = common.ClampInt(int(fx0), 0, w-1)
	cy0 = common.ClampInt(int(fy0), 0, h-1)
	cx1 = common.ClampInt(int(fx1), 0, w-1)
	cy1 = common.ClampInt(int(fy1), 0, h-1)
	return cx0, cy0, cx1, cy1, true
}

// SolidOverlap reports whether box intersects any solid cell of the rooms
// in set.
func SolidOverlap(w *levels.World, set *RoomSet, box common.Rect) bool {
	_, hit := maxOverlap(w, set, box, axisX)
	return hit
}
