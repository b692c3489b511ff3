package obj

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/roomscroller/common"
)

func box16(x, y float64) *Entity {
	return &Entity{Active: true, Pos: cp.Vector{X: x, Y: y}, CollSize: cp.Vector{X: 16, Y: 16}}
}

func TestMoveWithCollisionWallColumn(t *testing.T) {
	w := testWorld(t, room320(func(cx, cy int) bool { return cx == 10 }))
	rooms := allRooms(w)

	e := box16(150, 100)
	e.Vel = cp.Vector{X: 64}
	MoveWithCollision(w, rooms, e, 0.1)

	require.InDelta(t, 143.99, e.Pos.X, 1e-9)
	require.Equal(t, 100.0, e.Pos.Y)
	require.Zero(t, e.Vel.X)
	require.False(t, e.Grounded)
	require.Equal(t, cp.Vector{X: 150, Y: 100}, e.PrevPos)
}

func TestMoveWithCollisionLCorner(t *testing.T) {
	w := testWorld(t, room320(func(cx, cy int) bool { return cx == 10 || cy == 14 }))
	rooms := allRooms(w)

	t.Run("into corner", func(t *testing.T) {
		e := box16(140, 200)
		e.Vel = cp.Vector{X: 100, Y: 100}
		MoveWithCollision(w, rooms, e, 0.1)

		require.InDelta(t, 143.99, e.Pos.X, 1e-9)
		require.InDelta(t, 207.99, e.Pos.Y, 1e-9)
		require.Zero(t, e.Vel.X)
		require.Zero(t, e.Vel.Y)
		require.True(t, e.Grounded)
	})

	t.Run("slide down wall", func(t *testing.T) {
		e := box16(143.99, 100)
		e.Vel = cp.Vector{X: 50, Y: 50}
		MoveWithCollision(w, rooms, e, 0.1)

		require.InDelta(t, 143.99, e.Pos.X, 1e-9)
		require.InDelta(t, 105, e.Pos.Y, 1e-9)
		require.Zero(t, e.Vel.X)
		require.Equal(t, 50.0, e.Vel.Y)
		require.False(t, e.Grounded)
	})

	t.Run("run along floor", func(t *testing.T) {
		e := box16(40, 207.99)
		e.Vel = cp.Vector{X: -90, Y: 10}
		MoveWithCollision(w, rooms, e, 0.1)

		require.InDelta(t, 31, e.Pos.X, 1e-9)
		require.InDelta(t, 207.99, e.Pos.Y, 1e-9)
		require.Equal(t, -90.0, e.Vel.X)
		require.True(t, e.Grounded)
	})
}

func TestMoveWithCollisionAxisIndependence(t *testing.T) {
	w := testWorld(t, room320(func(cx, cy int) bool { return cx == 10 || cy == 14 }))
	rooms := allRooms(w)

	tests := []struct {
		name  string
		start cp.Vector
		vel   cp.Vector
	}{
		{"into corner", cp.Vector{X: 140, Y: 200}, cp.Vector{X: 100, Y: 100}},
		{"slide down wall", cp.Vector{X: 143.99, Y: 100}, cp.Vector{X: 50, Y: 50}},
		{"run along floor", cp.Vector{X: 40, Y: 207.99}, cp.Vector{X: -90, Y: 10}},
		{"open air", cp.Vector{X: 60, Y: 60}, cp.Vector{X: 30, Y: -40}},
		{"away from corner", cp.Vector{X: 143.99, Y: 207.99}, cp.Vector{X: -70, Y: -120}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diagonal := box16(tt.start.X, tt.start.Y)
			diagonal.Vel = tt.vel
			MoveWithCollision(w, rooms, diagonal, 0.1)

			split := box16(tt.start.X, tt.start.Y)
			split.Vel = cp.Vector{X: tt.vel.X}
			MoveWithCollision(w, rooms, split, 0.1)
			split.Vel = cp.Vector{Y: tt.vel.Y}
			MoveWithCollision(w, rooms, split, 0.1)

			require.InDelta(t, split.Pos.X, diagonal.Pos.X, 1e-9)
			require.InDelta(t, split.Pos.Y, diagonal.Pos.Y, 1e-9)
			require.Equal(t, split.Grounded, diagonal.Grounded)
		})
	}
}

func TestMoveWithCollisionCeiling(t *testing.T) {
	w := testWorld(t, room320(func(cx, cy int) bool { return cy == 0 }))
	e := box16(64, 20)
	e.Vel = cp.Vector{Y: -100}
	e.Grounded = true
	MoveWithCollision(w, allRooms(w), e, 0.1)

	require.InDelta(t, 16.01, e.Pos.Y, 1e-9)
	require.Zero(t, e.Vel.Y)
	require.False(t, e.Grounded)
}

func TestMoveWithCollisionContainment(t *testing.T) {
	w := testWorld(t, room320(func(cx, cy int) bool {
		return cy == 14 || cx == 0 || cx == 19 || (cy == 10 && cx >= 6 && cx <= 9)
	}))
	rooms := allRooms(w)

	e := box16(40, 20)
	e.Origin = cp.Vector{X: 8, Y: 16}
	steps := []cp.Vector{{X: 120, Y: 0}, {X: -200, Y: 0}, {X: 60, Y: -250}}
	landed := false
	for i := 0; i < 240; i++ {
		dir := steps[(i/40)%len(steps)]
		e.Vel.X = dir.X
		if dir.Y != 0 && e.Grounded {
			e.Vel.Y = dir.Y
		}
		applyGravity(e, 600, 320, 1.0/60)
		MoveWithCollision(w, rooms, e, 1.0/60)
		require.False(t, SolidOverlap(w, rooms, e.Box()), "step %d at %v", i, e.Pos)
		landed = landed || e.Grounded
	}
	require.True(t, landed)
}

func TestMoveWithCollisionOffsetRoom(t *testing.T) {
	// room placed at (320, 240); solid floor on its last row
	w := testWorld(t, testRoom{x: 320, y: 240, w: 320, h: 240, solid: func(cx, cy int) bool { return cy == 14 }})
	e := box16(400, 240+200)
	e.Vel = cp.Vector{Y: 200}
	MoveWithCollision(w, allRooms(w), e, 0.1)

	require.InDelta(t, 240+207.99, e.Pos.Y, 1e-9)
	require.True(t, e.Grounded)
}

func TestMoveWithCollisionOutsideGrid(t *testing.T) {
	w := testWorld(t, room320(func(cx, cy int) bool { return true }))
	e := box16(-100, -100)
	e.Vel = cp.Vector{X: 10, Y: 10}
	MoveWithCollision(w, allRooms(w), e, 0.1)

	require.Equal(t, cp.Vector{X: -99, Y: -99}, e.Pos)
	require.False(t, e.Grounded)
}

func TestSolidOverlap(t *testing.T) {
	w := testWorld(t, room320(func(cx, cy int) bool { return cx == 2 && cy == 2 }))
	rooms := allRooms(w)

	require.True(t, SolidOverlap(w, rooms, common.Rect{X: 40, Y: 40, Width: 4, Height: 4}))
	require.False(t, SolidOverlap(w, rooms, common.Rect{X: 48, Y: 40, Width: 4, Height: 4}))
	require.False(t, SolidOverlap(w, rooms, common.Rect{X: 28, Y: 32, Width: 4, Height: 4}))

	var empty RoomSet
	require.False(t, SolidOverlap(w, &empty, common.Rect{X: 40, Y: 40, Width: 4, Height: 4}))
}
