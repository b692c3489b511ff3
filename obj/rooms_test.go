package obj

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/roomscroller/common"
)

func setIndices(s *RoomSet) []int {
	out := make([]int, 0, s.Len())
	for k := 0; k < s.Len(); k++ {
		out = append(out, s.At(k))
	}
	return out
}

func TestRoomSetCap(t *testing.T) {
	var s RoomSet
	for i := 0; i < MaxActiveRooms; i++ {
		require.True(t, s.Add(i*2))
	}
	require.False(t, s.Add(99))
	require.Equal(t, []int{0, 2, 4, 6}, setIndices(&s))
	require.True(t, s.Contains(4))
	require.False(t, s.Contains(99))

	s.Reset()
	require.Zero(t, s.Len())
}

func TestActiveRoomsUpdate(t *testing.T) {
	var rooms []testRoom
	for i := 0; i < 6; i++ {
		rooms = append(rooms, testRoom{x: i * 320, w: 320, h: 240})
	}
	w := testWorld(t, rooms...)

	tests := []struct {
		name        string
		player      common.Rect
		view        common.Rect
		wantPlayer  []int
		wantProcess []int
	}{
		{
			name:        "cap keeps first four in world order",
			player:      common.Rect{X: 0, Y: 0, Width: 1920, Height: 10},
			view:        common.Rect{X: 1700, Y: 0, Width: 256, Height: 240},
			wantPlayer:  []int{0, 1, 2, 3},
			wantProcess: []int{5},
		},
		{
			name:        "shared edge is not overlap",
			player:      common.Rect{X: 304, Y: 100, Width: 16, Height: 16},
			view:        common.Rect{X: 64, Y: 0, Width: 256, Height: 240},
			wantPlayer:  []int{0},
			wantProcess: []int{0},
		},
		{
			name:        "straddling two rooms",
			player:      common.Rect{X: 632, Y: 100, Width: 16, Height: 16},
			view:        common.Rect{X: 512, Y: 0, Width: 256, Height: 240},
			wantPlayer:  []int{1, 2},
			wantProcess: []int{1, 2},
		},
		{
			name:        "outside the world",
			player:      common.Rect{X: 0, Y: 500, Width: 16, Height: 16},
			view:        common.Rect{X: 0, Y: 400, Width: 256, Height: 240},
			wantPlayer:  []int{},
			wantProcess: []int{},
		},
	}
	var active ActiveRooms
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			active.Update(w, tt.player, tt.view)
			require.Equal(t, tt.wantPlayer, setIndices(&active.Player))
			require.Equal(t, tt.wantProcess, setIndices(&active.Process))
		})
	}
}

func TestCollectRooms(t *testing.T) {
	w := testWorld(t,
		testRoom{x: 0, y: 0, w: 320, h: 240},
		testRoom{x: 320, y: 0, w: 320, h: 240},
		testRoom{x: 0, y: 240, w: 320, h: 240},
	)
	var set RoomSet
	set.Add(2)
	CollectRooms(w, common.Rect{X: 310, Y: 230, Width: 20, Height: 20}, &set)
	require.Equal(t, []int{0, 1, 2}, setIndices(&set))
}
