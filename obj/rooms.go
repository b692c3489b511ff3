package obj

import (
	"github.com/milk9111/roomscroller/common"
	"github.com/milk9111/roomscroller/levels"
)

// MaxActiveRooms bounds every room set. Rooms past the cap are dropped.
const MaxActiveRooms = 4

// RoomSet is a fixed-capacity list of room indices in world order.
type RoomSet struct {
	idx [MaxActiveRooms]int32
	n   int
}

func (s *RoomSet) Len() int { return s.n }

// At returns the i-th room index.
func (s *RoomSet) At(i int) int { return int(s.idx[i]) }

// Add appends room i; it returns false once the set is full.
func (s *RoomSet) Add(i int) bool {
	if s.n >= MaxActiveRooms {
		return false
	}
	s.idx[s.n] = int32(i)
	s.n++
	return true
}

func (s *RoomSet) Reset() { s.n = 0 }

// Contains reports whether room i is in the set.
func (s *RoomSet) Contains(i int) bool {
	for k := 0; k < s.n; k++ {
		if int(s.idx[k]) == i {
			return true
		}
	}
	return false
}

// ActiveRooms holds the rooms overlapping the player box (used for
// collision and the camera) and the camera view (used for processing and
// drawing). Both are recomputed every tick.
type ActiveRooms struct {
	Player  RoomSet
	Process RoomSet
}

// Update rebuilds both sets in world order.
func (a *ActiveRooms) Update(w *levels.World, player, view common.Rect) {
	a.Player.Reset()
	a.Process.Reset()
	rooms := w.Rooms()
	for i := range rooms {
		box := rooms[i].Box()
		if box.Intersects(player) {
			a.Player.Add(i)
		}
		if box.Intersects(view) {
			a.Process.Add(i)
		}
	}
}

// CollectRooms fills set with the first MaxActiveRooms rooms overlapping box.
func CollectRooms(w *levels.World, box common.Rect, set *RoomSet) {
	set.Reset()
	rooms := w.Rooms()
	for i := range rooms {
		if !rooms[i].Box().Intersects(box) {
			continue
		}
		if !set.Add(i) {
			return
		}
	}
}
