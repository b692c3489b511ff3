package obj

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/roomscroller/levels"
)

const testCell = 16

// testRoom describes one room for testWorld. solid is given in cell
// coordinates; nil means an empty room.
type testRoom struct {
	x, y, w, h int
	solid      func(cx, cy int) bool
}

func testWorld(t *testing.T, rooms ...testRoom) *levels.World {
	t.Helper()
	lvls := make([]map[string]any, 0, len(rooms))
	for i, r := range rooms {
		cw, ch := r.w/testCell, r.h/testCell
		csv := make([]int, 0, cw*ch)
		for cy := 0; cy < ch; cy++ {
			for cx := 0; cx < cw; cx++ {
				v := 0
				if r.solid != nil && r.solid(cx, cy) {
					v = 1
				}
				csv = append(csv, v)
			}
		}
		lvls = append(lvls, map[string]any{
			"identifier": "Room_" + string(rune('A'+i)),
			"iid":        "iid",
			"worldX":     r.x, "worldY": r.y,
			"pxWid": r.w, "pxHei": r.h,
			"layerInstances": []map[string]any{{
				"__identifier": "Collision", "__type": "IntGrid",
				"__cWid": cw, "__cHei": ch, "__gridSize": testCell, "__opacity": 1,
				"intGridCsv": csv,
			}},
		})
	}
	data, err := json.Marshal(map[string]any{
		"defs":   map[string]any{"tilesets": []any{}},
		"levels": lvls,
	})
	require.NoError(t, err)

	w, err := levels.Parse(data, levels.WithCapacity(4<<20))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Release() })
	return w
}

// room320 is a 20x15 cell room at the origin.
func room320(solid func(cx, cy int) bool) testRoom {
	return testRoom{w: 320, h: 240, solid: solid}
}

func allRooms(w *levels.World) *RoomSet {
	var set RoomSet
	for i := range w.Rooms() {
		set.Add(i)
	}
	return &set
}
