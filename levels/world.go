package levels

import (
	"iter"

	"github.com/milk9111/roomscroller/arena"
	"github.com/milk9111/roomscroller/atlas"
	"github.com/milk9111/roomscroller/common"
)

// LayerKind tags which payload of a Layer is valid.
type LayerKind uint8

const (
	LayerIntGrid LayerKind = iota
	LayerTiles
	LayerEntities
)

func (k LayerKind) String() string {
	switch k {
	case LayerIntGrid:
		return "intgrid"
	case LayerTiles:
		return "tiles"
	case LayerEntities:
		return "entities"
	default:
		return "unknown"
	}
}

const (
	// NoTileset marks a tile layer whose tileset uid did not resolve.
	NoTileset int32 = -1
	// NoLayer marks a room without a collision layer.
	NoLayer int32 = -1

	// CellSolid is the intgrid value of a solid cell; 0 is open.
	CellSolid int32 = 1
)

// Tile flip bits.
const (
	FlipX uint8 = 1 << iota
	FlipY
)

// Tileset is a tileset definition. Slot is atlas.InvalidSlot until
// LoadAssets has registered the image.
type Tileset struct {
	Identifier  arena.Str
	RelPath     arena.Str
	UID         int32
	CellSize    int32
	WidthCells  int32
	HeightCells int32
	Padding     int32
	Spacing     int32
	Slot        uint32
}

// Tile is one visual tile of a layer.
type Tile struct {
	LayerX, LayerY int32
	SrcX, SrcY     int32
	ID             int32
	Alpha          float32
	Flip           uint8
}

// Marker is an entity instance placed in the level editor.
type Marker struct {
	Identifier     arena.Str
	DefUID         int32
	WorldX, WorldY int32
	LayerX, LayerY int32
	Width, Height  int32
}

// Layer is a grid layer of a room. Off/Len index the world's int, tile or
// marker table depending on Kind.
type Layer struct {
	Identifier  arena.Str
	Kind        LayerKind
	WidthCells  int32
	HeightCells int32
	CellSize    int32
	Opacity     float32
	Tileset     int32
	Off, Len    uint32
}

// Room is a rectangular level of the world.
type Room struct {
	Identifier arena.Str
	IID        arena.Str
	WorldX     int32
	WorldY     int32
	Width      int32
	Height     int32
	Depth      int32
	FirstLayer int32
	NumLayers  int32
	Collision  int32
}

// Box is the room's world-space rectangle.
func (r *Room) Box() common.Rect {
	return common.Rect{X: float64(r.WorldX), Y: float64(r.WorldY), Width: float64(r.Width), Height: float64(r.Height)}
}

// World owns every room, layer and tileset of a loaded level document. All
// tables live in one arena and reference each other by index; the world is
// read-only after LoadAssets.
type World struct {
	arena    *arena.Arena
	tilesets []Tileset
	rooms    []Room
	layers   []Layer
	ints     []int32
	tiles    []Tile
	markers  []Marker

	dir          string
	assetsLoaded bool
}

// Rooms returns every room in document order.
func (w *World) Rooms() []Room {
	if w == nil {
		return nil
	}
	return w.rooms
}

// Room returns room i or nil.
func (w *World) Room(i int) *Room {
	if w == nil || i < 0 || i >= len(w.rooms) {
		return nil
	}
	return &w.rooms[i]
}

// Tilesets returns the tileset definitions.
func (w *World) Tilesets() []Tileset {
	if w == nil {
		return nil
	}
	return w.tilesets
}

// Layers returns the layers of room i in document order (topmost first).
func (w *World) Layers(i int) []Layer {
	r := w.Room(i)
	if r == nil {
		return nil
	}
	return w.layers[r.FirstLayer : r.FirstLayer+r.NumLayers]
}

// IntGrid returns the row-major cell values of an intgrid layer.
func (w *World) IntGrid(l *Layer) []int32 {
	if w == nil || l == nil || l.Kind != LayerIntGrid {
		return nil
	}
	return w.ints[l.Off : l.Off+l.Len]
}

// Tiles returns the visual tiles of a tile layer.
func (w *World) Tiles(l *Layer) []Tile {
	if w == nil || l == nil || l.Kind != LayerTiles {
		return nil
	}
	return w.tiles[l.Off : l.Off+l.Len]
}

// Markers returns the entity markers of an entity layer.
func (w *World) Markers(l *Layer) []Marker {
	if w == nil || l == nil || l.Kind != LayerEntities {
		return nil
	}
	return w.markers[l.Off : l.Off+l.Len]
}

// Tileset resolves a tile layer's tileset, nil if it has none.
func (w *World) Tileset(l *Layer) *Tileset {
	if w == nil || l == nil || l.Tileset < 0 || int(l.Tileset) >= len(w.tilesets) {
		return nil
	}
	return &w.tilesets[l.Tileset]
}

// String resolves a string reference owned by the world.
func (w *World) String(s arena.Str) string {
	if w == nil || w.arena == nil {
		return ""
	}
	return w.arena.String(s)
}

// CollisionLayer returns the collision layer of room i, nil if it has none.
func (w *World) CollisionLayer(i int) *Layer {
	r := w.Room(i)
	if r == nil || r.Collision == NoLayer {
		return nil
	}
	return &w.layers[r.Collision]
}

// SolidAt reports whether cell (cx, cy) of room i's collision layer is
// solid. Cells outside the grid are open.
func (w *World) SolidAt(i, cx, cy int) bool {
	l := w.CollisionLayer(i)
	if l == nil || cx < 0 || cy < 0 || cx >= int(l.WidthCells) || cy >= int(l.HeightCells) {
		return false
	}
	return w.ints[int(l.Off)+cy*int(l.WidthCells)+cx] == CellSolid
}

// MarkersNamed yields every marker with the given identifier together with
// the index of its room.
func (w *World) MarkersNamed(name string) iter.Seq2[int, *Marker] {
	return func(yield func(int, *Marker) bool) {
		if w == nil {
			return
		}
		for ri := range w.rooms {
			for _, l := range w.Layers(ri) {
				if l.Kind != LayerEntities {
					continue
				}
				for mi := l.Off; mi < l.Off+l.Len; mi++ {
					m := &w.markers[mi]
					if w.arena.String(m.Identifier) != name {
						continue
					}
					if !yield(ri, m) {
						return
					}
				}
			}
		}
	}
}

// Bounds is the union of every room rectangle.
func (w *World) Bounds() common.Rect {
	if w == nil || len(w.rooms) == 0 {
		return common.Rect{}
	}
	b := w.rooms[0].Box()
	for i := 1; i < len(w.rooms); i++ {
		r := w.rooms[i].Box()
		x0, y0 := min(b.X, r.X), min(b.Y, r.Y)
		x1, y1 := max(b.Right(), r.Right()), max(b.Bottom(), r.Bottom())
		b = common.Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
	}
	return b
}

// Dir is the directory tileset paths are relative to.
func (w *World) Dir() string { return w.dir }

// MemoryUsed reports the bytes held in the world arena.
func (w *World) MemoryUsed() int {
	if w == nil || w.arena == nil {
		return 0
	}
	return w.arena.Pos()
}

// Release frees the world. Every slice and string obtained from it becomes
// invalid.
func (w *World) Release() error {
	if w == nil || w.arena == nil {
		return nil
	}
	err := w.arena.Release()
	*w = World{}
	return err
}

func newTileset() Tileset {
	return Tileset{Slot: atlas.InvalidSlot}
}
