package levels

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/milk9111/roomscroller/arena"
)

var (
	// ErrLoad wraps every failure to read or decode a level document.
	ErrLoad = errors.New("levels: load")
)

// Option configures Load, LoadFS and Parse.
type Option func(*loadOptions)

type loadOptions struct {
	logger   *log.Logger
	scratch  *arena.Arena
	capacity int
	dir      string
}

// WithLogger sets the logger used for non-fatal load warnings.
func WithLogger(l *log.Logger) Option {
	return func(o *loadOptions) { o.logger = l }
}

// WithScratch sets the arena the raw document is read into. It is rewound
// before Load returns.
func WithScratch(a *arena.Arena) Option {
	return func(o *loadOptions) { o.scratch = a }
}

// WithCapacity sets the reserved size of the world arena.
func WithCapacity(n int) Option {
	return func(o *loadOptions) { o.capacity = n }
}

// WithDir sets the directory tileset paths are resolved against.
func WithDir(dir string) Option {
	return func(o *loadOptions) { o.dir = dir }
}

func buildOptions(opts []Option) loadOptions {
	o := loadOptions{capacity: arena.DefaultCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.WithPrefix("levels")
	}
	return o
}

// Load reads and parses the LDtk document at path.
func Load(path string, opts ...Option) (*World, error) {
	o := buildOptions(opts)
	if o.dir == "" {
		o.dir = filepath.Dir(path)
	}

	scratch := o.scratch
	if scratch == nil {
		var err error
		scratch, err = arena.New(16 << 20)
		if err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrLoad, path, err)
		}
		defer func() { _ = scratch.Release() }()
	}
	defer scratch.Scope().End()

	data, err := scratch.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrLoad, path, err)
	}
	w, err := parse(data, o)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrLoad, path, err)
	}
	return w, nil
}

// LoadFS reads and parses an LDtk document from fsys.
func LoadFS(fsys fs.FS, name string, opts ...Option) (*World, error) {
	o := buildOptions(opts)
	if o.dir == "" {
		o.dir = filepath.Dir(filepath.FromSlash(name))
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrLoad, name, err)
	}
	w, err := parse(data, o)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrLoad, name, err)
	}
	return w, nil
}

// Parse decodes an in-memory LDtk document.
func Parse(data []byte, opts ...Option) (*World, error) {
	w, err := parse(data, buildOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return w, nil
}

type ldtkDoc struct {
	Defs struct {
		Tilesets []ldtkTileset `json:"tilesets"`
	} `json:"defs"`
	Levels []ldtkLevel `json:"levels"`
}

type ldtkTileset struct {
	CWid         int32  `json:"__cWid"`
	CHei         int32  `json:"__cHei"`
	Identifier   string `json:"identifier"`
	UID          int32  `json:"uid"`
	RelPath      string `json:"relPath"`
	TileGridSize int32  `json:"tileGridSize"`
	Spacing      int32  `json:"spacing"`
	Padding      int32  `json:"padding"`
}

type ldtkLevel struct {
	Identifier     string      `json:"identifier"`
	IID            string      `json:"iid"`
	WorldX         int32       `json:"worldX"`
	WorldY         int32       `json:"worldY"`
	WorldDepth     int32       `json:"worldDepth"`
	PxWid          int32       `json:"pxWid"`
	PxHei          int32       `json:"pxHei"`
	LayerInstances []ldtkLayer `json:"layerInstances"`
}

type ldtkLayer struct {
	Identifier      string       `json:"__identifier"`
	Type            string       `json:"__type"`
	CWid            int32        `json:"__cWid"`
	CHei            int32        `json:"__cHei"`
	GridSize        int32        `json:"__gridSize"`
	Opacity         float32      `json:"__opacity"`
	TilesetDefUID   *int32       `json:"__tilesetDefUid"`
	IntGridCsv      []int32      `json:"intGridCsv"`
	GridTiles       []ldtkTile   `json:"gridTiles"`
	AutoLayerTiles  []ldtkTile   `json:"autoLayerTiles"`
	EntityInstances []ldtkEntity `json:"entityInstances"`
}

type ldtkTile struct {
	Px  [2]int32 `json:"px"`
	Src [2]int32 `json:"src"`
	F   uint8    `json:"f"`
	T   int32    `json:"t"`
	A   *float32 `json:"a"`
}

type ldtkEntity struct {
	Identifier string   `json:"__identifier"`
	DefUID     int32    `json:"defUid"`
	WorldX     *int32   `json:"__worldX"`
	WorldY     *int32   `json:"__worldY"`
	Width      int32    `json:"width"`
	Height     int32    `json:"height"`
	Px         [2]int32 `json:"px"`
}

func layerKind(l *ldtkLayer) (LayerKind, error) {
	switch l.Type {
	case "IntGrid":
		return LayerIntGrid, nil
	case "Tiles", "AutoLayer":
		return LayerTiles, nil
	case "Entities":
		return LayerEntities, nil
	default:
		return 0, fmt.Errorf("layer %q: unknown type %q", l.Identifier, l.Type)
	}
}

func (l *ldtkLayer) tiles() []ldtkTile {
	if l.Type == "AutoLayer" {
		return l.AutoLayerTiles
	}
	return l.GridTiles
}

func parse(data []byte, o loadOptions) (*World, error) {
	var doc ldtkDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(doc.Levels) == 0 {
		return nil, errors.New("document has no levels")
	}

	// validate and size every table up front so each is one arena slice
	var nLayers, nInts, nTiles, nMarkers int
	for li := range doc.Levels {
		lvl := &doc.Levels[li]
		if lvl.PxWid <= 0 || lvl.PxHei <= 0 {
			return nil, fmt.Errorf("level %q: invalid size %dx%d", lvl.Identifier, lvl.PxWid, lvl.PxHei)
		}
		for i := range lvl.LayerInstances {
			l := &lvl.LayerInstances[i]
			kind, err := layerKind(l)
			if err != nil {
				return nil, fmt.Errorf("level %q: %w", lvl.Identifier, err)
			}
			if l.CWid < 0 || l.CHei < 0 || l.GridSize <= 0 {
				return nil, fmt.Errorf("level %q: layer %q: invalid grid %dx%d@%d", lvl.Identifier, l.Identifier, l.CWid, l.CHei, l.GridSize)
			}
			switch kind {
			case LayerIntGrid:
				if want := int(l.CWid) * int(l.CHei); len(l.IntGridCsv) != want {
					return nil, fmt.Errorf("level %q: layer %q: intGridCsv has %d cells, want %d", lvl.Identifier, l.Identifier, len(l.IntGridCsv), want)
				}
				nInts += len(l.IntGridCsv)
			case LayerTiles:
				nTiles += len(l.tiles())
			case LayerEntities:
				nMarkers += len(l.EntityInstances)
			}
		}
		nLayers += len(lvl.LayerInstances)
	}

	a, err := arena.New(o.capacity)
	if err != nil {
		return nil, err
	}
	w := &World{
		arena:    a,
		dir:      o.dir,
		tilesets: arena.PushSlice[Tileset](a, len(doc.Defs.Tilesets)),
		rooms:    arena.PushSlice[Room](a, len(doc.Levels)),
		layers:   arena.PushSlice[Layer](a, nLayers),
		ints:     arena.PushSlice[int32](a, nInts),
		tiles:    arena.PushSlice[Tile](a, nTiles),
		markers:  arena.PushSlice[Marker](a, nMarkers),
	}

	for i, def := range doc.Defs.Tilesets {
		ts := newTileset()
		ts.Identifier = a.PushString(def.Identifier)
		ts.RelPath = a.PushString(def.RelPath)
		ts.UID = def.UID
		ts.CellSize = def.TileGridSize
		ts.WidthCells = def.CWid
		ts.HeightCells = def.CHei
		ts.Padding = def.Padding
		ts.Spacing = def.Spacing
		w.tilesets[i] = ts
	}

	var layerAt, intAt, tileAt, markerAt uint32
	for ri := range doc.Levels {
		lvl := &doc.Levels[ri]
		room := &w.rooms[ri]
		room.Identifier = a.PushString(lvl.Identifier)
		room.IID = a.PushString(lvl.IID)
		room.WorldX, room.WorldY = lvl.WorldX, lvl.WorldY
		room.Width, room.Height = lvl.PxWid, lvl.PxHei
		room.Depth = lvl.WorldDepth
		room.FirstLayer = int32(layerAt)
		room.NumLayers = int32(len(lvl.LayerInstances))
		room.Collision = NoLayer

		// a layer named "Collision" wins over the first intgrid layer
		named := false
		for i := range lvl.LayerInstances {
			src := &lvl.LayerInstances[i]
			kind, _ := layerKind(src)
			layer := &w.layers[layerAt]
			*layer = Layer{
				Identifier:  a.PushString(src.Identifier),
				Kind:        kind,
				WidthCells:  src.CWid,
				HeightCells: src.CHei,
				CellSize:    src.GridSize,
				Opacity:     src.Opacity,
				Tileset:     NoTileset,
			}

			switch kind {
			case LayerIntGrid:
				layer.Off, layer.Len = intAt, uint32(len(src.IntGridCsv))
				copy(w.ints[intAt:], src.IntGridCsv)
				intAt += layer.Len
				switch {
				case strings.EqualFold(src.Identifier, "collision") && !named:
					room.Collision = int32(layerAt)
					named = true
				case room.Collision == NoLayer:
					room.Collision = int32(layerAt)
				}
			case LayerTiles:
				layer.Tileset = w.resolveTileset(src, lvl.Identifier, o.logger)
				tiles := src.tiles()
				layer.Off, layer.Len = tileAt, uint32(len(tiles))
				for k, t := range tiles {
					alpha := float32(1)
					if t.A != nil {
						alpha = *t.A
					}
					w.tiles[tileAt+uint32(k)] = Tile{
						LayerX: t.Px[0], LayerY: t.Px[1],
						SrcX: t.Src[0], SrcY: t.Src[1],
						ID:    t.T,
						Alpha: alpha,
						Flip:  t.F & (FlipX | FlipY),
					}
				}
				tileAt += layer.Len
			case LayerEntities:
				layer.Off, layer.Len = markerAt, uint32(len(src.EntityInstances))
				for k, e := range src.EntityInstances {
					m := Marker{
						Identifier: a.PushString(e.Identifier),
						DefUID:     e.DefUID,
						LayerX:     e.Px[0],
						LayerY:     e.Px[1],
						WorldX:     lvl.WorldX + e.Px[0],
						WorldY:     lvl.WorldY + e.Px[1],
						Width:      e.Width,
						Height:     e.Height,
					}
					if e.WorldX != nil && e.WorldY != nil {
						m.WorldX, m.WorldY = *e.WorldX, *e.WorldY
					}
					w.markers[markerAt+uint32(k)] = m
				}
				markerAt += layer.Len
			}
			layerAt++
		}
	}
	return w, nil
}

func (w *World) resolveTileset(l *ldtkLayer, level string, logger *log.Logger) int32 {
	if l.TilesetDefUID == nil {
		logger.Warn("tile layer has no tileset", "level", level, "layer", l.Identifier)
		return NoTileset
	}
	uid := *l.TilesetDefUID
	for i := range w.tilesets {
		if w.tilesets[i].UID == uid {
			return int32(i)
		}
	}
	logger.Warn("tileset not found", "uid", uid, "level", level, "layer", l.Identifier)
	return NoTileset
}
