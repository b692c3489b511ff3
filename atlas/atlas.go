// Package atlas keeps the sprite slots of a single texture atlas. Images are
// decoded into a staging arena on Add and copied into the atlas pixels when
// the atlas is packed; after that no more sprites can be added.
package atlas

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/milk9111/roomscroller/arena"
	"github.com/milk9111/roomscroller/component"
)

const (
	// MaxSprites is the number of slots in an atlas.
	MaxSprites = 128
	// KeyLength bounds sprite keys.
	KeyLength = 32
	// MaxFileSize is the largest image file accepted by Add.
	MaxFileSize = 10 * 1000 * 1000
	// InvalidSlot is returned when a sprite could not be added or found.
	InvalidSlot = ^uint32(0)

	channels = 4
)

var (
	ErrPacked  = errors.New("atlas: already packed")
	ErrNoSpace = errors.New("atlas: sprites do not fit")
)

// Sprite is one slot. X/Y/W/H are valid once the atlas is packed; Placed
// reports whether the sprite made it into the atlas.
type Sprite struct {
	Key      string
	X, Y     int
	W, H     int
	Placed   bool
	HasSheet bool
	Sheet    component.SpriteSheet

	pix []byte
}

// Rect is the sprite's region inside the atlas image.
func (s *Sprite) Rect() image.Rectangle {
	return image.Rect(s.X, s.Y, s.X+s.W, s.Y+s.H)
}

// Atlas is a fixed set of sprite slots packed into one RGBA image.
type Atlas struct {
	width, height int

	sprites [MaxSprites]Sprite
	n       int
	packed  bool

	store   *arena.Arena
	staging *arena.Arena
	scratch *arena.Arena
	pix     []byte
	logger  *log.Logger
}

// New creates an atlas of w×h pixels. scratch is used for transient file
// reads and may be shared with other loaders.
func New(w, h int, scratch *arena.Arena) (*Atlas, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("atlas: invalid size %dx%d", w, h)
	}
	size := w * h * channels
	store, err := arena.New(size + 4<<20)
	if err != nil {
		return nil, fmt.Errorf("atlas: %w", err)
	}
	staging, err := arena.New(max(size*2, 64<<20))
	if err != nil {
		_ = store.Release()
		return nil, fmt.Errorf("atlas: %w", err)
	}
	if scratch == nil {
		scratch = staging
	}
	return &Atlas{
		width:   w,
		height:  h,
		store:   store,
		staging: staging,
		scratch: scratch,
		pix:     store.PushZero(size),
		logger:  log.WithPrefix("atlas"),
	}, nil
}

// Size returns the atlas dimensions in pixels.
func (a *Atlas) Size() (int, int) { return a.width, a.height }

// Len returns the number of used slots.
func (a *Atlas) Len() int { return a.n }

// IsPacked reports whether Pack has run.
func (a *Atlas) IsPacked() bool { return a.packed }

// Add decodes the PNG at imagePath and, when sheetPath is non-empty, the
// aseprite sheet describing its frames. An empty key is generated from the
// slot index. Returns InvalidSlot on any failure, including after Pack.
func (a *Atlas) Add(key, imagePath, sheetPath string) uint32 {
	if a == nil || a.packed || a.n >= MaxSprites {
		return InvalidSlot
	}
	img, err := a.decodeFile(imagePath)
	if err != nil {
		a.logger.Warn("could not add sprite", "path", imagePath, "error", err)
		return InvalidSlot
	}
	slot := a.AddImage(key, img)
	if slot == InvalidSlot || sheetPath == "" {
		return slot
	}
	sheet, err := LoadSheet(sheetPath, a.store)
	if err != nil {
		a.logger.Warn("could not load sprite sheet", "path", sheetPath, "error", err)
		return slot
	}
	a.sprites[slot].Sheet = sheet
	a.sprites[slot].HasSheet = true
	return slot
}

// AttachSheet parses aseprite sheet data for an existing slot. It is the
// in-memory counterpart of the sheetPath argument of Add.
func (a *Atlas) AttachSheet(slot uint32, data []byte) error {
	if a == nil || a.packed {
		return ErrPacked
	}
	if slot >= uint32(a.n) {
		return fmt.Errorf("atlas: invalid slot %d", slot)
	}
	sheet, err := ParseSheet(data, a.store)
	if err != nil {
		return err
	}
	a.sprites[slot].Sheet = sheet
	a.sprites[slot].HasSheet = true
	return nil
}

// AddImage stores an already decoded image.
func (a *Atlas) AddImage(key string, img image.Image) uint32 {
	if a == nil || a.packed || a.n >= MaxSprites || img == nil {
		return InvalidSlot
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return InvalidSlot
	}
	pix := a.staging.Push(w * h * channels)
	dst := &image.RGBA{Pix: pix, Stride: w * channels, Rect: image.Rect(0, 0, w, h)}
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)

	if key == "" {
		key = fmt.Sprintf("sprite%d", a.n)
	}
	if len(key) > KeyLength {
		key = key[:KeyLength]
	}
	// keys often point into a world arena that is released on reload
	key = strings.Clone(key)
	a.sprites[a.n] = Sprite{Key: key, W: w, H: h, pix: pix}
	a.n++
	return uint32(a.n - 1)
}

func (a *Atlas) decodeFile(path string) (image.Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%s is %d bytes, limit %d", path, info.Size(), MaxFileSize)
	}
	defer a.scratch.Scope().End()
	data, err := a.scratch.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return png.Decode(bytes.NewReader(data))
}

// Find does a linear search for key. Cache the result at load time rather
// than calling it per frame.
func (a *Atlas) Find(key string) uint32 {
	if a == nil {
		return InvalidSlot
	}
	if len(key) > KeyLength {
		key = key[:KeyLength]
	}
	for i := 0; i < a.n; i++ {
		if a.sprites[i].Key == key {
			return uint32(i)
		}
	}
	return InvalidSlot
}

// Sprite returns the slot, or nil for an invalid one.
func (a *Atlas) Sprite(slot uint32) *Sprite {
	if a == nil || slot >= uint32(a.n) {
		return nil
	}
	return &a.sprites[slot]
}

// Sheet returns the sprite sheet of slot, or nil if it has none.
func (a *Atlas) Sheet(slot uint32) *component.SpriteSheet {
	s := a.Sprite(slot)
	if s == nil || !s.HasSheet {
		return nil
	}
	return &s.Sheet
}

// Pack places every sprite with a shelf packer (tallest first), copies the
// pixels into the atlas and drops the staging memory. The atlas is packed
// afterwards even if some sprites did not fit; those are reported through
// ErrNoSpace and keep Placed == false.
func (a *Atlas) Pack() error {
	if a == nil {
		return nil
	}
	if a.packed {
		return ErrPacked
	}

	order := make([]int, a.n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return a.sprites[order[i]].H > a.sprites[order[j]].H
	})

	x, y, shelf := 0, 0, 0
	missed := 0
	for _, idx := range order {
		s := &a.sprites[idx]
		if x+s.W > a.width {
			x = 0
			y += shelf
			shelf = 0
		}
		if s.W > a.width || y+s.H > a.height {
			missed++
			s.pix = nil
			continue
		}
		s.X, s.Y = x, y
		s.Placed = true
		a.blit(s)
		x += s.W
		shelf = max(shelf, s.H)
	}

	a.packed = true
	a.staging.ClearDecommit()
	if missed > 0 {
		return fmt.Errorf("%w: %d of %d sprites not packed", ErrNoSpace, missed, a.n)
	}
	return nil
}

func (a *Atlas) blit(s *Sprite) {
	row := s.W * channels
	stride := a.width * channels
	for i := 0; i < s.H; i++ {
		dst := (s.Y+i)*stride + s.X*channels
		copy(a.pix[dst:dst+row], s.pix[i*row:(i+1)*row])
	}
	s.pix = nil
}

// RGBA exposes the packed pixels. The image aliases arena memory.
func (a *Atlas) RGBA() *image.RGBA {
	return &image.RGBA{Pix: a.pix, Stride: a.width * channels, Rect: image.Rect(0, 0, a.width, a.height)}
}

// Release frees the atlas memory.
func (a *Atlas) Release() {
	if a == nil {
		return
	}
	_ = a.staging.Release()
	_ = a.store.Release()
	a.pix = nil
	a.n = 0
}
