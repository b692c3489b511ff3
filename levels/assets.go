package levels

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/milk9111/roomscroller/atlas"
)

var (
	ErrAssetsLoaded = errors.New("levels: assets already loaded")
	ErrAtlasPacked  = errors.New("levels: atlas already packed")
)

// AssetRegistrar adds images to a texture atlas. *atlas.Atlas implements it.
type AssetRegistrar interface {
	Add(key, imagePath, sheetPath string) uint32
	IsPacked() bool
}

// LoadAssets registers every tileset image with reg and stores the returned
// slot. It must run once, before the atlas is packed. Tilesets whose image
// could not be added keep atlas.InvalidSlot.
func (w *World) LoadAssets(reg AssetRegistrar) error {
	if w == nil || w.arena == nil {
		return nil
	}
	if w.assetsLoaded {
		return ErrAssetsLoaded
	}
	if reg.IsPacked() {
		return ErrAtlasPacked
	}
	w.assetsLoaded = true

	var missing int
	for i := range w.tilesets {
		ts := &w.tilesets[i]
		rel := w.String(ts.RelPath)
		if rel == "" {
			missing++
			continue
		}
		path := rel
		if !filepath.IsAbs(path) {
			path = filepath.Join(w.dir, filepath.FromSlash(rel))
		}
		ts.Slot = reg.Add(w.String(ts.Identifier), path, "")
		if ts.Slot == atlas.InvalidSlot {
			log.WithPrefix("levels").Warn("tileset image not registered", "tileset", w.String(ts.Identifier), "path", path)
			missing++
		}
	}
	if missing > 0 {
		return fmt.Errorf("levels: %d of %d tilesets without an atlas slot", missing, len(w.tilesets))
	}
	return nil
}

// AdoptSlots resolves tileset slots by identifier against an atlas that was
// packed for an earlier world, as happens on hot reload. It returns the
// number of tilesets left without a slot.
func (w *World) AdoptSlots(find func(key string) uint32) int {
	if w == nil || w.arena == nil {
		return 0
	}
	w.assetsLoaded = true
	missing := 0
	for i := range w.tilesets {
		ts := &w.tilesets[i]
		ts.Slot = find(w.String(ts.Identifier))
		if ts.Slot == atlas.InvalidSlot {
			missing++
		}
	}
	return missing
}
