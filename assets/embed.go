package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/milk9111/roomscroller/atlas"
	"github.com/milk9111/roomscroller/overlay"
)

//go:embed *.png *.json
var embedded embed.FS

// Files resolves asset paths as given on disk and by base name in the
// embedded copy.
var Files = overlay.FS{Embedded: embedded, Clean: cleanAssetPath}

// LoadImage decodes the PNG at path, from disk or embedded.
func LoadImage(path string) (image.Image, error) {
	b, err := Files.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", path, err)
	}
	return img, nil
}

// Registrar adds sprites to an atlas. Files present on disk win so art can
// be edited without a rebuild; anything missing is taken from the copy
// embedded in the binary.
type Registrar struct {
	atlas  *atlas.Atlas
	logger *log.Logger
}

func NewRegistrar(a *atlas.Atlas) *Registrar {
	return &Registrar{atlas: a, logger: log.WithPrefix("assets")}
}

func (r *Registrar) IsPacked() bool {
	return r.atlas.IsPacked()
}

// Find returns the slot already registered under key.
func (r *Registrar) Find(key string) uint32 {
	return r.atlas.Find(key)
}

// Add registers imagePath (and sheetPath when non-empty) under key.
func (r *Registrar) Add(key, imagePath, sheetPath string) uint32 {
	if r.atlas.IsPacked() {
		return atlas.InvalidSlot
	}
	img, onDisk := Files.DiskPath(imagePath)
	sheet, sheetOnDisk := Files.DiskPath(sheetPath)
	if onDisk && (sheetPath == "" || sheetOnDisk) {
		return r.atlas.Add(key, img, sheet)
	}

	decoded, err := LoadImage(imagePath)
	if err != nil {
		r.logger.Warn("sprite not found on disk or embedded", "key", key, "path", imagePath, "err", err)
		return atlas.InvalidSlot
	}
	slot := r.atlas.AddImage(key, decoded)
	if slot == atlas.InvalidSlot || sheetPath == "" {
		return slot
	}
	data, err := Files.ReadFile(sheetPath)
	if err != nil {
		r.logger.Warn("sprite sheet not found", "key", key, "path", sheetPath, "err", err)
		return slot
	}
	if err := r.atlas.AttachSheet(slot, data); err != nil {
		r.logger.Warn("could not parse sprite sheet", "key", key, "path", sheetPath, "err", err)
	}
	return slot
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(filepath.Clean(path))
	if idx := strings.LastIndex(s, "assets/"); idx >= 0 {
		return s[idx+len("assets/"):]
	}
	if filepath.IsAbs(path) || strings.HasPrefix(s, "../") {
		return filepath.Base(path)
	}
	return s
}
