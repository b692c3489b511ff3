package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/roomscroller/atlas"
)

func TestCleanAssetPath(t *testing.T) {
	tests := map[string]string{
		"":                       "",
		"tiles.png":              "tiles.png",
		"assets/tiles.png":       "tiles.png",
		"../../assets/tiles.png": "tiles.png",
		"/opt/game/assets/p.png": "p.png",
		"../art/tiles.png":       "tiles.png",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			require.Equal(t, want, cleanAssetPath(in))
		})
	}
}

func TestEmbeddedImages(t *testing.T) {
	for _, name := range []string{"tiles.png", "player.png", "enemy.png", "projectile.png"} {
		img, err := LoadImage(name)
		require.NoError(t, err, name)
		require.Positive(t, img.Bounds().Dx())
	}
	_, err := LoadImage("missing.png")
	require.Error(t, err)
}

func newAtlas(t *testing.T) *atlas.Atlas {
	t.Helper()
	a, err := atlas.New(256, 256, nil)
	require.NoError(t, err)
	t.Cleanup(a.Release)
	return a
}

func TestRegistrarEmbeddedFallback(t *testing.T) {
	a := newAtlas(t)
	reg := NewRegistrar(a)

	slot := reg.Add("player", "nowhere/assets/player.png", "nowhere/assets/player.json")
	require.NotEqual(t, atlas.InvalidSlot, slot)
	sheet := a.Sheet(slot)
	require.NotNil(t, sheet)
	require.NotEmpty(t, sheet.Anims)

	require.Equal(t, atlas.InvalidSlot, reg.Add("ghost", "ghost.png", ""))
}

func TestRegistrarPrefersDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiles.png")
	img := image.NewRGBA(image.Rect(0, 0, 3, 5))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	a := newAtlas(t)
	reg := NewRegistrar(a)
	slot := reg.Add("tiles", path, "")
	require.NotEqual(t, atlas.InvalidSlot, slot)
	require.Equal(t, 3, a.Sprite(slot).W)
	require.Equal(t, 5, a.Sprite(slot).H)

	require.NoError(t, a.Pack())
	require.True(t, reg.IsPacked())
	require.Equal(t, atlas.InvalidSlot, reg.Add("late", "tiles.png", ""))
}
