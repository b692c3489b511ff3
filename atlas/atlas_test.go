package atlas

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/roomscroller/arena"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func newAtlas(t *testing.T, w, h int) *Atlas {
	t.Helper()
	a, err := New(w, h, nil)
	require.NoError(t, err)
	t.Cleanup(a.Release)
	return a
}

func TestAddFindPack(t *testing.T) {
	dir := t.TempDir()
	red := color.RGBA{R: 255, A: 255}
	path := writePNG(t, dir, "player.png", solid(8, 4, red))

	a := newAtlas(t, 32, 32)
	player := a.Add("player", path, "")
	require.Equal(t, uint32(0), player)
	pixel := a.AddImage("", solid(1, 1, color.RGBA{G: 255, A: 255}))
	require.Equal(t, uint32(1), pixel)
	require.Equal(t, "sprite1", a.Sprite(pixel).Key)

	require.Equal(t, player, a.Find("player"))
	require.Equal(t, InvalidSlot, a.Find("missing"))

	require.NoError(t, a.Pack())
	require.True(t, a.IsPacked())

	s := a.Sprite(player)
	require.True(t, s.Placed)
	require.Equal(t, image.Rect(0, 0, 8, 4), s.Rect())
	require.Equal(t, red, a.RGBA().RGBAAt(s.X+3, s.Y+2))

	p := a.Sprite(pixel)
	require.True(t, p.Placed)
	require.Equal(t, 8, p.X, "shorter sprite follows on the same shelf")
}

func TestAddFailsClosed(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "a.png", solid(2, 2, color.RGBA{A: 255}))

	a := newAtlas(t, 16, 16)
	require.Equal(t, InvalidSlot, a.Add("nofile", filepath.Join(dir, "nope.png"), ""))
	require.Equal(t, 0, a.Len())

	require.NoError(t, a.Pack())
	require.Equal(t, InvalidSlot, a.Add("late", path, ""))
	require.Equal(t, InvalidSlot, a.AddImage("late", solid(1, 1, color.RGBA{})))
	require.ErrorIs(t, a.Pack(), ErrPacked)
}

func TestAddFullAtlas(t *testing.T) {
	a := newAtlas(t, 256, 256)
	img := solid(1, 1, color.RGBA{A: 255})
	for i := 0; i < MaxSprites; i++ {
		require.NotEqual(t, InvalidSlot, a.AddImage("", img))
	}
	require.Equal(t, InvalidSlot, a.AddImage("", img))
	require.Equal(t, MaxSprites, a.Len())
}

func TestPackReportsMisses(t *testing.T) {
	a := newAtlas(t, 8, 8)
	big := a.AddImage("big", solid(16, 4, color.RGBA{A: 255}))
	small := a.AddImage("small", solid(4, 4, color.RGBA{A: 255}))

	err := a.Pack()
	require.ErrorIs(t, err, ErrNoSpace)
	require.True(t, a.IsPacked())
	require.False(t, a.Sprite(big).Placed)
	require.True(t, a.Sprite(small).Placed)
}

func TestAddWithSheet(t *testing.T) {
	dir := t.TempDir()
	img := writePNG(t, dir, "enemy.png", solid(32, 16, color.RGBA{B: 255, A: 255}))
	sheet := filepath.Join(dir, "enemy.json")
	require.NoError(t, os.WriteFile(sheet, []byte(sampleSheet), 0o644))

	a := newAtlas(t, 64, 64)
	slot := a.Add("enemy", img, sheet)
	require.NotEqual(t, InvalidSlot, slot)
	ss := a.Sheet(slot)
	require.NotNil(t, ss)
	require.Len(t, ss.Frames, 2)
	require.Nil(t, a.Sheet(InvalidSlot))
}

func TestAttachSheet(t *testing.T) {
	a := newAtlas(t, 64, 64)
	slot := a.AddImage("enemy", solid(32, 16, color.RGBA{G: 255, A: 255}))
	require.Nil(t, a.Sheet(slot))

	require.Error(t, a.AttachSheet(slot+1, []byte(sampleSheet)))
	require.NoError(t, a.AttachSheet(slot, []byte(sampleSheet)))
	require.Len(t, a.Sheet(slot).Frames, 2)

	require.NoError(t, a.Pack())
	require.ErrorIs(t, a.AttachSheet(slot, []byte(sampleSheet)), ErrPacked)
}

func TestKeysOutliveReleasedArena(t *testing.T) {
	a := newAtlas(t, 64, 64)
	world, err := arena.New(1 << 20)
	require.NoError(t, err)

	key := world.String(world.PushString("Tiles"))
	slot := a.AddImage(key, solid(4, 4, color.RGBA{G: 255, A: 255}))
	require.NotEqual(t, InvalidSlot, slot)
	require.NoError(t, world.Release())

	for i := 0; i < 2; i++ {
		require.Equal(t, InvalidSlot, a.Find("enemy"))
		require.Equal(t, slot, a.Find("Tiles"))
	}
}
