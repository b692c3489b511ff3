package levels

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/roomscroller/atlas"
)

type fakeRegistrar struct {
	packed bool
	fail   bool
	paths  []string
}

func (f *fakeRegistrar) Add(key, imagePath, sheetPath string) uint32 {
	if f.fail {
		return atlas.InvalidSlot
	}
	f.paths = append(f.paths, imagePath)
	return uint32(len(f.paths) + 6)
}

func (f *fakeRegistrar) IsPacked() bool { return f.packed }

func TestLoadAssetsOnce(t *testing.T) {
	w := parseTest(t, document(t, level("Room_0", 0, 0, tileLayer(1))), WithDir("world"))

	reg := &fakeRegistrar{}
	require.NoError(t, w.LoadAssets(reg))
	require.Equal(t, []string{filepath.Join("world", "tiles.png")}, reg.paths)
	require.Equal(t, uint32(7), w.Tilesets()[0].Slot)

	require.ErrorIs(t, w.LoadAssets(reg), ErrAssetsLoaded)
	require.Len(t, reg.paths, 1)
}

func TestLoadAssetsAfterPack(t *testing.T) {
	w := parseTest(t, document(t, level("Room_0", 0, 0, tileLayer(1))))

	require.ErrorIs(t, w.LoadAssets(&fakeRegistrar{packed: true}), ErrAtlasPacked)
	require.Equal(t, atlas.InvalidSlot, w.Tilesets()[0].Slot)
}

func TestLoadAssetsMissingImage(t *testing.T) {
	w := parseTest(t, document(t, level("Room_0", 0, 0, tileLayer(1))))

	require.Error(t, w.LoadAssets(&fakeRegistrar{fail: true}))
	require.Equal(t, atlas.InvalidSlot, w.Tilesets()[0].Slot)
}

func TestAdoptSlots(t *testing.T) {
	w := parseTest(t, document(t, level("Room_0", 0, 0, tileLayer(1))))

	missing := w.AdoptSlots(func(key string) uint32 {
		if key == "Tiles" {
			return 3
		}
		return atlas.InvalidSlot
	})
	require.Zero(t, missing)
	require.Equal(t, uint32(3), w.Tilesets()[0].Slot)
	require.ErrorIs(t, w.LoadAssets(&fakeRegistrar{}), ErrAssetsLoaded)

	require.Equal(t, 1, w.AdoptSlots(func(string) uint32 { return atlas.InvalidSlot }))
}
