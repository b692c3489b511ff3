package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/milk9111/roomscroller/assets"
	"github.com/milk9111/roomscroller/atlas"
	"github.com/milk9111/roomscroller/levels"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [world]",
	Short: "Print the structure of an LDtk world",
	Long: `Load a world and print its tilesets, rooms, layers and entity
markers. Tilesets that cannot be found on disk or in the binary and tile
layers without a tileset are reported.

Examples:
  roomscroller inspect
  roomscroller inspect worlds/world1.ldtk`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := cfg.World.Path
	if len(args) == 1 {
		path = args[0]
	}
	w, err := levels.LoadWorld(path,
		levels.WithCapacity(cfg.World.ArenaMB<<20),
		levels.WithLogger(log.WithPrefix("levels")),
	)
	if err != nil {
		return err
	}
	defer w.Release()

	// register tilesets against a throwaway atlas to see which resolve
	a, err := atlas.New(cfg.Atlas.Width, cfg.Atlas.Height, nil)
	if err != nil {
		return err
	}
	defer a.Release()
	assetsErr := w.LoadAssets(assets.NewRegistrar(a))

	out := cmd.OutOrStdout()
	printWorld(out, path, w)
	if assetsErr != nil {
		fmt.Fprintf(out, "\n%v\n", assetsErr)
	}
	return nil
}

func printWorld(out io.Writer, path string, w *levels.World) {
	b := w.Bounds()
	fmt.Fprintf(out, "%s: %d rooms, bounds %.0fx%.0f at (%.0f, %.0f), %d bytes\n",
		path, len(w.Rooms()), b.Width, b.Height, b.X, b.Y, w.MemoryUsed())

	fmt.Fprintf(out, "\nTilesets (paths relative to %s)\n", w.Dir())
	for _, ts := range w.Tilesets() {
		status := "ok"
		if ts.Slot == atlas.InvalidSlot {
			status = "MISSING"
		}
		fmt.Fprintf(out, "  %-12s uid %-4d %dpx cells %dx%d  %s  [%s]\n",
			w.String(ts.Identifier), ts.UID, ts.CellSize, ts.WidthCells, ts.HeightCells, w.String(ts.RelPath), status)
	}

	for ri, r := range w.Rooms() {
		fmt.Fprintf(out, "\nRoom %d %s  %dx%d at (%d, %d) depth %d\n",
			ri, w.String(r.Identifier), r.Width, r.Height, r.WorldX, r.WorldY, r.Depth)
		if r.Collision == levels.NoLayer {
			fmt.Fprintln(out, "  no collision layer")
		}
		layers := w.Layers(ri)
		for li := range layers {
			l := &layers[li]
			fmt.Fprintf(out, "  %-10s %-8s %dx%d@%d", w.String(l.Identifier), l.Kind, l.WidthCells, l.HeightCells, l.CellSize)
			switch l.Kind {
			case levels.LayerIntGrid:
				solid := 0
				for _, v := range w.IntGrid(l) {
					if v == levels.CellSolid {
						solid++
					}
				}
				fmt.Fprintf(out, "  %d solid cells\n", solid)
			case levels.LayerTiles:
				if ts := w.Tileset(l); ts != nil {
					fmt.Fprintf(out, "  %d tiles from %s\n", len(w.Tiles(l)), w.String(ts.Identifier))
				} else {
					fmt.Fprintf(out, "  %d tiles, NO TILESET\n", len(w.Tiles(l)))
				}
			case levels.LayerEntities:
				markers := w.Markers(l)
				fmt.Fprintf(out, "  %d markers\n", len(markers))
				for _, m := range markers {
					fmt.Fprintf(out, "    %-10s (%d, %d)\n", w.String(m.Identifier), m.WorldX, m.WorldY)
				}
			}
		}
	}
}
