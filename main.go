// roomscroller is a 2D side-scrolling platformer built from LDtk worlds.
//
// Usage:
//
//	roomscroller play              - Open the game window
//	roomscroller sim --frames N    - Run the game headless and print stats
//	roomscroller inspect [world]   - Print the rooms, layers and markers of a world
//	roomscroller history           - List recorded sessions
//
// Global flags:
//
//	--config <path> - Config file (default: search ~/.roomscroller, ./configs)
//	--world <path>  - LDtk world to load, overrides world.path
//	--debug         - Debug logging and overlay
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/milk9111/roomscroller/config"
	"github.com/milk9111/roomscroller/storage"
	"github.com/milk9111/roomscroller/system"
)

var (
	flagConfig string
	flagWorld  string
	flagDebug  bool

	cfg config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "roomscroller",
	Short: "A room-based 2D side-scroller",
	Long: `roomscroller plays LDtk worlds made of rectangular rooms. The camera
follows the player and settles on the room it overlaps most.

Examples:
  roomscroller play
  roomscroller play --world worlds/world1.ldtk --debug
  roomscroller sim --frames 600
  roomscroller inspect worlds/world1.ldtk`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagWorld, "world", "", "LDtk world to load")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging and overlay")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(historyCmd)
}

// setup loads the config and configures the default logger for every
// subcommand.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagWorld != "" {
		cfg.World.Path = flagWorld
	}
	if flagDebug {
		cfg.Log.Level = "debug"
		cfg.Debug.Overlay = true
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	log.SetLevel(level)
	log.SetReportTimestamp(cfg.Log.Timestamps)
	log.SetTimeFormat(time.Kitchen)
	return nil
}

// contextOptions maps the config onto the game context.
func contextOptions() system.Options {
	return system.Options{
		WorldPath:   cfg.World.Path,
		WorldArena:  cfg.World.ArenaMB << 20,
		AtlasWidth:  cfg.Atlas.Width,
		AtlasHeight: cfg.Atlas.Height,
		ViewWidth:   cfg.Camera.ViewWidth,
		ViewHeight:  cfg.Camera.ViewHeight,
		CameraDecay: cfg.Camera.Decay,
		FrameTime:   cfg.Timing.FrameTime(),
		Logger:      log.WithPrefix("system"),
	}
}

// recordSession stores a finished run. Storage problems are logged, never
// fatal.
func recordSession(mode string, stats system.Stats, overruns int) {
	if !cfg.Storage.Enabled {
		return
	}
	path, err := cfg.StoragePath()
	if err != nil {
		log.Warn("session not recorded", "err", err)
		return
	}
	store, err := storage.Open(path)
	if err != nil {
		log.Warn("session not recorded", "err", err)
		return
	}
	defer store.Close()

	id, err := store.SaveSession(storage.Session{
		Mode:     mode,
		World:    cfg.World.Path,
		Frames:   stats.Frames,
		Overruns: overruns,
		Seconds:  stats.Seconds,
		Deaths:   stats.Deaths,
		Kills:    stats.Kills,
	})
	if err != nil {
		log.Warn("session not recorded", "err", err)
		return
	}
	log.Debug("session recorded", "id", id, "db", path)
}
