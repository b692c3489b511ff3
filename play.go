package main

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/milk9111/roomscroller/system"
)

var flagWatch bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the game window",
	Long: `Open a window and play the configured world.

Controls:
  A/D, arrows    - Move
  Space/Z        - Jump (hold for height)
  X/J            - Shoot
  Enter/Esc      - Pause
  Tab            - Toggle collision overlay

With --watch the world file and ./prefabs are reloaded when they change.

Examples:
  roomscroller play
  roomscroller play --world worlds/world1.ldtk --watch`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Hot reload the world and prefabs")
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx, err := system.NewContext(contextOptions())
	if err != nil {
		return err
	}
	defer ctx.Close()

	var reload *system.Reloader
	if flagWatch || cfg.World.Watch {
		if reload, err = ctx.Watch(); err != nil {
			log.Warn("hot reload disabled", "err", err)
		} else {
			defer reload.Close()
		}
	}

	scale := max(cfg.Window.Scale, 1)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Camera.ViewWidth*scale, cfg.Camera.ViewHeight*scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Window.Fullscreen)
	ebiten.SetTPS(cfg.Timing.TargetFPS)

	game := NewGame(ctx, reload, cfg)
	defer game.Close()
	if err := ebiten.RunGame(game); err != nil {
		return err
	}

	log.Info("session over", "frames", ctx.Stats.Frames, "overruns", game.Overruns(), "deaths", ctx.Stats.Deaths, "kills", ctx.Stats.Kills)
	recordSession("play", ctx.Stats, game.Overruns())
	return nil
}
