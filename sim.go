package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/milk9111/roomscroller/system"
)

var (
	flagFrames int
	flagPaced  bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the game headless",
	Long: `Run the same tick as the window with no input and no rendering
backend, then print frame statistics. Without --paced every tick advances
by 1/60 s and the loop runs as fast as it can.

Examples:
  roomscroller sim --frames 600
  roomscroller sim --frames 300 --paced`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagFrames, "frames", 600, "Number of ticks to run (0 = until interrupted)")
	simCmd.Flags().BoolVar(&flagPaced, "paced", false, "Sleep to the configured frame rate")
}

func runSim(cmd *cobra.Command, args []string) error {
	game, err := system.NewContext(contextOptions())
	if err != nil {
		return err
	}
	defer game.Close()

	var reload *system.Reloader
	if cfg.World.Watch {
		if reload, err = game.Watch(); err != nil {
			return err
		}
		defer reload.Close()
	}

	var pacer *system.Pacer
	if flagPaced {
		pacer = system.NewPacer(cfg.Timing.TargetFPS, cfg.Timing.MaxDelta)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	stats := game.Run(ctx, flagFrames, pacer, reload)

	overruns := 0
	if pacer != nil {
		overruns = pacer.Overruns
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "world:     %s\n", cfg.World.Path)
	fmt.Fprintf(out, "frames:    %d (%.2fs simulated)\n", stats.Frames, stats.Seconds)
	fmt.Fprintf(out, "overruns:  %d\n", overruns)
	fmt.Fprintf(out, "deaths:    %d\n", stats.Deaths)
	fmt.Fprintf(out, "kills:     %d\n", stats.Kills)
	fmt.Fprintf(out, "enemies:   %d of %d alive\n", game.EnemiesAlive(), len(game.Enemies))
	fmt.Fprintf(out, "player:    %s at (%.2f, %.2f) room %d\n", game.Player.State, game.Player.Pos.X, game.Player.Pos.Y, game.Camera.Room)
	fmt.Fprintf(out, "draw cmds: %d (%d dropped)\n", game.Queue.Len(), game.Queue.Dropped())

	recordSession("sim", stats, overruns)
	return nil
}
