package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milk9111/roomscroller/storage"
)

var flagLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded sessions",
	Long: `Show the most recent play and sim sessions from the session database.

Examples:
  roomscroller history
  roomscroller history -n 50`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of sessions to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	path, err := cfg.StoragePath()
	if err != nil {
		return err
	}
	store, err := storage.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, err := store.RecentSessions(flagLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions recorded yet.")
		return nil
	}
	fmt.Fprintf(out, "  %-5s  %-4s  %-16s  %8s  %8s  %8s  %6s  %5s  %s\n",
		"ID", "Mode", "Date", "Frames", "Seconds", "Overruns", "Deaths", "Kills", "World")
	for _, s := range sessions {
		fmt.Fprintf(out, "  %-5d  %-4s  %-16s  %8d  %8.1f  %8d  %6d  %5d  %s\n",
			s.ID, s.Mode, s.CreatedAt.Format("2006-01-02 15:04"), s.Frames, s.Seconds, s.Overruns, s.Deaths, s.Kills, s.World)
	}
	return nil
}
