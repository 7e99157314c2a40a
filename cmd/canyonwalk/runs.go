package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/canyonwalk/internal/registry"
	"github.com/vovakirdan/canyonwalk/internal/storage"
)

var flagClear bool

var runsCmd = &cobra.Command{
	Use:   "runs <map>",
	Short: "Show ranked runs for a map",
	Long: `Display the top 10 runs for the specified map. Completed runs rank
first by fewest steps, then by time. Unfinished runs follow by tiles explored.

Examples:
  canyonwalk runs canyon
  canyonwalk runs gorge --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all stored runs for the map")
}

func runRuns(_ *cobra.Command, args []string) error {
	mapID := args[0]

	if !registry.Exists(mapID) {
		return fmt.Errorf("unknown map %q, run 'canyonwalk list' to see available maps", mapID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(mapID); err != nil {
			return err
		}
		fmt.Printf("Cleared runs for %s.\n", mapID)
		return nil
	}

	runs, err := store.TopRuns(mapID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("Runs - %s\n", mapID)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'canyonwalk play %s' to set the first one!\n", mapID)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-8s  %-6s  %-5s  %s\n", "Rank", "Steps", "Time", "Tiles", "Goal", "Date")
	fmt.Printf("  %-4s  %-6s  %-8s  %-6s  %-5s  %s\n", "----", "-----", "----", "-----", "----", "----")

	for i, r := range runs {
		goal := "-"
		if r.Completed {
			goal = "yes"
		}
		fmt.Printf("  %-4d  %-6d  %-8s  %-6d  %-5s  %s\n",
			i+1, r.Steps, fmt.Sprintf("%.1fs", r.Duration.Seconds()), r.Explored, goal,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetMapStats(mapID); err == nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("%d runs, %d completed", stats.Runs, stats.Completed)
		if stats.Completed > 0 {
			fmt.Printf(", fewest steps %d", stats.FewestSteps)
		}
		fmt.Println()
	}
	return nil
}
