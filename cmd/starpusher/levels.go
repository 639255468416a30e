package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starpusher/internal/games/starpusher/levels"
)

var flagShowLevels bool

var levelsCmd = &cobra.Command{
	Use:   "levels <pack>",
	Short: "List the levels of a pack",
	Long: `Lists the levels of a pack with your best solution for each.

With --show the levels are printed in level-file format, so the output
can be edited and loaded back with --levels.

Examples:
  starpusher levels classic
  starpusher levels switches --show > switches.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagShowLevels, "show", false, "Print the level maps")
}

func runLevels(cmd *cobra.Command, args []string) error {
	g, err := createGame(args[0])
	if err != nil {
		return err
	}
	pack := g.Pack()

	if flagShowLevels {
		fmt.Printf("; Title: %s\n\n", pack.Title)
		for _, lvl := range pack.Levels {
			if err := levels.Write(os.Stdout, lvl, lvl.Start); err != nil {
				return err
			}
		}
		return nil
	}

	best := map[int]int{}
	if store := openStore(); store != nil {
		bests, err := store.PackBests(pack.ID)
		store.Close()
		if err != nil {
			return fmt.Errorf("retrieving solves: %w", err)
		}
		for _, b := range bests {
			best[b.Level] = b.Steps
		}
	}

	fmt.Printf("%s (%s)\n", pack.Title, pack.ID)
	if pack.FilePath != "" {
		fmt.Printf("Loaded from %s\n", pack.FilePath)
	}
	fmt.Println()

	fmt.Printf("  %-3s  %-30s  %s\n", "#", "Level", "Best")
	fmt.Printf("  %-3s  %-30s  %s\n", "-", "-----", "----")
	for i, lvl := range pack.Levels {
		bestStr := "-"
		if steps, ok := best[i]; ok {
			bestStr = fmt.Sprintf("%d", steps)
		}
		fmt.Printf("  %-3d  %-30s  %s\n", i+1, lvl.Name, bestStr)
	}
	return nil
}
