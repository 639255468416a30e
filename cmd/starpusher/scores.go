package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starpusher/internal/storage"
)

var (
	flagClearScores bool
	flagScoreLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores <pack> [level]",
	Short: "Show best solutions for a pack",
	Long: `Display the best solution of every solved level in a pack, or the
fastest solves of a single level.

Examples:
  starpusher scores classic
  starpusher scores classic 3
  starpusher scores classic --clear`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all solves of the pack")
	scoresCmd.Flags().IntVar(&flagScoreLimit, "limit", 10, "Number of solves to show for a level")
}

func runScores(cmd *cobra.Command, args []string) error {
	g, err := createGame(args[0])
	if err != nil {
		return err
	}
	packID := g.ID()

	level := 0
	if len(args) == 2 {
		level, err = strconv.Atoi(args[1])
		if err != nil || level < 1 {
			return fmt.Errorf("invalid level %q", args[1])
		}
		if err := checkLevel(g, level); err != nil {
			return err
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening solves database: %w", err)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearSolves(packID); err != nil {
			return fmt.Errorf("clearing solves: %w", err)
		}
		fmt.Printf("Cleared all solves for %s.\n", g.Title())
		return nil
	}

	if level > 0 {
		return printLevelSolves(store, packID, level, g.LevelName(level-1))
	}

	bests, err := store.PackBests(packID)
	if err != nil {
		return fmt.Errorf("retrieving solves: %w", err)
	}

	fmt.Printf("Best Solutions - %s\n", g.Title())
	fmt.Println()

	if len(bests) == 0 {
		fmt.Println("No levels solved yet.")
		fmt.Println()
		fmt.Printf("Play 'starpusher play %s' to set the first record!\n", packID)
		return nil
	}

	fmt.Printf("  %-3s  %-30s  %-6s  %-12s  %s\n", "#", "Level", "Best", "By", "Solves")
	fmt.Printf("  %-3s  %-30s  %-6s  %-12s  %s\n", "-", "-----", "----", "--", "------")
	for _, b := range bests {
		fmt.Printf("  %-3d  %-30s  %-6d  %-12s  %d\n", b.Level+1, b.LevelName, b.Steps, b.Player, b.Solves)
	}

	stats, err := store.GetPackStats(packID)
	if err == nil && stats != nil {
		fmt.Println()
		fmt.Printf("Solved %d of %d levels, %d solves in total", stats.LevelsSolved, g.LevelCount(), stats.Solves)
		if !stats.LastPlayed.IsZero() {
			fmt.Printf(", last on %s", stats.LastPlayed.Format("2006-01-02 15:04"))
		}
		fmt.Println()
	}
	return nil
}

func printLevelSolves(store *storage.Store, packID string, level int, name string) error {
	solves, err := store.TopSolves(packID, level-1, flagScoreLimit)
	if err != nil {
		return fmt.Errorf("retrieving solves: %w", err)
	}

	fmt.Printf("Level %d - %s\n", level, name)
	fmt.Println()

	if len(solves) == 0 {
		fmt.Println("Not solved yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-12s  %s\n", "Rank", "Steps", "Player", "Date")
	fmt.Printf("  %-4s  %-6s  %-12s  %s\n", "----", "-----", "------", "----")
	for i, s := range solves {
		fmt.Printf("  %-4d  %-6d  %-12s  %s\n", i+1, s.Steps, s.Player, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
