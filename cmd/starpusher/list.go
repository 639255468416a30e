package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starpusher/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all level packs",
	Long:  `Shows every level pack: the embedded ones and any loaded with --levels.`,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	packs := registry.List()

	if len(packs) == 0 {
		fmt.Println("No level packs available.")
		return nil
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	solved := map[string]int{}
	if store != nil {
		if stats, err := store.GetAllPackStats(); err == nil {
			for id, st := range stats {
				solved[id] = st.LevelsSolved
			}
		}
	}

	fmt.Println("Level packs:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, p := range packs {
		maxIDLen = max(maxIDLen, len(p.ID))
		maxTitleLen = max(maxTitleLen, len(p.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Solved")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "------")

	for _, p := range packs {
		fmt.Printf("  %-*s  %-*s  %d/%d\n", maxIDLen, p.ID, maxTitleLen, p.Title, solved[p.ID], p.Levels)
	}

	fmt.Println()
	fmt.Println("Run 'starpusher play <id>' to play a pack.")
	return nil
}
