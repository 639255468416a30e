package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/starpusher/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a pack and level picker",
	Long: `Start Star Pusher in interactive menu mode.

Pick a pack, then a level. Esc in a level goes back to the level picker,
Esc in the level picker goes back to the pack list.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Best solutions
  Esc          - Back
  Q            - Quit

Examples:
  starpusher menu
  starpusher menu --difficulty easy
  starpusher menu --db ./solves.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		if menuResult.PackID == "" {
			return nil
		}

		quit, err := playPack(store, menuResult.PackID, cfg, 0)
		if err != nil {
			logger.Error("play failed", "pack", menuResult.PackID, "err", err)
			continue
		}
		if quit {
			return nil
		}
	}
}
