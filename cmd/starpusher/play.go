package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starpusher/internal/core"
	"github.com/vovakirdan/starpusher/internal/platform/tui"
	"github.com/vovakirdan/starpusher/internal/storage"
)

var (
	flagLevel  int
	flagPlayer string
)

var playCmd = &cobra.Command{
	Use:   "play <pack>",
	Short: "Play a level pack",
	Long: `Start playing the specified pack. Without --level a level picker is
shown first.

Controls:
  Arrows/hjkl  - Move (pushes a star)
  W/X          - Turn left/right (swings a carried star)
  Space        - Grab or release the star in front
  U/Ctrl+Z     - Undo
  R/Backspace  - Restart level
  N/B          - Next/previous level
  Esc          - Back to the level picker
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Deep undo (1000 moves)
  normal - Undo depth from the config file
  hard   - No undo

Examples:
  starpusher play classic
  starpusher play switches --level 2
  starpusher play classic --difficulty hard`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Level to start at (1-indexed, skips the picker)")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name recorded with solves (default: $USER)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	packID := args[0]

	// Validate before touching the terminal
	g, err := createGame(packID)
	if err != nil {
		return err
	}
	if err := checkLevel(g, flagLevel); err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	_, err = playPack(store, packID, runtimeConfig(), flagLevel)
	return err
}

// playPack runs the level picker and game for one pack until the player
// backs out of the picker or quits. level skips the picker the first time.
func playPack(store *storage.Store, packID string, cfg core.RuntimeConfig, level int) (quit bool, err error) {
	gameLog, closeLog := tuiLogger()
	defer closeLog()

	for {
		if level == 0 {
			sel, quit, err := tui.RunLevelSelector(store, packID, cfg)
			if err != nil || quit {
				return true, err
			}
			if sel == nil {
				return false, nil
			}
			level = sel.Level
		}

		game, err := createGame(packID)
		if err != nil {
			return true, err
		}
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		back, err := tui.Run(game, store, cfg, tui.RunOptions{
			Logger:     gameLog,
			Player:     flagPlayer,
			StartLevel: level,
		})
		if err != nil || !back {
			return true, err
		}
		level = 0 // Esc goes back to the picker
	}
}
