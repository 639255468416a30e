package main

import (
	"fmt"

	"github.com/vovakirdan/starpusher/internal/games/starpusher"
	"github.com/vovakirdan/starpusher/internal/registry"
)

// createGame looks up a pack by ID.
func createGame(packID string) (*starpusher.Game, error) {
	if !registry.Exists(packID) {
		return nil, fmt.Errorf("unknown pack %q (run 'starpusher list' to see available packs)", packID)
	}
	g, err := registry.Create(packID)
	if err != nil {
		return nil, fmt.Errorf("creating game: %w", err)
	}
	sp, ok := g.(*starpusher.Game)
	if !ok {
		return nil, fmt.Errorf("%q is not a Star Pusher pack", packID)
	}
	return sp, nil
}

// checkLevel validates a 1-indexed --level flag against a pack.
func checkLevel(g *starpusher.Game, level int) error {
	if level < 0 || level > g.LevelCount() {
		return fmt.Errorf("pack %q has levels 1-%d, got %d", g.ID(), g.LevelCount(), level)
	}
	return nil
}
