package config

import (
	_ "embed"
)

//go:embed defaults/starpusher.yaml
var defaultStarPusherYAML []byte

// DefaultStarPusherConfig returns the hardcoded fallback configuration.
// It matches defaults/starpusher.yaml.
func DefaultStarPusherConfig() StarPusherConfig {
	return StarPusherConfig{
		Rules: RulesConfig{
			AtomicTurns: false,
		},
		Session: SessionConfig{
			UndoLimit:  100,
			WrapLevels: true,
			StartLevel: 1,
		},
		Display: DisplayConfig{
			DecorationPct: 20,
			ShowHelp:      true,
		},
	}
}
