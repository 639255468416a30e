// Package config provides YAML-based configuration loading for Star Pusher.
package config

// StarPusherConfig contains all tunable settings.
type StarPusherConfig struct {
	Rules   RulesConfig   `yaml:"rules"`
	Session SessionConfig `yaml:"session"`
	Display DisplayConfig `yaml:"display"`
}

// RulesConfig selects rule variants.
type RulesConfig struct {
	AtomicTurns bool `yaml:"atomic_turns"`
}

// SessionConfig controls level progression and undo.
type SessionConfig struct {
	UndoLimit  int  `yaml:"undo_limit"`
	WrapLevels bool `yaml:"wrap_levels"`
	StartLevel int  `yaml:"start_level"` // 1-based
}

// DisplayConfig controls cosmetic rendering.
type DisplayConfig struct {
	DecorationPct int  `yaml:"decoration_pct"`
	ShowHelp      bool `yaml:"show_help"`
}

// DifficultyPreset is a named bundle of session settings.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty validates a preset name. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, bool) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, true
	case DifficultyEasy:
		return DifficultyEasy, true
	case DifficultyHard:
		return DifficultyHard, true
	default:
		return "", false
	}
}

// ApplyPreset adjusts undo depth for a difficulty preset.
// Normal keeps whatever the config file says.
func ApplyPreset(cfg *StarPusherConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Session.UndoLimit = 1000
	case DifficultyHard:
		cfg.Session.UndoLimit = 0
	}
}
