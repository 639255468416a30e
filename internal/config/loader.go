package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "starpusher.yaml"

// Load loads Star Pusher configuration.
// Search order: customPath -> ~/.starpusher/configs/starpusher.yaml ->
// ./configs/starpusher.yaml -> embedded default -> hardcoded default.
// Only an unreadable or invalid customPath is an error; other candidates
// are skipped when they are missing or broken.
func Load(customPath string) (StarPusherConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return StarPusherConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return StarPusherConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath(fileName), filepath.Join("configs", fileName)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := parse(defaultStarPusherYAML); err == nil {
		return cfg, nil
	}
	return DefaultStarPusherConfig(), nil
}

// parse decodes YAML on top of the hardcoded defaults, so a file only needs
// the keys it changes, and clamps values into range.
func parse(data []byte) (StarPusherConfig, error) {
	cfg := DefaultStarPusherConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.normalize()
	return cfg, nil
}

func (c *StarPusherConfig) normalize() {
	c.Session.UndoLimit = max(c.Session.UndoLimit, 0)
	c.Session.StartLevel = max(c.Session.StartLevel, 1)
	c.Display.DecorationPct = min(max(c.Display.DecorationPct, 0), 100)
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".starpusher", "configs", name)
}
