package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/starpusher/internal/config"
	"github.com/vovakirdan/starpusher/internal/core"
	"github.com/vovakirdan/starpusher/internal/games/starpusher"
	"github.com/vovakirdan/starpusher/internal/games/starpusher/levels"
	"github.com/vovakirdan/starpusher/internal/platform/tui"
	"github.com/vovakirdan/starpusher/internal/storage"
)

// logger is the process logger, ready after setup.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "starpusher",
})

// setup runs before every command: logging, game config and extra packs.
func setup(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)

	if _, ok := config.ParseDifficulty(flagDifficulty); !ok {
		return fmt.Errorf("invalid --difficulty %q (want easy, normal or hard)", flagDifficulty)
	}
	if flagConfig != "" {
		if _, err := config.Load(flagConfig); err != nil {
			return err
		}
	}
	switch flagTheme {
	case "", "default":
		tui.SetTheme(tui.DefaultTheme())
	case "mono":
		tui.SetTheme(tui.MonochromeTheme())
	default:
		return fmt.Errorf("invalid --theme %q (want default or mono)", flagTheme)
	}

	starpusher.SetConfigPath(flagConfig)
	starpusher.SetDifficultyPreset(flagDifficulty)

	if flagLevels != "" {
		if err := loadExtraPacks(flagLevels); err != nil {
			return err
		}
	}
	return nil
}

// loadExtraPacks registers a level file, or every level file in a directory.
func loadExtraPacks(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("--levels: %w", err)
	}

	var packs []*levels.Pack
	if info.IsDir() {
		var fileErrs []error
		packs, fileErrs, err = levels.LoadDir(path)
		if err != nil {
			return fmt.Errorf("--levels: %w", err)
		}
		for _, fe := range fileErrs {
			logger.Warn("skipping level file", "err", fe)
		}
	} else {
		p, err := levels.LoadFile(path)
		if err != nil {
			return err
		}
		packs = append(packs, p)
	}

	for _, p := range packs {
		if err := starpusher.RegisterPack(p); err != nil {
			return err
		}
		logger.Debug("loaded pack", "id", p.ID, "levels", p.Len(), "file", p.FilePath)
	}
	return nil
}

// openStore opens the solves database. Failure is logged and play goes on
// without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open solves database", "err", err)
		return nil
	}
	return store
}

// runtimeConfig builds the platform config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// tuiLogger returns the logger for full screen play. Logs go to --log-file,
// or nowhere, since stderr shares the terminal with the game.
func tuiLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}
	}
	path := flagLogFile
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		logger.Warn("could not open log file", "err", err)
		return log.New(io.Discard), func() {}
	}
	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "starpusher",
		Level:           logger.GetLevel(),
	})
	return l, func() { f.Close() }
}
