package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starpusher/internal/core"
	"github.com/vovakirdan/starpusher/internal/registry"
	"github.com/vovakirdan/starpusher/internal/storage"
)

// levelNamer is implemented by games that can name their levels.
type levelNamer interface {
	LevelName(i int) string
}

// levelSelector is implemented by games that can jump to a level.
type levelSelector interface {
	SelectLevel(i int) error
}

// Model is the Bubble Tea model for playing a level pack.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	player     string
	config     core.RuntimeConfig
	startLevel int // 1-indexed, 0 keeps the game's own start level
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool // Esc pressed, caller should show the menu again
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     log.New(io.Discard),
		player:     defaultPlayer(),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// WithLogger sets the logger used for solve and level events.
func (m Model) WithLogger(logger *log.Logger) Model {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// WithPlayer sets the name recorded with solves.
func (m Model) WithPlayer(name string) Model {
	if name != "" {
		m.player = name
	}
	return m
}

// WithStartLevel makes the game open on the given level (1-indexed).
func (m Model) WithStartLevel(level int) Model {
	m.startLevel = level
	return m
}

// defaultPlayer returns the local user name.
func defaultPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	if ls, ok := m.game.(levelSelector); ok && m.startLevel > 0 {
		if err := ls.SelectLevel(m.startLevel - 1); err != nil {
			m.logger.Warn("select level", "err", err)
		}
	}
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.backToMenu = true
		return m, tea.Quit
	}

	m.inputFrame.Set(action)
	return m, nil
}

// handleResize processes window resize events. The level in progress is kept.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	for _, ev := range result.Events {
		m.handleEvent(ev)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// handleEvent records solves and logs level changes.
func (m Model) handleEvent(ev core.Event) {
	name := ""
	if ln, ok := m.game.(levelNamer); ok {
		name = ln.LevelName(ev.Level)
	}

	switch ev.Kind {
	case core.EventLevelSolved:
		m.logger.Info("level solved", "pack", m.game.ID(), "level", ev.Level+1, "name", name, "steps", ev.Steps)
		if m.store == nil {
			return
		}
		_, err := m.store.SaveSolve(storage.Solve{
			PackID:    m.game.ID(),
			Level:     ev.Level,
			LevelName: name,
			Steps:     ev.Steps,
			Player:    m.player,
		})
		if err != nil {
			// Best-effort save, game continues regardless
			m.logger.Warn("save solve", "err", err)
		}
	case core.EventLevelChanged:
		m.logger.Debug("level changed", "pack", m.game.ID(), "level", ev.Level+1, "name", name)
	case core.EventLevelReset:
		m.logger.Debug("level reset", "pack", m.game.ID(), "level", ev.Level+1)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".starpusher", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot dir", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot", "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the player left with Esc.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// RunOptions tunes a local game run.
type RunOptions struct {
	Logger     *log.Logger
	Player     string
	StartLevel int // 1-indexed, 0 for the configured start level
}

// Run starts the Bubble Tea program for the game. It reports whether the
// player asked to go back to the menu instead of quitting.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts RunOptions) (bool, error) {
	model := NewModel(game, store, cfg).
		WithLogger(opts.Logger).
		WithPlayer(opts.Player).
		WithStartLevel(opts.StartLevel)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}
