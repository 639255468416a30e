// Package starpusher provides the Star Pusher puzzle for the platform.
// It wraps the rules engine with level progression, input dispatch and
// rendering; every embedded level pack registers as its own game.
package starpusher

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/starpusher/internal/config"
	platformcore "github.com/vovakirdan/starpusher/internal/core"
	"github.com/vovakirdan/starpusher/internal/games/starpusher/core"
	"github.com/vovakirdan/starpusher/internal/games/starpusher/levels"
	"github.com/vovakirdan/starpusher/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// selectedStartLevel is consumed by the next Reset.
var selectedStartLevel int

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParseDifficulty(preset)
	if !ok {
		p = ""
	}
	difficultyPreset = p
}

// SetStartLevel sets the starting level (1-indexed). 0 means use the config.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

func init() {
	for _, p := range levels.Embedded() {
		registry.Register(p.ID, func() registry.Game {
			return New(p)
		})
	}
}

// RegisterPack makes a pack loaded at runtime available to every frontend.
func RegisterPack(p *levels.Pack) error {
	if p.Len() == 0 {
		return fmt.Errorf("starpusher: pack %q has no levels", p.ID)
	}
	if registry.Exists(p.ID) {
		return fmt.Errorf("starpusher: pack %q already registered", p.ID)
	}
	registry.Register(p.ID, func() registry.Game {
		return New(p)
	})
	return nil
}

// ErrNoSuchLevel is returned by SelectLevel for an index outside the pack.
var ErrNoSuchLevel = errors.New("starpusher: no such level")

// Game plays one level pack.
type Game struct {
	pack *levels.Pack

	cfg      config.StarPusherConfig
	fixedCfg *config.StarPusherConfig // set by WithConfig, skips file loading

	seed    int64
	session *core.Session

	levelIndex int
	solved     bool // current level finished, next key advances
	score      int  // levels solved since Reset
	paused     bool
	tick       uint64

	// decorations holds a glyph index+1 per outside floor cell, 0 for none.
	decorations []uint8
}

// New creates a game for the given pack. Call Reset before playing.
func New(pack *levels.Pack) *Game {
	return &Game{
		pack: pack,
		cfg:  config.DefaultStarPusherConfig(),
	}
}

// WithConfig pins the configuration instead of loading it on Reset.
func (g *Game) WithConfig(cfg config.StarPusherConfig) *Game {
	g.fixedCfg = &cfg
	return g
}

// ID returns the pack identifier.
func (g *Game) ID() string {
	return g.pack.ID
}

// Title returns the pack title.
func (g *Game) Title() string {
	return g.pack.Title
}

// LevelCount returns the number of levels in the pack.
func (g *Game) LevelCount() int {
	return g.pack.Len()
}

// Pack returns the level pack being played.
func (g *Game) Pack() *levels.Pack {
	return g.pack
}

// LevelName returns the name of level i (0-based), or "" if out of range.
func (g *Game) LevelName(i int) string {
	if i < 0 || i >= g.pack.Len() {
		return ""
	}
	return g.pack.Level(i).Name
}

// LevelIndex returns the current level, 0-based.
func (g *Game) LevelIndex() int {
	return g.levelIndex
}

// Session returns the rules session of the current level.
func (g *Game) Session() *core.Session {
	return g.session
}

// Reset loads the configuration and starts the pack from the start level.
func (g *Game) Reset(runtime platformcore.RuntimeConfig) {
	if g.fixedCfg != nil {
		g.cfg = *g.fixedCfg
	} else {
		cfg, err := config.Load(configPath)
		if err != nil {
			cfg = config.DefaultStarPusherConfig()
		}
		if difficultyPreset != "" {
			config.ApplyPreset(&cfg, difficultyPreset)
		}
		g.cfg = cfg
	}

	g.seed = runtime.Seed
	g.score = 0
	g.paused = false
	g.tick = 0

	if g.pack.Len() == 0 {
		g.session = nil
		return
	}

	start := g.cfg.Session.StartLevel
	if selectedStartLevel > 0 {
		start = selectedStartLevel
		selectedStartLevel = 0 // Reset after use
	}
	idx := start - 1
	if idx < 0 || idx >= g.pack.Len() {
		idx = 0
	}
	g.loadLevel(idx)
}

// SelectLevel jumps to a level (0-based) with a fresh state.
func (g *Game) SelectLevel(i int) error {
	if i < 0 || i >= g.pack.Len() {
		return fmt.Errorf("%w: %d (pack %s has %d)", ErrNoSuchLevel, i+1, g.pack.ID, g.pack.Len())
	}
	g.loadLevel(i)
	return nil
}

func (g *Game) loadLevel(i int) {
	g.levelIndex = i
	g.solved = false
	g.session = core.NewSession(g.pack.Level(i), core.Options{
		AtomicTurns: g.cfg.Rules.AtomicTurns,
		UndoLimit:   g.cfg.Session.UndoLimit,
	})
	g.decorate()
}

// decorate scatters cosmetic glyphs over outside floor. The RNG is seeded
// per level so revisiting a level shows the same scenery.
func (g *Game) decorate() {
	grid := g.session.Grid()
	g.decorations = make([]uint8, grid.W*grid.H)
	pct := g.cfg.Display.DecorationPct
	if pct <= 0 {
		return
	}
	rng := rand.New(rand.NewSource(g.seed + int64(g.levelIndex)))
	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			if grid.Get(core.C(x, y)) != core.TileFloorOutside {
				continue
			}
			if rng.Intn(100) < pct {
				g.decorations[y*grid.W+x] = uint8(rng.Intn(len(decorationGlyphs)) + 1)
			}
		}
	}
}

// Step applies the actions of one tick in arrival order.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++
	var events []platformcore.Event
	for _, a := range in.Actions {
		events = g.apply(a, events)
	}
	return platformcore.StepResult{State: g.State(), Events: events}
}

// Apply runs a single action and returns the resulting snapshot with the
// events it raised.
func (g *Game) Apply(a platformcore.Action) (Snapshot, []platformcore.Event) {
	events := g.apply(a, nil)
	return g.Snapshot(), events
}

func (g *Game) apply(a platformcore.Action, events []platformcore.Event) []platformcore.Event {
	if a == platformcore.ActionPause {
		g.paused = !g.paused
		return events
	}
	if g.paused || g.session == nil {
		return events
	}

	switch a {
	case platformcore.ActionReset:
		g.session.Reset()
		g.solved = false
		return append(events, g.event(platformcore.EventLevelReset))
	case platformcore.ActionNextLevel:
		return g.changeLevel(1, events)
	case platformcore.ActionPrevLevel:
		return g.changeLevel(-1, events)
	case platformcore.ActionUndo:
		if g.session.Undo() {
			g.solved = g.session.IsFinished()
		}
		return events
	}

	if g.solved {
		// Any play key moves on once the level is done.
		switch a {
		case platformcore.ActionUp, platformcore.ActionDown, platformcore.ActionLeft, platformcore.ActionRight,
			platformcore.ActionTurnLeft, platformcore.ActionTurnRight, platformcore.ActionGrab, platformcore.ActionConfirm:
			return g.changeLevel(1, events)
		}
		return events
	}

	switch a {
	case platformcore.ActionUp:
		g.session.Move(core.DirUp)
	case platformcore.ActionDown:
		g.session.Move(core.DirDown)
	case platformcore.ActionLeft:
		g.session.Move(core.DirLeft)
	case platformcore.ActionRight:
		g.session.Move(core.DirRight)
	case platformcore.ActionTurnLeft:
		g.session.Turn(1)
	case platformcore.ActionTurnRight:
		g.session.Turn(-1)
	case platformcore.ActionGrab:
		g.session.Grab()
	default:
		return events
	}

	// Checked after every attempt, blocked or not, so a level that starts
	// with every goal covered is solved by the first play key.
	if g.session.IsFinished() {
		g.solved = true
		g.score++
		events = append(events, g.event(platformcore.EventLevelSolved))
	}
	return events
}

// changeLevel moves by delta levels, wrapping around when configured.
func (g *Game) changeLevel(delta int, events []platformcore.Event) []platformcore.Event {
	n := g.pack.Len()
	next := g.levelIndex + delta
	if g.cfg.Session.WrapLevels {
		next = ((next % n) + n) % n
	} else if next < 0 || next >= n {
		return events
	}
	g.loadLevel(next)
	return append(events, g.event(platformcore.EventLevelChanged))
}

func (g *Game) event(kind platformcore.EventKind) platformcore.Event {
	return platformcore.Event{
		Kind:  kind,
		Level: g.levelIndex,
		Steps: g.session.Steps(),
	}
}

// State returns the current summary.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{
		Score:  g.score,
		Level:  g.levelIndex,
		Solved: g.solved,
		Paused: g.paused,
	}
	if g.session != nil {
		st.Steps = g.session.Steps()
	}
	return st
}
