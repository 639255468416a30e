// Package registry keeps the playable level packs.
// Each pack registers a factory in init(), so frontends (TUI, SSH, web, MCP)
// can list and start packs without knowing where the levels come from.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/starpusher/internal/core"
)

// Game is what a frontend drives. Implementations contain pure logic with no
// terminal or network dependencies; the platform handles input mapping,
// timing, and display.
type Game interface {
	// ID returns the pack identifier (e.g. "classic"). Used by the CLI and
	// as the key for stored solves.
	ID() string

	// Title returns a human-readable pack name.
	Title() string

	// Reset starts the pack over from the configured start level.
	Reset(cfg core.RuntimeConfig)

	// Step applies the actions collected during one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current level into the screen buffer.
	Render(dst *core.Screen)

	// State returns the current summary.
	State() core.GameState
}

// GameInfo describes a registered pack.
type GameInfo struct {
	ID     string
	Title  string
	Levels int
}

// LevelCounter is implemented by games that know how many levels they hold.
type LevelCounter interface {
	LevelCount() int
}

// Factory creates a fresh game instance.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a pack factory. Panics if the ID is already taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: pack %q already registered", id))
	}
	factories[id] = f

	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if lc, ok := g.(LevelCounter); ok {
		info.Levels = lc.LevelCount()
	}
	infos[id] = info
}

// List returns all registered packs sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a registered pack by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown pack %q", id)
	}
	return f(), nil
}

// Exists reports whether a pack with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
