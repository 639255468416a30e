// Package mcp exposes Star Pusher as Model Context Protocol tools so an
// agent can browse packs and play levels over stdio.
package mcp

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vovakirdan/starpusher/internal/core"
	"github.com/vovakirdan/starpusher/internal/games/starpusher"
	"github.com/vovakirdan/starpusher/internal/registry"
	"github.com/vovakirdan/starpusher/internal/storage"
)

const instructions = `Star Pusher - MCP Interface

Push every star ($) onto a goal (.) to solve a level. You (@) push one star
at a time. "grab" picks up the star in front of you, and "turn" swings a
carried star around you. Doors (d) open while something rests on any
button (b).

Symbols: # wall, @ you, + you on a goal, $ star, * star on a goal,
. goal, b button, d closed door, p you on a button, s star on a button.

AVAILABLE TOOLS:
- list_packs: List level packs and your progress
- select_level: Switch pack and/or level
- game_state: Show the current level
- move: Step up/down/left/right, pushing a star if one is in the way
- turn: Turn left (counter-clockwise) or right (clockwise)
- grab: Grab or release the star you are facing
- undo: Take back the last action
- reset_level: Restart the current level`

// Config holds configuration for the MCP server.
type Config struct {
	Pack    string // Pack to open first
	Level   int    // 1-indexed start level, 0 for the configured one
	Player  string // Name recorded with solves
	Seed    int64
	Version string
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Pack:    "classic",
		Player:  "mcp",
		Version: "1.0.0",
	}
}

// Server holds one game and serves it as MCP tools. Tool calls are
// serialized with a mutex.
type Server struct {
	config    Config
	store     *storage.Store
	logger    *log.Logger
	mcpServer *server.MCPServer

	mu   sync.Mutex
	game *starpusher.Game
}

// NewServer creates the server and opens the configured pack.
// store may be nil, in which case solves are not kept.
func NewServer(cfg Config, store *storage.Store, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.Player == "" {
		cfg.Player = "mcp"
	}
	s := &Server{
		config: cfg,
		store:  store,
		logger: logger,
	}

	g, err := s.openPack(cfg.Pack)
	if err != nil {
		return nil, err
	}
	if cfg.Level > 0 {
		if err := g.SelectLevel(cfg.Level - 1); err != nil {
			return nil, err
		}
	}
	s.game = g

	s.mcpServer = server.NewMCPServer(
		"Star Pusher",
		cfg.Version,
		server.WithToolCapabilities(true),
		server.WithInstructions(instructions),
	)
	s.registerTools()
	return s, nil
}

// openPack creates and resets a game for the pack.
func (s *Server) openPack(packID string) (*starpusher.Game, error) {
	g, err := registry.Create(packID)
	if err != nil {
		return nil, err
	}
	sp, ok := g.(*starpusher.Game)
	if !ok {
		return nil, fmt.Errorf("mcp: pack %q is not a Star Pusher pack", packID)
	}
	seed := s.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sp.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: seed})
	return sp, nil
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves MCP over stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	s.logger.Info("starting MCP stdio server", "pack", s.game.ID())
	return server.ServeStdio(s.mcpServer)
}

func emptySchema() mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: map[string]any{},
	}
}

// registerTools registers all MCP tools.
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_packs",
		Description: "List the level packs with their level count and how many levels have been solved",
		InputSchema: emptySchema(),
	}, s.handleListPacks)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "select_level",
		Description: "Open a level. Omit pack to stay in the current pack",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"pack": map[string]any{
					"type":        "string",
					"description": "Pack ID from list_packs",
				},
				"level": map[string]any{
					"type":        "integer",
					"description": "Level number, starting at 1",
				},
			},
			Required: []string{"level"},
		},
	}, s.handleSelectLevel)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Show the current level map, facing, step count and whether it is solved",
		InputSchema: emptySchema(),
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Step one cell, pushing a star that is in the way. A solved level advances on the next move",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"direction": map[string]any{
					"type":        "string",
					"enum":        []string{"up", "down", "left", "right"},
					"description": "Direction to move",
				},
			},
			Required: []string{"direction"},
		},
	}, s.handleMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "turn",
		Description: "Turn in place. A carried star swings around with you",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"direction": map[string]any{
					"type":        "string",
					"enum":        []string{"left", "right"},
					"description": "left is counter-clockwise, right is clockwise",
				},
			},
			Required: []string{"direction"},
		},
	}, s.handleTurn)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "grab",
		Description: "Grab the star you are facing, or release the one you carry",
		InputSchema: emptySchema(),
	}, s.handleAction(core.ActionGrab))

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "undo",
		Description: "Take back the last action",
		InputSchema: emptySchema(),
	}, s.handleAction(core.ActionUndo))

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_level",
		Description: "Restart the current level",
		InputSchema: emptySchema(),
	}, s.handleAction(core.ActionReset))
}

// Tool handlers

func (s *Server) handleListPacks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var stats map[string]*storage.PackStats
	if s.store != nil {
		var err error
		if stats, err = s.store.GetAllPackStats(); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	s.mu.Lock()
	current := s.game.ID()
	s.mu.Unlock()

	var b strings.Builder
	b.WriteString("Level packs:\n\n")
	for _, p := range registry.List() {
		solved := 0
		if st, ok := stats[p.ID]; ok {
			solved = st.LevelsSolved
		}
		marker := " "
		if p.ID == current {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %s (%s): %d levels, %d solved\n", marker, p.ID, p.Title, p.Levels, solved)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) handleSelectLevel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	packID := request.GetString("pack", "")
	level := request.GetInt("level", 1)

	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.game
	if packID != "" && packID != g.ID() {
		ng, err := s.openPack(packID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		g = ng
	}
	if err := g.SelectLevel(level - 1); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.game = g
	return mcp.NewToolResultText(formatSnapshot(g.Snapshot())), nil
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return mcp.NewToolResultText(formatSnapshot(s.game.Snapshot())), nil
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, err := starpusher.ParseCommand("move", request.GetString("direction", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.apply(a), nil
}

func (s *Server) handleTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, err := starpusher.ParseCommand("turn", request.GetString("direction", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.apply(a), nil
}

// handleAction returns a handler for a tool without arguments.
func (s *Server) handleAction(a core.Action) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.apply(a), nil
	}
}

// apply runs one action, stores solves and describes the outcome.
func (s *Server) apply(a core.Action) *mcp.CallToolResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.game.Snapshot()
	after, events := s.game.Apply(a)
	s.recordSolves(events)

	var b strings.Builder
	for _, ev := range events {
		switch ev.Kind {
		case core.EventLevelSolved:
			fmt.Fprintf(&b, "Level solved in %d steps! Any move opens the next level.\n", ev.Steps)
		case core.EventLevelChanged:
			fmt.Fprintf(&b, "Now on level %d.\n", ev.Level+1)
		case core.EventLevelReset:
			b.WriteString("Level restarted.\n")
		}
	}
	if len(events) == 0 && unchanged(before, after) {
		fmt.Fprintf(&b, "Nothing happened: %s was not possible here.\n", describeAction(a))
	}
	b.WriteString("\n")
	b.WriteString(formatSnapshot(after))
	return mcp.NewToolResultText(b.String())
}

// recordSolves stores the solves among events. Failures are logged only.
func (s *Server) recordSolves(events []core.Event) {
	for _, ev := range events {
		if ev.Kind != core.EventLevelSolved {
			continue
		}
		s.logger.Info("level solved", "pack", s.game.ID(), "level", ev.Level+1, "steps", ev.Steps)
		if s.store == nil {
			continue
		}
		_, err := s.store.SaveSolve(storage.Solve{
			PackID:    s.game.ID(),
			Level:     ev.Level,
			LevelName: s.game.LevelName(ev.Level),
			Steps:     ev.Steps,
			Player:    s.config.Player,
		})
		if err != nil {
			s.logger.Warn("save solve", "err", err)
		}
	}
}

func unchanged(a, b starpusher.Snapshot) bool {
	return a.Level == b.Level && a.Steps == b.Steps && a.Facing == b.Facing &&
		(a.Carried == nil) == (b.Carried == nil) && slices.Equal(a.Rows, b.Rows)
}

func describeAction(a core.Action) string {
	switch a {
	case core.ActionTurnLeft, core.ActionTurnRight:
		return "turning"
	case core.ActionGrab:
		return "grabbing"
	case core.ActionUndo:
		return "undo"
	default:
		return "moving " + a.String()
	}
}

// formatSnapshot renders a snapshot as text for the agent.
func formatSnapshot(s starpusher.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pack: %s  Level %d of %d: %s\n", s.Pack, s.Level, s.Levels, s.LevelName)
	status := "in progress"
	if s.Solved {
		status = "SOLVED"
	}
	fmt.Fprintf(&b, "Steps: %d  Status: %s\n", s.Steps, status)
	carrying := "nothing"
	if s.Carried != nil {
		carrying = fmt.Sprintf("star at (%d,%d)", s.Carried.X, s.Carried.Y)
	}
	fmt.Fprintf(&b, "Position: (%d,%d)  Facing: %s  Carrying: %s\n", s.Player.X, s.Player.Y, s.Facing, carrying)
	doors := "closed"
	if s.DoorsOpen {
		doors = "open"
	}
	fmt.Fprintf(&b, "Doors: %s  Undo available: %v\n\n", doors, s.CanUndo)
	for _, row := range s.Rows {
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}
