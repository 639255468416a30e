package mcp

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vovakirdan/starpusher/internal/core"
	_ "github.com/vovakirdan/starpusher/internal/games/starpusher"
	"github.com/vovakirdan/starpusher/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.Store) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	store, err := storage.Open(filepath.Join(t.TempDir(), "solves.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := DefaultConfig()
	cfg.Seed = 1
	cfg.Player = "agent"
	s, err := NewServer(cfg, store, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s, store
}

func call(t *testing.T, h server.ToolHandlerFunc, name string, args map[string]any) (string, bool) {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	result, err := h(context.Background(), request)
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	if result == nil || len(result.Content) == 0 {
		t.Fatalf("%s: empty result", name)
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("%s: expected text content, got %T", name, result.Content[0])
	}
	return text.Text, result.IsError
}

func TestNewServer(t *testing.T) {
	s, _ := newTestServer(t)
	if s.MCPServer() == nil {
		t.Fatal("MCP server not created")
	}
	if s.game.ID() != "classic" || s.game.LevelIndex() != 0 {
		t.Errorf("opened %s level %d", s.game.ID(), s.game.LevelIndex())
	}

	cfg := DefaultConfig()
	cfg.Pack = "nope"
	if _, err := NewServer(cfg, nil, log.New(io.Discard)); err == nil {
		t.Error("unknown pack accepted")
	}
	cfg = DefaultConfig()
	cfg.Level = 42
	if _, err := NewServer(cfg, nil, log.New(io.Discard)); err == nil {
		t.Error("out of range level accepted")
	}
}

func TestGameStateTool(t *testing.T) {
	s, _ := newTestServer(t)
	text, isErr := call(t, s.handleGameState, "game_state", nil)
	if isErr {
		t.Fatalf("game_state error: %s", text)
	}
	for _, want := range []string{"Level 1 of 5: First Push", "Steps: 0", "Facing: down", "# @$. #"} {
		if !strings.Contains(text, want) {
			t.Errorf("game_state missing %q:\n%s", want, text)
		}
	}
}

func TestMoveToolSolvesAndRecords(t *testing.T) {
	s, store := newTestServer(t)

	text, isErr := call(t, s.handleMove, "move", map[string]any{"direction": "right"})
	if isErr {
		t.Fatalf("move error: %s", text)
	}
	if !strings.Contains(text, "Level solved in 1 steps") || !strings.Contains(text, "SOLVED") {
		t.Errorf("move result:\n%s", text)
	}

	top, err := store.TopSolves("classic", 0, 5)
	if err != nil || len(top) != 1 || top[0].Player != "agent" || top[0].Steps != 1 {
		t.Errorf("stored solves = %+v, %v", top, err)
	}

	text, _ = call(t, s.handleMove, "move", map[string]any{"direction": "up"})
	if !strings.Contains(text, "Now on level 2") {
		t.Errorf("move after solve:\n%s", text)
	}

	text, isErr = call(t, s.handleMove, "move", map[string]any{"direction": "north"})
	if !isErr || !strings.Contains(text, "north") {
		t.Errorf("bad direction = %q, isErr %v", text, isErr)
	}
}

func TestBlockedMoveIsReported(t *testing.T) {
	s, _ := newTestServer(t)
	call(t, s.handleMove, "move", map[string]any{"direction": "left"})
	text, _ := call(t, s.handleMove, "move", map[string]any{"direction": "left"})
	if !strings.Contains(text, "Nothing happened: moving left") {
		t.Errorf("blocked move:\n%s", text)
	}
}

func TestTurnGrabUndoReset(t *testing.T) {
	s, _ := newTestServer(t)

	text, isErr := call(t, s.handleTurn, "turn", map[string]any{"direction": "right"})
	if isErr || !strings.Contains(text, "Facing: left") {
		t.Errorf("turn right from down:\n%s", text)
	}
	text, _ = call(t, s.handleTurn, "turn", map[string]any{"direction": "left"})
	if !strings.Contains(text, "Facing: down") {
		t.Errorf("turn left:\n%s", text)
	}
	if _, isErr := call(t, s.handleTurn, "turn", map[string]any{"direction": "around"}); !isErr {
		t.Error("bad turn accepted")
	}

	// Facing down at an empty cell: nothing to grab.
	text, _ = call(t, s.handleAction(core.ActionGrab), "grab", nil)
	if !strings.Contains(text, "Nothing happened: grabbing") {
		t.Errorf("grab with nothing ahead:\n%s", text)
	}

	call(t, s.handleMove, "move", map[string]any{"direction": "down"})
	text, _ = call(t, s.handleAction(core.ActionUndo), "undo", nil)
	if !strings.Contains(text, "Steps: 0") || !strings.Contains(text, "# @$. #") {
		t.Errorf("undo:\n%s", text)
	}

	call(t, s.handleMove, "move", map[string]any{"direction": "down"})
	text, _ = call(t, s.handleAction(core.ActionReset), "reset_level", nil)
	if !strings.Contains(text, "Level restarted") || !strings.Contains(text, "Steps: 0") {
		t.Errorf("reset:\n%s", text)
	}
}

func TestSelectLevelTool(t *testing.T) {
	s, _ := newTestServer(t)

	text, isErr := call(t, s.handleSelectLevel, "select_level", map[string]any{"level": float64(3)})
	if isErr || !strings.Contains(text, "Level 3 of 5") {
		t.Errorf("select level 3:\n%s", text)
	}

	text, isErr = call(t, s.handleSelectLevel, "select_level", map[string]any{"pack": "switches", "level": float64(2)})
	if isErr || !strings.Contains(text, "Pack: switches  Level 2 of 5") {
		t.Errorf("select switches 2:\n%s", text)
	}

	if _, isErr := call(t, s.handleSelectLevel, "select_level", map[string]any{"level": float64(9)}); !isErr {
		t.Error("out of range level accepted")
	}
	if _, isErr := call(t, s.handleSelectLevel, "select_level", map[string]any{"pack": "nope", "level": float64(1)}); !isErr {
		t.Error("unknown pack accepted")
	}
	if s.game.ID() != "switches" || s.game.LevelIndex() != 1 {
		t.Errorf("failed selects changed the game: %s level %d", s.game.ID(), s.game.LevelIndex())
	}
}

func TestListPacksTool(t *testing.T) {
	s, store := newTestServer(t)
	if _, err := store.SaveSolve(storage.Solve{PackID: "switches", Level: 0, Steps: 3, Player: "x"}); err != nil {
		t.Fatal(err)
	}

	text, isErr := call(t, s.handleListPacks, "list_packs", nil)
	if isErr {
		t.Fatalf("list_packs error: %s", text)
	}
	if !strings.Contains(text, "* classic (Classic): 5 levels, 0 solved") {
		t.Errorf("classic line missing:\n%s", text)
	}
	if !strings.Contains(text, "  switches (Switches): 5 levels, 1 solved") {
		t.Errorf("switches line missing:\n%s", text)
	}
}
