package starpusher

import (
	"strings"

	"github.com/vovakirdan/starpusher/internal/games/starpusher/core"
	"github.com/vovakirdan/starpusher/internal/games/starpusher/levels"
)

// Snapshot captures the visible game state for determinism tests and the
// remote frontends (web, MCP). Rows use the level file symbols.
type Snapshot struct {
	Pack      string       `json:"pack"`
	Level     int          `json:"level"` // 1-indexed for display
	Levels    int          `json:"levels"`
	LevelName string       `json:"level_name"`
	Rows      []string     `json:"rows"`
	Player    core.Coord   `json:"player"`
	Facing    string       `json:"facing"`
	Carried   *core.Coord  `json:"carried,omitempty"`
	Stars     []core.Coord `json:"stars"`
	Goals     []core.Coord `json:"goals"`
	DoorsOpen bool         `json:"doors_open"`
	Steps     int          `json:"steps"`
	Solved    bool         `json:"solved"`
	Score     int          `json:"score"`
	CanUndo   bool         `json:"can_undo"`
	Paused    bool         `json:"paused"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Pack:   g.pack.ID,
		Level:  g.levelIndex + 1,
		Levels: g.pack.Len(),
		Solved: g.solved,
		Score:  g.score,
		Paused: g.paused,
	}
	if g.session == nil {
		return snap
	}

	lvl := g.session.Level()
	st := g.session.State()
	snap.LevelName = lvl.Name
	snap.Rows = levels.Format(lvl, st)
	snap.Player = st.Player
	snap.Facing = strings.ToLower(st.Facing.String())
	snap.Carried = st.Carried
	snap.Stars = st.AllBoxes()
	snap.Goals = append([]core.Coord(nil), lvl.Goals...)
	snap.DoorsOpen = st.AnyButtonActive()
	snap.Steps = st.Steps
	snap.CanUndo = g.session.CanUndo()
	return snap
}
