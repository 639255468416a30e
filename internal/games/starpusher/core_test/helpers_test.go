package core_test

import (
	"strings"
	"testing"

	"github.com/vovakirdan/starpusher/internal/games/starpusher/core"
)

// build creates a level from a small ASCII map using the level file symbols.
// Rows are padded to the widest row. No load-time validation is applied so
// fixtures can be as small as a test needs.
func build(t *testing.T, rows ...string) *core.Level {
	t.Helper()

	w := 0
	for _, r := range rows {
		w = max(w, len(r))
	}
	g := core.NewGrid(w, len(rows))
	var goals []core.Coord
	start := core.State{Facing: core.DirDown}
	players := 0

	for y, row := range rows {
		row += strings.Repeat(" ", w-len(row))
		for x, ch := range row {
			c := core.C(x, y)
			switch ch {
			case '#', 'x':
				g.Set(c, core.TileWall)
			case '@':
				start.Player = c
				players++
			case '+':
				start.Player = c
				goals = append(goals, c)
				players++
			case 'p':
				start.Player = c
				start.Buttons = append(start.Buttons, c)
				players++
			case '.':
				goals = append(goals, c)
			case '$':
				start.Boxes = append(start.Boxes, c)
			case '*':
				start.Boxes = append(start.Boxes, c)
				goals = append(goals, c)
			case 's':
				start.Boxes = append(start.Boxes, c)
				start.Buttons = append(start.Buttons, c)
			case 'b':
				start.Buttons = append(start.Buttons, c)
			case 'd':
				start.Doors = append(start.Doors, c)
			}
		}
	}
	if players != 1 {
		t.Fatalf("fixture must have exactly one player, got %d", players)
	}
	return core.NewLevel("fixture", g, goals, start)
}

func facing(l *core.Level, d core.Dir) *core.Level {
	l.Start.Facing = d
	return l
}

// checkInvariants fails the test if the state breaks a rule that must hold
// after every action.
func checkInvariants(t *testing.T, s *core.Session) {
	t.Helper()

	st := s.State()
	g := s.Grid()
	seen := make(map[core.Coord]bool)
	for _, b := range st.AllBoxes() {
		if !g.InBounds(b) {
			t.Fatalf("box %v out of bounds", b)
		}
		if g.IsWall(b) {
			t.Fatalf("box %v on a wall", b)
		}
		if seen[b] {
			t.Fatalf("two boxes share cell %v", b)
		}
		seen[b] = true
	}
	if st.Carried != nil {
		for _, b := range st.Boxes {
			if b == *st.Carried {
				t.Fatalf("carried box %v is also free", b)
			}
		}
	}
	if g.IsWall(st.Player) {
		t.Fatalf("player %v on a wall", st.Player)
	}
	if st.IsDoor(st.Player) && !st.IsDoorOpen(st.Player) {
		t.Fatalf("player %v inside a closed door", st.Player)
	}
}

func assertUnchanged(t *testing.T, before, after core.State) {
	t.Helper()
	if !before.Equal(after) {
		t.Errorf("state changed on rejected action:\nbefore %+v\nafter  %+v", before, after)
	}
}
