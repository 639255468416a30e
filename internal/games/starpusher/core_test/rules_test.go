package core_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/vovakirdan/starpusher/internal/games/starpusher/core"
)

func TestPushIntoWallRejected(t *testing.T) {
	s := core.NewSession(build(t, "#@$#"), core.DefaultOptions())
	before := s.State()

	if s.Move(core.DirRight) {
		t.Fatal("expected push into wall to be rejected")
	}
	assertUnchanged(t, before, s.State())
	if s.Steps() != 0 {
		t.Errorf("expected 0 steps, got %d", s.Steps())
	}
}

func TestPushChainRejected(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		dir  core.Dir
	}{
		{"two in a row", []string{"@$$  "}, core.DirRight},
		{"three in a row", []string{"  $$$@"}, core.DirLeft},
		{"vertical", []string{"@", "$", "$", " "}, core.DirDown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := core.NewSession(build(t, tc.rows...), core.DefaultOptions())
			before := s.State()
			if s.Move(tc.dir) {
				t.Fatal("expected chain push to be rejected")
			}
			assertUnchanged(t, before, s.State())
		})
	}
}

func TestSinglePushOntoGoal(t *testing.T) {
	s := core.NewSession(build(t, "@$."), core.DefaultOptions())

	if s.IsFinished() {
		t.Fatal("level should not start finished")
	}
	if !s.Move(core.DirRight) {
		t.Fatal("expected push toward goal to succeed")
	}
	st := s.State()
	if st.Player != core.C(1, 0) {
		t.Errorf("player at %v, expected (1,0)", st.Player)
	}
	if !slices.Equal(st.Boxes, []core.Coord{core.C(2, 0)}) {
		t.Errorf("boxes at %v, expected [(2,0)]", st.Boxes)
	}
	if !s.IsFinished() {
		t.Error("expected level to be finished")
	}

	// The box now sits against the edge of the map.
	before := s.State()
	if s.Move(core.DirRight) {
		t.Fatal("expected push past the map edge to fail")
	}
	assertUnchanged(t, before, s.State())
	if s.Steps() != 1 {
		t.Errorf("expected 1 step, got %d", s.Steps())
	}
}

func TestPlayerCannotLeaveMap(t *testing.T) {
	s := core.NewSession(build(t, "@ "), core.DefaultOptions())
	for _, d := range []core.Dir{core.DirUp, core.DirLeft, core.DirDown} {
		if s.Move(d) {
			t.Errorf("expected move %v off the map to fail", d)
		}
	}
	if !s.Move(core.DirRight) {
		t.Error("expected move right to succeed")
	}
}

func TestStepCounterCountsMovesOnly(t *testing.T) {
	l := build(t,
		"      ",
		" @$ . ",
		"      ",
		"      ",
	)
	s := core.NewSession(l, core.DefaultOptions())

	type action struct {
		kind string
		dir  core.Dir
		sign int
	}
	script := []action{
		{kind: "move", dir: core.DirRight},
		{kind: "turn", sign: 1},
		{kind: "grab"},
		{kind: "move", dir: core.DirRight},
		{kind: "turn", sign: -1},
		{kind: "move", dir: core.DirDown},
		{kind: "grab"},
		{kind: "grab"},
		{kind: "move", dir: core.DirUp},
		{kind: "move", dir: core.DirUp},
		{kind: "move", dir: core.DirUp},
		{kind: "turn", sign: 1},
		{kind: "grab"},
		{kind: "move", dir: core.DirLeft},
	}

	accepted := 0
	for i, a := range script {
		switch a.kind {
		case "move":
			if s.Move(a.dir) {
				accepted++
			}
		case "turn":
			s.Turn(a.sign)
		case "grab":
			s.Grab()
		}
		checkInvariants(t, s)
		if s.Steps() != accepted {
			t.Fatalf("after action %d: steps = %d, expected %d", i, s.Steps(), accepted)
		}
	}
	if accepted == 0 {
		t.Fatal("script did not exercise any accepted move")
	}
}

func TestIsFinishedIgnoresGoalOrder(t *testing.T) {
	l := build(t,
		"*  ",
		" @ ",
		"  *",
	)
	reversed := &core.Level{
		Name:  l.Name,
		Grid:  l.Grid,
		Goals: []core.Coord{l.Goals[1], l.Goals[0]},
		Start: l.Start,
	}

	a := core.NewSession(l, core.DefaultOptions())
	b := core.NewSession(reversed, core.DefaultOptions())
	if !a.IsFinished() || !b.IsFinished() {
		t.Fatal("expected both goal orders to report finished")
	}
	// Idempotent.
	if !a.IsFinished() {
		t.Error("second query changed the answer")
	}

	for _, s := range []*core.Session{a, b} {
		s.Move(core.DirUp)
		s.Move(core.DirLeft)
		// Facing is still down after moving; grab nothing.
		if s.Grab() {
			t.Fatal("expected grab with nothing ahead to fail")
		}
	}
	if a.IsFinished() != b.IsFinished() {
		t.Error("goal order changed the result")
	}
}

func TestIsFinishedCountsCarriedBox(t *testing.T) {
	s := core.NewSession(facing(build(t, "@*"), core.DirRight), core.DefaultOptions())
	if !s.IsFinished() {
		t.Fatal("expected finished with box on goal")
	}
	if !s.Grab() {
		t.Fatal("expected grab to succeed")
	}
	if s.State().Carried == nil {
		t.Fatal("expected a carried box")
	}
	if !s.IsFinished() {
		t.Error("carried box on goal should still count")
	}
}

func TestIsFinishedFalseWhenGoalUncovered(t *testing.T) {
	s := core.NewSession(build(t, "*.$@"), core.DefaultOptions())
	if s.IsFinished() {
		t.Fatal("one goal is uncovered")
	}
	if !s.Move(core.DirLeft) {
		t.Fatal("expected push to succeed")
	}
	if !s.IsFinished() {
		t.Error("expected finished after covering last goal")
	}
}

func TestGrabReleaseRoundTrip(t *testing.T) {
	l := facing(build(t,
		"$$$",
		" @ ",
	), core.DirUp)
	s := core.NewSession(l, core.DefaultOptions())
	before := s.State()

	if !s.Grab() {
		t.Fatal("expected grab to succeed")
	}
	mid := s.State()
	if mid.Carried == nil || *mid.Carried != core.C(1, 0) {
		t.Fatalf("expected carried box at (1,0), got %v", mid.Carried)
	}
	if len(mid.Boxes) != 2 || slices.Contains(mid.Boxes, core.C(1, 0)) {
		t.Fatalf("carried box still in free pool: %v", mid.Boxes)
	}
	checkInvariants(t, s)

	if !s.Grab() {
		t.Fatal("expected release to succeed")
	}
	after := s.State()
	if !before.Equal(after) {
		t.Errorf("round trip changed state:\nbefore %+v\nafter  %+v", before, after)
	}
	if s.Steps() != 0 {
		t.Errorf("grab changed step counter to %d", s.Steps())
	}
}

func TestGrabNothingAhead(t *testing.T) {
	s := core.NewSession(build(t, "$@ "), core.DefaultOptions())
	before := s.State()
	if s.Grab() {
		t.Fatal("expected grab with empty cell ahead to fail")
	}
	assertUnchanged(t, before, s.State())
}

func TestDoorOpensWhenAnyButtonCovered(t *testing.T) {
	rows := []string{
		"b$   ",
		"  @d ",
		"b    ",
	}
	door := core.C(3, 1)

	t.Run("closed without buttons", func(t *testing.T) {
		s := core.NewSession(build(t, rows...), core.DefaultOptions())
		if s.IsDoorOpen(door) || s.AnyButtonActive() {
			t.Fatal("door should start closed")
		}
		before := s.State()
		if s.Move(core.DirRight) {
			t.Fatal("expected move into closed door to fail")
		}
		assertUnchanged(t, before, s.State())
	})

	t.Run("box on first button", func(t *testing.T) {
		s := core.NewSession(build(t, rows...), core.DefaultOptions())
		for _, d := range []core.Dir{core.DirUp, core.DirLeft} {
			if !s.Move(d) {
				t.Fatalf("expected move %v to succeed", d)
			}
		}
		if !s.AnyButtonActive() || !s.IsDoorOpen(door) {
			t.Fatal("box on button should open the door")
		}
		for _, d := range []core.Dir{core.DirDown, core.DirRight, core.DirRight} {
			if !s.Move(d) {
				t.Fatalf("expected move %v to succeed", d)
			}
			checkInvariants(t, s)
		}
		if s.State().Player != door {
			t.Errorf("player at %v, expected in the doorway", s.State().Player)
		}
	})

	t.Run("player on second button", func(t *testing.T) {
		s := core.NewSession(build(t, rows...), core.DefaultOptions())
		for _, d := range []core.Dir{core.DirDown, core.DirLeft, core.DirLeft} {
			if !s.Move(d) {
				t.Fatalf("expected move %v to succeed", d)
			}
		}
		if !s.IsDoorOpen(door) {
			t.Fatal("player on button should open the door")
		}
		s.Move(core.DirRight)
		if s.IsDoorOpen(door) {
			t.Error("door should close once the button is released")
		}
	})
}

func TestDoorOpenWhenOccupied(t *testing.T) {
	l := build(t, "@ d ")
	door := core.C(2, 0)
	if core.NewSession(l, core.DefaultOptions()).IsDoorOpen(door) {
		t.Fatal("empty door without buttons should be closed")
	}

	l.Start.Boxes = append(l.Start.Boxes, door)
	s := core.NewSession(l, core.DefaultOptions())
	if !s.IsDoorOpen(door) {
		t.Error("door holding a box should report open")
	}
	if s.IsDoorOpen(core.C(1, 0)) {
		t.Error("door state must not leak to other cells")
	}
}

func TestBoxCannotBePushedIntoClosedDoor(t *testing.T) {
	s := core.NewSession(build(t, "@$d "), core.DefaultOptions())
	before := s.State()
	if s.Move(core.DirRight) {
		t.Fatal("expected push into closed door to fail")
	}
	assertUnchanged(t, before, s.State())
}

func TestCarriedBoxMovesWithPlayer(t *testing.T) {
	rows := []string{
		"#$  ",
		" @  ",
		"    ",
	}

	t.Run("drag", func(t *testing.T) {
		s := core.NewSession(facing(build(t, rows...), core.DirUp), core.DefaultOptions())
		if !s.Grab() {
			t.Fatal("expected grab to succeed")
		}
		if !s.Move(core.DirRight) {
			t.Fatal("expected move to succeed")
		}
		st := s.State()
		if st.Player != core.C(2, 1) || *st.Carried != core.C(2, 0) {
			t.Errorf("player %v carried %v, expected (2,1) and (2,0)", st.Player, *st.Carried)
		}
		if st.Facing != core.DirUp {
			t.Errorf("moving changed facing to %v", st.Facing)
		}
		if s.Steps() != 1 {
			t.Errorf("expected 1 step, got %d", s.Steps())
		}
	})

	t.Run("carried box blocked by wall", func(t *testing.T) {
		s := core.NewSession(facing(build(t, rows...), core.DirUp), core.DefaultOptions())
		s.Grab()
		before := s.State()
		if s.Move(core.DirLeft) {
			t.Fatal("expected move to fail when carried box hits a wall")
		}
		assertUnchanged(t, before, s.State())
	})

	t.Run("carried box blocked by map edge", func(t *testing.T) {
		s := core.NewSession(facing(build(t, rows...), core.DirUp), core.DefaultOptions())
		s.Grab()
		before := s.State()
		if s.Move(core.DirUp) {
			t.Fatal("expected move to fail when carried box leaves the map")
		}
		assertUnchanged(t, before, s.State())
	})

	t.Run("backing away", func(t *testing.T) {
		s := core.NewSession(facing(build(t, rows...), core.DirUp), core.DefaultOptions())
		s.Grab()
		if !s.Move(core.DirDown) {
			t.Fatal("expected move away from carried box to succeed")
		}
		st := s.State()
		if st.Player != core.C(1, 2) || *st.Carried != core.C(1, 1) {
			t.Errorf("player %v carried %v, expected (1,2) and (1,1)", st.Player, *st.Carried)
		}
	})
}

func TestCarriedBoxPushesFreeBox(t *testing.T) {
	l := facing(build(t,
		" $$ ",
		"  @ ",
	), core.DirUp)
	s := core.NewSession(l, core.DefaultOptions())
	s.Grab()
	if !s.Move(core.DirLeft) {
		t.Fatal("expected move to succeed")
	}
	st := s.State()
	if !slices.Equal(st.Boxes, []core.Coord{core.C(0, 0)}) {
		t.Errorf("free boxes %v, expected [(0,0)]", st.Boxes)
	}
	if *st.Carried != core.C(1, 0) {
		t.Errorf("carried at %v, expected (1,0)", *st.Carried)
	}
	checkInvariants(t, s)

	// Pushing again would shove the free box off the map.
	before := s.State()
	if s.Move(core.DirLeft) {
		t.Fatal("expected push off the map to fail")
	}
	assertUnchanged(t, before, s.State())
}

func TestTurnWithoutBox(t *testing.T) {
	s := core.NewSession(build(t, " @ "), core.DefaultOptions())
	expected := []core.Dir{core.DirRight, core.DirUp, core.DirLeft, core.DirDown}
	for i, d := range expected {
		if !s.Turn(1) {
			t.Fatal("turn without a box always succeeds")
		}
		if s.State().Facing != d {
			t.Errorf("turn %d: facing %v, expected %v", i, s.State().Facing, d)
		}
	}
	s.Turn(-1)
	if s.State().Facing != core.DirLeft {
		t.Errorf("clockwise turn from Down: facing %v, expected Left", s.State().Facing)
	}
	if s.Steps() != 0 {
		t.Errorf("turns changed step counter to %d", s.Steps())
	}
}

func TestTurnSwingsCarriedBox(t *testing.T) {
	tests := []struct {
		name    string
		sign    int
		carried core.Coord
		facing  core.Dir
	}{
		{"counter-clockwise", 1, core.C(1, 1), core.DirLeft},
		{"clockwise", -1, core.C(3, 1), core.DirRight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := facing(build(t,
				"  $  ",
				"  @  ",
				"     ",
			), core.DirUp)
			s := core.NewSession(l, core.DefaultOptions())
			s.Grab()
			if !s.Turn(tc.sign) {
				t.Fatal("expected turn to succeed")
			}
			st := s.State()
			if *st.Carried != tc.carried {
				t.Errorf("carried at %v, expected %v", *st.Carried, tc.carried)
			}
			if st.Facing != tc.facing {
				t.Errorf("facing %v, expected %v", st.Facing, tc.facing)
			}
			if st.Player.Step(st.Facing) != *st.Carried {
				t.Error("carried box should end up ahead of the player")
			}
			checkInvariants(t, s)
		})
	}
}

func TestTurnSecondHalfBlocked(t *testing.T) {
	rows := []string{
		" $$ ",
		" #@ ",
		"    ",
	}

	t.Run("displaced box stays", func(t *testing.T) {
		s := core.NewSession(facing(build(t, rows...), core.DirUp), core.DefaultOptions())
		if !s.Grab() {
			t.Fatal("expected grab to succeed")
		}
		if s.Turn(1) {
			t.Fatal("expected turn to fail on the second half-step")
		}
		st := s.State()
		if *st.Carried != core.C(2, 0) {
			t.Errorf("carried at %v, expected no net displacement", *st.Carried)
		}
		if st.Facing != core.DirUp {
			t.Errorf("facing %v, expected Up", st.Facing)
		}
		if !slices.Equal(st.Boxes, []core.Coord{core.C(0, 0)}) {
			t.Errorf("free boxes %v, expected displaced box at (0,0)", st.Boxes)
		}
		checkInvariants(t, s)

		// The partial turn is still undoable.
		if !s.Undo() {
			t.Fatal("expected undo to succeed")
		}
		if !slices.Equal(s.State().Boxes, []core.Coord{core.C(1, 0)}) {
			t.Errorf("undo left boxes at %v", s.State().Boxes)
		}
	})

	t.Run("atomic turns revert", func(t *testing.T) {
		opts := core.DefaultOptions()
		opts.AtomicTurns = true
		s := core.NewSession(facing(build(t, rows...), core.DirUp), opts)
		s.Grab()
		before := s.State()
		if s.Turn(1) {
			t.Fatal("expected turn to fail on the second half-step")
		}
		assertUnchanged(t, before, s.State())
	})

	t.Run("first half blocked", func(t *testing.T) {
		s := core.NewSession(facing(build(t, "#$  ", " @  "), core.DirUp), core.DefaultOptions())
		s.Grab()
		before := s.State()
		if s.Turn(1) {
			t.Fatal("expected turn into a wall to fail")
		}
		assertUnchanged(t, before, s.State())
	})
}

func TestTurnBlockedByClosedDoor(t *testing.T) {
	s := core.NewSession(facing(build(t, " $ ", " @d"), core.DirUp), core.DefaultOptions())
	s.Grab()
	before := s.State()
	if s.Turn(-1) {
		t.Fatal("expected turn through a closed door to fail")
	}
	assertUnchanged(t, before, s.State())
}

func TestUndoAndReset(t *testing.T) {
	s := core.NewSession(build(t, "@ $ ."), core.Options{UndoLimit: 2})
	start := s.State()

	s.Move(core.DirRight)
	s.Move(core.DirRight)
	s.Move(core.DirRight)
	if s.Steps() != 3 {
		t.Fatalf("expected 3 steps, got %d", s.Steps())
	}

	if !s.Undo() || s.Steps() != 2 {
		t.Fatalf("expected undo to restore 2 steps, got %d", s.Steps())
	}
	if !s.Undo() || s.Steps() != 1 {
		t.Fatalf("expected undo to restore 1 step, got %d", s.Steps())
	}
	if s.Undo() {
		t.Fatal("history is limited to 2 entries")
	}

	s.Reset()
	if !start.Equal(s.State()) {
		t.Error("reset did not restore the initial state")
	}
	if s.CanUndo() {
		t.Error("reset should clear history")
	}
}

func TestUndoDisabled(t *testing.T) {
	s := core.NewSession(build(t, "@  "), core.Options{UndoLimit: 0})
	s.Move(core.DirRight)
	if s.Undo() {
		t.Error("undo should be disabled")
	}
}

func TestSessionsDoNotShareTemplate(t *testing.T) {
	l := build(t, "@$ .")
	a := core.NewSession(l, core.DefaultOptions())
	b := core.NewSession(l, core.DefaultOptions())

	a.Move(core.DirRight)
	if b.State().Boxes[0] != core.C(1, 0) {
		t.Error("second session saw the first session's push")
	}
	if l.Start.Boxes[0] != core.C(1, 0) {
		t.Error("session mutated the level template")
	}
	a.Reset()
	if a.State().Boxes[0] != core.C(1, 0) {
		t.Error("reset did not rebuild from the template")
	}
}

func TestStateIsDeepCopy(t *testing.T) {
	s := core.NewSession(facing(build(t, "@$ "), core.DirRight), core.DefaultOptions())
	s.Grab()
	st := s.State()
	*st.Carried = core.C(9, 9)
	if *s.State().Carried != core.C(1, 0) {
		t.Error("State() exposed the session's carried box")
	}
}

func TestRandomPlayKeepsInvariants(t *testing.T) {
	l := build(t,
		"##########",
		"#  $  b  #",
		"# @ $$ # #",
		"#  .d.  .#",
		"# $ #  $ #",
		"#   s  . #",
		"##########",
	)

	for _, atomic := range []bool{false, true} {
		opts := core.DefaultOptions()
		opts.AtomicTurns = atomic
		s := core.NewSession(l, opts)
		rng := rand.New(rand.NewPCG(1, 2))
		moves := 0

		for i := 0; i < 5000; i++ {
			switch rng.IntN(6) {
			case 0, 1, 2:
				if s.Move(core.Dir(rng.IntN(4))) {
					moves++
				}
			case 3:
				if rng.IntN(2) == 0 {
					s.Turn(1)
				} else {
					s.Turn(-1)
				}
			case 4:
				s.Grab()
			case 5:
				if rng.IntN(50) == 0 {
					s.Reset()
					moves = 0
				}
			}
			checkInvariants(t, s)
			if s.Steps() != moves {
				t.Fatalf("step %d: counter %d, accepted moves %d", i, s.Steps(), moves)
			}
			if st := s.State(); len(st.AllBoxes()) != len(l.Start.Boxes) {
				t.Fatalf("step %d: box count changed to %d", i, len(st.AllBoxes()))
			}
		}
	}
}
