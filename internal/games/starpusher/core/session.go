package core

// Options tune rule variants and session bookkeeping.
type Options struct {
	// AtomicTurns makes a carried turn all-or-nothing. When false a free box
	// displaced by the first half of a turn stays displaced even if the
	// second half is blocked.
	AtomicTurns bool

	// UndoLimit caps the undo history. Zero disables undo.
	UndoLimit int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		AtomicTurns: false,
		UndoLimit:   100,
	}
}

// Session owns the state of one level being played.
// It is not safe for concurrent use.
type Session struct {
	level   *Level
	opts    Options
	state   State
	history []State
}

// NewSession starts playing a level. The level template is not modified.
func NewSession(level *Level, opts Options) *Session {
	if opts.UndoLimit < 0 {
		opts.UndoLimit = 0
	}
	s := &Session{level: level, opts: opts}
	s.Reset()
	return s
}

// Level returns the template this session plays.
func (s *Session) Level() *Level {
	return s.level
}

// Grid returns the static level geometry.
func (s *Session) Grid() *Grid {
	return s.level.Grid
}

// Reset discards all progress and restarts from the level's initial state.
func (s *Session) Reset() {
	s.state = s.level.Start.Clone()
	s.history = s.history[:0]
}

// State returns a deep copy of the current state.
func (s *Session) State() State {
	return s.state.Clone()
}

// Steps returns the number of accepted moves.
func (s *Session) Steps() int {
	return s.state.Steps
}

// IsDoorOpen reports whether the door at c can currently be entered.
func (s *Session) IsDoorOpen(c Coord) bool {
	return s.state.IsDoorOpen(c)
}

// AnyButtonActive reports whether the doors are held open by a button.
func (s *Session) AnyButtonActive() bool {
	return s.state.AnyButtonActive()
}

// IsFinished reports whether every goal is covered by a free or carried box.
func (s *Session) IsFinished() bool {
	for _, g := range s.level.Goals {
		if !s.state.HasBox(g) {
			return false
		}
	}
	return true
}

// CanUndo reports whether there is a previous state to return to.
func (s *Session) CanUndo() bool {
	return len(s.history) > 0
}

// Undo restores the state before the last accepted action.
func (s *Session) Undo() bool {
	n := len(s.history)
	if n == 0 {
		return false
	}
	s.state = s.history[n-1]
	s.history = s.history[:n-1]
	return true
}

func (s *Session) remember() {
	if s.opts.UndoLimit == 0 {
		return
	}
	if len(s.history) >= s.opts.UndoLimit {
		copy(s.history, s.history[1:])
		s.history = s.history[:len(s.history)-1]
	}
	s.history = append(s.history, s.state.Clone())
}

// forget drops the snapshot taken by remember when nothing changed.
func (s *Session) forget() {
	if s.opts.UndoLimit == 0 || len(s.history) == 0 {
		return
	}
	s.history = s.history[:len(s.history)-1]
}

// blocked reports whether a pushed box cannot enter c.
func (s *Session) blocked(c Coord) bool {
	g := s.level.Grid
	return !g.InBounds(c) ||
		g.IsWall(c) ||
		s.state.closedDoor(c) ||
		s.state.HasBox(c) ||
		s.state.Player == c
}

// push is a planned translation of one free box.
type push struct {
	index int
	to    Coord
}

// planCarried checks whether the carried box can step in d and returns the
// free box push it would cause, if any.
func (s *Session) planCarried(d Dir) (target Coord, p *push, ok bool) {
	g := s.level.Grid
	target = s.state.Carried.Step(d)
	if g.IsWall(target) || s.state.closedDoor(target) || !g.InBounds(target) {
		return target, nil, false
	}
	if i := s.state.freeBoxAt(target); i >= 0 {
		beyond := target.Step(d)
		if s.blocked(beyond) {
			return target, nil, false
		}
		p = &push{index: i, to: beyond}
	}
	return target, p, true
}

// Move translates the player one cell in d, pushing at most one free box and
// dragging the carried box along. Returns false and leaves the state
// untouched when the move is illegal.
func (s *Session) Move(d Dir) bool {
	g := s.level.Grid
	var pushes []push

	var carriedTo Coord
	if s.state.Carried != nil {
		target, p, ok := s.planCarried(d)
		if !ok {
			return false
		}
		carriedTo = target
		if p != nil {
			pushes = append(pushes, *p)
		}
	}

	target := s.state.Player.Step(d)
	if g.IsWall(target) || s.state.closedDoor(target) || !g.InBounds(target) {
		return false
	}
	if i := s.state.freeBoxAt(target); i >= 0 {
		beyond := target.Step(d)
		if s.blocked(beyond) {
			return false
		}
		pushes = append(pushes, push{index: i, to: beyond})
	}

	s.remember()
	for _, p := range pushes {
		s.state.Boxes[p.index] = p.to
	}
	if s.state.Carried != nil {
		*s.state.Carried = carriedTo
	}
	s.state.Player = target
	s.state.Steps++
	return true
}

// Turn rotates the player in place. sign +1 turns counter-clockwise
// (Up to Left), -1 clockwise. A carried box swings around the player in two
// half-steps, each of which must be legal on its own.
func (s *Session) Turn(sign int) bool {
	switch {
	case sign > 0:
		sign = 1
	case sign < 0:
		sign = -1
	default:
		return false
	}

	facing := s.state.Facing.Rotate(sign)
	if s.state.Carried == nil {
		s.remember()
		s.state.Facing = facing
		return true
	}

	s.remember()
	origin := *s.state.Carried
	var displaced *push
	var undoDisplaced Coord

	// First half-step: sideways.
	mid, p1, ok := s.planCarried(facing)
	if !ok {
		s.forget()
		return false
	}
	if p1 != nil {
		undoDisplaced = s.state.Boxes[p1.index]
		s.state.Boxes[p1.index] = p1.to
		displaced = p1
	}
	*s.state.Carried = mid

	// Second half-step: back toward the player's side.
	end, p2, ok := s.planCarried(s.state.Facing.Rotate(2 * sign))
	if !ok {
		*s.state.Carried = origin
		if displaced != nil && s.opts.AtomicTurns {
			s.state.Boxes[displaced.index] = undoDisplaced
			displaced = nil
		}
		if displaced == nil {
			s.forget()
		}
		return false
	}
	if p2 != nil {
		s.state.Boxes[p2.index] = p2.to
	}
	*s.state.Carried = end
	s.state.Facing = facing
	return true
}

// Grab picks up the free box directly ahead of the player, or releases the
// carried box if it is the one ahead.
func (s *Session) Grab() bool {
	ahead := s.state.Player.Step(s.state.Facing)

	if s.state.Carried != nil {
		if *s.state.Carried != ahead {
			return false
		}
		s.remember()
		slot := min(s.state.carriedSlot, len(s.state.Boxes))
		s.state.Boxes = append(s.state.Boxes, Coord{})
		copy(s.state.Boxes[slot+1:], s.state.Boxes[slot:])
		s.state.Boxes[slot] = ahead
		s.state.Carried = nil
		s.state.carriedSlot = 0
		return true
	}

	i := s.state.freeBoxAt(ahead)
	if i < 0 {
		return false
	}
	s.remember()
	s.state.Boxes = append(s.state.Boxes[:i], s.state.Boxes[i+1:]...)
	s.state.Carried = &ahead
	s.state.carriedSlot = i
	return true
}
