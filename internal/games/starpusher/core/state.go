package core

import "slices"

// Level is the immutable template produced by the level loader.
// Sessions never mutate it; every start or reset works on a copy of Start.
type Level struct {
	Name  string
	Grid  *Grid
	Goals []Coord
	Start State
}

// State is the mutable part of a level being played.
type State struct {
	Player Coord
	Facing Dir

	// Boxes holds free boxes. Order is kept stable so that a grab followed by
	// a release puts the box back where it was.
	Boxes []Coord

	// Carried is the box attached to the player, if any. It is never also
	// present in Boxes.
	Carried *Coord

	// carriedSlot is the index in Boxes the carried box was taken from.
	carriedSlot int

	Doors   []Coord
	Buttons []Coord
	Steps   int
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := s
	out.Boxes = slices.Clone(s.Boxes)
	out.Doors = slices.Clone(s.Doors)
	out.Buttons = slices.Clone(s.Buttons)
	if s.Carried != nil {
		c := *s.Carried
		out.Carried = &c
	}
	return out
}

// Equal reports whether two states describe the same position.
func (s State) Equal(o State) bool {
	if s.Player != o.Player || s.Facing != o.Facing || s.Steps != o.Steps {
		return false
	}
	if (s.Carried == nil) != (o.Carried == nil) {
		return false
	}
	if s.Carried != nil && *s.Carried != *o.Carried {
		return false
	}
	return slices.Equal(s.Boxes, o.Boxes) &&
		slices.Equal(s.Doors, o.Doors) &&
		slices.Equal(s.Buttons, o.Buttons)
}

// AllBoxes returns free boxes followed by the carried box, if any.
func (s State) AllBoxes() []Coord {
	out := make([]Coord, 0, len(s.Boxes)+1)
	out = append(out, s.Boxes...)
	if s.Carried != nil {
		out = append(out, *s.Carried)
	}
	return out
}

// freeBoxAt returns the index of the free box at c, or -1.
func (s State) freeBoxAt(c Coord) int {
	return slices.Index(s.Boxes, c)
}

// HasBox reports whether a free or carried box is at c.
func (s State) HasBox(c Coord) bool {
	if s.Carried != nil && *s.Carried == c {
		return true
	}
	return s.freeBoxAt(c) >= 0
}

// IsDoor reports whether c is a door cell.
func (s State) IsDoor(c Coord) bool {
	return slices.Contains(s.Doors, c)
}

// IsButton reports whether c is a button cell.
func (s State) IsButton(c Coord) bool {
	return slices.Contains(s.Buttons, c)
}

// occupied reports whether c holds the player or any box.
func (s State) occupied(c Coord) bool {
	return s.Player == c || s.HasBox(c)
}

// AnyButtonActive reports whether any button is covered by a box or the
// player. A single active button opens every door on the map.
func (s State) AnyButtonActive() bool {
	for _, b := range s.Buttons {
		if s.occupied(b) {
			return true
		}
	}
	return false
}

// IsDoorOpen reports whether the door at c can be entered right now.
// A door is open when any button is active, or when something already
// stands in the doorway.
func (s State) IsDoorOpen(c Coord) bool {
	if s.AnyButtonActive() {
		return true
	}
	return s.occupied(c)
}

// closedDoor reports whether c is a door that is currently shut.
func (s State) closedDoor(c Coord) bool {
	return s.IsDoor(c) && !s.IsDoorOpen(c)
}

// NewLevel builds a level template and runs the decoration pass on its grid.
// The caller keeps ownership of nothing: grid and state are stored as given.
func NewLevel(name string, grid *Grid, goals []Coord, start State) *Level {
	grid.Decorate(start.Player)
	return &Level{
		Name:  name,
		Grid:  grid,
		Goals: goals,
		Start: start,
	}
}

// IsGoal reports whether c is a goal of the level.
func (l *Level) IsGoal(c Coord) bool {
	return slices.Contains(l.Goals, c)
}
