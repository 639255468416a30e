package core

// Action is a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // Up arrow - move up
	ActionDown             // Down arrow - move down
	ActionLeft             // Left arrow - move left
	ActionRight            // Right arrow - move right
	ActionTurnLeft         // W - turn counter-clockwise
	ActionTurnRight        // X - turn clockwise
	ActionGrab             // Space - grab or release the star ahead
	ActionReset            // Backspace - restart the level
	ActionUndo             // U - take back the last action
	ActionNextLevel        // N - skip to the next level
	ActionPrevLevel        // B - go back one level
	ActionConfirm          // Enter
	ActionBack             // Escape - leave to the menu
	ActionQuit             // Q, Ctrl+C
	ActionPause            // P
)

var actionNames = map[Action]string{
	ActionNone:      "none",
	ActionUp:        "up",
	ActionDown:      "down",
	ActionLeft:      "left",
	ActionRight:     "right",
	ActionTurnLeft:  "turn_left",
	ActionTurnRight: "turn_right",
	ActionGrab:      "grab",
	ActionReset:     "reset",
	ActionUndo:      "undo",
	ActionNextLevel: "next",
	ActionPrevLevel: "back",
	ActionConfirm:   "confirm",
	ActionBack:      "menu",
	ActionQuit:      "quit",
	ActionPause:     "pause",
}

// String returns the wire name of the action.
func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// ParseAction converts a wire name back to an Action.
func ParseAction(s string) (Action, bool) {
	for a, name := range actionNames {
		if name == s {
			return a, true
		}
	}
	return ActionNone, false
}

// IsMove reports whether the action translates the player.
func (a Action) IsMove() bool {
	return a >= ActionUp && a <= ActionRight
}

// InputFrame holds the actions triggered during one simulation tick,
// in the order they arrived.
type InputFrame struct {
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set records an action for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.Actions = append(f.Actions, a)
}

// Has returns true if the action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	return InputFrame{Actions: append([]Action(nil), f.Actions...)}
}
