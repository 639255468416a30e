package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/starpusher/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// gameKeys maps key names to in-game actions.
var gameKeys = map[string]core.Action{
	"up":        core.ActionUp,
	"k":         core.ActionUp,
	"down":      core.ActionDown,
	"j":         core.ActionDown,
	"left":      core.ActionLeft,
	"h":         core.ActionLeft,
	"right":     core.ActionRight,
	"l":         core.ActionRight,
	"w":         core.ActionTurnLeft,
	"x":         core.ActionTurnRight,
	" ":         core.ActionGrab,
	"space":     core.ActionGrab,
	"backspace": core.ActionReset,
	"r":         core.ActionReset,
	"u":         core.ActionUndo,
	"ctrl+z":    core.ActionUndo,
	"n":         core.ActionNextLevel,
	"b":         core.ActionPrevLevel,
	"enter":     core.ActionConfirm,
	"esc":       core.ActionBack,
	"p":         core.ActionPause,
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	if a, ok := gameKeys[key]; ok {
		return a, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && action != core.ActionQuit && action != core.ActionBack {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc", "backspace":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
