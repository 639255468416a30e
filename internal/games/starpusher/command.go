package starpusher

import (
	"errors"
	"fmt"
	"strings"

	platformcore "github.com/vovakirdan/starpusher/internal/core"
)

// ErrUnknownCommand is returned by ParseCommand for input it cannot map.
var ErrUnknownCommand = errors.New("starpusher: unknown command")

var moveDirections = map[string]platformcore.Action{
	"up":    platformcore.ActionUp,
	"down":  platformcore.ActionDown,
	"left":  platformcore.ActionLeft,
	"right": platformcore.ActionRight,
}

var turnDirections = map[string]platformcore.Action{
	"left":  platformcore.ActionTurnLeft,
	"ccw":   platformcore.ActionTurnLeft,
	"right": platformcore.ActionTurnRight,
	"cw":    platformcore.ActionTurnRight,
}

// ParseCommand maps a remote command such as ("move", "left") or
// ("turn", "cw") to an action. Bare action names ("grab", "undo",
// "turn_left", ...) are accepted with an empty direction.
func ParseCommand(action, direction string) (platformcore.Action, error) {
	action = strings.ToLower(strings.TrimSpace(action))
	direction = strings.ToLower(strings.TrimSpace(direction))

	switch action {
	case "move":
		if a, ok := moveDirections[direction]; ok {
			return a, nil
		}
		return platformcore.ActionNone, fmt.Errorf("%w: move %q (want up, down, left or right)", ErrUnknownCommand, direction)
	case "turn":
		if a, ok := turnDirections[direction]; ok {
			return a, nil
		}
		return platformcore.ActionNone, fmt.Errorf("%w: turn %q (want left or right)", ErrUnknownCommand, direction)
	case "prev":
		return platformcore.ActionPrevLevel, nil
	}

	a, ok := platformcore.ParseAction(action)
	if !ok || a == platformcore.ActionNone || a == platformcore.ActionQuit || a == platformcore.ActionBack {
		return platformcore.ActionNone, fmt.Errorf("%w: %q", ErrUnknownCommand, action)
	}
	return a, nil
}
