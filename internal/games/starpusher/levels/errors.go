package levels

import (
	"errors"
	"fmt"
)

// Load-time validation failures. A LoadError wraps exactly one of these.
var (
	ErrNoPlayer        = errors.New("level has no player start")
	ErrMultiplePlayers = errors.New("level has more than one player start")
	ErrNoGoals         = errors.New("level has no goals")
	ErrNotEnoughBoxes  = errors.New("level has fewer stars than goals")
	ErrEmptyLevel      = errors.New("no levels found")
	ErrUnknownSymbol   = errors.New("unknown map symbol")
)

// LoadError describes why a level could not be loaded.
type LoadError struct {
	Source string // file name or pack id
	Level  int    // 1-based level number within the source, 0 if not applicable
	Line   int    // 1-based line where the level (or bad symbol) is, 0 if not applicable
	Detail string // optional extra context
	Err    error
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("levels: %s", e.Source)
	if e.Level > 0 {
		msg += fmt.Sprintf(": level %d", e.Level)
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" (line %d)", e.Line)
	}
	msg += ": " + e.Err.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
