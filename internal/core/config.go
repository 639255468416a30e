package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Ticks per second of the platform loop
	Seed     int64 // RNG seed for cosmetic randomness
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the summary a game reports to the platform after each tick.
type GameState struct {
	Score    int  // Levels solved this session
	Level    int  // Current level, 0-based
	Steps    int  // Accepted moves on the current level
	Solved   bool // Current level is finished
	GameOver bool // The player asked to leave
	Paused   bool
}

// EventKind identifies something notable that happened during a tick.
type EventKind int

const (
	EventLevelSolved EventKind = iota + 1
	EventLevelChanged
	EventLevelReset
)

// String returns the name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventLevelSolved:
		return "level_solved"
	case EventLevelChanged:
		return "level_changed"
	case EventLevelReset:
		return "level_reset"
	default:
		return "unknown"
	}
}

// Event is emitted by Step for the platform to react to (persistence, logs).
type Event struct {
	Kind  EventKind
	Level int // 0-based level index
	Steps int
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State  GameState
	Events []Event
}
