package combat

import "time"

// Config holds scheduler timing and ordering options.
type Config struct {
	TurnMessageDelay time.Duration // "<name>'s Turn" banner
	VictoryDelay     time.Duration
	ExperienceDelay  time.Duration
	DefeatDelay      time.Duration

	// ActionTimeout bounds the wait for an action's completion signal.
	// Zero waits forever.
	ActionTimeout time.Duration

	// Compare orders a round's actions before execution. Nil means ByPriority.
	Compare CompareFunc
}

// DefaultConfig returns the standard delays with no action timeout.
func DefaultConfig() Config {
	return Config{
		TurnMessageDelay: 500 * time.Millisecond,
		VictoryDelay:     3 * time.Second,
		ExperienceDelay:  2 * time.Second,
		DefeatDelay:      4 * time.Second,
		Compare:          ByPriority,
	}
}
