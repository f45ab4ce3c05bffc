// Package game provides the main game loop and state management.
package game

import "github.com/samdwyer/encounter/internal/combat"

// State represents the current game state.
type State int

const (
	// StateFrontEnd is the title screen; starting from it resets the party.
	StateFrontEnd State = iota
	// StateCombat runs the next encounter.
	StateCombat
	// StateTravel is the camp between encounters, where the party recovers.
	StateTravel
	// StateQuit ends the main loop.
	StateQuit
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateFrontEnd:
		return "front_end"
	case StateCombat:
		return "combat"
	case StateTravel:
		return "travel"
	case StateQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// stateForScene maps an encounter's exit scene to the game state that shows it.
func stateForScene(scene combat.Scene) State {
	switch scene {
	case combat.SceneTravel:
		return StateTravel
	case combat.SceneFrontEnd:
		return StateFrontEnd
	default:
		return StateQuit
	}
}
