// Package game provides the encounter state machine and the exploration
// session around it.
package game

// State represents the current game state.
type State int

const (
	// StateExplore is the default mode: moving between locations and
	// handling items.
	StateExplore State = iota
	// StateCombat is active while an encounter runs.
	StateCombat
	// StateOver follows defeat or quitting.
	StateOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateCombat:
		return "combat"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}
