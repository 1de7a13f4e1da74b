package combat

// ActionKind is one of the fixed choices a player has on their turn.
type ActionKind int

const (
	ActionAttack ActionKind = iota
	ActionDefend
	ActionUseItem
	ActionCheckStatus
	ActionFlee
	ActionCastSpell
)

// String returns a human-readable name for the action.
func (k ActionKind) String() string {
	switch k {
	case ActionAttack:
		return "attack"
	case ActionDefend:
		return "defend"
	case ActionUseItem:
		return "use_item"
	case ActionCheckStatus:
		return "check_status"
	case ActionFlee:
		return "flee"
	case ActionCastSpell:
		return "cast_spell"
	default:
		return "unknown"
	}
}

// Consumes reports whether the action ends the player's turn once it
// resolves successfully.
func (k ActionKind) Consumes() bool {
	return k != ActionCheckStatus
}

// Action is a player's choice for one turn. Item names the potion for
// ActionUseItem and is ignored otherwise.
type Action struct {
	Kind ActionKind
	Item string
}

// EnemyMove is what the enemy policy picked for a turn.
type EnemyMove int

const (
	MoveAttack EnemyMove = iota
	MoveDefend
	MovePowerStrike
	MoveVenomSpit
)

// String returns a human-readable name for the move.
func (m EnemyMove) String() string {
	switch m {
	case MoveAttack:
		return "attack"
	case MoveDefend:
		return "defend"
	case MovePowerStrike:
		return "power_strike"
	case MoveVenomSpit:
		return "venom_spit"
	default:
		return "unknown"
	}
}
