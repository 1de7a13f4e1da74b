package combat

import "github.com/samdwyer/emberwood/internal/entity"

// Enemy policy odds.
const (
	SpecialChance = 0.4
	DefendChance  = 0.3
)

// ChooseEnemyAction picks the enemy's move for this turn. A ready special
// fires on a 40% roll; a badly wounded enemy (below a third of its health)
// with the special cooling down guards on a 30% roll. Everything else is a
// plain attack. At most one draw is made.
func ChooseEnemyAction(enemy *entity.Enemy, rng Source) EnemyMove {
	if enemy.SpecialReady() {
		if rng.Float64() < SpecialChance {
			if enemy.Archetype == entity.ArchetypeVenomSpitter {
				return MoveVenomSpit
			}
			return MovePowerStrike
		}
		return MoveAttack
	}
	if 3*enemy.HP < enemy.MaxHP && rng.Float64() < DefendChance {
		return MoveDefend
	}
	return MoveAttack
}
