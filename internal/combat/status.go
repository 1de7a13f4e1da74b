package combat

import (
	"github.com/samdwyer/emberwood/internal/entity"
	"github.com/samdwyer/emberwood/internal/validation"
)

// Known status effect names. Any other name simply decays.
const (
	EffectPoison = "poison" // loses potency health per tick, ignoring defense
	EffectRegen  = "regen"  // heals potency per tick
)

// StatusTick represents what happened when a status effect was processed.
type StatusTick struct {
	Name   string
	Amount int  // Health lost or restored
	Ended  bool // True if the effect expired
}

type statusArgs struct {
	Name     string `validate:"required"`
	Duration int    `validate:"gt=0"`
	Potency  int    `validate:"gte=0"`
}

// Apply puts a status effect on target, replacing any active effect with
// the same name.
func Apply(target *entity.Combatant, name string, duration, potency int) error {
	args := statusArgs{Name: name, Duration: duration, Potency: potency}
	if err := validation.Struct("status effect", args); err != nil {
		return err
	}
	target.Effects.Set(entity.StatusEffect{Name: name, Duration: duration, Potency: potency})
	return nil
}

// Tick processes every effect active at the start of the call, in the
// order they were applied. Each effect's potency lands before its duration
// is decremented; expired effects are removed after the pass.
func Tick(target *entity.Combatant) []StatusTick {
	snapshot := target.Effects.Snapshot()
	if len(snapshot) == 0 {
		return nil
	}

	ticks := make([]StatusTick, 0, len(snapshot))
	var expired []string
	for _, effect := range snapshot {
		tick := StatusTick{Name: effect.Name}

		switch effect.Name {
		case EffectPoison:
			tick.Amount = target.LoseHealth(effect.Potency)
		case EffectRegen:
			if effect.Potency > 0 && target.IsAlive() {
				tick.Amount, _ = target.Heal(effect.Potency)
			}
		}

		effect.Duration--
		if effect.Duration <= 0 {
			tick.Ended = true
			expired = append(expired, effect.Name)
		} else {
			target.Effects.Set(effect)
		}
		ticks = append(ticks, tick)
	}

	for _, name := range expired {
		target.Effects.Remove(name)
	}
	return ticks
}
