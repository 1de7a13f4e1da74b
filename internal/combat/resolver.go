// Package combat resolves the actions of a turn-based encounter: attacks,
// blocks, flight, consumables, spells and enemy specials, plus timed status
// effects and the enemy turn policy.
package combat

import (
	"strconv"

	"github.com/samdwyer/emberwood/internal/entity"
	apperrors "github.com/samdwyer/emberwood/internal/errors"
	"github.com/samdwyer/emberwood/internal/item"
)

// Tuning constants for the resolver.
const (
	FleeChance        = 0.5
	FleeChanceWounded = 0.25
	VenomChance       = 0.6
	VenomDuration     = 3
	SpellName         = "Magic Missile"
	SpellManaCost     = 10
)

// Result contains the outcome of resolving an action.
type Result struct {
	Success     bool
	Damage      int    // Health removed from the target
	Healing     int    // Health or mana restored
	Defeated    bool   // True if the target reached 0 HP
	StatusAdded string // Status effect put on the target, if any
	Message     string // Human-readable description
}

// Resolver calculates and applies action effects.
type Resolver struct {
	rng Source
}

// NewResolver creates a resolver drawing from rng.
func NewResolver(rng Source) *Resolver {
	return &Resolver{rng: rng}
}

// Attack deals the attacker's derived attack to the target through its
// mitigation.
func (r *Resolver) Attack(attacker, target *entity.Combatant) (Result, error) {
	if err := bothStanding(attacker, target); err != nil {
		return Result{}, err
	}
	return r.strike(target, attacker.Attack, attacker.Name+" attacks "+target.Name)
}

// Defend raises the actor's guard against the next incoming hit.
func (r *Resolver) Defend(actor *entity.Combatant) (Result, error) {
	if err := standing(actor); err != nil {
		return Result{}, err
	}
	actor.Blocking = true
	return Result{Success: true, Message: actor.Name + " raises their guard."}, nil
}

// FleeChanceFor returns the escape probability for a combatant: reduced
// while health is strictly below a quarter of the maximum.
func FleeChanceFor(c *entity.Combatant) float64 {
	if 4*c.HP < c.MaxHP {
		return FleeChanceWounded
	}
	return FleeChance
}

// AttemptFlee makes one escape roll. A failed roll still costs the turn.
func (r *Resolver) AttemptFlee(player *entity.Player) bool {
	return r.rng.Float64() < FleeChanceFor(&player.Combatant)
}

// UseConsumable takes one sip of a potion from the player's inventory.
// Every check runs before anything changes; the empty bottle leaves the
// inventory.
func (r *Resolver) UseConsumable(player *entity.Player, potion *item.Item) (Result, error) {
	if err := standing(&player.Combatant); err != nil {
		return Result{}, err
	}
	if potion == nil || !player.Inventory.Contains(potion) {
		name := "that"
		if potion != nil {
			name = potion.Name()
		}
		return Result{}, apperrors.WithMetadata(apperrors.CodeNotFound,
			"you don't have "+name, map[string]string{"item": name})
	}
	if potion.Kind != item.KindPotion {
		return Result{}, apperrors.WithMetadata(apperrors.CodeInvalidArgument,
			potion.Name()+" can't be drunk", map[string]string{"item": potion.Name()})
	}

	stats := potion.Potion
	switch stats.Effect {
	case item.EffectHeal, item.EffectStrengthBoost, item.EffectDefenseBoost:
	case item.EffectManaRestore:
		if !player.HasMana() {
			return Result{}, apperrors.New(apperrors.CodeInvalidArgument, player.Name+" has no mana pool")
		}
	default:
		return Result{}, apperrors.WithMetadata(apperrors.CodeInvalidArgument,
			"unknown potion effect '"+string(stats.Effect)+"'",
			map[string]string{"item": potion.Name(), "effect": string(stats.Effect)})
	}
	if stats.SipsLeft <= 0 {
		return Result{}, apperrors.WithMetadata(apperrors.CodeInvalidState,
			potion.Name()+" is empty", map[string]string{"item": potion.Name()})
	}

	stats.SipsLeft--
	res := Result{Success: true}
	switch stats.Effect {
	case item.EffectHeal:
		res.Healing, _ = player.Heal(stats.Amount)
		res.Message = player.Name + " drinks " + potion.Name() + " and recovers " + strconv.Itoa(res.Healing) + " HP."
	case item.EffectManaRestore:
		res.Healing, _ = player.RestoreMana(stats.Amount)
		res.Message = player.Name + " drinks " + potion.Name() + " and recovers " + strconv.Itoa(res.Healing) + " MP."
	case item.EffectStrengthBoost:
		player.BoostAttack(stats.Amount)
		res.Message = player.Name + " drinks " + potion.Name() + ". Attack +" + strconv.Itoa(stats.Amount) + "."
	case item.EffectDefenseBoost:
		player.BoostDefense(stats.Amount)
		res.Message = player.Name + " drinks " + potion.Name() + ". Defense +" + strconv.Itoa(stats.Amount) + "."
	}

	if stats.SipsLeft == 0 {
		// Contains was checked above.
		_ = player.Inventory.Remove(potion)
	}
	return res, nil
}

// EnemySpecialAbility is the standard power strike: one and a half times the
// enemy's attack, then a full cooldown.
func (r *Resolver) EnemySpecialAbility(enemy *entity.Enemy, target *entity.Combatant) (Result, error) {
	if err := specialReady(enemy, target); err != nil {
		return Result{}, err
	}
	enemy.StartCooldown()
	return r.strike(target, enemy.Attack*3/2, enemy.Name+" unleashes a power strike on "+target.Name)
}

// VenomSpit is the venom spitter's special. The spit may miss, but the
// cooldown starts either way.
func (r *Resolver) VenomSpit(enemy *entity.Enemy, target *entity.Combatant) (Result, error) {
	if err := specialReady(enemy, target); err != nil {
		return Result{}, err
	}
	enemy.StartCooldown()

	if r.rng.Float64() >= VenomChance {
		return Result{Message: enemy.Name + " spits venom at " + target.Name + " but misses."}, nil
	}
	if err := Apply(target, EffectPoison, VenomDuration, enemy.Attack/3); err != nil {
		return Result{}, err
	}
	return Result{
		Success:     true,
		StatusAdded: EffectPoison,
		Message:     enemy.Name + " spits venom! " + target.Name + " is poisoned.",
	}, nil
}

// CastSpell fires a magic missile. Its power grows with level rather than
// with the equipped weapon, and the target's defense still applies.
func (r *Resolver) CastSpell(player *entity.Player, target *entity.Combatant) (Result, error) {
	if err := bothStanding(&player.Combatant, target); err != nil {
		return Result{}, err
	}
	if err := player.SpendMana(SpellManaCost); err != nil {
		return Result{}, err
	}
	power := player.BaseAttack + 2*player.Level
	return r.strike(target, power, player.Name+" casts "+SpellName+" at "+target.Name)
}

// TickCooldowns counts the enemy's special cooldown down by one turn.
func (r *Resolver) TickCooldowns(enemy *entity.Enemy) {
	enemy.TickCooldown()
}

func (r *Resolver) strike(target *entity.Combatant, raw int, verb string) (Result, error) {
	out, err := target.ApplyDamage(raw)
	if err != nil {
		return Result{}, err
	}
	msg := verb + " for " + strconv.Itoa(out.Dealt) + " damage!"
	if out.Defeated {
		msg += " " + target.Name + " is defeated!"
	}
	return Result{Success: true, Damage: out.Dealt, Defeated: out.Defeated, Message: msg}, nil
}

func specialReady(enemy *entity.Enemy, target *entity.Combatant) error {
	if err := bothStanding(&enemy.Combatant, target); err != nil {
		return err
	}
	if !enemy.SpecialReady() {
		return apperrors.WithMetadata(apperrors.CodeInvalidState,
			enemy.Name+"'s special ability is cooling down",
			map[string]string{"cooldown": strconv.Itoa(enemy.Cooldown)})
	}
	return nil
}

func bothStanding(actor, target *entity.Combatant) error {
	if err := standing(actor); err != nil {
		return err
	}
	if target.IsDefeated() {
		return apperrors.WithMetadata(apperrors.CodeInvalidState,
			target.Name+" is already defeated", map[string]string{"target": target.Name})
	}
	return nil
}

func standing(actor *entity.Combatant) error {
	if actor.IsDefeated() {
		return apperrors.WithMetadata(apperrors.CodeInvalidState,
			actor.Name+" is defeated and can't act", map[string]string{"actor": actor.Name})
	}
	return nil
}
