// Package entity provides the combatants of the game: the shared stat model,
// the player with inventory and equipment, and enemies with rewards.
package entity

import (
	"strconv"
	"strings"

	apperrors "github.com/samdwyer/emberwood/internal/errors"
	"github.com/samdwyer/emberwood/internal/validation"
)

// Combatant is the stat model shared by everything that can fight.
// Player and Enemy embed it.
type Combatant struct {
	Name string

	HP, MaxHP int
	MP, MaxMP int // MaxMP == 0 means no mana pool

	BaseAttack  int
	BaseDefense int
	Attack      int // derived: base plus equipment and boosts
	Defense     int // derived: base plus equipment and boosts

	Blocking bool // protects against exactly one incoming hit
	Effects  Effects
}

// DamageOutcome is the result of a single mitigated hit.
type DamageOutcome struct {
	Dealt    int
	Defeated bool
}

type combatantArgs struct {
	Name    string `validate:"required"`
	HP      int    `validate:"gt=0"`
	Attack  int    `validate:"gte=0"`
	Defense int    `validate:"gte=0"`
}

// NewCombatant creates a combatant at full health with derived stats equal to base.
func NewCombatant(name string, hp, attack, defense int) (*Combatant, error) {
	c, err := newCombatant(name, hp, attack, defense)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func newCombatant(name string, hp, attack, defense int) (Combatant, error) {
	name = strings.TrimSpace(name)
	args := combatantArgs{Name: name, HP: hp, Attack: attack, Defense: defense}
	if err := validation.Struct("combatant", args); err != nil {
		return Combatant{}, err
	}
	return Combatant{
		Name:        name,
		HP:          hp,
		MaxHP:       hp,
		BaseAttack:  attack,
		BaseDefense: defense,
		Attack:      attack,
		Defense:     defense,
	}, nil
}

// IsAlive returns true while the combatant has health left.
func (c *Combatant) IsAlive() bool { return c.HP > 0 }

// IsDefeated returns true once health has reached zero.
func (c *Combatant) IsDefeated() bool { return c.HP <= 0 }

// HasMana reports whether the combatant has a mana pool.
func (c *Combatant) HasMana() bool { return c.MaxMP > 0 }

// ApplyDamage mitigates raw damage by defense (doubled while blocking) and
// subtracts the rest from health. Blocking is cleared by every call, even
// one that deals nothing.
func (c *Combatant) ApplyDamage(raw int) (DamageOutcome, error) {
	if raw < 0 {
		return DamageOutcome{}, apperrors.WithMetadata(apperrors.CodeInvalidArgument,
			"damage must be non-negative", map[string]string{"amount": strconv.Itoa(raw)})
	}

	defense := c.Defense
	if c.Blocking {
		defense *= 2
	}

	dealt := raw - defense
	if dealt < 0 {
		dealt = 0
	}
	c.HP -= dealt
	if c.HP < 0 {
		c.HP = 0
	}
	c.Blocking = false

	return DamageOutcome{Dealt: dealt, Defeated: c.HP == 0}, nil
}

// LoseHealth removes health without mitigation and leaves Blocking alone.
// It returns the health actually lost.
func (c *Combatant) LoseHealth(amount int) int {
	if amount <= 0 {
		return 0
	}
	if amount > c.HP {
		amount = c.HP
	}
	c.HP -= amount
	return amount
}

// Heal restores health up to the maximum and returns the amount restored.
func (c *Combatant) Heal(amount int) (int, error) {
	if amount <= 0 {
		return 0, apperrors.WithMetadata(apperrors.CodeInvalidArgument,
			"heal amount must be positive", map[string]string{"amount": strconv.Itoa(amount)})
	}
	actual := amount
	if c.HP+actual > c.MaxHP {
		actual = c.MaxHP - c.HP
	}
	c.HP += actual
	return actual, nil
}

// RestoreMana refills mana up to the maximum and returns the amount restored.
func (c *Combatant) RestoreMana(amount int) (int, error) {
	if !c.HasMana() {
		return 0, apperrors.New(apperrors.CodeInvalidArgument, c.Name+" has no mana pool")
	}
	if amount <= 0 {
		return 0, apperrors.WithMetadata(apperrors.CodeInvalidArgument,
			"mana amount must be positive", map[string]string{"amount": strconv.Itoa(amount)})
	}
	actual := amount
	if c.MP+actual > c.MaxMP {
		actual = c.MaxMP - c.MP
	}
	c.MP += actual
	return actual, nil
}

// SpendMana deducts mana, failing without change when there is not enough.
func (c *Combatant) SpendMana(amount int) error {
	if amount < 0 {
		return apperrors.New(apperrors.CodeInvalidArgument, "mana cost must be non-negative")
	}
	if c.MP < amount {
		return apperrors.WithMetadata(apperrors.CodeInvalidState,
			c.Name+" doesn't have enough mana",
			map[string]string{"have": strconv.Itoa(c.MP), "need": strconv.Itoa(amount)})
	}
	c.MP -= amount
	return nil
}

// BoostAttack adds directly to the derived attack. The bonus lasts until the
// next re-derivation from equipment.
func (c *Combatant) BoostAttack(amount int) {
	c.Attack += amount
}

// BoostDefense adds directly to the derived defense. The bonus lasts until
// the next re-derivation from equipment.
func (c *Combatant) BoostDefense(amount int) {
	c.Defense += amount
}

// String returns a compact stat line.
func (c *Combatant) String() string {
	return c.Name + " (HP: " + strconv.Itoa(c.HP) + "/" + strconv.Itoa(c.MaxHP) +
		", ATK: " + strconv.Itoa(c.Attack) + ", DEF: " + strconv.Itoa(c.Defense) + ")"
}
