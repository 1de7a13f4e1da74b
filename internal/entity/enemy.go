package entity

import (
	"github.com/samdwyer/emberwood/internal/item"
	"github.com/samdwyer/emberwood/internal/validation"
)

// DefaultMaxCooldown is the special ability cooldown of an enemy that
// doesn't set its own.
const DefaultMaxCooldown = 3

// Archetype selects an enemy's special behavior.
type Archetype string

const (
	// ArchetypeStandard enemies use a power strike as their special.
	ArchetypeStandard Archetype = "standard"
	// ArchetypeVenomSpitter enemies spit poison instead of striking.
	ArchetypeVenomSpitter Archetype = "venom_spitter"
)

// Enemy represents a hostile creature.
type Enemy struct {
	Combatant

	ID        string    // Catalog identifier (e.g., "goblin_scout")
	Archetype Archetype // Special behavior

	ExperienceReward int
	GoldReward       int
	Loot             []*item.Item // Granted to the player on defeat

	Cooldown    int // Turns until the special ability is ready again
	MaxCooldown int
}

// EnemySpec describes an enemy to create.
type EnemySpec struct {
	ID               string
	Name             string
	HP               int
	Attack           int
	Defense          int
	ExperienceReward int       `validate:"gte=0"`
	GoldReward       int       `validate:"gte=0"`
	MaxCooldown      int       `validate:"gte=0"` // 0 selects DefaultMaxCooldown
	Archetype        Archetype `validate:"omitempty,oneof=standard venom_spitter"`
	Loot             []*item.Item
}

// NewEnemy creates an enemy at full health with its special ability ready.
func NewEnemy(spec EnemySpec) (*Enemy, error) {
	c, err := newCombatant(spec.Name, spec.HP, spec.Attack, spec.Defense)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct("enemy", spec); err != nil {
		return nil, err
	}

	maxCooldown := spec.MaxCooldown
	if maxCooldown == 0 {
		maxCooldown = DefaultMaxCooldown
	}
	archetype := spec.Archetype
	if archetype == "" {
		archetype = ArchetypeStandard
	}
	loot := make([]*item.Item, 0, len(spec.Loot))
	for _, it := range spec.Loot {
		if it != nil {
			loot = append(loot, it)
		}
	}

	return &Enemy{
		Combatant:        c,
		ID:               spec.ID,
		Archetype:        archetype,
		ExperienceReward: spec.ExperienceReward,
		GoldReward:       spec.GoldReward,
		Loot:             loot,
		MaxCooldown:      maxCooldown,
	}, nil
}

// SpecialReady reports whether the special ability is off cooldown.
func (e *Enemy) SpecialReady() bool {
	return e.Cooldown == 0
}

// StartCooldown puts the special ability on its full cooldown.
func (e *Enemy) StartCooldown() {
	e.Cooldown = e.MaxCooldown
}

// TickCooldown counts the special ability cooldown down by one turn.
func (e *Enemy) TickCooldown() {
	if e.Cooldown > 0 {
		e.Cooldown--
	}
}

// TakeLoot hands over the loot table and empties it.
func (e *Enemy) TakeLoot() []*item.Item {
	loot := e.Loot
	e.Loot = nil
	return loot
}
