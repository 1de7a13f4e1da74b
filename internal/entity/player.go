package entity

import (
	"strconv"

	apperrors "github.com/samdwyer/emberwood/internal/errors"
	"github.com/samdwyer/emberwood/internal/item"
)

// Starting values for a new player.
const (
	startingGold          = 50
	startingLevel         = 1
	startingXPToNextLevel = 100
	startingMana          = 50
)

// Player is the human-controlled combatant.
type Player struct {
	Combatant

	Inventory Inventory
	Weapon    *item.Item // equipped weapon, nil if none
	Armor     *item.Item // equipped armor, nil if none

	Gold          int
	Experience    int
	Level         int
	XPToNextLevel int
}

// NewPlayer creates a level 1 player with a full mana pool and starting gold.
func NewPlayer(name string, hp, attack, defense int) (*Player, error) {
	c, err := newCombatant(name, hp, attack, defense)
	if err != nil {
		return nil, err
	}
	c.MP = startingMana
	c.MaxMP = startingMana

	return &Player{
		Combatant:     c,
		Gold:          startingGold,
		Level:         startingLevel,
		XPToNextLevel: startingXPToNextLevel,
	}, nil
}

// LevelUp records the stat gains of a single level-up.
type LevelUp struct {
	Level   int
	Health  int
	Attack  int
	Defense int
	Mana    int
}

// GainExperience adds experience and levels up as many times as it covers.
func (p *Player) GainExperience(amount int) ([]LevelUp, error) {
	if amount < 0 {
		return nil, apperrors.WithMetadata(apperrors.CodeInvalidArgument,
			"experience must be non-negative", map[string]string{"amount": strconv.Itoa(amount)})
	}

	p.Experience += amount
	var levels []LevelUp
	for p.Experience >= p.XPToNextLevel {
		levels = append(levels, p.LevelUp())
	}
	return levels, nil
}

// LevelUp advances one level, spending the current threshold's experience
// and growing stats. Health and mana are refilled.
func (p *Player) LevelUp() LevelUp {
	p.Level++
	p.Experience -= p.XPToNextLevel
	p.XPToNextLevel = p.XPToNextLevel * 3 / 2

	gain := LevelUp{
		Level:   p.Level,
		Health:  10 + 2*p.Level,
		Attack:  2 + p.Level/2,
		Defense: 1 + p.Level/3,
		Mana:    5 + p.Level,
	}

	p.MaxHP += gain.Health
	p.HP = p.MaxHP
	p.BaseAttack += gain.Attack
	p.Attack += gain.Attack
	p.BaseDefense += gain.Defense
	p.Defense += gain.Defense
	p.MaxMP += gain.Mana
	p.MP = p.MaxMP

	return gain
}
