// Package item defines the items a player can carry, equip and drink.
//
// Item is a tagged union: Kind selects which of the Weapon, Armor or Potion
// payloads is populated. Generic items carry no payload and have no combat
// effect.
package item

import (
	"strconv"
	"strings"

	"github.com/samdwyer/emberwood/internal/validation"
)

// Kind discriminates the item variants.
type Kind int

const (
	KindGeneric Kind = iota
	KindWeapon
	KindArmor
	KindPotion
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindGeneric:
		return "generic"
	case KindWeapon:
		return "weapon"
	case KindArmor:
		return "armor"
	case KindPotion:
		return "potion"
	default:
		return "unknown"
	}
}

// WeaponType is the fighting style a weapon belongs to.
type WeaponType string

const (
	WeaponMelee  WeaponType = "melee"
	WeaponRanged WeaponType = "ranged"
	WeaponMagic  WeaponType = "magic"
)

// ArmorSlot is where a piece of armor is worn.
type ArmorSlot string

const (
	ArmorHead   ArmorSlot = "head"
	ArmorTorso  ArmorSlot = "torso"
	ArmorLegs   ArmorSlot = "legs"
	ArmorShield ArmorSlot = "shield"
	ArmorFull   ArmorSlot = "full"
)

// PotionEffect is what drinking a potion does.
type PotionEffect string

const (
	EffectHeal          PotionEffect = "heal"
	EffectManaRestore   PotionEffect = "mana_restore"
	EffectStrengthBoost PotionEffect = "strength_boost"
	EffectDefenseBoost  PotionEffect = "defense_boost"
)

// Rarity is a display-only grade.
type Rarity string

const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
)

// WeaponStats is the payload of a weapon.
type WeaponStats struct {
	Damage int
	Type   WeaponType
}

// ArmorStats is the payload of a piece of armor.
type ArmorStats struct {
	Defense int
	Slot    ArmorSlot
}

// PotionStats is the payload of a potion. SipsLeft is the only mutable
// field of an item.
type PotionStats struct {
	Effect   PotionEffect
	Amount   int
	SipsLeft int
}

// Item is a single carried object. Items are handled by pointer so that two
// identical potions in an inventory stay distinct.
type Item struct {
	Kind        Kind
	name        string
	description string
	value       int
	rarity      Rarity
	magical     bool

	Weapon *WeaponStats
	Armor  *ArmorStats
	Potion *PotionStats
}

// Options holds the display attributes shared by all variants.
type Options struct {
	Description string
	Value       int
	Rarity      Rarity
	Magical     bool
}

type baseArgs struct {
	Name   string `validate:"required"`
	Value  int    `validate:"gte=0"`
	Rarity Rarity `validate:"omitempty,oneof=common uncommon rare"`
}

type weaponArgs struct {
	Damage int        `validate:"gt=0"`
	Type   WeaponType `validate:"oneof=melee ranged magic"`
}

type armorArgs struct {
	Defense int       `validate:"gt=0"`
	Slot    ArmorSlot `validate:"oneof=head torso legs shield full"`
}

type potionArgs struct {
	Effect   PotionEffect `validate:"oneof=heal mana_restore strength_boost defense_boost"`
	Amount   int          `validate:"gt=0"`
	SipsLeft int          `validate:"gte=0"`
}

func newBase(kind Kind, name string, opts Options) (*Item, error) {
	name = strings.TrimSpace(name)
	if err := validation.Struct("item", baseArgs{Name: name, Value: opts.Value, Rarity: opts.Rarity}); err != nil {
		return nil, err
	}
	rarity := opts.Rarity
	if rarity == "" {
		rarity = RarityCommon
	}
	return &Item{
		Kind:        kind,
		name:        name,
		description: opts.Description,
		value:       opts.Value,
		rarity:      rarity,
		magical:     opts.Magical,
	}, nil
}

// NewGeneric creates an item with no combat effect.
func NewGeneric(name string, opts Options) (*Item, error) {
	return newBase(KindGeneric, name, opts)
}

// NewWeapon creates a weapon. Damage must be positive.
func NewWeapon(name string, damage int, weaponType WeaponType, opts Options) (*Item, error) {
	if err := validation.Struct("weapon", weaponArgs{Damage: damage, Type: weaponType}); err != nil {
		return nil, err
	}
	it, err := newBase(KindWeapon, name, opts)
	if err != nil {
		return nil, err
	}
	it.Weapon = &WeaponStats{Damage: damage, Type: weaponType}
	return it, nil
}

// NewArmor creates a piece of armor. Defense must be positive.
func NewArmor(name string, defense int, slot ArmorSlot, opts Options) (*Item, error) {
	if err := validation.Struct("armor", armorArgs{Defense: defense, Slot: slot}); err != nil {
		return nil, err
	}
	it, err := newBase(KindArmor, name, opts)
	if err != nil {
		return nil, err
	}
	it.Armor = &ArmorStats{Defense: defense, Slot: slot}
	return it, nil
}

// NewPotion creates a potion with the given number of sips.
func NewPotion(name string, effect PotionEffect, amount, sips int, opts Options) (*Item, error) {
	if err := validation.Struct("potion", potionArgs{Effect: effect, Amount: amount, SipsLeft: sips}); err != nil {
		return nil, err
	}
	it, err := newBase(KindPotion, name, opts)
	if err != nil {
		return nil, err
	}
	it.Potion = &PotionStats{Effect: effect, Amount: amount, SipsLeft: sips}
	return it, nil
}

// Name returns the display name.
func (i *Item) Name() string { return i.name }

// Description returns the flavor text.
func (i *Item) Description() string { return i.description }

// Value returns the worth in gold.
func (i *Item) Value() int { return i.value }

// Rarity returns the display grade.
func (i *Item) Rarity() Rarity { return i.rarity }

// Magical reports whether the item is enchanted.
func (i *Item) Magical() bool { return i.magical }

// Matches reports whether name refers to this item, ignoring case.
func (i *Item) Matches(name string) bool {
	return strings.EqualFold(i.name, strings.TrimSpace(name))
}

// Summary returns a one-line description for inventory listings.
func (i *Item) Summary() string {
	switch i.Kind {
	case KindWeapon:
		return i.name + " (+" + strconv.Itoa(i.Weapon.Damage) + " ATK, " + string(i.Weapon.Type) + ")"
	case KindArmor:
		return i.name + " (+" + strconv.Itoa(i.Armor.Defense) + " DEF, " + string(i.Armor.Slot) + ")"
	case KindPotion:
		return i.name + " (" + string(i.Potion.Effect) + " " + strconv.Itoa(i.Potion.Amount) +
			", " + strconv.Itoa(i.Potion.SipsLeft) + " sips)"
	default:
		return i.name
	}
}
