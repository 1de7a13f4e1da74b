package entity

import (
	"strings"

	apperrors "github.com/samdwyer/emberwood/internal/errors"
	"github.com/samdwyer/emberwood/internal/item"
)

// Slot names an equipment slot.
type Slot string

const (
	SlotWeapon Slot = "weapon"
	SlotArmor  Slot = "armor"
)

// ParseSlot maps user-facing slot names onto a Slot.
func ParseSlot(name string) (Slot, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "weapon":
		return SlotWeapon, nil
	case "armor", "armour":
		return SlotArmor, nil
	default:
		return "", apperrors.WithMetadata(apperrors.CodeInvalidArgument,
			"unknown equipment slot '"+name+"'", map[string]string{"slot": name})
	}
}

// Equip moves a weapon or armor from the inventory into its slot. Whatever
// occupied the slot goes back to the inventory first and is returned.
func (p *Player) Equip(it *item.Item) (*item.Item, error) {
	if it == nil || !p.Inventory.Contains(it) {
		return nil, notInInventory(it)
	}

	var slot Slot
	switch it.Kind {
	case item.KindWeapon:
		slot = SlotWeapon
	case item.KindArmor:
		slot = SlotArmor
	default:
		return nil, apperrors.WithMetadata(apperrors.CodeInvalidArgument,
			it.Name()+" is neither a weapon nor armor", map[string]string{"item": it.Name()})
	}

	var previous *item.Item
	if p.equipped(slot) != nil {
		var err error
		if previous, err = p.Unequip(slot); err != nil {
			return nil, err
		}
	}

	if err := p.Inventory.Remove(it); err != nil {
		return nil, err
	}
	switch slot {
	case SlotWeapon:
		p.Weapon = it
	case SlotArmor:
		p.Armor = it
	}
	p.rederive(slot)

	return previous, nil
}

// EquipByName equips the first inventory item with the given name.
func (p *Player) EquipByName(name string) (*item.Item, error) {
	it, err := p.Inventory.FindByName(name)
	if err != nil {
		return nil, err
	}
	return p.Equip(it)
}

// Unequip returns the item in slot to the inventory and resets the derived
// stat to its base.
func (p *Player) Unequip(slot Slot) (*item.Item, error) {
	if slot != SlotWeapon && slot != SlotArmor {
		return nil, apperrors.WithMetadata(apperrors.CodeInvalidArgument,
			"unknown equipment slot '"+string(slot)+"'", map[string]string{"slot": string(slot)})
	}

	it := p.equipped(slot)
	if it == nil {
		return nil, apperrors.WithMetadata(apperrors.CodeNotFound,
			"nothing equipped in the "+string(slot)+" slot", map[string]string{"slot": string(slot)})
	}

	switch slot {
	case SlotWeapon:
		p.Weapon = nil
	case SlotArmor:
		p.Armor = nil
	}
	p.Inventory.Add(it)
	p.rederive(slot)

	return it, nil
}

func (p *Player) equipped(slot Slot) *item.Item {
	switch slot {
	case SlotWeapon:
		return p.Weapon
	case SlotArmor:
		return p.Armor
	default:
		return nil
	}
}

// rederive recomputes the derived stat for slot from base plus equipment.
func (p *Player) rederive(slot Slot) {
	switch slot {
	case SlotWeapon:
		p.Attack = p.BaseAttack
		if p.Weapon != nil {
			p.Attack += p.Weapon.Weapon.Damage
		}
	case SlotArmor:
		p.Defense = p.BaseDefense
		if p.Armor != nil {
			p.Defense += p.Armor.Armor.Defense
		}
	}
}
