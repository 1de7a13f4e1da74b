package entity

import (
	apperrors "github.com/samdwyer/emberwood/internal/errors"
	"github.com/samdwyer/emberwood/internal/item"
)

// Inventory is an ordered bag of items. Identical items are kept as
// separate entries.
type Inventory struct {
	items []*item.Item
}

// Add appends an item.
func (inv *Inventory) Add(it *item.Item) {
	if it == nil {
		return
	}
	inv.items = append(inv.items, it)
}

// Remove takes the given item out of the inventory.
func (inv *Inventory) Remove(it *item.Item) error {
	for i, existing := range inv.items {
		if existing == it {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			return nil
		}
	}
	return notInInventory(it)
}

// Contains reports whether the given item is in the inventory.
func (inv *Inventory) Contains(it *item.Item) bool {
	for _, existing := range inv.items {
		if existing == it {
			return true
		}
	}
	return false
}

// FindByName returns the first item whose name matches, ignoring case.
func (inv *Inventory) FindByName(name string) (*item.Item, error) {
	for _, existing := range inv.items {
		if existing.Matches(name) {
			return existing, nil
		}
	}
	return nil, apperrors.WithMetadata(apperrors.CodeNotFound,
		"you don't have '"+name+"'", map[string]string{"item": name})
}

// Potions returns the potions in inventory order.
func (inv *Inventory) Potions() []*item.Item {
	var potions []*item.Item
	for _, existing := range inv.items {
		if existing.Kind == item.KindPotion {
			potions = append(potions, existing)
		}
	}
	return potions
}

// Items returns a copy of the inventory contents.
func (inv *Inventory) Items() []*item.Item {
	out := make([]*item.Item, len(inv.items))
	copy(out, inv.items)
	return out
}

// Len returns the number of carried items.
func (inv *Inventory) Len() int {
	return len(inv.items)
}

func notInInventory(it *item.Item) error {
	name := "item"
	if it != nil {
		name = it.Name()
	}
	return apperrors.WithMetadata(apperrors.CodeNotFound,
		name+" is not in the inventory", map[string]string{"item": name})
}
