package gamedata

import (
	"github.com/samdwyer/emberwood/internal/item"
	"github.com/samdwyer/emberwood/internal/validation"
)

// ItemDef defines an item loaded from JSON. Only the fields of its kind are
// read when building.
type ItemDef struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Kind        string `json:"kind" validate:"oneof=weapon armor potion generic"`
	Value       int    `json:"value" validate:"gte=0"`
	Rarity      string `json:"rarity" validate:"omitempty,oneof=common uncommon rare"`
	Magical     bool   `json:"magical"`

	Damage     int    `json:"damage" validate:"required_if=Kind weapon"`
	WeaponType string `json:"weaponType" validate:"required_if=Kind weapon"`

	Defense int    `json:"defense" validate:"required_if=Kind armor"`
	Slot    string `json:"slot" validate:"required_if=Kind armor"`

	Effect string `json:"effect" validate:"required_if=Kind potion"`
	Amount int    `json:"amount" validate:"required_if=Kind potion"`
	Sips   int    `json:"sips" validate:"gte=0"` // 0 means a single sip
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	RarityColors map[string]string `json:"rarityColors"`
	Items        []ItemDef         `json:"items"`
}

// LoadItems loads the items file from the embedded items.json.
func LoadItems() (ItemsFile, error) {
	return Load[ItemsFile]("items.json")
}

// Validate checks the definition's tags.
func (d *ItemDef) Validate() error {
	return validation.Struct("item "+d.ID, d)
}

// Build creates a fresh item instance from the definition.
func (d *ItemDef) Build() (*item.Item, error) {
	opts := item.Options{
		Description: d.Description,
		Value:       d.Value,
		Rarity:      item.Rarity(d.Rarity),
		Magical:     d.Magical,
	}

	switch d.Kind {
	case "weapon":
		return item.NewWeapon(d.Name, d.Damage, item.WeaponType(d.WeaponType), opts)
	case "armor":
		return item.NewArmor(d.Name, d.Defense, item.ArmorSlot(d.Slot), opts)
	case "potion":
		sips := d.Sips
		if sips == 0 {
			sips = 1
		}
		return item.NewPotion(d.Name, item.PotionEffect(d.Effect), d.Amount, sips, opts)
	default:
		return item.NewGeneric(d.Name, opts)
	}
}
