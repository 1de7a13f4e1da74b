package gamedata

import (
	"github.com/samdwyer/emberwood/internal/entity"
	apperrors "github.com/samdwyer/emberwood/internal/errors"
)

// Catalog is the full validated game data: items, enemies and the world
// layout, with every cross reference resolved.
type Catalog struct {
	Items   *ItemRegistry
	Enemies *EnemyRegistry
	World   WorldDef
}

// LoadCatalog loads and cross-checks every embedded data file.
func LoadCatalog() (*Catalog, error) {
	items, err := LoadItemRegistry()
	if err != nil {
		return nil, err
	}
	enemies, err := LoadEnemyRegistry(items)
	if err != nil {
		return nil, err
	}
	world, err := LoadWorld()
	if err != nil {
		return nil, err
	}
	return NewCatalog(items, enemies, world)
}

// MustLoadCatalog loads the catalog, panicking on error.
// Use this for data that must be present for the game to function.
func MustLoadCatalog() *Catalog {
	catalog, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return catalog
}

// NewCatalog validates the world against the registries.
func NewCatalog(items *ItemRegistry, enemies *EnemyRegistry, world WorldDef) (*Catalog, error) {
	if err := world.Validate(); err != nil {
		return nil, err
	}

	ids := make(map[string]bool, len(world.Locations))
	for _, loc := range world.Locations {
		if ids[loc.ID] {
			return nil, duplicateID("location", loc.ID)
		}
		ids[loc.ID] = true
	}
	if !ids[world.Start] {
		return nil, unknownID("location", world.Start)
	}

	for _, loc := range world.Locations {
		for _, exit := range loc.Exits {
			if !ids[exit.To] {
				return nil, apperrors.WithMetadata(apperrors.CodeNotFound,
					loc.ID+" has an exit to unknown location '"+exit.To+"'",
					map[string]string{"location": loc.ID, "exit": exit.To})
			}
		}
		for _, id := range loc.Enemies {
			if enemies.GetByID(id) == nil {
				return nil, unknownID("enemy", id)
			}
		}
		if err := checkItemIDs(items, loc.Items); err != nil {
			return nil, err
		}
	}

	kit := world.Player.Inventory
	for _, id := range []string{world.Player.Weapon, world.Player.Armor} {
		if id != "" {
			kit = append(kit[:len(kit):len(kit)], id)
		}
	}
	if err := checkItemIDs(items, kit); err != nil {
		return nil, err
	}

	return &Catalog{Items: items, Enemies: enemies, World: world}, nil
}

// NewPlayer creates a player with the starting stats and kit. The starting
// weapon and armor are equipped.
func (c *Catalog) NewPlayer(name string) (*entity.Player, error) {
	def := c.World.Player
	player, err := entity.NewPlayer(name, def.HP, def.Attack, def.Defense)
	if err != nil {
		return nil, err
	}

	kit, err := c.Items.NewItems(def.Inventory)
	if err != nil {
		return nil, err
	}
	for _, it := range kit {
		player.Inventory.Add(it)
	}

	for _, id := range []string{def.Weapon, def.Armor} {
		if id == "" {
			continue
		}
		gear, err := c.Items.NewItem(id)
		if err != nil {
			return nil, err
		}
		player.Inventory.Add(gear)
		if _, err := player.Equip(gear); err != nil {
			return nil, err
		}
	}
	return player, nil
}

func checkItemIDs(items *ItemRegistry, ids []string) error {
	for _, id := range ids {
		if items.GetByID(id) == nil {
			return unknownID("item", id)
		}
	}
	return nil
}
