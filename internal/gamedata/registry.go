package gamedata

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/emberwood/internal/entity"
	apperrors "github.com/samdwyer/emberwood/internal/errors"
	"github.com/samdwyer/emberwood/internal/item"
)

// ItemRegistry holds validated item definitions and builds instances of them.
type ItemRegistry struct {
	items  map[string]*ItemDef
	all    []ItemDef
	colors map[item.Rarity]tcell.Color
}

// NewItemRegistry validates the definitions and creates a registry.
func NewItemRegistry(file ItemsFile) (*ItemRegistry, error) {
	registry := &ItemRegistry{
		items:  make(map[string]*ItemDef, len(file.Items)),
		all:    file.Items,
		colors: make(map[item.Rarity]tcell.Color, len(file.RarityColors)),
	}
	for i := range registry.all {
		def := &registry.all[i]
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if _, dup := registry.items[def.ID]; dup {
			return nil, duplicateID("item", def.ID)
		}
		// Catch bad payloads (unknown slot, zero damage) at load time.
		if _, err := def.Build(); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInvalidArgument, "item "+def.ID, err)
		}
		registry.items[def.ID] = def
	}
	for rarity, hex := range file.RarityColors {
		color, err := ParseHexColor(hex)
		if err != nil {
			return nil, err
		}
		registry.colors[item.Rarity(rarity)] = color
	}
	return registry, nil
}

// LoadItemRegistry loads and creates a registry from the embedded items.json.
func LoadItemRegistry() (*ItemRegistry, error) {
	file, err := LoadItems()
	if err != nil {
		return nil, err
	}
	if len(file.Items) == 0 {
		return nil, apperrors.New(apperrors.CodeInvalidArgument, "no items loaded from items.json")
	}
	return NewItemRegistry(file)
}

// GetByID returns the item definition with the given ID, or nil if not found.
func (r *ItemRegistry) GetByID(id string) *ItemDef {
	return r.items[id]
}

// NewItem builds a fresh instance of the item with the given ID.
func (r *ItemRegistry) NewItem(id string) (*item.Item, error) {
	def := r.items[id]
	if def == nil {
		return nil, unknownID("item", id)
	}
	return def.Build()
}

// NewItems builds one fresh instance per ID, in order.
func (r *ItemRegistry) NewItems(ids []string) ([]*item.Item, error) {
	items := make([]*item.Item, 0, len(ids))
	for _, id := range ids {
		it, err := r.NewItem(id)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// RarityColor returns the display color for a rarity, white if unset.
func (r *ItemRegistry) RarityColor(rarity item.Rarity) tcell.Color {
	if color, ok := r.colors[rarity]; ok {
		return color
	}
	return tcell.ColorWhite
}

// All returns all item definitions.
func (r *ItemRegistry) All() []ItemDef {
	return r.all
}

// Count returns the number of items in the registry.
func (r *ItemRegistry) Count() int {
	return len(r.all)
}

// =============================================================================
// EnemyRegistry
// =============================================================================

// EnemyRegistry holds validated enemy definitions and spawns instances.
type EnemyRegistry struct {
	enemies map[string]*EnemyDef
	all     []EnemyDef
	items   *ItemRegistry
}

// NewEnemyRegistry validates the definitions, including their loot IDs,
// and creates a registry.
func NewEnemyRegistry(enemies []EnemyDef, items *ItemRegistry) (*EnemyRegistry, error) {
	registry := &EnemyRegistry{
		enemies: make(map[string]*EnemyDef, len(enemies)),
		all:     enemies,
		items:   items,
	}
	for i := range registry.all {
		def := &registry.all[i]
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if _, dup := registry.enemies[def.ID]; dup {
			return nil, duplicateID("enemy", def.ID)
		}
		for _, lootID := range def.Loot {
			if items.GetByID(lootID) == nil {
				return nil, unknownID("item", lootID)
			}
		}
		registry.enemies[def.ID] = def
	}
	return registry, nil
}

// LoadEnemyRegistry loads and creates a registry from the embedded enemies.json.
func LoadEnemyRegistry(items *ItemRegistry) (*EnemyRegistry, error) {
	enemies, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	if len(enemies) == 0 {
		return nil, apperrors.New(apperrors.CodeInvalidArgument, "no enemies loaded from enemies.json")
	}
	return NewEnemyRegistry(enemies, items)
}

// GetByID returns the enemy definition with the given ID, or nil if not found.
func (r *EnemyRegistry) GetByID(id string) *EnemyDef {
	return r.enemies[id]
}

// NewEnemy spawns a fresh enemy at full health carrying its own loot.
func (r *EnemyRegistry) NewEnemy(id string) (*entity.Enemy, error) {
	def := r.enemies[id]
	if def == nil {
		return nil, unknownID("enemy", id)
	}
	loot, err := r.items.NewItems(def.Loot)
	if err != nil {
		return nil, err
	}
	return entity.NewEnemy(entity.EnemySpec{
		ID:               def.ID,
		Name:             def.Name,
		HP:               def.HP,
		Attack:           def.Attack,
		Defense:          def.Defense,
		ExperienceReward: def.Experience,
		GoldReward:       def.Gold,
		MaxCooldown:      def.MaxCooldown,
		Archetype:        entity.Archetype(def.Archetype),
		Loot:             loot,
	})
}

// All returns all enemy definitions.
func (r *EnemyRegistry) All() []EnemyDef {
	return r.all
}

// Count returns the number of enemy types in the registry.
func (r *EnemyRegistry) Count() int {
	return len(r.all)
}

func unknownID(kind, id string) error {
	return apperrors.WithMetadata(apperrors.CodeNotFound,
		"unknown "+kind+" '"+id+"'", map[string]string{kind: id})
}

func duplicateID(kind, id string) error {
	return apperrors.WithMetadata(apperrors.CodeInvalidArgument,
		"duplicate "+kind+" id '"+id+"'", map[string]string{kind: id})
}
