package gamedata

import "github.com/samdwyer/emberwood/internal/validation"

// WorldDef is the structure of world.json.
type WorldDef struct {
	Start     string        `json:"start" validate:"required"`
	Player    PlayerDef     `json:"player"`
	Locations []LocationDef `json:"locations" validate:"min=1,dive"`
}

// PlayerDef holds the starting stats and kit of a new player.
type PlayerDef struct {
	HP        int      `json:"hp" validate:"gt=0"`
	Attack    int      `json:"attack" validate:"gte=0"`
	Defense   int      `json:"defense" validate:"gte=0"`
	Weapon    string   `json:"weapon"` // equipped at start
	Armor     string   `json:"armor"`  // equipped at start
	Inventory []string `json:"inventory"`
}

// LocationDef defines one location and what starts in it.
type LocationDef struct {
	ID          string    `json:"id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	Exits       []ExitDef `json:"exits" validate:"dive"`
	Enemies     []string  `json:"enemies"`
	Items       []string  `json:"items"`
}

// ExitDef links a direction to another location's ID.
type ExitDef struct {
	Direction string `json:"direction" validate:"required"`
	To        string `json:"to" validate:"required"`
}

// LoadWorld loads the world layout from the embedded world.json file.
func LoadWorld() (WorldDef, error) {
	return Load[WorldDef]("world.json")
}

// Validate checks the definition's tags.
func (d *WorldDef) Validate() error {
	return validation.Struct("world", d)
}
