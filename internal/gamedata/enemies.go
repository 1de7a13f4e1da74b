package gamedata

import "github.com/samdwyer/emberwood/internal/validation"

// EnemyDef defines an enemy type loaded from JSON.
type EnemyDef struct {
	ID          string   `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	HP          int      `json:"hp" validate:"gt=0"`
	Attack      int      `json:"attack" validate:"gte=0"`
	Defense     int      `json:"defense" validate:"gte=0"`
	Experience  int      `json:"experience" validate:"gte=0"`
	Gold        int      `json:"gold" validate:"gte=0"`
	MaxCooldown int      `json:"maxCooldown" validate:"gte=0"`
	Archetype   string   `json:"archetype" validate:"omitempty,oneof=standard venom_spitter"`
	Loot        []string `json:"loot"` // Item IDs
}

// EnemiesFile represents the structure of enemies.json.
type EnemiesFile struct {
	Enemies []EnemyDef `json:"enemies"`
}

// LoadEnemies loads enemy definitions from the embedded enemies.json file.
func LoadEnemies() ([]EnemyDef, error) {
	file, err := Load[EnemiesFile]("enemies.json")
	if err != nil {
		return nil, err
	}
	return file.Enemies, nil
}

// Validate checks the definition's tags.
func (d *EnemyDef) Validate() error {
	return validation.Struct("enemy "+d.ID, d)
}
