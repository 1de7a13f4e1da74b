package game

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/emberwood/internal/combat"
	"github.com/samdwyer/emberwood/internal/gamedata"
)

// DefaultPlayerName names the player when nothing else does.
const DefaultPlayerName = "Hero"

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible fights and
	// ambushes when Source is nil.
	Seed int64
	// Source overrides the seeded random source.
	Source combat.Source

	PlayerName string
	// AmbushChance is the chance that entering a location with enemies
	// starts a fight with one of them.
	AmbushChance float64

	// Catalog defaults to the embedded game data.
	Catalog *gamedata.Catalog
	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider
}

func (c Config) source() combat.Source {
	if c.Source != nil {
		return c.Source
	}
	return combat.NewSource(c.Seed)
}

func (c Config) playerName() string {
	if c.PlayerName == "" {
		return DefaultPlayerName
	}
	return c.PlayerName
}
