// Package world provides the location graph the player explores.
package world

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/samdwyer/emberwood/internal/errors"
	"github.com/samdwyer/emberwood/internal/gamedata"
	"github.com/samdwyer/emberwood/internal/telemetry"
)

// World is the set of locations and the player's position among them.
type World struct {
	locations map[string]*Location
	order     []*Location
	current   *Location
}

// New creates a world from locations, starting at start. Every exit must
// lead to one of the given locations.
func New(start string, locations ...*Location) (*World, error) {
	w := &World{
		locations: make(map[string]*Location, len(locations)),
		order:     locations,
	}
	for _, loc := range locations {
		if _, dup := w.locations[loc.ID]; dup {
			return nil, apperrors.WithMetadata(apperrors.CodeInvalidArgument,
				"duplicate location '"+loc.ID+"'", map[string]string{"location": loc.ID})
		}
		w.locations[loc.ID] = loc
	}
	for _, loc := range locations {
		for _, exit := range loc.Exits {
			if w.locations[exit.To] == nil {
				return nil, unknownLocation(exit.To)
			}
		}
	}

	w.current = w.locations[start]
	if w.current == nil {
		return nil, unknownLocation(start)
	}
	w.current.Visit()
	return w, nil
}

// Build creates a fresh world from the catalog, spawning every enemy and
// item in its starting place.
func Build(ctx context.Context, catalog *gamedata.Catalog) (*World, error) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "world.build")
	defer span.End()

	def := catalog.World
	locations := make([]*Location, 0, len(def.Locations))
	enemyCount, itemCount := 0, 0

	for _, ld := range def.Locations {
		exits := make([]Exit, 0, len(ld.Exits))
		for _, e := range ld.Exits {
			exits = append(exits, Exit{Direction: e.Direction, To: e.To})
		}
		loc := NewLocation(ld.ID, ld.Name, ld.Description, exits...)

		for _, id := range ld.Enemies {
			enemy, err := catalog.Enemies.NewEnemy(id)
			if err != nil {
				return nil, err
			}
			loc.AddEnemy(enemy)
			enemyCount++
		}
		items, err := catalog.Items.NewItems(ld.Items)
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			loc.AddItem(it)
			itemCount++
		}
		locations = append(locations, loc)
	}

	w, err := New(def.Start, locations...)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("world.locations", len(locations)),
		attribute.Int("world.enemies", enemyCount),
		attribute.Int("world.items", itemCount),
		attribute.String("world.start", def.Start),
	)
	return w, nil
}

// Current returns the location the player is in.
func (w *World) Current() *Location {
	return w.current
}

// Location returns the location with the given ID.
func (w *World) Location(id string) (*Location, error) {
	loc := w.locations[id]
	if loc == nil {
		return nil, unknownLocation(id)
	}
	return loc, nil
}

// Locations returns every location in definition order.
func (w *World) Locations() []*Location {
	out := make([]*Location, len(w.order))
	copy(out, w.order)
	return out
}

// Move follows the exit in direction. It reports whether the destination is
// being visited for the first time.
func (w *World) Move(direction string) (*Location, bool, error) {
	to, ok := w.current.ExitTo(direction)
	if !ok {
		return nil, false, apperrors.WithMetadata(apperrors.CodeNotFound,
			"you can't go "+direction+" from here", map[string]string{"direction": direction})
	}
	w.current = w.locations[to]
	return w.current, w.current.Visit(), nil
}

func unknownLocation(id string) error {
	return apperrors.WithMetadata(apperrors.CodeNotFound,
		"unknown location '"+id+"'", map[string]string{"location": id})
}
