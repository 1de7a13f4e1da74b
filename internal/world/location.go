package world

import (
	"strings"

	"github.com/samdwyer/emberwood/internal/entity"
	apperrors "github.com/samdwyer/emberwood/internal/errors"
	"github.com/samdwyer/emberwood/internal/item"
)

// Exit connects a location to a neighbor in a named direction.
type Exit struct {
	Direction string
	To        string // Location ID
}

// Location is a place in the world holding enemies and loose items.
type Location struct {
	ID          string
	Name        string
	Description string
	Exits       []Exit // in display order

	enemies []*entity.Enemy
	items   []*item.Item
	visited bool
}

// NewLocation creates an empty location.
func NewLocation(id, name, description string, exits ...Exit) *Location {
	return &Location{ID: id, Name: name, Description: description, Exits: exits}
}

// EnemiesPresent returns the enemies still in the location.
func (l *Location) EnemiesPresent() []*entity.Enemy {
	out := make([]*entity.Enemy, len(l.enemies))
	copy(out, l.enemies)
	return out
}

// AddEnemy places an enemy in the location.
func (l *Location) AddEnemy(e *entity.Enemy) {
	if e != nil {
		l.enemies = append(l.enemies, e)
	}
}

// RemoveDefeatedEnemy takes a defeated enemy out of the location.
func (l *Location) RemoveDefeatedEnemy(e *entity.Enemy) error {
	for i, existing := range l.enemies {
		if existing == e {
			l.enemies = append(l.enemies[:i], l.enemies[i+1:]...)
			return nil
		}
	}
	name := "enemy"
	if e != nil {
		name = e.Name
	}
	return apperrors.WithMetadata(apperrors.CodeNotFound,
		name+" is not in "+l.Name, map[string]string{"enemy": name, "location": l.ID})
}

// Items returns the items lying in the location.
func (l *Location) Items() []*item.Item {
	out := make([]*item.Item, len(l.items))
	copy(out, l.items)
	return out
}

// AddItem drops an item in the location.
func (l *Location) AddItem(it *item.Item) {
	if it != nil {
		l.items = append(l.items, it)
	}
}

// TakeItem removes and returns the first item whose name matches, ignoring case.
func (l *Location) TakeItem(name string) (*item.Item, error) {
	for i, it := range l.items {
		if it.Matches(name) {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return it, nil
		}
	}
	return nil, apperrors.WithMetadata(apperrors.CodeNotFound,
		"there is no '"+name+"' here", map[string]string{"item": name, "location": l.ID})
}

// ExitTo returns the destination of the exit in the given direction.
func (l *Location) ExitTo(direction string) (string, bool) {
	direction = strings.TrimSpace(direction)
	for _, exit := range l.Exits {
		if strings.EqualFold(exit.Direction, direction) {
			return exit.To, true
		}
	}
	return "", false
}

// Visit marks the location as visited and reports whether this was the
// first visit.
func (l *Location) Visit() bool {
	first := !l.visited
	l.visited = true
	return first
}

// Visited reports whether the player has been here before.
func (l *Location) Visited() bool {
	return l.visited
}
