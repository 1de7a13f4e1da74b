package entity

// StatusEffect is a timed, named modifier on a combatant.
type StatusEffect struct {
	Name     string
	Duration int // turns remaining
	Potency  int
}

// Effects is an insertion-ordered set of status effects keyed by name.
// Re-applying a name overwrites the entry in place, keeping its position.
type Effects struct {
	entries []StatusEffect
}

// Set adds or replaces the effect with the same name.
func (e *Effects) Set(effect StatusEffect) {
	for i := range e.entries {
		if e.entries[i].Name == effect.Name {
			e.entries[i] = effect
			return
		}
	}
	e.entries = append(e.entries, effect)
}

// Get returns the effect with the given name.
func (e *Effects) Get(name string) (StatusEffect, bool) {
	for _, existing := range e.entries {
		if existing.Name == name {
			return existing, true
		}
	}
	return StatusEffect{}, false
}

// Has reports whether an effect with the given name is active.
func (e *Effects) Has(name string) bool {
	_, ok := e.Get(name)
	return ok
}

// Remove deletes the effect with the given name, if present.
func (e *Effects) Remove(name string) {
	for i, existing := range e.entries {
		if existing.Name == name {
			e.entries = append(e.entries[:i], e.entries[i+1:]...)
			return
		}
	}
}

// Snapshot returns a copy of the active effects in insertion order.
func (e *Effects) Snapshot() []StatusEffect {
	out := make([]StatusEffect, len(e.entries))
	copy(out, e.entries)
	return out
}

// Len returns the number of active effects.
func (e *Effects) Len() int {
	return len(e.entries)
}

// Clear removes every effect.
func (e *Effects) Clear() {
	e.entries = nil
}
