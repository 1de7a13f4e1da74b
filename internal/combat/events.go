package combat

// EventKind classifies a combat event.
type EventKind string

const (
	EventEncounterStart EventKind = "encounter_start"
	EventTurnOrder      EventKind = "turn_order"
	EventAttack         EventKind = "attack"
	EventDefend         EventKind = "defend"
	EventFlee           EventKind = "flee"
	EventItemUsed       EventKind = "item_used"
	EventSpell          EventKind = "spell"
	EventSpecial        EventKind = "special"
	EventStatusApplied  EventKind = "status_applied"
	EventStatusTick     EventKind = "status_tick"
	EventStatusExpired  EventKind = "status_expired"
	EventStatusReport   EventKind = "status_report"
	EventRejected       EventKind = "rejected"
	EventReward         EventKind = "reward"
	EventLevelUp        EventKind = "level_up"
	EventLoot           EventKind = "loot"
	EventOutcome        EventKind = "outcome"
)

// Event is a structured record of something that happened in an encounter.
// Message is ready for display; the other fields are for machines.
type Event struct {
	Kind    EventKind
	Actor   string
	Target  string
	Amount  int
	Detail  string
	Message string
}

// EventSink receives combat events in the order they happen.
type EventSink interface {
	Emit(Event)
}

// EventLog is an EventSink that keeps every event in memory.
type EventLog struct {
	events []Event
}

// Emit appends an event.
func (l *EventLog) Emit(e Event) {
	l.events = append(l.events, e)
}

// Events returns a copy of the recorded events.
func (l *EventLog) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Kinds returns the kinds of the recorded events in order.
func (l *EventLog) Kinds() []EventKind {
	kinds := make([]EventKind, len(l.events))
	for i, e := range l.events {
		kinds[i] = e.Kind
	}
	return kinds
}

// SinkFunc adapts a function to an EventSink.
type SinkFunc func(Event)

// Emit calls f(e).
func (f SinkFunc) Emit(e Event) { f(e) }

// Discard is an EventSink that drops every event.
var Discard EventSink = SinkFunc(func(Event) {})
