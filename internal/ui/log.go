package ui

import "github.com/samdwyer/emberwood/internal/combat"

// DefaultLogSize is how many messages a MessageLog keeps.
const DefaultLogSize = 8

// MessageLog keeps the most recent game messages for display. It is a
// combat.EventSink, so an encounter can report straight into it.
type MessageLog struct {
	lines []string
	size  int
}

// NewMessageLog creates a log holding at most size messages.
func NewMessageLog(size int) *MessageLog {
	if size <= 0 {
		size = DefaultLogSize
	}
	return &MessageLog{size: size}
}

// Add appends a message, dropping the oldest once the log is full.
func (l *MessageLog) Add(msg string) {
	if msg == "" {
		return
	}
	l.lines = append(l.lines, msg)
	if over := len(l.lines) - l.size; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
}

// Emit records the event's display message.
func (l *MessageLog) Emit(ev combat.Event) {
	l.Add(ev.Message)
}

// Lines returns the messages, oldest first.
func (l *MessageLog) Lines() []string {
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Clear empties the log.
func (l *MessageLog) Clear() {
	l.lines = l.lines[:0]
}
