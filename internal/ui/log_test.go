package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/samdwyer/emberwood/internal/combat"
)

func TestMessageLogKeepsNewest(t *testing.T) {
	log := NewMessageLog(3)
	for _, msg := range []string{"one", "two", "", "three", "four"} {
		log.Add(msg)
	}

	assert.Equal(t, []string{"two", "three", "four"}, log.Lines())

	log.Clear()
	assert.Empty(t, log.Lines())
}

func TestMessageLogDefaultSize(t *testing.T) {
	log := NewMessageLog(0)
	for i := 0; i < DefaultLogSize+2; i++ {
		log.Add("line")
	}
	assert.Len(t, log.Lines(), DefaultLogSize)
}

func TestMessageLogIsEventSink(t *testing.T) {
	log := NewMessageLog(5)
	var sink combat.EventSink = log

	sink.Emit(combat.Event{Kind: combat.EventAttack, Message: "Hero attacks Grey Wolf for 8 damage!"})
	sink.Emit(combat.Event{Kind: combat.EventStatusTick})

	assert.Equal(t, []string{"Hero attacks Grey Wolf for 8 damage!"}, log.Lines())
}
