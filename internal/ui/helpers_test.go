package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/emberwood/internal/entity"
	"github.com/samdwyer/emberwood/internal/item"
)

// feed is an EventSource that replays events and then reports a closed
// screen.
type feed struct {
	events []tcell.Event
}

func keys(events ...tcell.Event) *feed {
	return &feed{events: events}
}

func (f *feed) PollEvent() tcell.Event {
	if len(f.events) == 0 {
		return nil
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev
}

func runeKey(r rune) tcell.Event {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func specialKey(k tcell.Key) tcell.Event {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func newTestScreen(t *testing.T) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	screen, err := NewScreenFrom(sim)
	require.NoError(t, err)
	sim.SetSize(100, 40)
	t.Cleanup(screen.Close)
	return screen, sim
}

// screenText returns the shown contents, one line per row with trailing
// blanks trimmed.
func screenText(sim tcell.SimulationScreen) string {
	cells, width, height := sim.GetContents()
	var b strings.Builder
	for y := 0; y < height; y++ {
		var row strings.Builder
		for x := 0; x < width; x++ {
			cell := cells[y*width+x]
			if len(cell.Runes) == 0 {
				row.WriteRune(' ')
				continue
			}
			row.WriteRune(cell.Runes[0])
		}
		b.WriteString(strings.TrimRight(row.String(), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func newTestPlayer(t *testing.T) *entity.Player {
	t.Helper()
	p, err := entity.NewPlayer("Hero", 100, 10, 3)
	require.NoError(t, err)
	return p
}

func newTestEnemy(t *testing.T) *entity.Enemy {
	t.Helper()
	e, err := entity.NewEnemy(entity.EnemySpec{ID: "wolf", Name: "Grey Wolf", HP: 30, Attack: 8, Defense: 2})
	require.NoError(t, err)
	return e
}

func givePotion(t *testing.T, p *entity.Player, name string) *item.Item {
	t.Helper()
	potion, err := item.NewPotion(name, item.EffectHeal, 25, 1, item.Options{})
	require.NoError(t, err)
	p.Inventory.Add(potion)
	return potion
}
