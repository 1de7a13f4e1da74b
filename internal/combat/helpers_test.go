package combat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samdwyer/emberwood/internal/entity"
	"github.com/samdwyer/emberwood/internal/item"
)

// sequence is a Source that replays fixed draws and fails the test when it
// runs dry.
type sequence struct {
	t     *testing.T
	draws []float64
}

func newSequence(t *testing.T, draws ...float64) *sequence {
	return &sequence{t: t, draws: draws}
}

func (s *sequence) Float64() float64 {
	if len(s.draws) == 0 {
		s.t.Fatalf("unexpected random draw")
		return 0
	}
	v := s.draws[0]
	s.draws = s.draws[1:]
	return v
}

func (s *sequence) remaining() int { return len(s.draws) }

func newTestPlayer(t *testing.T) *entity.Player {
	t.Helper()
	p, err := entity.NewPlayer("Hero", 100, 10, 3)
	require.NoError(t, err)
	return p
}

func newTestEnemy(t *testing.T, archetype entity.Archetype) *entity.Enemy {
	t.Helper()
	e, err := entity.NewEnemy(entity.EnemySpec{
		ID:               "grey_wolf",
		Name:             "Grey Wolf",
		HP:               30,
		Attack:           8,
		Defense:          2,
		ExperienceReward: 25,
		GoldReward:       5,
		Archetype:        archetype,
	})
	require.NoError(t, err)
	return e
}

func givePotion(t *testing.T, p *entity.Player, effect item.PotionEffect, amount, sips int) *item.Item {
	t.Helper()
	potion, err := item.NewPotion("Test Potion", effect, amount, sips, item.Options{})
	require.NoError(t, err)
	p.Inventory.Add(potion)
	return potion
}
