package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/emberwood/internal/entity"
	apperrors "github.com/samdwyer/emberwood/internal/errors"
)

func TestPoisonDecay(t *testing.T) {
	player := newTestPlayer(t)
	require.NoError(t, Apply(&player.Combatant, EffectPoison, 3, 5))

	for i := 1; i <= 3; i++ {
		ticks := Tick(&player.Combatant)
		require.Len(t, ticks, 1)
		assert.Equal(t, 5, ticks[0].Amount)

		if i < 3 {
			assert.False(t, ticks[0].Ended, "tick %d", i)
			assert.True(t, player.Effects.Has(EffectPoison), "tick %d", i)
		} else {
			assert.True(t, ticks[0].Ended)
			assert.False(t, player.Effects.Has(EffectPoison))
		}
	}
	assert.Equal(t, 85, player.HP)
	assert.Empty(t, Tick(&player.Combatant))
}

func TestReapplyOverwrites(t *testing.T) {
	player := newTestPlayer(t)
	require.NoError(t, Apply(&player.Combatant, EffectPoison, 3, 5))
	Tick(&player.Combatant)

	require.NoError(t, Apply(&player.Combatant, EffectPoison, 2, 1))
	poison, ok := player.Effects.Get(EffectPoison)
	require.True(t, ok)
	assert.Equal(t, 2, poison.Duration)
	assert.Equal(t, 1, poison.Potency)

	Tick(&player.Combatant)
	Tick(&player.Combatant)
	assert.False(t, player.Effects.Has(EffectPoison))
	assert.Equal(t, 100-5-1-1, player.HP)
}

func TestPoisonBypassesDefenseAndBlock(t *testing.T) {
	player := newTestPlayer(t)
	player.Defense = 50
	player.Blocking = true
	require.NoError(t, Apply(&player.Combatant, EffectPoison, 1, 4))

	Tick(&player.Combatant)

	assert.Equal(t, 96, player.HP)
	assert.True(t, player.Blocking, "poison leaves the guard up")
}

func TestPoisonCannotDropHealthBelowZero(t *testing.T) {
	player := newTestPlayer(t)
	player.HP = 3
	require.NoError(t, Apply(&player.Combatant, EffectPoison, 2, 5))

	ticks := Tick(&player.Combatant)
	assert.Equal(t, 3, ticks[0].Amount)
	assert.Equal(t, 0, player.HP)
	assert.True(t, player.IsDefeated())
}

func TestTickOrderAndMixedExpiry(t *testing.T) {
	player := newTestPlayer(t)
	player.HP = 50
	require.NoError(t, Apply(&player.Combatant, "stun", 1, 0))
	require.NoError(t, Apply(&player.Combatant, EffectRegen, 2, 4))
	require.NoError(t, Apply(&player.Combatant, EffectPoison, 3, 2))

	ticks := Tick(&player.Combatant)
	assert.Equal(t, []StatusTick{
		{Name: "stun", Ended: true},
		{Name: EffectRegen, Amount: 4},
		{Name: EffectPoison, Amount: 2},
	}, ticks)
	assert.Equal(t, 52, player.HP)

	remaining := player.Effects.Snapshot()
	assert.Equal(t, []entity.StatusEffect{
		{Name: EffectRegen, Duration: 1, Potency: 4},
		{Name: EffectPoison, Duration: 2, Potency: 2},
	}, remaining)
}

func TestApplyValidation(t *testing.T) {
	player := newTestPlayer(t)

	tests := []struct {
		name              string
		effect            string
		duration, potency int
	}{
		{"no name", "", 2, 1},
		{"zero duration", EffectPoison, 0, 1},
		{"negative potency", EffectPoison, 2, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Apply(&player.Combatant, tt.effect, tt.duration, tt.potency)
			assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
		})
	}
	assert.Equal(t, 0, player.Effects.Len())
}
