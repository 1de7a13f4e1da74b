package game

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/samdwyer/emberwood/internal/combat"
	"github.com/samdwyer/emberwood/internal/entity"
	apperrors "github.com/samdwyer/emberwood/internal/errors"
	"github.com/samdwyer/emberwood/internal/item"
	"github.com/samdwyer/emberwood/internal/telemetry"
)

// sequence replays fixed random draws.
type sequence struct {
	t     *testing.T
	draws []float64
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

// scriptedProvider hands out a fixed list of actions.
type scriptedProvider struct {
	actions []combat.Action
	asked   int
}

func script(kinds ...combat.ActionKind) *scriptedProvider {
	p := &scriptedProvider{}
	for _, k := range kinds {
		p.actions = append(p.actions, combat.Action{Kind: k})
	}
	return p
}

func (p *scriptedProvider) NextAction(ctx context.Context, _ *entity.Player, _ *entity.Enemy) (combat.Action, error) {
	if err := ctx.Err(); err != nil {
		return combat.Action{}, err
	}
	if len(p.actions) == 0 {
		return combat.Action{}, errors.New("script exhausted")
	}
	p.asked++
	a := p.actions[0]
	p.actions = p.actions[1:]
	return a, nil
}

type fakeLocation struct {
	enemies []*entity.Enemy
	removed []*entity.Enemy
}

func (l *fakeLocation) EnemiesPresent() []*entity.Enemy { return l.enemies }

func (l *fakeLocation) RemoveDefeatedEnemy(e *entity.Enemy) error {
	for i, existing := range l.enemies {
		if existing == e {
			l.enemies = append(l.enemies[:i], l.enemies[i+1:]...)
			l.removed = append(l.removed, e)
			return nil
		}
	}
	return apperrors.New(apperrors.CodeNotFound, "not here")
}

type fixture struct {
	player   *entity.Player
	enemy    *entity.Enemy
	location *fakeLocation
	log      *combat.EventLog
	recorder *tracetest.SpanRecorder
	rng      *sequence
}

func newFixture(t *testing.T, draws ...float64) *fixture {
	t.Helper()
	player, err := entity.NewPlayer("Hero", 100, 10, 3)
	require.NoError(t, err)
	pelt, err := item.NewGeneric("Wolf Pelt", item.Options{Value: 4})
	require.NoError(t, err)
	enemy, err := entity.NewEnemy(entity.EnemySpec{
		ID:               "grey_wolf",
		Name:             "Grey Wolf",
		HP:               30,
		Attack:           8,
		Defense:          2,
		ExperienceReward: 25,
		GoldReward:       5,
		Loot:             []*item.Item{pelt},
	})
	require.NoError(t, err)

	return &fixture{
		player:   player,
		enemy:    enemy,
		location: &fakeLocation{enemies: []*entity.Enemy{enemy}},
		log:      &combat.EventLog{},
		recorder: tracetest.NewSpanRecorder(),
		rng:      &sequence{t: t, draws: draws},
	}
}

func (f *fixture) encounter(t *testing.T) *Encounter {
	t.Helper()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(f.recorder))
	enc, err := NewEncounter(f.player, f.enemy, f.location, EncounterOptions{
		Source: f.rng,
		Sink:   f.log,
		Tracer: telemetry.TracerFrom(tp, "combat"),
	})
	require.NoError(t, err)
	return enc
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase    Phase
		expected string
	}{
		{PhaseIdle, "idle"},
		{PhasePlayerTurn, "player_turn"},
		{PhaseEnemyTurn, "enemy_turn"},
		{PhaseVictory, "victory"},
		{PhaseDefeat, "defeat"},
		{PhaseEscaped, "escaped"},
		{Phase(99), "unknown"},
	}

	for _, tt := range tests {
		got := tt.phase.String()
		if got != tt.expected {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.expected)
		}
	}
}

func TestNewEncounterValidation(t *testing.T) {
	f := newFixture(t)

	_, err := NewEncounter(nil, f.enemy, f.location, EncounterOptions{Source: f.rng})
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	_, err = NewEncounter(f.player, f.enemy, nil, EncounterOptions{Source: f.rng})
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	_, err = NewEncounter(f.player, f.enemy, f.location, EncounterOptions{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	f.enemy.HP = 0
	_, err = NewEncounter(f.player, f.enemy, f.location, EncounterOptions{Source: f.rng})
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestScenarioAttackUntilVictory(t *testing.T) {
	// coin: player first; every enemy roll misses its special
	f := newFixture(t, 0.9, 0.9, 0.9, 0.9)
	enc := f.encounter(t)
	provider := script(combat.ActionAttack, combat.ActionAttack, combat.ActionAttack, combat.ActionAttack)

	require.NoError(t, enc.Start(context.Background()))
	assert.False(t, enc.EnemyFirst())
	assert.Equal(t, PhasePlayerTurn, enc.Phase())

	wantEnemyHP := []int{22, 14, 6}
	wantPlayerHP := []int{95, 90, 85}
	for i := range wantEnemyHP {
		require.NoError(t, enc.Step(context.Background(), provider))
		assert.Equal(t, wantEnemyHP[i], f.enemy.HP, "after player attack %d", i+1)
		assert.Equal(t, PhaseEnemyTurn, enc.Phase())

		require.NoError(t, enc.Step(context.Background(), provider))
		assert.Equal(t, wantPlayerHP[i], f.player.HP, "after enemy attack %d", i+1)
		assert.Equal(t, PhasePlayerTurn, enc.Phase())
	}

	out, err := enc.Run(context.Background(), provider)
	require.NoError(t, err)
	assert.Equal(t, 0, f.enemy.HP)
	assert.Equal(t, PhaseVictory, out.Phase)
	assert.Equal(t, 7, out.Turns)
	assert.Equal(t, 4, provider.asked)

	assert.Equal(t, 25, out.Experience)
	assert.Equal(t, 25, f.player.Experience)
	assert.Equal(t, 55, f.player.Gold)
	require.Len(t, out.Loot, 1)
	assert.True(t, f.player.Inventory.Contains(out.Loot[0]))
	assert.Empty(t, f.enemy.Loot)
	assert.Equal(t, []*entity.Enemy{f.enemy}, f.location.removed, "removed exactly once")
	assert.Empty(t, f.location.EnemiesPresent())

	kinds := f.log.Kinds()
	assert.Equal(t, combat.EventEncounterStart, kinds[0])
	assert.Equal(t, combat.EventOutcome, kinds[len(kinds)-1])
	assert.Contains(t, kinds, combat.EventReward)
	assert.Contains(t, kinds, combat.EventLoot)
}

func TestEncounterSpans(t *testing.T) {
	f := newFixture(t, 0.9, 0.9, 0.9, 0.9)
	enc := f.encounter(t)

	_, err := enc.Run(context.Background(), script(combat.ActionAttack, combat.ActionAttack, combat.ActionAttack, combat.ActionAttack))
	require.NoError(t, err)

	var names []string
	for _, s := range f.recorder.Ended() {
		names = append(names, s.Name())
	}
	want := []string{"combat.start"}
	for i := 0; i < 7; i++ {
		want = append(want, "combat.turn")
	}
	want = append(want, "combat.end")
	assert.Equal(t, want, names)
}

func TestVictoryCanLevelUpMoreThanOnce(t *testing.T) {
	f := newFixture(t, 0.9)
	f.enemy.ExperienceReward = 300
	f.enemy.HP = 5
	enc := f.encounter(t)

	out, err := enc.Run(context.Background(), script(combat.ActionAttack))
	require.NoError(t, err)
	assert.Equal(t, PhaseVictory, out.Phase)
	require.Len(t, out.LevelUps, 2)
	assert.Equal(t, 3, f.player.Level)
	assert.Contains(t, f.log.Kinds(), combat.EventLevelUp)
}

func TestCheckStatusAndRejectedActionsDoNotConsumeTurn(t *testing.T) {
	f := newFixture(t, 0.9)
	enc := f.encounter(t)
	provider := &scriptedProvider{actions: []combat.Action{
		{Kind: combat.ActionCheckStatus},
		{Kind: combat.ActionUseItem, Item: "Elixir of Nothing"},
		{Kind: combat.ActionAttack},
	}}

	require.NoError(t, enc.Start(context.Background()))
	require.NoError(t, enc.Step(context.Background(), provider))

	assert.Equal(t, 3, provider.asked)
	assert.Equal(t, 22, f.enemy.HP)
	assert.Equal(t, PhaseEnemyTurn, enc.Phase())
	assert.Equal(t, 1, enc.Turns())

	kinds := f.log.Kinds()
	assert.Contains(t, kinds, combat.EventStatusReport)
	assert.Contains(t, kinds, combat.EventRejected)
}

func TestCheckStatusDoesNotTickEffects(t *testing.T) {
	f := newFixture(t, 0.9)
	require.NoError(t, combat.Apply(&f.player.Combatant, combat.EffectPoison, 3, 4))
	enc := f.encounter(t)
	provider := script(combat.ActionCheckStatus, combat.ActionCheckStatus, combat.ActionDefend)

	require.NoError(t, enc.Start(context.Background()))
	require.NoError(t, enc.Step(context.Background(), provider))

	assert.Equal(t, 96, f.player.HP, "one tick for the one consumed action")
	poison, ok := f.player.Effects.Get(combat.EffectPoison)
	require.True(t, ok)
	assert.Equal(t, 2, poison.Duration)
	assert.True(t, f.player.Blocking)
}

func TestSuccessfulFleeEndsWithoutTick(t *testing.T) {
	f := newFixture(t, 0.9, 0.1)
	require.NoError(t, combat.Apply(&f.player.Combatant, combat.EffectPoison, 3, 4))
	enc := f.encounter(t)

	out, err := enc.Run(context.Background(), script(combat.ActionFlee))
	require.NoError(t, err)
	assert.Equal(t, PhaseEscaped, out.Phase)
	assert.Equal(t, 100, f.player.HP)
	assert.Empty(t, f.location.removed)
	assert.Equal(t, 50, f.player.Gold)
	assert.Equal(t, 0, f.player.Experience)
}

func TestFailedFleeConsumesTurn(t *testing.T) {
	f := newFixture(t, 0.9, 0.7)
	enc := f.encounter(t)

	require.NoError(t, enc.Start(context.Background()))
	require.NoError(t, enc.Step(context.Background(), script(combat.ActionFlee)))
	assert.Equal(t, PhaseEnemyTurn, enc.Phase())
}

func TestEnemyFirstPowerStrikeAndCooldown(t *testing.T) {
	// coin: enemy first; special roll hits
	f := newFixture(t, 0.1, 0.2)
	enc := f.encounter(t)

	require.NoError(t, enc.Start(context.Background()))
	assert.True(t, enc.EnemyFirst())
	assert.Equal(t, PhaseEnemyTurn, enc.Phase())

	require.NoError(t, enc.Step(context.Background(), nil))
	assert.Equal(t, 91, f.player.HP)
	assert.Equal(t, f.enemy.MaxCooldown-1, f.enemy.Cooldown, "cooldown ticks at the end of the enemy turn")
	assert.Equal(t, PhasePlayerTurn, enc.Phase())
}

func TestDefeat(t *testing.T) {
	f := newFixture(t, 0.1, 0.9)
	f.player.HP = 5
	enc := f.encounter(t)

	out, err := enc.Run(context.Background(), script())
	require.NoError(t, err)
	assert.Equal(t, PhaseDefeat, out.Phase)
	assert.Equal(t, 0, f.player.HP)
	assert.Equal(t, 50, f.player.Gold)
	assert.Equal(t, 0, out.Experience)
	assert.Empty(t, f.location.removed)
	assert.Len(t, f.enemy.Loot, 1)
}

func TestPlayerDefeatWinsOverEnemyDefeat(t *testing.T) {
	f := newFixture(t, 0.9)
	f.player.HP = 2
	f.enemy.HP = 5
	require.NoError(t, combat.Apply(&f.player.Combatant, combat.EffectPoison, 2, 5))
	enc := f.encounter(t)

	out, err := enc.Run(context.Background(), script(combat.ActionAttack))
	require.NoError(t, err)
	assert.Equal(t, 0, f.enemy.HP)
	assert.Equal(t, PhaseDefeat, out.Phase)
	assert.Empty(t, f.location.removed)
}

func TestVenomSpitterPoisonsPlayer(t *testing.T) {
	f := newFixture(t, 0.1, 0.1, 0.5)
	f.enemy.Archetype = entity.ArchetypeVenomSpitter
	f.enemy.Attack = 9
	enc := f.encounter(t)

	require.NoError(t, enc.Start(context.Background()))
	require.NoError(t, enc.Step(context.Background(), nil))
	assert.True(t, f.player.Effects.Has(combat.EffectPoison))
	assert.Equal(t, 100, f.player.HP)
	assert.Contains(t, f.log.Kinds(), combat.EventStatusApplied)

	require.NoError(t, enc.Step(context.Background(), script(combat.ActionDefend)))
	assert.Equal(t, 97, f.player.HP, "poison ticks after the player's own action")
}

func TestInterruptLeavesStateUntouched(t *testing.T) {
	f := newFixture(t, 0.9)
	enc := f.encounter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := enc.Run(ctx, script(combat.ActionAttack))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInterrupted)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, PhasePlayerTurn, out.Phase)
	assert.Equal(t, 30, f.enemy.HP)
	assert.Equal(t, 100, f.player.HP)
	assert.Equal(t, 0, enc.Turns())
}

func TestProviderInterrupt(t *testing.T) {
	f := newFixture(t, 0.9)
	enc := f.encounter(t)
	provider := providerFunc(func(context.Context) (combat.Action, error) {
		return combat.Action{}, apperrors.New(apperrors.CodeInterrupted, "escape pressed")
	})

	_, err := enc.Run(context.Background(), provider)
	assert.ErrorIs(t, err, apperrors.ErrInterrupted)
	assert.Equal(t, 30, f.enemy.HP)
}

func TestStartTwice(t *testing.T) {
	f := newFixture(t, 0.9)
	enc := f.encounter(t)
	f.player.Blocking = true
	f.enemy.Blocking = true

	require.NoError(t, enc.Start(context.Background()))
	assert.False(t, f.player.Blocking)
	assert.False(t, f.enemy.Blocking)
	assert.ErrorIs(t, enc.Start(context.Background()), apperrors.ErrInvalidState)
}

type providerFunc func(context.Context) (combat.Action, error)

func (f providerFunc) NextAction(ctx context.Context, _ *entity.Player, _ *entity.Enemy) (combat.Action, error) {
	return f(ctx)
}

func TestStatusReport(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, combat.Apply(&f.enemy.Combatant, combat.EffectPoison, 2, 1))
	f.player.Blocking = true

	got := StatusReport(f.player, f.enemy)
	assert.Equal(t,
		"Hero (HP: 100/100, ATK: 10, DEF: 3) MP 50/50 [guarding] | Grey Wolf (HP: 30/30, ATK: 8, DEF: 2) [poison 2]",
		got)
}
