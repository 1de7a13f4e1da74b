package game

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/emberwood/internal/combat"
	"github.com/samdwyer/emberwood/internal/entity"
	apperrors "github.com/samdwyer/emberwood/internal/errors"
	"github.com/samdwyer/emberwood/internal/item"
	"github.com/samdwyer/emberwood/internal/logger"
	"github.com/samdwyer/emberwood/internal/telemetry"
)

// Phase represents where an encounter is in its lifecycle.
type Phase int

const (
	// PhaseIdle - created but not started
	PhaseIdle Phase = iota
	// PhasePlayerTurn - waiting for the player's action
	PhasePlayerTurn
	// PhaseEnemyTurn - the enemy is acting
	PhaseEnemyTurn
	// PhaseVictory - the enemy was defeated
	PhaseVictory
	// PhaseDefeat - the player was defeated
	PhaseDefeat
	// PhaseEscaped - the player fled
	PhaseEscaped
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseEnemyTurn:
		return "enemy_turn"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	case PhaseEscaped:
		return "escaped"
	default:
		return "unknown"
	}
}

// Terminal reports whether the encounter is over.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat || p == PhaseEscaped
}

// ActionProvider supplies the player's choice for each turn. It is the only
// place an encounter blocks.
type ActionProvider interface {
	NextAction(ctx context.Context, player *entity.Player, enemy *entity.Enemy) (combat.Action, error)
}

// Location owns the enemies an encounter can be fought against.
type Location interface {
	EnemiesPresent() []*entity.Enemy
	RemoveDefeatedEnemy(enemy *entity.Enemy) error
}

// Outcome summarizes a finished encounter.
type Outcome struct {
	Phase      Phase
	Turns      int
	Experience int
	Gold       int
	Loot       []*item.Item
	LevelUps   []entity.LevelUp
}

// EncounterOptions configures an encounter. Source is required.
type EncounterOptions struct {
	Source combat.Source
	Sink   combat.EventSink // defaults to combat.Discard
	Tracer trace.Tracer     // defaults to the global "combat" tracer
}

// Encounter runs one fight between the player and a single enemy.
type Encounter struct {
	ID string

	player   *entity.Player
	enemy    *entity.Enemy
	location Location

	rng      combat.Source
	resolver *combat.Resolver
	sink     combat.EventSink
	tracer   trace.Tracer

	phase      Phase
	enemyFirst bool
	turns      int
}

// NewEncounter prepares an encounter. It does not roll for turn order
// until Start.
func NewEncounter(player *entity.Player, enemy *entity.Enemy, location Location, opts EncounterOptions) (*Encounter, error) {
	switch {
	case player == nil || enemy == nil:
		return nil, apperrors.New(apperrors.CodeInvalidArgument, "an encounter needs a player and an enemy")
	case location == nil:
		return nil, apperrors.New(apperrors.CodeInvalidArgument, "an encounter needs a location")
	case opts.Source == nil:
		return nil, apperrors.New(apperrors.CodeInvalidArgument, "an encounter needs a random source")
	case player.IsDefeated():
		return nil, apperrors.New(apperrors.CodeInvalidState, player.Name+" is in no shape to fight")
	case enemy.IsDefeated():
		return nil, apperrors.New(apperrors.CodeInvalidState, enemy.Name+" is already defeated")
	}

	sink := opts.Sink
	if sink == nil {
		sink = combat.Discard
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = telemetry.Tracer("combat")
	}

	return &Encounter{
		ID:       uuid.NewString(),
		player:   player,
		enemy:    enemy,
		location: location,
		rng:      opts.Source,
		resolver: combat.NewResolver(opts.Source),
		sink:     sink,
		tracer:   tracer,
		phase:    PhaseIdle,
	}, nil
}

// Phase returns the current phase.
func (e *Encounter) Phase() Phase { return e.phase }

// EnemyFirst reports whether the enemy won the opening coin flip.
func (e *Encounter) EnemyFirst() bool { return e.enemyFirst }

// Turns returns the number of turns taken so far.
func (e *Encounter) Turns() int { return e.turns }

// Start clears stale guards and flips a coin for who acts first. The order
// holds for the whole encounter.
func (e *Encounter) Start(ctx context.Context) error {
	if e.phase != PhaseIdle {
		return apperrors.New(apperrors.CodeInvalidState, "encounter already started")
	}
	ctx = logger.WithEncounterID(ctx, e.ID)

	e.player.Blocking = false
	e.enemy.Blocking = false
	e.enemyFirst = e.rng.Float64() < 0.5
	if e.enemyFirst {
		e.phase = PhaseEnemyTurn
	} else {
		e.phase = PhasePlayerTurn
	}

	_, span := e.tracer.Start(ctx, "combat.start")
	span.SetAttributes(
		attribute.String("encounter.id", e.ID),
		attribute.String("enemy", e.enemy.Name),
		attribute.Int("enemy.hp", e.enemy.HP),
		attribute.Int("player.hp", e.player.HP),
		attribute.Bool("enemy_first", e.enemyFirst),
	)
	span.End()

	e.emit(combat.Event{
		Kind:    combat.EventEncounterStart,
		Actor:   e.player.Name,
		Target:  e.enemy.Name,
		Message: "A wild " + e.enemy.Name + " appears!",
	})
	order := e.player.Name + " acts first."
	if e.enemyFirst {
		order = e.enemy.Name + " is faster and strikes first!"
	}
	e.emit(combat.Event{Kind: combat.EventTurnOrder, Actor: e.firstActor(), Message: order})

	logger.FromContext(ctx).Info("encounter started",
		"enemy", e.enemy.Name, "enemy_first", e.enemyFirst)
	return nil
}

// Run drives the encounter to its end, starting it first if needed. An
// interrupt while waiting for the player aborts with a CodeInterrupted error
// and leaves the pending turn unapplied.
func (e *Encounter) Run(ctx context.Context, provider ActionProvider) (Outcome, error) {
	if e.phase == PhaseIdle {
		if err := e.Start(ctx); err != nil {
			return Outcome{}, err
		}
	}
	ctx = logger.WithEncounterID(ctx, e.ID)

	for !e.phase.Terminal() {
		if err := e.Step(ctx, provider); err != nil {
			logger.FromContext(ctx).Warn("encounter aborted", "phase", e.phase.String(), "error", err)
			return Outcome{Phase: e.phase, Turns: e.turns}, err
		}
	}
	return e.finish(ctx)
}

// Step plays exactly one turn for whichever side is active, then checks for
// the end of the encounter.
func (e *Encounter) Step(ctx context.Context, provider ActionProvider) error {
	ctx, span := e.tracer.Start(ctx, "combat.turn")
	defer span.End()
	span.SetAttributes(
		attribute.String("encounter.id", e.ID),
		attribute.String("phase", e.phase.String()),
		attribute.Int("turn", e.turns+1),
	)

	switch e.phase {
	case PhasePlayerTurn:
		if err := e.playerTurn(ctx, provider, span); err != nil {
			span.SetAttributes(attribute.Bool("failed", true))
			return err
		}
	case PhaseEnemyTurn:
		if err := e.enemyTurn(ctx, span); err != nil {
			span.SetAttributes(attribute.Bool("failed", true))
			return err
		}
	default:
		return apperrors.New(apperrors.CodeInvalidState, "no turn to play in phase "+e.phase.String())
	}
	e.turns++

	if e.phase.Terminal() {
		return nil
	}
	switch {
	case e.player.IsDefeated():
		e.phase = PhaseDefeat
	case e.enemy.IsDefeated():
		e.phase = PhaseVictory
	case e.phase == PhasePlayerTurn:
		e.phase = PhaseEnemyTurn
	default:
		e.phase = PhasePlayerTurn
	}
	return nil
}

// playerTurn asks for actions until one consumes the turn. Status checks and
// rejected actions are reported and asked again.
func (e *Encounter) playerTurn(ctx context.Context, provider ActionProvider, span trace.Span) error {
	for {
		if err := ctx.Err(); err != nil {
			return interrupted(err)
		}
		action, err := provider.NextAction(ctx, e.player, e.enemy)
		if err != nil {
			if ctx.Err() != nil || apperrors.CodeOf(err) == apperrors.CodeInterrupted {
				return interrupted(err)
			}
			return err
		}

		consumed, err := e.resolvePlayerAction(ctx, action)
		if err != nil {
			if !apperrors.IsActionRejection(err) {
				return err
			}
			e.emit(combat.Event{
				Kind:    combat.EventRejected,
				Actor:   e.player.Name,
				Detail:  action.Kind.String(),
				Message: err.Error(),
			})
			logger.FromContext(ctx).Debug("action rejected",
				"action", action.Kind.String(), "code", string(apperrors.CodeOf(err)))
			continue
		}
		if !consumed {
			continue
		}

		span.SetAttributes(
			attribute.String("actor", e.player.Name),
			attribute.String("action", action.Kind.String()),
		)
		if e.phase == PhaseEscaped {
			return nil
		}
		e.tickEffects(&e.player.Combatant)
		return nil
	}
}

func (e *Encounter) resolvePlayerAction(ctx context.Context, action combat.Action) (bool, error) {
	var (
		res  combat.Result
		err  error
		kind combat.EventKind
	)

	switch action.Kind {
	case combat.ActionCheckStatus:
		e.emit(combat.Event{
			Kind:    combat.EventStatusReport,
			Actor:   e.player.Name,
			Target:  e.enemy.Name,
			Message: StatusReport(e.player, e.enemy),
		})
		return false, nil

	case combat.ActionAttack:
		kind = combat.EventAttack
		res, err = e.resolver.Attack(&e.player.Combatant, &e.enemy.Combatant)

	case combat.ActionDefend:
		kind = combat.EventDefend
		res, err = e.resolver.Defend(&e.player.Combatant)

	case combat.ActionUseItem:
		kind = combat.EventItemUsed
		var potion *item.Item
		if potion, err = e.player.Inventory.FindByName(action.Item); err == nil {
			res, err = e.resolver.UseConsumable(e.player, potion)
		}

	case combat.ActionCastSpell:
		kind = combat.EventSpell
		res, err = e.resolver.CastSpell(e.player, &e.enemy.Combatant)

	case combat.ActionFlee:
		escaped := e.resolver.AttemptFlee(e.player)
		msg := e.player.Name + " tries to flee but can't get away!"
		if escaped {
			msg = e.player.Name + " escapes!"
			e.phase = PhaseEscaped
		}
		e.emit(combat.Event{Kind: combat.EventFlee, Actor: e.player.Name, Detail: strconv.FormatBool(escaped), Message: msg})
		logger.FromContext(ctx).Info("flee attempt", "escaped", escaped)
		return true, nil

	default:
		return false, apperrors.WithMetadata(apperrors.CodeInvalidArgument,
			"unknown action", map[string]string{"action": action.Kind.String()})
	}

	if err != nil {
		return false, err
	}
	e.emitResult(kind, e.player.Name, e.enemy.Name, res)
	return true, nil
}

func (e *Encounter) enemyTurn(ctx context.Context, span trace.Span) error {
	move := combat.ChooseEnemyAction(e.enemy, e.rng)
	span.SetAttributes(
		attribute.String("actor", e.enemy.Name),
		attribute.String("action", move.String()),
	)

	var (
		res  combat.Result
		err  error
		kind = combat.EventAttack
	)
	switch move {
	case combat.MoveDefend:
		kind = combat.EventDefend
		res, err = e.resolver.Defend(&e.enemy.Combatant)
	case combat.MovePowerStrike:
		kind = combat.EventSpecial
		res, err = e.resolver.EnemySpecialAbility(e.enemy, &e.player.Combatant)
	case combat.MoveVenomSpit:
		kind = combat.EventSpecial
		res, err = e.resolver.VenomSpit(e.enemy, &e.player.Combatant)
	default:
		res, err = e.resolver.Attack(&e.enemy.Combatant, &e.player.Combatant)
	}
	if err != nil {
		return err
	}
	e.emitResult(kind, e.enemy.Name, e.player.Name, res)
	if res.StatusAdded != "" {
		e.emit(combat.Event{
			Kind:    combat.EventStatusApplied,
			Actor:   e.enemy.Name,
			Target:  e.player.Name,
			Detail:  res.StatusAdded,
			Message: e.player.Name + " is afflicted with " + res.StatusAdded + ".",
		})
	}
	logger.FromContext(ctx).Debug("enemy acted", "move", move.String(), "damage", res.Damage)

	e.tickEffects(&e.enemy.Combatant)
	e.resolver.TickCooldowns(e.enemy)
	return nil
}

func (e *Encounter) tickEffects(c *entity.Combatant) {
	for _, tick := range combat.Tick(c) {
		if tick.Amount > 0 {
			verb := " takes "
			unit := " damage from "
			if tick.Name == combat.EffectRegen {
				verb = " recovers "
				unit = " HP from "
			}
			e.emit(combat.Event{
				Kind:    combat.EventStatusTick,
				Actor:   c.Name,
				Amount:  tick.Amount,
				Detail:  tick.Name,
				Message: c.Name + verb + strconv.Itoa(tick.Amount) + unit + tick.Name + ".",
			})
		}
		if tick.Ended {
			e.emit(combat.Event{
				Kind:    combat.EventStatusExpired,
				Actor:   c.Name,
				Detail:  tick.Name,
				Message: c.Name + " is no longer affected by " + tick.Name + ".",
			})
		}
	}
}

// finish applies the consequences of the terminal phase.
func (e *Encounter) finish(ctx context.Context) (Outcome, error) {
	out := Outcome{Phase: e.phase, Turns: e.turns}
	log := logger.FromContext(ctx)

	var removeErr error
	if e.phase == PhaseVictory {
		out.Experience = e.enemy.ExperienceReward
		out.Gold = e.enemy.GoldReward

		levels, err := e.player.GainExperience(out.Experience)
		if err != nil {
			return out, err
		}
		out.LevelUps = levels
		e.player.Gold += out.Gold
		e.emit(combat.Event{
			Kind:    combat.EventReward,
			Actor:   e.player.Name,
			Amount:  out.Experience,
			Detail:  strconv.Itoa(out.Gold),
			Message: "You gain " + strconv.Itoa(out.Experience) + " XP and " + strconv.Itoa(out.Gold) + " gold.",
		})
		for _, lvl := range levels {
			e.emit(combat.Event{
				Kind:    combat.EventLevelUp,
				Actor:   e.player.Name,
				Amount:  lvl.Level,
				Message: "Level up! You are now level " + strconv.Itoa(lvl.Level) + ".",
			})
		}

		out.Loot = e.enemy.TakeLoot()
		for _, it := range out.Loot {
			e.player.Inventory.Add(it)
			e.emit(combat.Event{
				Kind:    combat.EventLoot,
				Actor:   e.player.Name,
				Target:  e.enemy.Name,
				Detail:  it.Name(),
				Message: "You found " + it.Name() + ".",
			})
		}

		if err := e.location.RemoveDefeatedEnemy(e.enemy); err != nil {
			removeErr = apperrors.Wrap(apperrors.CodeInvalidState, "could not remove "+e.enemy.Name, err)
			log.Error("defeated enemy not removed", "enemy", e.enemy.Name, "error", err)
		}
	}

	e.emit(combat.Event{
		Kind:    combat.EventOutcome,
		Actor:   e.player.Name,
		Target:  e.enemy.Name,
		Detail:  e.phase.String(),
		Message: outcomeMessage(e.phase, e.enemy.Name),
	})

	_, span := e.tracer.Start(ctx, "combat.end")
	span.SetAttributes(
		attribute.String("encounter.id", e.ID),
		attribute.String("outcome", e.phase.String()),
		attribute.Int("turns_taken", e.turns),
		attribute.Int("player.hp_remaining", e.player.HP),
		attribute.Int("xp_gained", out.Experience),
		attribute.Int("level_ups", len(out.LevelUps)),
	)
	span.End()

	log.Info("encounter finished", "outcome", e.phase.String(), "turns", e.turns)
	return out, removeErr
}

func (e *Encounter) emitResult(kind combat.EventKind, actor, target string, res combat.Result) {
	amount := res.Damage
	if res.Healing > 0 {
		amount = res.Healing
	}
	e.emit(combat.Event{Kind: kind, Actor: actor, Target: target, Amount: amount, Detail: res.StatusAdded, Message: res.Message})
}

func (e *Encounter) emit(ev combat.Event) {
	e.sink.Emit(ev)
}

func (e *Encounter) firstActor() string {
	if e.enemyFirst {
		return e.enemy.Name
	}
	return e.player.Name
}

func interrupted(cause error) error {
	return apperrors.Wrap(apperrors.CodeInterrupted, "encounter interrupted", cause)
}

func outcomeMessage(phase Phase, enemy string) string {
	switch phase {
	case PhaseVictory:
		return "Victory! " + enemy + " has been defeated."
	case PhaseDefeat:
		return "You have been defeated..."
	case PhaseEscaped:
		return "You got away from " + enemy + "."
	default:
		return ""
	}
}

// StatusReport describes both combatants' vitals and active effects.
func StatusReport(player *entity.Player, enemy *entity.Enemy) string {
	var b strings.Builder
	b.WriteString(player.String())
	b.WriteString(" MP " + strconv.Itoa(player.MP) + "/" + strconv.Itoa(player.MaxMP))
	writeEffects(&b, &player.Combatant)
	b.WriteString(" | ")
	b.WriteString(enemy.String())
	writeEffects(&b, &enemy.Combatant)
	return b.String()
}

func writeEffects(b *strings.Builder, c *entity.Combatant) {
	for _, effect := range c.Effects.Snapshot() {
		b.WriteString(" [" + effect.Name + " " + strconv.Itoa(effect.Duration) + "]")
	}
	if c.Blocking {
		b.WriteString(" [guarding]")
	}
}
