package game

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/emberwood/internal/combat"
	"github.com/samdwyer/emberwood/internal/entity"
	apperrors "github.com/samdwyer/emberwood/internal/errors"
	"github.com/samdwyer/emberwood/internal/gamedata"
	"github.com/samdwyer/emberwood/internal/item"
	"github.com/samdwyer/emberwood/internal/logger"
	"github.com/samdwyer/emberwood/internal/telemetry"
	"github.com/samdwyer/emberwood/internal/ui"
	"github.com/samdwyer/emberwood/internal/world"
)

// Game holds the entire game state.
type Game struct {
	screen   *ui.Screen
	events   ui.EventSource
	renderer *ui.Renderer
	prompter *ui.Prompter
	log      *ui.MessageLog

	cfg          Config
	catalog      *gamedata.Catalog
	world        *world.World
	player       *entity.Player
	rng          combat.Source
	resolver     *combat.Resolver
	tracer       trace.Tracer
	combatTracer trace.Tracer

	state      State
	firstVisit bool
	running    bool
}

// New creates a new game instance on the terminal.
func New(cfg Config) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	g, err := newGame(screen, screen, cfg)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return g, nil
}

func newGame(screen *ui.Screen, events ui.EventSource, cfg Config) (*Game, error) {
	catalog := cfg.Catalog
	if catalog == nil {
		var err error
		if catalog, err = gamedata.LoadCatalog(); err != nil {
			return nil, err
		}
	}
	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	rng := cfg.source()
	log := ui.NewMessageLog(ui.DefaultLogSize)
	renderer := ui.NewRenderer(screen, catalog.Items.RarityColor)

	return &Game{
		screen:       screen,
		events:       events,
		renderer:     renderer,
		prompter:     ui.NewPrompter(events, renderer, log),
		log:          log,
		cfg:          cfg,
		catalog:      catalog,
		rng:          rng,
		resolver:     combat.NewResolver(rng),
		tracer:       telemetry.TracerFrom(tp, "game"),
		combatTracer: telemetry.TracerFrom(tp, "combat"),
		state:        StateExplore,
		running:      true,
	}, nil
}

// Run executes the main game loop until the player quits, is defeated or
// ctx is cancelled.
func (g *Game) Run(ctx context.Context) error {
	if err := g.init(ctx); err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, g.screen.Interrupt)
	defer stop()

	// Main game loop
	for g.running {
		g.render(nil)

		if err := g.handleInput(ctx); err != nil {
			g.state = StateOver
			if apperrors.CodeOf(err) == apperrors.CodeInterrupted {
				logger.FromContext(ctx).Info("game interrupted")
				return nil
			}
			return err
		}
	}
	g.state = StateOver
	return nil
}

// init builds the world and the player (traced).
func (g *Game) init(ctx context.Context) error {
	ctx, span := g.tracer.Start(ctx, "game.init")
	defer span.End()

	w, err := world.Build(ctx, g.catalog)
	if err != nil {
		span.RecordError(err)
		return err
	}
	player, err := g.catalog.NewPlayer(g.cfg.playerName())
	if err != nil {
		span.RecordError(err)
		return err
	}
	g.world = w
	g.player = player
	g.firstVisit = true

	span.SetAttributes(
		attribute.String("world.start", w.Current().ID),
		attribute.Int("world.locations", len(w.Locations())),
		attribute.String("player.name", player.Name),
		attribute.Float64("ambush_chance", g.cfg.AmbushChance),
	)
	g.log.Add(player.Name + ", your adventure begins!")
	logger.FromContext(ctx).Info("game started", "player", player.Name, "start", w.Current().ID)
	return nil
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) error {
	switch ev := g.events.PollEvent().(type) {
	case nil:
		return apperrors.New(apperrors.CodeInterrupted, "screen closed")
	case *tcell.EventInterrupt:
		if ctx.Err() != nil {
			return apperrors.Wrap(apperrors.CodeInterrupted, "game interrupted", ctx.Err())
		}
	case *tcell.EventKey:
		return g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return nil
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		return g.move(ctx, "north")
	case tcell.KeyDown:
		return g.move(ctx, "south")
	case tcell.KeyLeft:
		return g.move(ctx, "west")
	case tcell.KeyRight:
		return g.move(ctx, "east")

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case 'n':
			return g.move(ctx, "north")
		case 's':
			return g.move(ctx, "south")
		case 'w':
			return g.move(ctx, "west")
		case 'e':
			return g.move(ctx, "east")
		case 't':
			return g.take(ctx)
		case 'i':
			return g.equip(ctx)
		case 'u':
			return g.unequip(ctx)
		case 'd':
			return g.drink(ctx)
		case 'f':
			return g.chooseFight(ctx)
		}
	}
	return nil
}

// move follows an exit and rolls for an ambush.
func (g *Game) move(ctx context.Context, direction string) error {
	loc, first, err := g.world.Move(direction)
	if err != nil {
		g.log.Add(err.Error())
		return nil
	}
	g.firstVisit = first
	g.log.Add("You head " + direction + " to " + loc.Name + ".")
	logger.FromContext(ctx).Debug("moved", "to", loc.ID, "first_visit", first)

	enemies := loc.EnemiesPresent()
	if len(enemies) == 0 || g.rng.Float64() >= g.cfg.AmbushChance {
		return nil
	}
	idx := int(g.rng.Float64() * float64(len(enemies)))
	if idx >= len(enemies) {
		idx = len(enemies) - 1
	}
	enemy := enemies[idx]
	g.log.Add(enemy.Name + " takes you by surprise!")
	return g.fight(ctx, enemy)
}

func (g *Game) take(ctx context.Context) error {
	loc := g.world.Current()
	items := loc.Items()
	if len(items) == 0 {
		g.log.Add("There is nothing here to take.")
		return nil
	}
	it, ok, err := g.pick(ctx, "Take what?", items)
	if err != nil || !ok {
		return err
	}
	taken, err := loc.TakeItem(it.Name())
	if err != nil {
		g.log.Add(err.Error())
		return nil
	}
	g.player.Inventory.Add(taken)
	g.log.Add("You pick up " + taken.Name() + ".")
	return nil
}

func (g *Game) equip(ctx context.Context) error {
	var gear []*item.Item
	for _, it := range g.player.Inventory.Items() {
		if it.Kind == item.KindWeapon || it.Kind == item.KindArmor {
			gear = append(gear, it)
		}
	}
	if len(gear) == 0 {
		g.log.Add("You carry nothing you could equip.")
		return nil
	}
	it, ok, err := g.pick(ctx, "Equip what?", gear)
	if err != nil || !ok {
		return err
	}
	previous, err := g.player.Equip(it)
	if err != nil {
		g.log.Add(err.Error())
		return nil
	}
	if previous != nil {
		g.log.Add("You put away " + previous.Name() + ".")
	}
	g.log.Add("You equip " + it.Name() + ".")
	return nil
}

func (g *Game) unequip(ctx context.Context) error {
	var (
		slots   []entity.Slot
		options []string
	)
	if g.player.Weapon != nil {
		slots = append(slots, entity.SlotWeapon)
		options = append(options, "weapon: "+g.player.Weapon.Name())
	}
	if g.player.Armor != nil {
		slots = append(slots, entity.SlotArmor)
		options = append(options, "armor: "+g.player.Armor.Name())
	}
	if len(slots) == 0 {
		g.log.Add("You have nothing equipped.")
		return nil
	}

	idx, ok, err := g.prompter.Choose(ctx, &ui.Menu{Title: "Unequip what? (Esc to go back)", Options: options}, g.render)
	if err != nil || !ok {
		return err
	}
	it, err := g.player.Unequip(slots[idx])
	if err != nil {
		g.log.Add(err.Error())
		return nil
	}
	g.log.Add("You unequip " + it.Name() + ".")
	return nil
}

func (g *Game) drink(ctx context.Context) error {
	potions := g.player.Inventory.Potions()
	if len(potions) == 0 {
		g.log.Add("You have no potions.")
		return nil
	}
	potion, ok, err := g.pick(ctx, "Drink what?", potions)
	if err != nil || !ok {
		return err
	}
	res, err := g.resolver.UseConsumable(g.player, potion)
	if err != nil {
		g.log.Add(err.Error())
		return nil
	}
	g.log.Add(res.Message)
	return nil
}

func (g *Game) chooseFight(ctx context.Context) error {
	enemies := g.world.Current().EnemiesPresent()
	switch len(enemies) {
	case 0:
		g.log.Add("There is nothing to fight here.")
		return nil
	case 1:
		return g.fight(ctx, enemies[0])
	}

	names := make([]string, len(enemies))
	for i, e := range enemies {
		names[i] = e.String()
	}
	idx, ok, err := g.prompter.Choose(ctx, &ui.Menu{Title: "Fight whom? (Esc to go back)", Options: names}, g.render)
	if err != nil || !ok {
		return err
	}
	return g.fight(ctx, enemies[idx])
}

// fight runs an encounter against enemy in the current location. Only an
// interrupt is returned as an error.
func (g *Game) fight(ctx context.Context, enemy *entity.Enemy) error {
	g.state = StateCombat
	defer func() {
		if g.state == StateCombat {
			g.state = StateExplore
		}
	}()

	enc, err := NewEncounter(g.player, enemy, g.world.Current(), EncounterOptions{
		Source: g.rng,
		Sink:   g.log,
		Tracer: g.combatTracer,
	})
	if err != nil {
		g.log.Add(err.Error())
		return nil
	}

	out, err := enc.Run(ctx, g.prompter)
	if err != nil {
		if apperrors.CodeOf(err) == apperrors.CodeInterrupted {
			return err
		}
		g.log.Add(err.Error())
		logger.FromContext(ctx).Error("encounter failed", "enemy", enemy.Name, "error", err)
	}

	switch out.Phase {
	case PhaseDefeat:
		g.state = StateOver
		g.running = false
		g.gameOver()
	case PhaseEscaped:
		g.log.Add("You catch your breath, heart still pounding.")
	}
	return nil
}

// gameOver shows the final screen and waits for one key.
func (g *Game) gameOver() {
	g.render(nil)
	_, height := g.screen.Size()
	g.renderer.RenderMessage("Your adventure ends here. Press any key.", height-1)
	g.screen.Show()
	g.events.PollEvent()
}

// pick offers items in a numbered menu.
func (g *Game) pick(ctx context.Context, title string, items []*item.Item) (*item.Item, bool, error) {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Summary()
	}
	idx, ok, err := g.prompter.Choose(ctx, &ui.Menu{Title: title + " (Esc to go back)", Options: names}, g.render)
	if err != nil || !ok {
		return nil, false, err
	}
	return items[idx], true, nil
}

func (g *Game) render(menu *ui.Menu) {
	g.renderer.RenderLocation(ui.LocationView{
		Location:   g.world.Current(),
		Player:     g.player,
		FirstVisit: g.firstVisit,
		Log:        g.log,
		Menu:       menu,
	})
}

// State returns the current game state.
func (g *Game) State() State { return g.state }

// Player returns the player, or nil before Run.
func (g *Game) Player() *entity.Player { return g.player }

// World returns the world, or nil before Run.
func (g *Game) World() *world.World { return g.world }

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
