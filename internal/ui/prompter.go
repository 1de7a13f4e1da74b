package ui

import (
	"context"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/emberwood/internal/combat"
	"github.com/samdwyer/emberwood/internal/entity"
	apperrors "github.com/samdwyer/emberwood/internal/errors"
)

// EventSource yields terminal events. *Screen satisfies it.
type EventSource interface {
	PollEvent() tcell.Event
}

// combatMenu is indexed by the number key minus one.
var combatMenu = []combat.ActionKind{
	combat.ActionAttack,
	combat.ActionDefend,
	combat.ActionUseItem,
	combat.ActionCheckStatus,
	combat.ActionFlee,
	combat.ActionCastSpell,
}

// Prompter reads the player's choices from the keyboard.
type Prompter struct {
	events   EventSource
	renderer *Renderer
	log      *MessageLog
}

// NewPrompter creates a prompter that draws with renderer and reports
// problems to log.
func NewPrompter(events EventSource, renderer *Renderer, log *MessageLog) *Prompter {
	return &Prompter{events: events, renderer: renderer, log: log}
}

// NextAction shows the combat menu and waits for a choice. Escape, Ctrl-C
// and a cancelled context all end in a CodeInterrupted error.
func (p *Prompter) NextAction(ctx context.Context, player *entity.Player, enemy *entity.Enemy) (combat.Action, error) {
	menu := &Menu{Title: "Your turn:", Options: combatOptions()}
	draw := func(m *Menu) {
		p.renderer.RenderCombat(CombatView{Player: player, Enemy: enemy, Log: p.log, Menu: m})
	}

	for {
		idx, _, err := p.choose(ctx, menu, draw, false)
		if err != nil {
			return combat.Action{}, err
		}
		kind := combatMenu[idx]
		if kind != combat.ActionUseItem {
			return combat.Action{Kind: kind}, nil
		}

		potions := player.Inventory.Potions()
		if len(potions) == 0 {
			p.log.Add("You have no potions.")
			continue
		}
		names := make([]string, len(potions))
		for i, it := range potions {
			names[i] = it.Summary()
		}
		pick, ok, err := p.Choose(ctx, &Menu{Title: "Drink which potion? (Esc to go back)", Options: names}, draw)
		if err != nil {
			return combat.Action{}, err
		}
		if ok {
			return combat.Action{Kind: combat.ActionUseItem, Item: potions[pick].Name()}, nil
		}
	}
}

// Choose draws menu with draw and waits for a numbered option. It reports
// false if the player backs out with Escape or Backspace. Ctrl-C and a
// cancelled context end in a CodeInterrupted error.
func (p *Prompter) Choose(ctx context.Context, menu *Menu, draw func(*Menu)) (int, bool, error) {
	return p.choose(ctx, menu, draw, true)
}

func (p *Prompter) choose(ctx context.Context, menu *Menu, draw func(*Menu), escBacksOut bool) (int, bool, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, false, interrupted()
		}
		draw(menu)

		switch ev := p.events.PollEvent().(type) {
		case nil:
			return 0, false, interrupted()
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return 0, false, interrupted()
			}
		case *tcell.EventResize:
			p.renderer.screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyCtrlC:
				return 0, false, interrupted()
			case tcell.KeyEscape, tcell.KeyBackspace, tcell.KeyBackspace2:
				if escBacksOut {
					return 0, false, nil
				}
				if ev.Key() == tcell.KeyEscape {
					return 0, false, interrupted()
				}
			case tcell.KeyRune:
				if idx, ok := optionIndex(ev.Rune(), len(menu.Options)); ok {
					return idx, true, nil
				}
			}
		}
	}
}

// optionIndex maps the number keys 1-9 onto a zero-based menu index.
func optionIndex(r rune, n int) (int, bool) {
	idx := int(r - '1')
	if r < '1' || r > '9' || idx >= n {
		return 0, false
	}
	return idx, true
}

func combatOptions() []string {
	opts := make([]string, len(combatMenu))
	for i, kind := range combatMenu {
		switch kind {
		case combat.ActionAttack:
			opts[i] = "Attack"
		case combat.ActionDefend:
			opts[i] = "Defend"
		case combat.ActionUseItem:
			opts[i] = "Use item (potion)"
		case combat.ActionCheckStatus:
			opts[i] = "Check status"
		case combat.ActionFlee:
			opts[i] = "Flee (risky!)"
		case combat.ActionCastSpell:
			opts[i] = combat.SpellName + " (" + strconv.Itoa(combat.SpellManaCost) + " MP)"
		}
	}
	return opts
}

func interrupted() error {
	return apperrors.New(apperrors.CodeInterrupted, "input interrupted")
}
