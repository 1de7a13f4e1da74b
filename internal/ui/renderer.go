package ui

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/emberwood/internal/entity"
	"github.com/samdwyer/emberwood/internal/item"
	"github.com/samdwyer/emberwood/internal/world"
)

// ExploreHelp lists the exploration keys.
const ExploreHelp = "arrows/nsew move  t take  i equip  u unequip  d drink  f fight  q quit"

// Menu is a numbered list of choices drawn under the main view.
type Menu struct {
	Title   string
	Options []string
}

// LocationView is everything shown while exploring.
type LocationView struct {
	Location   *world.Location
	Player     *entity.Player
	FirstVisit bool
	Log        *MessageLog
	Menu       *Menu
}

// CombatView is everything shown during an encounter.
type CombatView struct {
	Player *entity.Player
	Enemy  *entity.Enemy
	Log    *MessageLog
	Menu   *Menu
}

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen      *Screen
	rarityColor func(item.Rarity) tcell.Color
}

// NewRenderer creates a new renderer for the given screen. rarityColor picks
// the color of item names; nil draws them all in the default color.
func NewRenderer(screen *Screen, rarityColor func(item.Rarity) tcell.Color) *Renderer {
	if rarityColor == nil {
		rarityColor = func(item.Rarity) tcell.Color { return tcell.ColorWhite }
	}
	return &Renderer{screen: screen, rarityColor: rarityColor}
}

var (
	titleStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	textStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dimStyle     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	enemyStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	playerStyle  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	menuStyle    = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	messageStyle = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// RenderLocation draws the exploration screen.
func (r *Renderer) RenderLocation(v LocationView) {
	r.screen.Clear()
	loc := v.Location

	y := 0
	r.screen.DrawText(0, y, loc.Name, titleStyle)
	y++
	r.screen.DrawText(0, y, loc.Description, textStyle)
	y++
	if v.FirstVisit {
		r.screen.DrawText(0, y, "You have not been here before.", dimStyle)
		y++
	}
	y++

	if items := loc.Items(); len(items) > 0 {
		r.screen.DrawText(0, y, "You see:", textStyle)
		y++
		for _, it := range items {
			r.screen.DrawText(2, y, it.Summary(), tcell.StyleDefault.Foreground(r.rarityColor(it.Rarity())))
			y++
		}
	}
	if enemies := loc.EnemiesPresent(); len(enemies) > 0 {
		r.screen.DrawText(0, y, "Enemies:", textStyle)
		y++
		for _, e := range enemies {
			r.screen.DrawText(2, y, e.String(), enemyStyle)
			y++
		}
	}
	r.screen.DrawText(0, y, "Exits: "+exitList(loc.Exits), textStyle)
	y += 2

	y = r.drawPlayer(y, v.Player)
	r.screen.DrawText(0, y, ExploreHelp, dimStyle)
	y += 2

	y = r.drawMenu(y, v.Menu)
	r.drawLog(y, v.Log)
	r.screen.Show()
}

// RenderCombat draws both combatants, the message log and the action menu.
func (r *Renderer) RenderCombat(v CombatView) {
	r.screen.Clear()

	y := 0
	r.screen.DrawText(0, y, "Fighting "+v.Enemy.Name, titleStyle)
	y += 2
	r.screen.DrawText(0, y, v.Enemy.String()+effectList(&v.Enemy.Combatant), enemyStyle)
	y += 2
	y = r.drawPlayer(y, v.Player)

	y = r.drawMenu(y, v.Menu)
	r.drawLog(y, v.Log)
	r.screen.Show()
}

// RenderMessage displays a message at the bottom of the screen.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range msg {
		r.screen.SetContent(i, y, ch, style)
	}
}

func (r *Renderer) drawPlayer(y int, p *entity.Player) int {
	r.screen.DrawText(0, y, p.String()+" MP: "+strconv.Itoa(p.MP)+"/"+strconv.Itoa(p.MaxMP)+
		effectList(&p.Combatant), playerStyle)
	y++
	r.screen.DrawText(0, y, "Level "+strconv.Itoa(p.Level)+
		"  XP "+strconv.Itoa(p.Experience)+"/"+strconv.Itoa(p.XPToNextLevel)+
		"  Gold "+strconv.Itoa(p.Gold), textStyle)
	y++
	r.screen.DrawText(0, y, "Weapon: "+itemName(p.Weapon)+"  Armor: "+itemName(p.Armor), textStyle)
	return y + 2
}

func (r *Renderer) drawMenu(y int, m *Menu) int {
	if m == nil {
		return y
	}
	r.screen.DrawText(0, y, m.Title, menuStyle.Bold(true))
	y++
	for i, opt := range m.Options {
		r.screen.DrawText(2, y, strconv.Itoa(i+1)+". "+opt, menuStyle)
		y++
	}
	return y + 1
}

func (r *Renderer) drawLog(y int, log *MessageLog) {
	if log == nil {
		return
	}
	for _, line := range log.Lines() {
		r.screen.DrawText(0, y, line, messageStyle)
		y++
	}
}

func exitList(exits []world.Exit) string {
	if len(exits) == 0 {
		return "none"
	}
	dirs := make([]string, len(exits))
	for i, e := range exits {
		dirs[i] = e.Direction
	}
	return strings.Join(dirs, ", ")
}

func effectList(c *entity.Combatant) string {
	var b strings.Builder
	for _, e := range c.Effects.Snapshot() {
		b.WriteString(" [" + e.Name + " " + strconv.Itoa(e.Duration) + "]")
	}
	if c.Blocking {
		b.WriteString(" [guarding]")
	}
	return b.String()
}

func itemName(it *item.Item) string {
	if it == nil {
		return "none"
	}
	return it.Name()
}
