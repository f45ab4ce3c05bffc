package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/encounter/internal/entity"
)

// MenuItem is one selectable line in the action menu.
type MenuItem struct {
	Label    string
	Disabled bool
}

// BattleView is everything the renderer needs to draw one frame of a battle.
type BattleView struct {
	Encounter string
	Round     int
	Allies    []*entity.Combatant
	Enemies   []*entity.Combatant
	Current   *entity.Combatant
	Message   string

	Menu   []MenuItem
	Cursor int

	// Highlighted is the unit under the target cursor, if targeting.
	Highlighted *entity.Combatant
	// Targetable enemies are marked when targeting is open.
	Targetable []*entity.Combatant
}

// Layout rows.
const (
	headerRow  = 0
	rosterRow  = 2
	messageGap = 1
	hintText   = "↑/↓ choose  enter confirm  esc back  q quit"
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// RenderBattle draws the roster, message line and, on a player turn, the menu.
func (r *Renderer) RenderBattle(v BattleView) {
	r.screen.Clear()

	header := v.Encounter
	if v.Round > 0 {
		header = fmt.Sprintf("%s  Round %d", v.Encounter, v.Round)
	}
	r.screen.DrawText(1, headerRow, header, tcell.StyleDefault.Bold(true))

	y := rosterRow
	for _, c := range v.Allies {
		r.drawCombatant(2, y, c, v)
		y++
	}
	y++
	for _, c := range v.Enemies {
		r.drawCombatant(2, y, c, v)
		y++
	}

	y += messageGap
	if v.Message != "" {
		r.screen.DrawText(1, y, v.Message, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	}
	y += 2

	for i, item := range v.Menu {
		style := tcell.StyleDefault.Foreground(tcell.ColorSilver)
		prefix := "  "
		if item.Disabled {
			style = style.Foreground(tcell.ColorDarkGray)
		}
		if i == v.Cursor {
			prefix = "> "
			style = style.Bold(true).Foreground(tcell.ColorYellow)
		}
		r.screen.DrawText(3, y, prefix+item.Label, style)
		y++
	}
	if len(v.Menu) > 0 || v.Highlighted != nil {
		_, h := r.screen.Size()
		r.screen.DrawText(1, h-1, hintText, tcell.StyleDefault.Foreground(tcell.ColorDarkGray))
	}

	r.screen.Show()
}

func (r *Renderer) drawCombatant(x, y int, c *entity.Combatant, v BattleView) {
	marker := ' '
	switch {
	case c == v.Highlighted:
		marker = '»'
	case c == v.Current:
		marker = '>'
	}
	r.screen.SetContent(x, y, marker, tcell.StyleDefault.Foreground(tcell.ColorYellow))

	style := tcell.StyleDefault.Foreground(c.Color())
	if c.IsDead() {
		style = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	} else if c == v.Highlighted {
		style = style.Reverse(true)
	}
	r.screen.SetContent(x+2, y, c.Symbol, style)

	line := fmt.Sprintf("%-12s HP %3d/%-3d  EN %3d/%-3d", c.Name, c.Stats.HP, c.Stats.MaxHP, c.Stats.Energy, c.Stats.MaxEnergy)
	x = r.screen.DrawText(x+4, y, line, style)

	switch {
	case c.IsDead():
		r.screen.DrawText(x+1, y, "down", style)
		return
	case c.Guarded:
		x = r.screen.DrawText(x+1, y, "guard", tcell.StyleDefault.Foreground(tcell.ColorAqua))
	case contains(v.Targetable, c):
		x = r.screen.DrawText(x+1, y, "*", tcell.StyleDefault.Foreground(tcell.ColorRed))
	}

	for _, effect := range c.StatusEffects() {
		x = r.screen.DrawText(x+1, y, string(effect.Type), tcell.StyleDefault.Foreground(tcell.ColorFuchsia))
	}
}

// RenderPanel draws a titled block of text, used for the camp and title screens.
func (r *Renderer) RenderPanel(title string, lines []string) {
	r.screen.Clear()
	r.screen.DrawText(1, headerRow, title, tcell.StyleDefault.Bold(true))
	for i, line := range lines {
		r.screen.DrawText(2, rosterRow+i, line, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	}
	r.screen.Show()
}

func contains(units []*entity.Combatant, c *entity.Combatant) bool {
	for _, u := range units {
		if u == c {
			return true
		}
	}
	return false
}
