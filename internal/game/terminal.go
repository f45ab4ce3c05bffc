package game

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/encounter/internal/combat"
	"github.com/samdwyer/encounter/internal/entity"
	"github.com/samdwyer/encounter/internal/gamedata"
	"github.com/samdwyer/encounter/internal/ui"
)

// ErrQuit is returned when the player asks to leave mid-battle.
var ErrQuit = errors.New("player quit")

// terminalUI is the tcell side of an encounter. It implements combat.UI and
// combat.ActionPresenter.
type terminalUI struct {
	screen    *ui.Screen
	renderer  *ui.Renderer
	abilities *gamedata.AbilityRegistry
	resolver  *combat.EffectResolver

	actionDelay time.Duration
	view        ui.BattleView
	targetable  []*entity.Combatant
	roundOf     func() int
}

// menuEntry is one action-menu line: an ability, guard or pass.
type menuEntry struct {
	kind    combat.Kind
	ability *gamedata.AbilityDef
}

func (e menuEntry) label() string {
	if e.ability != nil {
		return e.ability.Name
	}
	switch e.kind {
	case combat.KindGuard:
		return "Guard"
	default:
		return "Pass"
	}
}

func newTerminalUI(screen *ui.Screen, abilities *gamedata.AbilityRegistry, encounter string, allies, enemies []*entity.Combatant, actionDelay time.Duration) *terminalUI {
	return &terminalUI{
		screen:      screen,
		renderer:    ui.NewRenderer(screen),
		abilities:   abilities,
		resolver:    combat.NewEffectResolver(nil),
		actionDelay: actionDelay,
		view: ui.BattleView{
			Encounter: encounter,
			Allies:    allies,
			Enemies:   enemies,
		},
	}
}

func (t *terminalUI) render() {
	if t.roundOf != nil {
		t.view.Round = t.roundOf()
	}
	t.renderer.RenderBattle(t.view)
}

// ShowMessage displays text on the message line and holds it for d.
func (t *terminalUI) ShowMessage(ctx context.Context, text string, d time.Duration) error {
	t.view.Message = text
	t.render()
	return sleep(ctx, d)
}

// SetEnemyTargetsInteractable records which enemies may be picked.
func (t *terminalUI) SetEnemyTargetsInteractable(targets []*entity.Combatant, enabled bool) {
	if !enabled {
		t.targetable = nil
		t.view.Targetable = nil
		return
	}
	t.targetable = targets
	t.view.Targetable = targets
}

// PresentActionMenu lets the player pick an action, then its targets.
func (t *terminalUI) PresentActionMenu(ctx context.Context, unit *entity.Combatant) (*combat.Action, error) {
	t.view.Current = unit
	defer func() {
		t.view.Current = nil
		t.view.Menu = nil
		t.view.Highlighted = nil
	}()

	entries := t.menuFor(unit)
	t.view.Menu = make([]ui.MenuItem, len(entries))
	for i, e := range entries {
		t.view.Menu[i] = ui.MenuItem{Label: e.label(), Disabled: !t.usable(unit, e)}
	}
	t.view.Cursor = 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t.render()

		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventKey:
			switch {
			case isQuit(ev):
				return nil, ErrQuit
			case ev.Key() == tcell.KeyUp:
				t.view.Cursor = (t.view.Cursor + len(entries) - 1) % len(entries)
			case ev.Key() == tcell.KeyDown:
				t.view.Cursor = (t.view.Cursor + 1) % len(entries)
			case ev.Key() == tcell.KeyEnter:
				entry := entries[t.view.Cursor]
				if !t.usable(unit, entry) {
					continue
				}
				action, err := t.buildAction(ctx, unit, entry)
				if err != nil {
					return nil, err
				}
				if action != nil {
					return action, nil
				}
				// Target selection was cancelled; back to the menu.
			}
		}
	}
}

// PresentAction shows the resolved action and completes it after the action delay.
func (t *terminalUI) PresentAction(ctx context.Context, a *combat.Action, result combat.EffectResult) {
	t.view.Message = result.Message
	t.render()
	if err := sleep(ctx, t.actionDelay); err != nil {
		// The executor sees the cancelled context.
		return
	}
	a.Complete()
}

func (t *terminalUI) menuFor(unit *entity.Combatant) []menuEntry {
	var entries []menuEntry
	for _, ability := range t.abilities.GetMultiple(unit.AbilityIDs) {
		entries = append(entries, menuEntry{kind: combat.KindAbility, ability: ability})
	}
	return append(entries, menuEntry{kind: combat.KindGuard}, menuEntry{kind: combat.KindPass})
}

func (t *terminalUI) usable(unit *entity.Combatant, e menuEntry) bool {
	if e.ability == nil {
		return true
	}
	return t.resolver.CanUse(e.ability, unit) && len(t.candidates(unit, e.ability)) > 0
}

// candidates returns who an ability may be aimed at.
func (t *terminalUI) candidates(unit *entity.Combatant, ability *gamedata.AbilityDef) []*entity.Combatant {
	switch {
	case ability.TargetType == gamedata.TargetSelf:
		return []*entity.Combatant{unit}
	case ability.IsOffensive():
		return t.targetable
	default:
		var out []*entity.Combatant
		for _, ally := range t.view.Allies {
			if ally.IsDead() == (ability.EffectType == gamedata.EffectRevive) {
				out = append(out, ally)
			}
		}
		return out
	}
}

func (t *terminalUI) buildAction(ctx context.Context, unit *entity.Combatant, e menuEntry) (*combat.Action, error) {
	switch e.kind {
	case combat.KindGuard:
		return combat.NewGuardAction(unit), nil
	case combat.KindPass:
		return combat.NewPassAction(unit), nil
	}

	candidates := t.candidates(unit, e.ability)
	if !e.ability.NeedsTarget() {
		return combat.NewAbilityAction(unit, e.ability, candidates...), nil
	}
	target, err := t.pickTarget(ctx, candidates)
	if err != nil || target == nil {
		return nil, err
	}
	return combat.NewAbilityAction(unit, e.ability, target), nil
}

// pickTarget cycles a highlight over candidates. Returns nil if the player backs out.
func (t *terminalUI) pickTarget(ctx context.Context, candidates []*entity.Combatant) (*entity.Combatant, error) {
	idx := 0
	defer func() { t.view.Highlighted = nil }()

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t.view.Highlighted = candidates[idx]
		t.render()

		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventKey:
			switch {
			case isQuit(ev):
				return nil, ErrQuit
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyBackspace, ev.Key() == tcell.KeyBackspace2:
				return nil, nil
			case ev.Key() == tcell.KeyUp, ev.Key() == tcell.KeyLeft:
				idx = (idx + len(candidates) - 1) % len(candidates)
			case ev.Key() == tcell.KeyDown, ev.Key() == tcell.KeyRight:
				idx = (idx + 1) % len(candidates)
			case ev.Key() == tcell.KeyEnter:
				return candidates[idx], nil
			}
		}
	}
}

func isQuit(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	return ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
