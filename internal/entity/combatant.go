// Package entity provides the combatants that take part in an encounter.
package entity

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/encounter/internal/gamedata"
)

// Side identifies which team a combatant fights for.
type Side int

const (
	SidePlayer Side = iota
	SideEnemy
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "player"
	case SideEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Opponent returns the opposing side.
func (s Side) Opponent() Side {
	if s == SidePlayer {
		return SideEnemy
	}
	return SidePlayer
}

// actTimerScale is divided by speed to get the number of turns until the next act.
const actTimerScale = 100

// Stats holds the combat numbers owned by a combatant.
type Stats struct {
	Level             int
	HP, MaxHP         int
	Energy, MaxEnergy int
	Attack            int
	Defense           int
	Magic             int
	Speed             int
	Experience        int
}

// StatsForClass computes level-scaled stats from a class definition.
func StatsForClass(def *gamedata.ClassDef, level int) Stats {
	if level < 1 {
		level = 1
	}
	grow := level - 1
	hp := def.HP + def.Growth.HP*grow
	energy := def.Energy + def.Growth.Energy*grow
	return Stats{
		Level:     level,
		HP:        hp,
		MaxHP:     hp,
		Energy:    energy,
		MaxEnergy: energy,
		Attack:    def.Attack + def.Growth.Attack*grow,
		Defense:   def.Defense + def.Growth.Defense*grow,
		Magic:     def.Magic + def.Growth.Magic*grow,
		Speed:     def.Speed + def.Growth.Speed*grow,
	}
}

// StatsForEnemy copies stats from an enemy definition.
func StatsForEnemy(def *gamedata.EnemyDef) Stats {
	return Stats{
		Level:     1,
		HP:        def.HP,
		MaxHP:     def.HP,
		Energy:    def.Energy,
		MaxEnergy: def.Energy,
		Attack:    def.Attack,
		Defense:   def.Defense,
		Magic:     def.Magic,
		Speed:     def.Speed,
	}
}

// Combatant is any unit taking part in an encounter, party member or enemy.
//
// Death is sticky: once health reaches zero the combatant stays dead until
// Revive, even if something later raises its health.
type Combatant struct {
	Name        string
	Side        Side
	Symbol      rune
	ClassID     string             // Set for party members
	Def         *gamedata.EnemyDef // Set for enemies
	Stats       Stats
	Guarded     bool
	NextActTurn int
	AbilityIDs  []string

	dead          bool
	statusEffects []StatusEffect
}

// NewMember creates a party member of the given class at the given level.
func NewMember(name string, def *gamedata.ClassDef, level int) *Combatant {
	c := &Combatant{
		Name:    name,
		Side:    SidePlayer,
		Symbol:  def.SymbolRune(),
		ClassID: def.ID,
	}
	c.ResetStats(def, level)
	return c
}

// NewEnemyFromDef creates an enemy from a data-driven definition.
func NewEnemyFromDef(def *gamedata.EnemyDef) *Combatant {
	c := &Combatant{
		Name:       def.Name,
		Side:       SideEnemy,
		Symbol:     def.GlyphRune(),
		Def:        def,
		Stats:      StatsForEnemy(def),
		AbilityIDs: append([]string(nil), def.Abilities...),
	}
	c.ResetActTimer(0)
	return c
}

// ResetStats re-initialises the owned stats for a class and level.
// Experience, death, guard and status effects are all cleared.
func (c *Combatant) ResetStats(def *gamedata.ClassDef, level int) {
	c.Stats = StatsForClass(def, level)
	c.AbilityIDs = append([]string(nil), def.Abilities...)
	c.dead = c.Stats.HP <= 0
	c.Guarded = false
	c.statusEffects = nil
	c.ResetActTimer(0)
}

// Color returns the tcell color used to draw this combatant.
func (c *Combatant) Color() tcell.Color {
	if c.Def != nil {
		return c.Def.TCellColor()
	}
	if c.Side == SidePlayer {
		return tcell.ColorYellow
	}
	return tcell.ColorPurple
}

// IsPlayer reports whether the combatant fights for the party.
func (c *Combatant) IsPlayer() bool { return c.Side == SidePlayer }

// IsAlive reports whether the combatant can still act.
func (c *Combatant) IsAlive() bool { return !c.dead }

// IsDead reports whether the combatant is down.
func (c *Combatant) IsDead() bool { return c.dead }

// Attack returns attack including status modifiers (min 0).
func (c *Combatant) Attack() int {
	return max(0, c.Stats.Attack+c.modifier(gamedata.StatusAttackUp, gamedata.StatusAttackDown))
}

// Defense returns defense including status modifiers (min 0).
func (c *Combatant) Defense() int {
	return max(0, c.Stats.Defense+c.modifier(gamedata.StatusDefenseUp, gamedata.StatusDefenseDown))
}

// Magic returns magic power.
func (c *Combatant) Magic() int { return c.Stats.Magic }

// TakeDamage reduces HP and returns actual damage taken.
// Dead combatants take no damage.
func (c *Combatant) TakeDamage(amount int) int {
	if amount <= 0 || c.dead {
		return 0
	}
	actual := min(amount, c.Stats.HP)
	c.Stats.HP -= actual
	if c.Stats.HP == 0 {
		c.dead = true
	}
	return actual
}

// Heal restores HP and returns actual amount healed. Dead combatants cannot be healed.
func (c *Combatant) Heal(amount int) int {
	if amount <= 0 || c.dead {
		return 0
	}
	actual := min(amount, c.Stats.MaxHP-c.Stats.HP)
	c.Stats.HP += actual
	return actual
}

// Revive brings a dead combatant back with hp health (clamped to [1, MaxHP]).
// Returns false if the combatant was not dead.
func (c *Combatant) Revive(hp int) bool {
	if !c.dead {
		return false
	}
	c.dead = false
	c.Stats.HP = min(max(hp, 1), c.Stats.MaxHP)
	return true
}

// SpendEnergy reduces energy and returns false if insufficient.
func (c *Combatant) SpendEnergy(amount int) bool {
	if c.Stats.Energy < amount {
		return false
	}
	c.Stats.Energy -= amount
	return true
}

// RestoreEnergy restores energy and returns actual amount restored.
func (c *Combatant) RestoreEnergy(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, c.Stats.MaxEnergy-c.Stats.Energy)
	c.Stats.Energy += actual
	return actual
}

// ResetActTimer schedules the next act relative to the current turn.
// Speed only feeds this timer; turn order does not use it.
func (c *Combatant) ResetActTimer(currentTurn int) {
	speed := max(c.Stats.Speed, 1)
	c.NextActTurn = currentTurn + (actTimerScale+speed-1)/speed
}

// ResetStatChanges drops every status effect and its stat modifiers.
func (c *Combatant) ResetStatChanges() {
	c.statusEffects = nil
}

// EndBattle resets per-battle state once an encounter is over.
func (c *Combatant) EndBattle() {
	c.Guarded = false
	c.ResetStatChanges()
	c.ResetActTimer(0)
}

// ReceiveExperience adds experience points.
func (c *Combatant) ReceiveExperience(amount int) {
	if amount <= 0 {
		return
	}
	c.Stats.Experience += amount
}
